// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package handles maps backend objects to the uint32 handles exposed through
// shaderprog.Device.
package handles

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/gogpu/shaderprog"
)

// Table assigns handles to objects of one kind.
//
// Handles start at 1 (0 is shaderprog.InvalidHandle) and are never reused.
// Thread Safety: Table is safe for concurrent use.
type Table[T any] struct {
	mu      sync.RWMutex
	nextID  atomic.Uint32
	objects map[shaderprog.Handle]T
}

// New creates an empty table.
func New[T any]() *Table[T] {
	t := &Table[T]{objects: make(map[shaderprog.Handle]T)}
	t.nextID.Store(1)
	return t
}

// Add stores obj under a fresh handle.
func (t *Table[T]) Add(obj T) shaderprog.Handle {
	h := shaderprog.Handle(t.nextID.Add(1) - 1)
	t.mu.Lock()
	t.objects[h] = obj
	t.mu.Unlock()
	return h
}

// Get returns the object stored under h.
func (t *Table[T]) Get(h shaderprog.Handle) (T, bool) {
	t.mu.RLock()
	obj, ok := t.objects[h]
	t.mu.RUnlock()
	return obj, ok
}

// Remove deletes h and returns the object it held.
func (t *Table[T]) Remove(h shaderprog.Handle) (T, bool) {
	t.mu.Lock()
	obj, ok := t.objects[h]
	if ok {
		delete(t.objects, h)
	}
	t.mu.Unlock()
	return obj, ok
}

// Len returns the number of live objects.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.objects)
}

// Drain removes every object and returns them in handle order.
func (t *Table[T]) Drain() []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	hs := make([]shaderprog.Handle, 0, len(t.objects))
	for h := range t.objects {
		hs = append(hs, h)
	}
	slices.Sort(hs)
	objs := make([]T, 0, len(hs))
	for _, h := range hs {
		objs = append(objs, t.objects[h])
		delete(t.objects, h)
	}
	return objs
}
