package backend

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Factory opens a backend.
type Factory func(Config) (*Opened, error)

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	// Priority order for Default (first that opens wins).
	// GL > WGPU > Offline; the noop HAL is only a fallback.
	backendPriority = []string{NameGL, NameWGPU, NameOffline}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the registered backend names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

func lookup(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := factories[name]
	return f, ok
}

// Open opens the named backend.
func Open(name string, cfg Config) (*Opened, error) {
	factory, ok := lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	o, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", name, err)
	}
	o.Name = name
	cfg.logger().Debug("backend: opened", "name", name)
	return o, nil
}

// Default opens the best available backend based on priority, falling back
// to any other registered backend. The error joins every failed attempt.
func Default(cfg Config) (*Opened, error) {
	tried := make(map[string]bool)
	var errs []error
	try := func(name string) *Opened {
		tried[name] = true
		o, err := Open(name, cfg)
		if err != nil {
			cfg.logger().Debug("backend: skipped", "name", name, "err", err)
			errs = append(errs, err)
			return nil
		}
		return o
	}

	for _, name := range backendPriority {
		if !IsRegistered(name) {
			continue
		}
		if o := try(name); o != nil {
			return o, nil
		}
	}

	// Fallback: first available
	for _, name := range Available() {
		if tried[name] {
			continue
		}
		if o := try(name); o != nil {
			return o, nil
		}
	}

	return nil, errors.Join(append([]error{ErrBackendNotAvailable}, errs...)...)
}
