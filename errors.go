// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shaderprog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNilDevice is returned by NewBuilder when no device is given.
	ErrNilDevice = errors.New("shaderprog: nil device")

	// ErrEmptySource is returned when a source has no text.
	ErrEmptySource = errors.New("shaderprog: empty shader source")

	// ErrLanguageMismatch is returned when a source is written in a language
	// the device does not accept and no translator is configured.
	ErrLanguageMismatch = errors.New("shaderprog: source language not accepted by device")

	// ErrPrecompileMissing is returned by Link when a unit is missing or did
	// not compile. Linking is not attempted.
	ErrPrecompileMissing = errors.New("shaderprog: link requires two successfully compiled units")

	// ErrForeignUnit is returned by Link when a unit was compiled by a
	// builder bound to another device. Linking is not attempted.
	ErrForeignUnit = errors.New("shaderprog: unit compiled on another device")

	// ErrStageMismatch is returned by Link when a unit was compiled for the
	// other stage.
	ErrStageMismatch = errors.New("shaderprog: unit compiled for the wrong stage")

	// ErrUnitReleased is returned when a unit is used after Link or Release
	// already freed it.
	ErrUnitReleased = errors.New("shaderprog: compiled unit already released")

	// ErrAttemptFinished is returned when Run is called on an attempt that
	// already reached Ready or Failed.
	ErrAttemptFinished = errors.New("shaderprog: build attempt already finished")

	// ErrDuplicateVariant is returned by BuildVariants when two variants share
	// a name.
	ErrDuplicateVariant = errors.New("shaderprog: duplicate variant name")
)

// CompileError reports that the backend rejected a shader source.
type CompileError struct {
	Stage Stage
	Label string
	// Log is the backend diagnostic text, verbatim.
	Log string
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	msg := strings.TrimSpace(e.Log)
	if msg == "" {
		msg = "no diagnostic"
	}
	if e.Label != "" && e.Label != e.Stage.String() {
		return fmt.Sprintf("shaderprog: %s shader %q failed to compile: %s", e.Stage, e.Label, msg)
	}
	return fmt.Sprintf("shaderprog: %s shader failed to compile: %s", e.Stage, msg)
}

// LinkError reports that the backend could not link a program.
type LinkError struct {
	Label string
	// Log is the backend diagnostic text, verbatim.
	Log string
}

// Error implements the error interface.
func (e *LinkError) Error() string {
	msg := strings.TrimSpace(e.Log)
	if msg == "" {
		msg = "no diagnostic"
	}
	if e.Label != "" {
		return fmt.Sprintf("shaderprog: program %q failed to link: %s", e.Label, msg)
	}
	return "shaderprog: program failed to link: " + msg
}

// IsCompileError reports whether err wraps a *CompileError.
func IsCompileError(err error) bool {
	var ce *CompileError
	return errors.As(err, &ce)
}

// IsLinkError reports whether err wraps a *LinkError.
func IsLinkError(err error) bool {
	var le *LinkError
	return errors.As(err, &le)
}
