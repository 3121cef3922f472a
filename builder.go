// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shaderprog

import (
	"fmt"
	"log/slog"
)

// Builder compiles shader sources and links them into programs on one
// Device.
//
// A Builder holds no per-build state; it may be used for any number of
// independent builds, one at a time, on the device's context thread.
type Builder struct {
	dev        Device
	logger     *slog.Logger
	translator Translator
}

// NewBuilder creates a builder issuing commands to dev.
func NewBuilder(dev Device, opts ...BuilderOption) (*Builder, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}
	var o builderOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger != nil {
		propagateLogger(dev, o.logger)
	}
	return &Builder{
		dev:        dev,
		logger:     o.logger,
		translator: o.translator,
	}, nil
}

// Device returns the device the builder issues commands to.
func (b *Builder) Device() Device { return b.dev }

func (b *Builder) log() *slog.Logger {
	if b.logger != nil {
		return b.logger
	}
	return Logger()
}

// Compile compiles one source into a unit.
//
// On a backend compile failure Compile returns the failed unit together with
// a *CompileError; the unit's shader object is still allocated and must be
// released (Build does this itself). ErrEmptySource and ErrLanguageMismatch
// are returned without a unit and without touching the device.
func (b *Builder) Compile(src Source) (*CompiledUnit, error) {
	if src.Text == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptySource, src.name())
	}
	label := src.name()

	if want := b.dev.Language(); src.Language != want {
		if b.translator == nil {
			return nil, fmt.Errorf("%w: %s source %q for a %s device", ErrLanguageMismatch, src.Language, label, want)
		}
		translated, err := b.translator.Translate(src, want)
		if err != nil {
			u := &CompiledUnit{dev: b.dev, stage: src.Stage, label: label, log: err.Error()}
			return u, b.compileFailed(u)
		}
		b.log().Debug("shaderprog: translated source",
			"label", label, "from", src.Language, "to", want)
		src = translated
	}

	h := b.dev.CreateShader(src.Stage)
	u := &CompiledUnit{dev: b.dev, stage: src.Stage, label: label, handle: h}
	if h == InvalidHandle {
		u.log = "shader object allocation failed"
		return u, b.compileFailed(u)
	}

	b.dev.ShaderSource(h, src.Text)
	b.dev.CompileShader(h)
	if !b.dev.ShaderCompileStatus(h) {
		u.log = b.dev.ShaderInfoLog(h)
		if u.log == "" {
			u.log = fmt.Sprintf("%s shader compilation failed (no driver diagnostic)", u.stage)
		}
		return u, b.compileFailed(u)
	}

	u.ok = true
	b.log().Debug("shaderprog: compiled shader",
		"stage", u.stage, "label", label, "handle", uint32(h))
	return u, nil
}

func (b *Builder) compileFailed(u *CompiledUnit) error {
	b.log().Warn("shaderprog: shader compilation failed",
		"stage", u.stage, "label", u.label, "log", u.log)
	return &CompileError{Stage: u.stage, Label: u.label, Log: u.log}
}

// Link links a vertex and a fragment unit into a program.
//
// Both units must have compiled on this builder's device; otherwise Link
// returns ErrPrecompileMissing or ErrForeignUnit without calling the device
// and without releasing anything. Once the link
// is attempted both units are released whatever the outcome. On a backend
// link failure Link returns the failed program together with a *LinkError.
func (b *Builder) Link(vertex, fragment *CompiledUnit) (*LinkedProgram, error) {
	if err := b.checkLinkable(vertex, StageVertex); err != nil {
		return nil, err
	}
	if err := b.checkLinkable(fragment, StageFragment); err != nil {
		return nil, err
	}
	return b.link(vertex.label+"+"+fragment.label, vertex, fragment)
}

func (b *Builder) checkLinkable(u *CompiledUnit, want Stage) error {
	switch {
	case u == nil:
		return fmt.Errorf("%w: no %s unit", ErrPrecompileMissing, want)
	case u.dev != b.dev:
		return fmt.Errorf("%w: %s unit %q", ErrForeignUnit, want, u.label)
	case u.stage != want:
		return fmt.Errorf("%w: %s unit %q given as the %s unit", ErrStageMismatch, u.stage, u.label, want)
	case u.released:
		return fmt.Errorf("%w: %s unit %q", ErrUnitReleased, want, u.label)
	case !u.ok:
		return fmt.Errorf("%w: %s unit %q did not compile", ErrPrecompileMissing, want, u.label)
	}
	return nil
}

// link runs the program sequence on two checked units.
func (b *Builder) link(label string, vertex, fragment *CompiledUnit) (*LinkedProgram, error) {
	defer fragment.Release()
	defer vertex.Release()

	p := &LinkedProgram{dev: b.dev, label: label}
	h := b.dev.CreateProgram()
	if h == InvalidHandle {
		p.log = "program object allocation failed"
		return p, b.linkFailed(p)
	}

	b.dev.AttachShader(h, vertex.handle)
	b.dev.AttachShader(h, fragment.handle)
	b.dev.LinkProgram(h)
	if !b.dev.ProgramLinkStatus(h) {
		p.log = b.dev.ProgramInfoLog(h)
		if p.log == "" {
			p.log = "program link failed (no driver diagnostic)"
		}
		b.dev.DeleteProgram(h)
		return p, b.linkFailed(p)
	}

	p.handle = h
	p.ok = true
	b.log().Debug("shaderprog: linked program", "label", label, "handle", uint32(h))
	return p, nil
}

func (b *Builder) linkFailed(p *LinkedProgram) error {
	b.log().Warn("shaderprog: program link failed", "label", p.label, "log", p.log)
	return &LinkError{Label: p.label, Log: p.log}
}

// Build compiles both sources and links them in one attempt. See Attempt for
// the exact state sequence. Every shader object allocated by the attempt is
// freed before Build returns.
//
// On a compile failure Build returns a nil program and a *CompileError; on a
// link failure it returns the failed program and a *LinkError.
func (b *Builder) Build(vertex, fragment Source) (*LinkedProgram, error) {
	return b.NewAttempt(vertex, fragment).Run()
}
