// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package translate converts shader sources between shading languages with
// naga, so that one WGSL source can feed an OpenGL device.
//
// Only WGSL to GLSL is supported. The entry point matching the source stage
// (@vertex or @fragment) is emitted as GLSL main; a module holding both
// entry points can therefore be used for both stages.
//
//	b, _ := shaderprog.NewBuilder(glDevice, shaderprog.WithTranslator(translate.New()))
package translate

import (
	"errors"
	"fmt"

	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/shaderprog"
	"github.com/gogpu/shaderprog/internal/wgslcheck"
)

var (
	// ErrUnsupported is returned for a language pair that cannot be translated.
	ErrUnsupported = errors.New("translate: unsupported language pair")

	// ErrNoEntryPoint is returned when the module has no entry point for the
	// source stage.
	ErrNoEntryPoint = errors.New("translate: no entry point for stage")

	// ErrInvalidSource is returned when the source does not compile. The
	// wrapped message carries the front-end diagnostic.
	ErrInvalidSource = errors.New("translate: source does not compile")
)

// Option configures a Translator.
type Option func(*Translator)

// WithVersion sets the emitted GLSL version. The default is 330 core, the
// version an OpenGL 3.3 core context accepts.
func WithVersion(v glsl.Version) Option {
	return func(t *Translator) {
		t.version = v
	}
}

// Translator implements shaderprog.Translator.
type Translator struct {
	version glsl.Version
}

// New creates a translator emitting GLSL 330 core unless configured otherwise.
func New(opts ...Option) *Translator {
	t := &Translator{version: glsl.Version330}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate converts src into the language to. A source already written in
// that language is returned unchanged.
func (t *Translator) Translate(src shaderprog.Source, to shaderprog.Language) (shaderprog.Source, error) {
	if src.Language == to {
		return src, nil
	}
	if src.Language != shaderprog.LanguageWGSL || to != shaderprog.LanguageGLSL {
		return shaderprog.Source{}, fmt.Errorf("%w: %s to %s", ErrUnsupported, src.Language, to)
	}

	module, log := wgslcheck.Compile(src.Text, false)
	if module == nil {
		return shaderprog.Source{}, fmt.Errorf("%w:\n%s", ErrInvalidSource, log)
	}

	ep, _ := wgslcheck.EntryPoint(module, irStage(src.Stage))
	if ep == nil {
		return shaderprog.Source{}, fmt.Errorf("%w: %s", ErrNoEntryPoint, src.Stage)
	}

	opts := glsl.DefaultOptions()
	opts.LangVersion = t.version
	opts.EntryPoint = ep.Name
	text, _, err := glsl.Compile(module, opts)
	if err != nil {
		return shaderprog.Source{}, fmt.Errorf("translate: %s entry point %q: %w", src.Stage, ep.Name, err)
	}

	out := src
	out.Language = shaderprog.LanguageGLSL
	out.Text = text
	return out, nil
}

func irStage(s shaderprog.Stage) ir.ShaderStage {
	if s == shaderprog.StageFragment {
		return ir.StageFragment
	}
	return ir.StageVertex
}

var _ shaderprog.Translator = (*Translator)(nil)
