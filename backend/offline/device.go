// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package offline provides a shaderprog.Device that needs no GPU.
//
// Shaders are WGSL. Compiling runs the naga front end (parse, lower and
// optionally IR validation); linking checks that both stages are present and
// that every fragment input is written by the vertex stage with the same
// type. Diagnostics read like driver info logs, so the device is a drop-in
// for CI, tooling and tests of code that builds programs.
package offline

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gogpu/naga/ir"

	"github.com/gogpu/shaderprog"
	"github.com/gogpu/shaderprog/internal/handles"
	"github.com/gogpu/shaderprog/internal/wgslcheck"
)

type shader struct {
	stage    shaderprog.Stage
	text     string
	compiled bool
	ok       bool
	log      string
	module   *ir.Module
}

type program struct {
	attached []shaderprog.Handle
	linked   bool
	ok       bool
	log      string
}

// Option configures a Device.
type Option func(*Device)

// WithValidation enables naga IR validation after lowering. Off by default:
// the front end already rejects malformed source and validation is strict
// about constructs that drivers accept.
func WithValidation(enabled bool) Option {
	return func(d *Device) {
		d.validate = enabled
	}
}

// WithLogger sets the device logger. Defaults to shaderprog.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(d *Device) {
		d.logger = l
	}
}

// Device is an in-process WGSL device.
type Device struct {
	validate bool
	logger   *slog.Logger
	shaders  *handles.Table[*shader]
	programs *handles.Table[*program]
}

// New creates an offline device.
func New(opts ...Option) *Device {
	d := &Device{
		shaders:  handles.New[*shader](),
		programs: handles.New[*program](),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetLogger replaces the device logger. Nil restores shaderprog.Logger().
func (d *Device) SetLogger(l *slog.Logger) {
	d.logger = l
}

func (d *Device) log() *slog.Logger {
	if d.logger != nil {
		return d.logger
	}
	return shaderprog.Logger()
}

func (d *Device) shader(op string, h shaderprog.Handle) *shader {
	s, ok := d.shaders.Get(h)
	if !ok {
		d.log().Warn("offline: invalid shader handle", "op", op, "handle", uint32(h))
		return nil
	}
	return s
}

func (d *Device) program(op string, h shaderprog.Handle) *program {
	p, ok := d.programs.Get(h)
	if !ok {
		d.log().Warn("offline: invalid program handle", "op", op, "handle", uint32(h))
		return nil
	}
	return p
}

// Language implements shaderprog.Device.
func (d *Device) Language() shaderprog.Language { return shaderprog.LanguageWGSL }

// CreateShader implements shaderprog.Device.
func (d *Device) CreateShader(stage shaderprog.Stage) shaderprog.Handle {
	return d.shaders.Add(&shader{stage: stage})
}

// ShaderSource implements shaderprog.Device.
func (d *Device) ShaderSource(h shaderprog.Handle, text string) {
	if s := d.shader("ShaderSource", h); s != nil {
		s.text = text
	}
}

// CompileShader implements shaderprog.Device.
func (d *Device) CompileShader(h shaderprog.Handle) {
	s := d.shader("CompileShader", h)
	if s == nil {
		return
	}
	s.compiled = true
	s.module, s.log = wgslcheck.Compile(s.text, d.validate)
	s.ok = s.module != nil
	d.log().Debug("offline: compiled shader", "handle", uint32(h), "stage", s.stage, "ok", s.ok)
}

// ShaderCompileStatus implements shaderprog.Device.
func (d *Device) ShaderCompileStatus(h shaderprog.Handle) bool {
	s := d.shader("ShaderCompileStatus", h)
	return s != nil && s.compiled && s.ok
}

// ShaderInfoLog implements shaderprog.Device.
func (d *Device) ShaderInfoLog(h shaderprog.Handle) string {
	if s := d.shader("ShaderInfoLog", h); s != nil {
		return s.log
	}
	return ""
}

// CreateProgram implements shaderprog.Device.
func (d *Device) CreateProgram() shaderprog.Handle {
	return d.programs.Add(&program{})
}

// AttachShader implements shaderprog.Device.
func (d *Device) AttachShader(prog, sh shaderprog.Handle) {
	p := d.program("AttachShader", prog)
	if p == nil || d.shader("AttachShader", sh) == nil {
		return
	}
	p.attached = append(p.attached, sh)
}

// LinkProgram implements shaderprog.Device.
func (d *Device) LinkProgram(prog shaderprog.Handle) {
	p := d.program("LinkProgram", prog)
	if p == nil {
		return
	}
	p.linked = true
	p.ok = false

	vertex, fragment, problems := d.stages(p.attached)
	if len(problems) == 0 {
		problems = wgslcheck.Match(vertex.module, fragment.module)
	}
	if len(problems) > 0 {
		p.log = strings.Join(problems, "\n") + "\n"
		d.log().Debug("offline: link failed", "handle", uint32(prog), "problems", len(problems))
		return
	}
	p.ok = true
	p.log = ""
}

// stages picks the compiled vertex and fragment shader among attached.
func (d *Device) stages(attached []shaderprog.Handle) (vertex, fragment *shader, problems []string) {
	for _, h := range attached {
		s, ok := d.shaders.Get(h)
		switch {
		case !ok:
			problems = append(problems, fmt.Sprintf("error: shader %d was deleted before link", h))
		case !s.compiled || !s.ok:
			problems = append(problems, fmt.Sprintf("error: %s shader %d is not compiled", s.stage, h))
		case s.stage == shaderprog.StageVertex:
			vertex = s
		case s.stage == shaderprog.StageFragment:
			fragment = s
		}
	}
	if len(problems) > 0 {
		return nil, nil, problems
	}
	if vertex == nil {
		problems = append(problems, "error: no vertex shader attached")
	}
	if fragment == nil {
		problems = append(problems, "error: no fragment shader attached")
	}
	return vertex, fragment, problems
}

// ProgramLinkStatus implements shaderprog.Device.
func (d *Device) ProgramLinkStatus(prog shaderprog.Handle) bool {
	p := d.program("ProgramLinkStatus", prog)
	return p != nil && p.linked && p.ok
}

// ProgramInfoLog implements shaderprog.Device.
func (d *Device) ProgramInfoLog(prog shaderprog.Handle) string {
	if p := d.program("ProgramInfoLog", prog); p != nil {
		return p.log
	}
	return ""
}

// DeleteShader implements shaderprog.Device.
func (d *Device) DeleteShader(h shaderprog.Handle) {
	if _, ok := d.shaders.Remove(h); !ok {
		d.log().Warn("offline: invalid shader handle", "op", "DeleteShader", "handle", uint32(h))
	}
}

// DeleteProgram implements shaderprog.Device.
func (d *Device) DeleteProgram(prog shaderprog.Handle) {
	if _, ok := d.programs.Remove(prog); !ok {
		d.log().Warn("offline: invalid program handle", "op", "DeleteProgram", "handle", uint32(prog))
	}
}

// LiveShaders returns the number of shader objects not yet deleted.
func (d *Device) LiveShaders() int { return d.shaders.Len() }

// LivePrograms returns the number of program objects not yet deleted.
func (d *Device) LivePrograms() int { return d.programs.Len() }

var _ shaderprog.Device = (*Device)(nil)
