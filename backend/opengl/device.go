// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package opengl provides a shaderprog.Device over an OpenGL 3.3 core
// context through go-gl.
//
// Every call goes straight to the driver, so the device must be used on the
// OS thread holding the current context, after gl.Init succeeded (see
// internal/glcontext for a hidden-window context). Handles are the GL object
// names.
package opengl

import (
	"log/slog"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/gogpu/shaderprog"
)

// Option configures a Device.
type Option func(*Device)

// WithLogger sets the device logger. Defaults to shaderprog.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(d *Device) {
		d.logger = l
	}
}

// Device issues shader and program commands to the current GL context.
type Device struct {
	logger *slog.Logger
}

// New creates a device for the current context.
func New(opts ...Option) *Device {
	d := &Device{}
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

// Version returns the GL_VERSION string of the current context.
func Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func shaderType(stage shaderprog.Stage) uint32 {
	if stage == shaderprog.StageFragment {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

// Language implements shaderprog.Device.
func (d *Device) Language() shaderprog.Language { return shaderprog.LanguageGLSL }

// CreateShader implements shaderprog.Device.
func (d *Device) CreateShader(stage shaderprog.Stage) shaderprog.Handle {
	h := gl.CreateShader(shaderType(stage))
	d.log().Debug("opengl: glCreateShader", "stage", stage, "name", h)
	return shaderprog.Handle(h)
}

// ShaderSource implements shaderprog.Device.
func (d *Device) ShaderSource(h shaderprog.Handle, text string) {
	csources, free := gl.Strs(text + "\x00")
	gl.ShaderSource(uint32(h), 1, csources, nil)
	free()
}

// CompileShader implements shaderprog.Device.
func (d *Device) CompileShader(h shaderprog.Handle) {
	gl.CompileShader(uint32(h))
}

// ShaderCompileStatus implements shaderprog.Device.
func (d *Device) ShaderCompileStatus(h shaderprog.Handle) bool {
	var status int32
	gl.GetShaderiv(uint32(h), gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

// ShaderInfoLog implements shaderprog.Device. The buffer is sized by
// INFO_LOG_LENGTH so long driver logs are not truncated.
func (d *Device) ShaderInfoLog(h shaderprog.Handle) string {
	var logLength int32
	gl.GetShaderiv(uint32(h), gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	msg := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(uint32(h), logLength, nil, gl.Str(msg))
	return strings.TrimRight(msg, "\x00")
}

// CreateProgram implements shaderprog.Device.
func (d *Device) CreateProgram() shaderprog.Handle {
	h := gl.CreateProgram()
	d.log().Debug("opengl: glCreateProgram", "name", h)
	return shaderprog.Handle(h)
}

// AttachShader implements shaderprog.Device.
func (d *Device) AttachShader(prog, sh shaderprog.Handle) {
	gl.AttachShader(uint32(prog), uint32(sh))
}

// LinkProgram implements shaderprog.Device.
func (d *Device) LinkProgram(prog shaderprog.Handle) {
	gl.LinkProgram(uint32(prog))
}

// ProgramLinkStatus implements shaderprog.Device.
func (d *Device) ProgramLinkStatus(prog shaderprog.Handle) bool {
	var status int32
	gl.GetProgramiv(uint32(prog), gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

// ProgramInfoLog implements shaderprog.Device.
func (d *Device) ProgramInfoLog(prog shaderprog.Handle) string {
	var logLength int32
	gl.GetProgramiv(uint32(prog), gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	msg := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(uint32(prog), logLength, nil, gl.Str(msg))
	return strings.TrimRight(msg, "\x00")
}

// DeleteShader implements shaderprog.Device.
func (d *Device) DeleteShader(h shaderprog.Handle) {
	gl.DeleteShader(uint32(h))
}

// DeleteProgram implements shaderprog.Device.
func (d *Device) DeleteProgram(prog shaderprog.Handle) {
	gl.DeleteProgram(uint32(prog))
}

// Use makes a linked program current for subsequent draw calls.
func Use(p *shaderprog.LinkedProgram) {
	gl.UseProgram(uint32(p.Handle()))
}

var _ shaderprog.Device = (*Device)(nil)
