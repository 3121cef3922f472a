// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu provides a shaderprog.Device over the gogpu/wgpu HAL.
//
// Shader objects are WGSL shader modules; a linked program is a render
// pipeline whose vertex buffer layout is derived from the vertex entry point
// inputs (one interleaved buffer, attributes in @location order). The
// pipeline is handed to the renderer through Pipeline.
//
// Before a module is created the source goes through the naga front end so a
// broken shader yields a driver-style info log instead of a HAL error.
package wgpu

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/wgpu/hal"

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
	ir       *ir.Module
	module   hal.ShaderModule
}

type program struct {
	attached []shaderprog.Handle
	linked   bool
	ok       bool
	log      string
	layout   hal.PipelineLayout
	pipeline hal.RenderPipeline
}

// Device implements shaderprog.Device on a hal.Device.
//
// Thread Safety: calls must come from one goroutine, like any shaderprog
// device. Close may be called from another goroutine once building stopped.
type Device struct {
	device      hal.Device
	format      gputypes.TextureFormat
	sampleCount uint32
	validate    bool
	logger      *slog.Logger

	shaders  *handles.Table[*shader]
	programs *handles.Table[*program]

	// Set when the device was opened by this package and must be destroyed
	// on Close.
	instance   hal.Instance
	ownsDevice bool

	closeOnce sync.Once
}

// New wraps an existing HAL device. The device stays owned by the caller;
// Close only destroys the objects created through this Device.
func New(device hal.Device, opts ...Option) *Device {
	d := &Device{
		device:      device,
		format:      gputypes.TextureFormatBGRA8Unorm,
		sampleCount: 1,
		shaders:     handles.New[*shader](),
		programs:    handles.New[*program](),
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

// Format returns the color target format of linked pipelines.
func (d *Device) Format() gputypes.TextureFormat { return d.format }

func (d *Device) shader(op string, h shaderprog.Handle) *shader {
	s, ok := d.shaders.Get(h)
	if !ok {
		d.log().Warn("wgpu: invalid shader handle", "op", op, "handle", uint32(h))
		return nil
	}
	return s
}

func (d *Device) program(op string, h shaderprog.Handle) *program {
	p, ok := d.programs.Get(h)
	if !ok {
		d.log().Warn("wgpu: invalid program handle", "op", op, "handle", uint32(h))
		return nil
	}
	return p
}

// Language implements shaderprog.Device.
func (d *Device) Language() shaderprog.Language { return shaderprog.LanguageWGSL }

// CreateShader implements shaderprog.Device.
func (d *Device) CreateShader(stage shaderprog.Stage) shaderprog.Handle {
	if d.device == nil {
		return shaderprog.InvalidHandle
	}
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
	d.destroyModule(s)
	s.compiled = true
	s.ok = false

	s.ir, s.log = wgslcheck.Compile(s.text, d.validate)
	if s.ir == nil {
		return
	}

	module, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  fmt.Sprintf("shaderprog_%s_%d", s.stage, h),
		Source: hal.ShaderSource{WGSL: s.text},
	})
	if err != nil {
		s.log = fmt.Sprintf("error: create shader module: %v\n", err)
		return
	}
	s.module = module
	s.ok = true
	d.log().Debug("wgpu: created shader module", "handle", uint32(h), "stage", s.stage)
}

func (d *Device) destroyModule(s *shader) {
	if s.module != nil {
		d.device.DestroyShaderModule(s.module)
		s.module = nil
	}
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
	if d.device == nil {
		return shaderprog.InvalidHandle
	}
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
	d.destroyPipeline(p)
	p.linked = true
	p.ok = false

	vertex, fragment, problems := d.stages(p.attached)
	if len(problems) == 0 {
		problems = wgslcheck.Match(vertex.ir, fragment.ir)
	}
	if len(problems) > 0 {
		p.log = strings.Join(problems, "\n") + "\n"
		return
	}

	if err := d.createPipeline(prog, p, vertex, fragment); err != nil {
		p.log = fmt.Sprintf("error: %v\n", err)
		return
	}
	p.ok = true
	p.log = ""
	d.log().Debug("wgpu: created render pipeline", "handle", uint32(prog), "format", d.format)
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

// createPipeline builds the layout and render pipeline of a checked program.
func (d *Device) createPipeline(h shaderprog.Handle, p *program, vertex, fragment *shader) error {
	vep, _ := wgslcheck.EntryPoint(vertex.ir, ir.StageVertex)
	fep, _ := wgslcheck.EntryPoint(fragment.ir, ir.StageFragment)

	buffers, err := vertexLayout(wgslcheck.VertexAttributes(vertex.ir))
	if err != nil {
		return err
	}

	layout, err := d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: fmt.Sprintf("shaderprog_layout_%d", h),
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}

	pipeline, err := d.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("shaderprog_pipeline_%d", h),
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     vertex.module,
			EntryPoint: vep.Name,
			Buffers:    buffers,
		},
		Fragment: &hal.FragmentState{
			Module:     fragment.module,
			EntryPoint: fep.Name,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    d.format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: d.sampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		d.device.DestroyPipelineLayout(layout)
		return fmt.Errorf("create render pipeline: %w", err)
	}
	p.layout = layout
	p.pipeline = pipeline
	return nil
}

// destroyPipeline releases pipeline resources in reverse creation order.
func (d *Device) destroyPipeline(p *program) {
	if p.pipeline != nil {
		d.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.layout != nil {
		d.device.DestroyPipelineLayout(p.layout)
		p.layout = nil
	}
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

// DeleteShader implements shaderprog.Device. Pipelines created from the
// module stay valid.
func (d *Device) DeleteShader(h shaderprog.Handle) {
	s, ok := d.shaders.Remove(h)
	if !ok {
		d.log().Warn("wgpu: invalid shader handle", "op", "DeleteShader", "handle", uint32(h))
		return
	}
	d.destroyModule(s)
}

// DeleteProgram implements shaderprog.Device.
func (d *Device) DeleteProgram(prog shaderprog.Handle) {
	p, ok := d.programs.Remove(prog)
	if !ok {
		d.log().Warn("wgpu: invalid program handle", "op", "DeleteProgram", "handle", uint32(prog))
		return
	}
	d.destroyPipeline(p)
}

// Pipeline returns the render pipeline of a linked program.
func (d *Device) Pipeline(prog shaderprog.Handle) (hal.RenderPipeline, bool) {
	p, ok := d.programs.Get(prog)
	if !ok || !p.ok || p.pipeline == nil {
		return nil, false
	}
	return p.pipeline, true
}

// LiveShaders returns the number of shader objects not yet deleted.
func (d *Device) LiveShaders() int { return d.shaders.Len() }

// LivePrograms returns the number of program objects not yet deleted.
func (d *Device) LivePrograms() int { return d.programs.Len() }

// Close destroys every pipeline and shader module still alive, then the HAL
// device and instance if this package opened them. Safe to call multiple
// times.
func (d *Device) Close() {
	d.closeOnce.Do(func() {
		if d.device == nil {
			return
		}
		for _, p := range d.programs.Drain() {
			d.destroyPipeline(p)
		}
		for _, s := range d.shaders.Drain() {
			d.destroyModule(s)
		}
		if d.ownsDevice {
			d.device.Destroy()
		}
		if d.instance != nil {
			d.instance.Destroy()
			d.instance = nil
		}
	})
}

var _ shaderprog.Device = (*Device)(nil)
