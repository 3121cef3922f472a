// Package shadertest provides a recording shaderprog.Device for tests.
//
// The device compiles nothing: outcomes are decided by CompileFunc and
// LinkFunc. Every call is recorded, object lifetimes are counted and misuse
// (use after delete, unknown handles, double deletes) is collected instead of
// panicking so tests can assert on it.
package shadertest

import (
	"fmt"
	"strings"

	"github.com/gogpu/shaderprog"
)

// Call is one recorded device call.
type Call struct {
	Name   string
	Handle shaderprog.Handle
}

// String formats the call as Name(handle).
func (c Call) String() string {
	return fmt.Sprintf("%s(%d)", c.Name, c.Handle)
}

type shader struct {
	stage    shaderprog.Stage
	text     string
	compiled bool
	ok       bool
	log      string
	deleted  bool
}

type program struct {
	attached []shaderprog.Handle
	linked   bool
	ok       bool
	log      string
}

// Device is a recording fake. The zero value is not usable; call New.
type Device struct {
	// Lang is the language reported by Language. Defaults to GLSL.
	Lang shaderprog.Language

	// CompileFunc returns the diagnostic for a source; an empty result means
	// the compile succeeds. Nil compiles everything.
	CompileFunc func(stage shaderprog.Stage, text string) string

	// LinkFunc returns the link diagnostic for the attached vertex and
	// fragment texts; empty means success. Nil links everything.
	LinkFunc func(vertex, fragment string) string

	// FailCreateShader makes CreateShader return InvalidHandle.
	FailCreateShader bool

	// FailCreateProgram makes CreateProgram return InvalidHandle.
	FailCreateProgram bool

	next     shaderprog.Handle
	shaders  map[shaderprog.Handle]*shader
	programs map[shaderprog.Handle]*program
	calls    []Call
	misuse   []string

	ShadersCreated  int
	ShadersDeleted  int
	ProgramsCreated int
	ProgramsDeleted int
}

// New returns an empty recording device accepting GLSL.
func New() *Device {
	return &Device{
		Lang:     shaderprog.LanguageGLSL,
		shaders:  make(map[shaderprog.Handle]*shader),
		programs: make(map[shaderprog.Handle]*program),
	}
}

// FailOn returns a CompileFunc failing every source that contains substr,
// with a driver-style diagnostic.
func FailOn(substr string) func(shaderprog.Stage, string) string {
	return func(_ shaderprog.Stage, text string) string {
		idx := strings.Index(text, substr)
		if idx < 0 {
			return ""
		}
		line := strings.Count(text[:idx], "\n") + 1
		return fmt.Sprintf("0:%d(1): error: syntax error, unexpected %q\n", line, substr)
	}
}

func (d *Device) record(name string, h shaderprog.Handle) {
	d.calls = append(d.calls, Call{Name: name, Handle: h})
}

func (d *Device) misused(format string, args ...any) {
	d.misuse = append(d.misuse, fmt.Sprintf(format, args...))
}

func (d *Device) alloc() shaderprog.Handle {
	d.next++
	return d.next
}

func (d *Device) liveShader(name string, h shaderprog.Handle) *shader {
	s, ok := d.shaders[h]
	if !ok {
		d.misused("%s: unknown shader %d", name, h)
		return nil
	}
	if s.deleted {
		d.misused("%s: shader %d used after delete", name, h)
		return nil
	}
	return s
}

func (d *Device) liveProgram(name string, h shaderprog.Handle) *program {
	p, ok := d.programs[h]
	if !ok {
		d.misused("%s: unknown program %d", name, h)
		return nil
	}
	return p
}

// Language implements shaderprog.Device.
func (d *Device) Language() shaderprog.Language { return d.Lang }

// CreateShader implements shaderprog.Device.
func (d *Device) CreateShader(stage shaderprog.Stage) shaderprog.Handle {
	if d.FailCreateShader {
		d.record("CreateShader", shaderprog.InvalidHandle)
		return shaderprog.InvalidHandle
	}
	h := d.alloc()
	d.shaders[h] = &shader{stage: stage}
	d.ShadersCreated++
	d.record("CreateShader", h)
	return h
}

// ShaderSource implements shaderprog.Device.
func (d *Device) ShaderSource(h shaderprog.Handle, text string) {
	d.record("ShaderSource", h)
	if s := d.liveShader("ShaderSource", h); s != nil {
		s.text = text
		s.compiled = false
	}
}

// CompileShader implements shaderprog.Device.
func (d *Device) CompileShader(h shaderprog.Handle) {
	d.record("CompileShader", h)
	s := d.liveShader("CompileShader", h)
	if s == nil {
		return
	}
	s.compiled = true
	s.ok = true
	s.log = ""
	if d.CompileFunc != nil {
		if log := d.CompileFunc(s.stage, s.text); log != "" {
			s.ok = false
			s.log = log
		}
	}
}

// ShaderCompileStatus implements shaderprog.Device.
func (d *Device) ShaderCompileStatus(h shaderprog.Handle) bool {
	d.record("ShaderCompileStatus", h)
	s := d.liveShader("ShaderCompileStatus", h)
	return s != nil && s.compiled && s.ok
}

// ShaderInfoLog implements shaderprog.Device.
func (d *Device) ShaderInfoLog(h shaderprog.Handle) string {
	d.record("ShaderInfoLog", h)
	if s := d.liveShader("ShaderInfoLog", h); s != nil {
		return s.log
	}
	return ""
}

// CreateProgram implements shaderprog.Device.
func (d *Device) CreateProgram() shaderprog.Handle {
	if d.FailCreateProgram {
		d.record("CreateProgram", shaderprog.InvalidHandle)
		return shaderprog.InvalidHandle
	}
	h := d.alloc()
	d.programs[h] = &program{}
	d.ProgramsCreated++
	d.record("CreateProgram", h)
	return h
}

// AttachShader implements shaderprog.Device.
func (d *Device) AttachShader(prog, sh shaderprog.Handle) {
	d.record("AttachShader", sh)
	p := d.liveProgram("AttachShader", prog)
	s := d.liveShader("AttachShader", sh)
	if p == nil || s == nil {
		return
	}
	p.attached = append(p.attached, sh)
}

// LinkProgram implements shaderprog.Device.
func (d *Device) LinkProgram(prog shaderprog.Handle) {
	d.record("LinkProgram", prog)
	p := d.liveProgram("LinkProgram", prog)
	if p == nil {
		return
	}
	p.linked = true
	p.ok = false

	var vertex, fragment *shader
	for _, h := range p.attached {
		s := d.shaders[h]
		switch {
		case !s.compiled || !s.ok:
			p.log = fmt.Sprintf("error: shader %d is not compiled\n", h)
			return
		case s.stage == shaderprog.StageVertex:
			vertex = s
		case s.stage == shaderprog.StageFragment:
			fragment = s
		}
	}
	if vertex == nil || fragment == nil {
		p.log = "error: program needs a vertex and a fragment shader\n"
		return
	}
	if d.LinkFunc != nil {
		if log := d.LinkFunc(vertex.text, fragment.text); log != "" {
			p.log = log
			return
		}
	}
	p.ok = true
	p.log = ""
}

// ProgramLinkStatus implements shaderprog.Device.
func (d *Device) ProgramLinkStatus(prog shaderprog.Handle) bool {
	d.record("ProgramLinkStatus", prog)
	p := d.liveProgram("ProgramLinkStatus", prog)
	return p != nil && p.linked && p.ok
}

// ProgramInfoLog implements shaderprog.Device.
func (d *Device) ProgramInfoLog(prog shaderprog.Handle) string {
	d.record("ProgramInfoLog", prog)
	if p := d.liveProgram("ProgramInfoLog", prog); p != nil {
		return p.log
	}
	return ""
}

// DeleteShader implements shaderprog.Device.
func (d *Device) DeleteShader(h shaderprog.Handle) {
	d.record("DeleteShader", h)
	if s := d.liveShader("DeleteShader", h); s != nil {
		s.deleted = true
		d.ShadersDeleted++
	}
}

// DeleteProgram implements shaderprog.Device.
func (d *Device) DeleteProgram(h shaderprog.Handle) {
	d.record("DeleteProgram", h)
	if p := d.liveProgram("DeleteProgram", h); p != nil {
		delete(d.programs, h)
		d.ProgramsDeleted++
	}
}

// Calls returns every recorded call in order.
func (d *Device) Calls() []Call {
	return append([]Call(nil), d.calls...)
}

// CallNames returns the names of the recorded calls in order.
func (d *Device) CallNames() []string {
	names := make([]string, len(d.calls))
	for i, c := range d.calls {
		names[i] = c.Name
	}
	return names
}

// Count returns how many times the named call was made.
func (d *Device) Count(name string) int {
	n := 0
	for _, c := range d.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls. Objects and counters are kept.
func (d *Device) Reset() {
	d.calls = d.calls[:0]
}

// LiveShaders returns the number of shader objects not yet deleted.
func (d *Device) LiveShaders() int {
	return d.ShadersCreated - d.ShadersDeleted
}

// LivePrograms returns the number of program objects not yet deleted.
func (d *Device) LivePrograms() int {
	return d.ProgramsCreated - d.ProgramsDeleted
}

// Misuse returns every contract violation observed so far.
func (d *Device) Misuse() []string {
	return append([]string(nil), d.misuse...)
}

var _ shaderprog.Device = (*Device)(nil)
