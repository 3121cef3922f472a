// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shaderprog

// Handle is an opaque backend-assigned identifier for a shader or program
// object.
type Handle uint32

// InvalidHandle is never assigned to a live object.
const InvalidHandle Handle = 0

// Device is the GPU command collaborator the builder sequences.
//
// The method set mirrors the OpenGL shader object API so that a GL context can
// be wrapped without translation; other backends (wgpu HAL, the offline naga
// checker) emulate it. All methods must be called from the thread that owns
// the backend's context. A Device is not required to be safe for concurrent
// use.
//
// Resource lifecycle:
//   - CreateShader and CreateProgram return InvalidHandle on allocation failure
//   - every created object must eventually be passed to DeleteShader or
//     DeleteProgram
//   - handles become invalid after deletion and are not reused
type Device interface {
	// Language reports the shading language CompileShader accepts.
	Language() Language

	// CreateShader allocates a shader object for the given stage.
	CreateShader(stage Stage) Handle

	// ShaderSource replaces the source text of a shader object.
	ShaderSource(shader Handle, text string)

	// CompileShader compiles the current source of a shader object.
	CompileShader(shader Handle)

	// ShaderCompileStatus reports whether the last compile succeeded.
	ShaderCompileStatus(shader Handle) bool

	// ShaderInfoLog returns the diagnostic text of the last compile.
	ShaderInfoLog(shader Handle) string

	// CreateProgram allocates an empty program object.
	CreateProgram() Handle

	// AttachShader attaches a compiled shader object to a program.
	AttachShader(program, shader Handle)

	// LinkProgram links the attached shader objects.
	LinkProgram(program Handle)

	// ProgramLinkStatus reports whether the last link succeeded.
	ProgramLinkStatus(program Handle) bool

	// ProgramInfoLog returns the diagnostic text of the last link.
	ProgramInfoLog(program Handle) string

	// DeleteShader frees a shader object. Attached shaders may be deleted;
	// the program keeps what it linked.
	DeleteShader(shader Handle)

	// DeleteProgram frees a program object.
	DeleteProgram(program Handle)
}

// Translator converts a source into another shading language. It lets a
// builder feed WGSL sources to a GLSL-only device, for example.
type Translator interface {
	Translate(src Source, to Language) (Source, error)
}
