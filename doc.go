// Package shaderprog builds GPU shader programs from vertex and fragment
// source text.
//
// # Overview
//
// A [Builder] compiles each stage through a [Device], links the two compiled
// units into a program object and reports failures at the stage where they
// happened. Failures are values ([*CompileError], [*LinkError]), never
// console output: printing or aborting is the caller's decision.
//
// # Quick Start
//
//	dev := offline.New() // or opengl.New(), wgpu.New(halDevice)
//	b, err := shaderprog.NewBuilder(dev)
//	if err != nil {
//	    return err
//	}
//
//	prog, err := b.Build(
//	    shaderprog.VertexWGSL(vertexText),
//	    shaderprog.FragmentWGSL(fragmentText),
//	)
//	var ce *shaderprog.CompileError
//	if errors.As(err, &ce) {
//	    fmt.Fprintf(os.Stderr, "%s stage:\n%s", ce.Stage, ce.Log)
//	}
//	defer prog.Delete()
//
// # Build sequence
//
// One build runs Start, CompilingVertex, CompilingFragment, Linking and ends
// in Ready or Failed (see [Attempt]). Compiled units are released by the link
// that consumes them, successful or not, so a unit never serves two
// programs. Two programs sharing a vertex source each compile their own
// vertex unit ([Builder.BuildVariants]).
//
// # Backends
//
//   - backend/opengl: OpenGL 3.3 core through go-gl
//   - backend/wgpu: gogpu/wgpu HAL shader modules and render pipelines
//   - backend/offline: naga front end only, no GPU required
//
// # Threading
//
// Builders and devices are single-threaded: every call must happen on the
// thread that owns the graphics context.
package shaderprog
