package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/shaderprog/internal/wgslcheck"
)

// vertexLayout packs the vertex inputs into one interleaved buffer in
// @location order. A vertex stage without inputs gets no buffer.
func vertexLayout(inputs []wgslcheck.Var) ([]gputypes.VertexBufferLayout, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	attrs := make([]gputypes.VertexAttribute, 0, len(inputs))
	var offset uint64
	for _, in := range inputs {
		format, size, err := vertexFormat(in)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, gputypes.VertexAttribute{
			Format:         format,
			Offset:         offset,
			ShaderLocation: in.Location,
		})
		offset += size
	}
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: offset,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes:  attrs,
		},
	}, nil
}

// vertexFormat maps an f32 scalar or vector input to its vertex format and
// byte size.
func vertexFormat(in wgslcheck.Var) (gputypes.VertexFormat, uint64, error) {
	switch t := in.Type.(type) {
	case ir.ScalarType:
		if t.Kind == ir.ScalarFloat && t.Width == 4 {
			return gputypes.VertexFormatFloat32, 4, nil
		}
	case ir.VectorType:
		if t.Scalar.Kind == ir.ScalarFloat && t.Scalar.Width == 4 {
			switch t.Size {
			case ir.Vec2:
				return gputypes.VertexFormatFloat32x2, 8, nil
			case ir.Vec3:
				return gputypes.VertexFormatFloat32x3, 12, nil
			case ir.Vec4:
				return gputypes.VertexFormatFloat32x4, 16, nil
			}
		}
	}
	return 0, 0, fmt.Errorf("vertex input %q at @location(%d): unsupported type %s",
		in.Name, in.Location, in.TypeName())
}
