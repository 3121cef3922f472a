package wgslcheck

import (
	"fmt"
	"slices"

	"github.com/gogpu/naga/ir"
)

// Var is one user-defined stage input or output.
type Var struct {
	Location uint32
	Name     string
	Type     ir.TypeInner
}

// TypeName returns the WGSL spelling of the variable type.
func (v Var) TypeName() string { return typeName(v.Type) }

// Inputs returns the @location arguments of fn, flattening struct arguments,
// sorted by location. Builtins are skipped.
func Inputs(m *ir.Module, fn *ir.Function) []Var {
	if fn == nil {
		return nil
	}
	var vars []Var
	for _, arg := range fn.Arguments {
		vars = appendVars(vars, m, arg.Name, arg.Type, arg.Binding)
	}
	sortVars(vars)
	return vars
}

// Outputs returns the @location results of fn, flattening a struct result,
// sorted by location.
func Outputs(m *ir.Module, fn *ir.Function) []Var {
	if fn == nil || fn.Result == nil {
		return nil
	}
	vars := appendVars(nil, m, "result", fn.Result.Type, fn.Result.Binding)
	sortVars(vars)
	return vars
}

// VertexAttributes returns the per-vertex inputs of the module's vertex entry
// point, the attributes a vertex buffer layout has to supply.
func VertexAttributes(m *ir.Module) []Var {
	_, fn := EntryPoint(m, ir.StageVertex)
	return Inputs(m, fn)
}

func appendVars(vars []Var, m *ir.Module, name string, th ir.TypeHandle, binding *ir.Binding) []Var {
	inner := typeInner(m, th)
	if binding != nil {
		if loc, ok := (*binding).(ir.LocationBinding); ok {
			vars = append(vars, Var{Location: loc.Location, Name: name, Type: inner})
		}
		return vars
	}
	st, ok := inner.(ir.StructType)
	if !ok {
		return vars
	}
	for _, member := range st.Members {
		if member.Binding == nil {
			continue
		}
		if loc, ok := (*member.Binding).(ir.LocationBinding); ok {
			vars = append(vars, Var{Location: loc.Location, Name: member.Name, Type: typeInner(m, member.Type)})
		}
	}
	return vars
}

func sortVars(vars []Var) {
	slices.SortFunc(vars, func(a, b Var) int {
		return int(a.Location) - int(b.Location)
	})
}

func typeInner(m *ir.Module, th ir.TypeHandle) ir.TypeInner {
	if m == nil || int(th) >= len(m.Types) {
		return nil
	}
	return m.Types[th].Inner
}

func typeName(inner ir.TypeInner) string {
	switch t := inner.(type) {
	case ir.ScalarType:
		return scalarName(t)
	case ir.VectorType:
		return fmt.Sprintf("vec%d<%s>", t.Size, scalarName(t.Scalar))
	case ir.MatrixType:
		return fmt.Sprintf("mat%dx%d<%s>", t.Columns, t.Rows, scalarName(t.Scalar))
	case nil:
		return "unknown"
	default:
		return fmt.Sprintf("%T", inner)
	}
}

func scalarName(s ir.ScalarType) string {
	switch s.Kind {
	case ir.ScalarSint:
		return fmt.Sprintf("i%d", int(s.Width)*8)
	case ir.ScalarUint:
		return fmt.Sprintf("u%d", int(s.Width)*8)
	case ir.ScalarFloat:
		return fmt.Sprintf("f%d", int(s.Width)*8)
	case ir.ScalarBool:
		return "bool"
	default:
		return "scalar"
	}
}

// Match checks that vertex and fragment modules can form one program and
// returns one diagnostic line per problem. An empty result means they link.
func Match(vertex, fragment *ir.Module) []string {
	var problems []string
	_, vfn := EntryPoint(vertex, ir.StageVertex)
	if vfn == nil {
		problems = append(problems, "error: vertex shader has no @vertex entry point")
	}
	_, ffn := EntryPoint(fragment, ir.StageFragment)
	if ffn == nil {
		problems = append(problems, "error: fragment shader has no @fragment entry point")
	}
	if len(problems) > 0 {
		return problems
	}

	written := make(map[uint32]Var)
	for _, out := range Outputs(vertex, vfn) {
		written[out.Location] = out
	}
	for _, in := range Inputs(fragment, ffn) {
		out, ok := written[in.Location]
		if !ok {
			problems = append(problems, fmt.Sprintf(
				"error: fragment input %q at @location(%d) is not written by the vertex stage",
				in.Name, in.Location))
			continue
		}
		if out.TypeName() != in.TypeName() {
			problems = append(problems, fmt.Sprintf(
				"error: type mismatch at @location(%d): vertex writes %s, fragment reads %s",
				in.Location, out.TypeName(), in.TypeName()))
		}
	}
	return problems
}
