package shaderprog

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnnamedVariant is returned by BuildVariants for a variant without a name.
var ErrUnnamedVariant = errors.New("shaderprog: variant has no name")

// Variant is a named vertex/fragment pair built as one program.
type Variant struct {
	Name     string
	Vertex   Source
	Fragment Source
}

// ProgramSet maps variant names to linked programs.
type ProgramSet map[string]*LinkedProgram

// Names returns the variant names in sorted order.
func (s ProgramSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Delete frees every program in the set.
func (s ProgramSet) Delete() {
	for name, p := range s {
		p.Delete()
		delete(s, name)
	}
}

// BuildVariants builds every variant in its own attempt.
//
// Variants sharing a source still compile it separately: a unit is released
// by the link that consumes it. The returned set holds the programs that
// linked; the error joins one wrapped error per failed variant.
func (b *Builder) BuildVariants(variants []Variant) (ProgramSet, error) {
	seen := make(map[string]bool, len(variants))
	for i, v := range variants {
		if v.Name == "" {
			return nil, fmt.Errorf("%w (index %d)", ErrUnnamedVariant, i)
		}
		if seen[v.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateVariant, v.Name)
		}
		seen[v.Name] = true
	}

	set := make(ProgramSet, len(variants))
	var errs []error
	for _, v := range variants {
		p, err := b.NewAttempt(v.Vertex, v.Fragment).WithLabel(v.Name).Run()
		if err != nil {
			errs = append(errs, fmt.Errorf("variant %q: %w", v.Name, err))
			continue
		}
		set[v.Name] = p
	}
	return set, errors.Join(errs...)
}
