package shaderprog

import "fmt"

// State is the position of a build attempt.
//
//	Start -> CompilingVertex -> CompilingFragment -> Linking -> Ready
//	               |                    |               |
//	               +--------------------+---------------+--> Failed
type State uint8

const (
	StateStart State = iota
	StateCompilingVertex
	StateCompilingFragment
	StateLinking
	StateReady
	StateFailed
)

var stateNames = [...]string{
	StateStart:             "start",
	StateCompilingVertex:   "compiling-vertex",
	StateCompilingFragment: "compiling-fragment",
	StateLinking:           "linking",
	StateReady:             "ready",
	StateFailed:            "failed",
}

// String returns the state name.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == StateReady || s == StateFailed
}

// canTransition reports whether the machine may move from s to next.
func (s State) canTransition(next State) bool {
	switch s {
	case StateStart:
		return next == StateCompilingVertex
	case StateCompilingVertex:
		return next == StateCompilingFragment || next == StateFailed
	case StateCompilingFragment:
		return next == StateLinking || next == StateFailed
	case StateLinking:
		return next == StateReady || next == StateFailed
	default:
		return false
	}
}

// Attempt is a single build of one vertex and one fragment source.
//
// An attempt runs once. A failed attempt is discarded; the recovery path is a
// new attempt with corrected source text. Retrying unchanged input is
// pointless since compilation is deterministic.
type Attempt struct {
	b        *Builder
	vertex   Source
	fragment Source
	label    string

	state   State
	program *LinkedProgram
	err     error
}

// NewAttempt prepares a build attempt in StateStart. Nothing is sent to the
// device until Run.
func (b *Builder) NewAttempt(vertex, fragment Source) *Attempt {
	return &Attempt{
		b:        b,
		vertex:   vertex,
		fragment: fragment,
		label:    vertex.name() + "+" + fragment.name(),
	}
}

// WithLabel sets the label given to the linked program.
func (a *Attempt) WithLabel(label string) *Attempt {
	if label != "" {
		a.label = label
	}
	return a
}

// State returns the current state.
func (a *Attempt) State() State { return a.state }

// Err returns the error that moved the attempt to StateFailed, or nil.
func (a *Attempt) Err() error { return a.err }

// Program returns the program of a finished attempt. It is nil when the
// attempt failed before linking.
func (a *Attempt) Program() *LinkedProgram { return a.program }

// Run drives the attempt to StateReady or StateFailed.
func (a *Attempt) Run() (*LinkedProgram, error) {
	if a.state != StateStart {
		return nil, ErrAttemptFinished
	}

	a.advance(StateCompilingVertex)
	if a.vertex.Stage != StageVertex {
		return a.fail(fmt.Errorf("%w: %q is a %s source", ErrStageMismatch, a.vertex.name(), a.vertex.Stage))
	}
	vu, err := a.b.Compile(a.vertex)
	if err != nil {
		vu.Release()
		return a.fail(err)
	}

	a.advance(StateCompilingFragment)
	if a.fragment.Stage != StageFragment {
		vu.Release()
		return a.fail(fmt.Errorf("%w: %q is a %s source", ErrStageMismatch, a.fragment.name(), a.fragment.Stage))
	}
	fu, err := a.b.Compile(a.fragment)
	if err != nil {
		vu.Release()
		fu.Release()
		return a.fail(err)
	}

	a.advance(StateLinking)
	p, err := a.b.link(a.label, vu, fu)
	a.program = p
	if err != nil {
		return a.fail(err)
	}

	a.advance(StateReady)
	return p, nil
}

func (a *Attempt) advance(next State) {
	if !a.state.canTransition(next) {
		panic(fmt.Sprintf("shaderprog: invalid build transition %s -> %s", a.state, next))
	}
	a.b.log().Debug("shaderprog: build state", "label", a.label, "from", a.state, "to", next)
	a.state = next
}

func (a *Attempt) fail(err error) (*LinkedProgram, error) {
	a.err = err
	a.advance(StateFailed)
	return a.program, err
}
