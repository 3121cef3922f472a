package shaderprog

import "testing"

func TestStateTransitions(t *testing.T) {
	all := []State{StateStart, StateCompilingVertex, StateCompilingFragment, StateLinking, StateReady, StateFailed}
	allowed := map[[2]State]bool{
		{StateStart, StateCompilingVertex}:             true,
		{StateCompilingVertex, StateCompilingFragment}: true,
		{StateCompilingVertex, StateFailed}:            true,
		{StateCompilingFragment, StateLinking}:         true,
		{StateCompilingFragment, StateFailed}:          true,
		{StateLinking, StateReady}:                     true,
		{StateLinking, StateFailed}:                    true,
	}
	for _, from := range all {
		for _, to := range all {
			if got, want := from.canTransition(to), allowed[[2]State{from, to}]; got != want {
				t.Errorf("%s -> %s allowed = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestStateStringAndTerminal(t *testing.T) {
	if StateCompilingFragment.String() != "compiling-fragment" {
		t.Errorf("String() = %q", StateCompilingFragment.String())
	}
	if State(42).String() != "State(42)" {
		t.Errorf("unknown state String() = %q", State(42).String())
	}
	for _, s := range []State{StateStart, StateCompilingVertex, StateCompilingFragment, StateLinking} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
	if !StateReady.Terminal() || !StateFailed.Terminal() {
		t.Error("ready and failed must be terminal")
	}
}

func TestAdvancePanicsOnInvalidTransition(t *testing.T) {
	b := &Builder{}
	a := b.NewAttempt(VertexGLSL("v"), FragmentGLSL("f"))
	defer func() {
		if recover() == nil {
			t.Error("advance(Start -> Linking) should panic")
		}
	}()
	a.advance(StateLinking)
}
