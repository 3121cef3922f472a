package shaderprog_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/gogpu/shaderprog"
	"github.com/gogpu/shaderprog/shadertest"
)

func tutorialVariants() []shaderprog.Variant {
	vs := shaderprog.VertexGLSL(vertexText)
	return []shaderprog.Variant{
		{Name: "orange", Vertex: vs, Fragment: shaderprog.FragmentGLSL(orangeText)},
		{Name: "green", Vertex: vs, Fragment: shaderprog.FragmentGLSL(greenText)},
	}
}

func TestBuildVariants(t *testing.T) {
	dev := shadertest.New()
	b := newBuilder(t, dev)

	set, err := b.BuildVariants(tutorialVariants())
	if err != nil {
		t.Fatalf("BuildVariants() = %v", err)
	}
	if got := set.Names(); !slices.Equal(got, []string{"green", "orange"}) {
		t.Errorf("Names() = %v", got)
	}
	if set["orange"].Label() != "orange" {
		t.Errorf("program label = %q, want variant name", set["orange"].Label())
	}
	if set["orange"].Handle() == set["green"].Handle() {
		t.Error("variants share a program handle")
	}
	assertNoLeaks(t, dev, 2)

	set.Delete()
	if len(set) != 0 {
		t.Errorf("Delete left %d programs", len(set))
	}
	assertNoLeaks(t, dev, 0)
}

func TestBuildVariantsPartialFailure(t *testing.T) {
	dev := shadertest.New()
	dev.CompileFunc = shadertest.FailOn("0.1f, 1.0f")
	b := newBuilder(t, dev)

	set, err := b.BuildVariants(tutorialVariants())
	if err == nil {
		t.Fatal("expected the green variant to fail")
	}
	if !shaderprog.IsCompileError(err) || !strings.Contains(err.Error(), `variant "green"`) {
		t.Errorf("error = %v", err)
	}
	if _, ok := set["orange"]; !ok || len(set) != 1 {
		t.Errorf("set = %v, want only orange", set.Names())
	}
	set.Delete()
	assertNoLeaks(t, dev, 0)
}

func TestBuildVariantsRejectsBadNames(t *testing.T) {
	dev := shadertest.New()
	b := newBuilder(t, dev)

	vs := tutorialVariants()
	vs[1].Name = "orange"
	if _, err := b.BuildVariants(vs); !errors.Is(err, shaderprog.ErrDuplicateVariant) {
		t.Errorf("duplicate: error = %v", err)
	}

	vs = tutorialVariants()
	vs[0].Name = ""
	if _, err := b.BuildVariants(vs); !errors.Is(err, shaderprog.ErrUnnamedVariant) {
		t.Errorf("unnamed: error = %v", err)
	}
	if len(dev.Calls()) != 0 {
		t.Error("invalid variant list reached the device")
	}
}
