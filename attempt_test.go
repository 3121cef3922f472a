package shaderprog_test

import (
	"errors"
	"testing"

	"github.com/gogpu/shaderprog"
	"github.com/gogpu/shaderprog/shadertest"
)

func TestAttemptReachesReady(t *testing.T) {
	dev := shadertest.New()
	b := newBuilder(t, dev)

	a := b.NewAttempt(
		shaderprog.VertexGLSL(vertexText).WithLabel("triangle.vert"),
		shaderprog.FragmentGLSL(orangeText).WithLabel("orange.frag"),
	)
	if a.State() != shaderprog.StateStart {
		t.Fatalf("new attempt state = %s", a.State())
	}
	if len(dev.Calls()) != 0 {
		t.Error("NewAttempt must not touch the device")
	}

	p, err := a.Run()
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	defer p.Delete()
	if a.State() != shaderprog.StateReady || a.Err() != nil {
		t.Errorf("state = %s, err = %v", a.State(), a.Err())
	}
	if a.Program() != p {
		t.Error("Program() differs from the Run result")
	}
	if p.Label() != "triangle.vert+orange.frag" {
		t.Errorf("Label() = %q", p.Label())
	}
}

func TestAttemptFailsAtStage(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(*shadertest.Device)
		wantProgram bool
		check       func(error) bool
	}{
		{
			name:  "vertex",
			setup: func(d *shadertest.Device) { d.CompileFunc = shadertest.FailOn("aPos") },
			check: shaderprog.IsCompileError,
		},
		{
			name:  "fragment",
			setup: func(d *shadertest.Device) { d.CompileFunc = shadertest.FailOn("FragColor") },
			check: shaderprog.IsCompileError,
		},
		{
			name:        "link",
			setup:       func(d *shadertest.Device) { d.LinkFunc = func(_, _ string) string { return "error: link\n" } },
			wantProgram: true,
			check:       shaderprog.IsLinkError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := shadertest.New()
			tt.setup(dev)
			a := newBuilder(t, dev).NewAttempt(shaderprog.VertexGLSL(vertexText), shaderprog.FragmentGLSL(orangeText))

			p, err := a.Run()
			if !tt.check(err) {
				t.Fatalf("Run() error = %v", err)
			}
			if a.State() != shaderprog.StateFailed {
				t.Errorf("state = %s, want failed", a.State())
			}
			if !errors.Is(a.Err(), err) {
				t.Errorf("Err() = %v, want %v", a.Err(), err)
			}
			if (p != nil) != tt.wantProgram {
				t.Errorf("program returned = %v, want %v", p != nil, tt.wantProgram)
			}
			assertNoLeaks(t, dev, 0)
		})
	}
}

func TestAttemptRunsOnce(t *testing.T) {
	dev := shadertest.New()
	a := newBuilder(t, dev).NewAttempt(shaderprog.VertexGLSL(vertexText), shaderprog.FragmentGLSL(orangeText))

	p, err := a.Run()
	if err != nil {
		t.Fatal(err)
	}
	defer p.Delete()
	calls := len(dev.Calls())

	if _, err := a.Run(); !errors.Is(err, shaderprog.ErrAttemptFinished) {
		t.Errorf("second Run() error = %v, want ErrAttemptFinished", err)
	}
	if len(dev.Calls()) != calls {
		t.Error("second Run reached the device")
	}
	if a.State() != shaderprog.StateReady {
		t.Errorf("state changed to %s", a.State())
	}
}

func TestRetryWithCorrectedSource(t *testing.T) {
	dev := shadertest.New()
	dev.CompileFunc = shadertest.FailOn("vec4(1.0f, 0.8f")
	b := newBuilder(t, dev)
	vs := shaderprog.VertexGLSL(vertexText)

	if _, err := b.Build(vs, shaderprog.FragmentGLSL(orangeText)); !shaderprog.IsCompileError(err) {
		t.Fatalf("first build error = %v", err)
	}
	p, err := b.Build(vs, shaderprog.FragmentGLSL(greenText))
	if err != nil {
		t.Fatalf("corrected build = %v", err)
	}
	defer p.Delete()
	assertNoLeaks(t, dev, 1)
}
