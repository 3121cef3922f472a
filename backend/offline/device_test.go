package offline

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/shaderprog"
	"github.com/gogpu/shaderprog/shaders"
)

func newBuilder(t *testing.T, dev *Device) *shaderprog.Builder {
	t.Helper()
	b, err := shaderprog.NewBuilder(dev)
	if err != nil {
		t.Fatalf("NewBuilder() = %v", err)
	}
	return b
}

func TestBuildTutorialPrograms(t *testing.T) {
	dev := New()
	b := newBuilder(t, dev)

	set, err := b.BuildVariants(shaders.Variants(shaderprog.LanguageWGSL))
	if err != nil {
		t.Fatalf("BuildVariants() = %v", err)
	}
	if len(set) != 2 {
		t.Fatalf("built %d programs, want 2", len(set))
	}
	for name, p := range set {
		if !p.Succeeded() || p.Handle() == shaderprog.InvalidHandle {
			t.Errorf("%s: program not usable", name)
		}
	}
	if dev.LiveShaders() != 0 {
		t.Errorf("LiveShaders() = %d, want 0", dev.LiveShaders())
	}
	if dev.LivePrograms() != 2 {
		t.Errorf("LivePrograms() = %d, want 2", dev.LivePrograms())
	}

	set.Delete()
	if dev.LivePrograms() != 0 {
		t.Errorf("LivePrograms() after Delete = %d", dev.LivePrograms())
	}
}

func TestMissingSemicolon(t *testing.T) {
	dev := New()
	b := newBuilder(t, dev)

	vs := shaders.Triangle(shaderprog.LanguageWGSL)
	vs.Text = strings.Replace(vs.Text, "1.0);", "1.0)", 1)

	p, err := b.Build(vs, shaders.Orange(shaderprog.LanguageWGSL))
	if p != nil {
		t.Error("compile failure returned a program")
	}
	var ce *shaderprog.CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want *CompileError", err)
	}
	if ce.Stage != shaderprog.StageVertex {
		t.Errorf("Stage = %s, want vertex", ce.Stage)
	}
	if strings.TrimSpace(ce.Log) == "" {
		t.Error("compile error carries an empty log")
	}
	if dev.LiveShaders() != 0 || dev.LivePrograms() != 0 {
		t.Errorf("leaked objects: shaders %d, programs %d", dev.LiveShaders(), dev.LivePrograms())
	}
}

func TestInterfaceMismatchFailsLink(t *testing.T) {
	dev := New()
	b := newBuilder(t, dev)

	fs := shaderprog.FragmentWGSL(`
@fragment
fn fs_main(@location(2) tint: vec4<f32>) -> @location(0) vec4<f32> {
    return tint;
}
`)
	p, err := b.Build(shaders.Triangle(shaderprog.LanguageWGSL), fs)
	var le *shaderprog.LinkError
	if !errors.As(err, &le) {
		t.Fatalf("error = %v, want *LinkError", err)
	}
	if !strings.Contains(le.Log, "@location(2)") {
		t.Errorf("LinkError.Log = %q", le.Log)
	}
	if p == nil || p.Succeeded() {
		t.Error("link failure should return a failed program")
	}
	if dev.LiveShaders() != 0 || dev.LivePrograms() != 0 {
		t.Errorf("leaked objects: shaders %d, programs %d", dev.LiveShaders(), dev.LivePrograms())
	}
}

func TestMissingEntryPointFailsLink(t *testing.T) {
	dev := New()
	b := newBuilder(t, dev)

	// A fragment-only module given as the vertex stage compiles but cannot link.
	vs := shaderprog.VertexWGSL(shaders.Orange(shaderprog.LanguageWGSL).Text)
	_, err := b.Build(vs, shaders.Orange(shaderprog.LanguageWGSL))
	var le *shaderprog.LinkError
	if !errors.As(err, &le) || !strings.Contains(le.Log, "@vertex") {
		t.Fatalf("error = %v, want LinkError about @vertex", err)
	}
}

func TestCombinedModuleServesBothStages(t *testing.T) {
	dev := New()
	b := newBuilder(t, dev)

	text := shaders.Triangle(shaderprog.LanguageWGSL).Text + shaders.Green(shaderprog.LanguageWGSL).Text
	p, err := b.Build(shaderprog.VertexWGSL(text), shaderprog.FragmentWGSL(text))
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}
	p.Delete()
}

func TestDeviceDirect(t *testing.T) {
	dev := New(WithValidation(false))
	if dev.Language() != shaderprog.LanguageWGSL {
		t.Errorf("Language() = %s", dev.Language())
	}

	prog := dev.CreateProgram()
	dev.LinkProgram(prog)
	if dev.ProgramLinkStatus(prog) {
		t.Error("empty program linked")
	}
	if log := dev.ProgramInfoLog(prog); !strings.Contains(log, "no vertex shader") {
		t.Errorf("ProgramInfoLog() = %q", log)
	}

	sh := dev.CreateShader(shaderprog.StageVertex)
	if dev.ShaderCompileStatus(sh) {
		t.Error("uncompiled shader reports success")
	}
	dev.AttachShader(prog, sh)
	dev.LinkProgram(prog)
	if !strings.Contains(dev.ProgramInfoLog(prog), "not compiled") {
		t.Errorf("ProgramInfoLog() = %q", dev.ProgramInfoLog(prog))
	}

	dev.DeleteShader(sh)
	dev.DeleteShader(sh)
	dev.DeleteProgram(prog)
	if dev.ShaderCompileStatus(sh) || dev.ShaderInfoLog(sh) != "" {
		t.Error("deleted shader still answers queries")
	}
	if dev.LiveShaders() != 0 || dev.LivePrograms() != 0 {
		t.Errorf("live objects remain: %d shaders, %d programs", dev.LiveShaders(), dev.LivePrograms())
	}
}
