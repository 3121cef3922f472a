package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/shaderprog"
)

const tutorialYAML = `
language: glsl
programs:
  - name: orange
    vertex: triangle.vert
    fragment: orange.frag
  - name: green
    vertex: triangle.vert
    fragment: green.frag
  - name: solid
    vertex: solid.wgsl
    fragment: solid.wgsl
    language: wgsl
`

const tutorialTOML = `
version = 1

[[programs]]
name = "orange"
vertex = "triangle.vert"
fragment = "orange.frag"

[[programs]]
name = "solid"
vertex = "solid.wgsl"
fragment = "solid.wgsl"
language = "wgsl"
`

func writeFile(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseYAML(t *testing.T) {
	m, err := Parse([]byte(tutorialYAML), FormatYAML)
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	if m.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", m.Version, CurrentVersion)
	}
	if len(m.Programs) != 3 {
		t.Fatalf("got %d programs, want 3", len(m.Programs))
	}
	if got := m.language(m.Programs[0]); got != shaderprog.LanguageGLSL {
		t.Errorf("orange language = %v, want glsl", got)
	}
	if got := m.language(m.Programs[2]); got != shaderprog.LanguageWGSL {
		t.Errorf("solid language = %v, want wgsl", got)
	}
}

func TestParseTOML(t *testing.T) {
	m, err := Parse([]byte(tutorialTOML), FormatTOML)
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	if m.Language != "glsl" {
		t.Errorf("Language = %q, want glsl default", m.Language)
	}
	if len(m.Programs) != 2 || m.Programs[1].Language != "wgsl" {
		t.Errorf("Programs = %+v", m.Programs)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	want, err := Parse([]byte(tutorialYAML), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	for _, format := range []Format{FormatYAML, FormatTOML} {
		t.Run(format.String(), func(t *testing.T) {
			data, err := Marshal(want, format)
			if err != nil {
				t.Fatalf("Marshal() = %v", err)
			}
			got, err := Parse(data, format)
			if err != nil {
				t.Fatalf("Parse(Marshal()) = %v\n%s", err, data)
			}
			if got.Version != want.Version || got.Language != want.Language {
				t.Errorf("header = %d/%q, want %d/%q", got.Version, got.Language, want.Version, want.Language)
			}
			if len(got.Programs) != len(want.Programs) {
				t.Fatalf("got %d programs, want %d", len(got.Programs), len(want.Programs))
			}
			for i := range want.Programs {
				if got.Programs[i] != want.Programs[i] {
					t.Errorf("program %d = %+v, want %+v", i, got.Programs[i], want.Programs[i])
				}
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"no programs", "version: 1\n", "no programs"},
		{"newer version", "version: 2\nprograms: [{name: a, vertex: a, fragment: b}]\n", "unsupported version"},
		{"unknown language", "language: hlsl\nprograms: [{name: a, vertex: a, fragment: b}]\n", "unknown shading language"},
		{"missing name", "programs: [{vertex: a, fragment: b}]\n", "has no name"},
		{"missing vertex", "programs: [{name: a, fragment: b}]\n", "no vertex shader"},
		{"missing fragment", "programs: [{name: a, vertex: a}]\n", "no fragment shader"},
		{"duplicate", "programs: [{name: a, vertex: a, fragment: b}, {name: a, vertex: c, fragment: d}]\n", "duplicate program"},
		{"program language", "programs: [{name: a, vertex: a, fragment: b, language: spirv}]\n", `program "a"`},
		{"malformed", "programs: [\n", "parse yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), FormatYAML)
			if err == nil {
				t.Fatal("Parse() succeeded")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}

	if _, err := Parse([]byte("version: 1\n"), FormatYAML); !errors.Is(err, ErrNoPrograms) {
		t.Errorf("error = %v, want ErrNoPrograms", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"shaders.yaml", FormatYAML, true},
		{"dir/shaders.YML", FormatYAML, true},
		{"shaders.toml", FormatTOML, true},
		{"shaders.json", 0, false},
		{"shaders", 0, false},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("FormatFromPath(%q) = %v, %v; want %v", tt.path, got, err, tt.want)
		}
		if !tt.ok && !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("FormatFromPath(%q) error = %v, want ErrUnknownFormat", tt.path, err)
		}
	}
}

func TestLoadVariants(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "triangle.vert", "#version 330 core\nvoid main() {}\n")
	writeFile(t, dir, "orange.frag", "#version 330 core\n// orange\n")
	writeFile(t, dir, "green.frag", "#version 330 core\n// green\n")
	writeFile(t, dir, "solid.wgsl", "// solid\n")
	path := writeFile(t, dir, "shaders.yaml", tutorialYAML)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if m.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", m.Dir(), dir)
	}

	files := m.Files()
	want := []string{
		filepath.Join(dir, "triangle.vert"),
		filepath.Join(dir, "orange.frag"),
		filepath.Join(dir, "green.frag"),
		filepath.Join(dir, "solid.wgsl"),
	}
	if strings.Join(files, ",") != strings.Join(want, ",") {
		t.Errorf("Files() = %v, want %v", files, want)
	}

	variants, err := m.Variants()
	if err != nil {
		t.Fatalf("Variants() = %v", err)
	}
	if len(variants) != 3 {
		t.Fatalf("got %d variants, want 3", len(variants))
	}
	green := variants[1]
	if green.Name != "green" || green.Fragment.Text != "#version 330 core\n// green\n" {
		t.Errorf("green = %+v", green)
	}
	if green.Vertex.Stage != shaderprog.StageVertex || green.Fragment.Stage != shaderprog.StageFragment {
		t.Error("stages not assigned")
	}
	if green.Vertex.Label != "triangle.vert" {
		t.Errorf("vertex label = %q, want triangle.vert", green.Vertex.Label)
	}
	solid := variants[2]
	if solid.Vertex.Language != shaderprog.LanguageWGSL || solid.Vertex.Text != solid.Fragment.Text {
		t.Errorf("solid = %+v", solid)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
	if _, err := Load(filepath.Join(dir, "shaders.ini")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Load(.ini) error = %v, want ErrUnknownFormat", err)
	}

	path := writeFile(t, dir, "shaders.toml", tutorialTOML)
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if _, err := m.Variants(); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Variants() error = %v, want a missing-file error", err)
	}
}
