package shaderprog

import "fmt"

// Stage identifies the pipeline stage a shader unit targets.
type Stage uint8

const (
	// StageVertex is the vertex stage.
	StageVertex Stage = iota
	// StageFragment is the fragment stage.
	StageFragment
)

// String returns the lower-case stage name.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

// Language is a shading language accepted by a Device.
type Language uint8

const (
	// LanguageGLSL is the OpenGL Shading Language (a #version directive is expected).
	LanguageGLSL Language = iota
	// LanguageWGSL is the WebGPU Shading Language.
	LanguageWGSL
)

// String returns the lower-case language name.
func (l Language) String() string {
	switch l {
	case LanguageGLSL:
		return "glsl"
	case LanguageWGSL:
		return "wgsl"
	default:
		return fmt.Sprintf("Language(%d)", uint8(l))
	}
}

// ParseLanguage parses a language name as written in manifests and flags.
func ParseLanguage(name string) (Language, error) {
	switch name {
	case "glsl", "GLSL":
		return LanguageGLSL, nil
	case "wgsl", "WGSL":
		return LanguageWGSL, nil
	default:
		return 0, fmt.Errorf("shaderprog: unknown shading language %q", name)
	}
}
