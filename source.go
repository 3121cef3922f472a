package shaderprog

// Source is the text of one shader stage. The builder only borrows it for the
// duration of a compile.
type Source struct {
	// Stage is the pipeline stage the text is written for.
	Stage Stage

	// Language is the shading language of Text.
	Language Language

	// Text is the shader source. It must not be empty.
	Text string

	// Label is an optional name used in logs and error messages,
	// typically the file the text was read from.
	Label string
}

// VertexGLSL returns a GLSL vertex source.
func VertexGLSL(text string) Source {
	return Source{Stage: StageVertex, Language: LanguageGLSL, Text: text}
}

// FragmentGLSL returns a GLSL fragment source.
func FragmentGLSL(text string) Source {
	return Source{Stage: StageFragment, Language: LanguageGLSL, Text: text}
}

// VertexWGSL returns a WGSL vertex source.
func VertexWGSL(text string) Source {
	return Source{Stage: StageVertex, Language: LanguageWGSL, Text: text}
}

// FragmentWGSL returns a WGSL fragment source.
func FragmentWGSL(text string) Source {
	return Source{Stage: StageFragment, Language: LanguageWGSL, Text: text}
}

// WithLabel returns a copy of s carrying the given label.
func (s Source) WithLabel(label string) Source {
	s.Label = label
	return s
}

// name returns the label, or the stage name when no label is set.
func (s Source) name() string {
	if s.Label != "" {
		return s.Label
	}
	return s.Stage.String()
}
