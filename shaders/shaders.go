// Package shaders embeds the tutorial shader programs: one vertex shader
// passing positions through and two fragment shaders filling with a constant
// color (orange and green). Every shader exists in GLSL 330 core and in WGSL.
package shaders

import (
	_ "embed"

	"github.com/gogpu/shaderprog"
)

//go:embed glsl/triangle.vert
var triangleVertGLSL string

//go:embed glsl/orange.frag
var orangeFragGLSL string

//go:embed glsl/green.frag
var greenFragGLSL string

//go:embed wgsl/triangle.wgsl
var triangleWGSL string

//go:embed wgsl/orange.wgsl
var orangeWGSL string

//go:embed wgsl/green.wgsl
var greenWGSL string

// Triangle returns the pass-through vertex shader.
func Triangle(lang shaderprog.Language) shaderprog.Source {
	if lang == shaderprog.LanguageWGSL {
		return shaderprog.VertexWGSL(triangleWGSL).WithLabel("triangle.wgsl")
	}
	return shaderprog.VertexGLSL(triangleVertGLSL).WithLabel("triangle.vert")
}

// Orange returns the fragment shader filling with (1.0, 0.8, 0.6, 1.0).
func Orange(lang shaderprog.Language) shaderprog.Source {
	if lang == shaderprog.LanguageWGSL {
		return shaderprog.FragmentWGSL(orangeWGSL).WithLabel("orange.wgsl")
	}
	return shaderprog.FragmentGLSL(orangeFragGLSL).WithLabel("orange.frag")
}

// Green returns the fragment shader filling with (0.1, 1.0, 0.4, 1.0).
func Green(lang shaderprog.Language) shaderprog.Source {
	if lang == shaderprog.LanguageWGSL {
		return shaderprog.FragmentWGSL(greenWGSL).WithLabel("green.wgsl")
	}
	return shaderprog.FragmentGLSL(greenFragGLSL).WithLabel("green.frag")
}

// Variants returns the two tutorial programs, "orange" and "green", sharing
// the triangle vertex shader.
func Variants(lang shaderprog.Language) []shaderprog.Variant {
	vs := Triangle(lang)
	return []shaderprog.Variant{
		{Name: "orange", Vertex: vs, Fragment: Orange(lang)},
		{Name: "green", Vertex: vs, Fragment: Green(lang)},
	}
}
