// Package glcontext opens an OpenGL 3.3 core context on a hidden GLFW
// window, enough to compile and link shaders without drawing anything.
//
// GLFW and GL calls must stay on the goroutine that called Open, locked to
// its OS thread (runtime.LockOSThread, typically from main's init).
package glcontext

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Config describes the context to open.
type Config struct {
	// Title of the window; it is never shown unless Visible is set.
	Title string

	// Width and Height of the window. Default: 1x1.
	Width, Height int

	// Visible shows the window.
	Visible bool
}

// Context is a current GL context backed by a GLFW window.
type Context struct {
	window *glfw.Window
}

// Open initializes GLFW, creates the window with a forward-compatible 3.3
// core profile, makes its context current and loads the GL functions.
func Open(cfg Config) (*Context, error) {
	if cfg.Width <= 0 {
		cfg.Width = 1
	}
	if cfg.Height <= 0 {
		cfg.Height = 1
	}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glcontext: init glfw: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if cfg.Visible {
		glfw.WindowHint(glfw.Visible, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glcontext: create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("glcontext: init gl: %w", err)
	}
	return &Context{window: window}, nil
}

// Close destroys the window and terminates GLFW. Safe to call multiple times.
func (c *Context) Close() {
	if c == nil || c.window == nil {
		return
	}
	c.window.Destroy()
	c.window = nil
	glfw.Terminate()
}
