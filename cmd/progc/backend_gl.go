//go:build gl

package main

import (
	"runtime"

	_ "github.com/gogpu/shaderprog/backend/opengl"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}
