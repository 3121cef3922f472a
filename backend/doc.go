// Package backend selects the Device a shader build runs on.
//
// Backends register themselves from init functions and are opened by name:
//
//	import (
//		"github.com/gogpu/shaderprog/backend"
//		_ "github.com/gogpu/shaderprog/backend/offline"
//		_ "github.com/gogpu/shaderprog/backend/wgpu"
//	)
//
//	opened, err := backend.Open(backend.NameOffline, backend.Config{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer opened.Close()
//
//	b, err := shaderprog.NewBuilder(opened.Device, opened.Options...)
//
// Default opens the first backend that works, in priority order.
//
// # Available Backends
//
//   - "gl": OpenGL 3.3 core through go-gl on a hidden GLFW window (build tag gl)
//   - "wgpu": the Vulkan HAL of gogpu/wgpu, building real render pipelines
//   - "wgpu-noop": the noop HAL, pipelines without a GPU
//   - "offline": the naga WGSL front end only, no GPU objects at all
package backend
