package main

import (
	// Registered backends.
	_ "github.com/gogpu/shaderprog/backend/offline"
	_ "github.com/gogpu/shaderprog/backend/wgpu"
)
