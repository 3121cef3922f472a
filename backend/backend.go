package backend

import (
	"errors"
	"log/slog"

	"github.com/gogpu/shaderprog"
)

// Backend names.
const (
	NameGL       = "gl"
	NameWGPU     = "wgpu"
	NameWGPUNoop = "wgpu-noop"
	NameOffline  = "offline"
)

// ErrBackendNotAvailable is returned when a requested backend is not
// registered, or no backend could be opened.
var ErrBackendNotAvailable = errors.New("backend: not available")

// Config carries the settings every backend honors.
type Config struct {
	// Logger receives backend activity. Nil uses shaderprog.Logger().
	Logger *slog.Logger

	// Validate runs the WGSL validator after parsing. Backends compiling
	// through a driver ignore it.
	Validate bool
}

// Opened is a ready device together with the builder options it needs.
type Opened struct {
	// Name is the registered backend name.
	Name string

	// Device issues the shader and program commands.
	Device shaderprog.Device

	// Options are passed to shaderprog.NewBuilder, for example a translator
	// for devices that only compile GLSL.
	Options []shaderprog.BuilderOption

	closer func()
}

// NewOpened wraps a device. closer releases the device and its context;
// it may be nil.
func NewOpened(dev shaderprog.Device, closer func(), opts ...shaderprog.BuilderOption) *Opened {
	return &Opened{Device: dev, Options: opts, closer: closer}
}

// Close releases the device. Safe to call multiple times.
func (o *Opened) Close() {
	if o.closer != nil {
		o.closer()
		o.closer = nil
	}
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return shaderprog.Logger()
}
