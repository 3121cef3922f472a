package wgpu

import (
	"log/slog"

	"github.com/gogpu/gputypes"
)

// Option configures a Device during creation.
//
// Example:
//
//	dev := wgpu.New(halDevice,
//	    wgpu.WithFormat(gputypes.TextureFormatRGBA8Unorm),
//	    wgpu.WithSampleCount(4),
//	)
type Option func(*Device)

// WithFormat sets the color target format of linked pipelines.
// Default: gputypes.TextureFormatBGRA8Unorm. Undefined is ignored.
func WithFormat(format gputypes.TextureFormat) Option {
	return func(d *Device) {
		if format != gputypes.TextureFormatUndefined {
			d.format = format
		}
	}
}

// WithSampleCount sets the MSAA sample count of linked pipelines.
// Default: 1. Zero is ignored.
func WithSampleCount(n uint32) Option {
	return func(d *Device) {
		if n > 0 {
			d.sampleCount = n
		}
	}
}

// WithValidation enables naga IR validation before a shader module is
// created.
func WithValidation(enabled bool) Option {
	return func(d *Device) {
		d.validate = enabled
	}
}

// WithLogger sets the device logger. Defaults to shaderprog.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(d *Device) {
		d.logger = l
	}
}
