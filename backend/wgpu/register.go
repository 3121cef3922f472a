package wgpu

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/shaderprog/backend"
)

func init() {
	backend.Register(backend.NameWGPU, func(cfg backend.Config) (*backend.Opened, error) {
		dev, err := Open(gputypes.BackendVulkan, configOptions(cfg)...)
		if err != nil {
			return nil, err
		}
		return backend.NewOpened(dev, dev.Close), nil
	})
	backend.Register(backend.NameWGPUNoop, func(cfg backend.Config) (*backend.Opened, error) {
		dev, err := OpenNoop(configOptions(cfg)...)
		if err != nil {
			return nil, err
		}
		return backend.NewOpened(dev, dev.Close), nil
	})
}

func configOptions(cfg backend.Config) []Option {
	return []Option{WithValidation(cfg.Validate), WithLogger(cfg.Logger)}
}
