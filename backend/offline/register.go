package offline

import "github.com/gogpu/shaderprog/backend"

func init() {
	backend.Register(backend.NameOffline, func(cfg backend.Config) (*backend.Opened, error) {
		dev := New(WithValidation(cfg.Validate), WithLogger(cfg.Logger))
		return backend.NewOpened(dev, nil), nil
	})
}
