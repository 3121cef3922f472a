package opengl

import (
	"github.com/gogpu/shaderprog"
	"github.com/gogpu/shaderprog/backend"
	"github.com/gogpu/shaderprog/internal/glcontext"
	"github.com/gogpu/shaderprog/translate"
)

// The registered backend opens its own hidden-window context, so the caller
// must have locked the OS thread. WGSL sources are translated to GLSL.
func init() {
	backend.Register(backend.NameGL, func(cfg backend.Config) (*backend.Opened, error) {
		ctx, err := glcontext.Open(glcontext.Config{Title: "shaderprog"})
		if err != nil {
			return nil, err
		}
		if cfg.Logger != nil {
			cfg.Logger.Debug("opengl: context ready", "version", Version())
		}
		dev := New(WithLogger(cfg.Logger))
		return backend.NewOpened(dev, ctx.Close, shaderprog.WithTranslator(translate.New())), nil
	})
}
