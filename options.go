package shaderprog

import "log/slog"

// BuilderOption configures a Builder during creation.
//
// Example:
//
//	b, err := shaderprog.NewBuilder(dev,
//	    shaderprog.WithLogger(logger),
//	    shaderprog.WithTranslator(translate.New()),
//	)
type BuilderOption func(*builderOptions)

// builderOptions holds optional configuration for Builder creation.
type builderOptions struct {
	logger     *slog.Logger
	translator Translator
}

// WithLogger sets the logger for one builder, overriding the package logger.
// If the device accepts a logger (it has a SetLogger method) the logger is
// passed on to it as well.
func WithLogger(l *slog.Logger) BuilderOption {
	return func(o *builderOptions) {
		o.logger = l
	}
}

// WithTranslator lets the builder accept sources written in a language the
// device does not compile, translating them first.
//
// Example:
//
//	// Feed WGSL sources to an OpenGL device.
//	b, _ := shaderprog.NewBuilder(glDevice, shaderprog.WithTranslator(translate.New()))
func WithTranslator(t Translator) BuilderOption {
	return func(o *builderOptions) {
		o.translator = t
	}
}
