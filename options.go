package frameloop

import "github.com/rs/zerolog"

type options struct {
	logger        zerolog.Logger
	errorHandlers []func(error)
}

func defaultOptions() options {
	return options{
		logger: zerolog.Nop(),
	}
}

type Option func(*options)

// WithLogger sets the logger of the scheduler. By default nothing is logged.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.logger = log }
}

// WithErrorHandler adds a handler receiving the failures of frame callbacks and renderers.
// Without handlers, failures are logged at error level.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) { o.errorHandlers = append(o.errorHandlers, fn) }
}

type advanceOptions struct {
	globalEffects bool
	frame         XRFrame
}

func newAdvanceOptions(opts []AdvanceOption) advanceOptions {
	o := advanceOptions{globalEffects: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type AdvanceOption func(*advanceOptions)

// WithoutGlobalEffects skips the before and after effects around the advance.
func WithoutGlobalEffects() AdvanceOption {
	return func(o *advanceOptions) { o.globalEffects = false }
}

// WithFrame hands an external presentation frame to the subscribers of the advanced root.
func WithFrame(frame XRFrame) AdvanceOption {
	return func(o *advanceOptions) { o.frame = frame }
}
