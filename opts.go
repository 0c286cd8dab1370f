package services

import "go.uber.org/zap"

// Option configures a Container at construction time.
type Option func(*options)

type options struct {
	extraArgs  []any
	logger     *zap.Logger
	middleware []Middleware
}

// WithExtraArgs fixes the extra arguments forwarded to every instantiator and
// manipulator call. The slice is copied.
func WithExtraArgs(args ...any) Option {
	return func(o *options) {
		o.extraArgs = append([]any(nil), args...)
	}
}

// WithLogger sets the logger used for container events.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMiddleware registers middleware invoked around every GetService call.
func WithMiddleware(middleware ...Middleware) Option {
	return func(o *options) {
		o.middleware = append(o.middleware, middleware...)
	}
}

// mergeOptions applies opts over the defaults.
func mergeOptions(opts []Option) options {
	merged := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&merged)
	}

	return merged
}
