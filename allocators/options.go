package allocators

import "go.uber.org/zap"

// DefaultPoolDepth is the number of blocks a Pool parks per layout.
const DefaultPoolDepth = 16

// Option configures the allocators in this package.
type Option func(*options)

type options struct {
	logger *zap.Logger
	depth  int
}

func defaultOptions() *options {
	return &options{
		logger: zap.NewNop(),
		depth:  DefaultPoolDepth,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger used for failures and, in Logging, every event.
// A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDepth sets how many freed blocks a Pool keeps per layout. Negative values
// are ignored; zero disables parking.
func WithDepth(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.depth = n
		}
	}
}
