package cooldown

import "github.com/rs/zerolog"

// Option configures a Cooldown at construction time.
type Option func(*options)

type options struct {
	autoStart bool
	clock     Clock
	random    RandomSource
	logger    zerolog.Logger
}

// WithAutoStart arms the cooldown as part of construction.
func WithAutoStart() Option {
	return func(o *options) {
		o.autoStart = true
	}
}

// WithClock replaces the real clock.
func WithClock(clock Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithRandomSource replaces the seeded source used to sample range durations.
func WithRandomSource(src RandomSource) Option {
	return func(o *options) {
		o.random = src
	}
}

// WithLogger enables debug logging of state transitions.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.clock == nil {
		o.clock = defaultClock()
	}
	if o.random == nil {
		o.random = defaultRandomSource()
	}
	return o
}
