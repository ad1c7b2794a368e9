package store

import (
	"io"
	"log/slog"

	"github.com/spetersoncode/statekit"
)

// Options contains configuration for a store.
type Options struct {
	Middleware []statekit.Middleware
	Logger     *slog.Logger
	Preloaded  map[string]any
}

// Option is a functional option for configuring a store.
type Option func(*Options)

// WithMiddleware appends middleware to the chain. Order across calls is
// preserved.
func WithMiddleware(mw ...statekit.Middleware) Option {
	return func(o *Options) {
		o.Middleware = append(o.Middleware, mw...)
	}
}

// WithLogger sets the logger used for store lifecycle messages.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithPreloadedState seeds slices with existing state instead of their
// initial state. Every key must name a registered slice.
func WithPreloadedState(state map[string]any) Option {
	return func(o *Options) {
		if o.Preloaded == nil {
			o.Preloaded = make(map[string]any, len(state))
		}
		for k, v := range state {
			o.Preloaded[k] = v
		}
	}
}

// ApplyOptions applies functional options to an Options struct.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}
