package worker

import (
	"github.com/okian/salaryscope/pkg/logger"
)

// Option applies a configuration option to the EventLoop.
type Option func(*EventLoop)

// WithName sets the loop name used in logs.
func WithName(name string) Option {
	return func(w *EventLoop) {
		if name != "" {
			w.name = name
			w.logger = w.logger.Named(name)
		}
	}
}

// WithLogger sets a custom logger for the loop.
func WithLogger(l logger.Logger) Option {
	return func(w *EventLoop) {
		if l != nil {
			w.logger = l
		}
	}
}
