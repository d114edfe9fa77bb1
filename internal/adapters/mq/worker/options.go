package worker

import (
	"github.com/okian/gestures/pkg/logger"
)

// Option applies a configuration option to the Router.
type Option func(*Router)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *Router) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *Router) {
		if l != nil {
			w.logger = l
		}
	}
}
