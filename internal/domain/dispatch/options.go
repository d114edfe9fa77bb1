package dispatch

import (
	"github.com/okian/gestures/internal/domain/registry"
	"github.com/okian/gestures/pkg/logger"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the dispatcher logger.
func WithLogger(l logger.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l.Named("dispatch")
		}
	}
}

// WithRegistry replaces the default in-memory pointer registry.
func WithRegistry(r registry.Registry) Option {
	return func(d *Dispatcher) {
		if r != nil {
			d.registry = r
		}
	}
}
