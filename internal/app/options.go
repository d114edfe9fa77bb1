package service

import (
	"github.com/okian/gestures/internal/domain/clock"
	"github.com/okian/gestures/internal/domain/gesture"
	"github.com/okian/gestures/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithQueueSize sets the capacity of the input queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithFeedSize sets how many delivered gestures are retained.
func WithFeedSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.feedSize = size
		}
	}
}

// WithMaxPointers bounds the pointer registry.
func WithMaxPointers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxPointers = n
		}
	}
}

// WithRecognizers sets the enabled recognizer families in registration order.
func WithRecognizers(families ...string) Option {
	return func(s *Service) {
		if len(families) > 0 {
			s.families = append([]string(nil), families...)
		}
	}
}

// WithTextInputs marks element paths as text-input controls.
func WithTextInputs(paths ...string) Option {
	return func(s *Service) {
		s.textInputs = append(s.textInputs, paths...)
	}
}

// WithCaptureStrategy sets the requested capture strategy.
func WithCaptureStrategy(strategy string) Option {
	return func(s *Service) {
		s.strategy = strategy
	}
}

// WithHostCapabilities advertises which capture primitives the host has.
func WithHostCapabilities(native, compat bool) Option {
	return func(s *Service) {
		s.native, s.compat = native, compat
	}
}

// WithGestureOptions forwards tuning options to every recognizer.
func WithGestureOptions(opts ...gesture.Option) Option {
	return func(s *Service) {
		s.gestureOpts = append(s.gestureOpts, opts...)
	}
}

// WithScheduler replaces the wall-clock ticker. Callbacks are still posted
// through the input queue.
func WithScheduler(sched clock.Scheduler) Option {
	return func(s *Service) {
		s.scheduler = sched
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
