package gesture

import (
	"time"

	"github.com/okian/gestures/pkg/logger"
)

// Default thresholds.
const (
	DefaultHoldDelay        = 200 * time.Millisecond
	DefaultHoldWiggle       = 16
	DefaultTrackWiggle      = 4
	DefaultFlickMinVelocity = 0.5
	DefaultFlickQueue       = 4
)

type settings struct {
	logger           logger.Logger
	holdDelay        time.Duration
	holdWiggle       float64
	trackWiggle      float64
	flickMinVelocity float64
	flickQueue       int
}

func defaultSettings() settings {
	return settings{
		logger:           logger.Nop(),
		holdDelay:        DefaultHoldDelay,
		holdWiggle:       DefaultHoldWiggle,
		trackWiggle:      DefaultTrackWiggle,
		flickMinVelocity: DefaultFlickMinVelocity,
		flickQueue:       DefaultFlickQueue,
	}
}

func applyOptions(opts []Option) settings {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option configures a recognizer. Options that do not apply to a family are
// ignored by it.
type Option func(*settings)

// WithLogger sets the logger recognizers write to.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHoldDelay sets the hold pulse period.
func WithHoldDelay(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.holdDelay = d
		}
	}
}

// WithHoldWiggle sets the squared displacement that cancels a hold.
func WithHoldWiggle(v float64) Option {
	return func(s *settings) {
		if v >= 0 {
			s.holdWiggle = v
		}
	}
}

// WithTrackWiggle sets the squared displacement that starts tracking.
func WithTrackWiggle(v float64) Option {
	return func(s *settings) {
		if v >= 0 {
			s.trackWiggle = v
		}
	}
}

// WithFlickMinVelocity sets the minimum flick speed in units per ms.
func WithFlickMinVelocity(v float64) Option {
	return func(s *settings) {
		if v > 0 {
			s.flickMinVelocity = v
		}
	}
}

// WithFlickQueue sets how many recent samples a flick session keeps.
func WithFlickQueue(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.flickQueue = n
		}
	}
}
