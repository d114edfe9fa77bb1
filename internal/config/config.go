// Package config defines service configuration structures and loading hooks.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the serialized input queue.
	QueueSize int `koanf:"queue_size"`

	// MaxPointers bounds the pointer registry.
	MaxPointers int `koanf:"max_pointers"`

	// HoldDelayMS is the hold pulse period.
	HoldDelayMS int `koanf:"hold_delay_ms"`

	// HoldWiggle is the squared displacement that cancels a hold.
	HoldWiggle float64 `koanf:"hold_wiggle"`

	// TrackWiggle is the squared displacement that starts tracking.
	TrackWiggle float64 `koanf:"track_wiggle"`

	// FlickMinVelocity is the minimum flick speed in units per ms.
	FlickMinVelocity float64 `koanf:"flick_min_velocity"`

	// FlickQueue is the number of samples a flick session keeps.
	FlickQueue int `koanf:"flick_queue"`

	// CaptureStrategy is auto, native, compat or overlay.
	CaptureStrategy string `koanf:"capture_strategy"`

	// NativeCapture and CompatCapture advertise host primitives.
	NativeCapture bool `koanf:"native_capture"`
	CompatCapture bool `koanf:"compat_capture"`

	// Recognizers lists the enabled families in registration order.
	Recognizers []string `koanf:"recognizers"`

	// TextInputs lists element paths that accept typed text.
	TextInputs []string `koanf:"text_inputs"`

	// FeedSize bounds the recent gesture feed.
	FeedSize int `koanf:"feed_size"`

	// MaxGestureLimit caps GET /gestures?limit.
	MaxGestureLimit int `koanf:"max_gesture_limit"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		QueueSize:        4096,
		MaxPointers:      64,
		HoldDelayMS:      200,
		HoldWiggle:       16,
		TrackWiggle:      4,
		FlickMinVelocity: 0.5,
		FlickQueue:       4,
		CaptureStrategy:  "auto",
		NativeCapture:    true,
		CompatCapture:    false,
		Recognizers:      []string{"tap", "hold", "track", "pinch", "flick"},
		TextInputs:       []string{},
		FeedSize:         256,
		MaxGestureLimit:  256,
	}
}

// HoldDelay returns HoldDelayMS as a duration.
func (c *Config) HoldDelay() time.Duration {
	return time.Duration(c.HoldDelayMS) * time.Millisecond
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.QueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.HoldDelayMS <= 0:
		return fmt.Errorf("%w: hold_delay_ms must be positive", ErrInvalidConfig)
	case c.HoldWiggle < 0 || c.TrackWiggle < 0:
		return fmt.Errorf("%w: wiggle thresholds must not be negative", ErrInvalidConfig)
	case c.FlickMinVelocity <= 0:
		return fmt.Errorf("%w: flick_min_velocity must be positive", ErrInvalidConfig)
	case c.FlickQueue <= 0:
		return fmt.Errorf("%w: flick_queue must be positive", ErrInvalidConfig)
	case c.FeedSize <= 0:
		return fmt.Errorf("%w: feed_size must be positive", ErrInvalidConfig)
	case c.MaxGestureLimit <= 0:
		return fmt.Errorf("%w: max_gesture_limit must be positive", ErrInvalidConfig)
	case c.MaxPointers < 0:
		return fmt.Errorf("%w: max_pointers must not be negative", ErrInvalidConfig)
	case len(c.Recognizers) == 0:
		return fmt.Errorf("%w: at least one recognizer must be enabled", ErrInvalidConfig)
	}

	switch strings.ToLower(c.CaptureStrategy) {
	case "", "auto", "native", "compat", "overlay":
	default:
		return fmt.Errorf("%w: unknown capture_strategy %q", ErrInvalidConfig, c.CaptureStrategy)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
