package service

import "github.com/okian/gestures/internal/domain/types"

var (
	// ErrNotStarted is returned when inputs arrive before Start or after Stop.
	ErrNotStarted = types.ErrUnavailable

	// ErrBackpressure is returned when the input queue is full.
	ErrBackpressure = types.ErrBackpressure
)

// ErrInvalidRequest is returned for requests that fail validation.
var ErrInvalidRequest = types.ErrInvalidRequest
