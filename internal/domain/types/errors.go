package types

import "errors"

// Errors shared across the service boundary so the API can map them to
// status codes without importing the service.
var (
	// ErrInvalidRequest is returned when a wire request fails validation.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrBackpressure is returned when inputs cannot be queued right now.
	ErrBackpressure = errors.New("backpressure")

	// ErrUnavailable is returned when the service is not running.
	ErrUnavailable = errors.New("service unavailable")
)
