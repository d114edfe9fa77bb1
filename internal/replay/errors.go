package replay

import "errors"

var (
	// ErrUnknownScenario is returned for a name that is neither a file nor
	// a built-in scenario.
	ErrUnknownScenario = errors.New("unknown scenario")

	// ErrInvalidScenario is returned when a scenario fails validation.
	ErrInvalidScenario = errors.New("invalid scenario")

	// ErrUnhealthy is returned when the service health check fails.
	ErrUnhealthy = errors.New("service unhealthy")

	// ErrExpectation is returned when delivered gestures do not match.
	ErrExpectation = errors.New("expectation not met")
)
