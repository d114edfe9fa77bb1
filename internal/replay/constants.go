package replay

import "time"

// Defaults used when Config leaves a field zero.
const (
	DefaultSpeed   = 1.0
	DefaultTimeout = 5 * time.Second
	DefaultSettle  = 2 * time.Second

	pollInterval  = 50 * time.Millisecond
	gesturesLimit = 256
)
