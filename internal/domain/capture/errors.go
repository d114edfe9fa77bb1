package capture

import "errors"

// Sentinel errors for capture setup.
var (
	ErrUnknownStrategy     = errors.New("unknown capture strategy")
	ErrUnsupportedStrategy = errors.New("capture strategy not supported by host")
	ErrNotCaptured         = errors.New("pointer not captured")
)
