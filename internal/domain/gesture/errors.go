package gesture

import "errors"

// Sentinel errors for recognizer construction.
var (
	ErrUnknownFamily    = errors.New("unknown recognizer family")
	ErrMissingEmitter   = errors.New("recognizer requires an emitter")
	ErrMissingScheduler = errors.New("hold recognizer requires a scheduler")
)
