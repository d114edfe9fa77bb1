package dispatch

import "errors"

// Registration errors.
var (
	ErrNilRecognizer       = errors.New("nil recognizer")
	ErrEmptyName           = errors.New("recognizer name is empty")
	ErrDuplicateRecognizer = errors.New("recognizer already registered")
	ErrNoKeyHandler        = errors.New("recognizer consumes keyup but has no key handler")
)
