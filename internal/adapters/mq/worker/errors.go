package worker

import "errors"

// Input processing errors.
var (
	ErrEmptyInput   = errors.New("input carries no pointer, key or tick")
	ErrHandlerPanic = errors.New("handler panicked")
)
