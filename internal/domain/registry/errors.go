package registry

import "errors"

// ErrFull is returned by Set when a new pointer would exceed the bound.
var ErrFull = errors.New("pointer registry full")
