package registry

// Option applies a configuration option to the in-memory registry.
type Option func(*inMemoryRegistry)

// WithMaxSize bounds the number of live pointers.
// If maxSize > 0: a new pointer is refused with ErrFull at capacity.
// If maxSize <= 0: unbounded.
func WithMaxSize(maxSize int) Option {
	return func(r *inMemoryRegistry) {
		r.maxSize = maxSize
	}
}
