package capture

import "github.com/okian/gestures/pkg/logger"

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithLogger sets a custom logger for the manager.
func WithLogger(l logger.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l.Named("capture")
		}
	}
}
