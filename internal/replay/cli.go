package replay

import (
	"fmt"
	"os"

	"github.com/okian/gestures/pkg/logger"
)

// SetupLogging initializes the global logger for the replay tool.
func SetupLogging(format string, verbose bool) error {
	if err := logger.InitWithOptions(logger.Options{Output: os.Stderr, Format: format}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the replay tool.
func ShowHelp() {
	os.Stdout.WriteString(`Gesture Replay Tool
===================

Plays recorded pointer interactions against a running gesture service and
verifies the delivered gestures.

Usage:
  go run ./cmd/replay [options] [scenario ...]

Scenarios are TOML files or built-in names: ` + fmt.Sprint(BuiltinNames()) + `.
Without arguments every built-in scenario runs.

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -speed float
        Playback speed multiplier (default 1)
  -timeout duration
        HTTP request timeout (default 5s)
  -settle duration
        How long to wait for expected gestures (default 2s)
  -log-format string
        text or json (default "text")
  -verbose
        Log every posted step
  -help
        Show this help message

Examples:
  # Run the built-in scenarios
  go run ./cmd/replay

  # Replay a recording at half speed
  go run ./cmd/replay -speed 0.5 testdata/swipe.toml
`)
}
