package replay

import "time"

// Config holds configuration for a replay run.
type Config struct {
	BaseURL   string        // Base URL of the service
	Scenarios []string      // TOML files or built-in names; empty runs every built-in
	Speed     float64       // Playback speed multiplier; 1 keeps recorded timing
	Timeout   time.Duration // HTTP request timeout
	Settle    time.Duration // How long to wait for expected gestures
	Verbose   bool          // Log every posted step
}

// Stats holds run statistics.
type Stats struct {
	Scenarios int
	Passed    int
	Failed    int
	Steps     int
	Rejected  int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Gesture is the client-side view of a delivered gesture.
type Gesture struct {
	ID     string         `json:"id"`
	Seq    uint64         `json:"seq"`
	Type   string         `json:"type"`
	Target string         `json:"target"`
	Detail map[string]any `json:"detail"`
}
