package replay

import (
	"fmt"
	"strings"
)

// Scoped returns the gestures delivered at or under prefix.
func Scoped(gs []Gesture, prefix string) []Gesture {
	var out []Gesture
	for _, g := range gs {
		if g.Target == prefix || strings.HasPrefix(g.Target, prefix+"/") {
			out = append(out, g)
		}
	}
	return out
}

// Verify reports whether expect occurs in order within got. Other gestures
// may be interleaved; recognizers run side by side.
func Verify(expect []string, got []Gesture) error {
	i := 0
	for _, g := range got {
		if i < len(expect) && g.Type == expect[i] {
			i++
		}
	}
	if i < len(expect) {
		return fmt.Errorf("%w: missing %q after %v; delivered %v",
			ErrExpectation, expect[i], expect[:i], names(got))
	}
	return nil
}

func names(gs []Gesture) []string {
	out := make([]string, 0, len(gs))
	for _, g := range gs {
		out = append(out, g.Type)
	}
	return out
}
