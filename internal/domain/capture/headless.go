package capture

import (
	"fmt"
	"sync"

	"github.com/okian/gestures/internal/domain/model"
)

// HeadlessState is a snapshot of a HeadlessHost.
type HeadlessState struct {
	Captured            map[model.PointerID]Strategy `json:"captured"`
	OverlayVisible      bool                         `json:"overlayVisible"`
	MovesSubscribed     bool                         `json:"movesSubscribed"`
	SelectionSuppressed bool                         `json:"selectionSuppressed"`
}

// HeadlessHost is a Host with no real surface. It records what a UI host
// would have been asked to do; the service uses it when it runs without a
// display.
type HeadlessHost struct {
	mu     sync.Mutex
	native bool
	compat bool
	state  HeadlessState
}

// NewHeadlessHost returns a host advertising the given primitives.
func NewHeadlessHost(native, compat bool) *HeadlessHost {
	return &HeadlessHost{
		native: native,
		compat: compat,
		state:  HeadlessState{Captured: make(map[model.PointerID]Strategy)},
	}
}

// Supports implements Host.
func (h *HeadlessHost) Supports(s Strategy) bool {
	switch s {
	case StrategyNative:
		return h.native
	case StrategyCompat:
		return h.compat
	case StrategyOverlay:
		return true
	}
	return false
}

// Capture implements Host.
func (h *HeadlessHost) Capture(s Strategy, id model.PointerID, _ model.Element) error {
	if !h.Supports(s) || s == StrategyOverlay {
		return fmt.Errorf("%w: %s", ErrUnsupportedStrategy, s)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.Captured[id] = s
	return nil
}

// Release implements Host.
func (h *HeadlessHost) Release(_ Strategy, id model.PointerID, _ model.Element) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.state.Captured[id]; !ok {
		return fmt.Errorf("%w: %d", ErrNotCaptured, id)
	}
	delete(h.state.Captured, id)
	return nil
}

// ShowOverlay implements Host.
func (h *HeadlessHost) ShowOverlay() { h.set(func(s *HeadlessState) { s.OverlayVisible = true }) }

// HideOverlay implements Host.
func (h *HeadlessHost) HideOverlay() { h.set(func(s *HeadlessState) { s.OverlayVisible = false }) }

// SubscribeMoves implements Host.
func (h *HeadlessHost) SubscribeMoves() { h.set(func(s *HeadlessState) { s.MovesSubscribed = true }) }

// UnsubscribeMoves implements Host.
func (h *HeadlessHost) UnsubscribeMoves() { h.set(func(s *HeadlessState) { s.MovesSubscribed = false }) }

// SuppressSelection implements Host.
func (h *HeadlessHost) SuppressSelection(on bool) {
	h.set(func(s *HeadlessState) { s.SelectionSuppressed = on })
}

// Snapshot returns a copy of the recorded state.
func (h *HeadlessHost) Snapshot() HeadlessState {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := h.state
	out.Captured = make(map[model.PointerID]Strategy, len(h.state.Captured))
	for k, v := range h.state.Captured {
		out.Captured[k] = v
	}
	return out
}

func (h *HeadlessHost) set(fn func(*HeadlessState)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(&h.state)
}
