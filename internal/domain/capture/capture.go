// Package capture directs a pointer's subsequent moves to one recognizer
// session regardless of what lies under the pointer.
package capture

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/okian/gestures/internal/domain/model"
	"github.com/okian/gestures/pkg/logger"
	"github.com/okian/gestures/pkg/metrics"
)

// Strategy is the capture mechanism used for a session.
type Strategy string

// Capture strategies in order of preference.
const (
	// StrategyNative is the per-pointer capture primitive of the platform.
	StrategyNative Strategy = "native"
	// StrategyCompat is the cross-platform (vendor-prefixed) primitive.
	StrategyCompat Strategy = "compat"
	// StrategyOverlay installs a transparent full-surface interception
	// overlay and subscribes to surface-level moves.
	StrategyOverlay Strategy = "overlay"
	// StrategyAuto asks SelectStrategy to inspect the host.
	StrategyAuto Strategy = "auto"
)

// Host is the platform side of capture.
type Host interface {
	// Supports reports whether a native or compat primitive exists. The
	// overlay is always available.
	Supports(s Strategy) bool
	Capture(s Strategy, id model.PointerID, el model.Element) error
	Release(s Strategy, id model.PointerID, el model.Element) error

	ShowOverlay()
	HideOverlay()
	SubscribeMoves()
	UnsubscribeMoves()

	// SuppressSelection toggles the flag that prevents incidental text
	// selection while a track gesture is active.
	SuppressSelection(on bool)
}

// ParseStrategy maps a config value to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return StrategyAuto, nil
	case StrategyAuto, StrategyNative, StrategyCompat, StrategyOverlay:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// SelectStrategy resolves want against host capabilities once, at startup.
// Auto prefers native, then compat, then the overlay.
func SelectStrategy(host Host, want Strategy) (Strategy, error) {
	switch want {
	case StrategyAuto, "":
		switch {
		case host.Supports(StrategyNative):
			return StrategyNative, nil
		case host.Supports(StrategyCompat):
			return StrategyCompat, nil
		default:
			return StrategyOverlay, nil
		}
	case StrategyOverlay:
		return StrategyOverlay, nil
	case StrategyNative, StrategyCompat:
		if !host.Supports(want) {
			return "", fmt.Errorf("%w: %s", ErrUnsupportedStrategy, want)
		}
		return want, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, want)
}

type session struct {
	strategy Strategy
	element  model.Element
}

// Manager starts and stops capture sessions keyed by pointer id. The
// overlay, the surface move subscription and selection suppression are
// shared across pointers and reference counted.
type Manager struct {
	mu       sync.Mutex
	host     Host
	strategy Strategy
	sessions map[model.PointerID]session

	overlayRefs   int
	selectionRefs int

	logger logger.Logger
}

// NewManager returns a Manager bound to a strategy chosen by SelectStrategy.
func NewManager(host Host, strategy Strategy, opts ...Option) *Manager {
	m := &Manager{
		host:     host,
		strategy: strategy,
		sessions: make(map[model.PointerID]session),
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Strategy returns the strategy selected at construction.
func (m *Manager) Strategy() Strategy { return m.strategy }

// Begin captures id to el. A repeated Begin for a live id ends the previous
// session first. A failing primitive degrades to the overlay.
func (m *Manager) Begin(ctx context.Context, id model.PointerID, el model.Element) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; ok {
		m.endLocked(ctx, id)
	}

	chosen := m.strategy
	if chosen != StrategyOverlay {
		if err := m.host.Capture(chosen, id, el); err != nil {
			m.logger.Warn(ctx, "capture primitive failed; using overlay",
				logger.String("strategy", string(chosen)),
				logger.Int64("pointer", int64(id)),
				logger.Error(err),
			)
			metrics.RecordCaptureFallback()
			chosen = StrategyOverlay
		}
	}

	if chosen == StrategyOverlay {
		if m.overlayRefs == 0 {
			m.host.ShowOverlay()
			m.host.SubscribeMoves()
		}
		m.overlayRefs++
	}

	if m.selectionRefs == 0 {
		m.host.SuppressSelection(true)
	}
	m.selectionRefs++

	m.sessions[id] = session{strategy: chosen, element: el}
	metrics.AddCaptureSessions(string(chosen), 1)
	m.logger.Debug(ctx, "capture begin",
		logger.String("strategy", string(chosen)),
		logger.Int64("pointer", int64(id)),
	)
}

// End reverses exactly the branch Begin took for id. Ending an id with no
// session is a no-op, so End is idempotent.
func (m *Manager) End(ctx context.Context, id model.PointerID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.endLocked(ctx, id)
}

func (m *Manager) endLocked(ctx context.Context, id model.PointerID) {
	s, ok := m.sessions[id]
	if !ok {
		return
	}
	delete(m.sessions, id)

	switch s.strategy {
	case StrategyOverlay:
		m.overlayRefs--
		if m.overlayRefs == 0 {
			m.host.HideOverlay()
			m.host.UnsubscribeMoves()
		}
	default:
		if err := m.host.Release(s.strategy, id, s.element); err != nil {
			m.logger.Debug(ctx, "capture release failed",
				logger.String("strategy", string(s.strategy)),
				logger.Int64("pointer", int64(id)),
				logger.Error(err),
			)
		}
	}

	m.selectionRefs--
	if m.selectionRefs == 0 {
		m.host.SuppressSelection(false)
	}

	metrics.AddCaptureSessions(string(s.strategy), -1)
	m.logger.Debug(ctx, "capture end", logger.Int64("pointer", int64(id)))
}

// Active reports whether id is captured and by which strategy.
func (m *Manager) Active(id model.PointerID) (Strategy, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s.strategy, ok
}

// Len returns the number of live capture sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
