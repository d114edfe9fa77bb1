package gesture

import (
	"context"

	"github.com/okian/gestures/internal/domain/model"
	"github.com/okian/gestures/internal/domain/tree"
	"github.com/okian/gestures/pkg/logger"
)

type tapStart struct {
	target  model.Element
	buttons int
	at      model.Point
}

// Tap emits tap when a primary pointer goes down and up, and when space is
// released on a focused element that does not accept text.
type Tap struct {
	base
	starts map[model.PointerID]tapStart
}

// NewTap returns a tap recognizer.
func NewTap(emitter Emitter, opts ...Option) *Tap {
	return &Tap{
		base:   newBase(FamilyTap, emitter, opts),
		starts: make(map[model.PointerID]tapStart),
	}
}

// Events implements Recognizer.
func (t *Tap) Events() []model.Kind {
	return []model.Kind{model.KindDown, model.KindUp, model.KindCancel, model.KindKeyUp}
}

// Exposes implements Recognizer.
func (t *Tap) Exposes() []string { return []string{model.GestureTap} }

// DefaultActions implements Recognizer.
func (t *Tap) DefaultActions() map[string]string { return map[string]string{} }

// Down records the press unless an upstream handler vetoed the tap.
func (t *Tap) Down(_ context.Context, s model.PointerSample) {
	if !s.Primary || s.TapPrevented {
		return
	}
	t.starts[s.ID] = tapStart{target: s.Target, buttons: s.Buttons, at: s.Client}
	t.reportSessions(len(t.starts))
}

// Move implements Recognizer; taps ignore movement.
func (t *Tap) Move(context.Context, model.PointerSample) {}

// Up emits tap on the lowest common ancestor of the press and release
// elements.
func (t *Tap) Up(ctx context.Context, s model.PointerSample) {
	start, ok := t.starts[s.ID]
	delete(t.starts, s.ID)
	t.reportSessions(len(t.starts))
	if !ok {
		return
	}

	if s.Type == model.PointerMouse && start.buttons != model.ButtonPrimary {
		t.logger.Debug(ctx, "tap rejected: not a primary button press",
			logger.Int64("pointer", int64(s.ID)),
			logger.Int("buttons", start.buttons),
		)
		return
	}

	release := s.Related
	if release == nil {
		release = s.Target
	}
	target := tree.LowestCommonAncestor(start.target, release)
	t.emit(ctx, model.GestureTap, target, model.TapDetail{
		X:           s.Client.X,
		Y:           s.Client.Y,
		Detail:      s.Detail,
		PointerType: s.Type,
		PointerID:   s.ID,
	})
}

// Cancel forgets the press.
func (t *Tap) Cancel(_ context.Context, s model.PointerSample) {
	delete(t.starts, s.ID)
	t.reportSessions(len(t.starts))
}

// KeyUp emits a pointerless tap for a space released on a non-text element.
func (t *Tap) KeyUp(ctx context.Context, k model.KeyEvent) {
	if k.Code != model.KeySpace {
		return
	}
	if ti, ok := k.Target.(model.TextInput); ok && ti.AcceptsText() {
		return
	}
	t.emit(ctx, model.GestureTap, k.Target, model.TapDetail{
		PointerType: model.PointerUnavailable,
	})
}

// Reset forgets every press.
func (t *Tap) Reset(context.Context) {
	clear(t.starts)
	t.reportSessions(0)
}

// Retains implements Recognizer.
func (t *Tap) Retains(id model.PointerID) bool {
	_, ok := t.starts[id]
	return ok
}

// Sessions implements Recognizer.
func (t *Tap) Sessions() int { return len(t.starts) }
