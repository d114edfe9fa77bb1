package gesture

import (
	"context"

	"github.com/okian/gestures/internal/domain/clock"
	"github.com/okian/gestures/internal/domain/model"
	"github.com/okian/gestures/pkg/logger"
	"github.com/okian/gestures/pkg/metrics"
)

// holdRecord moves from holding (task armed, held false) to held (at least
// one pulse fired) and is discarded on up, cancel or excess movement.
type holdRecord struct {
	target      model.Element
	origin      model.Point
	pointerType model.PointerType
	started     int64 // scheduler time at down, unix ms
	held        bool
	task        clock.Task
}

// Hold emits hold after the pulse period, holdpulse on every later pulse
// while the pointer stays put, and release when a held pointer lets go.
type Hold struct {
	base
	scheduler clock.Scheduler
	records   map[model.PointerID]*holdRecord
}

// NewHold returns a hold recognizer whose pulses are armed on scheduler.
func NewHold(emitter Emitter, scheduler clock.Scheduler, opts ...Option) *Hold {
	return &Hold{
		base:      newBase(FamilyHold, emitter, opts),
		scheduler: scheduler,
		records:   make(map[model.PointerID]*holdRecord),
	}
}

// Events implements Recognizer.
func (h *Hold) Events() []model.Kind {
	return []model.Kind{model.KindDown, model.KindMove, model.KindUp, model.KindCancel}
}

// Exposes implements Recognizer.
func (h *Hold) Exposes() []string {
	return []string{model.GestureHold, model.GestureHoldPulse, model.GestureRelease}
}

// DefaultActions implements Recognizer.
func (h *Hold) DefaultActions() map[string]string { return map[string]string{} }

// Down arms the pulse task. A repeated down for a live id replaces the
// previous record without a release.
func (h *Hold) Down(ctx context.Context, s model.PointerSample) {
	if old, ok := h.records[s.ID]; ok {
		old.task.Stop()
		delete(h.records, s.ID)
		metrics.AddHoldTimers(-1)
	}

	rec := &holdRecord{
		target:      s.Target,
		origin:      s.Client,
		pointerType: s.Type,
		started:     h.scheduler.Now().UnixMilli(),
	}
	id := s.ID
	rec.task = h.scheduler.Every(h.cfg.holdDelay, func() { h.pulse(ctx, id, rec) })
	h.records[id] = rec
	metrics.AddHoldTimers(1)
	h.reportSessions(len(h.records))
}

// Move cancels the hold once the pointer wiggles past the threshold.
func (h *Hold) Move(ctx context.Context, s model.PointerSample) {
	rec, ok := h.records[s.ID]
	if !ok {
		return
	}
	if s.Client.Sub(rec.origin).Len2() > h.cfg.holdWiggle {
		h.logger.Debug(ctx, "hold cancelled by movement", logger.Int64("pointer", int64(s.ID)))
		h.stop(ctx, s.ID)
	}
}

// Up ends the hold.
func (h *Hold) Up(ctx context.Context, s model.PointerSample) { h.stop(ctx, s.ID) }

// Cancel ends the hold.
func (h *Hold) Cancel(ctx context.Context, s model.PointerSample) { h.stop(ctx, s.ID) }

func (h *Hold) pulse(ctx context.Context, id model.PointerID, rec *holdRecord) {
	// A tick posted before Stop may still arrive; ignore it.
	if cur, ok := h.records[id]; !ok || cur != rec {
		return
	}

	d := model.HoldDetail{
		X:           rec.origin.X,
		Y:           rec.origin.Y,
		PointerType: rec.pointerType,
		PointerID:   id,
	}
	typ := model.GestureHold
	if rec.held {
		typ = model.GestureHoldPulse
		d.HoldTime = h.scheduler.Now().UnixMilli() - rec.started
	}
	rec.held = true
	h.emit(ctx, typ, rec.target, d)
}

func (h *Hold) stop(ctx context.Context, id model.PointerID) {
	rec, ok := h.records[id]
	if !ok {
		return
	}
	rec.task.Stop()
	delete(h.records, id)
	metrics.AddHoldTimers(-1)
	h.reportSessions(len(h.records))

	if rec.held {
		h.emit(ctx, model.GestureRelease, rec.target, model.HoldDetail{
			X:           rec.origin.X,
			Y:           rec.origin.Y,
			PointerType: rec.pointerType,
			PointerID:   id,
		})
	}
}

// Reset stops every pulse task without emitting release.
func (h *Hold) Reset(context.Context) {
	for id, rec := range h.records {
		rec.task.Stop()
		delete(h.records, id)
		metrics.AddHoldTimers(-1)
	}
	h.reportSessions(0)
}

// Retains implements Recognizer.
func (h *Hold) Retains(id model.PointerID) bool {
	_, ok := h.records[id]
	return ok
}

// Sessions implements Recognizer.
func (h *Hold) Sessions() int { return len(h.records) }
