package gesture

import (
	"context"
	"math"
	"time"

	"github.com/okian/gestures/internal/domain/model"
	"github.com/okian/gestures/pkg/logger"
)

// Flick emits flick when a primary pointer is released fast enough. Only one
// flick session exists at a time.
type Flick struct {
	base
	active bool
	id     model.PointerID
	target model.Element
	moves  []model.PointerSample
}

// NewFlick returns a flick recognizer.
func NewFlick(emitter Emitter, opts ...Option) *Flick {
	f := &Flick{base: newBase(FamilyFlick, emitter, opts)}
	f.moves = make([]model.PointerSample, 0, f.cfg.flickQueue)
	return f
}

// Events implements Recognizer.
func (f *Flick) Events() []model.Kind {
	return []model.Kind{model.KindDown, model.KindMove, model.KindUp, model.KindCancel}
}

// Exposes implements Recognizer.
func (f *Flick) Exposes() []string { return []string{model.GestureFlick} }

// DefaultActions implements Recognizer.
func (f *Flick) DefaultActions() map[string]string {
	return map[string]string{model.GestureFlick: "none"}
}

// Down opens the session for a primary pointer when none is open.
func (f *Flick) Down(_ context.Context, s model.PointerSample) {
	if !s.Primary || f.active {
		return
	}
	f.active = true
	f.id = s.ID
	f.target = s.Target
	f.push(s)
	f.reportSessions(1)
}

// Move buffers samples of the session pointer.
func (f *Flick) Move(_ context.Context, s model.PointerSample) {
	if f.active && s.ID == f.id {
		f.push(s)
	}
}

// Up emits flick for the session pointer. Any up ends the session.
func (f *Flick) Up(ctx context.Context, s model.PointerSample) {
	if f.active && s.ID == f.id {
		f.fire(ctx, s)
	}
	f.reset()
}

// Cancel ends the session.
func (f *Flick) Cancel(context.Context, model.PointerSample) { f.reset() }

func (f *Flick) push(s model.PointerSample) {
	if len(f.moves) >= f.cfg.flickQueue {
		copy(f.moves, f.moves[1:])
		f.moves = f.moves[:len(f.moves)-1]
	}
	f.moves = append(f.moves, s)
}

func (f *Flick) reset() {
	f.active = false
	f.id = 0
	f.target = nil
	f.moves = f.moves[:0]
	f.reportSessions(0)
}

// fire picks the buffered sample giving the fastest segment to the release,
// so a slow tail before lifting does not hide the flick.
func (f *Flick) fire(ctx context.Context, e model.PointerSample) {
	var x, y, v float64
	for _, m := range f.moves {
		dt := float64(e.Timestamp-m.Timestamp) / float64(time.Millisecond)
		if dt <= 0 {
			continue
		}
		tx := (e.Client.X - m.Client.X) / dt
		ty := (e.Client.Y - m.Client.Y) / dt
		if tv := math.Sqrt(tx*tx + ty*ty); tv > v {
			x, y, v = tx, ty, tv
		}
	}

	if v < f.cfg.flickMinVelocity {
		f.logger.Debug(ctx, "flick too slow",
			logger.Int64("pointer", int64(e.ID)),
			logger.Float64("velocity", v),
		)
		return
	}

	axis := "y"
	if math.Abs(x) > math.Abs(y) {
		axis = "x"
	}
	f.emit(ctx, model.GestureFlick, f.target, model.FlickDetail{
		XVelocity:   x,
		YVelocity:   y,
		Velocity:    v,
		Angle:       math.Atan2(y, x) * radToDeg,
		MajorAxis:   axis,
		PointerType: e.Type,
		PointerID:   e.ID,
	})
}

// Reset ends the session.
func (f *Flick) Reset(context.Context) { f.reset() }

// Retains implements Recognizer.
func (f *Flick) Retains(id model.PointerID) bool { return f.active && f.id == id }

// Sessions implements Recognizer.
func (f *Flick) Sessions() int {
	if f.active {
		return 1
	}
	return 0
}
