package gesture

import (
	"context"

	"github.com/okian/gestures/internal/domain/model"
	"github.com/okian/gestures/pkg/logger"
)

type trackRecord struct {
	down     model.PointerSample
	target   model.Element
	info     map[string]any
	lastMove model.PointerSample
	xDir     int
	yDir     int
	tracking bool
}

// Track emits trackstart once a captured primary pointer moves past the
// wiggle threshold, then track, trackx and tracky on every move, and
// trackend on release.
type Track struct {
	base
	capturer Capturer
	records  map[model.PointerID]*trackRecord
}

// NewTrack returns a track recognizer. A nil capturer disables capture.
func NewTrack(emitter Emitter, capturer Capturer, opts ...Option) *Track {
	if capturer == nil {
		capturer = nopCapturer{}
	}
	return &Track{
		base:     newBase(FamilyTrack, emitter, opts),
		capturer: capturer,
		records:  make(map[model.PointerID]*trackRecord),
	}
}

// Events implements Recognizer.
func (t *Track) Events() []model.Kind {
	return []model.Kind{model.KindDown, model.KindMove, model.KindUp, model.KindCancel}
}

// Exposes implements Recognizer.
func (t *Track) Exposes() []string {
	return []string{
		model.GestureTrackStart,
		model.GestureTrack,
		model.GestureTrackX,
		model.GestureTrackY,
		model.GestureTrackEnd,
	}
}

// DefaultActions implements Recognizer.
func (t *Track) DefaultActions() map[string]string {
	return map[string]string{
		model.GestureTrack:  "none",
		model.GestureTrackX: "pan-y",
		model.GestureTrackY: "pan-x",
	}
}

// Down starts a session and captures the pointer to its origin element.
func (t *Track) Down(ctx context.Context, s model.PointerSample) {
	if !s.Primary {
		return
	}
	if s.Type == model.PointerMouse && s.Buttons != model.ButtonPrimary {
		return
	}
	t.records[s.ID] = &trackRecord{
		down:   s,
		target: s.Target,
		info:   make(map[string]any),
	}
	t.reportSessions(len(t.records))
	t.capturer.Begin(ctx, s.ID, s.Target)
}

// Move promotes the session to tracking past the threshold and emits the
// track family.
func (t *Track) Move(ctx context.Context, s model.PointerSample) {
	rec, ok := t.records[s.ID]
	if !ok {
		return
	}
	if !rec.tracking {
		if s.Page.Sub(rec.down.Page).Len2() > t.cfg.trackWiggle {
			rec.tracking = true
			rec.lastMove = rec.down
			t.logger.Debug(ctx, "tracking started", logger.Int64("pointer", int64(s.ID)))
			t.fire(ctx, model.GestureTrackStart, s, rec)
		}
	}
	if rec.tracking {
		t.fire(ctx, model.GestureTrack, s, rec)
		t.fire(ctx, model.GestureTrackX, s, rec)
		t.fire(ctx, model.GestureTrackY, s, rec)
	}
	rec.lastMove = s
}

// Up emits trackend when tracking and ends the session.
func (t *Track) Up(ctx context.Context, s model.PointerSample) { t.finish(ctx, s) }

// Cancel ends the session like Up.
func (t *Track) Cancel(ctx context.Context, s model.PointerSample) { t.finish(ctx, s) }

func (t *Track) finish(ctx context.Context, s model.PointerSample) {
	rec, ok := t.records[s.ID]
	if !ok {
		return
	}
	if rec.tracking {
		t.fire(ctx, model.GestureTrackEnd, s, rec)
	}
	t.capturer.End(ctx, s.ID)
	delete(t.records, s.ID)
	t.reportSessions(len(t.records))
}

// fire emits typ for s. trackx and tracky are skipped when their axis did
// not move since the previous sample; a zero delta keeps the last direction.
func (t *Track) fire(ctx context.Context, typ string, s model.PointerSample, rec *trackRecord) {
	d := s.Page.Sub(rec.down.Page)
	dd := s.Page.Sub(rec.lastMove.Page)

	if dd.X != 0 {
		rec.xDir = direction(dd.X)
	} else if typ == model.GestureTrackX {
		return
	}
	if dd.Y != 0 {
		rec.yDir = direction(dd.Y)
	} else if typ == model.GestureTrackY {
		return
	}

	id := s.ID
	t.emit(ctx, typ, rec.target, model.TrackDetail{
		DX:          d.X,
		DY:          d.Y,
		DDX:         dd.X,
		DDY:         dd.Y,
		Client:      s.Client,
		Page:        s.Page,
		Screen:      s.Screen,
		XDirection:  rec.xDir,
		YDirection:  rec.yDir,
		PointerType: s.Type,
		PointerID:   id,
		Related:     s.Related,
		TrackInfo:   rec.info,
		ReleaseCapture: func() {
			t.capturer.End(ctx, id)
		},
	})
}

func direction(delta float64) int {
	if delta > 0 {
		return 1
	}
	return -1
}

// Reset ends capture for every session without emitting trackend.
func (t *Track) Reset(ctx context.Context) {
	for id := range t.records {
		t.capturer.End(ctx, id)
		delete(t.records, id)
	}
	t.reportSessions(0)
}

// Retains implements Recognizer.
func (t *Track) Retains(id model.PointerID) bool {
	_, ok := t.records[id]
	return ok
}

// Sessions implements Recognizer.
func (t *Track) Sessions() int { return len(t.records) }
