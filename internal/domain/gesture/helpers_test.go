package gesture_test

import (
	"context"
	"time"

	"github.com/okian/gestures/internal/domain/model"
)

type recorder struct {
	events []model.GestureEvent
}

func (r *recorder) Emit(_ context.Context, ev model.GestureEvent) {
	r.events = append(r.events, ev)
}

func (r *recorder) types() []string {
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

type captureCall struct {
	begin bool
	id    model.PointerID
}

type fakeCapturer struct {
	calls []captureCall
}

func (f *fakeCapturer) Begin(_ context.Context, id model.PointerID, _ model.Element) {
	f.calls = append(f.calls, captureCall{begin: true, id: id})
}

func (f *fakeCapturer) End(_ context.Context, id model.PointerID) {
	f.calls = append(f.calls, captureCall{id: id})
}

func touch(kind model.Kind, id model.PointerID, x, y float64, at time.Duration, target model.Element) model.PointerSample {
	p := model.Point{X: x, Y: y}
	return model.PointerSample{
		Kind:      kind,
		ID:        id,
		Type:      model.PointerTouch,
		Primary:   true,
		Buttons:   1,
		Timestamp: at,
		Client:    p,
		Page:      p,
		Screen:    p,
		Target:    target,
	}
}

func mouse(kind model.Kind, buttons int, x, y float64, target model.Element) model.PointerSample {
	s := touch(kind, 1, x, y, 0, target)
	s.Type = model.PointerMouse
	s.Buttons = buttons
	return s
}
