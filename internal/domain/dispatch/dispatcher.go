// Package dispatch routes normalized pointer samples to the registered
// gesture recognizers.
package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/gestures/internal/domain/gesture"
	"github.com/okian/gestures/internal/domain/model"
	"github.com/okian/gestures/internal/domain/registry"
	"github.com/okian/gestures/pkg/logger"
	"github.com/okian/gestures/pkg/metrics"
)

// Info describes a registered recognizer.
type Info struct {
	Name           string            `json:"name"`
	Events         []model.Kind      `json:"events"`
	Exposes        []string          `json:"exposes"`
	DefaultActions map[string]string `json:"defaultActions"`
}

type entry struct {
	name string
	rec  gesture.Recognizer
}

// Dispatcher is the registration and routing hub. It owns the pointer
// registry. It is not safe for concurrent routing; callers serialize Route
// and KeyUp on one goroutine.
type Dispatcher struct {
	registry registry.Registry
	entries  []entry
	byKind   map[model.Kind][]gesture.Recognizer
	keys     []gesture.KeyRecognizer
	names    map[string]struct{}
	logger   logger.Logger
}

// New returns an empty Dispatcher.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		byKind: make(map[model.Kind][]gesture.Recognizer),
		names:  make(map[string]struct{}),
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.registry == nil {
		d.registry = registry.NewInMemoryRegistry()
	}
	return d
}

// Register adds r under name. Recognizers run in registration order.
func (d *Dispatcher) Register(name string, r gesture.Recognizer) error {
	if r == nil {
		return ErrNilRecognizer
	}
	if name == "" {
		return ErrEmptyName
	}
	if _, ok := d.names[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateRecognizer, name)
	}

	var keyRec gesture.KeyRecognizer
	for _, k := range r.Events() {
		if k != model.KindKeyUp {
			continue
		}
		kr, ok := r.(gesture.KeyRecognizer)
		if !ok {
			return fmt.Errorf("%w: %s", ErrNoKeyHandler, name)
		}
		keyRec = kr
	}

	d.names[name] = struct{}{}
	d.entries = append(d.entries, entry{name: name, rec: r})
	for _, k := range r.Events() {
		if k == model.KindKeyUp {
			continue
		}
		d.byKind[k] = append(d.byKind[k], r)
	}
	if keyRec != nil {
		d.keys = append(d.keys, keyRec)
	}
	return nil
}

// Route delivers s to every recognizer subscribed to its kind.
//
// Down records the pointer origin before any recognizer runs. A down the
// registry refuses reaches no recognizer, and neither do its later events.
// Move, up and cancel keep the hit element as Related and retarget to the
// origin; a pointer with no origin is dropped. Up and cancel forget the
// origin after every recognizer has run.
func (d *Dispatcher) Route(ctx context.Context, s model.PointerSample) {
	start := time.Now()

	switch s.Kind {
	case model.KindDown:
		if err := d.registry.Set(ctx, s.ID, s.Target); err != nil {
			d.logger.Debug(ctx, "pointer refused; dropping",
				logger.Int64("pointer", int64(s.ID)),
				logger.Error(err),
			)
			metrics.RecordPointerDropped("registry_full")
			return
		}
	case model.KindMove, model.KindUp, model.KindCancel:
		origin, ok := d.registry.Get(ctx, s.ID)
		if !ok {
			d.logger.Debug(ctx, "pointer not registered; dropping",
				logger.String("kind", string(s.Kind)),
				logger.Int64("pointer", int64(s.ID)),
			)
			metrics.RecordPointerDropped("registry_miss")
			return
		}
		if s.Related == nil {
			s.Related = s.Target
		}
		s.Target = origin
	default:
		metrics.RecordPointerDropped("unknown_kind")
		return
	}

	for _, r := range d.byKind[s.Kind] {
		switch s.Kind {
		case model.KindDown:
			r.Down(ctx, s)
		case model.KindMove:
			r.Move(ctx, s)
		case model.KindUp:
			r.Up(ctx, s)
		case model.KindCancel:
			r.Cancel(ctx, s)
		}
	}

	if s.Kind == model.KindUp || s.Kind == model.KindCancel {
		d.registry.Delete(ctx, s.ID)
	}

	metrics.RecordPointerRouted(string(s.Kind))
	metrics.RecordRouteLatency(float64(time.Since(start).Microseconds()))
}

// Reset discards every recognizer session and forgets every live pointer
// without emitting. It must run on the routing goroutine or after it exits.
func (d *Dispatcher) Reset(ctx context.Context) {
	for _, e := range d.entries {
		e.rec.Reset(ctx)
	}
	for _, id := range d.registry.IDs() {
		d.registry.Delete(ctx, id)
	}
}

// KeyUp delivers a key release to every key-consuming recognizer.
func (d *Dispatcher) KeyUp(ctx context.Context, k model.KeyEvent) {
	for _, r := range d.keys {
		r.KeyUp(ctx, k)
	}
	metrics.RecordPointerRouted(string(model.KindKeyUp))
}

// Recognizers describes the registered recognizers in registration order.
// The result only depends on registration, so it may be read off the routing
// goroutine once registration is complete.
func (d *Dispatcher) Recognizers() []Info {
	out := make([]Info, 0, len(d.entries))
	for _, e := range d.entries {
		out = append(out, Info{
			Name:           e.name,
			Events:         e.rec.Events(),
			Exposes:        e.rec.Exposes(),
			DefaultActions: e.rec.DefaultActions(),
		})
	}
	return out
}

// TouchActions merges every recognizer's default interaction hints.
func (d *Dispatcher) TouchActions() map[string]string {
	out := make(map[string]string)
	for _, e := range d.entries {
		for g, hint := range e.rec.DefaultActions() {
			out[g] = hint
		}
	}
	return out
}

// ActivePointers returns the number of registered live pointers.
func (d *Dispatcher) ActivePointers() int { return d.registry.Len() }
