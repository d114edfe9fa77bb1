// Package gesture holds the recognizers that turn routed pointer samples
// into gesture events. Each recognizer owns its private session state and
// is driven synchronously by the dispatcher on the routing goroutine.
package gesture

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/gestures/internal/domain/clock"
	"github.com/okian/gestures/internal/domain/model"
	"github.com/okian/gestures/pkg/logger"
	"github.com/okian/gestures/pkg/metrics"
)

// Family names one of the recognizer variants.
type Family string

// Recognizer families.
const (
	FamilyTap   Family = "tap"
	FamilyHold  Family = "hold"
	FamilyTrack Family = "track"
	FamilyPinch Family = "pinch"
	FamilyFlick Family = "flick"
)

// Families returns every family in default registration order.
func Families() []Family {
	return []Family{FamilyTap, FamilyHold, FamilyTrack, FamilyPinch, FamilyFlick}
}

// Recognizer is the dispatch surface shared by every family. The set of
// implementations is closed to this package.
type Recognizer interface {
	Family() Family
	// Events lists the primitive kinds the recognizer consumes.
	Events() []model.Kind
	// Exposes lists the gesture names it may emit.
	Exposes() []string
	// DefaultActions maps exposed gestures to touch-action hints.
	DefaultActions() map[string]string

	Down(ctx context.Context, s model.PointerSample)
	Move(ctx context.Context, s model.PointerSample)
	Up(ctx context.Context, s model.PointerSample)
	Cancel(ctx context.Context, s model.PointerSample)

	// Reset discards every session without emitting, stopping timers and
	// ending capture the sessions own. Used when routing shuts down.
	Reset(ctx context.Context)

	// Retains reports whether any state is held for id.
	Retains(id model.PointerID) bool
	// Sessions returns the number of pointers with retained state.
	Sessions() int

	sealed()
}

// KeyRecognizer is a Recognizer that also consumes key releases.
type KeyRecognizer interface {
	Recognizer
	KeyUp(ctx context.Context, k model.KeyEvent)
}

// Emitter delivers synthesized gestures to the UI tree.
type Emitter interface {
	Emit(ctx context.Context, ev model.GestureEvent)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(ctx context.Context, ev model.GestureEvent)

// Emit implements Emitter.
func (f EmitterFunc) Emit(ctx context.Context, ev model.GestureEvent) { f(ctx, ev) }

// Capturer starts and ends pointer capture. *capture.Manager satisfies it.
type Capturer interface {
	Begin(ctx context.Context, id model.PointerID, el model.Element)
	End(ctx context.Context, id model.PointerID)
}

type nopCapturer struct{}

func (nopCapturer) Begin(context.Context, model.PointerID, model.Element) {}
func (nopCapturer) End(context.Context, model.PointerID)                  {}

// Deps are the collaborators New hands to recognizers.
type Deps struct {
	Emitter   Emitter
	Scheduler clock.Scheduler
	Capturer  Capturer
}

// ParseFamily maps a config value to a Family.
func ParseFamily(s string) (Family, error) {
	f := Family(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Families() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFamily, s)
}

// New builds the recognizer for family.
func New(family Family, deps Deps, opts ...Option) (Recognizer, error) {
	if deps.Emitter == nil {
		return nil, ErrMissingEmitter
	}
	switch family {
	case FamilyTap:
		return NewTap(deps.Emitter, opts...), nil
	case FamilyHold:
		if deps.Scheduler == nil {
			return nil, ErrMissingScheduler
		}
		return NewHold(deps.Emitter, deps.Scheduler, opts...), nil
	case FamilyTrack:
		return NewTrack(deps.Emitter, deps.Capturer, opts...), nil
	case FamilyPinch:
		return NewPinch(deps.Emitter, opts...), nil
	case FamilyFlick:
		return NewFlick(deps.Emitter, opts...), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, family)
}

// base carries what every family shares.
type base struct {
	family  Family
	emitter Emitter
	logger  logger.Logger
	cfg     settings
}

func newBase(family Family, emitter Emitter, opts []Option) base {
	cfg := applyOptions(opts)
	return base{
		family:  family,
		emitter: emitter,
		logger:  cfg.logger.Named(string(family)),
		cfg:     cfg,
	}
}

func (b *base) Family() Family { return b.family }

func (b *base) sealed() {}

// emit delivers a gesture unless target is nil.
func (b *base) emit(ctx context.Context, typ string, target model.Element, d model.Detail) bool {
	if target == nil {
		b.logger.Debug(ctx, "gesture suppressed: no target", logger.String("gesture", typ))
		metrics.RecordPointerDropped("no_target")
		return false
	}
	b.emitter.Emit(ctx, model.NewGestureEvent(typ, target, d))
	metrics.RecordGestureEmitted(typ)
	return true
}

func (b *base) reportSessions(n int) {
	metrics.UpdateRecognizerSessions(string(b.family), n)
}
