// Package types contains the wire shapes shared by the service and its API.
package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/gestures/internal/domain/model"
)

// Gesture is one delivered gesture as exposed to API clients.
type Gesture struct {
	ID         string       `json:"id"`
	Seq        uint64       `json:"seq"`
	Type       string       `json:"type"`
	Target     string       `json:"target"`
	Bubbles    bool         `json:"bubbles"`
	Cancelable bool         `json:"cancelable"`
	Detail     model.Detail `json:"detail"`
	At         time.Time    `json:"at"`
}

// PointerRequest is the wire form of one normalized pointer sample.
// Timestamps are milliseconds; element references are slash-separated paths.
type PointerRequest struct {
	Kind         string  `json:"kind"`
	PointerID    int64   `json:"pointerId"`
	PointerType  string  `json:"pointerType"`
	IsPrimary    bool    `json:"isPrimary"`
	Buttons      int     `json:"buttons"`
	Detail       int     `json:"detail"`
	TimeStamp    float64 `json:"timeStamp"`
	ClientX      float64 `json:"clientX"`
	ClientY      float64 `json:"clientY"`
	PageX        float64 `json:"pageX"`
	PageY        float64 `json:"pageY"`
	ScreenX      float64 `json:"screenX"`
	ScreenY      float64 `json:"screenY"`
	Target       string  `json:"target"`
	Related      string  `json:"related,omitempty"`
	TapPrevented bool    `json:"tapPrevented,omitempty"`
}

// Validate checks the request shape. It does not touch the element tree.
func (r PointerRequest) Validate() error {
	if _, ok := model.ParseKind(r.Kind); !ok {
		return fmt.Errorf("%w: kind %q", ErrInvalidRequest, r.Kind)
	}
	switch model.PointerType(r.PointerType) {
	case model.PointerMouse, model.PointerTouch, model.PointerPen:
	default:
		return fmt.Errorf("%w: pointerType %q", ErrInvalidRequest, r.PointerType)
	}
	if r.TimeStamp < 0 {
		return fmt.Errorf("%w: timeStamp must not be negative", ErrInvalidRequest)
	}
	if strings.TrimSpace(r.Target) == "" {
		return fmt.Errorf("%w: target is required", ErrInvalidRequest)
	}
	return nil
}

// Sample converts r into a PointerSample, resolving element paths with
// resolve. Validate must have succeeded.
func (r PointerRequest) Sample(resolve func(path string) model.Element) model.PointerSample {
	kind, _ := model.ParseKind(r.Kind)
	s := model.PointerSample{
		Kind:         kind,
		ID:           model.PointerID(r.PointerID),
		Type:         model.PointerType(r.PointerType),
		Primary:      r.IsPrimary,
		Buttons:      r.Buttons,
		Detail:       r.Detail,
		Timestamp:    time.Duration(r.TimeStamp * float64(time.Millisecond)),
		Client:       model.Point{X: r.ClientX, Y: r.ClientY},
		Page:         model.Point{X: r.PageX, Y: r.PageY},
		Screen:       model.Point{X: r.ScreenX, Y: r.ScreenY},
		Target:       resolve(r.Target),
		TapPrevented: r.TapPrevented,
	}
	if r.Related != "" {
		s.Related = resolve(r.Related)
	}
	return s
}

// KeyRequest is the wire form of a key release.
type KeyRequest struct {
	Code   int    `json:"code"`
	Target string `json:"target"`
}

// Validate checks the request shape.
func (r KeyRequest) Validate() error {
	if r.Code <= 0 {
		return fmt.Errorf("%w: code must be positive", ErrInvalidRequest)
	}
	if strings.TrimSpace(r.Target) == "" {
		return fmt.Errorf("%w: target is required", ErrInvalidRequest)
	}
	return nil
}
