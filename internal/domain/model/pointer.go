// Package model contains domain models passed between layers.
package model

import "time"

// Kind is the lifecycle stage of a normalized pointer event, or a key release.
type Kind string

// Primitive event kinds a recognizer may subscribe to.
const (
	KindDown   Kind = "down"
	KindMove   Kind = "move"
	KindUp     Kind = "up"
	KindCancel Kind = "cancel"
	KindKeyUp  Kind = "keyup"
)

// ParseKind maps a wire name to a pointer Kind. Key releases are not pointer
// kinds and are rejected.
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(s); k {
	case KindDown, KindMove, KindUp, KindCancel:
		return k, true
	}
	return "", false
}

// PointerType is the input surface family that produced a pointer.
type PointerType string

// Pointer families. PointerUnavailable marks gestures synthesized without a
// pointer (keyboard activation).
const (
	PointerMouse       PointerType = "mouse"
	PointerTouch       PointerType = "touch"
	PointerPen         PointerType = "pen"
	PointerUnavailable PointerType = "unavailable"
)

// ButtonPrimary is the pressed-buttons bit of the primary (left) button.
const ButtonPrimary = 1

// KeySpace is the key code of the space bar.
const KeySpace = 32

// PointerID identifies one live pointer; unique among concurrent pointers.
type PointerID int64

// Point is a position in one coordinate space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Len2 returns the squared length of p taken as a vector.
func (p Point) Len2() float64 { return p.X*p.X + p.Y*p.Y }

// Element is a node of the UI tree that gestures are delivered to.
type Element interface {
	ID() string
	// Parent returns nil for the root and for detached nodes.
	Parent() Element
}

// TextInput is implemented by elements that accept typed text; a space
// released on them types a character rather than activating.
type TextInput interface {
	AcceptsText() bool
}

// PointerSample is an immutable snapshot of one normalized pointer event.
// Recognizers receive it by value and must not retain pointers into it.
type PointerSample struct {
	Kind      Kind
	ID        PointerID
	Type      PointerType
	Primary   bool
	Buttons   int
	Detail    int
	Timestamp time.Duration // monotonic per ID, arbitrary origin

	Client Point
	Page   Point
	Screen Point

	// Target is the element the interaction started on once the dispatcher
	// has consulted the pointer registry.
	Target Element
	// Related is the element under the pointer when it differs from Target.
	Related Element

	// TapPrevented is set by upstream handlers to veto a tap for this press.
	TapPrevented bool
}

// KeyEvent is a raw key release on the focused element.
type KeyEvent struct {
	Code   int
	Target Element
}

// Input is one unit of work for the routing loop. Exactly one field is set.
type Input struct {
	Pointer *PointerSample
	Key     *KeyEvent
	// Tick runs a scheduled callback on the routing goroutine.
	Tick func()
}
