package model

// Gesture names emitted by the recognizers.
const (
	GestureTap        = "tap"
	GestureHold       = "hold"
	GestureHoldPulse  = "holdpulse"
	GestureRelease    = "release"
	GestureTrackStart = "trackstart"
	GestureTrack      = "track"
	GestureTrackX     = "trackx"
	GestureTrackY     = "tracky"
	GestureTrackEnd   = "trackend"
	GesturePinch      = "pinch"
	GestureRotate     = "rotate"
	GestureFlick      = "flick"
)

// GestureEvent is a synthesized, ephemeral gesture delivered to Target.
type GestureEvent struct {
	Type       string
	Target     Element
	Bubbles    bool
	Cancelable bool
	Detail     Detail
}

// NewGestureEvent returns a bubbling, cancelable gesture event.
func NewGestureEvent(typ string, target Element, detail Detail) GestureEvent {
	return GestureEvent{
		Type:       typ,
		Target:     target,
		Bubbles:    true,
		Cancelable: true,
		Detail:     detail,
	}
}

// Detail is the type-specific payload of a GestureEvent. The set of
// implementations is closed to this package.
type Detail interface {
	isDetail()
}

// TapDetail is the payload of tap.
type TapDetail struct {
	X           float64     `json:"x"`
	Y           float64     `json:"y"`
	Detail      int         `json:"detail"`
	PointerType PointerType `json:"pointerType"`
	PointerID   PointerID   `json:"pointerId"`
}

// HoldDetail is the payload of hold, holdpulse and release.
type HoldDetail struct {
	X           float64     `json:"x"`
	Y           float64     `json:"y"`
	PointerType PointerType `json:"pointerType"`
	PointerID   PointerID   `json:"pointerId"`
	// HoldTime is milliseconds held; set on holdpulse only.
	HoldTime int64 `json:"holdTime,omitempty"`
}

// TrackDetail is the payload of the track family.
type TrackDetail struct {
	DX  float64 `json:"dx"`
	DY  float64 `json:"dy"`
	DDX float64 `json:"ddx"`
	DDY float64 `json:"ddy"`

	Client Point `json:"client"`
	Page   Point `json:"page"`
	Screen Point `json:"screen"`

	XDirection int `json:"xDirection"`
	YDirection int `json:"yDirection"`

	PointerType PointerType `json:"pointerType"`
	PointerID   PointerID   `json:"pointerId"`
	Related     Element     `json:"-"`

	// TrackInfo is shared by every event of one track session so consumers
	// can stash annotations across events.
	TrackInfo map[string]any `json:"-"`
	// ReleaseCapture ends pointer capture before the pointer is released.
	ReleaseCapture func() `json:"-"`
}

// PinchDetail is the payload of pinch.
type PinchDetail struct {
	Scale   float64 `json:"scale"`
	CenterX float64 `json:"centerX"`
	CenterY float64 `json:"centerY"`
}

// RotateDetail is the payload of rotate.
type RotateDetail struct {
	Angle   int     `json:"angle"`
	CenterX float64 `json:"centerX"`
	CenterY float64 `json:"centerY"`
}

// FlickDetail is the payload of flick. Velocities are position units per ms.
type FlickDetail struct {
	XVelocity   float64     `json:"xVelocity"`
	YVelocity   float64     `json:"yVelocity"`
	Velocity    float64     `json:"velocity"`
	Angle       float64     `json:"angle"`
	MajorAxis   string      `json:"majorAxis"`
	PointerType PointerType `json:"pointerType"`
	PointerID   PointerID   `json:"pointerId"`
}

func (TapDetail) isDetail()    {}
func (HoldDetail) isDetail()   {}
func (TrackDetail) isDetail()  {}
func (PinchDetail) isDetail()  {}
func (RotateDetail) isDetail() {}
func (FlickDetail) isDetail()  {}
