package gesture

import (
	"context"
	"math"

	"github.com/okian/gestures/internal/domain/model"
	"github.com/okian/gestures/internal/domain/tree"
)

const radToDeg = 180 / math.Pi

// pinchReference is the two-pointer configuration every later pinch and
// rotate is measured against.
type pinchReference struct {
	angle    float64
	diameter float64
	target   model.Element
}

type chord struct {
	a, b     model.PointerSample
	center   model.Point
	diameter float64
}

// Pinch emits pinch and rotate while two or more pointers are pressed.
//
// The reference is taken when a down brings the pressed count to two and is
// not refreshed afterwards, so substituting a pointer mid-gesture keeps
// measuring against the original pair.
type Pinch struct {
	base
	order     []model.PointerID
	pressed   map[model.PointerID]model.PointerSample
	reference *pinchReference
}

// NewPinch returns a pinch/rotate recognizer.
func NewPinch(emitter Emitter, opts ...Option) *Pinch {
	return &Pinch{
		base:    newBase(FamilyPinch, emitter, opts),
		pressed: make(map[model.PointerID]model.PointerSample),
	}
}

// Events implements Recognizer.
func (p *Pinch) Events() []model.Kind {
	return []model.Kind{model.KindDown, model.KindUp, model.KindMove, model.KindCancel}
}

// Exposes implements Recognizer.
func (p *Pinch) Exposes() []string { return []string{model.GesturePinch, model.GestureRotate} }

// DefaultActions implements Recognizer.
func (p *Pinch) DefaultActions() map[string]string { return map[string]string{} }

// Down adds the pointer and takes the reference at exactly two pointers.
func (p *Pinch) Down(_ context.Context, s model.PointerSample) {
	p.put(s)
	if len(p.order) == 2 {
		c := p.chord()
		p.reference = &pinchReference{
			angle:    chordAngle(c),
			diameter: c.diameter,
			target:   tree.LowestCommonAncestor(c.a.Target, c.b.Target),
		}
	}
	p.reportSessions(len(p.order))
}

// Move updates the pointer and emits against the reference.
func (p *Pinch) Move(ctx context.Context, s model.PointerSample) {
	if _, ok := p.pressed[s.ID]; !ok {
		return
	}
	p.put(s)
	if len(p.order) < 2 || p.reference == nil {
		return
	}

	c := p.chord()
	angle := chordAngle(c)
	ref := p.reference
	if c.diameter != ref.diameter && ref.diameter != 0 {
		p.emit(ctx, model.GesturePinch, ref.target, model.PinchDetail{
			Scale:   c.diameter / ref.diameter,
			CenterX: c.center.X,
			CenterY: c.center.Y,
		})
	}
	if angle != ref.angle {
		p.emit(ctx, model.GestureRotate, ref.target, model.RotateDetail{
			Angle:   int(roundHalfUp(math.Mod(angle-ref.angle, 360))),
			CenterX: c.center.X,
			CenterY: c.center.Y,
		})
	}
}

// Up removes the pointer; the session ends below two pointers.
func (p *Pinch) Up(_ context.Context, s model.PointerSample) { p.remove(s.ID) }

// Cancel removes the pointer.
func (p *Pinch) Cancel(_ context.Context, s model.PointerSample) { p.remove(s.ID) }

func (p *Pinch) put(s model.PointerSample) {
	if _, ok := p.pressed[s.ID]; !ok {
		p.order = append(p.order, s.ID)
	}
	p.pressed[s.ID] = s
}

func (p *Pinch) remove(id model.PointerID) {
	if _, ok := p.pressed[id]; !ok {
		return
	}
	delete(p.pressed, id)
	for i, x := range p.order {
		if x == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	if len(p.order) < 2 {
		p.reference = nil
	}
	p.reportSessions(len(p.order))
}

// chord picks the pressed pair furthest apart in Manhattan distance. The
// first pair in press order wins ties. Requires at least two pointers.
func (p *Pinch) chord() chord {
	c := chord{a: p.pressed[p.order[0]], b: p.pressed[p.order[1]]}
	dist := 0.0
	for i := 0; i < len(p.order); i++ {
		a := p.pressed[p.order[i]]
		for j := i + 1; j < len(p.order); j++ {
			b := p.pressed[p.order[j]]
			d := math.Abs(a.Client.X-b.Client.X) + math.Abs(a.Client.Y-b.Client.Y)
			if d > dist {
				dist = d
				c.a, c.b = a, b
			}
		}
	}
	c.center = model.Point{
		X: math.Abs(c.a.Client.X+c.b.Client.X) / 2,
		Y: math.Abs(c.a.Client.Y+c.b.Client.Y) / 2,
	}
	c.diameter = dist
	return c
}

// chordAngle returns the chord direction in degrees in [0, 360).
func chordAngle(c chord) float64 {
	x := c.a.Client.X - c.b.Client.X
	y := c.a.Client.Y - c.b.Client.Y
	return math.Mod(360+math.Atan2(y, x)*radToDeg, 360)
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(v float64) float64 { return math.Floor(v + 0.5) }

// Reset forgets every pressed pointer and the reference.
func (p *Pinch) Reset(context.Context) {
	clear(p.pressed)
	p.order = p.order[:0]
	p.reference = nil
	p.reportSessions(0)
}

// Retains implements Recognizer.
func (p *Pinch) Retains(id model.PointerID) bool {
	_, ok := p.pressed[id]
	return ok
}

// Sessions implements Recognizer.
func (p *Pinch) Sessions() int { return len(p.order) }
