package dispatch_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/gestures/internal/domain/clock"
	"github.com/okian/gestures/internal/domain/dispatch"
	"github.com/okian/gestures/internal/domain/gesture"
	"github.com/okian/gestures/internal/domain/model"
	"github.com/okian/gestures/internal/domain/registry"
	"github.com/okian/gestures/internal/domain/tree"
	. "github.com/smartystreets/goconvey/convey"
)

func sample(kind model.Kind, id model.PointerID, x, y float64, target model.Element) model.PointerSample {
	p := model.Point{X: x, Y: y}
	return model.PointerSample{
		Kind:    kind,
		ID:      id,
		Type:    model.PointerTouch,
		Primary: true,
		Buttons: 1,
		Client:  p,
		Page:    p,
		Screen:  p,
		Target:  target,
	}
}

func TestRegister(t *testing.T) {
	Convey("Given a dispatcher", t, func() {
		d := dispatch.New()
		emit := gesture.EmitterFunc(func(context.Context, model.GestureEvent) {})

		Convey("When registering the same name twice", func() {
			So(d.Register("tap", gesture.NewTap(emit)), ShouldBeNil)
			err := d.Register("tap", gesture.NewTap(emit))

			Convey("Then the second registration fails", func() {
				So(errors.Is(err, dispatch.ErrDuplicateRecognizer), ShouldBeTrue)
				So(d.Recognizers(), ShouldHaveLength, 1)
			})
		})

		Convey("When registering invalid recognizers", func() {
			So(errors.Is(d.Register("x", nil), dispatch.ErrNilRecognizer), ShouldBeTrue)
			So(errors.Is(d.Register("", gesture.NewFlick(emit)), dispatch.ErrEmptyName), ShouldBeTrue)
		})

		Convey("When several families are registered", func() {
			So(d.Register("track", gesture.NewTrack(emit, nil)), ShouldBeNil)
			So(d.Register("flick", gesture.NewFlick(emit)), ShouldBeNil)

			Convey("Then their declarations are listed in order", func() {
				infos := d.Recognizers()
				So(infos[0].Name, ShouldEqual, "track")
				So(infos[0].Exposes, ShouldContain, model.GestureTrackX)
				So(infos[1].Name, ShouldEqual, "flick")
			})

			Convey("Then the touch-action hints are merged", func() {
				So(d.TouchActions(), ShouldResemble, map[string]string{
					model.GestureTrack:  "none",
					model.GestureTrackX: "pan-y",
					model.GestureTrackY: "pan-x",
					model.GestureFlick:  "none",
				})
			})
		})
	})
}

func TestRoute(t *testing.T) {
	Convey("Given a dispatcher with tap and track registered", t, func() {
		ctx := context.Background()
		var got []model.GestureEvent
		emit := gesture.EmitterFunc(func(_ context.Context, ev model.GestureEvent) { got = append(got, ev) })

		d := dispatch.New()
		So(d.Register("tap", gesture.NewTap(emit)), ShouldBeNil)
		So(d.Register("track", gesture.NewTrack(emit, nil)), ShouldBeNil)

		doc := tree.NewDocument()
		origin := doc.Resolve("app/list/item1")
		hover := doc.Resolve("app/list/item2")

		Convey("When a pointer goes down", func() {
			d.Route(ctx, sample(model.KindDown, 1, 0, 0, origin))

			Convey("Then its origin is registered", func() {
				So(d.ActivePointers(), ShouldEqual, 1)
			})

			Convey("And moves over another element are retargeted to the origin", func() {
				d.Route(ctx, sample(model.KindMove, 1, 10, 0, hover))
				So(got, ShouldNotBeEmpty)
				So(got[0].Type, ShouldEqual, model.GestureTrackStart)
				So(got[0].Target, ShouldEqual, origin)
				So(got[0].Detail.(model.TrackDetail).Related, ShouldEqual, hover)
			})

			Convey("And releasing over a sibling taps their common ancestor", func() {
				d.Route(ctx, sample(model.KindUp, 1, 0, 0, hover))
				So(got, ShouldHaveLength, 1)
				So(got[0].Type, ShouldEqual, model.GestureTap)
				So(got[0].Target, ShouldEqual, doc.Resolve("app/list"))
				So(d.ActivePointers(), ShouldEqual, 0)
			})

			Convey("And cancel forgets the origin", func() {
				d.Route(ctx, sample(model.KindCancel, 1, 0, 0, hover))
				So(d.ActivePointers(), ShouldEqual, 0)
				So(got, ShouldBeEmpty)
			})
		})

		Convey("When a move or up arrives for an unknown pointer", func() {
			d.Route(ctx, sample(model.KindMove, 5, 50, 50, hover))
			d.Route(ctx, sample(model.KindUp, 5, 50, 50, hover))

			Convey("Then it is dropped silently", func() {
				So(got, ShouldBeEmpty)
				So(d.ActivePointers(), ShouldEqual, 0)
			})
		})

		Convey("When space is released on an element", func() {
			d.KeyUp(ctx, model.KeyEvent{Code: model.KeySpace, Target: origin})

			Convey("Then the key recognizer taps it", func() {
				So(got, ShouldHaveLength, 1)
				So(got[0].Detail.(model.TapDetail).PointerType, ShouldEqual, model.PointerUnavailable)
			})
		})
	})
}

func TestRouteOrder(t *testing.T) {
	Convey("Given two recognizers subscribed to the same kinds", t, func() {
		ctx := context.Background()
		var order []string
		named := func(name string) gesture.Emitter {
			return gesture.EmitterFunc(func(context.Context, model.GestureEvent) { order = append(order, name) })
		}
		d := dispatch.New()
		So(d.Register("first", gesture.NewTap(named("first"))), ShouldBeNil)
		So(d.Register("second", gesture.NewTap(named("second"))), ShouldBeNil)
		el := tree.NewNode("button")

		Convey("When a tap is routed", func() {
			d.Route(ctx, sample(model.KindDown, 1, 0, 0, el))
			d.Route(ctx, sample(model.KindUp, 1, 0, 0, el))

			Convey("Then handlers run in registration order", func() {
				So(order, ShouldResemble, []string{"first", "second"})
			})
		})
	})
}

func TestRouteBeyondCapacity(t *testing.T) {
	Convey("Given a dispatcher whose registry holds two pointers", t, func() {
		ctx := context.Background()
		clk := clock.NewManual(time.Unix(0, 0))
		var got []model.GestureEvent
		emit := gesture.EmitterFunc(func(_ context.Context, ev model.GestureEvent) { got = append(got, ev) })

		d := dispatch.New(dispatch.WithRegistry(registry.NewInMemoryRegistry(registry.WithMaxSize(2))))
		So(d.Register("tap", gesture.NewTap(emit)), ShouldBeNil)
		So(d.Register("hold", gesture.NewHold(emit, clk)), ShouldBeNil)
		el := tree.NewNode("surface")

		Convey("When three pointers go down and all three lift", func() {
			for id := model.PointerID(1); id <= 3; id++ {
				d.Route(ctx, sample(model.KindDown, id, 0, 0, el))
			}
			So(d.ActivePointers(), ShouldEqual, 2)
			for id := model.PointerID(1); id <= 3; id++ {
				d.Route(ctx, sample(model.KindUp, id, 0, 0, el))
			}
			clk.Advance(600 * time.Millisecond)

			Convey("Then every admitted pointer completes and no timer is left", func() {
				So(clk.Pending(), ShouldEqual, 0)
				So(d.ActivePointers(), ShouldEqual, 0)
				So(got, ShouldHaveLength, 2)
				So(got[0].Type, ShouldEqual, model.GestureTap)
				So(got[0].Detail.(model.TapDetail).PointerID, ShouldEqual, model.PointerID(1))
				So(got[1].Detail.(model.TapDetail).PointerID, ShouldEqual, model.PointerID(2))
			})
		})
	})
}

func TestReset(t *testing.T) {
	Convey("Given a dispatcher with held pointers", t, func() {
		ctx := context.Background()
		clk := clock.NewManual(time.Unix(0, 0))
		var got []model.GestureEvent
		emit := gesture.EmitterFunc(func(_ context.Context, ev model.GestureEvent) { got = append(got, ev) })

		d := dispatch.New()
		So(d.Register("hold", gesture.NewHold(emit, clk)), ShouldBeNil)
		el := tree.NewNode("surface")
		d.Route(ctx, sample(model.KindDown, 1, 0, 0, el))
		d.Route(ctx, sample(model.KindDown, 2, 5, 5, el))

		Convey("When the dispatcher is reset", func() {
			d.Reset(ctx)
			clk.Advance(time.Second)

			Convey("Then timers stop and pointers are forgotten silently", func() {
				So(clk.Pending(), ShouldEqual, 0)
				So(d.ActivePointers(), ShouldEqual, 0)
				So(got, ShouldBeEmpty)
			})
		})
	})
}
