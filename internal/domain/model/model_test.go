package model_test

import (
	"testing"

	"github.com/okian/gestures/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestParseKind(t *testing.T) {
	convey.Convey("Given wire kind names", t, func() {
		convey.Convey("When parsing pointer lifecycle names", func() {
			for _, name := range []string{"down", "move", "up", "cancel"} {
				k, ok := model.ParseKind(name)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(string(k), convey.ShouldEqual, name)
			}
		})

		convey.Convey("When parsing a key release or garbage", func() {
			_, okKey := model.ParseKind("keyup")
			_, okJunk := model.ParseKind("wiggle")

			convey.Convey("Then they should be rejected", func() {
				convey.So(okKey, convey.ShouldBeFalse)
				convey.So(okJunk, convey.ShouldBeFalse)
			})
		})
	})
}

func TestPoint(t *testing.T) {
	convey.Convey("Given two points", t, func() {
		a := model.Point{X: 5, Y: 7}
		b := model.Point{X: 2, Y: 3}

		convey.Convey("Then Sub and Len2 should give the squared displacement", func() {
			d := a.Sub(b)
			convey.So(d, convey.ShouldResemble, model.Point{X: 3, Y: 4})
			convey.So(d.Len2(), convey.ShouldEqual, 25)
		})
	})
}

func TestNewGestureEvent(t *testing.T) {
	convey.Convey("Given a new gesture event", t, func() {
		e := model.NewGestureEvent(model.GestureTap, nil, model.TapDetail{X: 1, Y: 2})

		convey.Convey("Then it should bubble and be cancelable", func() {
			convey.So(e.Type, convey.ShouldEqual, "tap")
			convey.So(e.Bubbles, convey.ShouldBeTrue)
			convey.So(e.Cancelable, convey.ShouldBeTrue)
			convey.So(e.Detail, convey.ShouldResemble, model.TapDetail{X: 1, Y: 2})
		})
	})
}
