package service_test

import (
	"testing"

	service "github.com/okian/gestures/internal/app"
	"github.com/okian/gestures/internal/domain/model"
	"github.com/okian/gestures/internal/domain/tree"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFeed(t *testing.T) {
	Convey("Given a feed holding three gestures", t, func() {
		feed := service.NewFeed(3)
		el := tree.NewNode("app/canvas")
		publish := func(typ string) {
			feed.Publish(model.NewGestureEvent(typ, el, model.PinchDetail{Scale: 1}))
		}

		Convey("When fewer gestures than capacity are published", func() {
			publish("pinch")
			publish("rotate")

			Convey("Then Recent returns them oldest first", func() {
				gs := feed.Recent(0)
				So(gestureTypes(gs), ShouldResemble, []string{"pinch", "rotate"})
				So(gs[0].Seq, ShouldEqual, 1)
				So(gs[0].Target, ShouldEqual, "app/canvas")
				So(gs[0].ID, ShouldNotEqual, gs[1].ID)
			})
		})

		Convey("When the ring wraps", func() {
			for _, typ := range []string{"a", "b", "c", "d", "e"} {
				publish(typ)
			}

			Convey("Then only the newest gestures are kept", func() {
				So(feed.Len(), ShouldEqual, 3)
				So(gestureTypes(feed.Recent(0)), ShouldResemble, []string{"c", "d", "e"})
				So(gestureTypes(feed.Recent(2)), ShouldResemble, []string{"d", "e"})
				So(gestureTypes(feed.Recent(10)), ShouldResemble, []string{"c", "d", "e"})
			})
		})

		Convey("When a subscriber is attached", func() {
			ch, cancel := feed.Subscribe(1)
			So(feed.Subscribers(), ShouldEqual, 1)
			publish("first")
			publish("dropped")

			Convey("Then it receives without blocking the publisher", func() {
				So((<-ch).Type, ShouldEqual, "first")
				cancel()
				cancel()
				_, open := <-ch
				So(open, ShouldBeFalse)
				So(feed.Subscribers(), ShouldEqual, 0)
			})
		})
	})
}

func TestFeedCloseSubscribers(t *testing.T) {
	Convey("Given a feed with two subscribers", t, func() {
		feed := service.NewFeed(4)
		a, cancelA := feed.Subscribe(1)
		b, _ := feed.Subscribe(1)

		Convey("When every subscription is closed", func() {
			feed.CloseSubscribers()

			Convey("Then both channels are closed and a late cancel is harmless", func() {
				_, okA := <-a
				_, okB := <-b
				So(okA, ShouldBeFalse)
				So(okB, ShouldBeFalse)
				So(func() { cancelA() }, ShouldNotPanic)
				So(feed.Subscribers(), ShouldEqual, 0)
			})
		})
	})
}
