package replay_test

import (
	"errors"
	"testing"

	"github.com/okian/gestures/internal/replay"
	. "github.com/smartystreets/goconvey/convey"
)

func TestVerify(t *testing.T) {
	Convey("Given delivered gestures from two runs", t, func() {
		gs := []replay.Gesture{
			{Type: "trackstart", Target: "replay/a/slider"},
			{Type: "tap", Target: "replay/b/button"},
			{Type: "track", Target: "replay/a/slider"},
			{Type: "trackx", Target: "replay/a/slider"},
			{Type: "trackend", Target: "replay/a"},
		}

		Convey("When scoping to one run", func() {
			scoped := replay.Scoped(gs, "replay/a")

			Convey("Then only its gestures remain", func() {
				So(scoped, ShouldHaveLength, 4)
				So(replay.Scoped(gs, "replay/a/s"), ShouldBeEmpty)
			})

			Convey("And an in-order subsequence verifies", func() {
				So(replay.Verify([]string{"trackstart", "trackend"}, scoped), ShouldBeNil)
			})

			Convey("And a missing or reordered gesture fails", func() {
				err := replay.Verify([]string{"trackend", "trackstart"}, scoped)
				So(errors.Is(err, replay.ErrExpectation), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, `"trackstart"`)
				So(errors.Is(replay.Verify([]string{"tap"}, scoped), replay.ErrExpectation), ShouldBeTrue)
			})
		})
	})
}
