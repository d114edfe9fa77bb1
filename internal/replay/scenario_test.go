package replay_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/gestures/internal/domain/model"
	"github.com/okian/gestures/internal/domain/types"
	"github.com/okian/gestures/internal/replay"
	. "github.com/smartystreets/goconvey/convey"
)

const swipeTOML = `
name = "swipe"
description = "recorded swipe"
expect = ["trackstart", "flick"]

[[step]]
at = 30
kind = "up"
pointer = 9
type = "touch"
x = 90
target = "feed"

[[step]]
at = 0
kind = "down"
pointer = 9
type = "touch"
target = "feed/card"
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	Convey("Given a TOML scenario file", t, func() {
		path := writeFile(t, "swipe.toml", swipeTOML)

		Convey("When it is loaded", func() {
			sc, err := replay.LoadScenario(path)

			Convey("Then steps are decoded and ordered by time", func() {
				So(err, ShouldBeNil)
				So(sc.Name, ShouldEqual, "swipe")
				So(sc.Expect, ShouldResemble, []string{"trackstart", "flick"})
				So(sc.Steps, ShouldHaveLength, 2)
				So(sc.Steps[0].Kind, ShouldEqual, "down")
				So(sc.Steps[1].X, ShouldEqual, 90.0)
			})
		})

		Convey("When a key is misspelled", func() {
			bad := writeFile(t, "bad.toml", swipeTOML+"\n[[step]]\nat = 40\nkind = \"move\"\npointr = 9\ntype = \"touch\"\ntarget = \"feed\"\n")
			_, err := replay.LoadScenario(bad)
			So(errors.Is(err, replay.ErrInvalidScenario), ShouldBeTrue)
		})

		Convey("When a step has an unknown kind", func() {
			bad := writeFile(t, "bad.toml", "name = \"x\"\n[[step]]\nkind = \"hover\"\ntype = \"mouse\"\ntarget = \"a\"\n")
			_, err := replay.LoadScenario(bad)
			So(errors.Is(err, replay.ErrInvalidScenario), ShouldBeTrue)
			So(errors.Is(err, types.ErrInvalidRequest), ShouldBeTrue)
		})

		Convey("When the name is neither a file nor a built-in", func() {
			_, err := replay.Resolve("no-such-scenario")
			So(errors.Is(err, replay.ErrUnknownScenario), ShouldBeTrue)
		})
	})
}

func TestBuiltins(t *testing.T) {
	Convey("Given the built-in scenarios", t, func() {
		So(replay.BuiltinNames(), ShouldResemble, []string{"drag", "flick", "hold", "pinch", "tap"})

		Convey("Then each one is valid and expects something", func() {
			for _, n := range replay.BuiltinNames() {
				sc, ok := replay.Builtin(n)
				So(ok, ShouldBeTrue)
				So(sc.Validate(), ShouldBeNil)
				So(sc.Expect, ShouldNotBeEmpty)
			}
		})

		Convey("And callers get a copy", func() {
			sc, _ := replay.Builtin("tap")
			sc.Steps[0].Target = "changed"
			again, _ := replay.Builtin("tap")
			So(again.Steps[0].Target, ShouldEqual, "toolbar/button")
		})
	})
}

func TestStepRequests(t *testing.T) {
	Convey("Given a mouse press step", t, func() {
		st := replay.Step{At: 12, Kind: "down", PointerID: 1, Type: "mouse", X: 3, Y: 4, Target: "a/b", Related: "a"}

		Convey("When it is converted under a prefix", func() {
			req := st.Pointer("replay/run")

			Convey("Then paths are rooted and the primary button is implied", func() {
				So(req.Target, ShouldEqual, "replay/run/a/b")
				So(req.Related, ShouldEqual, "replay/run/a")
				So(req.Buttons, ShouldEqual, model.ButtonPrimary)
				So(req.IsPrimary, ShouldBeTrue)
				So(req.TimeStamp, ShouldEqual, 12.0)
				So(req.PageX, ShouldEqual, 3.0)
			})
		})

		Convey("When it is a key step without a code", func() {
			key := replay.Step{Kind: replay.KindKey, Target: "btn"}.Key("p")
			So(key, ShouldResemble, types.KeyRequest{Code: model.KeySpace, Target: "p/btn"})
		})
	})
}
