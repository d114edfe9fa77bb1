package replay_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/gestures/internal/adapters/http/api"
	service "github.com/okian/gestures/internal/app"
	"github.com/okian/gestures/internal/replay"
	"github.com/okian/gestures/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func startServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := service.New()
	if err := svc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(svc.Stop)

	mux := http.NewServeMux()
	api.NewServer(svc, svc, 256).Register(context.Background(), mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRun(t *testing.T) {
	Convey("Given a running gesture service", t, func() {
		srv := startServer(t)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		Convey("When every built-in scenario is replayed", func() {
			stats, err := replay.Run(ctx, &replay.Config{BaseURL: srv.URL})

			Convey("Then all of them pass", func() {
				So(err, ShouldBeNil)
				So(stats.Scenarios, ShouldEqual, len(replay.BuiltinNames()))
				So(stats.Passed, ShouldEqual, stats.Scenarios)
				So(stats.Rejected, ShouldEqual, 0)
			})
		})

		Convey("When a scenario expects a gesture that never happens", func() {
			path := writeFile(t, "wrong.toml", `
name = "wrong"
expect = ["pinch"]

[[step]]
kind = "down"
pointer = 1
type = "mouse"
target = "button"

[[step]]
at = 10
kind = "up"
pointer = 1
type = "mouse"
target = "button"
`)
			stats, err := replay.Run(ctx, &replay.Config{
				BaseURL:   srv.URL,
				Scenarios: []string{path},
				Settle:    200 * time.Millisecond,
			})

			Convey("Then the run fails with an expectation error", func() {
				So(errors.Is(err, replay.ErrExpectation), ShouldBeTrue)
				So(stats.Failed, ShouldEqual, 1)
			})
		})

		Convey("When the service is unreachable", func() {
			_, err := replay.Run(ctx, &replay.Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})
			So(errors.Is(err, replay.ErrUnhealthy), ShouldBeTrue)
		})
	})
}
