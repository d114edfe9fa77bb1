package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/okian/gestures/internal/adapters/http/api"
	"github.com/okian/gestures/internal/domain/dispatch"
	"github.com/okian/gestures/internal/domain/model"
	"github.com/okian/gestures/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// mockDependencies implements api.Dependencies for testing.
type mockDependencies struct {
	mu       sync.Mutex
	pointers []types.PointerRequest
	keys     []types.KeyRequest
	removed  []string
	submit   error

	recent    []types.Gesture
	lastLimit int

	stream    chan types.Gesture
	cancelled bool
}

func (m *mockDependencies) SubmitPointer(_ context.Context, req types.PointerRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.submit != nil {
		return m.submit
	}
	if err := req.Validate(); err != nil {
		return err
	}
	m.pointers = append(m.pointers, req)
	return nil
}

func (m *mockDependencies) SubmitKey(_ context.Context, req types.KeyRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.submit != nil {
		return m.submit
	}
	if err := req.Validate(); err != nil {
		return err
	}
	m.keys = append(m.keys, req)
	return nil
}

func (m *mockDependencies) RemoveElement(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.submit != nil {
		return m.submit
	}
	if strings.Trim(path, "/ ") == "" {
		return fmt.Errorf("%w: empty path", types.ErrInvalidRequest)
	}
	m.removed = append(m.removed, path)
	return nil
}

func (m *mockDependencies) Recent(_ context.Context, limit int) []types.Gesture {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLimit = limit
	if limit < len(m.recent) {
		return m.recent[len(m.recent)-limit:]
	}
	return m.recent
}

func (m *mockDependencies) Recognizers() []dispatch.Info {
	return []dispatch.Info{{
		Name:           "track",
		Events:         []model.Kind{model.KindDown, model.KindMove, model.KindUp, model.KindCancel},
		Exposes:        []string{"trackstart", "track", "trackx", "tracky", "trackend"},
		DefaultActions: map[string]string{"track": "none", "trackx": "pan-y", "tracky": "pan-x"},
	}}
}

func (m *mockDependencies) TouchActions() map[string]string {
	return map[string]string{"track": "none", "trackx": "pan-y", "tracky": "pan-x"}
}

func (m *mockDependencies) Subscribe(int) (<-chan types.Gesture, func()) {
	return m.stream, func() {
		m.mu.Lock()
		m.cancelled = true
		m.mu.Unlock()
	}
}

func (m *mockDependencies) wasCancelled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancelled
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newMux(deps *mockDependencies) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}}, 100)
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func do(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

const validPointer = `{"kind":"down","pointerId":1,"pointerType":"mouse","isPrimary":true,` +
	`"buttons":1,"timeStamp":0,"clientX":5,"clientY":6,"pageX":5,"pageY":6,"target":"app/button"}`

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newMux(&mockDependencies{})

		Convey("Then health should report ok", func() {
			w := do(mux, http.MethodGet, "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"ok"`)
		})

		Convey("And metrics should be served in Prometheus format", func() {
			w := do(mux, http.MethodGet, "/metrics", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "# TYPE")
		})

		Convey("And stats should be JSON", func() {
			w := do(mux, http.MethodGet, "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldStartWith, "application/json")
			So(w.Body.String(), ShouldContainSubstring, `"started":true`)
		})

		Convey("And unknown paths should 404", func() {
			So(do(mux, http.MethodGet, "/leaderboard", "").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("And wrong methods should be rejected with 405", func() {
			w := do(mux, http.MethodGet, "/pointer", "")
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(w.Header().Get("Allow"), ShouldContainSubstring, http.MethodPost)
			So(do(mux, http.MethodPost, "/gestures", "").Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(do(mux, http.MethodGet, "/elements/app/list", "").Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestInputHandler(t *testing.T) {
	Convey("Given an input handler", t, func() {
		deps := &mockDependencies{}
		mux := newMux(deps)

		Convey("When posting a valid pointer sample", func() {
			w := do(mux, http.MethodPost, "/pointer", validPointer)

			Convey("Then it should be accepted and forwarded", func() {
				So(w.Code, ShouldEqual, http.StatusAccepted)
				So(deps.pointers, ShouldHaveLength, 1)
				So(deps.pointers[0].Target, ShouldEqual, "app/button")
				So(deps.pointers[0].ClientX, ShouldEqual, 5.0)
			})
		})

		Convey("When posting malformed JSON", func() {
			w := do(mux, http.MethodPost, "/pointer", `{"kind":`)

			Convey("Then it should be a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				var resp map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp["code"], ShouldEqual, "bad_request")
				So(resp["message"], ShouldStartWith, "api.post_pointer: bad request")
			})
		})

		Convey("When posting a sample that fails validation", func() {
			w := do(mux, http.MethodPost, "/pointer", strings.Replace(validPointer, `"down"`, `"hover"`, 1))
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the queue is full", func() {
			deps.submit = fmt.Errorf("%w: queue full", types.ErrBackpressure)
			w := do(mux, http.MethodPost, "/pointer", validPointer)

			Convey("Then it should signal backpressure", func() {
				So(w.Code, ShouldEqual, http.StatusTooManyRequests)
				So(w.Body.String(), ShouldContainSubstring, "backpressure")
			})
		})

		Convey("When the service is not running", func() {
			deps.submit = types.ErrUnavailable
			So(do(mux, http.MethodPost, "/key", `{"code":32,"target":"app"}`).Code, ShouldEqual, http.StatusServiceUnavailable)
		})

		Convey("When posting a key release", func() {
			w := do(mux, http.MethodPost, "/key", `{"code":32,"target":"app/button"}`)

			Convey("Then it should be accepted", func() {
				So(w.Code, ShouldEqual, http.StatusAccepted)
				So(deps.keys, ShouldResemble, []types.KeyRequest{{Code: 32, Target: "app/button"}})
			})
		})

		Convey("When deleting an element subtree", func() {
			w := do(mux, http.MethodDelete, "/elements/app/list", "")

			Convey("Then the full path should be forwarded", func() {
				So(w.Code, ShouldEqual, http.StatusAccepted)
				So(deps.removed, ShouldResemble, []string{"app/list"})
			})
		})

		Convey("When deleting without a path", func() {
			w := do(mux, http.MethodDelete, "/elements/", "")

			Convey("Then it should be a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "api.delete_element")
				So(deps.removed, ShouldBeEmpty)
			})
		})
	})
}

func TestGesturesHandler(t *testing.T) {
	Convey("Given a feed of three gestures", t, func() {
		deps := &mockDependencies{recent: []types.Gesture{
			{ID: "a", Seq: 1, Type: "trackstart", Target: "app"},
			{ID: "b", Seq: 2, Type: "track", Target: "app", Detail: model.TrackDetail{DX: 3, XDirection: 1}},
			{ID: "c", Seq: 3, Type: "tap", Target: "app", Detail: model.TapDetail{X: 1, Y: 2}},
		}}
		mux := newMux(deps)

		Convey("When requesting the last two", func() {
			w := do(mux, http.MethodGet, "/gestures?limit=2", "")

			Convey("Then they are returned with their payloads", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var got []struct {
					ID     string         `json:"id"`
					Type   string         `json:"type"`
					Detail map[string]any `json:"detail"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got, ShouldHaveLength, 2)
				So(got[0].Type, ShouldEqual, "track")
				So(got[0].Detail["dx"], ShouldEqual, 3.0)
				So(got[0].Detail["xDirection"], ShouldEqual, 1.0)
				So(got[1].Detail["pointerType"], ShouldEqual, "")
			})
		})

		Convey("When no limit is given", func() {
			w := do(mux, http.MethodGet, "/gestures", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(deps.lastLimit, ShouldEqual, 100)
		})

		Convey("When the limit is invalid or too large", func() {
			So(do(mux, http.MethodGet, "/gestures?limit=0", "").Code, ShouldEqual, http.StatusBadRequest)
			So(do(mux, http.MethodGet, "/gestures?limit=x", "").Code, ShouldEqual, http.StatusBadRequest)
			w := do(mux, http.MethodGet, "/gestures?limit=101", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldContainSubstring, "limit_exceeded")
		})
	})
}

func TestRecognizersHandler(t *testing.T) {
	Convey("Given registered recognizers", t, func() {
		mux := newMux(&mockDependencies{})

		Convey("When listing them", func() {
			w := do(mux, http.MethodGet, "/recognizers", "")

			Convey("Then events, exposes and touch-action hints are described", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					Recognizers []struct {
						Name           string            `json:"name"`
						Events         []string          `json:"events"`
						DefaultActions map[string]string `json:"defaultActions"`
					} `json:"recognizers"`
					TouchActions map[string]string `json:"touchActions"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Recognizers, ShouldHaveLength, 1)
				So(resp.Recognizers[0].Name, ShouldEqual, "track")
				So(resp.Recognizers[0].Events, ShouldResemble, []string{"down", "move", "up", "cancel"})
				So(resp.TouchActions["tracky"], ShouldEqual, "pan-x")
			})
		})
	})
}

func TestStreamHandler(t *testing.T) {
	Convey("Given a websocket client on the gesture stream", t, func() {
		deps := &mockDependencies{stream: make(chan types.Gesture, 4)}
		srv := httptest.NewServer(newMux(deps))
		defer srv.Close()

		url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
		conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
		So(err, ShouldBeNil)
		So(resp.StatusCode, ShouldEqual, http.StatusSwitchingProtocols)
		defer conn.Close()

		Convey("When a gesture is delivered", func() {
			deps.stream <- types.Gesture{ID: "g1", Seq: 1, Type: "flick", Target: "app/list",
				Detail: model.FlickDetail{Velocity: 2, MajorAxis: "y"}}

			Convey("Then it arrives as a JSON text frame", func() {
				_ = conn.SetReadDeadline(time.Now().Add(time.Second))
				kind, payload, err := conn.ReadMessage()
				So(err, ShouldBeNil)
				So(kind, ShouldEqual, websocket.TextMessage)
				var g struct {
					ID     string         `json:"id"`
					Type   string         `json:"type"`
					Detail map[string]any `json:"detail"`
				}
				So(json.Unmarshal(payload, &g), ShouldBeNil)
				So(g.ID, ShouldEqual, "g1")
				So(g.Type, ShouldEqual, "flick")
				So(g.Detail["majorAxis"], ShouldEqual, "y")
			})
		})

		Convey("When the feed is closed", func() {
			close(deps.stream)

			Convey("Then the server closes the socket and unsubscribes", func() {
				_ = conn.SetReadDeadline(time.Now().Add(time.Second))
				_, _, err := conn.ReadMessage()
				So(websocket.IsCloseError(err, websocket.CloseGoingAway), ShouldBeTrue)
				deadline := time.Now().Add(time.Second)
				for !deps.wasCancelled() && time.Now().Before(deadline) {
					time.Sleep(5 * time.Millisecond)
				}
				So(deps.wasCancelled(), ShouldBeTrue)
			})
		})
	})
}

func TestErrors(t *testing.T) {
	Convey("Given API errors", t, func() {
		cause := errors.New("unexpected EOF")

		Convey("Then kind and cause are both reachable", func() {
			err := api.WrapKind("api.post_pointer", api.ErrBadRequest, cause)
			So(err.Error(), ShouldEqual, "api.post_pointer: bad request: unexpected EOF")
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
		})

		Convey("And NewKind and Wrap format without the missing part", func() {
			So(api.NewKind("op", api.ErrBackpressure).Error(), ShouldEqual, "op: backpressure")
			So(api.Wrap("op", cause).Error(), ShouldEqual, "op: unexpected EOF")
			So(api.Wrap("op", nil), ShouldBeNil)
		})
	})
}
