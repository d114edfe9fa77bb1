// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/okian/gestures/internal/domain/dispatch"
	"github.com/okian/gestures/internal/domain/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// SubmitPointer queues one pointer sample. It fails with
	// types.ErrInvalidRequest, types.ErrBackpressure or types.ErrUnavailable.
	SubmitPointer(ctx context.Context, req types.PointerRequest) error
	SubmitKey(ctx context.Context, req types.KeyRequest) error
	// RemoveElement detaches an element subtree behind pending inputs.
	RemoveElement(ctx context.Context, path string) error

	// Read operations expose delivered gestures and recognizer metadata.
	Recent(ctx context.Context, limit int) []types.Gesture
	Recognizers() []dispatch.Info
	TouchActions() map[string]string

	// Subscribe streams gestures until cancel is called.
	Subscribe(buffer int) (<-chan types.Gesture, func())
}

// Server wires HTTP routes for the gesture API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	inputHandler       *InputHandler
	gesturesHandler    *GesturesHandler
	recognizersHandler *RecognizersHandler
	streamHandler      *StreamHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		inputHandler:       NewInputHandler(deps),
		gesturesHandler:    NewGesturesHandler(deps, maxLimit),
		recognizersHandler: NewRecognizersHandler(deps),
		streamHandler:      NewStreamHandler(deps),
	}
}

// Register attaches all HTTP routes to mux. Routes carry their method, so
// the mux answers other methods with 405.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("POST /pointer", MetricsMiddleware(s.inputHandler.HandlePostPointer, "pointer"))
	mux.HandleFunc("POST /key", MetricsMiddleware(s.inputHandler.HandlePostKey, "key"))
	mux.HandleFunc("DELETE /elements/{path...}", MetricsMiddleware(s.inputHandler.HandleDeleteElement, "elements"))
	mux.HandleFunc("GET /gestures", MetricsMiddleware(s.gesturesHandler.HandleGetGestures, "gestures"))
	mux.HandleFunc("GET /recognizers", MetricsMiddleware(s.recognizersHandler.HandleGetRecognizers, "recognizers"))
	// The stream handler hijacks the connection, so it is not wrapped.
	mux.HandleFunc("GET /ws", s.streamHandler.HandleStream)
}

type ackResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
