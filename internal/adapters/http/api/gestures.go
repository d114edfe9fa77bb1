// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/gestures/internal/domain/types"
)

// GesturesDependencies defines the interface for reading delivered gestures.
type GesturesDependencies interface {
	Recent(ctx context.Context, limit int) []types.Gesture
}

// GesturesHandler handles gesture feed requests.
type GesturesHandler struct {
	deps     GesturesDependencies
	maxLimit int
}

// NewGesturesHandler creates a new gestures handler.
func NewGesturesHandler(deps GesturesDependencies, maxLimit int) *GesturesHandler {
	return &GesturesHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetGestures handles GET /gestures?limit=N requests. Without a limit
// the newest maxLimit gestures are returned.
func (h *GesturesHandler) HandleGetGestures(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_gestures"
	n := h.maxLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		n, err = strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
			return
		}
	}
	writeJSON(w, http.StatusOK, h.deps.Recent(r.Context(), n))
}
