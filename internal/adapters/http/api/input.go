// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/gestures/internal/domain/types"
)

// InputDependencies defines the interface for accepting raw input.
type InputDependencies interface {
	SubmitPointer(ctx context.Context, req types.PointerRequest) error
	SubmitKey(ctx context.Context, req types.KeyRequest) error
	RemoveElement(ctx context.Context, path string) error
}

// InputHandler handles pointer, key and element submissions.
type InputHandler struct {
	deps InputDependencies
}

// NewInputHandler creates a new input handler.
func NewInputHandler(deps InputDependencies) *InputHandler {
	return &InputHandler{deps: deps}
}

// HandlePostPointer handles POST /pointer requests.
func (h *InputHandler) HandlePostPointer(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_pointer"
	var req types.PointerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	respondSubmit(w, op, h.deps.SubmitPointer(r.Context(), req))
}

// HandlePostKey handles POST /key requests.
func (h *InputHandler) HandlePostKey(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_key"
	var req types.KeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	respondSubmit(w, op, h.deps.SubmitKey(r.Context(), req))
}

// HandleDeleteElement handles DELETE /elements/{path...} requests.
func (h *InputHandler) HandleDeleteElement(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_element"
	respondSubmit(w, op, h.deps.RemoveElement(r.Context(), r.PathValue("path")))
}

func respondSubmit(w http.ResponseWriter, op string, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted"})
	case errors.Is(err, types.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, types.ErrBackpressure):
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
	case errors.Is(err, types.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "unavailable", NewKind(op, ErrUnavailable))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
