// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/gestures/internal/domain/dispatch"
)

// RecognizersDependencies exposes registration metadata.
type RecognizersDependencies interface {
	Recognizers() []dispatch.Info
	TouchActions() map[string]string
}

type recognizersResponse struct {
	Recognizers  []dispatch.Info   `json:"recognizers"`
	TouchActions map[string]string `json:"touchActions"`
}

// RecognizersHandler describes the registered recognizers.
type RecognizersHandler struct {
	deps RecognizersDependencies
}

// NewRecognizersHandler creates a new recognizers handler.
func NewRecognizersHandler(deps RecognizersDependencies) *RecognizersHandler {
	return &RecognizersHandler{deps: deps}
}

// HandleGetRecognizers handles GET /recognizers requests.
func (h *RecognizersHandler) HandleGetRecognizers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, recognizersResponse{
		Recognizers:  h.deps.Recognizers(),
		TouchActions: h.deps.TouchActions(),
	})
}
