package api

import (
	"errors"
	"net/http"

	"github.com/okian/scoutbase/internal/adapters/remote"
)

// SyncHandler handles inbound sync requests.
type SyncHandler struct {
	deps Dependencies
}

// NewSyncHandler creates a new sync handler.
func NewSyncHandler(deps Dependencies) *SyncHandler {
	return &SyncHandler{deps: deps}
}

type pullResponse struct {
	Status  string `json:"status"`
	Records int    `json:"records"`
}

// HandlePull handles POST /sync/pull: fetch the full remote record set and
// replace the local one wholesale. Failures leave local state untouched.
func (h *SyncHandler) HandlePull(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	n, err := h.deps.PullRemote(r.Context())
	switch {
	case errors.Is(err, remote.ErrNoEndpoint):
		writeError(w, http.StatusBadRequest, "no_endpoint", err)
	case errors.Is(err, remote.ErrSyncBusy):
		writeError(w, http.StatusConflict, "sync_busy", err)
	case errors.Is(err, remote.ErrMalformedPayload):
		writeError(w, http.StatusBadGateway, "malformed_payload", err)
	case err != nil:
		writeError(w, http.StatusBadGateway, "pull_failed", err)
	default:
		writeJSON(w, http.StatusOK, pullResponse{Status: "replaced", Records: n})
	}
}
