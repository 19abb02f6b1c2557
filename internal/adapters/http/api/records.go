package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	service "github.com/okian/scoutbase/internal/app"
	"github.com/okian/scoutbase/internal/domain/model"
)

// RecordsHandler handles match record requests.
type RecordsHandler struct {
	deps Dependencies
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(deps Dependencies) *RecordsHandler {
	return &RecordsHandler{deps: deps}
}

// recordRequest mirrors the capture form: identity fields plus the dynamic
// value bag keyed by field id.
type recordRequest struct {
	MatchNumber  string                 `json:"matchNumber"`
	TeamNumber   string                 `json:"teamNumber"`
	Alliance     string                 `json:"alliance"`
	ObserverName string                 `json:"observerName"`
	Values       map[string]model.Value `json:"values"`
}

func (req recordRequest) validate() error {
	switch {
	case strings.TrimSpace(req.MatchNumber) == "":
		return errors.New("missing matchNumber")
	case strings.TrimSpace(req.TeamNumber) == "":
		return errors.New("missing teamNumber")
	}
	if a := model.Alliance(req.Alliance); !a.Valid() {
		return errors.New("alliance must be A or B")
	}
	return nil
}

// recordResponse acknowledges a locally saved record together with the
// informational sync notice.
type recordResponse struct {
	Record model.MatchRecord  `json:"record"`
	Sync   service.SyncNotice `json:"sync"`
}

// HandleRecords handles GET /records (full sequence, most recent first)
// and POST /records (capture one record; saved locally, then pushed
// best-effort).
func (h *RecordsHandler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.Snapshot().Records)
	case http.MethodPost:
		var req recordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		if err := req.validate(); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}

		rec := service.NewRecord(req.MatchNumber, req.TeamNumber, model.Alliance(req.Alliance), req.ObserverName, req.Values)
		notice, err := h.deps.AddRecord(r.Context(), rec)
		if err != nil {
			writeDispatchError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, recordResponse{Record: rec, Sync: notice})
	default:
		http.NotFound(w, r)
	}
}
