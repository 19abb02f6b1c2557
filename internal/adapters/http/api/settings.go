package api

import (
	"encoding/json"
	"net/http"

	"github.com/okian/scoutbase/internal/domain/model"
)

// SettingsHandler handles settings and theme requests.
type SettingsHandler struct {
	deps Dependencies
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(deps Dependencies) *SettingsHandler {
	return &SettingsHandler{deps: deps}
}

// HandleSettings handles GET /settings and PUT /settings.
func (h *SettingsHandler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.Snapshot().Settings)
	case http.MethodPut:
		var settings model.Settings
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		if err := h.deps.UpdateSettings(r.Context(), settings); err != nil {
			writeDispatchError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, settings)
	default:
		http.NotFound(w, r)
	}
}

type themeRequest struct {
	Theme model.Theme `json:"theme"`
}

// HandleTheme handles PUT /theme.
func (h *SettingsHandler) HandleTheme(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}
	var req themeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := h.deps.SetTheme(r.Context(), req.Theme); err != nil {
		writeDispatchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}
