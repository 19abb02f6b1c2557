package api

import (
	"encoding/json"
	"net/http"

	"github.com/okian/scoutbase/internal/domain/model"
	"github.com/okian/scoutbase/internal/state"
)

// BackupHandler handles snapshot export and restore requests.
type BackupHandler struct {
	deps Dependencies
}

// NewBackupHandler creates a new backup handler.
func NewBackupHandler(deps Dependencies) *BackupHandler {
	return &BackupHandler{deps: deps}
}

// HandleExport handles GET /export: the full snapshot as a backup file.
func (h *BackupHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="scout-backup.json"`)
	writeJSON(w, http.StatusOK, h.deps.Snapshot())
}

// importRequest distinguishes absent sections (nil pointers) from sections
// explicitly present in the payload. Present sections replace wholesale;
// absent ones are left untouched.
type importRequest struct {
	Schema   *[]model.FieldDef    `json:"schema"`
	Matches  *[]model.MatchRecord `json:"matches"`
	Settings *model.Settings      `json:"settings"`
	Theme    *model.Theme         `json:"theme"`
}

// HandleImport handles POST /import: restore a partial snapshot from a
// backup file. Top-level merge only; no field-level merging.
func (h *BackupHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	op := state.ImportSnapshot{Settings: req.Settings}
	if req.Schema != nil {
		op.Schema = *req.Schema
		if op.Schema == nil {
			op.Schema = []model.FieldDef{}
		}
	}
	if req.Matches != nil {
		op.Records = *req.Matches
		if op.Records == nil {
			op.Records = []model.MatchRecord{}
		}
	}
	if req.Theme != nil {
		op.Theme = *req.Theme
	}

	if err := h.deps.Import(r.Context(), op); err != nil {
		writeDispatchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "imported"})
}
