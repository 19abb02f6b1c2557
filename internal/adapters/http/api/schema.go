package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/scoutbase/internal/domain/model"
	"github.com/okian/scoutbase/internal/domain/stats"
)

// SchemaHandler handles scoring schema requests.
type SchemaHandler struct {
	deps Dependencies
}

// NewSchemaHandler creates a new schema handler.
func NewSchemaHandler(deps Dependencies) *SchemaHandler {
	return &SchemaHandler{deps: deps}
}

// HandleSchema handles GET /schema (list, display order), POST /schema
// (add field), and PUT /schema (update field).
func (h *SchemaHandler) HandleSchema(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, stats.SortedSchema(h.deps.Snapshot()))
	case http.MethodPost:
		var def model.FieldDef
		if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		if err := h.deps.AddField(r.Context(), def); err != nil {
			writeDispatchError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, def)
	case http.MethodPut:
		var def model.FieldDef
		if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		if err := h.deps.UpdateField(r.Context(), def); err != nil {
			writeDispatchError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, def)
	default:
		http.NotFound(w, r)
	}
}

// HandleSchemaByID handles DELETE /schema/{id}. Removal is idempotent:
// deleting an absent field succeeds.
func (h *SchemaHandler) HandleSchemaByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/schema/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := h.deps.RemoveField(r.Context(), id); err != nil {
		writeDispatchError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
