package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/okian/scoutbase/internal/domain/stats"
)

// CompareHandler handles multi-team comparison requests.
type CompareHandler struct {
	deps     Dependencies
	maxTeams int
}

// NewCompareHandler creates a new compare handler.
func NewCompareHandler(deps Dependencies, maxTeams int) *CompareHandler {
	if maxTeams <= 0 {
		maxTeams = 8
	}
	return &CompareHandler{deps: deps, maxTeams: maxTeams}
}

// HandleCompare handles GET /compare?teams=100,254,1678: one row per
// numeric field with per-team averages. The team list is capped.
func (h *CompareHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	raw := strings.TrimSpace(r.URL.Query().Get("teams"))
	if raw == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing teams parameter"))
		return
	}
	var teams []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			teams = append(teams, t)
		}
	}
	if len(teams) > h.maxTeams {
		writeError(w, http.StatusBadRequest, "bad_request",
			errors.New("too many teams requested"))
		return
	}

	writeJSON(w, http.StatusOK, stats.Compare(h.deps.Snapshot(), teams, h.maxTeams))
}
