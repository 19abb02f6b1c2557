package api

import (
	"net/http"
	"strings"

	"github.com/okian/scoutbase/internal/domain/model"
	"github.com/okian/scoutbase/internal/domain/stats"
)

// TeamsHandler handles per-team query requests.
type TeamsHandler struct {
	deps Dependencies
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps Dependencies) *TeamsHandler {
	return &TeamsHandler{deps: deps}
}

// HandleTeams handles GET /teams: the distinct team numbers with at least
// one record, numerically sorted.
func (h *TeamsHandler) HandleTeams(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	teams := stats.Teams(h.deps.Snapshot())
	if teams == nil {
		teams = []string{}
	}
	writeJSON(w, http.StatusOK, teams)
}

// teamResponse is the per-team detail view: match history in match order
// plus the derived aggregates.
type teamResponse struct {
	TeamNumber string               `json:"teamNumber"`
	Matches    []model.MatchRecord  `json:"matches"`
	Averages   []stats.FieldAverage `json:"averages"`
	Trend      []stats.TrendPoint   `json:"trend"`
}

// HandleTeamByID handles GET /teams/{teamNumber}.
func (h *TeamsHandler) HandleTeamByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	team := strings.TrimPrefix(r.URL.Path, "/teams/")
	if team == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	snap := h.deps.Snapshot()
	matches := stats.ForTeam(snap, team)
	if len(matches) == 0 {
		writeError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	writeJSON(w, http.StatusOK, teamResponse{
		TeamNumber: team,
		Matches:    matches,
		Averages:   stats.Averages(snap, team),
		Trend:      stats.Trend(snap, team),
	})
}
