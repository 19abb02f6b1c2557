// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/scoutbase/internal/app"
	"github.com/okian/scoutbase/internal/domain/model"
	"github.com/okian/scoutbase/internal/state"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Snapshot() model.Snapshot

	AddField(ctx context.Context, def model.FieldDef) error
	UpdateField(ctx context.Context, def model.FieldDef) error
	RemoveField(ctx context.Context, id string) error

	AddRecord(ctx context.Context, rec model.MatchRecord) (service.SyncNotice, error)

	UpdateSettings(ctx context.Context, settings model.Settings) error
	SetTheme(ctx context.Context, theme model.Theme) error
	Import(ctx context.Context, op state.ImportSnapshot) error

	PullRemote(ctx context.Context) (int, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	schemaHandler   *SchemaHandler
	recordsHandler  *RecordsHandler
	teamsHandler    *TeamsHandler
	compareHandler  *CompareHandler
	settingsHandler *SettingsHandler
	syncHandler     *SyncHandler
	backupHandler   *BackupHandler
}

// NewServer creates a new API server with all handlers. maxCompareTeams
// caps the comparison table width.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxCompareTeams int) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		schemaHandler:   NewSchemaHandler(deps),
		recordsHandler:  NewRecordsHandler(deps),
		teamsHandler:    NewTeamsHandler(deps),
		compareHandler:  NewCompareHandler(deps, maxCompareTeams),
		settingsHandler: NewSettingsHandler(deps),
		syncHandler:     NewSyncHandler(deps),
		backupHandler:   NewBackupHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/schema", MetricsMiddleware(s.schemaHandler.HandleSchema, "schema"))
	mux.HandleFunc("/schema/", MetricsMiddleware(s.schemaHandler.HandleSchemaByID, "schema"))
	mux.HandleFunc("/records", MetricsMiddleware(s.recordsHandler.HandleRecords, "records"))
	mux.HandleFunc("/teams", MetricsMiddleware(s.teamsHandler.HandleTeams, "teams"))
	mux.HandleFunc("/teams/", MetricsMiddleware(s.teamsHandler.HandleTeamByID, "teams"))
	mux.HandleFunc("/compare", MetricsMiddleware(s.compareHandler.HandleCompare, "compare"))
	mux.HandleFunc("/settings", MetricsMiddleware(s.settingsHandler.HandleSettings, "settings"))
	mux.HandleFunc("/theme", MetricsMiddleware(s.settingsHandler.HandleTheme, "theme"))
	mux.HandleFunc("/sync/pull", MetricsMiddleware(s.syncHandler.HandlePull, "sync_pull"))
	mux.HandleFunc("/export", MetricsMiddleware(s.backupHandler.HandleExport, "export"))
	mux.HandleFunc("/import", MetricsMiddleware(s.backupHandler.HandleImport, "import"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDispatchError translates state validation errors to HTTP statuses.
func writeDispatchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, state.ErrDuplicateFieldID), errors.Is(err, state.ErrDuplicateRecordID):
		writeError(w, http.StatusConflict, "conflict", err)
	case errors.Is(err, state.ErrUnknownFieldID):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, state.ErrInvalidPayload):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal", err)
	}
}
