// Package service composes the state container, the persistence adapter,
// and the sync client into the core service that backs the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/scoutbase/internal/adapters/persistence"
	"github.com/okian/scoutbase/internal/adapters/remote"
	"github.com/okian/scoutbase/internal/domain/model"
	"github.com/okian/scoutbase/internal/domain/stats"
	"github.com/okian/scoutbase/internal/state"
	"github.com/okian/scoutbase/pkg/logger"
)

// SyncNotice describes what happened to the outbound push attempt that
// follows a locally saved record. It is informational; the local save has
// already succeeded by the time one is produced.
type SyncNotice string

// Notices.
const (
	// SyncStarted means a push to the configured endpoint was started.
	SyncStarted SyncNotice = "push_started"
	// SyncLocalOnly means no endpoint is configured; the record was saved
	// locally only.
	SyncLocalOnly SyncNotice = "saved_locally_only"
	// SyncBusy means another sync operation was in flight; the record was
	// saved locally and no push was attempted.
	SyncBusy SyncNotice = "sync_busy"
)

// Service implements the API dependencies for the observation store.
type Service struct {
	mu sync.RWMutex

	container *state.Container
	store     *persistence.Store
	syncer    *remote.Client

	// Configuration
	dataPath    string
	slotName    string
	syncTimeout time.Duration
	trendWindow int

	// State
	started       bool
	lastPushError string
	lastPullError string

	log logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDataPath sets the SQLite database path.
func WithDataPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dataPath = path
		}
	}
}

// WithSlotName overrides the persistence slot name.
func WithSlotName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.slotName = name
		}
	}
}

// WithSyncTimeout bounds each outbound sync request.
func WithSyncTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.syncTimeout = d
		}
	}
}

// WithTrendWindow sets the number of recent matches summarized in the
// dashboard trend.
func WithTrendWindow(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.trendWindow = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataPath:    "scoutbase.db",
		slotName:    persistence.DefaultSlot,
		syncTimeout: 15 * time.Second,
		trendWindow: 10,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start opens the durable store, loads the persisted snapshot (or the
// defaults), and wires the state container on top of it.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.log == nil {
		s.log = logger.Get()
	}

	store, err := persistence.NewStore(s.dataPath,
		persistence.WithSlot(s.slotName),
		persistence.WithLogger(s.log),
	)
	if err != nil {
		return err
	}
	s.store = store

	snap := store.Load(ctx)
	s.container = state.New(
		state.WithInitial(snap),
		state.WithSaver(store),
		state.WithLogger(s.log),
	)
	s.syncer = remote.NewClient(
		remote.WithTimeout(s.syncTimeout),
		remote.WithLogger(s.log),
	)

	s.started = true
	s.log.Info(ctx, "observation store started",
		logger.String("dataPath", s.dataPath),
		logger.Int("records", len(snap.Records)),
		logger.Int("fields", len(snap.Schema)),
	)
	return nil
}

// Stop releases the durable store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if err := s.store.Close(); err != nil {
		s.log.Warn(context.Background(), "closing snapshot store", logger.Error(err))
	}
	s.started = false
	s.log.Info(context.Background(), "observation store stopped")
}

// Snapshot returns a copy of the current application state.
func (s *Service) Snapshot() model.Snapshot {
	return s.container.Snapshot()
}

// Subscribe registers a listener on the underlying container.
func (s *Service) Subscribe(fn state.Listener) (unsubscribe func()) {
	return s.container.Subscribe(fn)
}

// AddField appends a scoring field to the schema.
func (s *Service) AddField(ctx context.Context, def model.FieldDef) error {
	return s.container.Dispatch(ctx, state.AddField{Def: def})
}

// UpdateField replaces the schema field with the matching id.
func (s *Service) UpdateField(ctx context.Context, def model.FieldDef) error {
	return s.container.Dispatch(ctx, state.UpdateField{Def: def})
}

// RemoveField removes a schema field by id. Idempotent.
func (s *Service) RemoveField(ctx context.Context, id string) error {
	return s.container.Dispatch(ctx, state.RemoveField{ID: id})
}

// UpdateSettings replaces the settings entity.
func (s *Service) UpdateSettings(ctx context.Context, settings model.Settings) error {
	return s.container.Dispatch(ctx, state.UpdateSettings{Settings: settings})
}

// SetTheme switches the presentation theme.
func (s *Service) SetTheme(ctx context.Context, theme model.Theme) error {
	return s.container.Dispatch(ctx, state.SetTheme{Theme: theme})
}

// Import applies a partial snapshot restore.
func (s *Service) Import(ctx context.Context, op state.ImportSnapshot) error {
	return s.container.Dispatch(ctx, op)
}

// NewRecord stamps a capture with its generated identity: a fresh random id
// and the current epoch-millisecond timestamp.
func NewRecord(matchNumber, teamNumber string, alliance model.Alliance, observer string, values map[string]model.Value) model.MatchRecord {
	return model.MatchRecord{
		ID:           uuid.NewString(),
		MatchNumber:  matchNumber,
		TeamNumber:   teamNumber,
		Alliance:     alliance,
		ObserverName: observer,
		Values:       values,
		RecordedAt:   time.Now().UnixMilli(),
	}
}

// AddRecord saves a record locally and then opportunistically pushes it to
// the configured remote endpoint. The local save is durable before any
// network activity; push failures warn and never roll it back.
func (s *Service) AddRecord(ctx context.Context, rec model.MatchRecord) (SyncNotice, error) {
	if err := s.container.Dispatch(ctx, state.AddRecord{Rec: rec}); err != nil {
		return "", err
	}

	endpoint := s.container.Snapshot().Settings.RemoteEndpointURL
	if endpoint == "" {
		s.log.Info(ctx, "no endpoint configured; record saved locally only",
			logger.String("recordId", rec.ID),
		)
		return SyncLocalOnly, nil
	}
	if !s.syncer.TryAcquire() {
		s.log.Info(ctx, "sync busy; record saved locally only",
			logger.String("recordId", rec.ID),
		)
		return SyncBusy, nil
	}

	// Fire and forget: the request runs on its own context so it survives
	// the HTTP request that triggered it.
	go func() {
		defer s.syncer.Release()
		pushCtx, cancel := context.WithTimeout(context.Background(), s.syncTimeout)
		defer cancel()
		if err := s.syncer.PushRecord(pushCtx, rec, endpoint); err != nil {
			s.setLastPushError(err)
			s.log.Warn(pushCtx, "record push failed; local copy is authoritative",
				logger.String("recordId", rec.ID),
				logger.Error(err),
			)
			return
		}
		s.setLastPushError(nil)
	}()

	return SyncStarted, nil
}

// PullRemote fetches the full remote record set and replaces the local one
// wholesale. Local records added after the last completed push are lost;
// that last-writer-wins behavior is the documented reconciliation contract.
func (s *Service) PullRemote(ctx context.Context) (int, error) {
	endpoint := s.container.Snapshot().Settings.RemoteEndpointURL
	if endpoint == "" {
		return 0, remote.ErrNoEndpoint
	}
	if !s.syncer.TryAcquire() {
		return 0, remote.ErrSyncBusy
	}
	defer s.syncer.Release()

	records, err := s.syncer.PullAll(ctx, endpoint)
	if err != nil {
		s.setLastPullError(err)
		return 0, err
	}
	if err := s.container.Dispatch(ctx, state.ReplaceRecords{Records: records}); err != nil {
		s.setLastPullError(err)
		return 0, err
	}
	s.setLastPullError(nil)
	return len(records), nil
}

func (s *Service) setLastPushError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastPushError = errString(err)
}

func (s *Service) setLastPullError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastPullError = errString(err)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// SyncBusyNow reports whether a sync operation is currently in flight.
func (s *Service) SyncBusyNow() bool {
	return s.syncer.Busy()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	started := s.started
	lastPush := s.lastPushError
	lastPull := s.lastPullError
	s.mu.RUnlock()

	out := map[string]interface{}{
		"started": started,
	}
	if !started {
		return out
	}

	snap := s.container.Snapshot()
	totals := stats.Summarize(snap)
	out["records"] = totals.Records
	out["teams"] = totals.Teams
	out["dataPoints"] = totals.DataPoints
	out["recentTrend"] = stats.RecentTrend(snap, s.trendWindow)
	out["schemaFields"] = len(snap.Schema)
	out["theme"] = snap.Theme
	out["endpointConfigured"] = snap.Settings.RemoteEndpointURL != ""
	out["syncBusy"] = s.syncer.Busy()
	if lastPush != "" {
		out["lastPushError"] = lastPush
	}
	if lastPull != "" {
		out["lastPullError"] = lastPull
	}
	return out
}

// IsValidationError reports whether err is one of the state validation
// sentinels, as opposed to a sync or persistence failure.
func IsValidationError(err error) bool {
	return errors.Is(err, state.ErrDuplicateFieldID) ||
		errors.Is(err, state.ErrUnknownFieldID) ||
		errors.Is(err, state.ErrDuplicateRecordID) ||
		errors.Is(err, state.ErrInvalidPayload)
}
