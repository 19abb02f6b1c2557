// Package persistence stores the full application snapshot as a JSON blob
// in a single named slot of a local SQLite database.
package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/okian/scoutbase/internal/domain/model"
	"github.com/okian/scoutbase/pkg/logger"
	"github.com/okian/scoutbase/pkg/metrics"
)

// DefaultSlot is the slot name used unless overridden.
const DefaultSlot = "scout-data"

// Store is the durable snapshot slot. Every Save rewrites the whole
// snapshot; Load reads it back, falling back to the default snapshot when
// the slot is absent or unreadable.
type Store struct {
	db   *sql.DB
	slot string
	log  logger.Logger
}

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithSlot overrides the slot name.
func WithSlot(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.slot = name
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// NewStore opens (creating if needed) the SQLite database at path.
func NewStore(path string, opts ...Option) (*Store, error) {
	if path == "" {
		path = "scoutbase.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("%w: create dirs: %w", ErrOpenStore, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenStore, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		slot TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: create state table: %w", ErrOpenStore, err)
	}

	s := &Store{db: db, slot: DefaultSlot}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get()
	}
	return s, nil
}

// Save serializes the snapshot and rewrites the slot.
func (s *Store) Save(ctx context.Context, snap model.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrSaveSnapshot, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO state (slot, payload) VALUES (?, ?)
		 ON CONFLICT(slot) DO UPDATE SET payload = excluded.payload`,
		s.slot, payload,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveSnapshot, err)
	}
	return nil
}

// Load reads the slot. An absent slot, an unreadable payload, or a payload
// that does not parse as a snapshot all yield the default snapshot; none of
// them is an error to the caller. Unknown top-level keys in the payload are
// ignored and missing ones default, so older and newer slot shapes both
// load.
func (s *Store) Load(ctx context.Context) model.Snapshot {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM state WHERE slot = ?`, s.slot,
	).Scan(&payload)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return model.DefaultSnapshot()
	case err != nil:
		metrics.RecordLoadFallback()
		s.log.Warn(ctx, "snapshot load failed; starting from defaults",
			logger.String("slot", s.slot),
			logger.Error(err),
		)
		return model.DefaultSnapshot()
	}

	var snap model.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		metrics.RecordLoadFallback()
		s.log.Warn(ctx, "stored snapshot unreadable; starting from defaults",
			logger.String("slot", s.slot),
			logger.Error(err),
		)
		return model.DefaultSnapshot()
	}
	normalize(&snap)
	return snap
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close snapshot store: %w", err)
	}
	return nil
}

// normalize fills defaults for top-level sections the stored payload left
// out. An explicitly empty section stays empty; only absence defaults.
func normalize(snap *model.Snapshot) {
	if snap.Schema == nil {
		snap.Schema = model.DefaultSchema()
	}
	if snap.Records == nil {
		snap.Records = []model.MatchRecord{}
	}
	if !snap.Theme.Valid() {
		snap.Theme = model.ThemeDark
	}
}
