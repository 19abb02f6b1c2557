package state

import (
	"fmt"

	"github.com/okian/scoutbase/internal/domain/model"
)

// Operation is one member of the closed set of named state mutations. Each
// operation is a pure function from snapshot to snapshot: it either produces
// a complete new snapshot or returns an error and leaves the input alone.
// The snapshot handed to apply is already a private copy, so implementations
// may mutate it freely.
type Operation interface {
	// Name identifies the operation for logs and metrics.
	Name() string

	apply(s model.Snapshot) (model.Snapshot, error)
}

// AddField appends a scoring field to the schema.
type AddField struct {
	Def model.FieldDef
}

// Name implements Operation.
func (AddField) Name() string { return "add_field" }

func (op AddField) apply(s model.Snapshot) (model.Snapshot, error) {
	if err := op.Def.Validate(); err != nil {
		return s, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	if _, ok := s.FieldByID(op.Def.ID); ok {
		return s, fmt.Errorf("%w: %s", ErrDuplicateFieldID, op.Def.ID)
	}
	s.Schema = append(s.Schema, op.Def)
	return s, nil
}

// RemoveField removes a scoring field by id. Removing an absent id is a
// no-op; historical records keep whatever keys they already carry.
type RemoveField struct {
	ID string
}

// Name implements Operation.
func (RemoveField) Name() string { return "remove_field" }

func (op RemoveField) apply(s model.Snapshot) (model.Snapshot, error) {
	kept := s.Schema[:0]
	for _, d := range s.Schema {
		if d.ID != op.ID {
			kept = append(kept, d)
		}
	}
	s.Schema = kept
	return s, nil
}

// UpdateField replaces the schema field with the matching id.
type UpdateField struct {
	Def model.FieldDef
}

// Name implements Operation.
func (UpdateField) Name() string { return "update_field" }

func (op UpdateField) apply(s model.Snapshot) (model.Snapshot, error) {
	if err := op.Def.Validate(); err != nil {
		return s, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	for i, d := range s.Schema {
		if d.ID == op.Def.ID {
			s.Schema[i] = op.Def
			return s, nil
		}
	}
	return s, fmt.Errorf("%w: %s", ErrUnknownFieldID, op.Def.ID)
}

// AddRecord prepends a match record; the sequence stays most-recent-first.
type AddRecord struct {
	Rec model.MatchRecord
}

// Name implements Operation.
func (AddRecord) Name() string { return "add_record" }

func (op AddRecord) apply(s model.Snapshot) (model.Snapshot, error) {
	if err := op.Rec.Validate(); err != nil {
		return s, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	for _, r := range s.Records {
		if r.ID == op.Rec.ID {
			// Ids are collision-resistant random, so this is unexpected
			// rather than something to retry.
			return s, fmt.Errorf("%w: %s", ErrDuplicateRecordID, op.Rec.ID)
		}
	}
	// Value keys must be known at save time. Later schema edits may orphan
	// them, which readers tolerate, but a fresh record referencing a field
	// the schema never had is malformed.
	for id := range op.Rec.Values {
		if _, ok := s.FieldByID(id); !ok {
			return s, fmt.Errorf("%w: value references field %s", ErrUnknownFieldID, id)
		}
	}
	s.Records = append([]model.MatchRecord{op.Rec}, s.Records...)
	return s, nil
}

// ReplaceRecords substitutes the whole record sequence. Used only by inbound
// sync reconciliation: the fetched set wins entirely, including over local
// records that were never pushed. That gap is a documented tradeoff, not a
// merge waiting to happen.
type ReplaceRecords struct {
	Records []model.MatchRecord
}

// Name implements Operation.
func (ReplaceRecords) Name() string { return "replace_records" }

func (op ReplaceRecords) apply(s model.Snapshot) (model.Snapshot, error) {
	recs := make([]model.MatchRecord, len(op.Records))
	for i, r := range op.Records {
		c := r
		c.Values = r.CloneValues()
		recs[i] = c
	}
	s.Records = recs
	return s, nil
}

// UpdateSettings replaces the settings entity.
type UpdateSettings struct {
	Settings model.Settings
}

// Name implements Operation.
func (UpdateSettings) Name() string { return "update_settings" }

func (op UpdateSettings) apply(s model.Snapshot) (model.Snapshot, error) {
	s.Settings = op.Settings
	return s, nil
}

// SetTheme switches the presentation theme.
type SetTheme struct {
	Theme model.Theme
}

// Name implements Operation.
func (SetTheme) Name() string { return "set_theme" }

func (op SetTheme) apply(s model.Snapshot) (model.Snapshot, error) {
	if !op.Theme.Valid() {
		return s, fmt.Errorf("%w: unknown theme %q", ErrInvalidPayload, op.Theme)
	}
	s.Theme = op.Theme
	return s, nil
}

// ImportSnapshot deep-merges a partial snapshot at the top level only:
// sections present in the payload replace wholesale, absent sections are
// left untouched. Used for restoring from an external backup file.
type ImportSnapshot struct {
	// Nil slices and pointers mean "absent"; empty non-nil slices replace
	// with empty.
	Schema   []model.FieldDef
	Records  []model.MatchRecord
	Settings *model.Settings
	Theme    model.Theme
}

// Name implements Operation.
func (ImportSnapshot) Name() string { return "import_snapshot" }

func (op ImportSnapshot) apply(s model.Snapshot) (model.Snapshot, error) {
	if op.Theme != "" && !op.Theme.Valid() {
		return s, fmt.Errorf("%w: unknown theme %q", ErrInvalidPayload, op.Theme)
	}
	if op.Schema != nil {
		seen := make(map[string]struct{}, len(op.Schema))
		for _, d := range op.Schema {
			if err := d.Validate(); err != nil {
				return s, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
			}
			if _, dup := seen[d.ID]; dup {
				return s, fmt.Errorf("%w: %s", ErrDuplicateFieldID, d.ID)
			}
			seen[d.ID] = struct{}{}
		}
		s.Schema = append([]model.FieldDef(nil), op.Schema...)
	}
	if op.Records != nil {
		recs := make([]model.MatchRecord, len(op.Records))
		for i, r := range op.Records {
			c := r
			c.Values = r.CloneValues()
			recs[i] = c
		}
		s.Records = recs
	}
	if op.Settings != nil {
		s.Settings = *op.Settings
	}
	if op.Theme != "" {
		s.Theme = op.Theme
	}
	return s, nil
}
