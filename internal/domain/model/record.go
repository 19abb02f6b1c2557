package model

import (
	"errors"
	"fmt"
	"strings"
)

// Alliance identifies which side a team played on during a match.
type Alliance string

// Alliance sides.
const (
	AllianceA Alliance = "A"
	AllianceB Alliance = "B"
)

// Valid reports whether a is a known alliance side.
func (a Alliance) Valid() bool {
	return a == AllianceA || a == AllianceB
}

// MatchRecord is one completed observation. Records are immutable once
// saved; the only store-level mutation touching them is a wholesale
// replace during inbound sync.
type MatchRecord struct {
	ID          string   `json:"id"`
	MatchNumber string   `json:"matchNumber"`
	TeamNumber  string   `json:"teamNumber"`
	Alliance    Alliance `json:"alliance"`
	// ObserverName is free text and optional.
	ObserverName string `json:"observerName,omitempty"`
	// Values maps field id to the value captured for it. Keys are not
	// re-validated against later schema versions; readers ignore ids the
	// current schema no longer knows.
	Values map[string]Value `json:"values"`
	// RecordedAt is the capture timestamp in epoch milliseconds.
	RecordedAt int64 `json:"recordedAt"`
}

// Validate checks the record's internal consistency.
func (r MatchRecord) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("record id must not be empty")
	}
	if strings.TrimSpace(r.MatchNumber) == "" {
		return errors.New("match number must not be empty")
	}
	if strings.TrimSpace(r.TeamNumber) == "" {
		return errors.New("team number must not be empty")
	}
	if !r.Alliance.Valid() {
		return fmt.Errorf("unknown alliance %q", r.Alliance)
	}
	return nil
}

// CloneValues returns a copy of the values map so callers can hand out
// records without sharing mutable state.
func (r MatchRecord) CloneValues() map[string]Value {
	if r.Values == nil {
		return nil
	}
	out := make(map[string]Value, len(r.Values))
	for k, v := range r.Values {
		out[k] = v
	}
	return out
}
