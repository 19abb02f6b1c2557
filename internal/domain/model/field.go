// Package model contains the domain entities shared between layers:
// scoring field definitions, match records, settings, and the snapshot
// that aggregates them.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// FieldKind enumerates the value shapes a scoring field can collect.
type FieldKind string

// Supported field kinds.
const (
	// KindCounter is a numeric value collected with increment/decrement input.
	KindCounter FieldKind = "counter"
	// KindDirect is a numeric value entered directly.
	KindDirect FieldKind = "direct"
	// KindGrade is a letter grade on the S..F scale.
	KindGrade FieldKind = "grade"
	// KindText is free text.
	KindText FieldKind = "text"
	// KindFlag is a yes/no toggle.
	KindFlag FieldKind = "flag"
)

// Valid reports whether k is a known field kind.
func (k FieldKind) Valid() bool {
	switch k {
	case KindCounter, KindDirect, KindGrade, KindText, KindFlag:
		return true
	}
	return false
}

// Numeric reports whether values of this kind participate in numeric
// aggregation.
func (k FieldKind) Numeric() bool {
	return k == KindCounter || k == KindDirect
}

// GradeScale is the ordered letter-grade scale, best first.
var GradeScale = []string{"S", "A", "B", "C", "D", "E", "F"}

// DefaultGrade is the grade preselected when capturing a record.
const DefaultGrade = "C"

// FieldDef describes one configurable observable collected per record.
type FieldDef struct {
	ID    string    `json:"id"`
	Label string    `json:"label"`
	Kind  FieldKind `json:"kind"`
	// Min and Max bound numeric kinds; pointers so absence survives
	// serialization round-trips.
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
	Order int      `json:"order"`
}

// Validate checks the definition's internal consistency. It does not check
// uniqueness against a schema; that is the state container's job.
func (d FieldDef) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return errors.New("field id must not be empty")
	}
	if strings.TrimSpace(d.Label) == "" {
		return errors.New("field label must not be empty")
	}
	if !d.Kind.Valid() {
		return fmt.Errorf("unknown field kind %q", d.Kind)
	}
	if d.Min != nil && d.Max != nil && *d.Min > *d.Max {
		return fmt.Errorf("field %s: min %v exceeds max %v", d.ID, *d.Min, *d.Max)
	}
	return nil
}

// ValidGrade reports whether g is on the grade scale.
func ValidGrade(g string) bool {
	for _, s := range GradeScale {
		if g == s {
			return true
		}
	}
	return false
}
