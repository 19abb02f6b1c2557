package model

import (
	"encoding/json"
	"fmt"
)

// ValueKind tags the runtime shape of a recorded value.
type ValueKind int

// Value shapes.
const (
	ValueNumber ValueKind = iota
	ValueText
	ValueFlag
	ValueGrade
)

// Value is a tagged union holding one recorded observation value. The wire
// shape is the bare JSON scalar (number, string, bool) so stored snapshots
// stay compatible with the original storage format. Grades serialize as
// strings; on decode a string always becomes ValueText, since the schema
// kind at read time is what distinguishes a grade from free text.
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
	Flag bool
}

// Number constructs a numeric value.
func Number(n float64) Value { return Value{Kind: ValueNumber, Num: n} }

// Text constructs a free-text value.
func Text(s string) Value { return Value{Kind: ValueText, Str: s} }

// Bool constructs a flag value.
func Bool(b bool) Value { return Value{Kind: ValueFlag, Flag: b} }

// Grade constructs a letter-grade value.
func Grade(g string) Value { return Value{Kind: ValueGrade, Str: g} }

// AsNumber returns the numeric content, or 0 when the value is not numeric.
// The boolean reports whether the value was numeric.
func (v Value) AsNumber() (float64, bool) {
	if v.Kind == ValueNumber {
		return v.Num, true
	}
	return 0, false
}

// AsString returns the string content of text and grade values.
func (v Value) AsString() (string, bool) {
	if v.Kind == ValueText || v.Kind == ValueGrade {
		return v.Str, true
	}
	return "", false
}

// AsFlag returns the boolean content of flag values.
func (v Value) AsFlag() (bool, bool) {
	if v.Kind == ValueFlag {
		return v.Flag, true
	}
	return false, false
}

// Equal compares two values, treating text and grade as interchangeable
// when their strings match (the wire format cannot tell them apart).
func (v Value) Equal(o Value) bool {
	vs, vok := v.AsString()
	os, ook := o.AsString()
	if vok && ook {
		return vs == os
	}
	return v == o
}

// MarshalJSON emits the bare scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueNumber:
		return json.Marshal(v.Num)
	case ValueText, ValueGrade:
		return json.Marshal(v.Str)
	case ValueFlag:
		return json.Marshal(v.Flag)
	default:
		return nil, fmt.Errorf("unknown value kind %d", v.Kind)
	}
}

// UnmarshalJSON accepts any JSON scalar and tags it by runtime shape.
func (v *Value) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = Bool(b)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = Number(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Text(s)
		return nil
	}
	return fmt.Errorf("value must be a JSON scalar, got %s", data)
}
