package state

import "errors"

// Sentinel kinds for state mutation errors. Callers of Dispatch use
// errors.Is against these to classify rejections.
var (
	ErrDuplicateFieldID  = errors.New("duplicate field id")
	ErrUnknownFieldID    = errors.New("unknown field id")
	ErrDuplicateRecordID = errors.New("duplicate record id")
	ErrInvalidPayload    = errors.New("invalid payload")
)
