package persistence

import "errors"

// Sentinel kinds for persistence errors.
var (
	ErrOpenStore    = errors.New("open snapshot store failed")
	ErrSaveSnapshot = errors.New("save snapshot failed")
)
