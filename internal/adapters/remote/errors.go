package remote

import "errors"

// Sentinel kinds for sync errors.
var (
	// ErrNoEndpoint means no remote endpoint URL is configured. For pushes
	// this is informational (the record is already saved locally); for
	// pulls it is a configuration error.
	ErrNoEndpoint = errors.New("no remote endpoint configured")

	// ErrSyncBusy means another sync operation is already in flight.
	ErrSyncBusy = errors.New("sync already in progress")

	ErrPushFailed       = errors.New("record push failed")
	ErrPullFailed       = errors.New("record pull failed")
	ErrMalformedPayload = errors.New("remote payload is not a record array")
)
