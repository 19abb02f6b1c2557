// Package seeder generates realistic sample match records and submits them
// to a running scoutd instance through its HTTP API. Useful for demoing
// the aggregation views and for exercising a deployment end to end.
package seeder

import "time"

// Config holds configuration for a seeding run.
type Config struct {
	BaseURL    string        // Base URL of the service
	NumRecords int           // Number of records to generate
	NumTeams   int           // Number of distinct teams to spread them over
	Observer   string        // Observer name stamped on every record
	Timeout    time.Duration // HTTP request timeout
}

// Stats holds the outcome of a seeding run.
type Stats struct {
	Generated  int
	Submitted  int
	Failed     int
	Teams      int
	StartTime  time.Time
	EndTime    time.Time
	SyncBusy   int
	SyncedNone int // records acknowledged as saved locally only
}
