// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file, and environment variables.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration for the scoutd daemon. The remote
// sync endpoint is deliberately not here: it belongs to the in-app settings
// entity and travels with the snapshot.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataPath locates the SQLite database holding the snapshot slot.
	DataPath string `koanf:"data_path"`

	// SlotName names the snapshot slot inside the database.
	SlotName string `koanf:"slot_name"`

	// SyncTimeoutMS bounds each outbound sync request.
	SyncTimeoutMS int `koanf:"sync_timeout_ms"`

	// MaxCompareTeams caps GET /compare's team list.
	MaxCompareTeams int `koanf:"max_compare_teams"`

	// TrendWindow is the number of recent matches in the dashboard trend.
	TrendWindow int `koanf:"trend_window"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9090",
		DataPath:        "scoutbase.db",
		SlotName:        "scout-data",
		SyncTimeoutMS:   15_000,
		MaxCompareTeams: 8,
		TrendWindow:     10,
	}
}
