package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/scoutbase/internal/seeder"
	"github.com/okian/scoutbase/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumRecords = 60
	defaultNumTeams   = 6
	defaultTimeout    = 15 * time.Second
	defaultRunTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9090", "Base URL of the service")
		numRecords = flag.Int("records", defaultNumRecords, "Number of match records to generate and submit")
		numTeams   = flag.Int("teams", defaultNumTeams, "Number of distinct teams to spread records across")
		observer   = flag.String("observer", "seed", "Observer name stamped on generated records")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("Failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &seeder.Config{
		BaseURL:    *baseURL,
		NumRecords: *numRecords,
		NumTeams:   *numTeams,
		Observer:   *observer,
		Timeout:    *timeout,
	}

	if _, err := seeder.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Seeding failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
