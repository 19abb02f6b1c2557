package seeder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/okian/scoutbase/internal/domain/model"
	"github.com/okian/scoutbase/pkg/logger"
)

type submitResponse struct {
	Record model.MatchRecord `json:"record"`
	Sync   string            `json:"sync"`
}

// Run fetches the live schema, generates records against it, and submits
// them one at a time. Ordering matters more than throughput here: the
// store's most-recent-first invariant makes interleaved submissions
// confusing to inspect.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	log := logger.Get()
	client := &http.Client{Timeout: cfg.Timeout}

	schema, err := fetchSchema(ctx, client, cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "fetched schema", logger.Int("fields", len(schema)))

	rng := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // sample data, not security sensitive
	records := generateRecords(cfg, schema, rng)

	stats := &Stats{
		Generated: len(records),
		Teams:     cfg.NumTeams,
		StartTime: time.Now(),
	}

	for i, rec := range records {
		select {
		case <-ctx.Done():
			return stats, fmt.Errorf("seeding interrupted: %w", ctx.Err())
		default:
		}

		resp, err := submitRecord(ctx, client, cfg.BaseURL, rec)
		if err != nil {
			stats.Failed++
			log.Warn(ctx, "record submission failed",
				logger.Int("index", i),
				logger.Error(err),
			)
			continue
		}
		stats.Submitted++
		switch resp.Sync {
		case "saved_locally_only":
			stats.SyncedNone++
		case "sync_busy":
			stats.SyncBusy++
		}
	}

	stats.EndTime = time.Now()
	log.Info(ctx, "seeding complete",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("failed", stats.Failed),
		logger.String("elapsed", stats.EndTime.Sub(stats.StartTime).String()),
	)
	return stats, nil
}

func fetchSchema(ctx context.Context, client *http.Client, baseURL string) ([]model.FieldDef, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/schema", nil)
	if err != nil {
		return nil, fmt.Errorf("build schema request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch schema: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch schema: unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read schema response: %w", err)
	}
	var schema []model.FieldDef
	if err := json.Unmarshal(body, &schema); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	return schema, nil
}

func submitRecord(ctx context.Context, client *http.Client, baseURL string, rec recordPayload) (*submitResponse, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/records", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build record request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit record: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("submit record: status %d: %s", resp.StatusCode, body)
	}
	var out submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode record response: %w", err)
	}
	return &out, nil
}
