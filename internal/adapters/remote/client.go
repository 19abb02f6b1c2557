// Package remote implements the best-effort sync channel to the remote
// record store: outbound push of single records and inbound pull of the
// full record set. Sync never blocks local durability; records are already
// persisted locally before any push is attempted, and a failed sync leaves
// local state untouched.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/okian/scoutbase/internal/domain/model"
	"github.com/okian/scoutbase/pkg/logger"
	"github.com/okian/scoutbase/pkg/metrics"
)

const defaultTimeout = 15 * time.Second

// Client talks to the remote endpoint and carries the busy gate that keeps
// at most one sync operation in flight.
type Client struct {
	http *http.Client
	log  logger.Logger
	busy atomic.Bool
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient constructs a sync client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Get()
	}
	return c
}

// TryAcquire claims the busy gate. It returns false when another sync
// operation is already in flight; callers then report ErrSyncBusy and do
// not start a new one.
func (c *Client) TryAcquire() bool {
	ok := c.busy.CompareAndSwap(false, true)
	if !ok {
		metrics.RecordSyncBusyRejected()
	}
	return ok
}

// Release frees the busy gate.
func (c *Client) Release() {
	c.busy.Store(false)
}

// Busy reports whether a sync operation is in flight.
func (c *Client) Busy() bool {
	return c.busy.Load()
}

// PushRecord sends one record to the endpoint as a JSON POST. The response
// body is not inspected: the deployment target only exposes transport-level
// success. An empty endpoint skips the push and returns ErrNoEndpoint,
// which callers surface as a "saved locally only" notice rather than an
// error.
func (c *Client) PushRecord(ctx context.Context, rec model.MatchRecord, endpoint string) error {
	if endpoint == "" {
		metrics.RecordSyncSkipped()
		return ErrNoEndpoint
	}

	body, err := json.Marshal(rec)
	if err != nil {
		metrics.RecordSyncPushFailure()
		return fmt.Errorf("%w: encode: %w", ErrPushFailed, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		metrics.RecordSyncPushFailure()
		return fmt.Errorf("%w: %w", ErrPushFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordSyncPushFailure()
		return fmt.Errorf("%w: %w", ErrPushFailed, err)
	}
	// Drain so the connection can be reused; the content is opaque to us.
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	metrics.RecordSyncPush()
	c.log.Debug(ctx, "record pushed",
		logger.String("recordId", rec.ID),
		logger.Int("status", resp.StatusCode),
	)
	return nil
}

// PullAll fetches the full remote record set. The response must be a JSON
// array of match records; anything else fails the pull and the caller's
// local state stays untouched.
func (c *Client) PullAll(ctx context.Context, endpoint string) ([]model.MatchRecord, error) {
	if endpoint == "" {
		return nil, ErrNoEndpoint
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		metrics.RecordSyncPullFailure()
		return nil, fmt.Errorf("%w: %w", ErrPullFailed, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordSyncPullFailure()
		return nil, fmt.Errorf("%w: %w", ErrPullFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordSyncPullFailure()
		return nil, fmt.Errorf("%w: unexpected status %d", ErrPullFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordSyncPullFailure()
		return nil, fmt.Errorf("%w: read body: %w", ErrPullFailed, err)
	}

	var records []model.MatchRecord
	if err := json.Unmarshal(body, &records); err != nil {
		metrics.RecordSyncPullFailure()
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	metrics.RecordSyncPull()
	c.log.Debug(ctx, "records pulled", logger.Int("count", len(records)))
	return records, nil
}
