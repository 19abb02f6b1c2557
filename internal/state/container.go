// Package state implements the single source of truth for application
// state: a container holding the current snapshot, mutated only through a
// closed set of named operations and persisted after every accepted one.
package state

import (
	"context"
	"sync"
	"time"

	"github.com/okian/scoutbase/internal/domain/model"
	"github.com/okian/scoutbase/pkg/logger"
	"github.com/okian/scoutbase/pkg/metrics"
)

// Saver durably stores a snapshot. The container calls it synchronously
// inside Dispatch so the in-memory and durable copies never disagree for
// longer than the write itself.
type Saver interface {
	Save(ctx context.Context, s model.Snapshot) error
}

// Listener receives the new snapshot after every accepted dispatch.
type Listener func(s model.Snapshot)

// Container owns the snapshot. All mutations go through Dispatch, which
// serializes them behind one mutex: there is exactly one logical writer.
type Container struct {
	mu           sync.Mutex
	snap         model.Snapshot
	saver        Saver
	log          logger.Logger
	listeners    map[int]Listener
	nextListener int
}

// Option applies a configuration option to the Container.
type Option func(*Container)

// WithInitial sets the starting snapshot, typically the one loaded from the
// persistence adapter.
func WithInitial(s model.Snapshot) Option {
	return func(c *Container) {
		c.snap = s.Clone()
	}
}

// WithSaver sets the durable store written after every accepted dispatch.
func WithSaver(saver Saver) Option {
	return func(c *Container) {
		c.saver = saver
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(c *Container) {
		if log != nil {
			c.log = log
		}
	}
}

// New constructs a Container. Without options it starts from the default
// snapshot, persists nowhere, and logs through the global logger.
func New(opts ...Option) *Container {
	c := &Container{
		snap:      model.DefaultSnapshot(),
		listeners: make(map[int]Listener),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.log == nil {
		c.log = logger.Get()
	}

	return c
}

// Snapshot returns a deep copy of the current state.
func (c *Container) Snapshot() model.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap.Clone()
}

// Dispatch applies one named operation. On validation failure the state is
// left unchanged and the error is returned to the caller. On success the
// new snapshot is persisted (write failures are logged and swallowed) and
// all subscribers are notified synchronously before Dispatch returns.
func (c *Container) Dispatch(ctx context.Context, op Operation) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := op.apply(c.snap.Clone())
	if err != nil {
		metrics.RecordDispatchError(op.Name())
		return err
	}
	c.snap = next
	metrics.RecordDispatch(op.Name())
	c.updateGauges()

	if c.saver != nil {
		start := time.Now()
		if err := c.saver.Save(ctx, c.snap); err != nil {
			// Local state stays authoritative; a failed write is not fatal
			// and is not retried.
			metrics.RecordSaveError()
			c.log.Warn(ctx, "snapshot save failed",
				logger.String("op", op.Name()),
				logger.Error(err),
			)
		}
		metrics.RecordSaveDuration(float64(time.Since(start).Milliseconds()))
	}

	if len(c.listeners) > 0 {
		view := c.snap.Clone()
		for _, fn := range c.listeners {
			fn(view)
		}
	}

	return nil
}

// Subscribe registers a listener called synchronously after every accepted
// dispatch, while the dispatch lock is held. Listeners must not call
// Dispatch, Subscribe, or unsubscribe from inside the callback. The
// returned function unsubscribes and is safe to call more than once.
func (c *Container) Subscribe(fn Listener) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextListener
	c.nextListener++
	c.listeners[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

func (c *Container) updateGauges() {
	metrics.UpdateRecordCount(len(c.snap.Records))
	metrics.UpdateFieldCount(len(c.snap.Schema))
	teams := make(map[string]struct{}, len(c.snap.Records))
	for _, r := range c.snap.Records {
		teams[r.TeamNumber] = struct{}{}
	}
	metrics.UpdateTeamCount(len(teams))
}
