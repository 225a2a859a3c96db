package directory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cvent/delivery-cluster/internal/metrics"
	"github.com/cvent/delivery-cluster/internal/util/retry"
)

// WithRetry retries failed lookups with exponential backoff.
// ErrNotFound and fatal errors are returned at once, as is any error once
// ctx is done. A per-attempt timeout set below the decorator is retried.
func WithRetry(d Directory, opts ...retry.Option) Directory {
	return Func(func(ctx context.Context, name string) (*NodeRecord, error) {
		return retry.Value(ctx, func() (*NodeRecord, error) {
			rec, err := d.GetNodeRecord(ctx, name)
			if err != nil && (errors.Is(err, ErrNotFound) || ctx.Err() != nil) {
				return nil, retry.Fatal(err)
			}
			return rec, err
		}, opts...)
	})
}

// cached memoizes successful lookups. Failures are not cached.
type cached struct {
	next Directory

	mu      sync.Mutex
	records map[string]NodeRecord
}

// WithCache memoizes successful lookups for the lifetime of the returned directory.
func WithCache(d Directory) Directory {
	return &cached{next: d, records: make(map[string]NodeRecord)}
}

func (c *cached) GetNodeRecord(ctx context.Context, name string) (*NodeRecord, error) {
	c.mu.Lock()
	r, ok := c.records[name]
	c.mu.Unlock()
	if ok {
		return &r, nil
	}

	rec, err := c.next.GetNodeRecord(ctx, name)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.records[name] = *rec
	c.mu.Unlock()

	out := *rec
	return &out, nil
}

// WithMetrics records the outcome and latency of every lookup under the driver label.
func WithMetrics(d Directory, driver string, m *metrics.Metrics) Directory {
	if m == nil {
		return d
	}
	return Func(func(ctx context.Context, name string) (*NodeRecord, error) {
		start := time.Now()
		rec, err := d.GetNodeRecord(ctx, name)

		outcome := metrics.OutcomeOK
		switch {
		case errors.Is(err, ErrNotFound):
			outcome = metrics.OutcomeNotFound
		case err != nil:
			outcome = metrics.OutcomeError
		}
		m.ObserveLookup(driver, outcome, time.Since(start))

		return rec, err
	})
}
