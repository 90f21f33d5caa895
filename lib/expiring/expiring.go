package expiring

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultWindow is how long a memoized result stays fresh unless
// configured otherwise.
const DefaultWindow = time.Minute

type entry[V any] struct {
	value     V
	err       error
	expiresAt time.Time
}

// Cache memoizes the results of keyed fetches for a fixed time window.
// Concurrent calls with the same key share a single in-flight fetch
// instead of issuing duplicates. There is no size bound and no eviction
// beyond overwrite-on-refresh; the key space is expected to stay small.
type Cache[V any] struct {
	window time.Duration
	group  singleflight.Group

	mu      sync.Mutex
	entries map[string]entry[V]
}

func New[V any](window time.Duration) *Cache[V] {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Cache[V]{
		window:  window,
		entries: map[string]entry[V]{},
	}
}

// Do returns the memoized result for key while it is fresh, otherwise it
// executes fetch and records the outcome. Errors are memoized the same
// way successes are. Cancelling the caller's context abandons its wait
// but does not cancel a fetch other callers may still be waiting on.
func (c *Cache[V]) Do(ctx context.Context, key string, fetch func(context.Context) (V, error)) (V, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && time.Now().Before(e.expiresAt) {
		c.mu.Unlock()
		return e.value, e.err
	}
	c.mu.Unlock()

	ch := c.group.DoChan(key, func() (any, error) {
		value, err := fetch(context.WithoutCancel(ctx))
		c.mu.Lock()
		c.entries[key] = entry[V]{
			value:     value,
			err:       err,
			expiresAt: time.Now().Add(c.window),
		}
		c.mu.Unlock()
		return value, err
	})

	var zero V
	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(V), nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
