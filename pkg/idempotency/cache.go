// Package idempotency provides an in-process cache mapping client-supplied
// idempotency keys to previously computed mutation results. It is a cache
// with TTL expiry, not a durable ledger: state does not survive a restart.
package idempotency

import (
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// DefaultTTL is how long a successful mutation result answers replays.
const DefaultTTL = time.Hour

type entry struct {
	createdAt time.Time
	payload   []byte
}

// Cache is safe for concurrent use across in-flight requests. Two concurrent
// requests with the same unseen key may both execute before either stores a
// result; the first to finish wins the cached slot. That race is accepted
// behaviour, not closed with a per-key lock.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	clock   func() time.Time
}

// Option customises a Cache.
type Option func(*Cache)

// WithClock overrides the time source (for tests).
func WithClock(clock func() time.Time) Option {
	return func(c *Cache) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithTTL overrides the entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// New constructs an empty cache. Build one per process and inject it; never
// hide it behind package state.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		ttl:     DefaultTTL,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached result for key, or ok=false when the key is empty,
// unknown, or expired. Expiry is checked lazily here; expired entries are
// evicted on access rather than swept.
func (c *Cache) Get(key string) (map[string]any, bool) {
	if key == "" {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.clock().Sub(e.createdAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	var result map[string]any
	if err := msgpack.Unmarshal(e.payload, &result); err != nil {
		delete(c.entries, key)
		return nil, false
	}
	return result, true
}

// Put stores result under key, unconditionally overwriting any previous
// entry. Callers only invoke Put after a successful mutation. The result is
// snapshotted through msgpack so later mutation of the caller's map cannot
// corrupt the cached payload.
func (c *Cache) Put(key string, result map[string]any) {
	if key == "" {
		return
	}
	payload, err := msgpack.Marshal(result)
	if err != nil {
		return
	}
	c.mu.Lock()
	c.entries[key] = entry{createdAt: c.clock(), payload: payload}
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
