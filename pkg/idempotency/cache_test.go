package idempotency

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetMissOnUnknownAndEmptyKey(t *testing.T) {
	c := New()
	_, ok := c.Get("nope")
	require.False(t, ok)
	_, ok = c.Get("")
	require.False(t, ok)
}

func TestPutGetRoundTrip(t *testing.T) {
	c := New()
	c.Put("k1", map[string]any{"status": "submitted", "pairId": int64(3)})

	got, ok := c.Get("k1")
	require.True(t, ok)
	require.Equal(t, "submitted", got["status"])
	require.EqualValues(t, 3, got["pairId"])
}

func TestEmptyKeyPutIsNoop(t *testing.T) {
	c := New()
	c.Put("", map[string]any{"status": "submitted"})
	require.Zero(t, c.Len())
}

func TestLazyExpiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	clock := func() time.Time { return now }
	c := New(WithClock(clock))

	c.Put("k1", map[string]any{"status": "submitted"})

	// Exactly at TTL the entry is still valid.
	now = now.Add(3600 * time.Second)
	_, ok := c.Get("k1")
	require.True(t, ok)

	c.Put("k2", map[string]any{"status": "submitted"})
	now = now.Add(3601 * time.Second)
	_, ok = c.Get("k2")
	require.False(t, ok)
	// Expired entry was evicted on access.
	require.Equal(t, 1, c.Len())
}

func TestPutOverwrites(t *testing.T) {
	c := New()
	c.Put("k", map[string]any{"attempt": "first"})
	c.Put("k", map[string]any{"attempt": "second"})

	got, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, "second", got["attempt"])
}

func TestCachedPayloadIsIsolated(t *testing.T) {
	c := New()
	original := map[string]any{"status": "submitted"}
	c.Put("k", original)
	original["status"] = "mutated"

	got, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, "submitted", got["status"])

	// Mutating a returned copy must not bleed into later reads.
	got["status"] = "tampered"
	again, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, "submitted", again["status"])
}

func TestConcurrentAccessDistinctKeys(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", n)
			c.Put(key, map[string]any{"n": int64(n)})
			got, ok := c.Get(key)
			require.True(t, ok)
			require.EqualValues(t, n, got["n"])
		}(i)
	}
	wg.Wait()
	require.Equal(t, 64, c.Len())
}
