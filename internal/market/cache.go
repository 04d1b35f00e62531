package market

import (
	"time"

	"github.com/dgraph-io/ristretto"
)

const latestKey = "fno:latest"

// snapshotCache keeps the last good snapshot for a bounded time.
type snapshotCache struct {
	c   *ristretto.Cache
	ttl time.Duration
}

func newSnapshotCache(ttl time.Duration) (*snapshotCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e3,
		MaxCost:     1 << 10,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &snapshotCache{c: c, ttl: ttl}, nil
}

func (c *snapshotCache) get() (Snapshot, bool) {
	v, ok := c.c.Get(latestKey)
	if !ok {
		return Snapshot{}, false
	}
	snap, ok := v.(Snapshot)
	return snap, ok
}

func (c *snapshotCache) set(snap Snapshot) {
	c.c.SetWithTTL(latestKey, snap, 1, c.ttl)
	c.c.Wait()
}

func (c *snapshotCache) close() { c.c.Close() }
