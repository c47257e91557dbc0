package catalog

import (
	"context"
	"sync"
	"time"

	"goods-receiving/feature/catalog/models"

	"golang.org/x/sync/singleflight"
)

// snapshot is one immutable view of the catalog.
type snapshot struct {
	items []models.InventoryItem
	built time.Time
}

// SnapshotCache serves a short-lived in-memory view of the catalog to the
// matcher so that initializing a session does not hit the store once per
// line item. Uses singleflight to prevent rebuild stampedes.
type SnapshotCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	current *snapshot
	sf      singleflight.Group
	repo    *Repository
}

// NewSnapshotCache creates a cache over the repository. A zero TTL disables
// caching and every call reads through.
func NewSnapshotCache(repo *Repository, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{repo: repo, ttl: ttl}
}

// Items returns the current catalog snapshot, rebuilding it when expired.
func (c *SnapshotCache) Items(ctx context.Context) ([]models.InventoryItem, error) {
	if c.ttl > 0 {
		c.mu.RLock()
		cur := c.current
		c.mu.RUnlock()

		if cur != nil && time.Since(cur.built) <= c.ttl {
			return cur.items, nil
		}
	}

	result, err, _ := c.sf.Do("catalog", func() (any, error) {
		// Double-check after acquiring the singleflight slot.
		c.mu.RLock()
		cur := c.current
		c.mu.RUnlock()
		if c.ttl > 0 && cur != nil && time.Since(cur.built) <= c.ttl {
			return cur.items, nil
		}

		items, err := c.repo.ListItems(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.current = &snapshot{items: items, built: time.Now()}
		c.mu.Unlock()

		return items, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]models.InventoryItem), nil
}

// Invalidate drops the snapshot so the next read rebuilds it. Called after
// every committed stock change.
func (c *SnapshotCache) Invalidate() {
	c.mu.Lock()
	c.current = nil
	c.mu.Unlock()
}
