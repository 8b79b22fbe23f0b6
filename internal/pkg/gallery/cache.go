package gallery

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmcfuji/studiosite/app/models"
	"github.com/dmcfuji/studiosite/internal/pkg/cache"
)

// Snapshot is a complete listing and the time it was taken
type Snapshot struct {
	Images    []models.GalleryImage `json:"images"`
	FetchedAt time.Time             `json:"fetched_at"`
}

// Cache stores the most recent snapshot. Implementations report misses with ok=false.
type Cache interface {
	Load(ctx context.Context) (*Snapshot, bool, error)
	Store(ctx context.Context, snap Snapshot) error
}

// RedisCache keeps the snapshot as JSON under a single key
type RedisCache struct {
	client    *redis.Client
	key       string
	retention time.Duration
}

// NewRedisCache stores snapshots under key. Retention bounds how long a stale snapshot may be
// served while Redis holds it; freshness is judged by FetchedAt, not by key expiry.
func NewRedisCache(client *redis.Client, key string, retention time.Duration) *RedisCache {
	return &RedisCache{client: client, key: key, retention: retention}
}

func (c *RedisCache) Load(ctx context.Context) (*Snapshot, bool, error) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if cache.IsMiss(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", c.key, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, false, fmt.Errorf("failed to decode %s: %w", c.key, err)
	}
	return &snap, true, nil
}

func (c *RedisCache) Store(ctx context.Context, snap Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, raw, c.retention).Err()
}

// MemoryCache is a process-local Cache used when Redis is not configured
type MemoryCache struct {
	mu   sync.RWMutex
	snap *Snapshot
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (c *MemoryCache) Load(context.Context) (*Snapshot, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snap == nil {
		return nil, false, nil
	}
	cp := *c.snap
	return &cp, true, nil
}

func (c *MemoryCache) Store(_ context.Context, snap Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = &snap
	return nil
}
