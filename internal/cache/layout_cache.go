// Package cache keeps recently loaded layouts in Redis so reopening a layout
// in the editor does not reload every item from MySQL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/venue-layout-editor/internal/model"
)

const defaultLayoutTTL = 10 * time.Minute

// LayoutCache stores full layouts as JSON under layout:<id>. Every failure
// is logged and reported as a miss; callers fall back to the store.
type LayoutCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *slog.Logger
}

// NewLayoutCache builds a cache. A nil client yields a cache that never
// hits, which is what the service runs with when Redis is unavailable.
func NewLayoutCache(rdb *redis.Client, ttl time.Duration, log *slog.Logger) *LayoutCache {
	if ttl <= 0 {
		ttl = defaultLayoutTTL
	}
	if log == nil {
		log = slog.Default()
	}
	return &LayoutCache{rdb: rdb, ttl: ttl, log: log.With("component", "layout_cache")}
}

// Key returns the Redis key for a layout id.
func Key(id uint64) string {
	return "layout:" + strconv.FormatUint(id, 10)
}

// Get returns the cached layout, if any.
func (c *LayoutCache) Get(ctx context.Context, id uint64) (*model.Layout, bool) {
	if c.rdb == nil {
		return nil, false
	}
	bs, err := c.rdb.Get(ctx, Key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("cache get failed", "layout_id", id, "err", err)
		}
		return nil, false
	}
	var l model.Layout
	if err := json.Unmarshal(bs, &l); err != nil {
		c.log.Warn("cache entry corrupt", "layout_id", id, "err", err)
		c.Invalidate(ctx, id)
		return nil, false
	}
	return &l, true
}

// Set stores the layout with the configured TTL.
func (c *LayoutCache) Set(ctx context.Context, l *model.Layout) {
	if c.rdb == nil || l == nil || l.ID == 0 {
		return
	}
	bs, err := json.Marshal(l)
	if err != nil {
		c.log.Warn("cache encode failed", "layout_id", l.ID, "err", err)
		return
	}
	if err := c.rdb.SetEx(ctx, Key(l.ID), bs, c.ttl).Err(); err != nil {
		c.log.Warn("cache set failed", "layout_id", l.ID, "err", err)
	}
}

// Invalidate drops the cached copy of a layout.
func (c *LayoutCache) Invalidate(ctx context.Context, id uint64) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, Key(id)).Err(); err != nil {
		c.log.Warn("cache invalidate failed", "layout_id", id, "err", err)
	}
}
