package cache

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/venue-layout-editor/internal/model"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "layout:42", Key(42))
}

func TestLayoutCache_NilClientNeverHits(t *testing.T) {
	c := NewLayoutCache(nil, 0, nil)
	assert.Equal(t, defaultLayoutTTL, c.ttl)

	ctx := context.Background()
	c.Set(ctx, &model.Layout{ID: 1, Name: "Main"})
	c.Invalidate(ctx, 1)
	_, ok := c.Get(ctx, 1)
	assert.False(t, ok)
}

func TestLayoutCache_UnreachableRedisIsAMiss(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	c := NewLayoutCache(rdb, time.Minute, log)

	ctx := context.Background()
	c.Set(ctx, &model.Layout{ID: 5, Name: "Main"})
	_, ok := c.Get(ctx, 5)

	assert.False(t, ok)
	assert.Contains(t, buf.String(), "cache set failed")
	assert.Contains(t, buf.String(), "cache get failed")
	assert.Contains(t, buf.String(), "component=layout_cache")
}
