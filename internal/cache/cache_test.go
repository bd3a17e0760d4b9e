package cache

import (
	"context"
	"testing"
	"time"

	"github.com/paperstack/paperstack/internal/config"
	"github.com/paperstack/paperstack/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestInMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(config.GetDefaultConfig(), logger.NewNoopLogger())

	key := GenerateKey(PrefixProfile, "user_1")
	assert.Equal(t, "profile:v1:user_1", key)

	c.Set(ctx, key, "value", time.Minute)
	got, ok := c.Get(ctx, key)
	assert.True(t, ok)
	assert.Equal(t, "value", got)

	c.Set(ctx, GenerateKey(PrefixProfile, "user_2"), "other", time.Minute)
	c.DeleteByPrefix(ctx, PrefixProfile)
	_, ok = c.Get(ctx, key)
	assert.False(t, ok)
}

func TestDisabledCacheNeverHits(t *testing.T) {
	ctx := context.Background()
	cfg := config.GetDefaultConfig()
	cfg.Cache.Enabled = false
	c := NewInMemoryCache(cfg, logger.NewNoopLogger())

	c.Set(ctx, "k", "v", time.Minute)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestGetAs(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(config.GetDefaultConfig(), logger.NewNoopLogger())

	c.Set(ctx, "count", 3, time.Minute)

	n, ok := GetAs[int](ctx, c, "count")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = GetAs[string](ctx, c, "count")
	assert.False(t, ok)

	_, ok = GetAs[int](ctx, c, "missing")
	assert.False(t, ok)
}
