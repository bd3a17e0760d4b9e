package cache

import (
	"context"
	"strings"
	"time"

	"github.com/paperstack/paperstack/internal/config"
	"github.com/paperstack/paperstack/internal/logger"
	goCache "github.com/patrickmn/go-cache"
)

// DefaultExpiration is the default expiration time for cache entries
const DefaultExpiration = 30 * time.Minute

// DefaultCleanupInterval is how often expired items are removed from the cache
const DefaultCleanupInterval = 1 * time.Hour

// InMemoryCache implements the Cache interface using github.com/patrickmn/go-cache
type InMemoryCache struct {
	cache   *goCache.Cache
	enabled bool
	logger  *logger.Logger
}

// NewInMemoryCache creates a cache sized by the cache config section
func NewInMemoryCache(cfg *config.Configuration, logger *logger.Logger) Cache {
	expiration := cfg.Cache.DefaultExpiration
	if expiration <= 0 {
		expiration = DefaultExpiration
	}
	cleanup := cfg.Cache.CleanupInterval
	if cleanup <= 0 {
		cleanup = DefaultCleanupInterval
	}

	logger.Infow("initializing cache", "enabled", cfg.Cache.Enabled, "expiration", expiration)

	return &InMemoryCache{
		cache:   goCache.New(expiration, cleanup),
		enabled: cfg.Cache.Enabled,
		logger:  logger,
	}
}

// Get retrieves a value from the cache
func (c *InMemoryCache) Get(ctx context.Context, key string) (interface{}, bool) {
	if !c.enabled {
		return nil, false
	}
	span := StartCacheSpan(ctx, "inmemory", "get", map[string]interface{}{"key": key})
	defer FinishSpan(span)

	return c.cache.Get(key)
}

// Set adds a value to the cache with the specified expiration
func (c *InMemoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) {
	if !c.enabled {
		return
	}
	span := StartCacheSpan(ctx, "inmemory", "set", map[string]interface{}{"key": key})
	defer FinishSpan(span)

	c.cache.Set(key, value, expiration)
}

// Delete removes a key from the cache
func (c *InMemoryCache) Delete(_ context.Context, key string) {
	if !c.enabled {
		return
	}
	c.cache.Delete(key)
}

// DeleteByPrefix removes all keys with the given prefix
func (c *InMemoryCache) DeleteByPrefix(_ context.Context, prefix string) {
	if !c.enabled {
		return
	}
	for k := range c.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			c.cache.Delete(k)
		}
	}
}

// Flush removes all items from the cache
func (c *InMemoryCache) Flush(_ context.Context) {
	if !c.enabled {
		return
	}
	c.cache.Flush()
}
