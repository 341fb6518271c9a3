package wordcloud

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/amclaughlin2005/ai-text-analysis-platform-sub000/pkg/logger"
)

// port 1 is never listening, so every call hits a dial error
func newUnreachableRedisCache(t *testing.T) *RedisResultCache {
	t.Helper()
	config := DefaultRedisCacheConfig()
	config.Addr = "127.0.0.1:1"
	cache := NewRedisResultCache(config, logger.NewDefaultLogger("test"))
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestRedisCache_DefaultConfig(t *testing.T) {
	config := DefaultRedisCacheConfig()

	if config.Addr != "localhost:6379" {
		t.Errorf("Addr = %q", config.Addr)
	}
	if config.TTL != time.Hour {
		t.Errorf("TTL = %v, want 1h", config.TTL)
	}
	if config.KeyPrefix == "" {
		t.Error("key prefix must not be empty, other tenants share the keyspace")
	}
}

func TestRedisCache_KeyNamespacing(t *testing.T) {
	cache := newUnreachableRedisCache(t)
	id := uuid.New()

	if got := cache.resultKey("abc"); got != cache.config.KeyPrefix+"abc" {
		t.Errorf("resultKey = %q", got)
	}
	idx := cache.indexKey(id)
	if idx == cache.resultKey(id.String()) {
		t.Error("index keys must not collide with result keys")
	}
}

func TestRedisCache_UnavailableDegradesToMiss(t *testing.T) {
	cache := newUnreachableRedisCache(t)
	ctx := context.Background()
	id := uuid.New()

	cache.Put(ctx, "k1", testResult(id))
	if _, ok := cache.Get(ctx, "k1"); ok {
		t.Error("an unreachable backend must read as a miss, not a hit")
	}

	// invalidation and sweep must not panic either
	cache.Invalidate(ctx, &id)
	cache.Invalidate(ctx, nil)
	cache.Sweep(ctx)
}
