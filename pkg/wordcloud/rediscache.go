package wordcloud

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/amclaughlin2005/ai-text-analysis-platform-sub000/pkg/logger"
)

// RedisCacheConfig contains configuration for the Redis-backed result cache
type RedisCacheConfig struct {
	Addr         string `yaml:"addr" env:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `yaml:"password" env:"REDIS_PASSWORD" default:""`
	DB           int    `yaml:"db" env:"REDIS_DB" default:"0"`
	PoolSize     int    `yaml:"pool_size" default:"10"`
	MinIdleConns int    `yaml:"min_idle_conns" default:"2"`

	TTL       time.Duration `yaml:"ttl" default:"1h"`
	KeyPrefix string        `yaml:"key_prefix" default:"wordcloud:result:"`
}

// DefaultRedisCacheConfig returns the default Redis cache configuration
func DefaultRedisCacheConfig() *RedisCacheConfig {
	return &RedisCacheConfig{
		Addr:         "localhost:6379",
		DB:           0,
		PoolSize:     10,
		MinIdleConns: 2,
		TTL:          1 * time.Hour,
		KeyPrefix:    "wordcloud:result:",
	}
}

// RedisResultCache is a ResultCache backed by Redis, for deployments running
// more than one engine replica. TTL expiry is delegated to Redis; dataset
// invalidation uses a per-dataset index set so it never scans the keyspace.
// All failures degrade to cache misses.
type RedisResultCache struct {
	config *RedisCacheConfig
	client *redis.Client
	log    *logger.Logger
}

// NewRedisResultCache creates a Redis-backed result cache
func NewRedisResultCache(config *RedisCacheConfig, log *logger.Logger) *RedisResultCache {
	if config == nil {
		config = DefaultRedisCacheConfig()
	}
	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     config.PoolSize,
		MinIdleConns: config.MinIdleConns,
	})
	return &RedisResultCache{config: config, client: client, log: log}
}

func (c *RedisResultCache) resultKey(key string) string {
	return c.config.KeyPrefix + key
}

func (c *RedisResultCache) indexKey(datasetID uuid.UUID) string {
	return c.config.KeyPrefix + "dataset:" + datasetID.String()
}

// Get fetches and decodes the cached result for key
func (c *RedisResultCache) Get(ctx context.Context, key string) (*WordCloudResult, bool) {
	data, err := c.client.Get(ctx, c.resultKey(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.WithField("error", err.Error()).Warn("redis get failed, treating as miss")
		}
		return nil, false
	}
	var result WordCloudResult
	if err := json.Unmarshal(data, &result); err != nil {
		c.log.WithField("error", err.Error()).Warn("corrupt cached result, treating as miss")
		return nil, false
	}
	return &result, true
}

// Put stores the result under key and records it in the per-dataset indexes
func (c *RedisResultCache) Put(ctx context.Context, key string, result *WordCloudResult) {
	if result == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		c.log.WithField("error", err.Error()).Warn("failed to encode result for cache")
		return
	}
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, c.resultKey(key), data, c.config.TTL)
	for _, id := range result.DatasetIDs {
		idx := c.indexKey(id)
		pipe.SAdd(ctx, idx, c.resultKey(key))
		// index lives slightly longer than its members
		pipe.Expire(ctx, idx, c.config.TTL+time.Minute)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.WithField("error", err.Error()).Warn("redis put failed")
	}
}

// Invalidate removes entries referencing datasetID, or every cached result
// when datasetID is nil
func (c *RedisResultCache) Invalidate(ctx context.Context, datasetID *uuid.UUID) {
	if datasetID != nil {
		idx := c.indexKey(*datasetID)
		keys, err := c.client.SMembers(ctx, idx).Result()
		if err != nil {
			c.log.WithField("error", err.Error()).Warn("redis invalidate failed")
			return
		}
		if len(keys) > 0 {
			c.client.Del(ctx, keys...)
		}
		c.client.Del(ctx, idx)
		return
	}

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.config.KeyPrefix+"*", 500).Result()
		if err != nil {
			c.log.WithField("error", err.Error()).Warn("redis invalidate scan failed")
			return
		}
		if len(keys) > 0 {
			c.client.Del(ctx, keys...)
		}
		if next == 0 {
			return
		}
		cursor = next
	}
}

// Sweep is a no-op: Redis expires entries itself
func (c *RedisResultCache) Sweep(context.Context) {}

// Close releases the underlying client
func (c *RedisResultCache) Close() error {
	return c.client.Close()
}
