package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kvk/backend/internal/infrastructure/config"
)

// RedisOptionCache implements OptionCache using Redis
type RedisOptionCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	logger     *zap.Logger
}

// RedisOptionCacheOption is a functional option for configuring the cache
type RedisOptionCacheOption func(*RedisOptionCache)

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisOptionCacheOption {
	return func(c *RedisOptionCache) {
		c.logger = logger
	}
}

// NewRedisOptionCache creates a new Redis-based option cache
func NewRedisOptionCache(cfg config.RedisConfig, opts ...RedisOptionCacheOption) (*RedisOptionCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisOptionCache{
		client:     client,
		ownsClient: true,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache, nil
}

// NewRedisOptionCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisOptionCacheWithClient(client *redis.Client, opts ...RedisOptionCacheOption) *RedisOptionCache {
	cache := &RedisOptionCache{
		client:     client,
		ownsClient: false,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

// Get retrieves a cached listing
func (c *RedisOptionCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		c.logger.Debug("cache miss for hierarchy listing", zap.String("key", key))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing from cache: %w", err)
	}
	return data, nil
}

// Set stores a listing
func (c *RedisOptionCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set listing in cache: %w", err)
	}
	return nil
}

// Delete removes a cached listing
func (c *RedisOptionCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete listing from cache: %w", err)
	}
	return nil
}

// Close releases the Redis client if this cache owns it
func (c *RedisOptionCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// Ensure RedisOptionCache implements OptionCache
var _ OptionCache = (*RedisOptionCache)(nil)
