package cache

import (
	"go.uber.org/zap"

	"github.com/kvk/backend/internal/infrastructure/config"
)

// OptionCacheFactory creates option caches based on configuration
type OptionCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// OptionCacheFactoryOption is a functional option for configuring the factory
type OptionCacheFactoryOption func(*OptionCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) OptionCacheFactoryOption {
	return func(f *OptionCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) OptionCacheFactoryOption {
	return func(f *OptionCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewOptionCacheFactory creates a new factory
func NewOptionCacheFactory(cfg config.RedisConfig, opts ...OptionCacheFactoryOption) *OptionCacheFactory {
	f := &OptionCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateCache tries Redis first and falls back to the in-memory cache when
// Redis is unavailable and fallback is allowed.
func (f *OptionCacheFactory) CreateCache() (OptionCache, error) {
	cache, err := NewRedisOptionCache(f.redisConfig, WithCacheLogger(f.logger))
	if err == nil {
		f.logger.Info("using Redis hierarchy option cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, err
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory hierarchy option cache",
		zap.Error(err))
	return NewInMemoryOptionCache(), nil
}
