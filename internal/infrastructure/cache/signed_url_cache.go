package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	catalogapp "github.com/orderflow/backend/internal/application/catalog"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Ensure RedisSignedURLCache implements SignedURLCache
var _ catalogapp.SignedURLCache = (*RedisSignedURLCache)(nil)

type cachedURL struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RedisSignedURLCache caches presigned download URLs in Redis.
// Entries are stored with a TTL shorter than the URL's own expiry so a
// cached URL always has usable lifetime left when handed out.
type RedisSignedURLCache struct {
	client    *redis.Client
	keyPrefix string
	logger    *zap.Logger
}

// SignedURLCacheOption is a functional option for configuring RedisSignedURLCache
type SignedURLCacheOption func(*RedisSignedURLCache)

// WithSignedURLCacheLogger sets the logger for the cache
func WithSignedURLCacheLogger(logger *zap.Logger) SignedURLCacheOption {
	return func(c *RedisSignedURLCache) {
		c.logger = logger
	}
}

// WithSignedURLKeyPrefix sets the key prefix for cache entries
func WithSignedURLKeyPrefix(prefix string) SignedURLCacheOption {
	return func(c *RedisSignedURLCache) {
		c.keyPrefix = prefix
	}
}

// NewRedisSignedURLCache creates a new signed URL cache backed by Redis
func NewRedisSignedURLCache(client *redis.Client, opts ...SignedURLCacheOption) *RedisSignedURLCache {
	cache := &RedisSignedURLCache{
		client:    client,
		keyPrefix: "orderflow:signed-url:",
		logger:    zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// Get looks up a cached URL for the given storage key.
// ok is false on a cache miss.
func (c *RedisSignedURLCache) Get(ctx context.Context, storageKey string) (string, time.Time, bool, error) {
	data, err := c.client.Get(ctx, c.keyPrefix+storageKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return "", time.Time{}, false, nil
		}
		return "", time.Time{}, false, fmt.Errorf("failed to read signed URL cache: %w", err)
	}

	var cached cachedURL
	if err := json.Unmarshal(data, &cached); err != nil {
		c.logger.Warn("Dropping corrupt signed URL cache entry",
			zap.String("storage_key", storageKey),
			zap.Error(err))
		_ = c.client.Del(ctx, c.keyPrefix+storageKey).Err()
		return "", time.Time{}, false, nil
	}

	return cached.URL, cached.ExpiresAt, true, nil
}

// Set caches a presigned URL. The cache TTL is 80% of the time remaining
// until the URL expires, so cached entries never outlive their usefulness.
func (c *RedisSignedURLCache) Set(ctx context.Context, storageKey, url string, expiresAt time.Time) error {
	remaining := time.Until(expiresAt)
	if remaining <= 0 {
		return nil
	}
	ttl := remaining * 8 / 10

	data, err := json.Marshal(cachedURL{URL: url, ExpiresAt: expiresAt})
	if err != nil {
		return fmt.Errorf("failed to marshal signed URL: %w", err)
	}

	if err := c.client.Set(ctx, c.keyPrefix+storageKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache signed URL: %w", err)
	}

	return nil
}

// Invalidate removes a cached URL, e.g. after the underlying object is deleted
func (c *RedisSignedURLCache) Invalidate(ctx context.Context, storageKey string) error {
	return c.client.Del(ctx, c.keyPrefix+storageKey).Err()
}
