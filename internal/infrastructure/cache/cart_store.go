package cache

import (
	"context"
	"fmt"
	"time"

	orderingapp "github.com/orderflow/backend/internal/application/ordering"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// defaultCartTTL is how long an untouched cart survives
const defaultCartTTL = 30 * 24 * time.Hour

// Ensure RedisCartStore implements the application port
var _ orderingapp.CartStore = (*RedisCartStore)(nil)

// RedisCartStore keeps per-user shopping carts in Redis hashes.
// Each cart is a hash of product ID to quantity; the hash TTL is refreshed
// on every write so active carts never expire.
type RedisCartStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// CartStoreOption is a functional option for configuring RedisCartStore
type CartStoreOption func(*RedisCartStore)

// WithCartTTL sets a custom cart expiry
func WithCartTTL(ttl time.Duration) CartStoreOption {
	return func(s *RedisCartStore) {
		s.ttl = ttl
	}
}

// WithCartKeyPrefix sets the key prefix for cart hashes
func WithCartKeyPrefix(prefix string) CartStoreOption {
	return func(s *RedisCartStore) {
		s.keyPrefix = prefix
	}
}

// NewRedisCartStore creates a new cart store backed by Redis
func NewRedisCartStore(client *redis.Client, opts ...CartStoreOption) *RedisCartStore {
	store := &RedisCartStore{
		client:    client,
		keyPrefix: "orderflow:cart:",
		ttl:       defaultCartTTL,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *RedisCartStore) key(userEmail string) string {
	return s.keyPrefix + userEmail
}

// Get returns the cart contents as product ID to quantity
func (s *RedisCartStore) Get(ctx context.Context, userEmail string) (map[string]decimal.Decimal, error) {
	raw, err := s.client.HGetAll(ctx, s.key(userEmail)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	items := make(map[string]decimal.Decimal, len(raw))
	for productID, qty := range raw {
		parsed, err := decimal.NewFromString(qty)
		if err != nil {
			// Skip entries that cannot be parsed rather than failing the whole cart
			continue
		}
		items[productID] = parsed
	}
	return items, nil
}

// SetItem sets the quantity for a product, adding it if absent
func (s *RedisCartStore) SetItem(ctx context.Context, userEmail, productID string, quantity decimal.Decimal) error {
	key := s.key(userEmail)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, productID, quantity.String())
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to update cart: %w", err)
	}
	return nil
}

// RemoveItem removes a product from the cart
func (s *RedisCartStore) RemoveItem(ctx context.Context, userEmail, productID string) error {
	if err := s.client.HDel(ctx, s.key(userEmail), productID).Err(); err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

// Clear empties the cart
func (s *RedisCartStore) Clear(ctx context.Context, userEmail string) error {
	if err := s.client.Del(ctx, s.key(userEmail)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
