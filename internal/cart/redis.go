package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/merchspace/storefront/internal/domain"
)

const redisKeyPrefix = "cart:"

// RedisRepository keeps carts in Redis so they survive restarts. Carts expire
// after the configured TTL of inactivity; Save refreshes the TTL.
type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Repository = (*RedisRepository)(nil)

// NewRedisRepository wraps an existing Redis client. ttl of 0 keeps carts
// until explicitly cleared.
func NewRedisRepository(client *redis.Client, ttl time.Duration) *RedisRepository {
	return &RedisRepository{client: client, ttl: ttl}
}

func (r *RedisRepository) Get(ctx context.Context, userID int64) (*domain.Cart, error) {
	payload, err := r.client.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return &domain.Cart{UserID: userID, Items: []domain.CartItem{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(payload, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	return &cart, nil
}

func (r *RedisRepository) Save(ctx context.Context, cart *domain.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := r.client.Set(ctx, key(cart.UserID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("store cart: %w", err)
	}
	return nil
}

func (r *RedisRepository) Clear(ctx context.Context, userID int64) error {
	if err := r.client.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func key(userID int64) string {
	return fmt.Sprintf("%s%d", redisKeyPrefix, userID)
}
