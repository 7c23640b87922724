package cart

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merchspace/storefront/internal/domain"
)

func newTestRedisRepository(t *testing.T, ttl time.Duration) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisRepository(client, ttl), mr
}

func TestRedisRepository_GetMissingCart(t *testing.T) {
	repo, _ := newTestRedisRepository(t, 0)

	cart, err := repo.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cart.UserID)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
}

func TestRedisRepository_SaveAndGet(t *testing.T) {
	repo, _ := newTestRedisRepository(t, 0)
	ctx := context.Background()

	cart := &domain.Cart{UserID: 1}
	cart.AddProduct(domain.Product{ID: 1, Title: "Mug", Price: 9.5}, 2)
	require.NoError(t, repo.Save(ctx, cart))

	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Mug", got.Items[0].Product.Title)
	assert.Equal(t, 2, got.Items[0].Quantity)
}

func TestRedisRepository_TTLExpiry(t *testing.T) {
	repo, mr := newTestRedisRepository(t, time.Minute)
	ctx := context.Background()

	cart := &domain.Cart{UserID: 1}
	cart.AddProduct(domain.Product{ID: 1, Title: "Mug", Price: 9.5}, 1)
	require.NoError(t, repo.Save(ctx, cart))

	mr.FastForward(2 * time.Minute)

	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, got.Items, "expired cart reads as empty")
}

func TestRedisRepository_Clear(t *testing.T) {
	repo, _ := newTestRedisRepository(t, 0)
	ctx := context.Background()

	cart := &domain.Cart{UserID: 1}
	cart.AddProduct(domain.Product{ID: 1, Title: "Mug", Price: 9.5}, 1)
	require.NoError(t, repo.Save(ctx, cart))

	require.NoError(t, repo.Clear(ctx, 1))

	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, got.Items)

	assert.NoError(t, repo.Clear(ctx, 1), "clearing an absent cart is not an error")
}
