package cart

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/merchspace/storefront/pkg/errors"

	"github.com/merchspace/storefront/internal/domain"
)

// stubProducts serves a fixed product set without hitting the catalog.
type stubProducts struct {
	products map[int64]domain.Product
}

func (s *stubProducts) Product(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, apperrors.NotFound("product", "unknown")
	}
	return &p, nil
}

func newTestService() *Service {
	products := &stubProducts{products: map[int64]domain.Product{
		1: {ID: 1, Title: "Mug", Price: 9.5},
		2: {ID: 2, Title: "Shirt", Price: 19.99},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(NewMemoryRepository(), products, logger)
}

func TestGet_EmptyCart(t *testing.T) {
	svc := newTestService()

	cart, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cart.UserID)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total())
}

func TestAddItem(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Mug", cart.Items[0].Product.Title)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	// Adding the same product again merges into the existing line.
	cart, err = svc.AddItem(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	cart, err = svc.AddItem(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.InDelta(t, 2*9.5+19.99, cart.Total(), 1e-9)
	assert.Equal(t, 3, cart.ItemCount())
}

func TestAddItem_UnknownProduct(t *testing.T) {
	svc := newTestService()

	_, err := svc.AddItem(context.Background(), 1, 999)
	assert.Error(t, err)
}

func TestRemoveItem(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, 1, 1)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	cart, err = svc.RemoveItem(ctx, 1, 1)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// Removing from an empty cart is a no-op.
	cart, err = svc.RemoveItem(ctx, 1, 1)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartsAreScopedPerUser(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, 1)
	require.NoError(t, err)

	other, err := svc.Get(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, other.Items)
}

func TestClear(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 1, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, 1))

	cart, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
