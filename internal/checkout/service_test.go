package checkout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/merchspace/storefront/pkg/errors"

	"github.com/merchspace/storefront/internal/cart"
	"github.com/merchspace/storefront/internal/domain"
	"github.com/merchspace/storefront/internal/event"
)

type stubProducts struct{}

func (stubProducts) Product(_ context.Context, id int64) (*domain.Product, error) {
	return &domain.Product{ID: id, Title: "Mug", Price: 9.5}, nil
}

func newTestServices() (*Service, *cart.Service) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	carts := cart.NewService(cart.NewMemoryRepository(), stubProducts{}, logger)
	return NewService(carts, event.NoopPublisher{}, logger), carts
}

func TestCheckout(t *testing.T) {
	svc, carts := newTestServices()
	ctx := context.Background()

	_, err := carts.AddItem(ctx, 1, 10)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, 1, 10)
	require.NoError(t, err)

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	order, err := svc.Checkout(ctx, 1)
	require.NoError(t, err)

	_, parseErr := uuid.Parse(order.ID)
	assert.NoError(t, parseErr, "order id is a uuid")
	assert.Equal(t, int64(1), order.UserID)
	assert.Equal(t, domain.OrderStatusConfirmed, order.Status)
	assert.InDelta(t, 19.0, order.Total, 1e-9)
	assert.Equal(t, fixed, order.CreatedAt)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)

	// Checkout empties the cart.
	after, err := carts.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, after.Items)
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc, _ := newTestServices()

	_, err := svc.Checkout(context.Background(), 1)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 400, appErr.Status)
}

func TestCheckout_DistinctOrderIDs(t *testing.T) {
	svc, carts := newTestServices()
	ctx := context.Background()

	_, err := carts.AddItem(ctx, 1, 10)
	require.NoError(t, err)
	first, err := svc.Checkout(ctx, 1)
	require.NoError(t, err)

	_, err = carts.AddItem(ctx, 1, 10)
	require.NoError(t, err)
	second, err := svc.Checkout(ctx, 1)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}
