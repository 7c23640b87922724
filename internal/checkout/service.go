// Package checkout turns a cart into an order. Payment is simulated: every
// checkout of a non-empty cart succeeds and the order is confirmed
// immediately.
package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/merchspace/storefront/pkg/errors"

	"github.com/merchspace/storefront/internal/cart"
	"github.com/merchspace/storefront/internal/domain"
	"github.com/merchspace/storefront/internal/event"
)

// Service implements the checkout flow.
type Service struct {
	carts    *cart.Service
	producer event.Publisher
	logger   *slog.Logger

	now func() time.Time
}

// NewService creates a checkout service.
func NewService(carts *cart.Service, producer event.Publisher, logger *slog.Logger) *Service {
	return &Service{
		carts:    carts,
		producer: producer,
		logger:   logger,
		now:      time.Now,
	}
}

// Checkout places an order for the user's current cart and empties the cart.
// An empty cart cannot be checked out.
func (s *Service) Checkout(ctx context.Context, userID int64) (*domain.Order, error) {
	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart for checkout: %w", err)
	}

	if len(c.Items) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	order := &domain.Order{
		ID:        uuid.New().String(),
		UserID:    userID,
		Items:     c.Items,
		Total:     c.Total(),
		Status:    domain.OrderStatusConfirmed,
		CreatedAt: s.now().UTC(),
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		return nil, fmt.Errorf("clear cart after checkout: %w", err)
	}

	// Publish order event (non-blocking on failure).
	if err := s.producer.PublishOrderPlaced(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.placed event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.Int64("user_id", userID),
		slog.Float64("total", order.Total),
	)

	return order, nil
}
