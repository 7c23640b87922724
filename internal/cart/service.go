package cart

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/merchspace/storefront/internal/domain"
)

// ProductSource resolves product IDs to products. Satisfied by the catalog
// client.
type ProductSource interface {
	Product(ctx context.Context, id int64) (*domain.Product, error)
}

// Service implements the business logic for cart manipulation. Carts are
// scoped to the authenticated user; products are resolved through the catalog
// at add time so the cart snapshots price and title as offered.
type Service struct {
	repo     Repository
	products ProductSource
	logger   *slog.Logger
}

// NewService creates a cart service.
func NewService(repo Repository, products ProductSource, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		products: products,
		logger:   logger,
	}
}

// Get returns the user's cart, empty if they have none.
func (s *Service) Get(ctx context.Context, userID int64) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

// AddItem adds one unit of the product to the user's cart. Unknown product
// IDs surface the catalog's not-found error.
func (s *Service) AddItem(ctx context.Context, userID, productID int64) (*domain.Cart, error) {
	product, err := s.products.Product(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	cart.AddProduct(*product, 1)
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.logger.InfoContext(ctx, "cart item added",
		slog.Int64("user_id", userID),
		slog.Int64("product_id", productID),
		slog.Int("item_count", cart.ItemCount()),
	)

	return cart, nil
}

// RemoveItem removes one unit of the product from the user's cart. Removing a
// product not in the cart is a no-op.
func (s *Service) RemoveItem(ctx context.Context, userID, productID int64) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	cart.RemoveProduct(productID)
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.logger.InfoContext(ctx, "cart item removed",
		slog.Int64("user_id", userID),
		slog.Int64("product_id", productID),
	)

	return cart, nil
}

// Clear empties the user's cart.
func (s *Service) Clear(ctx context.Context, userID int64) error {
	if err := s.repo.Clear(ctx, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
