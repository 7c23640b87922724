// Package cart implements server-side shopping carts for authenticated users.
package cart

import (
	"context"

	"github.com/merchspace/storefront/internal/domain"
)

// Repository persists carts keyed by user ID. Implementations must be safe
// for concurrent use.
type Repository interface {
	// Get returns the user's cart. A user without a cart gets an empty one,
	// never an error.
	Get(ctx context.Context, userID int64) (*domain.Cart, error)

	// Save stores the cart, replacing any previous contents.
	Save(ctx context.Context, cart *domain.Cart) error

	// Clear removes the user's cart. Clearing an absent cart is not an error.
	Clear(ctx context.Context, userID int64) error
}
