package cart

import (
	"context"
	"sync"

	"github.com/merchspace/storefront/internal/domain"
)

// MemoryRepository keeps carts in process memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	carts map[int64]*domain.Cart
}

var _ Repository = (*MemoryRepository)(nil)

// NewMemoryRepository creates an empty in-memory cart repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		carts: make(map[int64]*domain.Cart),
	}
}

func (r *MemoryRepository) Get(_ context.Context, userID int64) (*domain.Cart, error) {
	r.mu.RLock()
	cart, ok := r.carts[userID]
	r.mu.RUnlock()

	if !ok {
		return &domain.Cart{UserID: userID, Items: []domain.CartItem{}}, nil
	}

	out := domain.Cart{
		UserID: cart.UserID,
		Items:  make([]domain.CartItem, len(cart.Items)),
	}
	copy(out.Items, cart.Items)
	return &out, nil
}

func (r *MemoryRepository) Save(_ context.Context, cart *domain.Cart) error {
	stored := domain.Cart{
		UserID: cart.UserID,
		Items:  make([]domain.CartItem, len(cart.Items)),
	}
	copy(stored.Items, cart.Items)

	r.mu.Lock()
	r.carts[cart.UserID] = &stored
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) Clear(_ context.Context, userID int64) error {
	r.mu.Lock()
	delete(r.carts, userID)
	r.mu.Unlock()
	return nil
}
