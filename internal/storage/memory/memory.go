// Package memory implements the storage contracts with plain in-process maps.
// All data is lost on restart; that is by design for this system.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/merchspace/storefront/internal/domain"
	"github.com/merchspace/storefront/internal/storage"
)

// Store holds users and reviews in memory. The zero value is not usable;
// construct with New. Safe for concurrent use: a mutex per concern guards the
// read-increment-write identifier sequence and the list appends.
type Store struct {
	usersMu    sync.RWMutex
	users      map[int64]*domain.User
	byUsername map[string]int64
	nextUserID int64

	reviewsMu    sync.RWMutex
	reviews      map[int64][]domain.Review
	nextReviewID int64

	// now is injectable for tests.
	now func() time.Time
}

var _ storage.Store = (*Store)(nil)

// New creates an empty in-memory store. Identifier counters start at 1.
func New() *Store {
	return &Store{
		users:        make(map[int64]*domain.User),
		byUsername:   make(map[string]int64),
		nextUserID:   1,
		reviews:      make(map[int64][]domain.Review),
		nextReviewID: 1,
		now:          time.Now,
	}
}

// GetUser retrieves a user by identifier.
func (s *Store) GetUser(_ context.Context, id int64) (*domain.User, error) {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cpy := *u
	return &cpy, nil
}

// GetUserByUsername retrieves a user through the username index.
func (s *Store) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cpy := *s.users[id]
	return &cpy, nil
}

// CreateUser stores a new user under the next sequential identifier.
// Identifiers are never reused; usernames must be unique for the lifetime of
// the process.
func (s *Store) CreateUser(_ context.Context, username, password string) (*domain.User, error) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	if _, exists := s.byUsername[username]; exists {
		return nil, storage.ErrUsernameTaken
	}

	u := &domain.User{
		ID:       s.nextUserID,
		Username: username,
		Password: password,
	}
	s.nextUserID++

	s.users[u.ID] = u
	s.byUsername[username] = u.ID

	cpy := *u
	return &cpy, nil
}

// GetReviews returns the reviews for a product in creation order. The result
// is a copy; callers may not mutate stored state through it.
func (s *Store) GetReviews(_ context.Context, productID int64) ([]domain.Review, error) {
	s.reviewsMu.RLock()
	defer s.reviewsMu.RUnlock()

	list := s.reviews[productID]
	out := make([]domain.Review, len(list))
	copy(out, list)
	return out, nil
}

// CreateReview appends a review to the product's list, assigning the next
// identifier from the global counter and stamping the server time.
func (s *Store) CreateReview(_ context.Context, productID, userID int64, username string, rating int, comment string) (*domain.Review, error) {
	s.reviewsMu.Lock()
	defer s.reviewsMu.Unlock()

	r := domain.Review{
		ID:        s.nextReviewID,
		ProductID: productID,
		UserID:    userID,
		Username:  username,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: s.now().UTC(),
	}
	s.nextReviewID++

	s.reviews[productID] = append(s.reviews[productID], r)

	cpy := r
	return &cpy, nil
}
