package storage

import (
	"context"
	"errors"

	"github.com/merchspace/storefront/internal/domain"
)

// ErrNotFound is returned by lookups when no record matches.
var ErrNotFound = errors.New("storage: not found")

// ErrUsernameTaken is returned by CreateUser when the username is already
// registered. The auth layer pre-checks with GetUserByUsername for a friendly
// error, but the store enforces uniqueness itself so the invariant never
// depends on caller discipline.
var ErrUsernameTaken = errors.New("storage: username taken")

// UserStore is the process-lifetime registry of user identities backing the
// auth layer's login and registration flows.
type UserStore interface {
	// GetUser retrieves a user by identifier. Returns ErrNotFound when no
	// user has that id.
	GetUser(ctx context.Context, id int64) (*domain.User, error)

	// GetUserByUsername retrieves the user with the given username.
	// Returns ErrNotFound when no user has that username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// CreateUser assigns the next sequential identifier (starting at 1),
	// stores the record, and returns it. Returns ErrUsernameTaken when the
	// username is already registered.
	CreateUser(ctx context.Context, username, password string) (*domain.User, error)
}

// ReviewStore is the append-only ledger of product reviews. Reviews are
// immutable and never deleted; identifiers come from a single global counter.
type ReviewStore interface {
	// GetReviews returns the reviews for the product, oldest first. Products
	// with no reviews (or that don't exist at all) yield an empty slice,
	// never an error.
	GetReviews(ctx context.Context, productID int64) ([]domain.Review, error)

	// CreateReview assigns the next sequential review identifier, stamps the
	// current time, appends the review to the product's list, and returns the
	// persisted record. Input is assumed pre-validated by the caller.
	CreateReview(ctx context.Context, productID, userID int64, username string, rating int, comment string) (*domain.Review, error)
}

// Store aggregates the storage contracts a fully wired storefront needs.
type Store interface {
	UserStore
	ReviewStore
}
