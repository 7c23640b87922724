// Package session provides server-side session storage for authenticated
// browsing. Handlers hold only an opaque session ID; everything about the
// user rides in the store, so backends can be swapped without touching the
// HTTP layer.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a session ID is unknown or has expired.
var ErrNotFound = errors.New("session not found")

// Session is the server-side record behind a session cookie.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its lifetime at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Store persists sessions. Implementations must be safe for concurrent use.
type Store interface {
	// Create opens a session for the given user and returns it with a
	// freshly generated ID.
	Create(ctx context.Context, userID int64, username string, ttl time.Duration) (*Session, error)

	// Get returns the session for id, or ErrNotFound if unknown or expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Destroy removes the session. Destroying an unknown ID is not an error.
	Destroy(ctx context.Context, id string) error

	// Ping reports backend health for readiness checks.
	Ping(ctx context.Context) error
}

func newID() string {
	return uuid.New().String()
}
