// Package auth implements registration, login, and session-cookie
// authentication for the storefront.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/merchspace/storefront/pkg/errors"

	"github.com/merchspace/storefront/internal/domain"
	"github.com/merchspace/storefront/internal/event"
	"github.com/merchspace/storefront/internal/session"
	"github.com/merchspace/storefront/internal/storage"
)

// bcryptCost is the cost factor for bcrypt password hashing.
const bcryptCost = 12

// Service implements the business logic for registration, login, and logout.
type Service struct {
	users      storage.UserStore
	sessions   session.Store
	producer   event.Publisher
	logger     *slog.Logger
	sessionTTL time.Duration
}

// NewService creates an auth service.
func NewService(users storage.UserStore, sessions session.Store, producer event.Publisher, logger *slog.Logger, sessionTTL time.Duration) *Service {
	return &Service{
		users:      users,
		sessions:   sessions,
		producer:   producer,
		logger:     logger,
		sessionTTL: sessionTTL,
	}
}

// Credentials holds the parameters for registering or logging in.
type Credentials struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// Register creates a new user with a hashed password and opens a session.
func (s *Service) Register(ctx context.Context, creds Credentials) (*domain.User, *session.Session, error) {
	if _, err := s.users.GetUserByUsername(ctx, creds.Username); err == nil {
		return nil, nil, apperrors.AlreadyExists("user", "username", creds.Username)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, nil, fmt.Errorf("check username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, creds.Username, string(hashed))
	if err != nil {
		if errors.Is(err, storage.ErrUsernameTaken) {
			return nil, nil, apperrors.AlreadyExists("user", "username", creds.Username)
		}
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	sess, err := s.sessions.Create(ctx, user.ID, user.Username, s.sessionTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	// Publish registration event (non-blocking on failure).
	if err := s.producer.PublishUserRegistered(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.registered event",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, sess, nil
}

// Login authenticates a user by username and password and opens a session.
func (s *Service) Login(ctx context.Context, creds Credentials) (*domain.User, *session.Session, error) {
	user, err := s.users.GetUserByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, apperrors.Unauthorized("invalid username or password")
		}
		return nil, nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		return nil, nil, apperrors.Unauthorized("invalid username or password")
	}

	sess, err := s.sessions.Create(ctx, user.ID, user.Username, s.sessionTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, sess, nil
}

// Logout destroys the session. Logging out with an unknown session is a no-op.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Destroy(ctx, sessionID); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged out")
	return nil
}

// UserFromSession resolves a session ID to its user. Returns Unauthorized when
// the session is unknown, expired, or its user no longer exists.
func (s *Service) UserFromSession(ctx context.Context, sessionID string) (*domain.User, error) {
	if sessionID == "" {
		return nil, apperrors.Unauthorized("not logged in")
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, apperrors.Unauthorized("not logged in")
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	user, err := s.users.GetUser(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.Unauthorized("not logged in")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}
