package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/merchspace/storefront/pkg/errors"

	"github.com/merchspace/storefront/internal/event"
	"github.com/merchspace/storefront/internal/session"
	"github.com/merchspace/storefront/internal/storage/memory"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	sessions := session.NewMemoryStore(time.Hour)
	t.Cleanup(sessions.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(memory.New(), sessions, event.NoopPublisher{}, logger, time.Hour)
}

func TestRegister(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, sess, err := svc.Register(ctx, Credentials{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "s3cret", user.Password, "password is stored hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret")))

	require.NotNil(t, sess)
	assert.Equal(t, user.ID, sess.UserID)
	assert.Equal(t, "alice", sess.Username)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, Credentials{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, Credentials{Username: "alice", Password: "other"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 409, appErr.Status)
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, Credentials{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)

	user, sess, err := svc.Login(ctx, Credentials{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	require.NotNil(t, sess)

	resolved, err := svc.UserFromSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, Credentials{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, Credentials{Username: "alice", Password: "wrong"})
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 401, appErr.Status)
}

func TestLogin_UnknownUsername(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.Login(context.Background(), Credentials{Username: "nobody", Password: "s3cret"})
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 401, appErr.Status)
}

func TestLogout(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, sess, err := svc.Register(ctx, Credentials{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sess.ID))

	_, err = svc.UserFromSession(ctx, sess.ID)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 401, appErr.Status)

	assert.NoError(t, svc.Logout(ctx, sess.ID), "logout is idempotent")
	assert.NoError(t, svc.Logout(ctx, ""), "logout without a session is a no-op")
}

func TestUserFromSession_UnknownID(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.UserFromSession(context.Background(), "bogus")
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 401, appErr.Status)
}
