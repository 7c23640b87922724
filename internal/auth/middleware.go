package auth

import (
	"context"
	"net/http"
	"strconv"

	"github.com/merchspace/storefront/pkg/httputil"
	"github.com/merchspace/storefront/pkg/logger"

	"github.com/merchspace/storefront/internal/domain"
)

type contextKey string

const (
	userKey      contextKey = "auth_user"
	sessionIDKey contextKey = "auth_session_id"
)

// Middleware resolves session cookies into users for downstream handlers.
type Middleware struct {
	codec   *CookieCodec
	service *Service
}

// NewMiddleware creates the session-resolving middleware.
func NewMiddleware(codec *CookieCodec, service *Service) *Middleware {
	return &Middleware{codec: codec, service: service}
}

// WithSession resolves the session cookie, if any, and attaches the user and
// session ID to the request context. Requests without a valid session pass
// through unauthenticated.
func (m *Middleware) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := m.codec.SessionIDFromRequest(r)
		if sessionID == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.service.UserFromSession(r.Context(), sessionID)
		if err != nil {
			// Stale or forged cookie; continue unauthenticated.
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		ctx = context.WithValue(ctx, sessionIDKey, sessionID)
		ctx = logger.WithUserID(ctx, strconv.FormatInt(user.ID, 10))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects unauthenticated requests with a 401 and the given
// message. Must be mounted after WithSession.
func RequireAuth(message string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := UserFromContext(r.Context()); !ok {
				httputil.WriteMessage(w, http.StatusUnauthorized, message)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFromContext returns the authenticated user attached by WithSession.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}

// SessionIDFromContext returns the session ID attached by WithSession.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok
}
