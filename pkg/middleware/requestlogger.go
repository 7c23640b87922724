package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/merchspace/storefront/pkg/logger"
)

// UserIDFunc extracts the authenticated user's identity from the request
// context, or returns "" when the request is anonymous. The auth layer
// supplies the implementation so this package stays agnostic of how
// authentication works.
type UserIDFunc func(ctx context.Context) string

// RequestLogger returns middleware that builds a request-scoped logger
// enriched with correlation_id, user_id, trace_id, and span_id, then stores it
// in context via logger.NewContext. Downstream handlers retrieve it with
// logger.FromContext(ctx).
//
// Mount AFTER RequestLogging (which sets correlation_id) and Tracing (which
// sets the span context).
func RequestLogger(base *slog.Logger, userID UserIDFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if userID != nil {
				if id := userID(ctx); id != "" {
					ctx = logger.WithUserID(ctx, id)
				}
			}

			enriched := logger.WithContext(ctx, base)
			ctx = logger.NewContext(ctx, enriched)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
