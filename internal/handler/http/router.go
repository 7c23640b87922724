// Package http wires the storefront's HTTP API.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/merchspace/storefront/pkg/health"
	"github.com/merchspace/storefront/pkg/logger"
	"github.com/merchspace/storefront/pkg/middleware"

	"github.com/merchspace/storefront/internal/auth"
)

// RouterConfig carries the knobs the router needs beyond its handlers.
type RouterConfig struct {
	CORSAllowedOrigins []string
	CatalogCacheMaxAge int
}

// Handlers groups everything the router mounts. AuthLimiter guards the
// register and login routes; its lifecycle belongs to the caller.
type Handlers struct {
	Auth        *AuthHandler
	Review      *ReviewHandler
	Catalog     *CatalogHandler
	Cart        *CartHandler
	Checkout    *CheckoutHandler
	Session     *auth.Middleware
	Health      *health.Handler
	AuthLimiter *middleware.RateLimiter
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(h Handlers, cfg RouterConfig, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	corsCfg.AllowCredentials = true
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestLogging(log))
	r.Use(middleware.RequestLogger(log, logger.UserIDFromContext))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(h.Session.WithSession)

	// Health check endpoints
	r.Get("/health/live", h.Health.LivenessHandler())
	r.Get("/health/ready", h.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Auth endpoints (rate limited)
	r.Group(func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(h.AuthLimiter.Handler)

		r.Post("/api/register", h.Auth.Register)
		r.Post("/api/login", h.Auth.Login)
	})
	r.Post("/api/logout", h.Auth.Logout)
	r.Get("/api/user", h.Auth.CurrentUser)

	// Catalog proxy (public, cacheable)
	r.Group(func(r chi.Router) {
		r.Use(middleware.CacheControl(cfg.CatalogCacheMaxAge))

		r.Get("/api/products", h.Catalog.ListProducts)
		r.Get("/api/products/{id}", h.Catalog.GetProduct)
		r.Get("/api/categories", h.Catalog.ListCategories)
	})

	// Reviews: listing is public, submitting requires a session.
	r.Get("/api/products/{id}/reviews", h.Review.List)
	r.Post("/api/products/{id}/reviews", h.Review.Create)

	// Cart and checkout (auth required)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth("Must be logged in"))

		r.Get("/api/cart", h.Cart.Get)
		r.Delete("/api/cart", h.Cart.Clear)
		r.Post("/api/cart/items/{productId}", h.Cart.AddItem)
		r.Delete("/api/cart/items/{productId}", h.Cart.RemoveItem)

		r.With(ContentTypeJSON).Post("/api/checkout", h.Checkout.Checkout)
	})

	return r
}
