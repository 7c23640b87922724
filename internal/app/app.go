// Package app wires together all dependencies and runs the storefront server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/merchspace/storefront/pkg/health"
	"github.com/merchspace/storefront/pkg/httpclient"
	pkgkafka "github.com/merchspace/storefront/pkg/kafka"
	"github.com/merchspace/storefront/pkg/middleware"
	"github.com/merchspace/storefront/pkg/tracing"

	"github.com/merchspace/storefront/internal/auth"
	"github.com/merchspace/storefront/internal/cart"
	"github.com/merchspace/storefront/internal/catalog"
	"github.com/merchspace/storefront/internal/checkout"
	"github.com/merchspace/storefront/internal/config"
	"github.com/merchspace/storefront/internal/event"
	handler "github.com/merchspace/storefront/internal/handler/http"
	"github.com/merchspace/storefront/internal/review"
	"github.com/merchspace/storefront/internal/session"
	"github.com/merchspace/storefront/internal/storage/memory"
)

// App holds the storefront's long-lived components.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	httpServer     *http.Server
	producer       event.Publisher
	redisClient    *redis.Client
	memorySessions *session.MemoryStore
	authLimiter    *middleware.RateLimiter
	tracerShutdown func(context.Context) error
}

// NewApp creates an application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "storefront",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	app := &App{
		cfg:            cfg,
		logger:         logger,
		tracerShutdown: tracerShutdown,
	}

	// User and review storage. In-memory by design: the storefront keeps its
	// owned state in process and restarts clean.
	store := memory.New()

	// Session and cart backends.
	var sessions session.Store
	var cartRepo cart.Repository
	switch cfg.SessionBackend {
	case "redis":
		app.redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := app.redisClient.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("connected to Redis", slog.String("addr", cfg.RedisAddr))
		sessions = session.NewRedisStore(app.redisClient)
		cartRepo = cart.NewRedisRepository(app.redisClient, cfg.CartTTL)
	default:
		app.memorySessions = session.NewMemoryStore(cfg.SessionSweepInterval)
		sessions = app.memorySessions
		cartRepo = cart.NewMemoryRepository()
	}

	// Event publisher.
	app.producer = event.NoopPublisher{}
	var kafkaProducer *pkgkafka.Producer
	if cfg.KafkaEnabled {
		kafkaProducer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		app.producer = event.NewKafkaPublisher(kafkaProducer, logger)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	// Upstream catalog client behind a circuit breaker.
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.CatalogTimeout
	catalogClient := catalog.NewClient(
		httpclient.NewCircuitBreakerClient(
			httpclient.New(httpCfg),
			httpclient.DefaultCircuitBreakerConfig("catalog"),
			logger,
		),
		cfg.CatalogBaseURL,
		logger,
	)

	// Build the dependency graph.
	codec := auth.NewCookieCodec(cfg.SessionSecret, cfg.SessionTTL, cfg.SecureCookies)
	authSvc := auth.NewService(store, sessions, app.producer, logger, cfg.SessionTTL)
	reviewSvc := review.NewService(store, app.producer, logger)
	cartSvc := cart.NewService(cartRepo, catalogClient, logger)
	checkoutSvc := checkout.NewService(cartSvc, app.producer, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("sessions", sessions.Ping)
	healthHandler.Register("catalog", catalogClient.Ping)
	if kafkaProducer != nil {
		healthHandler.Register("kafka", kafkaProducer.Ping)
	}

	app.authLimiter = middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst, logger)

	router := handler.NewRouter(handler.Handlers{
		Auth:        handler.NewAuthHandler(authSvc, codec, logger),
		Review:      handler.NewReviewHandler(reviewSvc, logger),
		Catalog:     handler.NewCatalogHandler(catalogClient, logger),
		Cart:        handler.NewCartHandler(cartSvc, logger),
		Checkout:    handler.NewCheckoutHandler(checkoutSvc, logger),
		Session:     auth.NewMiddleware(codec, authSvc),
		Health:      healthHandler,
		AuthLimiter: app.authLimiter,
	}, handler.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		CatalogCacheMaxAge: int(cfg.CatalogCacheControlTTL.Seconds()),
	}, logger)

	app.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return app, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in order: drain HTTP, flush spans,
// close the event producer, stop background sweepers, close Redis.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("event producer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.memorySessions != nil {
		a.memorySessions.Close()
	}

	if a.authLimiter != nil {
		a.authLimiter.Close()
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.logger.Info("application stopped")
	return errors.Join(errs...)
}
