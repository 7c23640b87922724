// Package config loads storefront configuration from the environment.
package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/merchspace/storefront/pkg/config"
)

// defaultSessionSecret is the development-only fallback signing secret.
const defaultSessionSecret = "change-this-to-a-secure-secret"

// Config holds all configuration for the storefront server.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Sessions
	SessionBackend       string        `env:"SESSION_BACKEND" envDefault:"memory"`
	SessionSecret        string        `env:"SESSION_SECRET" envDefault:"change-this-to-a-secure-secret"`
	SessionTTL           time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"24h"`
	SecureCookies        bool          `env:"SECURE_COOKIES" envDefault:"false"`

	// Redis (sessions and carts when SESSION_BACKEND=redis)
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Carts
	CartTTL time.Duration `env:"CART_TTL" envDefault:"168h"`

	// Upstream catalog
	CatalogBaseURL         string        `env:"CATALOG_BASE_URL" envDefault:"https://api.escuelajs.co/api/v1"`
	CatalogTimeout         time.Duration `env:"CATALOG_TIMEOUT" envDefault:"10s"`
	CatalogCacheControlTTL time.Duration `env:"CATALOG_CACHE_CONTROL_TTL" envDefault:"5m"`

	// Kafka
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Rate limiting for auth endpoints
	AuthRateLimit int `env:"AUTH_RATE_LIMIT" envDefault:"5"`
	AuthRateBurst int `env:"AUTH_RATE_BURST" envDefault:"10"`

	// Tracing
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}
	switch cfg.SessionBackend {
	case "memory", "redis":
	default:
		return nil, fmt.Errorf("invalid session backend: %q", cfg.SessionBackend)
	}

	// In non-development environments, require an explicitly set, strong session secret.
	if cfg.Environment != "development" {
		if cfg.SessionSecret == defaultSessionSecret {
			return nil, fmt.Errorf("SESSION_SECRET must be explicitly set via environment variable in %q mode", cfg.Environment)
		}
		if len(cfg.SessionSecret) < 32 {
			return nil, fmt.Errorf("SESSION_SECRET must be at least 32 characters long, got %d", len(cfg.SessionSecret))
		}
	}

	return cfg, nil
}
