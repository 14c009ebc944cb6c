// Package config holds the storefront's environment-driven configuration.
package config

import (
	"fmt"

	pkgconfig "github.com/vetrinalabs/storefront/pkg/config"
)

// Config holds all configuration for the storefront.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// TTLs in hours: cart and checkout state share the abandonment window,
	// sessions expire on their own clock.
	CartTTL     int `env:"CART_TTL_HOURS" envDefault:"168"`
	CheckoutTTL int `env:"CHECKOUT_TTL_HOURS" envDefault:"24"`
	SessionTTL  int `env:"SESSION_TTL_HOURS" envDefault:"720"`

	// Catalog fixtures: a local directory, or a static HTTP host when
	// FIXTURES_BASE_URL is set (the URL wins if both are configured).
	FixturesDir     string `env:"FIXTURES_DIR" envDefault:"data"`
	FixturesBaseURL string `env:"FIXTURES_BASE_URL" envDefault:""`

	// Tax rate applied to the order subtotal at checkout.
	TaxRate float64 `env:"TAX_RATE" envDefault:"0.22"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// OpenTelemetry
	OTELEnabled  bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSample   float64 `env:"OTEL_TRACES_SAMPLER_ARG" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration invariants. Called by the loader after
// parsing.
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.TaxRate < 0 || c.TaxRate >= 1 {
		return fmt.Errorf("invalid tax rate: %f", c.TaxRate)
	}
	if c.FixturesDir == "" && c.FixturesBaseURL == "" {
		return fmt.Errorf("either FIXTURES_DIR or FIXTURES_BASE_URL must be set")
	}
	return nil
}
