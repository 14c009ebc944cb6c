// Package app wires together all dependencies and runs the storefront.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vetrinalabs/storefront/pkg/health"
	"github.com/vetrinalabs/storefront/pkg/httpclient"
	pkgkafka "github.com/vetrinalabs/storefront/pkg/kafka"
	"github.com/vetrinalabs/storefront/pkg/middleware"
	"github.com/vetrinalabs/storefront/pkg/tracing"

	"github.com/vetrinalabs/storefront/internal/catalog"
	"github.com/vetrinalabs/storefront/internal/config"
	"github.com/vetrinalabs/storefront/internal/event"
	handler "github.com/vetrinalabs/storefront/internal/handler/http"
	"github.com/vetrinalabs/storefront/internal/repository"
	"github.com/vetrinalabs/storefront/internal/repository/fixture"
	redisrepo "github.com/vetrinalabs/storefront/internal/repository/redis"
	"github.com/vetrinalabs/storefront/internal/service"
)

// App wires together all dependencies and runs the storefront.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	rdb             *redis.Client
	producer        *pkgkafka.Producer
	httpServer      *http.Server
	shutdownTracing func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Tracing.
	tracingCfg := tracing.DefaultConfig("storefront")
	tracingCfg.Environment = cfg.Environment
	tracingCfg.OTLPEndpoint = cfg.OTELEndpoint
	tracingCfg.SampleRate = cfg.OTELSample
	tracingCfg.Enabled = cfg.OTELEnabled
	shutdownTracing, err := tracing.InitTracer(ctx, tracingCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Redis client.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	// Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Catalog fixture source: remote static host behind retries and a circuit
	// breaker, or a local directory.
	source := newCatalogSource(cfg, logger)

	// Build the dependency graph.
	engine := catalog.New()
	eventProducer := event.NewProducer(producer, logger)

	catalogService := service.NewCatalogService(source, engine, logger)
	if err := catalogService.Load(ctx); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	cartRepo := redisrepo.NewCartRepository(rdb, time.Duration(cfg.CartTTL)*time.Hour)
	checkoutRepo := redisrepo.NewCheckoutRepository(rdb, time.Duration(cfg.CheckoutTTL)*time.Hour)
	orderRepo := redisrepo.NewOrderRepository(rdb)
	sessionRepo := redisrepo.NewSessionRepository(rdb)

	cartService := service.NewCartService(cartRepo, engine, eventProducer, logger)
	checkoutService := service.NewCheckoutService(cartService, checkoutRepo, orderRepo, source, eventProducer, logger, cfg.TaxRate)
	userService := service.NewUserService(source, sessionRepo, orderRepo, logger, time.Duration(cfg.SessionTTL)*time.Hour)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.Register("catalog", func(ctx context.Context) error {
		_, err := source.Categories(ctx)
		return err
	})

	// HTTP router.
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	corsCfg.Environment = cfg.Environment
	router := handler.NewRouter(catalogService, cartService, checkoutService, userService, healthHandler, logger, corsCfg)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		rdb:             rdb,
		producer:        producer,
		httpServer:      httpServer,
		shutdownTracing: shutdownTracing,
	}, nil
}

// newCatalogSource picks the fixture source from configuration.
func newCatalogSource(cfg *config.Config, logger *slog.Logger) repository.CatalogSource {
	if cfg.FixturesBaseURL != "" {
		client := httpclient.New(httpclient.DefaultConfig())
		cb := httpclient.NewCircuitBreakerClient(client, httpclient.DefaultCircuitBreakerConfig("fixtures"), logger)
		logger.Info("using remote fixture source", slog.String("base_url", cfg.FixturesBaseURL))
		return fixture.NewHTTPSource(cb, cfg.FixturesBaseURL)
	}
	logger.Info("using local fixture source", slog.String("dir", cfg.FixturesDir))
	return fixture.NewDirSource(cfg.FixturesDir)
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	if err := a.shutdownTracing(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
