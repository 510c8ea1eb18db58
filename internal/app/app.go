package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/07chouthri/flowerschool-storefront/internal/client"
	"github.com/07chouthri/flowerschool-storefront/internal/config"
	"github.com/07chouthri/flowerschool-storefront/internal/domain"
	"github.com/07chouthri/flowerschool-storefront/internal/event"
	handler "github.com/07chouthri/flowerschool-storefront/internal/handler/http"
	redisrepo "github.com/07chouthri/flowerschool-storefront/internal/repository/redis"
	"github.com/07chouthri/flowerschool-storefront/internal/service"
	"github.com/07chouthri/flowerschool-storefront/pkg/health"
	"github.com/07chouthri/flowerschool-storefront/pkg/httpclient"
	pkgkafka "github.com/07chouthri/flowerschool-storefront/pkg/kafka"
	"github.com/07chouthri/flowerschool-storefront/pkg/middleware"
	"github.com/07chouthri/flowerschool-storefront/pkg/tracing"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	rdb            *redis.Client
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

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

	// Initialize Redis client.
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

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Delivery coverage can be overridden per deployment.
	domain.SetServiceablePincodes(cfg.ServiceablePincodes)

	// Downstream HTTP clients. Coupon lookup and order placement go
	// through circuit breakers since both sit on the user's critical
	// path and must fail fast when their service is down.
	baseClient := httpclient.New(httpclient.DefaultConfig())

	breakerFor := func(name string) *httpclient.CircuitBreakerClient {
		return httpclient.NewCircuitBreakerClient(baseClient, httpclient.CircuitBreakerConfig{
			Name:         name,
			MaxRequests:  cfg.CBMaxRequests,
			Interval:     time.Duration(cfg.CBInterval) * time.Second,
			Timeout:      time.Duration(cfg.CBTimeout) * time.Second,
			FailureRatio: cfg.CBFailureRatio,
			MinRequests:  cfg.CBMinRequests,
		}, logger)
	}

	catalogClient := client.NewCatalogClient(baseClient, cfg.CatalogServiceURL)
	addressClient := client.NewAddressClient(baseClient, cfg.AddressServiceURL)
	deliveryClient := client.NewDeliveryClient(baseClient, cfg.DeliveryServiceURL)
	couponClient := client.NewCouponClient(breakerFor("coupon"), cfg.CouponServiceURL)
	orderClient := client.NewOrderClient(breakerFor("order"), cfg.OrderServiceURL)

	// Build the dependency graph.
	repo := redisrepo.NewSessionRepository(rdb, cfg.SessionTTL())
	eventProducer := event.NewProducer(producer, logger)
	checkoutService := service.NewCheckoutService(
		repo, eventProducer, logger,
		catalogClient, deliveryClient, couponClient, orderClient,
	)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.Register("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.AllowedOrigins
	corsCfg.Environment = cfg.Environment

	// HTTP router.
	router := handler.NewRouter(checkoutService, catalogClient, addressClient, healthHandler, logger, corsCfg)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		rdb:            rdb,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
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

	if a.tracerShutdown != nil {
		if err := a.tracerShutdown(shutdownCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}
