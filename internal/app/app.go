package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"

	"github.com/TubaAnsari/vendor-management-portal/internal/auth"
	"github.com/TubaAnsari/vendor-management-portal/internal/config"
	"github.com/TubaAnsari/vendor-management-portal/internal/event"
	handler "github.com/TubaAnsari/vendor-management-portal/internal/handler/http"
	"github.com/TubaAnsari/vendor-management-portal/internal/repository"
	"github.com/TubaAnsari/vendor-management-portal/internal/repository/memory"
	"github.com/TubaAnsari/vendor-management-portal/internal/repository/postgres"
	rediscache "github.com/TubaAnsari/vendor-management-portal/internal/repository/redis"
	"github.com/TubaAnsari/vendor-management-portal/internal/service"
	"github.com/TubaAnsari/vendor-management-portal/migrations"
	"github.com/TubaAnsari/vendor-management-portal/pkg/database"
	"github.com/TubaAnsari/vendor-management-portal/pkg/health"
	pkgkafka "github.com/TubaAnsari/vendor-management-portal/pkg/kafka"
	"github.com/TubaAnsari/vendor-management-portal/pkg/middleware"
	"github.com/TubaAnsari/vendor-management-portal/pkg/tracing"
)

// metricsNamespace labels the connection pool collector.
const metricsNamespace = "vendor_portal"

// repositories is the storage backend selected by STORAGE_DRIVER.
type repositories struct {
	vendors  repository.VendorRepository
	reviews  repository.ReviewRepository
	products repository.ProductRepository
	stats    repository.StatsRepository
}

// App wires together all dependencies and runs the vendor portal.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	redis          *goredis.Client
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    handler.ServiceName,
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	a.tracerShutdown = tracerShutdown

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	healthHandler := health.NewHandler()

	repos, err := a.initStorage(ctx, registry, healthHandler)
	if err != nil {
		a.closeAll()
		return nil, err
	}

	cache, err := a.initListingCache(ctx, healthHandler)
	if err != nil {
		a.closeAll()
		return nil, err
	}

	publisher := a.initPublisher(registry, healthHandler)

	// Build the dependency graph.
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)
	eventProducer := event.NewProducer(publisher, logger)
	metrics := service.NewMetrics(registry)
	updater := service.NewAggregateUpdater(repos.vendors, repos.reviews, metrics, logger)

	services := handler.Services{
		Auth:    service.NewAuthService(repos.vendors, jwtManager, cache, eventProducer, logger).WithHashCost(cfg.BcryptCost),
		Vendors: service.NewVendorService(repos.vendors, repos.products, cache, metrics, logger),
		Reviews: service.NewReviewService(repos.reviews, repos.vendors, updater, cache, eventProducer, metrics, logger),
		Product: service.NewProductService(repos.products, logger),
		Admin:   service.NewAdminService(repos.stats, repos.vendors, repos.products, repos.reviews, logger),
	}

	// HTTP router.
	router := handler.NewRouter(services, jwtManager, healthHandler, logger, handler.RouterConfig{
		CORS:       middleware.DefaultCORSConfig(cfg.CORSAllowedOrigins),
		AdminToken: cfg.AdminToken,
		PprofCIDRs: cfg.PprofAllowedCIDRs,
		Registry:   registry,

		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})
	if cfg.AdminToken == "" {
		logger.Warn("ADMIN_TOKEN is not set; admin routes are unauthenticated")
	}

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return a, nil
}

// initStorage opens the configured backend and registers its health check.
func (a *App) initStorage(ctx context.Context, reg prometheus.Registerer, hh *health.Handler) (repositories, error) {
	cfg := a.cfg

	if cfg.StorageDriver == config.StorageMemory {
		store := memory.NewStore()
		a.logger.Warn("using in-memory storage; data is lost on restart")
		return repositories{
			vendors:  store.Vendors(),
			reviews:  store.Reviews(),
			products: store.Products(),
			stats:    store.Stats(),
		}, nil
	}

	pgCfg := database.PostgresConfig{
		Host:            cfg.PostgresHost,
		Port:            cfg.PostgresPort,
		User:            cfg.PostgresUser,
		Password:        cfg.PostgresPass,
		DBName:          cfg.PostgresDB,
		SSLMode:         cfg.PostgresSSL,
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: time.Duration(cfg.DBMaxConnLifetimeMins) * time.Minute,
		MaxConnIdleTime: time.Duration(cfg.DBMaxConnIdleTimeMins) * time.Minute,
	}

	pool, err := database.NewPostgresPool(ctx, &pgCfg, a.logger)
	if err != nil {
		return repositories{}, fmt.Errorf("connect to postgres: %w", err)
	}
	a.pool = pool
	a.logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)

	if err := database.RegisterPoolMetrics(reg, pool, metricsNamespace); err != nil {
		return repositories{}, fmt.Errorf("register pool metrics: %w", err)
	}

	// Run database migrations.
	if err := database.RunMigrations(ctx, pool, migrations.FS, a.logger); err != nil {
		return repositories{}, fmt.Errorf("run migrations: %w", err)
	}
	a.logger.Info("database migrations completed")

	// Configure slow query logging.
	if cfg.SlowQueryThresholdMs > 0 {
		database.SetSlowQueryLogging(time.Duration(cfg.SlowQueryThresholdMs)*time.Millisecond, a.logger)
	}

	hh.RegisterCritical("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})

	return repositories{
		vendors:  postgres.NewVendorRepository(pool),
		reviews:  postgres.NewReviewRepository(pool),
		products: postgres.NewProductRepository(pool),
		stats:    postgres.NewStatsRepository(pool),
	}, nil
}

// initListingCache connects the Redis listing cache when enabled. A nil
// cache means listings always read storage.
func (a *App) initListingCache(ctx context.Context, hh *health.Handler) (repository.ListingCache, error) {
	cfg := a.cfg
	if !cfg.RedisEnabled {
		return nil, nil
	}

	client, err := database.NewRedisClient(ctx, database.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	a.redis = client
	a.logger.Info("connected to Redis",
		slog.String("addr", client.Options().Addr),
		slog.Duration("listing_ttl", cfg.ListingCacheTTL),
	)

	hh.RegisterNonCritical("redis", func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})

	return service.NewGuardedListingCache(rediscache.NewListingCache(client, cfg.ListingCacheTTL)), nil
}

// initPublisher returns the Kafka producer when enabled, otherwise a
// publisher that drops every event.
func (a *App) initPublisher(reg prometheus.Registerer, hh *health.Handler) pkgkafka.Publisher {
	cfg := a.cfg
	if !cfg.KafkaEnabled {
		return pkgkafka.Discard
	}

	producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), a.logger, pkgkafka.NewMetrics(reg))
	a.producer = producer
	a.logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	hh.RegisterNonCritical("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	return producer
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
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
		return errors.Join(err, a.Shutdown())
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in the correct order:
// 1. HTTP server (drain in-flight requests)
// 2. Tracer (flush pending spans from drained requests)
// 3. Kafka producer, Redis client and PostgreSQL pool
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	// 1. Drain in-flight HTTP requests (5s budget).
	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	// 2. Flush pending spans after HTTP drain so in-flight request spans are captured.
	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	// 3. Release backing connections.
	if err := a.closeAll(); err != nil {
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}

// closeAll releases the Kafka producer, Redis client and PostgreSQL pool,
// whichever were opened.
func (a *App) closeAll() error {
	var errs []error
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
		a.producer = nil
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
		a.redis = nil
	}
	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
	}
	return errors.Join(errs...)
}
