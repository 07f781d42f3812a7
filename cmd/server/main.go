package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/aniket045123/craftmyresume/internal/adapter/cache"
	"github.com/aniket045123/craftmyresume/internal/adapter/http/fiber/handlers"
	"github.com/aniket045123/craftmyresume/internal/adapter/http/fiber/middleware"
	"github.com/aniket045123/craftmyresume/internal/adapter/queue"
	"github.com/aniket045123/craftmyresume/internal/adapter/storage/objectstore"
	"github.com/aniket045123/craftmyresume/internal/adapter/storage/postgres"
	"github.com/aniket045123/craftmyresume/internal/adapter/vault"
	wsAdapter "github.com/aniket045123/craftmyresume/internal/adapter/websocket"
	"github.com/aniket045123/craftmyresume/internal/observability/logging"
	"github.com/aniket045123/craftmyresume/internal/observability/telemetry"
	"github.com/aniket045123/craftmyresume/internal/ports"
	"github.com/aniket045123/craftmyresume/internal/service/admin"
	"github.com/aniket045123/craftmyresume/internal/service/analytics"
	"github.com/aniket045123/craftmyresume/internal/service/auth"
	"github.com/aniket045123/craftmyresume/internal/service/email"
	"github.com/aniket045123/craftmyresume/internal/service/health"
	"github.com/aniket045123/craftmyresume/internal/service/intake"
	"github.com/aniket045123/craftmyresume/internal/service/notification"
	"github.com/aniket045123/craftmyresume/internal/service/settings"
	"github.com/aniket045123/craftmyresume/pkg/config"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// 2. Initialize Logger
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting CraftMyResume API",
		zap.String("service", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	// 3. Overlay secrets from Vault
	if cfg.Vault.Address != "" && cfg.Vault.Token != "" {
		loadSecrets(cfg, logger)
	}

	// 4. Initialize OpenTelemetry
	if cfg.OpenTelemetry.Enabled {
		tracerProvider, err := telemetry.InitTracer(telemetry.TracerConfig{
			ServiceName:    cfg.OpenTelemetry.ServiceName,
			ServiceVersion: cfg.App.Version,
			Endpoint:       cfg.OpenTelemetry.Jaeger.Endpoint,
			SampleRatio:    cfg.OpenTelemetry.Jaeger.SamplerParam,
		})
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	loc := cfg.Location()

	// 5. Initialize PostgreSQL
	db, err := postgres.NewConnection(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying SQL DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(db); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// 6. Initialize Cache
	appCache := newCache(cfg.Redis, logger)
	defer appCache.Close()

	// 7. Initialize Message Queue
	messageQueue, err := queue.New(cfg.Queue, logger)
	if err != nil {
		logger.Fatal("Failed to connect to message queue", zap.Error(err))
	}
	defer messageQueue.Close()

	// 8. Initialize Object Store
	store, err := objectstore.NewS3Store(context.Background(), cfg.Storage, logger)
	if err != nil {
		logger.Fatal("Failed to initialize object store", zap.Error(err))
	}

	// 9. Initialize Repositories
	leadRepo := postgres.NewLeadRepository(db, logger)
	updateRepo := postgres.NewResumeUpdateRepository(db, logger)
	buildRepo := postgres.NewResumeBuildRepository(db, logger)
	settingsRepo := postgres.NewSettingsRepository(db, logger)
	adminRepo := postgres.NewAdminUserRepository(db, logger)

	// 10. Initialize Services
	settingsService := settings.NewService(settingsRepo, appCache, logger)

	emailService, err := email.NewService(email.ConfigFrom(cfg.Notification, loc), logger)
	if err != nil {
		logger.Fatal("Failed to initialize email service", zap.Error(err))
	}

	intakeService := intake.NewService(intake.Dependencies{
		Leads:    leadRepo,
		Updates:  updateRepo,
		Builds:   buildRepo,
		Store:    store,
		Settings: settingsService,
		Notifier: emailService,
		Queue:    messageQueue,

		EmailTimeout: cfg.Notification.SendTimeout,
	}, logger)

	jwtService := auth.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.Issuer,
		cfg.JWT.AccessTokenDuration,
		cfg.JWT.RefreshTokenDuration,
		appCache,
		logger,
	)
	authService := auth.NewService(adminRepo, jwtService, logger)

	analyticsService := analytics.NewService(leadRepo, updateRepo, buildRepo, analytics.OptionsFromConfig(cfg.Analytics), loc, logger).
		WithFetchTimeout(cfg.Analytics.FetchTimeout)
	adminService := admin.NewService(leadRepo, updateRepo, buildRepo, store, cfg.Analytics.RevenuePerRequest, loc, logger)

	// 11. Initialize WebSocket Hub (live back-office feed)
	wsHub := wsAdapter.NewHub(logger)
	go wsHub.Run()
	defer wsHub.Stop()

	// 12. Start Background Workers
	worker := notification.NewWorker(messageQueue, settingsService, emailService, wsHub, logger)
	if err := worker.Start(); err != nil {
		logger.Fatal("Failed to start notification worker", zap.Error(err))
	}

	healthService := health.NewService(&health.Config{
		Version:       cfg.App.Version,
		DB:            sqlDB,
		Cache:         appCache,
		Queue:         messageQueue,
		Store:         store,
		CacheOptional: !cfg.Redis.Enabled,
	}, logger)

	// 13. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		ServerHeader:          cfg.App.Name,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		BodyLimit:             cfg.HTTP.BodyLimitMB * 1024 * 1024,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	if cfg.CORS.Enabled {
		app.Use(middleware.NewCORS(cfg.CORS))
	}
	if cfg.RateLimiting.Enabled {
		app.Use(middleware.RateLimit(cfg.RateLimiting))
	}
	if cfg.CircuitBreaker.Enabled {
		app.Use(middleware.CircuitBreaker(cfg.CircuitBreaker, logger))
	}

	health.NewFiberHandler(healthService).RegisterRoutes(app)

	if cfg.Prometheus.Enabled {
		metricsHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		app.Get(cfg.Prometheus.Path, func(c *fiber.Ctx) error {
			metricsHandler(c.Context())
			return nil
		})
	}

	api := app.Group("/api")

	// Public forms
	handlers.NewIntakeHandler(intakeService, logger).RegisterRoutes(api)

	// Admin sign-in (public)
	adminAPI := api.Group("/admin")
	authLimiter := middleware.RateLimit(config.RateLimitingConfig{
		Enabled:           cfg.RateLimiting.Enabled,
		RequestsPerSecond: cfg.RateLimiting.AuthRequestsPerSecond,
		Burst:             cfg.RateLimiting.AuthBurst,
	})
	handlers.NewAuthHandler(authService, logger).WithLimiter(authLimiter).RegisterRoutes(adminAPI)

	// Back office (protected)
	protected := adminAPI.Group("", middleware.AuthRequired(authService))
	handlers.NewAdminHandler(adminService, analyticsService, settingsService, logger).RegisterRoutes(protected)

	// Live feed WebSocket
	ws := app.Group("/ws", middleware.AuthRequired(authService))
	handlers.NewLiveFeedHandler(wsHub).RegisterRoutes(ws)

	// 14. Start HTTP Server
	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 15. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

func loadSecrets(cfg *config.Config, logger *zap.Logger) {
	sm, err := vault.NewSecretManager(cfg.Vault.Address, cfg.Vault.Token)
	if err != nil {
		logger.Warn("Vault client unavailable; using local configuration", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	secrets, err := sm.GetSecrets(ctx, cfg.Vault.SecretPath)
	if err != nil {
		logger.Warn("Failed to read secrets from Vault", zap.Error(err))
		return
	}
	cfg.ApplySecrets(secrets)
	logger.Info("Loaded secrets from Vault", zap.Int("keys", len(secrets)))
}

// newCache prefers Redis and falls back to the in-process cache.
func newCache(cfg config.RedisConfig, logger *zap.Logger) ports.Cache {
	if cfg.Enabled && cfg.URL != "" {
		redisCache, err := cache.NewRedisCache(cfg.URL, logger)
		if err == nil {
			return redisCache
		}
		logger.Warn("Redis unavailable, using in-memory cache", zap.Error(err))
	}
	return cache.NewLocalCache(time.Minute, logger)
}
