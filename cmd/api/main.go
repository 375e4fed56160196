// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/bookhaven/internal/admin"
	"github.com/carterperez-dev/bookhaven/internal/auth"
	"github.com/carterperez-dev/bookhaven/internal/book"
	"github.com/carterperez-dev/bookhaven/internal/config"
	"github.com/carterperez-dev/bookhaven/internal/contact"
	"github.com/carterperez-dev/bookhaven/internal/core"
	"github.com/carterperez-dev/bookhaven/internal/health"
	"github.com/carterperez-dev/bookhaven/internal/middleware"
	"github.com/carterperez-dev/bookhaven/internal/order"
	"github.com/carterperez-dev/bookhaven/internal/server"
	"github.com/carterperez-dev/bookhaven/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	tokenSvc, err := auth.NewTokenService(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("token service initialized",
		"algorithm", "ES256",
		"key_id", tokenSvc.KeyID(),
	)

	var mailer auth.Mailer
	if cfg.SMTP.Enabled {
		mailer = auth.NewSMTPMailer(cfg.SMTP)
		logger.Info("smtp mailer enabled", "host", cfg.SMTP.Host)
	} else {
		mailer = auth.NewLogMailer()
	}

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)

	authSvc := auth.NewService(
		userSvc,
		tokenSvc,
		auth.NewResetStore(redis.Client),
		mailer,
		cfg.Reset.CodeExpire,
		cfg.Reset.MinPasswordLength,
	)
	authHandler := auth.NewHandler(authSvc, cfg.IsDevelopment())

	bookHandler := book.NewHandler(book.NewRepository(db.DB))

	orderSvc := order.NewService(order.NewRepository(db.DB), logger)
	orderHandler := order.NewHandler(orderSvc)

	contactSvc := contact.NewService(contact.NewRepository(db.DB), logger)
	contactHandler := contact.NewHandler(contactSvc)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		Repo:       admin.NewRepository(db.DB),
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})

	healthHandler := health.NewHandler(db, redis, cfg.App.Name)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", tokenSvc.JWKSHandler())

	authenticator := middleware.Authenticator(tokenSvc)
	adminOnly := middleware.RequireAdmin

	// Credential endpoints get a tighter per-IP budget than the rest of
	// the API.
	authLimiter := middleware.NewRateLimiter(
		redis.Client,
		middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.AuthRequests,
				cfg.RateLimit.AuthBurst,
			),
			FailOpen: true,
			Prefix:   "auth",
		},
	)

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Status)

		r.Group(func(r chi.Router) {
			r.Use(authLimiter.Handler)
			authHandler.RegisterRoutes(r)
		})

		bookHandler.RegisterRoutes(r)

		contactHandler.RegisterRoutes(r, authenticator, adminOnly)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			orderHandler.RegisterRoutes(r)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticator)
			r.Use(adminOnly)

			orderHandler.RegisterAdminRoutes(r)
			contactHandler.RegisterAdminRoutes(r)
			adminHandler.RegisterRoutes(r)
		})
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
