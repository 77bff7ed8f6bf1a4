package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/cancelshield/api/internal/api/http"
	"github.com/cancelshield/api/internal/api/http/handlers"
	"github.com/cancelshield/api/internal/auth"
	"github.com/cancelshield/api/internal/config"
	"github.com/cancelshield/api/internal/mail"
	"github.com/cancelshield/api/internal/observability"
	"github.com/cancelshield/api/internal/persistence"
	"github.com/cancelshield/api/internal/ratelimit"
	"github.com/cancelshield/api/internal/repository"
	"github.com/cancelshield/api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dependencies := map[string]handlers.Pinger{}

	var (
		userRepo repository.UserRepository
		subRepo  repository.SubscriptionRepository
	)
	if cfg.Postgres.DSN != "" {
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()

		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(pg.PoolHandle(), logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}

		pool := pg.PoolHandle()
		userRepo = repository.NewUserRepository(pool)
		subRepo = repository.NewSubscriptionRepository(pool)
		dependencies["postgres"] = pg
	} else {
		logger.Warn("POSTGRES_DSN not set; using in-memory store")
		store := repository.NewMemoryStore()
		userRepo = store.Users()
		subRepo = store.Subscriptions()
		dependencies["store"] = store
	}

	var authRateLimit fiber.Handler
	if cfg.Auth.RateLimitPerMinute > 0 {
		redis := persistence.NewRedis(ctx, cfg.Redis, logger)
		defer redis.Close()
		limiter := redis.Limiter("cancelshield:ratelimit:auth:", cfg.Auth.RateLimitPerMinute, time.Minute)
		authRateLimit = ratelimit.Middleware(limiter, logger)
		dependencies["redis"] = redis
	}

	var sender mail.Sender
	if cfg.Mail.SendGridAPIKey != "" {
		sender = mail.NewSendGridSender(cfg.Mail, logger)
	} else {
		logger.Warn("SENDGRID_API_KEY not set; emails are logged only")
		sender = mail.NewLogSender(logger, cfg.Mail.SenderEmail)
	}

	authService, err := service.NewAuthService(cfg.Auth, userRepo, logger)
	if err != nil {
		logger.Fatal("failed to init auth service", zap.Error(err))
	}
	gate := auth.NewGate(authService.TokenManager(), userRepo)
	subscriptionService := service.NewSubscriptionService(subRepo)
	alertService := service.NewAlertService(sender, logger)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies, metrics),
		Users:          handlers.NewUsersHandler(authService),
		Subscriptions:  handlers.NewSubscriptionsHandler(subscriptionService),
		Alerts:         handlers.NewAlertsHandler(alertService),
		AuthMiddleware: auth.NewAuthMiddleware(gate),
		AuthRateLimit:  authRateLimit,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
