package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cancelshield/api/internal/api/http/handlers"
	"github.com/cancelshield/api/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Subscriptions  *handlers.SubscriptionsHandler
	Alerts         *handlers.AlertsHandler
	AuthMiddleware *auth.AuthMiddleware
	// AuthRateLimit guards the credential endpoints. Nil disables it.
	AuthRateLimit fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")
	api.Get("/", cfg.Health.Root)

	authGroup := api.Group("/auth")
	if cfg.AuthRateLimit != nil {
		authGroup.Use(cfg.AuthRateLimit)
	}
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	// attached per route: a Group("") middleware would also run for unmatched /api paths
	requireUser := cfg.AuthMiddleware.Handle
	api.Get("/subscriptions", requireUser, cfg.Subscriptions.List)
	api.Post("/subscriptions", requireUser, cfg.Subscriptions.Create)
	api.Post("/alerts/test", requireUser, cfg.Alerts.SendTest)
}
