package ratelimit

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/cancelshield/api/pkg/util/errorutil"
)

// Middleware limits requests per client IP and route. Limiter errors are
// logged and the request is let through.
func Middleware(limiter Limiter, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.IP() + ":" + c.Path()
		allowed, err := limiter.Allow(c.UserContext(), key)
		if err != nil {
			logger.Warn("rate limiter unavailable; allowing request", zap.String("key", key), zap.Error(err))
			return c.Next()
		}
		if !allowed {
			return apperrors.NewRateLimited("too many requests, try again later")
		}
		return c.Next()
	}
}
