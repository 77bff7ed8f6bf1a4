package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cancelshield/api/internal/config"
	"github.com/cancelshield/api/internal/ratelimit"
)

// Short timeouts bound the latency a limiter check adds to auth requests.
const (
	redisDialTimeout = 2 * time.Second
	redisIOTimeout   = 500 * time.Millisecond
)

// Redis wraps the go-redis client used for shared rate-limit windows.
type Redis struct {
	Client *redis.Client
}

// NewRedis creates the client and probes it once. An unreachable server is
// logged, not fatal: the client reconnects on later commands.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  redisDialTimeout,
		ReadTimeout:  redisIOTimeout,
		WriteTimeout: redisIOTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable; auth rate limiting fails open until it recovers",
			zap.String("addr", cfg.Addr), zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	}

	return &Redis{Client: client}
}

// Limiter returns a sliding-window limiter admitting rate requests per window
// for each key under prefix.
func (r *Redis) Limiter(prefix string, rate int, window time.Duration) *ratelimit.RedisLimiter {
	return ratelimit.NewRedisLimiter(r.Client, prefix, rate, window)
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity for the readiness probe.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}
