package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Limiter decides whether another request for key fits in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// slidingWindow trims entries older than the window, then admits the request
// only if the remaining count is below the rate.
var slidingWindow = redis.NewScript(`
	local key = KEYS[1]
	local window_start = tonumber(ARGV[1])
	local now = tonumber(ARGV[2])
	local rate = tonumber(ARGV[3])
	local member = ARGV[4]
	local window_ms = tonumber(ARGV[5])

	redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)

	if redis.call('ZCARD', key) >= rate then
		return 0
	end

	redis.call('ZADD', key, now, member)
	redis.call('PEXPIRE', key, window_ms)
	return 1
`)

// RedisLimiter is a sliding-window limiter shared by every API instance.
type RedisLimiter struct {
	client    redis.Cmdable
	keyPrefix string
	rate      int
	window    time.Duration
}

// NewRedisLimiter builds a limiter admitting rate requests per window and key.
func NewRedisLimiter(client redis.Cmdable, keyPrefix string, rate int, window time.Duration) *RedisLimiter {
	if keyPrefix == "" {
		keyPrefix = "ratelimit:"
	}
	return &RedisLimiter{client: client, keyPrefix: keyPrefix, rate: rate, window: window}
}

// Allow records the request and reports whether it is within the limit.
func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	now := time.Now()
	result, err := slidingWindow.Run(ctx, r.client, []string{r.keyPrefix + key},
		now.Add(-r.window).UnixMicro(),
		now.UnixMicro(),
		r.rate,
		uuid.NewString(),
		r.window.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("redis rate limit script failed: %w", err)
	}
	return result == 1, nil
}
