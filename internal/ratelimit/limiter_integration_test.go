package ratelimit

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	if os.Getenv("SKIP_DOCKER") == "1" {
		t.Skip("SKIP_DOCKER=1 set; skipping integration test")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker not available: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker not available: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7-alpine",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pool.Purge(resource)
	})

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("localhost:%s", resource.GetPort("6379/tcp"))})
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, pool.Retry(func() error {
		return client.Ping(context.Background()).Err()
	}))
	return client
}

func TestRedisLimiter_SlidingWindow(t *testing.T) {
	client := startRedis(t)
	ctx := context.Background()
	limiter := NewRedisLimiter(client, "test:", 3, 500*time.Millisecond)

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "10.0.0.1:/api/auth/login")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d", i)
	}

	allowed, err := limiter.Allow(ctx, "10.0.0.1:/api/auth/login")
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = limiter.Allow(ctx, "10.0.0.2:/api/auth/login")
	require.NoError(t, err)
	assert.True(t, allowed, "other keys are independent")

	time.Sleep(600 * time.Millisecond)
	allowed, err = limiter.Allow(ctx, "10.0.0.1:/api/auth/login")
	require.NoError(t, err)
	assert.True(t, allowed, "window slid past earlier requests")
}
