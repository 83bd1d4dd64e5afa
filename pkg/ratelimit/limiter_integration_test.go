//go:build integration

package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedis starts a Redis container and returns a client
func setupRedis(t *testing.T) (*redis.Client, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}

	endpoint, err := redisContainer.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("Failed to get Redis endpoint: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: endpoint,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("Failed to connect to Redis: %v", err)
	}

	cleanup := func() {
		client.Close()
		redisContainer.Terminate(ctx)
	}

	return client, cleanup
}

func TestLimiter_Integration_CeilingAndExpiry(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	// Short window so the expiry leg of the test stays fast.
	limiter := NewLimiter(redisClient, 3, 2*time.Second, zerolog.Nop())
	fixed := time.Date(2025, 1, 4, 11, 42, 0, 0, time.UTC)
	limiter.now = func() time.Time { return fixed }

	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		if !limiter.Allow(ctx, "it-client") {
			t.Fatalf("Request %d blocked, want allowed", i)
		}
	}
	if limiter.Allow(ctx, "it-client") {
		t.Fatal("Request above ceiling allowed, want blocked")
	}

	// The counter expires with its TTL even when the bucket key is reused.
	time.Sleep(2500 * time.Millisecond)
	if !limiter.Allow(ctx, "it-client") {
		t.Error("Counter should have expired with its TTL")
	}
}

func TestLimiter_Integration_AtomicUnderConcurrency(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	limiter := NewLimiter(redisClient, 50, 60*time.Second, zerolog.Nop())
	fixed := time.Date(2025, 1, 4, 11, 42, 0, 0, time.UTC)
	limiter.now = func() time.Time { return fixed }

	ctx := context.Background()
	results := make(chan bool, 100)

	for i := 0; i < 100; i++ {
		go func() {
			results <- limiter.Allow(ctx, "concurrent-client")
		}()
	}

	allowed := 0
	for i := 0; i < 100; i++ {
		if <-results {
			allowed++
		}
	}

	// INCR is atomic, so exactly the ceiling gets through.
	if allowed != 50 {
		t.Errorf("Allowed %d of 100 concurrent requests, want exactly 50", allowed)
	}
}
