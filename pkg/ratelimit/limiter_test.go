package ratelimit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// setupTestRedis creates a test Redis client, skipping when no local
// Redis is available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15, // Use a separate DB for tests
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for testing: %v", err)
	}

	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush test DB: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

func TestBucketKey(t *testing.T) {
	at := time.Date(2025, 1, 4, 11, 42, 30, 0, time.UTC)
	want := "rate_limit:203.0.113.7:2025-01-04-11-42"
	if got := BucketKey("203.0.113.7", at); got != want {
		t.Errorf("BucketKey() = %q, want %q", got, want)
	}
}

func TestBucketKey_UTCNormalization(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	local := time.Date(2025, 1, 4, 16, 42, 0, 0, loc)
	utc := time.Date(2025, 1, 4, 11, 42, 0, 0, time.UTC)

	if BucketKey("c", local) != BucketKey("c", utc) {
		t.Error("Bucket keys must be computed in UTC regardless of input zone")
	}
}

func TestLimiter_CeilingEnforced(t *testing.T) {
	limiter := NewLimiter(setupTestRedis(t), 100, 60*time.Second, zerolog.Nop())

	// Pin the clock so the test cannot straddle a minute boundary.
	fixed := time.Date(2025, 1, 4, 11, 42, 0, 0, time.UTC)
	limiter.now = func() time.Time { return fixed }

	ctx := context.Background()
	client := fmt.Sprintf("client-%d", time.Now().UnixNano())

	for i := 1; i <= 100; i++ {
		if !limiter.Allow(ctx, client) {
			t.Fatalf("Request %d blocked, want first 100 allowed", i)
		}
	}

	if limiter.Allow(ctx, client) {
		t.Error("Request 101 allowed, want blocked")
	}
}

func TestLimiter_NewMinuteBucketResets(t *testing.T) {
	limiter := NewLimiter(setupTestRedis(t), 2, 60*time.Second, zerolog.Nop())

	fixed := time.Date(2025, 1, 4, 11, 42, 0, 0, time.UTC)
	limiter.now = func() time.Time { return fixed }

	ctx := context.Background()
	client := fmt.Sprintf("client-%d", time.Now().UnixNano())

	limiter.Allow(ctx, client)
	limiter.Allow(ctx, client)
	if limiter.Allow(ctx, client) {
		t.Fatal("Third request in the same bucket should be blocked")
	}

	// Advance into the next minute bucket.
	limiter.now = func() time.Time { return fixed.Add(time.Minute) }
	if !limiter.Allow(ctx, client) {
		t.Error("First request of a new minute bucket should be allowed")
	}
}

func TestLimiter_IndependentClients(t *testing.T) {
	limiter := NewLimiter(setupTestRedis(t), 1, 60*time.Second, zerolog.Nop())

	fixed := time.Date(2025, 1, 4, 11, 42, 0, 0, time.UTC)
	limiter.now = func() time.Time { return fixed }

	ctx := context.Background()

	if !limiter.Allow(ctx, "client-a") {
		t.Fatal("client-a's first request should be allowed")
	}
	if limiter.Allow(ctx, "client-a") {
		t.Error("client-a's second request should be blocked")
	}
	if !limiter.Allow(ctx, "client-b") {
		t.Error("client-b should have an independent counter")
	}
}

func TestLimiter_CounterTTL(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewLimiter(client, 100, 60*time.Second, zerolog.Nop())

	fixed := time.Date(2025, 1, 4, 11, 42, 0, 0, time.UTC)
	limiter.now = func() time.Time { return fixed }

	ctx := context.Background()
	limiter.Allow(ctx, "ttl-client")

	ttl, err := client.TTL(ctx, BucketKey("ttl-client", fixed)).Result()
	if err != nil {
		t.Fatalf("TTL: %v", err)
	}
	if ttl <= 0 || ttl > 60*time.Second {
		t.Errorf("Counter TTL = %v, want within (0, 60s]", ttl)
	}
}

func TestLimiter_FailsOpen(t *testing.T) {
	// Dead backend: every command errors, so every request must pass.
	client := redis.NewClient(&redis.Options{
		Addr:        "localhost:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	limiter := NewLimiter(client, 1, 60*time.Second, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if !limiter.Allow(ctx, "client-a") {
			t.Fatal("Limiter must fail open when the counter store is unavailable")
		}
	}
}
