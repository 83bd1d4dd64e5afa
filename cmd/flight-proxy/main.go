package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/flightwatch/flight-proxy/internal/httpapi"
	"github.com/flightwatch/flight-proxy/pkg/cache"
	"github.com/flightwatch/flight-proxy/pkg/config"
	"github.com/flightwatch/flight-proxy/pkg/logging"
	"github.com/flightwatch/flight-proxy/pkg/ratelimit"
	"github.com/flightwatch/flight-proxy/pkg/resolver"
	"github.com/flightwatch/flight-proxy/pkg/upstream"
)

func main() {
	cfg := config.FromEnv()

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.LogLevel),
		Pretty: cfg.LogPretty,
		Output: os.Stderr,
	})

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Redis backs both the response cache and the rate counters.
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisURL,
	})
	defer redisClient.Close()

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Str("addr", cfg.RedisURL).
			Msg("Failed to connect to Redis")
	}
	logger.Info().Str("addr", cfg.RedisURL).Msg("Connected to Redis")

	store := cache.NewStore(redisClient, logging.NewLogger("cache"))
	limiter := ratelimit.NewLimiter(redisClient, cfg.RateLimitCeiling,
		cfg.RateLimitWindow, logging.NewLogger("ratelimit"))

	client, err := upstream.New(upstream.Config{
		BaseURL:   cfg.UpstreamURL,
		AccessKey: cfg.AccessKey,
		Timeout:   cfg.RequestTimeout,
	}, logging.NewLogger("upstream"))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create upstream client")
	}

	res, err := resolver.New(resolver.Config{
		Cache:    store,
		Limiter:  limiter,
		Upstream: client,
		CacheTTL: cfg.CacheTTL,
		Logger:   logging.NewLogger("resolver"),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create resolver")
	}

	handler := httpapi.NewRouter(httpapi.NewServer(res, logging.NewLogger("httpapi")))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("Starting flight proxy")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-shutdownCtx.Done()
	logger.Info().Msg("Shutting down")

	timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(timeoutCtx); err != nil {
		logger.Error().Err(err).Msg("Shutdown did not complete cleanly")
	}
}
