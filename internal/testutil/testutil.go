// Package testutil provides shared helpers for integration-style tests.
package testutil

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewTestLogger returns a logger that discards output. Tests assert on
// behavior, not log lines.
func NewTestLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// TestingTB is the subset of testing.TB used by these helpers, kept as an
// interface so helpers remain usable from TestMain-style call sites.
type TestingTB interface {
	Helper()
	Skip(args ...any)
	Fatal(args ...any)
	Cleanup(func())
}

// SetupTestRedis returns a Redis client for tests, skipping the test when
// no Redis is reachable. The address defaults to the local docker-compose
// instance and can be overridden with TEST_REDIS_ADDR.
func SetupTestRedis(t TestingTB) *redis.Client {
	t.Helper()

	addr := getEnvOrDefault("TEST_REDIS_ADDR", "localhost:6379")
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("TEST_REDIS_PASSWORD"),
		DB:       15, // keep test keys away from any local dev data
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skip("Redis not available at", addr, "- skipping:", err)
		return nil
	}

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cleanupCancel()
		_ = client.FlushDB(cleanupCtx).Err()
	})

	return client
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
