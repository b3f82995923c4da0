package testutils

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// TestRedisURLEnv points the Redis backed tests at an existing server
const TestRedisURLEnv = "TEST_REDIS_URL"

// tokenKeyPatterns match every key the token repository writes
var tokenKeyPatterns = []string{"token:*", "token_index:*"}

// TestRedisConfig addresses the Redis a test talks to
type TestRedisConfig struct {
	URL string
}

// DefaultTestRedisConfig uses TEST_REDIS_URL, or DB 15 on localhost so a
// developer's own logins are left alone
func DefaultTestRedisConfig() *TestRedisConfig {
	if url := os.Getenv(TestRedisURLEnv); url != "" {
		return &TestRedisConfig{URL: url}
	}
	return &TestRedisConfig{URL: "redis://localhost:6379/15"}
}

// CreateTestRedisClient connects to the configured Redis and clears stored
// tokens before and after the test. The test is skipped when Redis is not
// reachable.
func CreateTestRedisClient(t *testing.T, cfg *TestRedisConfig) redis.UniversalClient {
	t.Helper()
	if cfg == nil {
		cfg = DefaultTestRedisConfig()
	}

	opts, err := redis.ParseURL(cfg.URL)
	require.NoError(t, err, "invalid test redis url")
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := WaitForRedis(ctx, client); err != nil {
		_ = client.Close()
		t.Skipf("Redis not available for testing: %v", err)
	}

	require.NoError(t, clearTokens(ctx, client), "failed to clear test tokens")

	t.Cleanup(func() {
		_ = clearTokens(context.Background(), client)
		_ = client.Close()
	})

	return client
}

// WaitForRedis pings until the server answers or ctx is done
func WaitForRedis(ctx context.Context, client *redis.Client) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		err := client.Ping(ctx).Err()
		if err == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return err
		case <-ticker.C:
		}
	}
}

func clearTokens(ctx context.Context, client *redis.Client) error {
	var keys []string
	for _, pattern := range tokenKeyPatterns {
		iter := client.Scan(ctx, 0, pattern, 100).Iterator()
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return err
		}
	}
	if len(keys) == 0 {
		return nil
	}
	return client.Del(ctx, keys...).Err()
}
