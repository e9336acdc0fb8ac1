package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// redisTestDB keeps test data away from any local development database
const redisTestDB = 15

// NewRedisClient connects to a local Redis for integration tests, skipping
// the test when none is reachable. The test database is flushed before and
// after the test.
func NewRedisClient(t *testing.T) redis.UniversalClient {
	t.Helper()

	addr := "localhost:6379"
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   redisTestDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("redis not available at %s: %v", addr, err)
	}

	require.NoError(t, client.FlushDB(ctx).Err(), "flush test redis database")

	t.Cleanup(func() {
		_ = client.FlushDB(context.Background()).Err()
		_ = client.Close()
	})

	return client
}
