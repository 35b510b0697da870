package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a live server only: TEST_REDIS_URL=redis://localhost:6379/15
func newTestClient(t *testing.T) *goredis.Client {
	t.Helper()
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	opt, err := goredis.ParseURL(url)
	require.NoError(t, err)
	rdb := goredis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestLeadDedupRepositoryClaimConfirmRelease(t *testing.T) {
	ctx := context.Background()
	repo := NewLeadDedupRepository(newTestClient(t))
	hash := uuid.NewString()
	t.Cleanup(func() { repo.Release(ctx, hash) })

	ok, existing, err := repo.Claim(ctx, hash, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, existing)

	ok, existing, err = repo.Claim(ctx, hash, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, existing)

	require.NoError(t, repo.Confirm(ctx, hash, "lead-42", time.Minute))
	_, existing, err = repo.Claim(ctx, hash, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "lead-42", existing)

	require.NoError(t, repo.Release(ctx, hash))
	ok, _, err = repo.Claim(ctx, hash, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
