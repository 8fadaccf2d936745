package results

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwolters/athletesim/internal/errors"
	"github.com/mwolters/athletesim/internal/testutils"
)

// Integration tests against a live Redis; skipped when none is reachable.

func TestRedisRepository_Integration_RoundTrip(t *testing.T) {
	client := testutils.CreateTestRedisClientOrSkip(t)
	repo := NewRedisRepository(&RedisRepoConfig{Client: client, ResultTTL: time.Minute})
	ctx := context.Background()

	rec := &Record{
		ID:        "it-race-1",
		BatchID:   "it-batch-1",
		Seed:      11,
		Result:    testutils.CreateTestResult("it-race-1"),
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, repo.Save(ctx, rec))

	got, err := repo.Get(ctx, "it-race-1")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Seed, got.Seed)
	assert.Equal(t, rec.CreatedAt, got.CreatedAt)
	assert.Equal(t, rec.Result.Standings, got.Result.Standings)
}

func TestRedisRepository_Integration_BatchOrder(t *testing.T) {
	client := testutils.CreateTestRedisClientOrSkip(t)
	repo := NewRedisRepository(&RedisRepoConfig{Client: client, ResultTTL: time.Minute})
	ctx := context.Background()

	ids := []string{"it-a", "it-b", "it-c"}
	for i, id := range ids {
		require.NoError(t, repo.Save(ctx, &Record{
			ID:      id,
			BatchID: "it-batch-2",
			Seed:    int64(i),
			Result:  testutils.CreateTestResult(id),
		}))
	}

	got, err := repo.ListByBatch(ctx, "it-batch-2")
	require.NoError(t, err)
	require.Len(t, got, len(ids))
	for i, rec := range got {
		assert.Equal(t, ids[i], rec.ID)
	}
}

func TestRedisRepository_Integration_Missing(t *testing.T) {
	client := testutils.CreateTestRedisClientOrSkip(t)
	repo := NewRedisRepository(&RedisRepoConfig{Client: client})

	_, err := repo.Get(context.Background(), "it-never-saved")
	assert.True(t, errors.IsNotFound(err))
}
