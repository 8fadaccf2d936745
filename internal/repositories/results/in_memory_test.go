package results

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwolters/athletesim/internal/errors"
	"github.com/mwolters/athletesim/internal/testutils"
)

func inMemoryRecord(id, batchID string) *Record {
	return &Record{
		ID:      id,
		BatchID: batchID,
		Seed:    7,
		Result:  testutils.CreateTestResult(id),
	}
}

func TestInMemory_SaveAndGet(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	rec := inMemoryRecord("race-1", "batch-1")
	require.NoError(t, repo.Save(ctx, rec))

	got, err := repo.Get(ctx, "race-1")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Seed, got.Seed)
	assert.Equal(t, rec.Result.Standings, got.Result.Standings)

	// stored records are snapshots; later mutation must not leak in
	rec.Seed = 99
	again, err := repo.Get(ctx, "race-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), again.Seed)
}

func TestInMemory_GetMissing(t *testing.T) {
	repo := NewInMemoryRepository()

	_, err := repo.Get(context.Background(), "nope")
	assert.True(t, errors.IsNotFound(err))
}

func TestInMemory_Validation(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	assert.True(t, errors.IsInvalidArgument(repo.Save(ctx, nil)))
	assert.True(t, errors.IsInvalidArgument(repo.Save(ctx, &Record{})))

	_, err := repo.Get(ctx, "")
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = repo.ListByBatch(ctx, "")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestInMemory_ListByBatch(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, inMemoryRecord("race-a", "batch-1")))
	require.NoError(t, repo.Save(ctx, inMemoryRecord("race-b", "batch-1")))
	require.NoError(t, repo.Save(ctx, inMemoryRecord("race-c", "batch-2")))

	got, err := repo.ListByBatch(ctx, "batch-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "race-a", got[0].ID)
	assert.Equal(t, "race-b", got[1].ID)

	empty, err := repo.ListByBatch(ctx, "no-such-batch")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestInMemory_ResaveKeepsBatchIndexStable(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	rec := inMemoryRecord("race-a", "batch-1")
	require.NoError(t, repo.Save(ctx, rec))

	rec.Seed = 100
	require.NoError(t, repo.Save(ctx, rec))

	got, err := repo.ListByBatch(ctx, "batch-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(100), got[0].Seed)
}
