package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mwolters/athletesim/internal/race"
	"github.com/mwolters/athletesim/internal/repositories/results"
	mockresults "github.com/mwolters/athletesim/internal/repositories/results/mock"
	"github.com/mwolters/athletesim/internal/runner"
)

func TestPersistBatch_SavesSuccessfulEntriesOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mockresults.NewMockRepository(ctrl)

	entries := []runner.BatchEntry{
		{Index: 0, Seed: 100, Result: &race.Result{RaceID: "race-1"}},
		{Index: 1, Seed: 101, Err: assert.AnError},
		{Index: 2, Seed: 102, Result: &race.Result{RaceID: "race-2"}},
	}

	var saved []string
	repo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *results.Record) error {
			assert.Equal(t, "batch-7", rec.BatchID)
			assert.False(t, rec.CreatedAt.IsZero())
			saved = append(saved, rec.ID)
			return nil
		}).
		Times(2)

	n, err := persistBatch(context.Background(), repo, "batch-7", entries)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"race-1", "race-2"}, saved)
}

func TestPersistBatch_StopsOnFirstSaveError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mockresults.NewMockRepository(ctrl)

	entries := []runner.BatchEntry{
		{Index: 0, Seed: 1, Result: &race.Result{RaceID: "race-1"}},
		{Index: 1, Seed: 2, Result: &race.Result{RaceID: "race-2"}},
	}

	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(assert.AnError)

	n, err := persistBatch(context.Background(), repo, "batch-x", entries)
	require.Error(t, err)
	assert.Equal(t, 0, n)
}

func TestCSVRacers(t *testing.T) {
	var r csvRacers
	require.NoError(t, r.Set("Hare, Banana ,Plain"))
	assert.Equal(t, csvRacers{race.RacerHare, race.RacerBanana, race.RacerPlain}, r)
	assert.Equal(t, "Hare,Banana,Plain", r.String())

	require.NoError(t, r.Set(""))
	assert.Empty(t, r)
}

func TestBoardByName(t *testing.T) {
	b, err := boardByName("standard")
	require.NoError(t, err)
	assert.Equal(t, 30, b.Length())

	b, err = boardByName("wildwilds")
	require.NoError(t, err)
	assert.True(t, b.IsSpecial(9))

	_, err = boardByName("moon")
	assert.Error(t, err)
}
