package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwolters/athletesim/internal/errors"
	"github.com/mwolters/athletesim/internal/metrics"
	"github.com/mwolters/athletesim/internal/race"
	"github.com/mwolters/athletesim/internal/runner"
)

func TestCompute_Empty(t *testing.T) {
	s := metrics.Compute(nil)

	assert.Equal(t, 0, s.Races)
	assert.Equal(t, 0, s.Failures)
	assert.Zero(t, s.Tightness)
	assert.Zero(t, s.Volatility)
	assert.Empty(t, s.Racers)
}

func TestCompute_SingleRace(t *testing.T) {
	res := &race.Result{
		RaceID:    "m1",
		Turns:     4,
		Standings: []int{0},
		Racers: []race.RacerResult{
			{Idx: 0, Name: race.RacerPlain, Position: 5, FinishRank: 1, VictoryPoints: 4},
			{Idx: 1, Name: race.RacerHare, Position: 9, VictoryPoints: 1},
		},
		PositionsByTurn: [][]int{
			{2, 0},
			{2, 3},
			{5, 3},
			{5, 9},
		},
	}

	s := metrics.Compute([]runner.BatchEntry{
		{Index: 0, Seed: 7, Result: res},
		{Index: 1, Seed: 8, Err: errors.Internal("race panicked")},
	})

	assert.Equal(t, 1, s.Races)
	assert.Equal(t, 1, s.Failures)
	assert.InDelta(t, 4.0, s.AvgTurns, 1e-9)

	// mean absolute deviations per turn: 1, 0.5, 1, 2
	assert.InDelta(t, 1.125, s.Tightness, 1e-9)

	// the lead flips on every one of the three transitions
	assert.InDelta(t, 1.0, s.Volatility, 1e-9)

	require.Len(t, s.Racers, 2)
	hare, plain := s.Racers[0], s.Racers[1]
	require.Equal(t, race.RacerHare, hare.Name)
	require.Equal(t, race.RacerPlain, plain.Name)

	assert.Equal(t, 1, plain.Wins)
	assert.InDelta(t, 1.0, plain.WinRate, 1e-9)
	assert.InDelta(t, 4.0, plain.AvgPoints, 1e-9)
	assert.Equal(t, 0, hare.Wins)
	assert.InDelta(t, 1.0, hare.AvgPoints, 1e-9)

	// mid-race snapshot is turn 2: positions 5 and 3, leader 5
	assert.InDelta(t, 1.0, plain.MidgameRelPos, 1e-9)
	assert.InDelta(t, 0.6, hare.MidgameRelPos, 1e-9)
}

func TestCompute_AveragesAcrossRaces(t *testing.T) {
	mk := func(turns, winnerVP int, winner int) *race.Result {
		racers := []race.RacerResult{
			{Idx: 0, Name: race.RacerPlain},
			{Idx: 1, Name: race.RacerGunk},
		}
		racers[winner].FinishRank = 1
		racers[winner].VictoryPoints = winnerVP
		return &race.Result{
			Turns:     turns,
			Standings: []int{winner},
			Racers:    racers,
			PositionsByTurn: [][]int{
				{1, 2},
				{3, 4},
			},
		}
	}

	s := metrics.Compute([]runner.BatchEntry{
		{Result: mk(6, 4, 0)},
		{Result: mk(10, 4, 1)},
	})

	assert.Equal(t, 2, s.Races)
	assert.InDelta(t, 8.0, s.AvgTurns, 1e-9)
	assert.InDelta(t, 0.0, s.Volatility, 1e-9, "standings never reorder")

	require.Len(t, s.Racers, 2)
	for _, rs := range s.Racers {
		assert.Equal(t, 2, rs.Races)
		assert.Equal(t, 1, rs.Wins)
		assert.InDelta(t, 0.5, rs.WinRate, 1e-9)
		assert.InDelta(t, 2.0, rs.AvgPoints, 1e-9)
	}
}
