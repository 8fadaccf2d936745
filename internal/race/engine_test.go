package race_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mwolters/athletesim/internal/board"
	mockdice "github.com/mwolters/athletesim/internal/dice/mock"
	simerr "github.com/mwolters/athletesim/internal/errors"
	"github.com/mwolters/athletesim/internal/race"
	"github.com/mwolters/athletesim/internal/race/ability"
	mockrace "github.com/mwolters/athletesim/internal/race/mock"
	"github.com/mwolters/athletesim/internal/testutils"
)

func shortBoard(length int) *board.Board {
	return board.New(&board.Config{Name: "test", Length: length})
}

func plainNames(n int) []race.RacerName {
	names := make([]race.RacerName, n)
	for i := range names {
		names[i] = race.RacerPlain
	}
	return names
}

// Two plain racers on a short board with scripted dice: A reaches 4, then 7,
// then crosses the line on its third turn; B trails and finishes second.
func TestRun_ScriptedTwoRacerRace(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{4, 2, 3, 2, 6, 6})

	engine, err := race.New(&race.Config{
		RaceID:  "scripted",
		Board:   shortBoard(10),
		Racers:  plainNames(2),
		Policy:  &testutils.ScriptedPolicy{},
		Factory: ability.New,
		Roller:  roller,
	})
	require.NoError(t, err)

	result, err := engine.Run()
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1}, result.Standings)
	assert.Equal(t, 0, result.Winner())
	assert.Equal(t, race.ErrCode(""), result.ErrCode)

	a := result.Racers[0]
	assert.Equal(t, 1, a.FinishRank)
	assert.Equal(t, 13, a.Position)
	assert.Equal(t, 4, a.VictoryPoints, "winner payout")

	b := result.Racers[1]
	assert.Equal(t, 2, b.FinishRank)
	assert.Equal(t, 1, b.VictoryPoints)

	// A's winning roll happens on its third turn, global turn index 4
	var finishTurns []int
	for _, rec := range result.Log {
		if rec.Type == race.RecordFinish && rec.Racer == 0 {
			finishTurns = append(finishTurns, rec.Turn)
		}
	}
	require.Len(t, finishTurns, 1)
	assert.Equal(t, 4, finishTurns[0])
}

func TestRun_DeterministicForSameSeed(t *testing.T) {
	run := func() *race.Result {
		engine, err := race.New(&race.Config{
			RaceID:  "fixed-id",
			Board:   board.Standard(),
			Racers:  []race.RacerName{race.RacerHare, race.RacerMagician, race.RacerBanana, race.RacerLegs},
			Seed:    12345,
			Policy:  &testutils.ScriptedPolicy{Bools: []bool{true, true, true, true, true, true}},
			Factory: ability.New,
		})
		require.NoError(t, err)
		result, err := engine.Run()
		require.NoError(t, err)
		return result
	}

	first := run()
	second := run()

	assert.Equal(t, first.Standings, second.Standings)
	assert.Equal(t, first.Turns, second.Turns)
	assert.Equal(t, first.Log, second.Log)
	assert.Equal(t, first.PositionsByTurn, second.PositionsByTurn)
}

func TestRun_SeedsProduceDifferentRaces(t *testing.T) {
	run := func(seed int64) *race.Result {
		engine, err := race.New(&race.Config{
			RaceID:  "fixed-id",
			Board:   board.Standard(),
			Racers:  plainNames(4),
			Seed:    seed,
			Policy:  &testutils.ScriptedPolicy{},
			Factory: ability.New,
		})
		require.NoError(t, err)
		result, err := engine.Run()
		require.NoError(t, err)
		return result
	}

	// not guaranteed for any single pair of seeds, but these diverge
	a := run(1)
	b := run(99)
	assert.NotEqual(t, a.Log, b.Log)
}

// tripWire trips any opponent that lands exactly two tiles ahead of it
type tripWire struct{}

func (tripWire) Name() race.Source          { return "TripWire" }
func (tripWire) Triggers() []race.EventType { return []race.EventType{race.EventPostMove} }

func (tw tripWire) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	if ev.Target == owner.Idx || ev.EndTile != owner.Position+2 {
		return
	}
	e.PushTrip(ev.Target, owner.Idx, tw.Name())
}

func TestRun_TripVictimLosesNextMoveAndResumesFromTile(t *testing.T) {
	factory := func(name race.RacerName) []race.Ability {
		if name == race.RacerBanana { // stand-in archetype carrying the test ability
			return []race.Ability{tripWire{}}
		}
		return nil
	}

	// racer 0 rolls 2, landing exactly 2 ahead of racer 1 at tile 0
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{2, 1, 3, 1, 5, 1, 6, 2})

	engine, err := race.New(&race.Config{
		RaceID:  "trip-test",
		Board:   shortBoard(12),
		Racers:  []race.RacerName{race.RacerPlain, race.RacerBanana},
		Policy:  &testutils.ScriptedPolicy{},
		Factory: factory,
		Roller:  roller,
	})
	require.NoError(t, err)

	result, err := engine.Run()
	require.NoError(t, err)

	var (
		tripTurn = -1
		rollsBy0 []int
	)
	for _, rec := range result.Log {
		if rec.Type == race.RecordTrip && rec.Racer == 0 {
			tripTurn = rec.Turn
		}
		if rec.Type == race.RecordRoll && rec.Racer == 0 {
			rollsBy0 = append(rollsBy0, rec.Turn)
		}
	}
	require.NotEqual(t, -1, tripTurn, "trip must be recorded")

	// turn 0: racer 0 moves to 2 and is tripped; turn 2 is spent recovering,
	// so its second roll lands on turn 4
	assert.Equal(t, 0, tripTurn)
	require.GreaterOrEqual(t, len(rollsBy0), 2)
	assert.Equal(t, 0, rollsBy0[0])
	assert.Equal(t, 4, rollsBy0[1])

	// recovery must not move the racer; its next move starts from tile 2
	var movesBy0 []race.Record
	for _, rec := range result.Log {
		if rec.Type == race.RecordMove && rec.Racer == 0 {
			movesBy0 = append(movesBy0, rec)
		}
	}
	require.GreaterOrEqual(t, len(movesBy0), 2)
	assert.Equal(t, 0, movesBy0[0].From)
	assert.Equal(t, 2, movesBy0[0].To)
	assert.Equal(t, 2, movesBy0[1].From, "post-trip move starts from the tripped tile")
}

func TestRun_RerollBudgetCapsStackedAbilities(t *testing.T) {
	// two independent reroll abilities on one racer, policy always rerolls
	factory := func(name race.RacerName) []race.Ability {
		if name == race.RacerMagician {
			return append(ability.New(race.RacerMagician), ability.New(race.RacerMagician)...)
		}
		return nil
	}

	engine, err := race.New(&race.Config{
		RaceID: "reroll-cap",
		Board:  shortBoard(20),
		Racers: []race.RacerName{race.RacerMagician, race.RacerPlain},
		Seed:   7,
		Policy: &testutils.ScriptedPolicy{
			Bools: []bool{true, true, true, true, true, true, true, true, true, true,
				true, true, true, true, true, true, true, true, true, true},
		},
		Factory: factory,
		Rules: race.Rules{
			MaxRerollsPerTurn: 2,
		},
	})
	require.NoError(t, err)

	result, err := engine.Run()
	require.NoError(t, err)

	rerollsByTurn := map[int]int{}
	for _, rec := range result.Log {
		if rec.Type == race.RecordAbility && rec.Source == ability.TagMagician {
			rerollsByTurn[rec.Turn]++
		}
	}
	for turn, n := range rerollsByTurn {
		assert.LessOrEqual(t, n, 2, "turn %d exceeded the reroll budget", turn)
	}
}

func TestRun_ReplayReproducesOutcome(t *testing.T) {
	engine, err := race.New(&race.Config{
		RaceID:  "replay",
		Board:   board.Standard(),
		Racers:  []race.RacerName{race.RacerHare, race.RacerLegs, race.RacerBanana, race.RacerPlain},
		Seed:    99,
		Policy:  &testutils.ScriptedPolicy{Bools: []bool{true, true, true}},
		Factory: ability.New,
	})
	require.NoError(t, err)

	result, err := engine.Run()
	require.NoError(t, err)

	summary := race.Replay(result.Log, len(result.Racers))

	assert.Equal(t, result.Standings, summary.Standings)
	for i, rr := range result.Racers {
		assert.Equal(t, rr.Position, summary.Positions[i], "racer %d position", i)
	}
}

func TestRun_PlainRacersNeverMoveBackward(t *testing.T) {
	engine, err := race.New(&race.Config{
		RaceID:  "monotonic",
		Board:   board.Standard(),
		Racers:  plainNames(4),
		Seed:    3,
		Policy:  &testutils.ScriptedPolicy{},
		Factory: ability.New,
	})
	require.NoError(t, err)

	result, err := engine.Run()
	require.NoError(t, err)

	for turn := 1; turn < len(result.PositionsByTurn); turn++ {
		prev, cur := result.PositionsByTurn[turn-1], result.PositionsByTurn[turn]
		for i := range cur {
			assert.GreaterOrEqual(t, cur[i], prev[i], "racer %d regressed on turn %d", i, turn)
		}
	}
}

func TestRun_ScoocherFeedbackTerminates(t *testing.T) {
	engine, err := race.New(&race.Config{
		RaceID:  "scooch-loop",
		Board:   board.Standard(),
		Racers:  []race.RacerName{race.RacerScoocher, race.RacerScoocher, race.RacerHypnotist},
		Seed:    11,
		Policy:  &testutils.ScriptedPolicy{Selects: []int{0, 0, 0, 0, 0, 0, 0, 0}},
		Factory: ability.New,
	})
	require.NoError(t, err)

	result, err := engine.Run()
	require.NoError(t, err)
	assert.NotEmpty(t, result.Standings, "race must terminate with finishers")
}

func TestRun_SoleSurvivorFinishes(t *testing.T) {
	// Mouth eats a lone co-located racer; with two racers that ends the race
	engine, err := race.New(&race.Config{
		RaceID:  "mouth-test",
		Board:   shortBoard(15),
		Racers:  []race.RacerName{race.RacerMouth, race.RacerPlain},
		Seed:    5,
		Policy:  &testutils.ScriptedPolicy{},
		Factory: ability.New,
	})
	require.NoError(t, err)

	result, err := engine.Run()
	require.NoError(t, err)

	// either the race ran its course or an elimination ended it early;
	// in both cases every active racer must hold a rank
	for _, rr := range result.Racers {
		if !rr.Eliminated {
			assert.Greater(t, rr.FinishRank, 0, "racer %d must be ranked", rr.Idx)
		}
	}
}

func TestRun_RollerFailureAbortsRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	roller := mockdice.NewMockRoller(ctrl)
	roller.EXPECT().Roll(6).Return(0, assert.AnError)

	engine, err := race.New(&race.Config{
		RaceID:  "bad-roller",
		Board:   shortBoard(10),
		Racers:  plainNames(2),
		Policy:  &testutils.ScriptedPolicy{},
		Factory: ability.New,
		Roller:  roller,
	})
	require.NoError(t, err)

	result, err := engine.Run()
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, simerr.IsInvariant(err))
}

func TestRun_RerollDecisionsCarryRollContext(t *testing.T) {
	ctrl := gomock.NewController(t)

	// Roll points into live engine state, so inspect it at decision time
	prompts := 0
	policy := mockrace.NewMockPolicy(ctrl)
	policy.EXPECT().
		DecideBool(gomock.Any()).
		DoAndReturn(func(d *race.Decision) bool {
			prompts++
			assert.Equal(t, race.ChoiceRerollOrKeep, d.Kind)
			assert.Equal(t, ability.TagMagician, d.OnBehalfOf)
			assert.Equal(t, 0, d.Actor)
			if assert.NotNil(t, d.Roll) {
				assert.True(t, d.Roll.CanReroll)
				assert.GreaterOrEqual(t, d.Roll.DiceValue, 1)
				assert.LessOrEqual(t, d.Roll.DiceValue, 6)
			}
			return false
		}).
		AnyTimes()
	policy.EXPECT().DecideSelect(gomock.Any()).Return(-1).AnyTimes()

	engine, err := race.New(&race.Config{
		RaceID:  "decision-ctx",
		Board:   shortBoard(10),
		Racers:  []race.RacerName{race.RacerMagician, race.RacerPlain},
		Seed:    21,
		Policy:  policy,
		Factory: ability.New,
	})
	require.NoError(t, err)

	_, err = engine.Run()
	require.NoError(t, err)
	assert.Greater(t, prompts, 0, "the reroll prompt must reach the policy")
}

func TestRun_FixedRollClosesTheRerollWindow(t *testing.T) {
	ctrl := gomock.NewController(t)

	// steady stride plus a reroll ability on the same racer: accepting the
	// fixed 5 must leave nothing for the reroll to act on
	factory := func(name race.RacerName) []race.Ability {
		if name == race.RacerLegs {
			return append(ability.New(race.RacerLegs), ability.New(race.RacerMagician)...)
		}
		return nil
	}

	policy := mockrace.NewMockPolicy(ctrl)
	policy.EXPECT().
		DecideBool(gomock.Any()).
		DoAndReturn(func(d *race.Decision) bool {
			assert.Equal(t, race.ChoiceUseAbility, d.Kind)
			assert.Equal(t, ability.TagLegs, d.OnBehalfOf)
			return true
		}).
		Times(1)
	policy.EXPECT().DecideSelect(gomock.Any()).Return(-1).AnyTimes()

	// an empty script doubles as a check that the fixed value skips the die
	engine, err := race.New(&race.Config{
		RaceID:  "override-window",
		Board:   shortBoard(10),
		Racers:  []race.RacerName{race.RacerLegs, race.RacerPlain},
		Policy:  policy,
		Factory: factory,
		Roller:  mockdice.NewManualMockRoller(),
		Rules:   race.Rules{MaxTurns: 1},
	})
	require.NoError(t, err)

	result, err := engine.Run()
	require.NoError(t, err)

	assert.Equal(t, 5, result.Racers[0].Position)

	var rolls int
	for _, rec := range result.Log {
		if rec.Type == race.RecordRoll && rec.Racer == 0 {
			rolls++
			assert.Equal(t, 0, rec.Dice, "a fixed value is not a die roll")
			assert.Equal(t, 5, rec.Base)
			assert.Equal(t, 5, rec.Final)
		}
	}
	assert.Equal(t, 1, rolls)
}

func TestRun_BackwardAbilityMovesRecordAsWarps(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	// the centaur passes the plain racer on turn 1 and kicks it from 3 to 1
	roller.SetRolls([]int{3, 5})

	engine, err := race.New(&race.Config{
		RaceID:  "kick-log",
		Board:   board.Standard(),
		Racers:  []race.RacerName{race.RacerPlain, race.RacerCentaur},
		Policy:  &testutils.ScriptedPolicy{},
		Factory: ability.New,
		Roller:  roller,
		Rules:   race.Rules{MaxTurns: 2},
	})
	require.NoError(t, err)

	result, err := engine.Run()
	require.NoError(t, err)

	var kicked bool
	for _, rec := range result.Log {
		switch rec.Type {
		case race.RecordWarp:
			if rec.Racer == 0 && rec.Source == ability.TagCentaur {
				kicked = true
				assert.Equal(t, 3, rec.From)
				assert.Equal(t, 1, rec.To)
			}
		case race.RecordMove:
			assert.GreaterOrEqual(t, rec.To, rec.From, "move records stay forward-only")
		}
	}
	require.True(t, kicked)

	// the relabelled record must still replay to the same positions
	summary := race.Replay(result.Log, len(result.Racers))
	for i, rr := range result.Racers {
		assert.Equal(t, rr.Position, summary.Positions[i], "racer %d position", i)
	}
}

func TestRun_FinishedRacerLosesAbilities(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	// Gunk's slime drags opponents by 1 until Gunk finishes on turn 3;
	// rolls after that must resolve unmodified
	roller.SetRolls([]int{6, 3, 3, 6, 4, 4, 6})

	engine, err := race.New(&race.Config{
		RaceID:  "strip-test",
		Board:   shortBoard(12),
		Racers:  []race.RacerName{race.RacerGunk, race.RacerPlain, race.RacerPlain},
		Policy:  &testutils.ScriptedPolicy{},
		Factory: ability.New,
		Roller:  roller,
	})
	require.NoError(t, err)

	result, err := engine.Run()
	require.NoError(t, err)

	require.Equal(t, 1, result.Racers[0].FinishRank)

	finishTurn := -1
	for _, rec := range result.Log {
		if rec.Type == race.RecordFinish && rec.Racer == 0 {
			finishTurn = rec.Turn
		}
	}
	require.NotEqual(t, -1, finishTurn)

	for _, rec := range result.Log {
		if rec.Type != race.RecordRoll || rec.Racer == 0 {
			continue
		}
		if rec.Turn < finishTurn {
			assert.Equal(t, rec.Base-1, rec.Final, "turn %d roll should be slimed", rec.Turn)
		} else if rec.Turn > finishTurn {
			assert.Equal(t, rec.Base, rec.Final, "turn %d roll modified after abilities were stripped", rec.Turn)
		}
	}
}
