package testutils

import (
	"github.com/mwolters/athletesim/internal/race"
)

// CreateTestResult builds a small plausible race result for repository and
// metrics tests
func CreateTestResult(raceID string) *race.Result {
	return &race.Result{
		RaceID:    raceID,
		Standings: []int{1, 0},
		Racers: []race.RacerResult{
			{Idx: 0, Name: race.RacerPlain, Position: 30, FinishRank: 2, VictoryPoints: 1},
			{Idx: 1, Name: race.RacerHare, Position: 30, FinishRank: 1, VictoryPoints: 4},
		},
		Turns: 9,
		Log: []race.Record{
			{RaceID: raceID, Turn: 0, Type: race.RecordRoll, Racer: 0, Dice: 4, Base: 4, Final: 4},
			{RaceID: raceID, Turn: 0, Type: race.RecordMove, Racer: 0, Source: race.SourceSystem, From: 0, To: 4},
		},
		PositionsByTurn: [][]int{{4, 0}, {4, 6}, {9, 6}, {9, 12}},
	}
}

// ScriptedPolicy answers decisions from fixed queues, in order. Once a queue
// drains it falls back to decline/false. Useful for forcing a specific line
// of play in engine tests.
type ScriptedPolicy struct {
	Bools   []bool
	Selects []int

	boolIdx   int
	selectIdx int
}

func (p *ScriptedPolicy) DecideBool(d *race.Decision) bool {
	if p.boolIdx >= len(p.Bools) {
		return false
	}
	v := p.Bools[p.boolIdx]
	p.boolIdx++
	return v
}

func (p *ScriptedPolicy) DecideSelect(d *race.Decision) int {
	if p.selectIdx >= len(p.Selects) {
		return -1
	}
	v := p.Selects[p.selectIdx]
	p.selectIdx++
	return v
}
