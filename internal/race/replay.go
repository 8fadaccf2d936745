package race

import "sort"

// ReplaySummary is the state recoverable from an event log alone
type ReplaySummary struct {
	Positions []int
	Standings []int
	Tripped   []bool
}

// Replay folds an event log back into final positions and standings. The log
// is the race's sole telemetry artifact, so a replay of a result's log must
// agree with the result itself.
func Replay(records []Record, racerCount int) *ReplaySummary {
	s := &ReplaySummary{
		Positions: make([]int, racerCount),
		Tripped:   make([]bool, racerCount),
	}
	ranks := make(map[int]int) // racer -> finish rank

	for _, rec := range records {
		if rec.Racer < 0 || rec.Racer >= racerCount {
			continue
		}
		switch rec.Type {
		case RecordMove, RecordWarp:
			s.Positions[rec.Racer] = rec.To
		case RecordTrip:
			s.Tripped[rec.Racer] = true
		case RecordRoll:
			// a roll ends any standing trip recovery state
			s.Tripped[rec.Racer] = false
		case RecordFinish:
			ranks[rec.Racer] = rec.Rank
		}
	}

	for racer := range ranks {
		s.Standings = append(s.Standings, racer)
	}
	sort.Slice(s.Standings, func(i, j int) bool {
		return ranks[s.Standings[i]] < ranks[s.Standings[j]]
	})
	return s
}
