// Package metrics derives aggregate race statistics from batch results.
// Everything here is computed from result snapshots and logs; the engine
// itself carries no telemetry counters.
package metrics

import (
	"sort"

	"github.com/mwolters/athletesim/internal/race"
	"github.com/mwolters/athletesim/internal/runner"
)

// RacerStats aggregates one racer's outcomes across a batch
type RacerStats struct {
	Name          race.RacerName `json:"name"`
	Races         int            `json:"races"`
	Wins          int            `json:"wins"`
	WinRate       float64        `json:"win_rate"`
	AvgPoints     float64        `json:"avg_points"`
	MidgameRelPos float64        `json:"midgame_rel_pos"` // own position over leader position at mid-race
}

// Summary is the batch-level aggregate
type Summary struct {
	Races    int `json:"races"`
	Failures int `json:"failures"`

	// Tightness is the mean absolute deviation of racer positions from the
	// pack mean, averaged over every turn of every race. Lower is tighter.
	Tightness float64 `json:"tightness"`

	// Volatility is the share of turn transitions that reorder the standings
	Volatility float64 `json:"volatility"`

	AvgTurns float64      `json:"avg_turns"`
	Racers   []RacerStats `json:"racers"`
}

// Compute folds a batch into a Summary. Failed entries only count toward
// Failures.
func Compute(entries []runner.BatchEntry) *Summary {
	s := &Summary{}

	var (
		tightnessSum  float64
		tightnessN    int
		reorders      int
		transitions   int
		turnsSum      int
		racerAgg      = map[race.RacerName]*RacerStats{}
		midgameSums   = map[race.RacerName]float64{}
		midgameCounts = map[race.RacerName]int{}
	)

	for _, entry := range entries {
		if entry.Err != nil {
			s.Failures++
			continue
		}
		res := entry.Result
		s.Races++
		turnsSum += res.Turns

		for _, turn := range res.PositionsByTurn {
			tightnessSum += meanAbsDeviation(turn)
			tightnessN++
		}
		for t := 1; t < len(res.PositionsByTurn); t++ {
			transitions++
			if ranking(res.PositionsByTurn[t-1]) != ranking(res.PositionsByTurn[t]) {
				reorders++
			}
		}

		mid := len(res.PositionsByTurn) / 2
		if mid < len(res.PositionsByTurn) {
			positions := res.PositionsByTurn[mid]
			leader := 0
			for _, p := range positions {
				if p > leader {
					leader = p
				}
			}
			if leader > 0 {
				for i, p := range positions {
					name := res.Racers[i].Name
					midgameSums[name] += float64(p) / float64(leader)
					midgameCounts[name]++
				}
			}
		}

		winner := res.Winner()
		for _, rr := range res.Racers {
			agg := racerAgg[rr.Name]
			if agg == nil {
				agg = &RacerStats{Name: rr.Name}
				racerAgg[rr.Name] = agg
			}
			agg.Races++
			agg.AvgPoints += float64(rr.VictoryPoints)
			if rr.Idx == winner {
				agg.Wins++
			}
		}
	}

	if tightnessN > 0 {
		s.Tightness = tightnessSum / float64(tightnessN)
	}
	if transitions > 0 {
		s.Volatility = float64(reorders) / float64(transitions)
	}
	if s.Races > 0 {
		s.AvgTurns = float64(turnsSum) / float64(s.Races)
	}

	for _, agg := range racerAgg {
		if agg.Races > 0 {
			agg.WinRate = float64(agg.Wins) / float64(agg.Races)
			agg.AvgPoints /= float64(agg.Races)
		}
		if n := midgameCounts[agg.Name]; n > 0 {
			agg.MidgameRelPos = midgameSums[agg.Name] / float64(n)
		}
		s.Racers = append(s.Racers, *agg)
	}
	sort.Slice(s.Racers, func(i, j int) bool { return s.Racers[i].Name < s.Racers[j].Name })

	return s
}

func meanAbsDeviation(positions []int) float64 {
	if len(positions) == 0 {
		return 0
	}
	var sum float64
	for _, p := range positions {
		sum += float64(p)
	}
	mean := sum / float64(len(positions))

	var dev float64
	for _, p := range positions {
		d := float64(p) - mean
		if d < 0 {
			d = -d
		}
		dev += d
	}
	return dev / float64(len(positions))
}

// ranking encodes the standing order of a position snapshot; identical
// strings mean identical standings
func ranking(positions []int) string {
	idx := make([]int, len(positions))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return positions[idx[a]] > positions[idx[b]] })
	out := make([]byte, len(idx))
	for i, v := range idx {
		out[i] = byte('a' + v)
	}
	return string(out)
}
