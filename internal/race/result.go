package race

import "sort"

// RacerResult is one racer's terminal state
type RacerResult struct {
	Idx           int       `json:"idx"`
	Name          RacerName `json:"name"`
	Position      int       `json:"position"`
	FinishRank    int       `json:"finish_rank,omitempty"`
	Eliminated    bool      `json:"eliminated,omitempty"`
	VictoryPoints int       `json:"victory_points"`
}

// Result is the frozen outcome of one race
type Result struct {
	RaceID          string        `json:"race_id"`
	Standings       []int         `json:"standings"` // racer indices in finish order
	Racers          []RacerResult `json:"racers"`
	Turns           int           `json:"turns"`
	Log             []Record      `json:"log"`
	PositionsByTurn [][]int       `json:"positions_by_turn"`
	ErrCode         ErrCode       `json:"err_code,omitempty"`
}

func (e *Engine) buildResult() *Result {
	res := &Result{
		RaceID:          e.log.raceID,
		Turns:           e.turnIndex,
		Log:             e.log.records,
		PositionsByTurn: e.snapshots,
		ErrCode:         e.errCode,
	}
	for _, r := range e.state.Racers {
		res.Racers = append(res.Racers, RacerResult{
			Idx:           r.Idx,
			Name:          r.Name,
			Position:      r.Position,
			FinishRank:    r.FinishRank,
			Eliminated:    r.Eliminated,
			VictoryPoints: r.VictoryPoints,
		})
		if r.Finished() {
			res.Standings = append(res.Standings, r.Idx)
		}
	}
	sort.Slice(res.Standings, func(i, j int) bool {
		return e.state.Racers[res.Standings[i]].FinishRank < e.state.Racers[res.Standings[j]].FinishRank
	})
	return res
}

// Winner returns the index of the first-place racer, or NoRacer when nobody
// finished
func (r *Result) Winner() int {
	if len(r.Standings) == 0 {
		return NoRacer
	}
	return r.Standings[0]
}
