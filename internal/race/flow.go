package race

// Finish and elimination handling. A racer finishes by reaching or passing
// the last tile; the race ends once enough racers have finished or the field
// collapses to a single survivor.

func (e *Engine) checkFinish(racerIdx int) {
	racer := e.state.Racers[racerIdx]
	if !racer.Active() || racer.Position < e.state.Board.Length() {
		return
	}
	e.markFinished(racerIdx)
}

func (e *Engine) markFinished(racerIdx int) {
	racer := e.state.Racers[racerIdx]
	rank := e.state.FinishedCount() + 1
	racer.FinishRank = rank

	if rank-1 < len(e.state.Rules.WinnerVP) {
		racer.VictoryPoints += e.state.Rules.WinnerVP[rank-1]
	}

	e.logf("%d:%s finishes at rank %d", racer.Idx, racer.Name, rank)
	e.log.append(e.turnIndex, Record{
		Type:  RecordFinish,
		Racer: racerIdx,
		Rank:  rank,
	})

	// Abilities stop working the moment a racer crosses the line
	e.ClearAbilities(racerIdx)

	e.push(&Event{
		Type:        EventFinished,
		Phase:       PhaseReaction,
		Source:      SourceSystem,
		Responsible: racerIdx,
		Target:      racerIdx,
		Rank:        rank,
	}, nil)

	e.checkRaceOver()
}

// ClaimFinish lets an ability take the next open finishing rank without the
// racer crossing the line. No-op for finished or eliminated racers.
func (e *Engine) ClaimFinish(racerIdx int) {
	if !e.state.Racers[racerIdx].Active() {
		return
	}
	e.markFinished(racerIdx)
}

// EliminateRacer removes a racer from the race entirely. Eliminated racers
// hold no rank and score no finish points.
func (e *Engine) EliminateRacer(target, responsible int, src Source) {
	racer := e.state.Racers[target]
	if !racer.Active() {
		return
	}
	racer.Eliminated = true
	racer.Tripped = false
	racer.TrippedBy = nil

	e.logf("%d:%s is eliminated (%s)", racer.Idx, racer.Name, src)
	e.log.append(e.turnIndex, Record{
		Type:   RecordElimination,
		Racer:  target,
		Source: src,
	})

	e.ClearAbilities(target)

	e.push(&Event{
		Type:        EventEliminated,
		Phase:       PhaseReaction,
		Source:      src,
		Responsible: responsible,
		Target:      target,
	}, nil)

	e.checkRaceOver()
}

// checkRaceOver ends the race when the finish quota is met, and auto-finishes
// a sole survivor left racing against nobody
func (e *Engine) checkRaceOver() {
	if e.state.RaceOver {
		return
	}
	if e.state.FinishedCount() >= e.state.Rules.FinishCount {
		e.endRace()
		return
	}
	if e.state.ActiveCount() == 1 {
		for _, r := range e.state.Racers {
			if r.Active() {
				e.logf("%d:%s finishes unopposed", r.Idx, r.Name)
				e.markFinished(r.Idx)
				return
			}
		}
	}
	if e.state.ActiveCount() == 0 {
		e.endRace()
	}
}

func (e *Engine) endRace() {
	e.state.RaceOver = true
	e.state.queue.clear()
}
