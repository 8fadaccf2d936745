package ability

import "github.com/mwolters/athletesim/internal/race"

// Passive modifiers attached by lifecycle abilities. The engine consults them
// at fixed pipeline points; they hold no state beyond their owner.

type mod struct {
	tag   race.Source
	owner int
}

func (m mod) Name() race.Source { return m.tag }
func (m mod) Owner() int        { return m.owner }

// hareSpeed adds +2 to the owner's own rolls
type hareSpeed struct{ mod }

func (h hareSpeed) ModifyRoll(e *race.Engine, q *race.RollQuery) {
	if q.Racer == h.owner {
		q.Add(h.tag, h.owner, 2)
	}
}

// blimpDrift is +3 while the owner is short of the midpoint, -1 after
type blimpDrift struct{ mod }

func (b blimpDrift) ModifyRoll(e *race.Engine, q *race.RollQuery) {
	if q.Racer != b.owner {
		return
	}
	if e.Racer(b.owner).Position < e.State().Board.Midpoint() {
		q.Add(b.tag, b.owner, 3)
	} else {
		q.Add(b.tag, b.owner, -1)
	}
}

// coachAura grants +1 to anyone rolling from the owner's tile, the coach
// included
type coachAura struct{ mod }

func (c coachAura) ModifyRoll(e *race.Engine, q *race.RollQuery) {
	if e.Racer(q.Racer).Position == e.Racer(c.owner).Position {
		q.Add(c.tag, c.owner, 1)
	}
}

// gunkSlime drags every opponent's roll down by 1
type gunkSlime struct{ mod }

func (g gunkSlime) ModifyRoll(e *race.Engine, q *race.RollQuery) {
	if q.Racer != g.owner {
		q.Add(g.tag, g.owner, -1)
	}
}

// partyBoost adds +1 per guest sharing the owner's tile
type partyBoost struct{ mod }

func (p partyBoost) ModifyRoll(e *race.Engine, q *race.RollQuery) {
	if q.Racer != p.owner {
		return
	}
	guests := len(e.RacersAt(e.Racer(p.owner).Position, p.owner))
	if guests > 0 {
		q.Add(p.tag, p.owner, guests)
	}
}

// lilyHop makes occupied tiles free for the owner's main move: each rolled
// pip only counts against an empty tile
type lilyHop struct{ mod }

func (l lilyHop) Destination(e *race.Engine, ev *race.Event, racerIdx, start, distance int) int {
	if racerIdx != l.owner || distance <= 0 {
		return start + distance
	}
	pos := start
	remaining := distance
	finish := e.State().Board.Length()
	for remaining > 0 {
		pos++
		if pos >= finish {
			return finish
		}
		if len(e.RacersAt(pos, racerIdx)) == 0 {
			remaining--
		}
	}
	return pos
}

// roadblock stops approaching racers one tile short of the owner
type roadblock struct{ mod }

func (r roadblock) OnApproach(e *race.Engine, ev *race.Event, target, movingRacer int) int {
	if movingRacer == r.owner {
		return target
	}
	blockAt := e.Racer(r.owner).Position
	if target != blockAt {
		return target
	}
	if e.Racer(movingRacer).Position < blockAt {
		return blockAt - 1
	}
	return blockAt + 1
}

// exactFinish rejects moves that would overshoot the final tile
type exactFinish struct{ mod }

func (x exactFinish) ValidateMove(e *race.Engine, racerIdx, start, end int) bool {
	if racerIdx == x.owner {
		return true
	}
	return end <= e.State().Board.Length()
}
