package race

import (
	"github.com/mwolters/athletesim/internal/board"
)

// Movement commands. Moves are relative and walk the track tile by tile,
// firing passing events for occupied intermediate tiles. Warps are absolute
// teleports with no passing. Multi variants resolve atomically from the
// positions captured before any participant moves.

// PushMainMove schedules the turn's main move
func (e *Engine) PushMainMove(racerIdx, distance int) {
	e.push(&Event{
		Type:        EventMoveCmd,
		Phase:       PhaseMoveExec,
		Source:      SourceSystem,
		Responsible: NoRacer,
		Target:      racerIdx,
		Distance:    distance,
		IsMain:      true,
	}, nil)
}

// PushMove schedules an ability-driven move. Commands attributed to a racer
// announce themselves once they resolve, so reactive abilities can observe
// them.
func (e *Engine) PushMove(target, distance, responsible int, src Source) {
	e.push(&Event{
		Type:        EventMoveCmd,
		Phase:       PhaseReaction,
		Source:      src,
		Responsible: responsible,
		Target:      target,
		Distance:    distance,
		Trigger:     triggerFor(responsible),
	}, nil)
}

func triggerFor(responsible int) TriggerMode {
	if responsible == NoRacer {
		return TriggerNever
	}
	return TriggerAfterResolution
}

// PushWarp schedules a teleport to an absolute tile
func (e *Engine) PushWarp(target, tile, responsible int, src Source) {
	e.push(&Event{
		Type:        EventWarpCmd,
		Phase:       PhaseReaction,
		Source:      src,
		Responsible: responsible,
		Target:      target,
		TargetTile:  tile,
		Trigger:     triggerFor(responsible),
	}, nil)
}

// PushMultiMove schedules a simultaneous move of several racers
func (e *Engine) PushMultiMove(moves []MoveData, responsible int, src Source) {
	if len(moves) == 0 {
		return
	}
	e.push(&Event{
		Type:        EventMultiMoveCmd,
		Phase:       PhaseReaction,
		Source:      src,
		Responsible: responsible,
		Moves:       moves,
		Trigger:     triggerFor(responsible),
	}, nil)
}

// PushMultiWarp schedules a simultaneous warp of several racers
func (e *Engine) PushMultiWarp(warps []WarpData, responsible int, src Source) {
	if len(warps) == 0 {
		return
	}
	e.push(&Event{
		Type:        EventMultiWarpCmd,
		Phase:       PhaseReaction,
		Source:      src,
		Responsible: responsible,
		Warps:       warps,
		Trigger:     triggerFor(responsible),
	}, nil)
}

// PushTrip schedules a trip against target
func (e *Engine) PushTrip(target, responsible int, src Source) {
	e.push(&Event{
		Type:        EventTripCmd,
		Phase:       PhaseReaction,
		Source:      src,
		Responsible: responsible,
		Target:      target,
		Trigger:     triggerFor(responsible),
	}, nil)
}

// EmitAbility announces an ability firing, giving reactive abilities
// (and the log) a hook
func (e *Engine) EmitAbility(owner int, src Source, target int) {
	e.push(&Event{
		Type:        EventAbilityTriggered,
		Phase:       PhaseReaction,
		Source:      src,
		Responsible: owner,
		Target:      target,
	}, nil)
}

// AwardVictoryPoints grants points outside the finish payout
func (e *Engine) AwardVictoryPoints(racerIdx, points int, src Source) {
	racer := e.state.Racers[racerIdx]
	racer.VictoryPoints += points
	e.logf("%d:%s gains %d vp (%s)", racer.Idx, racer.Name, points, src)
	e.log.append(e.turnIndex, Record{
		Type:   RecordAbility,
		Racer:  racerIdx,
		Source: src,
		Target: racerIdx,
	})
}

func (e *Engine) handleMoveCmd(ev *Event) {
	if e.executeMove(ev, ev.Target, ev.Distance) {
		e.announceResolved(ev)
	}
}

func (e *Engine) handleWarpCmd(ev *Event) {
	if e.executeWarp(ev, ev.Target, ev.TargetTile) {
		e.announceResolved(ev)
	}
}

// announceResolved fires the ability announcement for a command that changed
// state, when the command asked for one
func (e *Engine) announceResolved(ev *Event) {
	if ev.Trigger != TriggerAfterResolution {
		return
	}
	e.push(abilityTriggeredFrom(ev), nil)
}

func (e *Engine) handleMultiMoveCmd(ev *Event) {
	// Destinations resolve from pre-move positions, then all commit
	type plan struct {
		racer int
		start int
		dest  int
		ok    bool
	}
	plans := make([]plan, 0, len(ev.Moves))
	for _, mv := range ev.Moves {
		racer := e.state.Racers[mv.Racer]
		if !racer.Active() {
			continue
		}
		dest, ok := e.planMove(ev, mv.Racer, racer.Position, mv.Distance)
		plans = append(plans, plan{racer: mv.Racer, start: racer.Position, dest: dest, ok: ok})
	}
	for _, p := range plans {
		if p.ok {
			e.state.Racers[p.racer].Position = p.dest
		}
	}
	committed := false
	for _, p := range plans {
		if p.ok && p.dest != p.start {
			e.finalizeMove(ev, p.racer, p.start, p.dest)
			committed = true
		}
	}
	if committed {
		e.announceResolved(ev)
	}
}

func (e *Engine) handleMultiWarpCmd(ev *Event) {
	type plan struct {
		racer int
		start int
		dest  int
	}
	plans := make([]plan, 0, len(ev.Warps))
	for _, w := range ev.Warps {
		racer := e.state.Racers[w.Racer]
		if !racer.Active() {
			continue
		}
		dest := w.TargetTile
		if dest < 0 {
			dest = 0
		}
		plans = append(plans, plan{racer: w.Racer, start: racer.Position, dest: dest})
	}
	for _, p := range plans {
		e.state.Racers[p.racer].Position = p.dest
	}
	for _, p := range plans {
		e.finalizeWarp(ev, p.racer, p.start, p.dest)
	}
	if len(plans) > 0 {
		e.announceResolved(ev)
	}
}

func (e *Engine) handleTripCmd(ev *Event) {
	racer := e.state.Racers[ev.Target]
	if !racer.Active() || racer.Tripped {
		return
	}
	racer.Tripped = true
	if ev.Responsible != NoRacer {
		racer.TrippedBy = append(racer.TrippedBy, ev.Responsible)
	}
	e.logf("%d:%s trips (%s)", racer.Idx, racer.Name, ev.Source)
	e.log.append(e.turnIndex, Record{
		Type:   RecordTrip,
		Racer:  ev.Target,
		Source: ev.Source,
	})
	e.publish(&Event{
		Type:        EventPostTrip,
		Phase:       PhaseReaction,
		Source:      ev.Source,
		Responsible: ev.Responsible,
		Target:      ev.Target,
	})
	e.announceResolved(ev)
}

// executeMove plans, commits and finalizes a single relative move.
// Reports whether the racer actually changed position.
func (e *Engine) executeMove(ev *Event, racerIdx, distance int) bool {
	racer := e.state.Racers[racerIdx]
	if !racer.Active() {
		return false
	}
	start := racer.Position
	dest, ok := e.planMove(ev, racerIdx, start, distance)
	if !ok {
		e.logf("%d:%s move from %d blocked", racer.Idx, racer.Name, start)
		return false
	}
	if dest == start {
		return false
	}
	racer.Position = dest
	e.finalizeMove(ev, racerIdx, start, dest)
	return true
}

// planMove computes the destination for a move without committing it.
// Returns ok=false when a validator rejects the move outright.
func (e *Engine) planMove(ev *Event, racerIdx, start, distance int) (int, bool) {
	racer := e.state.Racers[racerIdx]

	dest := start + distance
	if ev.IsMain {
		for _, m := range racer.modifiers {
			if dc, ok := m.(DestinationCalculator); ok {
				dest = dc.Destination(e, ev, racerIdx, start, distance)
			}
		}
	}

	// Other racers may bend an approach toward them (blockers, magnets)
	for _, other := range e.state.Racers {
		if !other.Active() || other.Idx == racerIdx {
			continue
		}
		for _, m := range other.modifiers {
			if am, ok := m.(ApproachModifier); ok {
				dest = am.OnApproach(e, ev, dest, racerIdx)
			}
		}
	}

	if dest < 0 {
		dest = 0
	}

	for _, r := range e.state.Racers {
		if !r.Active() {
			continue
		}
		for _, m := range r.modifiers {
			if mv, ok := m.(MoveValidator); ok {
				if !mv.ValidateMove(e, racerIdx, start, dest) {
					return start, false
				}
			}
		}
	}
	return dest, true
}

// finalizeMove records a committed move and fires its downstream events
func (e *Engine) finalizeMove(ev *Event, racerIdx, start, dest int) {
	racer := e.state.Racers[racerIdx]
	e.logf("%d:%s moves %d -> %d (%s)", racer.Idx, racer.Name, start, dest, ev.Source)
	// RecordMove is forward-only; a backward move replays as a warp
	recType := RecordMove
	if dest < start {
		recType = RecordWarp
	}
	e.log.append(e.turnIndex, Record{
		Type:   recType,
		Racer:  racerIdx,
		Source: ev.Source,
		From:   start,
		To:     dest,
	})

	if dest > start {
		for tile := start + 1; tile < dest && tile < e.state.Board.Length(); tile++ {
			for _, occupant := range e.RacersAt(tile, racerIdx) {
				e.push(&Event{
					Type:        EventPassing,
					Phase:       PhaseReaction,
					Source:      ev.Source,
					Responsible: racerIdx,
					Target:      occupant.Idx,
					Tile:        tile,
					StartTile:   start,
					EndTile:     dest,
					IsMain:      ev.IsMain,
				}, nil)
			}
		}
	}

	e.publish(&Event{
		Type:        EventPostMove,
		Phase:       PhaseReaction,
		Source:      ev.Source,
		Responsible: ev.Responsible,
		Target:      racerIdx,
		StartTile:   start,
		EndTile:     dest,
		IsMain:      ev.IsMain,
	})

	e.applyLandingEffect(racerIdx, dest)
	e.checkFinish(racerIdx)
}

// finalizeWarp records a committed warp and fires its downstream events.
// Warps generate no passing events and may move a racer backward.
func (e *Engine) finalizeWarp(ev *Event, racerIdx, start, dest int) {
	racer := e.state.Racers[racerIdx]
	e.logf("%d:%s warps %d -> %d (%s)", racer.Idx, racer.Name, start, dest, ev.Source)
	e.log.append(e.turnIndex, Record{
		Type:   RecordWarp,
		Racer:  racerIdx,
		Source: ev.Source,
		From:   start,
		To:     dest,
	})

	e.publish(&Event{
		Type:        EventPostWarp,
		Phase:       PhaseReaction,
		Source:      ev.Source,
		Responsible: ev.Responsible,
		Target:      racerIdx,
		StartTile:   start,
		EndTile:     dest,
	})

	e.applyLandingEffect(racerIdx, dest)
	e.checkFinish(racerIdx)
}

func (e *Engine) executeWarp(ev *Event, racerIdx, tile int) bool {
	racer := e.state.Racers[racerIdx]
	if !racer.Active() {
		return false
	}
	if tile < 0 {
		tile = 0
	}
	start := racer.Position
	racer.Position = tile
	e.finalizeWarp(ev, racerIdx, start, tile)
	return true
}

// applyLandingEffect triggers the board tile's effect, if any
func (e *Engine) applyLandingEffect(racerIdx, tile int) {
	racer := e.state.Racers[racerIdx]
	if !racer.Active() || tile >= e.state.Board.Length() {
		return
	}
	effect, ok := e.state.Board.EffectAt(tile)
	if !ok {
		return
	}
	switch effect.Kind {
	case board.EffectMoveDelta:
		e.PushMove(racerIdx, effect.Delta, NoRacer, SourceBoard)
	case board.EffectTrip:
		e.PushTrip(racerIdx, NoRacer, SourceBoard)
	case board.EffectVictoryPoint:
		e.AwardVictoryPoints(racerIdx, effect.Points, SourceBoard)
	}
}
