package ability

import "github.com/mwolters/athletesim/internal/race"

// Abilities that punish proximity.

// BabaYaga trips anyone who ends up on its tile
type BabaYaga struct{ base }

func (a *BabaYaga) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	if ev.Type != race.EventPostMove && ev.Type != race.EventPostWarp {
		return
	}
	switch {
	case ev.Target == owner.Idx:
		// the witch arrived; everyone already there suffers
		for _, victim := range e.RacersAt(owner.Position, owner.Idx) {
			e.PushTrip(victim.Idx, owner.Idx, a.tag)
		}
	case ev.EndTile == owner.Position:
		e.PushTrip(ev.Target, owner.Idx, a.tag)
	}
}

// Banana trips racers that pass over it
type Banana struct{ base }

func (a *Banana) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	if ev.Type != race.EventPassing || ev.Target != owner.Idx {
		return
	}
	e.PushTrip(ev.Responsible, owner.Idx, a.tag)
}

// Centaur kicks racers it passes two tiles back
type Centaur struct{ base }

func (a *Centaur) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	if ev.Type != race.EventPassing || ev.Responsible != owner.Idx {
		return
	}
	e.PushMove(ev.Target, -2, owner.Idx, a.tag)
}

// HugeBaby sits on its tile; nobody lands there, approachers stop short
type HugeBaby struct{ base }

func (a *HugeBaby) OnGain(e *race.Engine, ownerIdx int) {
	e.AddModifier(ownerIdx, roadblock{mod{tag: a.tag, owner: ownerIdx}})
}

func (a *HugeBaby) OnLoss(e *race.Engine, ownerIdx int) {
	e.RemoveModifier(ownerIdx, a.tag, ownerIdx)
}

func (a *HugeBaby) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {}

// Mouth devours on arrival: landing on a tile held by exactly one other
// racer eliminates them. Racers walking onto the mouth's tile are safe.
type Mouth struct{ base }

func (a *Mouth) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	if ev.Type != race.EventPostMove && ev.Type != race.EventPostWarp {
		return
	}
	if ev.Target != owner.Idx {
		return
	}
	victims := e.RacersAt(owner.Position, owner.Idx)
	if len(victims) != 1 {
		return
	}
	e.EliminateRacer(victims[0].Idx, owner.Idx, a.tag)
}

// Duelist challenges somebody sharing its tile: both roll a die and the
// winner steps +2, with ties going to the challenger
type Duelist struct{ base }

func (a *Duelist) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	switch ev.Type {
	case race.EventTurnStart, race.EventPostMove, race.EventPostWarp:
	default:
		return
	}
	var opts []race.Option
	for _, other := range e.RacersAt(owner.Position, owner.Idx) {
		opts = append(opts, race.Option{Racer: other.Idx, Name: other.Name, Position: other.Position})
	}
	pick := e.DecideSelect(&race.Decision{
		Kind:       race.ChoiceTarget,
		OnBehalfOf: a.tag,
		Actor:      owner.Idx,
		Options:    opts,
	})
	if pick < 0 {
		return
	}
	rival := e.Racer(opts[pick].Racer)
	ownRoll := e.RollDie()
	rivalRoll := e.RollDie()
	winner := owner.Idx
	if rivalRoll > ownRoll {
		winner = rival.Idx
	}
	e.PushMove(winner, 2, owner.Idx, a.tag)
}

// Stickler demands a clean finish from everyone else: overshooting moves
// are refused outright
type Stickler struct{ base }

func (a *Stickler) OnGain(e *race.Engine, ownerIdx int) {
	e.AddModifier(ownerIdx, exactFinish{mod{tag: a.tag, owner: ownerIdx}})
}

func (a *Stickler) OnLoss(e *race.Engine, ownerIdx int) {
	e.RemoveModifier(ownerIdx, a.tag, ownerIdx)
}

func (a *Stickler) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {}
