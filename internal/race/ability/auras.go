package ability

import "github.com/mwolters/athletesim/internal/race"

// Aura abilities: their whole effect is a passive modifier attached while the
// ability is held, plus the occasional trigger of their own.

// Blimp drifts with the wind: strong tailwind early, drag late
type Blimp struct{ base }

func (a *Blimp) OnGain(e *race.Engine, ownerIdx int) {
	e.AddModifier(ownerIdx, blimpDrift{mod{tag: a.tag, owner: ownerIdx}})
}

func (a *Blimp) OnLoss(e *race.Engine, ownerIdx int) {
	e.RemoveModifier(ownerIdx, a.tag, ownerIdx)
}

func (a *Blimp) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {}

// Coach boosts anyone rolling from its tile
type Coach struct{ base }

func (a *Coach) OnGain(e *race.Engine, ownerIdx int) {
	e.AddModifier(ownerIdx, coachAura{mod{tag: a.tag, owner: ownerIdx}})
}

func (a *Coach) OnLoss(e *race.Engine, ownerIdx int) {
	e.RemoveModifier(ownerIdx, a.tag, ownerIdx)
}

func (a *Coach) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {}

// Gunk slows the whole field but itself
type Gunk struct{ base }

func (a *Gunk) OnGain(e *race.Engine, ownerIdx int) {
	e.AddModifier(ownerIdx, gunkSlime{mod{tag: a.tag, owner: ownerIdx}})
}

func (a *Gunk) OnLoss(e *race.Engine, ownerIdx int) {
	e.RemoveModifier(ownerIdx, a.tag, ownerIdx)
}

func (a *Gunk) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {}

// Hare runs +2 but naps through its turn while leading alone
type Hare struct{ base }

func (a *Hare) OnGain(e *race.Engine, ownerIdx int) {
	e.AddModifier(ownerIdx, hareSpeed{mod{tag: a.tag, owner: ownerIdx}})
}

func (a *Hare) OnLoss(e *race.Engine, ownerIdx int) {
	e.RemoveModifier(ownerIdx, a.tag, ownerIdx)
}

func (a *Hare) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	if ev.Type != race.EventTurnStart || ev.Target != owner.Idx {
		return
	}
	for _, other := range e.ActiveRacers(owner.Idx) {
		if other.Position >= owner.Position {
			return
		}
	}
	e.SkipMainMove(owner.Idx, owner.Idx, a.tag)
}

// PartyAnimal throws a party at turn start, dragging everyone one tile
// toward it, and rolls harder the more guests share its tile
type PartyAnimal struct{ base }

func (a *PartyAnimal) OnGain(e *race.Engine, ownerIdx int) {
	e.AddModifier(ownerIdx, partyBoost{mod{tag: a.tag, owner: ownerIdx}})
}

func (a *PartyAnimal) OnLoss(e *race.Engine, ownerIdx int) {
	e.RemoveModifier(ownerIdx, a.tag, ownerIdx)
}

func (a *PartyAnimal) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	if ev.Type != race.EventTurnStart || ev.Target != owner.Idx {
		return
	}
	var moves []race.MoveData
	for _, other := range e.ActiveRacers(owner.Idx) {
		switch {
		case other.Position < owner.Position:
			moves = append(moves, race.MoveData{Racer: other.Idx, Distance: 1})
		case other.Position > owner.Position:
			moves = append(moves, race.MoveData{Racer: other.Idx, Distance: -1})
		}
	}
	e.PushMultiMove(moves, owner.Idx, a.tag)
}

// Cheerleader may rally the back of the pack at the top of its own turn:
// everyone in last place steps +2 together, and the cheering carries the
// cheerleader itself forward a tile
type Cheerleader struct{ base }

func (a *Cheerleader) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	if ev.Type != race.EventTurnStart || ev.Target != owner.Idx {
		return
	}
	minPos := -1
	for _, r := range e.State().Racers {
		if r.Active() && (minPos == -1 || r.Position < minPos) {
			minPos = r.Position
		}
	}
	var opts []race.Option
	var moves []race.MoveData
	for _, r := range e.RacersAt(minPos, race.NoRacer) {
		opts = append(opts, race.Option{Racer: r.Idx, Name: r.Name, Position: r.Position})
		moves = append(moves, race.MoveData{Racer: r.Idx, Distance: 2})
	}
	ok := e.DecideBool(&race.Decision{
		Kind:       race.ChoiceUseAbility,
		OnBehalfOf: a.tag,
		Actor:      owner.Idx,
		Options:    opts,
	})
	if !ok {
		return
	}
	e.PushMultiMove(moves, owner.Idx, a.tag)
	e.PushMove(owner.Idx, 1, owner.Idx, a.tag)
}

// Heckler jeers at wasted turns: when the acting racer ends its turn within
// one tile of where it began, the heckler scoots +2. The heckler's own duds
// count too.
type Heckler struct {
	base
	startIdx  int
	startPos  int
	haveStart bool
}

func (a *Heckler) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	switch ev.Type {
	case race.EventPreTurnStart:
		a.startIdx = ev.Target
		a.startPos = e.Racer(ev.Target).Position
		a.haveStart = true
	case race.EventTurnEnd:
		cur := e.State().Current
		if !a.haveStart || a.startIdx != cur {
			return
		}
		active := e.Racer(cur)
		if !active.Active() {
			return
		}
		delta := active.Position - a.startPos
		if delta < 0 {
			delta = -delta
		}
		if delta <= 1 {
			e.PushMove(owner.Idx, 2, owner.Idx, a.tag)
		}
	}
}

// Inchworm cancels an opponent's rolled 1 and creeps a tile forward
type Inchworm struct{ base }

func (a *Inchworm) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	if ev.Type != race.EventRollResult || ev.Target == owner.Idx || ev.DiceValue != 1 {
		return
	}
	e.SkipMainMove(ev.Target, owner.Idx, a.tag)
	e.PushMove(owner.Idx, 1, owner.Idx, a.tag)
}

// Lackey rides the coattails of an opponent's rolled 6
type Lackey struct{ base }

func (a *Lackey) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	if ev.Type != race.EventRollResult || ev.Target == owner.Idx || ev.DiceValue != 6 {
		return
	}
	e.PushMove(owner.Idx, 2, owner.Idx, a.tag)
}
