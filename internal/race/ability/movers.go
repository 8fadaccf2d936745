package ability

import "github.com/mwolters/athletesim/internal/race"

// Abilities that reposition racers outside the normal roll-and-walk.

// Leaptoad hops over occupied tiles without spending movement on them
type Leaptoad struct{ base }

func (a *Leaptoad) OnGain(e *race.Engine, ownerIdx int) {
	e.AddModifier(ownerIdx, lilyHop{mod{tag: a.tag, owner: ownerIdx}})
}

func (a *Leaptoad) OnLoss(e *race.Engine, ownerIdx int) {
	e.RemoveModifier(ownerIdx, a.tag, ownerIdx)
}

func (a *Leaptoad) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {}

// FlipFlop may trade places with any racer instead of moving
type FlipFlop struct{ base }

func (a *FlipFlop) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	if ev.Type != race.EventTurnStart || ev.Target != owner.Idx || owner.MainMoveDone {
		return
	}
	var opts []race.Option
	for _, other := range e.ActiveRacers(owner.Idx) {
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
	partner := e.Racer(opts[pick].Racer)
	e.SkipMainMove(owner.Idx, owner.Idx, a.tag)
	e.PushMultiWarp([]race.WarpData{
		{Racer: owner.Idx, TargetTile: partner.Position},
		{Racer: partner.Idx, TargetTile: owner.Position},
	}, owner.Idx, a.tag)
}

// Hypnotist pulls a chosen racer onto its own tile each turn
type Hypnotist struct{ base }

func (a *Hypnotist) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	if ev.Type != race.EventTurnStart || ev.Target != owner.Idx {
		return
	}
	var opts []race.Option
	for _, other := range e.ActiveRacers(owner.Idx) {
		if other.Position != owner.Position {
			opts = append(opts, race.Option{Racer: other.Idx, Name: other.Name, Position: other.Position})
		}
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
	e.PushWarp(opts[pick].Racer, owner.Position, owner.Idx, a.tag)
}

// ThirdWheel may crash any tile where exactly two racers stand together
type ThirdWheel struct{ base }

func (a *ThirdWheel) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	if ev.Type != race.EventTurnStart || ev.Target != owner.Idx {
		return
	}
	var opts []race.Option
	for tile := 0; tile < e.State().Board.Length(); tile++ {
		if tile == owner.Position {
			continue
		}
		if len(e.RacersAt(tile, race.NoRacer)) == 2 {
			opts = append(opts, race.Option{Value: tile, Position: tile})
		}
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
	e.PushWarp(owner.Idx, opts[pick].Value, owner.Idx, a.tag)
}

// Suckerfish may latch onto a racer leaving its tile and ride to wherever
// they stop
type Suckerfish struct{ base }

func (a *Suckerfish) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	if ev.Type != race.EventPostMove || ev.Target == owner.Idx {
		return
	}
	if ev.StartTile != owner.Position || ev.EndTile == ev.StartTile {
		return
	}
	mover := e.Racer(ev.Target)
	ok := e.DecideBool(&race.Decision{
		Kind:       race.ChoiceUseAbility,
		OnBehalfOf: a.tag,
		Actor:      owner.Idx,
		Options:    []race.Option{{Racer: mover.Idx, Name: mover.Name, Position: ev.EndTile}},
	})
	if !ok {
		return
	}
	e.PushWarp(owner.Idx, ev.EndTile, owner.Idx, a.tag)
}

// Scoocher scooches a tile forward every time someone else's ability fires
type Scoocher struct{ base }

func (a *Scoocher) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	if ev.Type != race.EventAbilityTriggered || ev.Responsible == owner.Idx {
		return
	}
	e.PushMove(owner.Idx, 1, owner.Idx, a.tag)
}

// Romantic surges +2 whenever a move or warp leaves exactly two racers
// together on its landing tile, anywhere on the track
type Romantic struct{ base }

func (a *Romantic) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	if ev.Type != race.EventPostMove && ev.Type != race.EventPostWarp {
		return
	}
	if len(e.RacersAt(ev.EndTile, race.NoRacer)) != 2 {
		return
	}
	e.PushMove(owner.Idx, 2, owner.Idx, a.tag)
}
