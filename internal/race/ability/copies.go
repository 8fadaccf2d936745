package ability

import "github.com/mwolters/athletesim/internal/race"

// Copy and scoring abilities.

// Copycat mirrors the current leader's ability, refreshed at the top of its
// own turn. While leading alone it has nothing to mirror.
type Copycat struct{ base }

func (a *Copycat) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	if ev.Type != race.EventPreTurnStart || ev.Target != owner.Idx {
		return
	}

	var leader *race.RacerState
	for _, other := range e.ActiveRacers(owner.Idx) {
		if leader == nil || other.Position > leader.Position {
			leader = other
		}
	}

	desired := []race.Ability{a}
	// mirroring another mirror would never bottom out
	if leader != nil && leader.Position >= owner.Position && leader.Name != race.RacerCopycat {
		desired = append(desired, e.InstantiateAbilities(leader.Name)...)
	}
	e.ReplaceAbilities(owner.Idx, desired)
}

// Egg hatches at setup: it draws three unused racers and keeps one of their
// abilities for the whole race
type Egg struct{ base }

func (a *Egg) OnSetup(e *race.Engine, owner *race.RacerState) {
	drawn := e.DrawRacers(3)
	var opts []race.Option
	for _, name := range drawn {
		opts = append(opts, race.Option{Name: name})
	}
	pick := e.DecideSelect(&race.Decision{
		Kind:       race.ChoiceDraw,
		OnBehalfOf: a.tag,
		Actor:      owner.Idx,
		Options:    opts,
	})
	if pick < 0 {
		pick = 0
	}
	if len(opts) == 0 {
		return
	}
	chosen := opts[pick].Name
	e.RemoveFromDrawPile(chosen)
	for _, gained := range e.InstantiateAbilities(chosen) {
		e.GrantAbility(owner.Idx, gained)
	}
}

func (a *Egg) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {}

// Twin picks a rival on the grid at setup and races with a copy of their
// ability alongside its own
type Twin struct{ base }

func (a *Twin) OnSetup(e *race.Engine, owner *race.RacerState) {
	var opts []race.Option
	for _, other := range e.ActiveRacers(owner.Idx) {
		if other.Name == race.RacerPlain || other.Name == race.RacerTwin {
			continue
		}
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
	for _, gained := range e.InstantiateAbilities(opts[pick].Name) {
		e.GrantAbility(owner.Idx, gained)
	}
}

func (a *Twin) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {}

// Mastermind names the future winner at the top of its first turn. When the
// named racer takes first place, the mastermind claims the next finishing
// slot on the spot, wherever it stands.
type Mastermind struct {
	base
	predicted  bool
	prediction int
}

func (a *Mastermind) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	switch ev.Type {
	case race.EventTurnStart:
		if ev.Target != owner.Idx || a.predicted {
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
		a.predicted = true
		a.prediction = opts[pick].Racer
		e.EmitAbility(owner.Idx, a.tag, a.prediction)
	case race.EventFinished:
		if !a.predicted || ev.Rank != 1 || ev.Target != a.prediction {
			return
		}
		e.EmitAbility(owner.Idx, a.tag, owner.Idx)
		e.ClaimFinish(owner.Idx)
	}
}

// LovableLoser collects a sympathy point at each of its turns spent alone
// in last place
type LovableLoser struct{ base }

func (a *LovableLoser) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	if ev.Type != race.EventTurnStart || ev.Target != owner.Idx {
		return
	}
	for _, other := range e.ActiveRacers(owner.Idx) {
		if other.Position <= owner.Position {
			return
		}
	}
	e.AwardVictoryPoints(owner.Idx, 1, a.tag)
}
