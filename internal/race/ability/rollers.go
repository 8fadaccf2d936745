package ability

import "github.com/mwolters/athletesim/internal/race"

// Abilities that live in the roll pipeline: rewriting, rerolling or
// reacting to die values.

// Alchemist may transmute a rolled 1 or 2 into a 4, closing the reroll window
type Alchemist struct{ base }

func (a *Alchemist) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	if ev.Type != race.EventRollWindow || ev.Target != owner.Idx {
		return
	}
	rs := &e.State().RollState
	if ev.RollSerial != rs.Serial || rs.DiceValue == 0 || rs.DiceValue > 2 {
		return
	}
	ok := e.DecideBool(&race.Decision{
		Kind:       race.ChoiceUseAbility,
		OnBehalfOf: a.tag,
		Actor:      owner.Idx,
		Roll:       rs,
	})
	if !ok {
		return
	}
	rs.BaseValue = 4
	rs.CanReroll = false
	e.EmitAbility(owner.Idx, a.tag, owner.Idx)
}

// Legs may walk a steady 5 instead of rolling
type Legs struct{ base }

func (a *Legs) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	if ev.Type != race.EventTurnStart || ev.Target != owner.Idx || owner.MainMoveDone {
		return
	}
	ok := e.DecideBool(&race.Decision{
		Kind:       race.ChoiceUseAbility,
		OnBehalfOf: a.tag,
		Actor:      owner.Idx,
	})
	if !ok {
		return
	}
	owner.RollOverride = &race.RollOverride{Source: a.tag, Value: 5}
	e.EmitAbility(owner.Idx, a.tag, owner.Idx)
}

// Magician may reroll its own roll, twice per turn at most
type Magician struct {
	base
	used int
}

func (a *Magician) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	switch ev.Type {
	case race.EventTurnStart:
		if ev.Target == owner.Idx {
			a.used = 0
		}
	case race.EventRollWindow:
		if ev.Target != owner.Idx || a.used >= 2 {
			return
		}
		rs := &e.State().RollState
		if ev.RollSerial != rs.Serial || !rs.CanReroll {
			return
		}
		ok := e.DecideBool(&race.Decision{
			Kind:       race.ChoiceRerollOrKeep,
			OnBehalfOf: a.tag,
			Actor:      owner.Idx,
			Roll:       rs,
		})
		if !ok {
			return
		}
		if e.TriggerReroll(owner.Idx, a.tag) {
			a.used++
		}
	}
}

// Genius predicts its die each turn; a correct call earns the next turn too
type Genius struct {
	base
	prediction int
}

func (a *Genius) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	switch ev.Type {
	case race.EventTurnStart:
		if ev.Target != owner.Idx {
			return
		}
		a.prediction = 0
		opts := make([]race.Option, 6)
		for i := range opts {
			opts[i] = race.Option{Value: i + 1}
		}
		pick := e.DecideSelect(&race.Decision{
			Kind:       race.ChoiceValue,
			OnBehalfOf: a.tag,
			Actor:      owner.Idx,
			Options:    opts,
		})
		if pick >= 0 {
			a.prediction = opts[pick].Value
		}
	case race.EventRollResult:
		if ev.Target != owner.Idx || a.prediction == 0 || ev.DiceValue != a.prediction {
			return
		}
		e.State().NextTurnOverride = owner.Idx
		e.EmitAbility(owner.Idx, a.tag, owner.Idx)
	}
}

// Skipper steals the next turn whenever anyone rolls a 1, its own duds
// included
type Skipper struct{ base }

func (a *Skipper) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	if ev.Type != race.EventRollResult || ev.DiceValue != 1 {
		return
	}
	e.State().NextTurnOverride = owner.Idx
	e.EmitAbility(owner.Idx, a.tag, ev.Target)
}

// Sisyphus starts rich in points, but its own 6 rolls the boulder back down:
// warp to the start and forfeit the move
type Sisyphus struct{ base }

func (a *Sisyphus) OnSetup(e *race.Engine, owner *race.RacerState) {
	owner.VictoryPoints += 4
}

func (a *Sisyphus) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	if ev.Type != race.EventRollResult || ev.Target != owner.Idx || ev.DiceValue != 6 {
		return
	}
	e.SkipMainMove(owner.Idx, owner.Idx, a.tag)
	e.PushWarp(owner.Idx, 0, owner.Idx, a.tag)
	if owner.VictoryPoints > 0 {
		owner.VictoryPoints--
	}
}

// Dicemonger lends its dice to the whole field: every racer gets a once-per-
// turn reroll of their own roll, and the monger profits a tile whenever
// somebody else takes the deal
type Dicemonger struct{ base }

func (a *Dicemonger) OnSetup(e *race.Engine, owner *race.RacerState) {
	// grants happen here rather than only on gain: at setup the later
	// racers' ability lists are still being reconciled and would drop
	// a deal handed out early
	a.dealOut(e, owner.Idx)
}

func (a *Dicemonger) OnGain(e *race.Engine, ownerIdx int) {
	a.dealOut(e, ownerIdx)
}

func (a *Dicemonger) OnLoss(e *race.Engine, ownerIdx int) {
	for _, r := range e.State().Racers {
		if r.Idx != ownerIdx && r.HasAbility(TagDicemonger) {
			return // another monger still backs the deals
		}
	}
	for _, r := range e.State().Racers {
		e.RevokeAbility(r.Idx, TagDicemongerDeal)
	}
}

func (a *Dicemonger) dealOut(e *race.Engine, ownerIdx int) {
	for _, r := range e.State().Racers {
		e.GrantAbility(r.Idx, &BorrowedReroll{
			base:  newBase(TagDicemongerDeal, race.EventTurnStart, race.EventRollWindow),
			donor: ownerIdx,
		})
	}
}

func (a *Dicemonger) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {}

// BorrowedReroll is the deal a Dicemonger hands out. It lives on the holder,
// not the monger, so it keeps working while the monger is mid-turn elsewhere.
type BorrowedReroll struct {
	base
	donor int
	used  bool
}

func (a *BorrowedReroll) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	switch ev.Type {
	case race.EventTurnStart:
		if ev.Target == owner.Idx {
			a.used = false
		}
	case race.EventRollWindow:
		if ev.Target != owner.Idx || a.used {
			return
		}
		rs := &e.State().RollState
		if ev.RollSerial != rs.Serial || !rs.CanReroll {
			return
		}
		ok := e.DecideBool(&race.Decision{
			Kind:       race.ChoiceRerollOrKeep,
			OnBehalfOf: a.tag,
			Actor:      owner.Idx,
			Roll:       rs,
		})
		if !ok {
			return
		}
		if !e.TriggerReroll(owner.Idx, a.tag) {
			return
		}
		a.used = true
		if owner.Idx != a.donor {
			e.PushMove(a.donor, 1, a.donor, a.tag)
		}
	}
}

// RocketScientist may fire the boosters after seeing its roll: the die
// counts double, but the landing trips it
type RocketScientist struct{ base }

func (a *RocketScientist) Execute(e *race.Engine, ev *race.Event, owner *race.RacerState) {
	if ev.Type != race.EventRollResult || ev.Target != owner.Idx || ev.DiceValue == 0 {
		return
	}
	rs := &e.State().RollState
	if ev.RollSerial != rs.Serial {
		return
	}
	ok := e.DecideBool(&race.Decision{
		Kind:       race.ChoiceUseAbility,
		OnBehalfOf: a.tag,
		Actor:      owner.Idx,
		Roll:       rs,
	})
	if !ok {
		return
	}
	e.BoostRoll(owner.Idx, ev.DiceValue, a.tag)
	e.PushTrip(owner.Idx, owner.Idx, a.tag)
}
