package ai

import (
	"github.com/mwolters/athletesim/internal/board"
	"github.com/mwolters/athletesim/internal/race"
	"github.com/mwolters/athletesim/internal/race/ability"
)

// Heuristic plays each ability by simple expected-value rules. Decisions are
// routed on the resolved ability tag, so a copied ability is played exactly
// like the original. Ties always break toward the lowest option index.
type Heuristic struct{}

// NewHeuristic creates the expected-value policy
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

func (p *Heuristic) DecideBool(d *race.Decision) bool {
	switch d.OnBehalfOf {
	case ability.TagMagician, ability.TagDicemongerDeal:
		// a d6 averages 3.5; rerolling anything under 4 is a profit
		return d.Roll != nil && d.Roll.DiceValue <= 3

	case ability.TagLegs:
		// a guaranteed 5 beats the die's expectation, unless it parks us on
		// a hazard
		if d.State != nil && hazardAt(d.State, d.State.Racers[d.Actor].Position+5) {
			return false
		}
		return true

	case ability.TagAlchemist:
		// trading a 1 or 2 for a 4 is strictly better than the reroll gamble
		return true

	case ability.TagSuckerfish:
		// only hitch forward rides, and never onto a hazard
		if len(d.Options) == 0 || d.State == nil {
			return false
		}
		return d.Options[0].Position > d.State.Racers[d.Actor].Position &&
			!hazardAt(d.State, d.Options[0].Position)

	case ability.TagCheerleader:
		// the cheer drags the cheerleader itself a tile forward
		return d.State == nil || !hazardAt(d.State, d.State.Racers[d.Actor].Position+1)

	case ability.TagRocketScientist:
		// doubling trips us; only worth it on a high die
		return d.Roll != nil && d.Roll.DiceValue >= 4
	}
	return true
}

func (p *Heuristic) DecideSelect(d *race.Decision) int {
	if len(d.Options) == 0 {
		return -1
	}
	switch d.OnBehalfOf {
	case ability.TagFlipFlop:
		return p.pickSwapTarget(d)
	case ability.TagHypnotist:
		return p.pickPullTarget(d)
	case ability.TagThirdWheel:
		return p.pickJumpTile(d)
	case ability.TagGenius:
		return p.pickPrediction(d)
	case ability.TagMastermind:
		return pickLeader(d.Options)
	case ability.TagDuelist:
		// always duel; a tie goes to the challenger, so the odds favor us
		return pickLeader(d.Options)
	case ability.TagEgg, ability.TagTwin:
		return pickByArchetype(d.Options)
	}
	return 0
}

// pickLeader selects the furthest-along option, ties toward the lowest index
func pickLeader(options []race.Option) int {
	best := 0
	for i, opt := range options {
		if opt.Position > options[best].Position {
			best = i
		}
	}
	return best
}

// hazardAt reports whether landing on the tile is an obvious loss: a trip or
// backward tile, or a tile held by a cursed-ground racer
func hazardAt(s *race.State, tile int) bool {
	if tile >= s.Board.Length() {
		return false // crossing the line is never a hazard
	}
	if eff, ok := s.Board.EffectAt(tile); ok {
		if eff.Kind == board.EffectTrip {
			return true
		}
		if eff.Kind == board.EffectMoveDelta && eff.Delta < 0 {
			return true
		}
	}
	for _, r := range s.Racers {
		if r.Active() && r.Position == tile && r.HasAbility(ability.TagBabaYaga) {
			return true
		}
	}
	return false
}

// pickSwapTarget swaps only when somebody is well ahead; trading places with
// a neighbor wastes the forfeited move
func (p *Heuristic) pickSwapTarget(d *race.Decision) int {
	self := d.State.Racers[d.Actor].Position
	best, bestGain := -1, 0
	for i, opt := range d.Options {
		gain := opt.Position - self
		if gain > bestGain {
			best, bestGain = i, gain
		}
	}
	if bestGain < 6 {
		return -1
	}
	return best
}

// pickPullTarget drags the race leader back to the owner's tile, unless the
// tile is a worse place for them to be useful (a leader behind us stays put)
func (p *Heuristic) pickPullTarget(d *race.Decision) int {
	self := d.State.Racers[d.Actor].Position
	best, bestPos := -1, self
	for i, opt := range d.Options {
		if opt.Position > bestPos {
			best, bestPos = i, opt.Position
		}
	}
	return best
}

// pickJumpTile crashes the farthest pair ahead of the owner, skipping tiles
// the owner would regret landing on
func (p *Heuristic) pickJumpTile(d *race.Decision) int {
	self := d.State.Racers[d.Actor].Position
	best, bestPos := -1, self
	for i, opt := range d.Options {
		if opt.Position > bestPos && !hazardAt(d.State, opt.Position) {
			best, bestPos = i, opt.Position
		}
	}
	return best
}

// pickPrediction always calls a 4. No call is likelier than another, and a
// fixed call keeps replays stable.
func (p *Heuristic) pickPrediction(d *race.Decision) int {
	for i, opt := range d.Options {
		if opt.Value == 4 {
			return i
		}
	}
	return 0
}
