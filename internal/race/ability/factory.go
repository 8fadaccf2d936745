// Package ability implements the closed set of racer abilities. Every
// archetype maps to exactly one variant; New is the single construction
// point, so copy effects resolve a target's true ability by calling back
// into the same factory.
package ability

import (
	"fmt"

	"github.com/mwolters/athletesim/internal/race"
)

// New builds the fresh ability set for a racer archetype. The switch is
// exhaustive over race.AllRacers; an unknown name is a programming error.
func New(name race.RacerName) []race.Ability {
	switch name {
	case race.RacerAlchemist:
		return one(&Alchemist{base: newBase(TagAlchemist, race.EventRollWindow)})
	case race.RacerBabaYaga:
		return one(&BabaYaga{base: newBase(TagBabaYaga, race.EventPostMove, race.EventPostWarp)})
	case race.RacerBanana:
		return one(&Banana{base: newBase(TagBanana, race.EventPassing)})
	case race.RacerBlimp:
		return one(&Blimp{base: newBase(TagBlimp)})
	case race.RacerCentaur:
		return one(&Centaur{base: newBase(TagCentaur, race.EventPassing)})
	case race.RacerCheerleader:
		return one(&Cheerleader{base: newBase(TagCheerleader, race.EventTurnStart)})
	case race.RacerCoach:
		return one(&Coach{base: newBase(TagCoach)})
	case race.RacerCopycat:
		return one(&Copycat{base: newBase(TagCopycat, race.EventPreTurnStart)})
	case race.RacerDicemonger:
		return one(&Dicemonger{base: newBase(TagDicemonger)})
	case race.RacerDuelist:
		return one(&Duelist{base: newBase(TagDuelist, race.EventTurnStart, race.EventPostMove, race.EventPostWarp)})
	case race.RacerEgg:
		return one(&Egg{base: newBase(TagEgg)})
	case race.RacerFlipFlop:
		return one(&FlipFlop{base: newBase(TagFlipFlop, race.EventTurnStart)})
	case race.RacerGenius:
		return one(&Genius{base: newBase(TagGenius, race.EventTurnStart, race.EventRollResult)})
	case race.RacerGunk:
		return one(&Gunk{base: newBase(TagGunk)})
	case race.RacerHare:
		return one(&Hare{base: newBase(TagHare, race.EventTurnStart)})
	case race.RacerHeckler:
		return one(&Heckler{base: newBase(TagHeckler, race.EventPreTurnStart, race.EventTurnEnd)})
	case race.RacerHugeBaby:
		return one(&HugeBaby{base: newBase(TagHugeBaby)})
	case race.RacerHypnotist:
		return one(&Hypnotist{base: newBase(TagHypnotist, race.EventTurnStart)})
	case race.RacerInchworm:
		return one(&Inchworm{base: newBase(TagInchworm, race.EventRollResult)})
	case race.RacerLackey:
		return one(&Lackey{base: newBase(TagLackey, race.EventRollResult)})
	case race.RacerLeaptoad:
		return one(&Leaptoad{base: newBase(TagLeaptoad)})
	case race.RacerLegs:
		return one(&Legs{base: newBase(TagLegs, race.EventTurnStart)})
	case race.RacerLovableLoser:
		return one(&LovableLoser{base: newBase(TagLovableLoser, race.EventTurnStart)})
	case race.RacerMagician:
		return one(&Magician{base: newBase(TagMagician, race.EventTurnStart, race.EventRollWindow)})
	case race.RacerMastermind:
		return one(&Mastermind{base: newBase(TagMastermind, race.EventTurnStart, race.EventFinished)})
	case race.RacerMouth:
		return one(&Mouth{base: newBase(TagMouth, race.EventPostMove, race.EventPostWarp)})
	case race.RacerPartyAnimal:
		return one(&PartyAnimal{base: newBase(TagPartyAnimal, race.EventTurnStart)})
	case race.RacerRocketScientist:
		return one(&RocketScientist{base: newBase(TagRocketScientist, race.EventRollResult)})
	case race.RacerRomantic:
		return one(&Romantic{base: newBase(TagRomantic, race.EventPostMove, race.EventPostWarp)})
	case race.RacerScoocher:
		return one(&Scoocher{base: newBase(TagScoocher, race.EventAbilityTriggered)})
	case race.RacerSisyphus:
		return one(&Sisyphus{base: newBase(TagSisyphus, race.EventRollResult)})
	case race.RacerSkipper:
		return one(&Skipper{base: newBase(TagSkipper, race.EventRollResult)})
	case race.RacerStickler:
		return one(&Stickler{base: newBase(TagStickler)})
	case race.RacerSuckerfish:
		return one(&Suckerfish{base: newBase(TagSuckerfish, race.EventPostMove)})
	case race.RacerThirdWheel:
		return one(&ThirdWheel{base: newBase(TagThirdWheel, race.EventTurnStart)})
	case race.RacerTwin:
		return one(&Twin{base: newBase(TagTwin)})
	case race.RacerPlain:
		return nil
	default:
		panic(fmt.Sprintf("ability: unknown racer %q", name))
	}
}

// Ability tags, used for event attribution and decision routing
const (
	TagAlchemist       race.Source = "Transmute"
	TagBabaYaga        race.Source = "CursedGround"
	TagBanana          race.Source = "SlipOnPeel"
	TagBlimp           race.Source = "Tailwind"
	TagCentaur         race.Source = "BackKick"
	TagCheerleader     race.Source = "RallyCheer"
	TagCoach           race.Source = "PepTalk"
	TagCopycat         race.Source = "MirrorMove"
	TagDicemonger      race.Source = "DiceLoan"
	TagDicemongerDeal  race.Source = "BorrowedDie"
	TagDuelist         race.Source = "Showdown"
	TagEgg             race.Source = "Hatch"
	TagFlipFlop        race.Source = "PlaceSwap"
	TagGenius          race.Source = "Prediction"
	TagGunk            race.Source = "Slime"
	TagHare            race.Source = "HareSpeed"
	TagHeckler         race.Source = "Heckle"
	TagHugeBaby        race.Source = "Roadblock"
	TagHypnotist       race.Source = "Mesmerize"
	TagInchworm        race.Source = "Undermine"
	TagLackey          race.Source = "Coattails"
	TagLeaptoad        race.Source = "LilyHop"
	TagLegs            race.Source = "SteadyStride"
	TagLovableLoser    race.Source = "Sympathy"
	TagMagician        race.Source = "MagicalReroll"
	TagMastermind      race.Source = "GrandPlan"
	TagMouth           race.Source = "Devour"
	TagPartyAnimal     race.Source = "HouseParty"
	TagRocketScientist race.Source = "BoosterBurn"
	TagRomantic        race.Source = "Tryst"
	TagScoocher        race.Source = "Scooch"
	TagSisyphus        race.Source = "Boulder"
	TagSkipper         race.Source = "TurnTheft"
	TagStickler        race.Source = "ExactFinish"
	TagSuckerfish      race.Source = "Hitchhike"
	TagThirdWheel      race.Source = "CrashTheDate"
	TagTwin            race.Source = "Lookalike"
)

// base carries the tag and trigger list shared by every variant
type base struct {
	tag      race.Source
	triggers []race.EventType
}

func newBase(tag race.Source, triggers ...race.EventType) base {
	return base{tag: tag, triggers: triggers}
}

func (b base) Name() race.Source          { return b.tag }
func (b base) Triggers() []race.EventType { return b.triggers }

func one(a race.Ability) []race.Ability { return []race.Ability{a} }

// compile-time checks for the optional interfaces
var (
	_ race.SetupAbility     = (*Egg)(nil)
	_ race.SetupAbility     = (*Twin)(nil)
	_ race.SetupAbility     = (*Sisyphus)(nil)
	_ race.SetupAbility     = (*Dicemonger)(nil)
	_ race.LifecycleAbility = (*Blimp)(nil)
	_ race.LifecycleAbility = (*Coach)(nil)
	_ race.LifecycleAbility = (*Dicemonger)(nil)
	_ race.LifecycleAbility = (*Gunk)(nil)
	_ race.LifecycleAbility = (*Hare)(nil)
	_ race.LifecycleAbility = (*HugeBaby)(nil)
	_ race.LifecycleAbility = (*Leaptoad)(nil)
	_ race.LifecycleAbility = (*PartyAnimal)(nil)
	_ race.LifecycleAbility = (*Stickler)(nil)

	_ race.RollModifier          = hareSpeed{}
	_ race.RollModifier          = blimpDrift{}
	_ race.RollModifier          = coachAura{}
	_ race.RollModifier          = gunkSlime{}
	_ race.RollModifier          = partyBoost{}
	_ race.DestinationCalculator = lilyHop{}
	_ race.ApproachModifier      = roadblock{}
	_ race.MoveValidator         = exactFinish{}
)
