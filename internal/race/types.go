// Package race implements the turn-based race engine: racer state, the phased
// event queue, ability resolution and the per-race event log.
package race

// RacerName identifies a competitor archetype. Each name binds to exactly one
// ability variant for the duration of a race.
type RacerName string

const (
	RacerAlchemist       RacerName = "Alchemist"
	RacerBabaYaga        RacerName = "BabaYaga"
	RacerBanana          RacerName = "Banana"
	RacerBlimp           RacerName = "Blimp"
	RacerCentaur         RacerName = "Centaur"
	RacerCheerleader     RacerName = "Cheerleader"
	RacerCoach           RacerName = "Coach"
	RacerCopycat         RacerName = "Copycat"
	RacerDicemonger      RacerName = "Dicemonger"
	RacerDuelist         RacerName = "Duelist"
	RacerEgg             RacerName = "Egg"
	RacerFlipFlop        RacerName = "FlipFlop"
	RacerGenius          RacerName = "Genius"
	RacerGunk            RacerName = "Gunk"
	RacerHare            RacerName = "Hare"
	RacerHeckler         RacerName = "Heckler"
	RacerHugeBaby        RacerName = "HugeBaby"
	RacerHypnotist       RacerName = "Hypnotist"
	RacerInchworm        RacerName = "Inchworm"
	RacerLackey          RacerName = "Lackey"
	RacerLeaptoad        RacerName = "Leaptoad"
	RacerLegs            RacerName = "Legs"
	RacerLovableLoser    RacerName = "LovableLoser"
	RacerMagician        RacerName = "Magician"
	RacerMastermind      RacerName = "Mastermind"
	RacerMouth           RacerName = "Mouth"
	RacerPartyAnimal     RacerName = "PartyAnimal"
	RacerRocketScientist RacerName = "RocketScientist"
	RacerRomantic        RacerName = "Romantic"
	RacerScoocher        RacerName = "Scoocher"
	RacerSisyphus        RacerName = "Sisyphus"
	RacerSkipper         RacerName = "Skipper"
	RacerStickler        RacerName = "Stickler"
	RacerSuckerfish      RacerName = "Suckerfish"
	RacerThirdWheel      RacerName = "ThirdWheel"
	RacerTwin            RacerName = "Twin"

	// RacerPlain has no ability; used for control groups and tests
	RacerPlain RacerName = "Plain"
)

// AllRacers lists every racer with an ability, in draw-pile order
var AllRacers = []RacerName{
	RacerAlchemist, RacerBabaYaga, RacerBanana, RacerBlimp, RacerCentaur,
	RacerCheerleader, RacerCoach, RacerCopycat, RacerDicemonger, RacerDuelist,
	RacerEgg, RacerFlipFlop, RacerGenius, RacerGunk, RacerHare, RacerHeckler,
	RacerHugeBaby, RacerHypnotist, RacerInchworm, RacerLackey, RacerLeaptoad,
	RacerLegs, RacerLovableLoser, RacerMagician, RacerMastermind, RacerMouth,
	RacerPartyAnimal, RacerRocketScientist, RacerRomantic, RacerScoocher,
	RacerSisyphus, RacerSkipper, RacerStickler, RacerSuckerfish,
	RacerThirdWheel, RacerTwin,
}

// Source attributes an event to the ability, modifier or system that caused it
type Source string

const (
	// SourceSystem marks events produced by the turn engine itself
	SourceSystem Source = "System"

	// SourceBoard marks events produced by special board tiles
	SourceBoard Source = "Board"
)

// ErrCode classifies abnormal race terminations recorded on a Result
type ErrCode string

const (
	// ErrCodeLoopDetected means the loop guard aborted the turn after the
	// per-turn event budget was exhausted
	ErrCodeLoopDetected ErrCode = "loop_detected"

	// ErrCodeMaxTurns means the race was cut short by the turn cap
	ErrCodeMaxTurns ErrCode = "max_turns_reached"
)
