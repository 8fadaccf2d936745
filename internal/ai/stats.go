package ai

import "github.com/mwolters/athletesim/internal/race"

// archetypeScore ranks racer archetypes by average victory points over large
// self-play batches. Draft-style picks (hatching an egg, choosing a twin)
// take the highest-scored option on the table, falling back to 1.0 for
// anything unlisted.
var archetypeScore = map[race.RacerName]float64{
	race.RacerHare:            1.95,
	race.RacerMagician:        1.72,
	race.RacerLegs:            1.64,
	race.RacerBlimp:           1.58,
	race.RacerLeaptoad:        1.51,
	race.RacerGenius:          1.43,
	race.RacerSkipper:         1.37,
	race.RacerRocketScientist: 1.35,
	race.RacerAlchemist:       1.33,
	race.RacerPartyAnimal:     1.28,
	race.RacerScoocher:        1.24,
	race.RacerLackey:          1.19,
	race.RacerHeckler:         1.15,
	race.RacerRomantic:        1.12,
	race.RacerFlipFlop:        1.09,
	race.RacerDuelist:         1.08,
	race.RacerThirdWheel:      1.06,
	race.RacerCheerleader:     1.03,
	race.RacerSisyphus:        1.02,
	race.RacerMastermind:      1.00,
	race.RacerCoach:           0.98,
	race.RacerSuckerfish:      0.95,
	race.RacerHypnotist:       0.93,
	race.RacerDicemonger:      0.92,
	race.RacerInchworm:        0.91,
	race.RacerCentaur:         0.89,
	race.RacerGunk:            0.87,
	race.RacerStickler:        0.84,
	race.RacerMouth:           0.82,
	race.RacerBanana:          0.79,
	race.RacerBabaYaga:        0.77,
	race.RacerHugeBaby:        0.74,
	race.RacerLovableLoser:    0.71,
	race.RacerCopycat:         0.70,
	race.RacerEgg:             0.68,
	race.RacerTwin:            0.66,
}

// pickByArchetype returns the option with the best-scored racer name,
// lowest index on ties
func pickByArchetype(options []race.Option) int {
	best := 0
	bestScore := -1.0
	for i, opt := range options {
		score, ok := archetypeScore[opt.Name]
		if !ok {
			score = 1.0
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}
