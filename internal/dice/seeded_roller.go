package dice

import (
	"fmt"
	"math/rand"
)

// seededRoller implements Roller on top of an explicit rand.Rand instance.
// Every race owns its own roller so parallel batches never share RNG state
// and identical seeds reproduce identical roll sequences.
type seededRoller struct {
	rng *rand.Rand
}

// NewSeededRoller creates a roller with its own generator seeded from seed
func NewSeededRoller(seed int64) Roller {
	return &seededRoller{rng: rand.New(rand.NewSource(seed))}
}

// NewRollerFromRand creates a roller that draws from an existing generator.
// Used when the race engine shares one RNG stream between dice and draws.
func NewRollerFromRand(rng *rand.Rand) Roller {
	if rng == nil {
		panic("rng is required")
	}
	return &seededRoller{rng: rng}
}

// Roll implements Roller.Roll
func (r *seededRoller) Roll(sides int) (int, error) {
	if sides < 1 {
		return 0, fmt.Errorf("invalid dice size %d", sides)
	}
	return r.rng.Intn(sides) + 1, nil
}
