package race

import (
	"math/rand"

	"github.com/mwolters/athletesim/internal/board"
)

// RollOverride replaces the die roll for a racer's next main move
type RollOverride struct {
	Source Source
	Value  int
}

// RacerState is the mutable per-race state of one competitor. Identity (Idx,
// Name) is fixed at setup; only the remaining fields mutate.
type RacerState struct {
	Idx  int
	Name RacerName

	Position      int
	FinishRank    int // 0 while racing; 1-based once finished
	Eliminated    bool
	Tripped       bool
	TrippedBy     []int
	MainMoveDone  bool // main move consumed this turn (skip, trip, cancel)
	VictoryPoints int
	RollOverride  *RollOverride

	abilities []Ability
	modifiers []Modifier
}

// Active reports whether the racer is still racing
func (r *RacerState) Active() bool {
	return r.FinishRank == 0 && !r.Eliminated
}

// Finished reports whether the racer crossed the line
func (r *RacerState) Finished() bool {
	return r.FinishRank > 0
}

// Abilities returns the racer's live ability list
func (r *RacerState) Abilities() []Ability {
	return r.abilities
}

// Modifiers returns the racer's attached modifiers
func (r *RacerState) Modifiers() []Modifier {
	return r.modifiers
}

// HasAbility reports whether the racer currently holds the named ability
func (r *RacerState) HasAbility(name Source) bool {
	for _, a := range r.abilities {
		if a.Name() == name {
			return true
		}
	}
	return false
}

// RollState tracks the main roll currently in flight. Serial invalidates
// stale resolutions after a reroll; Rerolls enforces the per-turn cap.
type RollState struct {
	Serial     int
	DiceValue  int // 0 when the base value was an override, not a die
	BaseValue  int
	FinalValue int
	CanReroll  bool
	Rerolls    int
}

// Rules carries the tunable race rules
type Rules struct {
	// FinishCount racers must finish before the race ends
	FinishCount int

	// WinnerVP maps finish rank (1-based) to awarded victory points
	WinnerVP []int

	// MaxRerollsPerTurn caps total rerolls per turn regardless of how many
	// abilities request more; exhausting it is a silent no-op, not an error
	MaxRerollsPerTurn int

	// MaxEventsPerTurn is the loop-guard budget for processed events
	MaxEventsPerTurn int

	// MaxTurns cuts off degenerate races
	MaxTurns int
}

// DefaultRules returns the standard tournament rules
func DefaultRules() Rules {
	return Rules{
		FinishCount:       2,
		WinnerVP:          []int{4, 1},
		MaxRerollsPerTurn: 2,
		MaxEventsPerTurn:  512,
		MaxTurns:          1000,
	}
}

// State is the full mutable state of one race
type State struct {
	Racers []*RacerState
	Board  *board.Board
	Rules  Rules

	Current          int
	NextTurnOverride int // NoRacer when unset
	RaceOver         bool
	RollState        RollState

	drawPile []RacerName
	queue    eventQueue
	serial   int
}

// ActiveCount returns how many racers are still racing
func (s *State) ActiveCount() int {
	n := 0
	for _, r := range s.Racers {
		if r.Active() {
			n++
		}
	}
	return n
}

// FinishedCount returns how many racers crossed the line
func (s *State) FinishedCount() int {
	n := 0
	for _, r := range s.Racers {
		if r.Finished() {
			n++
		}
	}
	return n
}

// LeaderPosition returns the furthest position among active racers
func (s *State) LeaderPosition() int {
	best := 0
	for _, r := range s.Racers {
		if r.Active() && r.Position > best {
			best = r.Position
		}
	}
	return best
}

// shuffleDrawPile rebuilds the pile from racers not present in the race
func (s *State) shuffleDrawPile(rng *rand.Rand) {
	inRace := make(map[RacerName]bool, len(s.Racers))
	for _, r := range s.Racers {
		inRace[r.Name] = true
	}

	s.drawPile = s.drawPile[:0]
	for _, name := range AllRacers {
		if !inRace[name] {
			s.drawPile = append(s.drawPile, name)
		}
	}
	rng.Shuffle(len(s.drawPile), func(i, j int) {
		s.drawPile[i], s.drawPile[j] = s.drawPile[j], s.drawPile[i]
	})
}
