package race

// Ability is one racer's rule modifier. Implementations subscribe to engine
// events via Triggers and mutate state only through engine commands, so every
// observable effect lands in the event log.
//
// The set of abilities is closed: the factory in internal/race/ability
// dispatches over RacerName with an exhaustive switch.
type Ability interface {
	// Name returns the stable ability tag used for event attribution
	Name() Source

	// Triggers lists the event types this ability reacts to
	Triggers() []EventType

	// Execute handles a triggered event. The engine only calls it while the
	// owner is active, in deterministic turn order across reacting racers.
	Execute(e *Engine, ev *Event, owner *RacerState)
}

// SetupAbility runs once at race setup, before the first turn.
// Setup may grant further abilities; the engine keeps iterating until no
// unprocessed abilities remain.
type SetupAbility interface {
	Ability
	OnSetup(e *Engine, owner *RacerState)
}

// LifecycleAbility is notified when it is attached to or removed from a racer
// (ability copying, finishing strips all abilities). Used by abilities that
// manage modifiers on themselves or on other racers.
type LifecycleAbility interface {
	Ability
	OnGain(e *Engine, ownerIdx int)
	OnLoss(e *Engine, ownerIdx int)
}

// Factory instantiates the fresh ability set for a racer archetype.
// Injected into the engine so copy abilities can resolve a target's true
// variant without the race package importing the variant implementations.
type Factory func(name RacerName) []Ability

// Modifier is a passive attachment on a racer. Unlike abilities, modifiers do
// not subscribe to events; the engine consults them at fixed points in the
// roll and movement pipeline.
type Modifier interface {
	// Name returns the modifier tag used for event attribution
	Name() Source

	// Owner returns the racer whose ability attached this modifier
	Owner() int
}

// RollModifier adjusts the main-move distance after the die is rolled
type RollModifier interface {
	Modifier
	ModifyRoll(e *Engine, q *RollQuery)
}

// DestinationCalculator overrides the start+distance destination math
// (jumping over occupied tiles, riding to an exact tile)
type DestinationCalculator interface {
	Modifier
	Destination(e *Engine, ev *Event, racerIdx, start, distance int) int
}

// MoveValidator may veto a move based on its projected destination
type MoveValidator interface {
	Modifier
	ValidateMove(e *Engine, racerIdx, start, end int) bool
}

// ApproachModifier may redirect a racer approaching the owner's tile
type ApproachModifier interface {
	Modifier
	OnApproach(e *Engine, ev *Event, target, movingRacer int) int
}

// RollQuery accumulates modifiers on a main-move roll. The final distance is
// clamped at zero.
type RollQuery struct {
	Racer int
	Base  int

	deltas  []int
	sources []ModSource
}

// ModSource is one attributed roll adjustment
type ModSource struct {
	Source Source
	Owner  int
	Delta  int
}

// Add records an attributed adjustment
func (q *RollQuery) Add(src Source, owner, delta int) {
	q.deltas = append(q.deltas, delta)
	q.sources = append(q.sources, ModSource{Source: src, Owner: owner, Delta: delta})
}

// Sources returns the attributed adjustments in application order
func (q *RollQuery) Sources() []ModSource {
	return q.sources
}

// Final returns the clamped move distance
func (q *RollQuery) Final() int {
	total := q.Base
	for _, d := range q.deltas {
		total += d
	}
	if total < 0 {
		return 0
	}
	return total
}
