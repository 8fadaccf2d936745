package race

import (
	"container/heap"
	"fmt"
	"log"
	"math/rand"

	"github.com/mwolters/athletesim/internal/board"
	"github.com/mwolters/athletesim/internal/dice"
	simerr "github.com/mwolters/athletesim/internal/errors"
)

// subscriber binds an ability instance to the racer that owns it
type subscriber struct {
	ability Ability
	owner   int
}

// Config holds everything needed to construct an Engine
type Config struct {
	RaceID  string
	Board   *board.Board
	Racers  []RacerName
	Seed    int64
	Policy  Policy
	Factory Factory
	Rules   Rules
	Verbose bool

	// Roller overrides the seeded die, for tests that script exact rolls
	Roller dice.Roller
}

// Engine orchestrates one race: turn order, rolls, ability resolution,
// movement and the event log. A race is strictly single-threaded; resolution
// order is part of the correctness contract.
type Engine struct {
	state  *State
	roller dice.Roller
	rng    *rand.Rand
	policy Policy

	factory     Factory
	subscribers map[EventType][]subscriber

	log       *eventLog
	snapshots [][]int
	turnIndex int
	verbose   bool

	guard      *loopGuard
	rollSerial int
	errCode    ErrCode
	failure    error
}

// New validates the configuration and constructs a ready-to-run engine.
// Racer setup hooks run here, before the first turn.
func New(cfg *Config) (*Engine, error) {
	if cfg == nil {
		return nil, simerr.Configuration("race config is required")
	}
	if cfg.Board == nil {
		return nil, simerr.Configuration("board is required")
	}
	if len(cfg.Racers) < 2 {
		return nil, simerr.Configurationf("at least two racers required, got %d", len(cfg.Racers))
	}
	if cfg.Policy == nil {
		return nil, simerr.Configuration("ai policy is required")
	}
	if cfg.Factory == nil {
		return nil, simerr.Configuration("ability factory is required")
	}

	rules := cfg.Rules
	defaults := DefaultRules()
	if rules.FinishCount == 0 {
		rules.FinishCount = defaults.FinishCount
	}
	if rules.WinnerVP == nil {
		rules.WinnerVP = defaults.WinnerVP
	}
	if rules.MaxRerollsPerTurn == 0 {
		rules.MaxRerollsPerTurn = defaults.MaxRerollsPerTurn
	}
	if rules.MaxEventsPerTurn == 0 {
		rules.MaxEventsPerTurn = defaults.MaxEventsPerTurn
	}
	if rules.MaxTurns == 0 {
		rules.MaxTurns = defaults.MaxTurns
	}
	if rules.FinishCount > len(cfg.Racers) {
		return nil, simerr.Configurationf("finish count %d exceeds racer count %d", rules.FinishCount, len(cfg.Racers))
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	st := &State{
		Board:            cfg.Board,
		Rules:            rules,
		NextTurnOverride: NoRacer,
	}
	for i, name := range cfg.Racers {
		st.Racers = append(st.Racers, &RacerState{Idx: i, Name: name})
	}
	st.shuffleDrawPile(rng)

	roller := cfg.Roller
	if roller == nil {
		roller = dice.NewRollerFromRand(rng)
	}

	e := &Engine{
		state:       st,
		roller:      roller,
		rng:         rng,
		policy:      cfg.Policy,
		factory:     cfg.Factory,
		subscribers: make(map[EventType][]subscriber),
		log:         &eventLog{raceID: cfg.RaceID},
		guard:       newLoopGuard(),
		verbose:     cfg.Verbose,
	}

	for _, r := range st.Racers {
		e.updateAbilities(r.Idx, e.InstantiateAbilities(r.Name))
	}
	e.runSetupPhase()

	return e, nil
}

// runSetupPhase fires OnSetup for every ability, including abilities gained
// during setup (a setup draw can grant a racer a second setup ability).
func (e *Engine) runSetupPhase() {
	for _, r := range e.state.Racers {
		done := make(map[Ability]bool)
		for {
			var fresh []Ability
			for _, a := range r.abilities {
				if !done[a] {
					fresh = append(fresh, a)
				}
			}
			if len(fresh) == 0 {
				break
			}
			for _, a := range fresh {
				done[a] = true
				if setup, ok := a.(SetupAbility); ok {
					setup.OnSetup(e, r)
				}
			}
		}
	}
}

// Run drives the race to completion and freezes the result
func (e *Engine) Run() (*Result, error) {
	for !e.state.RaceOver && e.failure == nil {
		e.runTurn()
		e.snapshot()
		e.turnIndex++

		if e.turnIndex >= e.state.Rules.MaxTurns && !e.state.RaceOver {
			e.errCode = ErrCodeMaxTurns
			e.endRace()
		}
		e.advanceTurn()
	}

	if e.failure != nil {
		return nil, e.failure
	}
	return e.buildResult(), nil
}

// runTurn executes one racer's full turn: lifecycle events, the main roll
// pipeline and every reaction it provokes, until the queue drains.
func (e *Engine) runTurn() {
	e.guard.resetForTurn()

	cr := e.state.Current
	racer := e.state.Racers[cr]

	e.state.RollState = RollState{}
	racer.RollOverride = nil
	racer.MainMoveDone = false

	e.logf("=== start turn: %d:%s ===", racer.Idx, racer.Name)

	e.push(&Event{Type: EventPreTurnStart, Phase: PhaseSystem, Source: SourceSystem, Responsible: NoRacer, Target: cr}, nil)

	if racer.Tripped {
		e.logf("%d:%s recovers from trip", racer.Idx, racer.Name)
		racer.Tripped = false
		racer.TrippedBy = nil
		racer.MainMoveDone = true
		e.push(&Event{Type: EventTripRecovery, Phase: PhasePreMain, Source: SourceSystem, Responsible: NoRacer, Target: cr}, nil)
		e.push(&Event{Type: EventTurnStart, Phase: PhaseSystem, Source: SourceSystem, Responsible: NoRacer, Target: cr}, nil)
	} else {
		e.push(&Event{Type: EventTurnStart, Phase: PhaseSystem, Source: SourceSystem, Responsible: NoRacer, Target: cr}, nil)
		e.push(&Event{Type: EventPerformMainRoll, Phase: PhaseRollDice, Source: SourceSystem, Responsible: NoRacer, Target: cr}, nil)
	}

	turnEndDone := false
	for !e.state.RaceOver && e.failure == nil {
		if len(e.state.queue) == 0 {
			if !turnEndDone {
				e.push(&Event{Type: EventTurnEnd, Phase: PhaseReaction, Source: SourceSystem, Responsible: NoRacer, Target: NoRacer}, nil)
				turnEndDone = true
				continue
			}
			break
		}

		hash := e.stateHash()
		if e.guard.checkCycle(hash) {
			dropped := e.state.queue.pop()
			e.logf("loop guard: dropping recursive event %s from %s", dropped.event.Type, dropped.event.Source)
			continue
		}
		if e.guard.checkBudget(e.state.Rules.MaxEventsPerTurn) {
			e.logf("loop guard: event budget exhausted, aborting turn")
			e.state.queue.clear()
			e.errCode = ErrCodeLoopDetected
			e.endRace()
			break
		}

		sched := e.state.queue.pop()
		e.handleEvent(sched.event)
	}
}

// advanceTurn selects the next racer, honoring turn-order overrides and
// skipping inactive entries
func (e *Engine) advanceTurn() {
	if e.state.RaceOver {
		return
	}

	if e.state.NextTurnOverride != NoRacer {
		next := e.state.NextTurnOverride
		e.state.NextTurnOverride = NoRacer
		if e.state.Racers[next].Active() {
			e.state.Current = next
			e.logf("turn order override: %d:%s acts next", next, e.state.Racers[next].Name)
			return
		}
	}

	n := len(e.state.Racers)
	next := (e.state.Current + 1) % n
	start := next
	for !e.state.Racers[next].Active() {
		next = (next + 1) % n
		if next == start {
			e.state.RaceOver = true
			return
		}
	}
	e.state.Current = next
}

// push schedules an event. Racer-attributed events get priority
// 1 + ((responsible - current) mod n) so reactions fire in turn order from
// the acting racer; system events get priority 0.
func (e *Engine) push(ev *Event, priorityOverride *int) {
	var priority int
	switch {
	case priorityOverride != nil:
		priority = *priorityOverride
	case ev.Responsible == NoRacer:
		priority = 0
	default:
		n := len(e.state.Racers)
		priority = 1 + (((ev.Responsible - e.state.Current) % n + n) % n)
	}

	e.state.serial++
	e.state.queue.push(&scheduledEvent{
		priority: priority,
		serial:   e.state.serial,
		event:    ev,
	})
}

// Push schedules an event with default prioritization. Ability code uses the
// typed helpers in movement.go; this is the escape hatch for tests.
func (e *Engine) Push(ev *Event) {
	e.push(ev, nil)
}

// handleEvent routes one dequeued event
func (e *Engine) handleEvent(ev *Event) {
	switch ev.Type {
	case EventAbilityTriggered:
		e.log.append(e.turnIndex, Record{
			Type:   RecordAbility,
			Racer:  ev.Responsible,
			Source: ev.Source,
			Target: ev.Target,
		})
		e.publish(ev)

	case EventPreTurnStart, EventTurnStart, EventTurnEnd, EventTripRecovery,
		EventPassing, EventRollWindow, EventRollResult, EventFinished,
		EventEliminated, EventMainMoveSkipped:
		e.publish(ev)

	case EventPerformMainRoll:
		e.handlePerformMainRoll(ev)
	case EventResolveMainMove:
		e.publish(ev)
		e.resolveMainMove(ev)
	case EventExecuteMainMove:
		e.handleExecuteMainMove(ev)

	case EventMoveCmd:
		e.handleMoveCmd(ev)
	case EventMultiMoveCmd:
		e.handleMultiMoveCmd(ev)
	case EventWarpCmd:
		e.handleWarpCmd(ev)
	case EventMultiWarpCmd:
		e.handleMultiWarpCmd(ev)
	case EventTripCmd:
		e.handleTripCmd(ev)

	default:
		e.failInvariant("handleEvent", fmt.Sprintf("unhandled event type %q", ev.Type))
	}
}

// publish delivers an event synchronously to subscribed abilities in turn
// order from the current racer, ascending racer index as tiebreak
func (e *Engine) publish(ev *Event) {
	subs := e.subscribers[ev.Type]
	if len(subs) == 0 {
		return
	}

	n := len(e.state.Racers)
	ordered := make([]subscriber, len(subs))
	copy(ordered, subs)
	cur := e.state.Current
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0; j-- {
			a := ((ordered[j].owner-cur)%n + n) % n
			b := ((ordered[j-1].owner-cur)%n + n) % n
			if a < b {
				ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
			} else {
				break
			}
		}
	}

	for _, sub := range ordered {
		owner := e.state.Racers[sub.owner]
		if !owner.Active() {
			continue
		}
		if !owner.HasAbility(sub.ability.Name()) {
			continue // stale subscription after an ability swap mid-publish
		}
		sub.ability.Execute(e, ev, owner)
	}
}

func (e *Engine) subscribe(eventType EventType, a Ability, owner int) {
	e.subscribers[eventType] = append(e.subscribers[eventType], subscriber{ability: a, owner: owner})
}

func (e *Engine) rebuildSubscribers() {
	e.subscribers = make(map[EventType][]subscriber)
	for _, r := range e.state.Racers {
		for _, a := range r.abilities {
			for _, t := range a.Triggers() {
				e.subscribe(t, a, r.Idx)
			}
		}
	}
}

// --- ability management ---

// InstantiateAbilities creates fresh ability instances for a racer archetype
func (e *Engine) InstantiateAbilities(name RacerName) []Ability {
	return e.factory(name)
}

// updateAbilities reconciles a racer's ability list against desired,
// preserving matching instances (and their local counters) and firing
// lifecycle hooks for additions and removals.
func (e *Engine) updateAbilities(racerIdx int, desired []Ability) {
	racer := e.state.Racers[racerIdx]
	current := make([]Ability, len(racer.abilities))
	copy(current, racer.abilities)

	var keep []Ability
	toAdd := make([]Ability, len(desired))
	copy(toAdd, desired)
	var toRemove []Ability

	for _, cur := range current {
		found := false
		for i, want := range toAdd {
			if cur.Name() == want.Name() {
				keep = append(keep, cur)
				toAdd = append(toAdd[:i], toAdd[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			toRemove = append(toRemove, cur)
		}
	}

	// Commit before lifecycle hooks so nested updates see the new state
	racer.abilities = append(keep, toAdd...)

	for _, a := range toRemove {
		if lc, ok := a.(LifecycleAbility); ok {
			lc.OnLoss(e, racerIdx)
		}
	}
	for _, a := range toAdd {
		if lc, ok := a.(LifecycleAbility); ok {
			lc.OnGain(e, racerIdx)
		}
	}

	if len(toRemove) > 0 || len(toAdd) > 0 {
		e.rebuildSubscribers()
	}
}

// ReplaceAbilities swaps a racer's ability set (copy effects)
func (e *Engine) ReplaceAbilities(racerIdx int, abilities []Ability) {
	e.updateAbilities(racerIdx, abilities)
}

// GrantAbility attaches an additional ability instance
func (e *Engine) GrantAbility(racerIdx int, a Ability) {
	racer := e.state.Racers[racerIdx]
	desired := make([]Ability, len(racer.abilities), len(racer.abilities)+1)
	copy(desired, racer.abilities)
	e.updateAbilities(racerIdx, append(desired, a))
}

// RevokeAbility detaches the named ability instance, if held
func (e *Engine) RevokeAbility(racerIdx int, name Source) {
	racer := e.state.Racers[racerIdx]
	var desired []Ability
	for _, a := range racer.abilities {
		if a.Name() != name {
			desired = append(desired, a)
		}
	}
	if len(desired) != len(racer.abilities) {
		e.updateAbilities(racerIdx, desired)
	}
}

// ClearAbilities strips every ability (finish, elimination)
func (e *Engine) ClearAbilities(racerIdx int) {
	e.updateAbilities(racerIdx, nil)
}

// AddModifier attaches a modifier unless an identical one is present
func (e *Engine) AddModifier(racerIdx int, m Modifier) {
	racer := e.state.Racers[racerIdx]
	for _, existing := range racer.modifiers {
		if existing.Name() == m.Name() && existing.Owner() == m.Owner() {
			return
		}
	}
	racer.modifiers = append(racer.modifiers, m)
}

// RemoveModifier detaches the matching modifier, if any
func (e *Engine) RemoveModifier(racerIdx int, name Source, owner int) {
	racer := e.state.Racers[racerIdx]
	for i, m := range racer.modifiers {
		if m.Name() == name && m.Owner() == owner {
			racer.modifiers = append(racer.modifiers[:i], racer.modifiers[i+1:]...)
			return
		}
	}
}

// --- getters ---

// State exposes the race state to abilities and policies (read/mutate via
// engine commands only)
func (e *Engine) State() *State {
	return e.state
}

// Racer returns a racer by index
func (e *Engine) Racer(idx int) *RacerState {
	return e.state.Racers[idx]
}

// RacersAt returns the active racers on a tile, excluding except (pass
// NoRacer to include everyone), ascending index
func (e *Engine) RacersAt(tile int, except int) []*RacerState {
	var out []*RacerState
	for _, r := range e.state.Racers {
		if r.Active() && r.Position == tile && r.Idx != except {
			out = append(out, r)
		}
	}
	return out
}

// ActiveRacers returns active racers excluding except, ascending index
func (e *Engine) ActiveRacers(except int) []*RacerState {
	var out []*RacerState
	for _, r := range e.state.Racers {
		if r.Active() && r.Idx != except {
			out = append(out, r)
		}
	}
	return out
}

// SkipMainMove consumes the racer's main move and records the skip.
// No-op if the move was already consumed.
func (e *Engine) SkipMainMove(skipped, responsible int, src Source) {
	racer := e.state.Racers[skipped]
	if racer.MainMoveDone {
		return
	}
	racer.MainMoveDone = true
	e.logf("%d:%s main move skipped (%s)", racer.Idx, racer.Name, src)
	e.log.append(e.turnIndex, Record{
		Type:   RecordSkip,
		Racer:  skipped,
		Source: src,
	})
	e.push(&Event{
		Type:        EventMainMoveSkipped,
		Phase:       PhaseRollDice,
		Source:      src,
		Responsible: responsible,
		Target:      skipped,
	}, nil)
}

// RollDie rolls the shared die outside the main pipeline, for abilities that
// stage side contests. The result is not a main roll: no window, no record.
func (e *Engine) RollDie() int {
	v, err := e.roller.Roll(6)
	if err != nil {
		e.failInvariant("RollDie", err.Error())
		return 0
	}
	return v
}

// DrawRacers deals k racer cards from the pile, reshuffling unused names
// back in when the pile runs dry
func (e *Engine) DrawRacers(k int) []RacerName {
	if k > len(e.state.drawPile) {
		e.state.shuffleDrawPile(e.rng)
	}
	if k > len(e.state.drawPile) {
		k = len(e.state.drawPile)
	}
	drawn := make([]RacerName, k)
	copy(drawn, e.state.drawPile[:k])
	e.state.drawPile = e.state.drawPile[k:]
	return drawn
}

// RemoveFromDrawPile takes a picked card out of circulation
func (e *Engine) RemoveFromDrawPile(name RacerName) {
	for i, n := range e.state.drawPile {
		if n == name {
			e.state.drawPile = append(e.state.drawPile[:i], e.state.drawPile[i+1:]...)
			return
		}
	}
}

// --- decisions ---

// DecideBool forwards a yes/no decision to the policy
func (e *Engine) DecideBool(d *Decision) bool {
	d.State = e.state
	return e.policy.DecideBool(d)
}

// DecideSelect forwards a selection decision to the policy. Returns -1 when
// the policy declines or the option list is empty.
func (e *Engine) DecideSelect(d *Decision) int {
	if len(d.Options) == 0 {
		return -1
	}
	d.State = e.state
	idx := e.policy.DecideSelect(d)
	if idx < -1 || idx >= len(d.Options) {
		e.failInvariant("DecideSelect", fmt.Sprintf("policy returned option %d of %d for %s", idx, len(d.Options), d.OnBehalfOf))
		return -1
	}
	return idx
}

// --- failure handling ---

// failInvariant aborts the race: an ability hook broke its contract.
// This is a programming defect, surfaced loudly rather than clamped.
func (e *Engine) failInvariant(hook, msg string) {
	if e.failure != nil {
		return
	}
	e.failure = simerr.Invariant(msg).
		WithMeta("race_id", e.log.raceID).
		WithMeta("turn", e.turnIndex).
		WithMeta("racer", e.state.Current).
		WithMeta("hook", hook)
	e.state.queue.clear()
	e.state.RaceOver = true
}

// --- snapshots & logging ---

func (e *Engine) snapshot() {
	positions := make([]int, len(e.state.Racers))
	for i, r := range e.state.Racers {
		positions[i] = r.Position
	}
	e.snapshots = append(e.snapshots, positions)
}

func (e *Engine) logf(format string, args ...any) {
	if !e.verbose {
		return
	}
	log.Printf("race %s t%d: "+format, append([]any{e.log.raceID, e.turnIndex}, args...)...)
}

// ensure heap interface stays satisfied
var _ heap.Interface = (*eventQueue)(nil)
