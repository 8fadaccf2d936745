package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwolters/athletesim/internal/board"
)

type stubPolicy struct{}

func (stubPolicy) DecideBool(d *Decision) bool { return false }
func (stubPolicy) DecideSelect(d *Decision) int {
	if len(d.Options) == 0 {
		return -1
	}
	return 0
}

func plainFactory(name RacerName) []Ability { return nil }

func newTestEngine(t *testing.T, racers int) *Engine {
	t.Helper()
	names := make([]RacerName, racers)
	for i := range names {
		names[i] = RacerPlain
	}
	e, err := New(&Config{
		RaceID:  "test-race",
		Board:   board.Standard(),
		Racers:  names,
		Policy:  stubPolicy{},
		Factory: plainFactory,
	})
	require.NoError(t, err)
	return e
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{name: "nil config", cfg: nil},
		{name: "missing board", cfg: &Config{Racers: []RacerName{RacerPlain, RacerPlain}, Policy: stubPolicy{}, Factory: plainFactory}},
		{name: "one racer", cfg: &Config{Board: board.Standard(), Racers: []RacerName{RacerPlain}, Policy: stubPolicy{}, Factory: plainFactory}},
		{name: "missing policy", cfg: &Config{Board: board.Standard(), Racers: []RacerName{RacerPlain, RacerPlain}, Factory: plainFactory}},
		{name: "missing factory", cfg: &Config{Board: board.Standard(), Racers: []RacerName{RacerPlain, RacerPlain}, Policy: stubPolicy{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestPush_PriorityFromCurrentRacer(t *testing.T) {
	e := newTestEngine(t, 4)
	e.state.Current = 2

	// system events always outrank racer reactions
	e.push(&Event{Type: "sys", Phase: PhaseReaction, Responsible: NoRacer}, nil)
	// responsible 3 is next after current 2, then 0, then 1
	e.push(&Event{Type: "r1", Phase: PhaseReaction, Responsible: 1}, nil)
	e.push(&Event{Type: "r3", Phase: PhaseReaction, Responsible: 3}, nil)
	e.push(&Event{Type: "r0", Phase: PhaseReaction, Responsible: 0}, nil)

	assert.Equal(t, EventType("sys"), e.state.queue.pop().event.Type)
	assert.Equal(t, EventType("r3"), e.state.queue.pop().event.Type)
	assert.Equal(t, EventType("r0"), e.state.queue.pop().event.Type)
	assert.Equal(t, EventType("r1"), e.state.queue.pop().event.Type)
}

func TestAdvanceTurn_RoundRobin(t *testing.T) {
	e := newTestEngine(t, 3)

	e.advanceTurn()
	assert.Equal(t, 1, e.state.Current)
	e.advanceTurn()
	assert.Equal(t, 2, e.state.Current)
	e.advanceTurn()
	assert.Equal(t, 0, e.state.Current)
}

func TestAdvanceTurn_SkipsInactive(t *testing.T) {
	e := newTestEngine(t, 3)
	e.state.Racers[1].Eliminated = true

	e.advanceTurn()
	assert.Equal(t, 2, e.state.Current)
}

func TestAdvanceTurn_Override(t *testing.T) {
	e := newTestEngine(t, 3)
	e.state.NextTurnOverride = 2

	e.advanceTurn()
	assert.Equal(t, 2, e.state.Current)
	assert.Equal(t, NoRacer, e.state.NextTurnOverride)

	// a spent override reverts to round robin
	e.advanceTurn()
	assert.Equal(t, 0, e.state.Current)
}

func TestAdvanceTurn_IgnoresInactiveOverride(t *testing.T) {
	e := newTestEngine(t, 3)
	e.state.Racers[1].Eliminated = true
	e.state.NextTurnOverride = 1

	e.advanceTurn()
	assert.Equal(t, 2, e.state.Current)
}

// lifecycleProbe counts its lifecycle hooks
type lifecycleProbe struct {
	tag    Source
	gains  int
	losses int
}

func (p *lifecycleProbe) Name() Source                                { return p.tag }
func (p *lifecycleProbe) Triggers() []EventType                       { return nil }
func (p *lifecycleProbe) Execute(e *Engine, ev *Event, o *RacerState) {}
func (p *lifecycleProbe) OnGain(e *Engine, ownerIdx int)              { p.gains++ }
func (p *lifecycleProbe) OnLoss(e *Engine, ownerIdx int)              { p.losses++ }

func TestUpdateAbilities_PreservesMatchingInstances(t *testing.T) {
	e := newTestEngine(t, 2)

	kept := &lifecycleProbe{tag: "Kept"}
	dropped := &lifecycleProbe{tag: "Dropped"}
	e.updateAbilities(0, []Ability{kept, dropped})
	assert.Equal(t, 1, kept.gains)
	assert.Equal(t, 1, dropped.gains)

	// a fresh instance with the same tag must not displace the original
	replacement := &lifecycleProbe{tag: "Kept"}
	added := &lifecycleProbe{tag: "Added"}
	e.updateAbilities(0, []Ability{replacement, added})

	racer := e.state.Racers[0]
	require.Len(t, racer.abilities, 2)
	assert.Same(t, kept, racer.abilities[0].(*lifecycleProbe))
	assert.Equal(t, 1, kept.gains, "kept instance must not re-fire OnGain")
	assert.Equal(t, 0, replacement.gains)
	assert.Equal(t, 1, dropped.losses)
	assert.Equal(t, 1, added.gains)
}

func TestClearAbilities(t *testing.T) {
	e := newTestEngine(t, 2)

	probe := &lifecycleProbe{tag: "Probe"}
	e.GrantAbility(0, probe)
	require.True(t, e.state.Racers[0].HasAbility("Probe"))

	e.ClearAbilities(0)
	assert.Empty(t, e.state.Racers[0].abilities)
	assert.Equal(t, 1, probe.losses)
}

func TestSkipMainMove_Idempotent(t *testing.T) {
	e := newTestEngine(t, 2)

	e.SkipMainMove(0, 0, "TestSource")
	e.SkipMainMove(0, 0, "TestSource")

	skips := 0
	for _, rec := range e.log.records {
		if rec.Type == RecordSkip {
			skips++
		}
	}
	assert.Equal(t, 1, skips)
}

func TestLoopGuard_CycleDetection(t *testing.T) {
	g := newLoopGuard()

	for i := 0; i < exactCycleLimit; i++ {
		assert.False(t, g.checkCycle(42))
	}
	assert.True(t, g.checkCycle(42))
	assert.False(t, g.checkCycle(43))
}

func TestLoopGuard_Budget(t *testing.T) {
	g := newLoopGuard()

	for i := 0; i < 10; i++ {
		assert.False(t, g.checkBudget(10))
	}
	assert.True(t, g.checkBudget(10))

	g.resetForTurn()
	assert.False(t, g.checkBudget(10))
}

func TestDrawRacers(t *testing.T) {
	e := newTestEngine(t, 2)

	drawn := e.DrawRacers(3)
	require.Len(t, drawn, 3)
	for _, name := range drawn {
		assert.NotEqual(t, RacerPlain, name)
	}

	// drawn cards stay out until the pile reshuffles
	again := e.DrawRacers(3)
	for _, name := range again {
		assert.NotContains(t, drawn, name)
	}
}
