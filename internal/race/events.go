package race

// Phase orders event resolution inside a turn. Lower phases drain first.
type Phase int

const (
	PhaseSystem     Phase = 0
	PhasePreMain    Phase = 10
	PhaseRollDice   Phase = 15
	PhaseRollWindow Phase = 18
	PhaseMainAct    Phase = 20
	PhaseMoveExec   Phase = 21
	PhaseReaction   Phase = 25
)

// EventType identifies a game event
type EventType string

const (
	// Turn lifecycle
	EventPreTurnStart EventType = "pre_turn_start"
	EventTurnStart    EventType = "turn_start"
	EventTurnEnd      EventType = "turn_end"
	EventTripRecovery EventType = "trip_recovery"

	// Main roll pipeline
	EventPerformMainRoll EventType = "perform_main_roll"
	EventRollWindow      EventType = "roll_window"
	EventResolveMainMove EventType = "resolve_main_move"
	EventRollResult      EventType = "roll_result"
	EventExecuteMainMove EventType = "execute_main_move"
	EventMainMoveSkipped EventType = "main_move_skipped"

	// Movement commands
	EventMoveCmd      EventType = "move_cmd"
	EventMultiMoveCmd EventType = "multi_move_cmd"
	EventWarpCmd      EventType = "warp_cmd"
	EventMultiWarpCmd EventType = "multi_warp_cmd"
	EventTripCmd      EventType = "trip_cmd"

	// Observations
	EventPassing          EventType = "passing"
	EventPostMove         EventType = "post_move"
	EventPostWarp         EventType = "post_warp"
	EventPostTrip         EventType = "post_trip"
	EventAbilityTriggered EventType = "ability_triggered"
	EventFinished         EventType = "finished"
	EventEliminated       EventType = "eliminated"
)

// TriggerMode controls whether a command event announces the ability that
// caused it once the command actually changes state
type TriggerMode int

const (
	// TriggerNever suppresses the announcement
	TriggerNever TriggerMode = iota

	// TriggerAfterResolution emits an ability-triggered event only after the
	// command resolved to a real state change
	TriggerAfterResolution
)

// MoveData is one entry of an atomic multi-racer move
type MoveData struct {
	Racer    int
	Distance int
}

// WarpData is one entry of an atomic multi-racer warp
type WarpData struct {
	Racer      int
	TargetTile int
}

// Event is the single event shape flowing through the engine queue.
// Responsible is the racer whose ability caused the event (-1 for system);
// Target is the racer the event acts on (-1 if none). Which payload fields
// are meaningful depends on Type.
type Event struct {
	Type        EventType
	Phase       Phase
	Source      Source
	Responsible int
	Target      int
	Trigger     TriggerMode

	// movement payloads
	Distance   int
	TargetTile int
	StartTile  int
	EndTile    int
	IsMain     bool
	Tile       int
	Moves      []MoveData
	Warps      []WarpData

	// roll payloads
	RollSerial int
	DiceValue  int // 0 when the movement value was not produced by a die
	BaseValue  int
	FinalValue int

	// finish payload
	Rank int
}

// NoRacer is the sentinel for Responsible/Target when no racer applies
const NoRacer = -1

// abilityTriggeredFrom derives the announcement event for a resolved command
func abilityTriggeredFrom(ev *Event) *Event {
	return &Event{
		Type:        EventAbilityTriggered,
		Phase:       ev.Phase,
		Source:      ev.Source,
		Responsible: ev.Responsible,
		Target:      ev.Target,
	}
}
