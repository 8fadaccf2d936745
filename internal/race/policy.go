package race

//go:generate mockgen -destination=mock/mock_policy.go -package=mockrace -source=policy.go

// ChoiceKind enumerates the decisions an ability or the base turn can present
type ChoiceKind string

const (
	// ChoiceUseAbility asks whether to fire an optional ability
	ChoiceUseAbility ChoiceKind = "use_ability"

	// ChoiceRerollOrKeep asks whether to reroll the current main roll
	ChoiceRerollOrKeep ChoiceKind = "reroll_or_keep"

	// ChoiceTarget asks which racer (or tile) to act on
	ChoiceTarget ChoiceKind = "target"

	// ChoiceValue asks for a die value (predictions)
	ChoiceValue ChoiceKind = "value"

	// ChoiceDraw asks which drawn racer card to keep
	ChoiceDraw ChoiceKind = "draw"
)

// Option is one selectable alternative. Which fields are set depends on the
// choice kind: racer targets carry Racer/Name/Position, tile targets and die
// values carry Value, draws carry Name.
type Option struct {
	Racer    int
	Name     RacerName
	Position int
	Value    int
}

// Decision is the full context handed to a Policy. OnBehalfOf carries the
// resolved ability tag: when a copy ability evaluates a mimicked power, the
// policy sees the underlying variant, never a generic default.
type Decision struct {
	Kind       ChoiceKind
	OnBehalfOf Source
	Actor      int
	Options    []Option
	State      *State
	Roll       *RollState // set for reroll decisions
}

// Policy is the decision function racers use whenever a choice arises.
// Implementations must be deterministic: identical decisions yield identical
// answers, with ties broken by fixed rules rather than randomness.
type Policy interface {
	// DecideBool answers a yes/no decision
	DecideBool(d *Decision) bool

	// DecideSelect returns the index of the chosen option, or -1 to decline
	DecideSelect(d *Decision) int
}
