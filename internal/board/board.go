// Package board describes the race track: an ordered run of squares from the
// start (0) to the finish line, with an immutable set of special tiles.
package board

// EffectKind identifies what a special tile does to a racer that lands on it
type EffectKind string

const (
	// EffectMoveDelta moves the landing racer forward or backward by Delta
	EffectMoveDelta EffectKind = "move_delta"

	// EffectTrip trips the landing racer, costing them their next main move
	EffectTrip EffectKind = "trip"

	// EffectVictoryPoint awards the landing racer Points victory points
	EffectVictoryPoint EffectKind = "victory_point"
)

// Effect is the payload of a special tile
type Effect struct {
	Kind   EffectKind
	Delta  int // used by EffectMoveDelta
	Points int // used by EffectVictoryPoint
}

// Board is the immutable track description. A racer finishes by reaching a
// position >= Length(); squares are indexed 0..Length().
type Board struct {
	name    string
	length  int
	special map[int]Effect
}

// Config holds the values needed to construct a Board
type Config struct {
	Name    string
	Length  int
	Special map[int]Effect
}

// New constructs a Board. The special-tile map is copied; the Board never
// mutates after construction.
func New(cfg *Config) *Board {
	if cfg == nil {
		panic("board config is required")
	}
	if cfg.Length < 1 {
		panic("board length must be positive")
	}

	special := make(map[int]Effect, len(cfg.Special))
	for sq, eff := range cfg.Special {
		special[sq] = eff
	}

	return &Board{
		name:    cfg.Name,
		length:  cfg.Length,
		special: special,
	}
}

// Name returns the board's display name
func (b *Board) Name() string { return b.name }

// Length returns the finish-line index
func (b *Board) Length() int { return b.length }

// IsSpecial reports whether the square carries a landing effect
func (b *Board) IsSpecial(square int) bool {
	_, ok := b.special[square]
	return ok
}

// EffectAt returns the landing effect for a square, if any
func (b *Board) EffectAt(square int) (Effect, bool) {
	eff, ok := b.special[square]
	return eff, ok
}

// Midpoint returns the halfway square, used by altitude-style roll modifiers
func (b *Board) Midpoint() int { return b.length / 2 }

// Standard returns the plain tournament track with no special tiles
func Standard() *Board {
	return New(&Config{Name: "Standard", Length: 30})
}

// WildWilds returns the hazard track: boost, trip and victory point tiles
func WildWilds() *Board {
	return New(&Config{
		Name:   "WildWilds",
		Length: 30,
		Special: map[int]Effect{
			5:  {Kind: EffectMoveDelta, Delta: 3},
			9:  {Kind: EffectTrip},
			13: {Kind: EffectVictoryPoint, Points: 1},
			17: {Kind: EffectMoveDelta, Delta: -2},
			22: {Kind: EffectTrip},
			26: {Kind: EffectVictoryPoint, Points: 2},
		},
	})
}
