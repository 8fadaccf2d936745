// Package ai provides the decision policies racers consult when an ability
// presents a choice. Policies are pure and deterministic; two identical
// decisions always get the same answer.
package ai

import "github.com/mwolters/athletesim/internal/race"

// Baseline answers every decision the cheapest way: yes to booleans, first
// option otherwise. Useful as a control policy and in tests where the
// interesting behavior lives elsewhere.
type Baseline struct{}

// NewBaseline creates the fixed-answer policy
func NewBaseline() *Baseline {
	return &Baseline{}
}

func (p *Baseline) DecideBool(d *race.Decision) bool {
	return true
}

func (p *Baseline) DecideSelect(d *race.Decision) int {
	if len(d.Options) == 0 {
		return -1
	}
	return 0
}
