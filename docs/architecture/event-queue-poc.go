// Package events - Proof of Concept for the phased event queue.
//
// Early sketch written before the engine existed, kept for the record.
// The shipped implementation lives in internal/race; it replaced the
// string-keyed context below with typed events, and the two-level sort
// with a container/heap ordered by (phase, priority, serial).
package events

import (
	"fmt"
	"sort"
)

// EventType represents the stages of one racer's turn
type EventType string

const (
	EventTurnStart EventType = "turn_start"
	EventRoll      EventType = "roll"
	EventMove      EventType = "move"
	EventPassing   EventType = "passing"
	EventTurnEnd   EventType = "turn_end"
)

// Phase buckets events so a reaction can never outrun the action it
// reacts to, no matter when it was queued
type Phase int

const (
	PhaseSystem Phase = iota
	PhaseRoll
	PhaseMove
	PhaseReaction
)

// Event is one pending state change. Priority orders events within a
// phase; serial breaks the remaining ties first-in first-out.
type Event struct {
	Type     EventType
	Phase    Phase
	Racer    int
	Value    int
	Priority int
	serial   int
}

// Queue is a naive sorted-slice priority queue. Good enough to prove
// the ordering rules; the real engine uses a heap.
type Queue struct {
	pending []*Event
	serial  int
}

func (q *Queue) Push(ev *Event) {
	q.serial++
	ev.serial = q.serial
	q.pending = append(q.pending, ev)
	sort.SliceStable(q.pending, func(i, j int) bool {
		a, b := q.pending[i], q.pending[j]
		if a.Phase != b.Phase {
			return a.Phase < b.Phase
		}
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return a.serial < b.serial
	})
}

func (q *Queue) Pop() *Event {
	if len(q.pending) == 0 {
		return nil
	}
	ev := q.pending[0]
	q.pending = q.pending[1:]
	return ev
}

// Reaction is an ability hook: it sees every event and may queue more
type Reaction interface {
	ID() string
	Handle(ev *Event, q *Queue)
}

// tripOnPass trips anyone who moves past its owner
type tripOnPass struct{ owner int }

func (t *tripOnPass) ID() string { return "trip_on_pass" }

func (t *tripOnPass) Handle(ev *Event, q *Queue) {
	if ev.Type != EventPassing || ev.Value != t.owner {
		return
	}
	q.Push(&Event{
		Type:     EventMove,
		Phase:    PhaseReaction,
		Racer:    ev.Racer,
		Value:    -2,
		Priority: 1,
	})
}

// Example demonstrates why phases matter: the reaction queued during
// the move still resolves after the move completes, even though a
// plain FIFO would interleave them.
func Example() {
	q := &Queue{}
	reactions := []Reaction{&tripOnPass{owner: 1}}

	q.Push(&Event{Type: EventRoll, Phase: PhaseRoll, Racer: 0, Value: 5})
	for ev := q.Pop(); ev != nil; ev = q.Pop() {
		fmt.Printf("resolve %s racer=%d value=%d\n", ev.Type, ev.Racer, ev.Value)
		if ev.Type == EventRoll {
			q.Push(&Event{Type: EventMove, Phase: PhaseMove, Racer: ev.Racer, Value: ev.Value})
		}
		if ev.Type == EventMove && ev.Value > 0 {
			// passing fires mid-move; reactions queue behind the move
			q.Push(&Event{Type: EventPassing, Phase: PhaseMove, Racer: ev.Racer, Value: 1})
		}
		for _, r := range reactions {
			r.Handle(ev, q)
		}
	}
}
