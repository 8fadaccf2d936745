package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventQueue_PhaseBeforePriority(t *testing.T) {
	var q eventQueue

	q.push(&scheduledEvent{priority: 0, serial: 1, event: &Event{Type: "late", Phase: PhaseReaction}})
	q.push(&scheduledEvent{priority: 9, serial: 2, event: &Event{Type: "early", Phase: PhaseSystem}})
	q.push(&scheduledEvent{priority: 1, serial: 3, event: &Event{Type: "mid", Phase: PhaseMainAct}})

	assert.Equal(t, EventType("early"), q.pop().event.Type)
	assert.Equal(t, EventType("mid"), q.pop().event.Type)
	assert.Equal(t, EventType("late"), q.pop().event.Type)
}

func TestEventQueue_PriorityWithinPhase(t *testing.T) {
	var q eventQueue

	q.push(&scheduledEvent{priority: 3, serial: 1, event: &Event{Type: "third", Phase: PhaseReaction}})
	q.push(&scheduledEvent{priority: 1, serial: 2, event: &Event{Type: "first", Phase: PhaseReaction}})
	q.push(&scheduledEvent{priority: 2, serial: 3, event: &Event{Type: "second", Phase: PhaseReaction}})

	assert.Equal(t, EventType("first"), q.pop().event.Type)
	assert.Equal(t, EventType("second"), q.pop().event.Type)
	assert.Equal(t, EventType("third"), q.pop().event.Type)
}

func TestEventQueue_SerialKeepsFIFO(t *testing.T) {
	var q eventQueue

	for i := 1; i <= 5; i++ {
		q.push(&scheduledEvent{priority: 1, serial: i, event: &Event{Phase: PhaseReaction, Target: i}})
	}
	for i := 1; i <= 5; i++ {
		assert.Equal(t, i, q.pop().event.Target)
	}
}

func TestEventQueue_Clear(t *testing.T) {
	var q eventQueue

	q.push(&scheduledEvent{serial: 1, event: &Event{Phase: PhaseSystem}})
	q.push(&scheduledEvent{serial: 2, event: &Event{Phase: PhaseSystem}})
	q.clear()

	assert.Equal(t, 0, q.Len())
}
