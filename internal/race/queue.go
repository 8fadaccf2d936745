package race

import "container/heap"

// scheduledEvent wraps an Event with its queue ordering key. Order is
// (phase, priority, serial): phases gate the turn pipeline, priority spreads
// reactions in turn order from the acting racer, serial keeps scheduling FIFO.
type scheduledEvent struct {
	priority int
	serial   int
	event    *Event
}

type eventQueue []*scheduledEvent

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].event.Phase != q[j].event.Phase {
		return q[i].event.Phase < q[j].event.Phase
	}
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	return q[i].serial < q[j].serial
}

func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *eventQueue) Push(x any) {
	*q = append(*q, x.(*scheduledEvent))
}

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

func (q *eventQueue) push(se *scheduledEvent) {
	heap.Push(q, se)
}

func (q *eventQueue) pop() *scheduledEvent {
	return heap.Pop(q).(*scheduledEvent)
}

func (q *eventQueue) clear() {
	*q = (*q)[:0]
}
