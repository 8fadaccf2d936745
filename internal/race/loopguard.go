package race

import "hash/fnv"

// loopGuard keeps ability feedback loops from running forever. Two layers:
// exact state cycles drop the recursive event and continue; exhausting the
// per-turn event budget aborts the race with ErrCodeLoopDetected.
type loopGuard struct {
	seen      map[uint64]int
	processed int
}

const exactCycleLimit = 4

func newLoopGuard() *loopGuard {
	return &loopGuard{seen: make(map[uint64]int)}
}

func (g *loopGuard) resetForTurn() {
	g.seen = make(map[uint64]int)
	g.processed = 0
}

// checkCycle records the pre-dispatch state hash and reports whether the
// exact same state has now recurred often enough to call it a cycle
func (g *loopGuard) checkCycle(hash uint64) bool {
	g.seen[hash]++
	return g.seen[hash] > exactCycleLimit
}

// checkBudget counts a processed event against the per-turn budget
func (g *loopGuard) checkBudget(maxEvents int) bool {
	g.processed++
	return g.processed > maxEvents
}

// stateHash folds the observable board state: racer positions, liveness and
// ability sets, plus queue length so draining still counts as progress
func (e *Engine) stateHash() uint64 {
	h := fnv.New64a()
	write := func(v int) {
		var buf [4]byte
		buf[0] = byte(v)
		buf[1] = byte(v >> 8)
		buf[2] = byte(v >> 16)
		buf[3] = byte(v >> 24)
		_, _ = h.Write(buf[:])
	}

	write(e.state.Current)
	write(len(e.state.queue))
	for _, r := range e.state.Racers {
		write(r.Position)
		flags := 0
		if r.Eliminated {
			flags |= 1
		}
		if r.Tripped {
			flags |= 2
		}
		if r.MainMoveDone {
			flags |= 4
		}
		write(flags)
		write(r.FinishRank)
		for _, a := range r.abilities {
			_, _ = h.Write([]byte(a.Name()))
		}
	}
	return h.Sum64()
}
