package engine

import "fmt"

// Barrier counts animation completions for one round and fires exactly once
// when the expected number has arrived. It is a value; every method returns
// the updated barrier instead of changing the receiver.
//
// Each Arm starts a new round. Completions carry the round they belong to, so
// reports from an abandoned or already-fired round are told apart from those
// of the current one and can never advance it.
type Barrier struct {
	Round    uint64
	Expected int
	Count    int
}

// Armed reports whether the barrier is waiting for completions.
func (b Barrier) Armed() bool {
	return b.Expected > 0
}

// Remaining returns how many completions the current round still needs.
func (b Barrier) Remaining() int {
	if !b.Armed() {
		return 0
	}
	return b.Expected - b.Count
}

// Arm opens a new round expecting n completions.
func (b Barrier) Arm(n int) Barrier {
	return Barrier{Round: b.Round + 1, Expected: n}
}

// Disarm closes the current round without firing.
func (b Barrier) Disarm() Barrier {
	return Barrier{Round: b.Round}
}

// Signal records one completion for round. It returns the updated barrier and
// whether this completion fired the round; a fired barrier is disarmed.
func (b Barrier) Signal(round uint64) (Barrier, bool, error) {
	if round != b.Round {
		return b, false, fmt.Errorf("%w: got round %d, current %d", ErrStaleRound, round, b.Round)
	}
	if !b.Armed() {
		return b, false, fmt.Errorf("%w: round %d already complete", ErrStaleRound, round)
	}

	b.Count++
	if b.Count < b.Expected {
		return b, false, nil
	}
	return b.Disarm(), true, nil
}

// ExpectedCount returns how many completions a phase waits for: one per
// visible entity while blocks slide, a single pop otherwise.
func ExpectedCount(phase Phase, g Grid) int {
	if phase != PhaseActive {
		return 1
	}
	n := 0
	for _, c := range g.All() {
		if c.Block != nil {
			n++
		}
		if c.Merged != nil {
			n++
		}
	}
	return n
}
