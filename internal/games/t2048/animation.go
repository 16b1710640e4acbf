package t2048

import (
	"github.com/vovakirdan/merge-arcade/internal/games/t2048/engine"
)

// TileAnimation is one entity's tween. Every visible entity of a round gets
// its own, with its own duration, and reports completion on its own.
type TileAnimation struct {
	ID       engine.BlockID
	Value    int
	From     engine.Position
	To       engine.Position
	Elapsed  int
	Duration int
	IsNew    bool // Pops in place instead of sliding
	Absorbed bool // Slides under the block it merged into, then disappears
}

// Progress returns how far the tween is, from 0 to 1.
func (a TileAnimation) Progress() float64 {
	if a.Duration <= 0 {
		return 1
	}
	return min(float64(a.Elapsed)/float64(a.Duration), 1)
}

// Done reports whether the tween has run its full duration.
func (a TileAnimation) Done() bool {
	return a.Elapsed >= a.Duration
}

// Eased returns the progress shaped by the easing curve.
func (a TileAnimation) Eased() float64 {
	return easeOutQuad(a.Progress())
}

// Timing holds the base durations of the two animation kinds, in ticks.
type Timing struct {
	SlideTicks int
	PopTicks   int
	Jitter     int
}

// Animator runs the tweens of the round currently awaited by the engine.
type Animator struct {
	timing    Timing
	jitter    func(n int) int // Returns a value in [0, n)
	round     uint64
	tweens    []TileAnimation
	positions map[engine.BlockID]engine.Position // Where each block was last shown at rest
}

// NewAnimator creates an animator. jitter may be nil for fixed durations.
func NewAnimator(timing Timing, jitter func(n int) int) *Animator {
	if jitter == nil {
		jitter = func(int) int { return 0 }
	}
	return &Animator{
		timing:    timing,
		jitter:    jitter,
		positions: make(map[engine.BlockID]engine.Position),
	}
}

// Round returns the engine round the running tweens belong to.
func (a *Animator) Round() uint64 {
	return a.round
}

// Busy reports whether any tween has yet to finish.
func (a *Animator) Busy() bool {
	for _, t := range a.tweens {
		if !t.Done() {
			return true
		}
	}
	return false
}

// Tweens returns the tweens of the current round.
func (a *Animator) Tweens() []TileAnimation {
	return a.tweens
}

// Sync starts the tweens for v when it opens a round the animator has not
// seen yet. It reports whether new tweens were started.
//
// While blocks slide every entity is animated from where it was last shown.
// In the spawn and opening rounds only the new block is animated.
func (a *Animator) Sync(v engine.View) bool {
	if v.Pending == 0 {
		a.tweens = nil
		a.round = v.Round
		a.positions = v.Positions()
		return false
	}
	if v.Round == a.round {
		return false
	}

	a.round = v.Round
	a.tweens = a.tweens[:0]
	for _, e := range v.Entities {
		if v.Phase != engine.PhaseActive && !e.IsNew {
			continue
		}

		from, ok := a.positions[e.ID]
		if !ok {
			from = e.Position
		}
		tw := TileAnimation{
			ID:       e.ID,
			Value:    e.Value,
			From:     from,
			To:       e.Position,
			IsNew:    e.IsNew,
			Absorbed: e.IsMerged,
		}
		if e.IsNew {
			tw.From = e.Position
			tw.Duration = a.timing.PopTicks + a.jitter(a.timing.Jitter+1)
		} else {
			tw.Duration = a.timing.SlideTicks + a.jitter(a.timing.Jitter+1)
		}
		a.tweens = append(a.tweens, tw)
	}
	a.positions = v.Positions()
	return true
}

// Advance moves every running tween forward one tick and returns how many
// finished on this tick.
func (a *Animator) Advance() int {
	finished := 0
	for i := range a.tweens {
		t := &a.tweens[i]
		if t.Done() {
			continue
		}
		t.Elapsed++
		if t.Done() {
			finished++
		}
	}
	return finished
}

// Drop discards the running tweens without reporting them.
func (a *Animator) Drop() {
	a.tweens = nil
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}
