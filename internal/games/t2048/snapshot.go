package t2048

import (
	"github.com/vovakirdan/merge-arcade/internal/games/t2048/engine"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Variant   string
	Phase     engine.Phase
	Round     uint64
	Pending   int // Completions the engine still waits for
	Animating int // Tweens still running
	Forced    int // Rounds the watchdog had to complete
	Score     int
	Moves     int
	MaxTile   int
	Board     [][]int
	Paused    bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	st := g.session.State()
	v := engine.Project(st)

	running := 0
	for _, t := range g.anims.Tweens() {
		if !t.Done() {
			running++
		}
	}

	return Snapshot{
		Tick:      g.tick,
		Variant:   g.variant.ID,
		Phase:     v.Phase,
		Round:     v.Round,
		Pending:   v.Pending,
		Animating: running,
		Forced:    g.forced,
		Score:     v.Score,
		Moves:     v.Moves,
		MaxTile:   v.MaxValue,
		Board:     st.Grid.Values(),
		Paused:    g.paused || g.tooSmall,
	}
}
