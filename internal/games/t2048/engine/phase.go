package engine

// Phase is a state of the turn machine.
type Phase string

const (
	PhaseInit         Phase = "init"
	PhaseInput        Phase = "input"
	PhaseActive       Phase = "active"
	PhaseTestWon      Phase = "test_won"
	PhaseWon          Phase = "won"
	PhaseSpawn        Phase = "spawn"
	PhaseTestGameOver Phase = "test_game_over"
	PhaseGameOver     Phase = "game_over"
)

// AwaitsAnimation reports whether the phase waits for completion signals.
func (p Phase) AwaitsAnimation() bool {
	return p == PhaseInit || p == PhaseActive || p == PhaseSpawn
}

// Terminal reports whether the game has ended and waits for acknowledgment.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseGameOver
}
