package engine

import "errors"

// Faults returned by the engine. None of them is a game state: each one means
// a caller broke the contract and the operation was aborted with the state
// left untouched.
var (
	ErrInvalidDirection = errors.New("engine: invalid direction")
	ErrProtocol         = errors.New("engine: protocol violation")
	ErrOutOfRange       = errors.New("engine: position out of range")
	ErrStaleRound       = errors.New("engine: completion for a finished round")
	ErrRoundTimeout     = errors.New("engine: animation round timed out")
)
