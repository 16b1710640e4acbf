package engine

import "fmt"

// Rules are the per-game parameters fixed at start.
type Rules struct {
	Size            int
	WinTarget       int
	SpawnFourChance int  // Percent chance a spawn is a 4 instead of a 2
	RejectNoopMoves bool // Ignore moves that change nothing instead of spending a round
}

// DefaultRules returns the classic 4x4 rules.
func DefaultRules() Rules {
	return Rules{Size: 4, WinTarget: DefaultWinTarget}
}

// State is the complete machine state. It is a value: transitions return a
// new State and never alter the one they were given.
type State struct {
	Phase    Phase
	Grid     Grid
	Barrier  Barrier
	Score    int
	Moves    int
	LastMove MoveResult
}

// Event is an input to the machine.
type Event interface {
	event()
}

// MoveEvent is a directional intent.
type MoveEvent struct {
	Dir Direction
}

// CompleteEvent reports that one entity animation of Round finished.
type CompleteEvent struct {
	Round uint64
}

// AcknowledgeEvent dismisses a won or lost game.
type AcknowledgeEvent struct{}

// RestartEvent abandons the current game and starts a new one.
type RestartEvent struct{}

func (MoveEvent) event()        {}
func (CompleteEvent) event()    {}
func (AcknowledgeEvent) event() {}
func (RestartEvent) event()     {}

// Machine holds the transition rules and the random source used for spawns.
// Given the same seed and the same event sequence it produces the same states.
type Machine struct {
	rules Rules
	rng   Random
}

// NewMachine creates a machine. Zero-valued rule fields fall back to the
// classic defaults.
func NewMachine(rules Rules, rng Random) *Machine {
	def := DefaultRules()
	if rules.Size <= 0 {
		rules.Size = def.Size
	}
	if rules.WinTarget <= 0 {
		rules.WinTarget = def.WinTarget
	}
	return &Machine{rules: rules, rng: rng}
}

// Rules returns the rules the machine was built with.
func (m *Machine) Rules() Rules {
	return m.rules
}

// Start returns the initial state of a fresh game.
func (m *Machine) Start() State {
	return m.restart(State{})
}

// Transition applies ev to s. Phases that resolve immediately (the win and
// loss tests, the spawn) are run within the same call, so the returned state
// is always in a phase that waits for outside input.
//
// A move outside INPUT is ignored. A completion outside a waiting phase, or
// an acknowledgment outside a terminal phase, is ErrProtocol. On error the
// original state is returned.
func (m *Machine) Transition(s State, ev Event) (State, error) {
	switch e := ev.(type) {
	case RestartEvent:
		return m.restart(s), nil

	case MoveEvent:
		return m.move(s, e.Dir)

	case CompleteEvent:
		return m.complete(s, e.Round)

	case AcknowledgeEvent:
		if !s.Phase.Terminal() {
			return s, fmt.Errorf("%w: acknowledge in phase %s", ErrProtocol, s.Phase)
		}
		return m.restart(s), nil
	}
	return s, fmt.Errorf("%w: unknown event %T", ErrProtocol, ev)
}

func (m *Machine) move(s State, dir Direction) (State, error) {
	if err := dir.Validate(); err != nil {
		return s, err
	}
	if s.Phase != PhaseInput {
		return s, nil
	}

	grid, res, err := Resolve(s.Grid, dir)
	if err != nil {
		return s, err
	}
	if !res.Changed && m.rules.RejectNoopMoves {
		return s, nil
	}

	s.Grid = grid
	s.Score += res.Score
	s.Moves++
	s.LastMove = res
	return m.enter(s, PhaseActive), nil
}

func (m *Machine) complete(s State, round uint64) (State, error) {
	if !s.Phase.AwaitsAnimation() {
		return s, fmt.Errorf("%w: completion in phase %s", ErrProtocol, s.Phase)
	}

	b, fired, err := s.Barrier.Signal(round)
	if err != nil {
		return s, err
	}
	s.Barrier = b
	if !fired {
		return s, nil
	}

	s.Grid = ClearTransient(s.Grid)
	switch s.Phase {
	case PhaseInit:
		return m.enter(s, PhaseInput), nil
	case PhaseActive:
		return m.enter(s, PhaseTestWon), nil
	default:
		return m.enter(s, PhaseTestGameOver), nil
	}
}

// enter moves s into phase p and runs the phase's entry action.
func (m *Machine) enter(s State, p Phase) State {
	s.Phase = p

	switch p {
	case PhaseInit:
		s.Barrier = s.Barrier.Arm(1)

	case PhaseActive:
		n := ExpectedCount(PhaseActive, s.Grid)
		if n == 0 {
			s.Grid = ClearTransient(s.Grid)
			return m.enter(s, PhaseTestWon)
		}
		s.Barrier = s.Barrier.Arm(n)

	case PhaseTestWon:
		if HasWon(s.Grid, m.rules.WinTarget) {
			return m.enter(s, PhaseWon)
		}
		return m.enter(s, PhaseSpawn)

	case PhaseSpawn:
		next, placed := m.spawn(s)
		if !placed {
			return m.enter(next, PhaseTestGameOver)
		}
		return next

	case PhaseTestGameOver:
		if HasLost(s.Grid) {
			return m.enter(s, PhaseGameOver)
		}
		return m.enter(s, PhaseInput)

	default:
		s.Barrier = s.Barrier.Disarm()
	}
	return s
}

// spawn places this round's new block and arms the barrier for its pop.
// If a new block is already on the board the spawn has happened for this
// round and the state is returned as is, re-armed for its pop if the barrier
// was closed. placed is false only when there was nowhere to put a block.
func (m *Machine) spawn(s State) (next State, placed bool) {
	if hasNewBlock(s.Grid) {
		if !s.Barrier.Armed() {
			s.Barrier = s.Barrier.Arm(1)
		}
		return s, true
	}

	empty := EmptyPositions(s.Grid)
	if len(empty) == 0 {
		return s, false
	}

	pos := empty[m.rng.Between(0, len(empty)-1)]
	value := 2
	if m.rules.SpawnFourChance > 0 && m.rng.Between(1, 100) <= m.rules.SpawnFourChance {
		value = 4
	}

	s.Grid = s.Grid.With(pos, Cell{Block: &Block{ID: newBlockID(m.rng), Value: value, IsNew: true}})
	s.Barrier = s.Barrier.Arm(1)
	return s, true
}

// restart builds a fresh board of the same size holding one new block.
// The barrier moves to a new round so completions still in flight for the
// abandoned game are recognized as stale.
func (m *Machine) restart(s State) State {
	grid := NewGrid(m.rules.Size)
	pos := Position{
		X: m.rng.Between(0, m.rules.Size-1),
		Y: m.rng.Between(0, m.rules.Size-1),
	}
	grid = grid.With(pos, Cell{Block: &Block{ID: newBlockID(m.rng), Value: 2, IsNew: true}})

	return m.enter(State{
		Grid:    grid,
		Barrier: s.Barrier,
	}, PhaseInit)
}
