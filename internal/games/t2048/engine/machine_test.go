package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMachine(rules Rules) *Machine {
	return NewMachine(rules, NewRandom(42))
}

// inputState builds a settled state waiting for a move.
func inputState(values [][]int) State {
	return State{
		Phase:   PhaseInput,
		Grid:    GridFromValues(values, NewRandom(5)),
		Barrier: Barrier{Round: 10},
	}
}

// completeRound reports every completion the current round expects.
func completeRound(t *testing.T, m *Machine, s State) State {
	t.Helper()
	round := s.Barrier.Round
	for range s.Barrier.Remaining() {
		var err error
		s, err = m.Transition(s, CompleteEvent{Round: round})
		require.NoError(t, err)
	}
	return s
}

// settle completes rounds until the state waits for a move or has ended.
func settle(t *testing.T, m *Machine, s State) State {
	t.Helper()
	for s.Phase.AwaitsAnimation() {
		s = completeRound(t, m, s)
	}
	return s
}

func countBlocks(g Grid) int {
	n := 0
	for _, c := range g.All() {
		if c.Block != nil {
			n++
		}
	}
	return n
}

func TestStart(t *testing.T) {
	m := newTestMachine(Rules{Size: 5})

	s := m.Start()

	assert.Equal(t, PhaseInit, s.Phase)
	assert.Equal(t, 5, s.Grid.Size())
	assert.Equal(t, 1, countBlocks(s.Grid))
	assert.Equal(t, 2, TotalValue(s.Grid))
	assert.True(t, hasNewBlock(s.Grid))
	assert.Equal(t, 1, s.Barrier.Expected)
	assert.Equal(t, uint64(1), s.Barrier.Round)
}

func TestInitToInput(t *testing.T) {
	m := newTestMachine(DefaultRules())
	s := m.Start()

	s, err := m.Transition(s, CompleteEvent{Round: s.Barrier.Round})

	require.NoError(t, err)
	assert.Equal(t, PhaseInput, s.Phase)
	assert.False(t, hasNewBlock(s.Grid), "transient flags cleared")
	assert.False(t, s.Barrier.Armed())
}

func TestMoveOutsideInputIgnored(t *testing.T) {
	m := newTestMachine(DefaultRules())
	s := m.Start()

	next, err := m.Transition(s, MoveEvent{Dir: Left})

	require.NoError(t, err)
	assert.Equal(t, s, next)
}

func TestCompletionOutsideWaitingPhase(t *testing.T) {
	m := newTestMachine(DefaultRules())
	s := inputState([][]int{{2, 0}, {0, 0}})

	next, err := m.Transition(s, CompleteEvent{Round: s.Barrier.Round})

	assert.ErrorIs(t, err, ErrProtocol)
	assert.Equal(t, s, next)
}

func TestAcknowledgeOutsideTerminalPhase(t *testing.T) {
	m := newTestMachine(DefaultRules())
	s := inputState([][]int{{2, 0}, {0, 0}})

	_, err := m.Transition(s, AcknowledgeEvent{})

	assert.ErrorIs(t, err, ErrProtocol)
}

func TestInvalidDirectionFault(t *testing.T) {
	m := newTestMachine(DefaultRules())
	s := inputState([][]int{{2, 0}, {0, 0}})

	next, err := m.Transition(s, MoveEvent{Dir: Direction{X: 1, Y: 1}})

	assert.ErrorIs(t, err, ErrInvalidDirection)
	assert.Equal(t, s, next)
}

func TestFullRound(t *testing.T) {
	m := newTestMachine(DefaultRules())
	s := inputState([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 4, 0, 0},
		{0, 0, 0, 0},
	})
	before := TotalValue(s.Grid)

	s, err := m.Transition(s, MoveEvent{Dir: Left})
	require.NoError(t, err)

	// Given: the merged block, the block it absorbed and the slid 4 are visible
	assert.Equal(t, PhaseActive, s.Phase)
	assert.Equal(t, 3, s.Barrier.Expected)
	assert.Equal(t, uint64(11), s.Barrier.Round)
	assert.Equal(t, before, TotalValue(s.Grid), "no value created by the move")
	assert.Equal(t, 4, s.Score)
	assert.Equal(t, 1, s.Moves)
	assert.True(t, s.LastMove.Changed)

	// When: two of three completions arrive nothing advances
	round := s.Barrier.Round
	for range 2 {
		s, err = m.Transition(s, CompleteEvent{Round: round})
		require.NoError(t, err)
		require.Equal(t, PhaseActive, s.Phase)
	}

	// Then: the last one runs the win test and the spawn
	s, err = m.Transition(s, CompleteEvent{Round: round})
	require.NoError(t, err)
	assert.Equal(t, PhaseSpawn, s.Phase)
	assert.Equal(t, uint64(12), s.Barrier.Round)
	assert.Equal(t, 1, s.Barrier.Expected)
	assert.Equal(t, before+2, TotalValue(s.Grid), "spawn adds exactly its value")
	assert.True(t, hasNewBlock(s.Grid))
	for _, c := range s.Grid.All() {
		assert.Nil(t, c.Merged, "merged blocks are cleared before the spawn")
	}

	s = completeRound(t, m, s)
	assert.Equal(t, PhaseInput, s.Phase)
	assert.False(t, hasNewBlock(s.Grid))
	assert.Equal(t, 3, countBlocks(s.Grid))
}

func TestWin(t *testing.T) {
	m := newTestMachine(DefaultRules())
	s := inputState([][]int{
		{1024, 1024, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	s, err := m.Transition(s, MoveEvent{Dir: Right})
	require.NoError(t, err)
	s = completeRound(t, m, s)

	assert.Equal(t, PhaseWon, s.Phase)
	assert.Equal(t, 2048, MaxValue(s.Grid))
	assert.Equal(t, 1, countBlocks(s.Grid), "no spawn after a win")

	// A move after the game ended changes nothing.
	next, err := m.Transition(s, MoveEvent{Dir: Left})
	require.NoError(t, err)
	assert.Equal(t, s, next)

	s, err = m.Transition(s, AcknowledgeEvent{})
	require.NoError(t, err)
	assert.Equal(t, PhaseInit, s.Phase)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, 1, countBlocks(s.Grid))
	assert.Equal(t, 4, s.Grid.Size())
}

func TestGameOver(t *testing.T) {
	m := newTestMachine(DefaultRules())
	s := inputState([][]int{
		{4, 8, 4, 8},
		{8, 4, 8, 4},
		{4, 8, 4, 8},
		{4, 8, 4, 0},
	})

	s, err := m.Transition(s, MoveEvent{Dir: Right})
	require.NoError(t, err)
	require.Equal(t, 15, s.Barrier.Expected)

	s = completeRound(t, m, s)
	require.Equal(t, PhaseSpawn, s.Phase)
	assert.Equal(t, 2, s.Grid.At(Position{X: 0, Y: 3}).Value(), "only free cell gets the spawn")

	s = completeRound(t, m, s)
	assert.Equal(t, PhaseGameOver, s.Phase)
	assert.False(t, s.Barrier.Armed())

	s, err = m.Transition(s, AcknowledgeEvent{})
	require.NoError(t, err)
	assert.Equal(t, PhaseInit, s.Phase)
}

func TestNoopMove(t *testing.T) {
	values := [][]int{
		{4, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}

	t.Run("spends a round by default", func(t *testing.T) {
		m := newTestMachine(DefaultRules())
		s, err := m.Transition(inputState(values), MoveEvent{Dir: Left})
		require.NoError(t, err)

		assert.Equal(t, PhaseActive, s.Phase)
		assert.False(t, s.LastMove.Changed)
		assert.Equal(t, 2, s.Barrier.Expected)
	})

	t.Run("rejected when configured", func(t *testing.T) {
		m := newTestMachine(Rules{RejectNoopMoves: true})
		start := inputState(values)
		s, err := m.Transition(start, MoveEvent{Dir: Left})
		require.NoError(t, err)

		assert.Equal(t, start, s)
	})
}

func TestNoopMoveOnFullBoardSkipsSpawn(t *testing.T) {
	m := newTestMachine(DefaultRules())
	s := inputState([][]int{
		{2, 4},
		{8, 16},
	})

	s, err := m.Transition(s, MoveEvent{Dir: Left})
	require.NoError(t, err)
	s = completeRound(t, m, s)

	assert.Equal(t, PhaseGameOver, s.Phase)
	assert.Equal(t, 30, TotalValue(s.Grid))
}

func TestRestartDiscardsInFlightCompletions(t *testing.T) {
	m := newTestMachine(DefaultRules())
	s := inputState([][]int{
		{2, 2, 4, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	s, err := m.Transition(s, MoveEvent{Dir: Left})
	require.NoError(t, err)
	abandoned := s.Barrier.Round

	s, err = m.Transition(s, RestartEvent{})
	require.NoError(t, err)
	require.Equal(t, PhaseInit, s.Phase)
	require.Greater(t, s.Barrier.Round, abandoned)

	// Late reports for the abandoned slide must not count toward INIT.
	for range 3 {
		next, err := m.Transition(s, CompleteEvent{Round: abandoned})
		assert.ErrorIs(t, err, ErrStaleRound)
		assert.Equal(t, s, next)
	}

	s, err = m.Transition(s, CompleteEvent{Round: s.Barrier.Round})
	require.NoError(t, err)
	assert.Equal(t, PhaseInput, s.Phase)
}

func TestExtraCompletionAfterFire(t *testing.T) {
	m := newTestMachine(DefaultRules())
	s := inputState([][]int{
		{2, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	s, err := m.Transition(s, MoveEvent{Dir: Right})
	require.NoError(t, err)
	slide := s.Barrier.Round

	s = completeRound(t, m, s)
	require.Equal(t, PhaseSpawn, s.Phase)

	// A duplicate report from the slide must not complete the spawn round.
	next, err := m.Transition(s, CompleteEvent{Round: slide})
	assert.ErrorIs(t, err, ErrStaleRound)
	assert.Equal(t, s, next)
}

func TestSpawnIsGuardedPerRound(t *testing.T) {
	m := newTestMachine(DefaultRules())
	s := inputState([][]int{
		{2, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	s, err := m.Transition(s, MoveEvent{Dir: Down})
	require.NoError(t, err)
	s = completeRound(t, m, s)
	require.Equal(t, PhaseSpawn, s.Phase)

	again, placed := m.spawn(s)
	assert.True(t, placed)
	assert.Equal(t, s, again, "second spawn in the same round is a no-op")

	entered := m.enter(s, PhaseSpawn)
	assert.Equal(t, 2, countBlocks(entered.Grid))
	assert.Equal(t, s.Barrier, entered.Barrier)
}

func TestSpawnOverUnsettledBlockStaysCompletable(t *testing.T) {
	m := newTestMachine(DefaultRules())
	s := State{
		Phase:   PhaseInput,
		Grid:    NewGrid(4).With(Position{X: 1, Y: 2}, Cell{Block: &Block{ID: newBlockID(NewRandom(9)), Value: 2, IsNew: true}}),
		Barrier: Barrier{Round: 7},
	}

	s = m.enter(s, PhaseSpawn)
	require.Equal(t, PhaseSpawn, s.Phase)
	require.True(t, s.Barrier.Armed(), "spawn round must wait for the pop")
	assert.Equal(t, 1, countBlocks(s.Grid))

	s, err := m.Transition(s, CompleteEvent{Round: s.Barrier.Round})
	require.NoError(t, err)
	assert.Equal(t, PhaseInput, s.Phase)
}

func TestSpawnFourChance(t *testing.T) {
	m := newTestMachine(Rules{SpawnFourChance: 100})
	s := inputState([][]int{
		{2, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	s, err := m.Transition(s, MoveEvent{Dir: Down})
	require.NoError(t, err)
	s = completeRound(t, m, s)

	assert.Equal(t, 6, TotalValue(s.Grid))
}

func TestDeterministicSpawn(t *testing.T) {
	m1 := NewMachine(DefaultRules(), NewRandom(12345))
	m2 := NewMachine(DefaultRules(), NewRandom(12345))

	s1, s2 := m1.Start(), m2.Start()
	for _, dir := range []Direction{Left, Up, Right, Down, Left} {
		s1 = settle(t, m1, s1)
		s2 = settle(t, m2, s2)
		if s1.Phase != PhaseInput {
			break
		}
		var err error
		s1, err = m1.Transition(s1, MoveEvent{Dir: dir})
		require.NoError(t, err)
		s2, err = m2.Transition(s2, MoveEvent{Dir: dir})
		require.NoError(t, err)
	}

	assert.Equal(t, s1.Grid.Values(), s2.Grid.Values())
	assert.Equal(t, Project(s1).Entities, Project(s2).Entities, "same seed gives the same block identities")
}
