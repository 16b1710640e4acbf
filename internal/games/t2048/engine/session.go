package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Observer receives notifications about a session. Calls are made while the
// session lock is held and must not call back into the session.
type Observer interface {
	PhaseChanged(from, to Phase)
	Moved(res MoveResult)
	RoundForced(phase Phase, missing int)
	Fault(err error)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) PhaseChanged(Phase, Phase) {}
func (NopObserver) Moved(MoveResult)          {}
func (NopObserver) RoundForced(Phase, int)    {}
func (NopObserver) Fault(error)               {}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithObserver sets the session observer.
func WithObserver(o Observer) Option {
	return func(s *Session) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithClock replaces time.Now for round age tracking.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// Session owns the current state of one game. All entry points are safe for
// concurrent use; animation completions may be reported from any goroutine
// in any order.
type Session struct {
	mu       sync.Mutex
	machine  *Machine
	state    State
	view     View
	changed  chan struct{} // Closed and replaced on every commit
	roundAt  time.Time
	now      func() time.Time
	logger   *log.Logger
	observer Observer
}

// NewSession starts a new game driven by m.
func NewSession(m *Machine, opts ...Option) *Session {
	s := &Session{
		machine:  m,
		changed:  make(chan struct{}),
		now:      time.Now,
		logger:   log.New(io.Discard),
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(State{}, m.Start())
	return s
}

// Move delivers a directional intent. Moves outside INPUT are ignored.
func (s *Session) Move(dir Direction) error {
	return s.apply(MoveEvent{Dir: dir})
}

// Complete reports that one entity animation of the given round finished.
// Reports for an abandoned or already completed round return ErrStaleRound
// and change nothing.
func (s *Session) Complete(round uint64) error {
	return s.apply(CompleteEvent{Round: round})
}

// Acknowledge dismisses a won or lost game and starts the next one.
func (s *Session) Acknowledge() error {
	return s.apply(AcknowledgeEvent{})
}

// Restart abandons the current game. Completions still in flight for it
// become stale.
func (s *Session) Restart() {
	//nolint:errcheck // Restart is total
	s.apply(RestartEvent{})
}

// View returns the projection of the current state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// State returns the current state snapshot.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Rules returns the rules of the game.
func (s *Session) Rules() Rules {
	return s.machine.Rules()
}

// RoundAge returns how long the current completion round has been open.
// It is zero when nothing is awaited.
func (s *Session) RoundAge() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Barrier.Armed() {
		return 0
	}
	return s.now().Sub(s.roundAt)
}

// ForceComplete fires the current round as if every missing completion had
// arrived, for use when an animation never reports back. It returns how many
// completions were missing.
func (s *Session) ForceComplete() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	b := prev.Barrier
	if !b.Armed() {
		return 0
	}

	missing := b.Remaining()
	next := prev
	for range missing {
		var err error
		next, err = s.machine.Transition(next, CompleteEvent{Round: b.Round})
		if err != nil {
			s.logger.Error("force complete failed", "round", b.Round, "error", err)
			s.observer.Fault(err)
			break
		}
	}

	s.logger.Warn("animation round forced", "phase", prev.Phase, "round", b.Round, "missing", missing)
	s.observer.RoundForced(prev.Phase, missing)
	s.commit(prev, next)
	return missing
}

// AwaitRound blocks until the completion round open at call time has fired
// or ctx is done. It returns immediately when nothing is awaited.
func (s *Session) AwaitRound(ctx context.Context) error {
	s.mu.Lock()
	round := s.state.Barrier.Round
	for s.state.Barrier.Armed() && s.state.Barrier.Round == round {
		ch := s.changed
		s.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return fmt.Errorf("%w: round %d: %w", ErrRoundTimeout, round, ctx.Err())
		}
		s.mu.Lock()
	}
	s.mu.Unlock()
	return nil
}

func (s *Session) apply(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	next, err := s.machine.Transition(prev, ev)
	if err != nil {
		if errors.Is(err, ErrStaleRound) {
			s.logger.Warn("stale completion dropped", "phase", prev.Phase, "error", err)
		} else {
			s.logger.Error("event rejected", "event", fmt.Sprintf("%T", ev), "phase", prev.Phase, "error", err)
		}
		s.observer.Fault(err)
		return err
	}

	s.commit(prev, next)
	return nil
}

// commit installs next as the current state. Callers hold s.mu.
func (s *Session) commit(prev, next State) {
	if next.Barrier.Round != prev.Barrier.Round {
		s.roundAt = s.now()
	}
	s.state = next
	s.view = Project(next)

	if next.Moves > prev.Moves {
		s.observer.Moved(next.LastMove)
	}
	if next.Phase != prev.Phase {
		s.logger.Debug("phase", "from", prev.Phase, "to", next.Phase, "round", next.Barrier.Round)
		s.observer.PhaseChanged(prev.Phase, next.Phase)
	}

	close(s.changed)
	s.changed = make(chan struct{})
}
