// Package t2048 runs the 2048 engine inside the arcade. It maps platform
// actions to engine intents, animates every entity on its own timer and
// reports each finished animation back to the engine.
package t2048

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/merge-arcade/internal/config"
	"github.com/vovakirdan/merge-arcade/internal/core"
	"github.com/vovakirdan/merge-arcade/internal/games/t2048/engine"
)

// Game implements registry.Game around an engine session.
type Game struct {
	variant Variant
	cfg     config.T2048Config

	session *engine.Session
	anims   *Animator
	logger  *log.Logger

	tick       uint64
	roundTicks int // Ticks the current completion round has been open
	forced     int // Rounds completed by the watchdog since Reset

	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
}

// Package-level settings applied on the next Reset
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	sessionLogger    = log.New(io.Discard)
	observerFor      func(variant string) engine.Observer
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset name. Unknown names fall
// back to the config as loaded.
func SetDifficultyPreset(name string) {
	p, err := config.ParseDifficultyPreset(name)
	if err != nil {
		sessionLogger.Warn("ignoring difficulty", "error", err)
		p = config.DifficultyFixed
	}
	difficultyPreset = p
}

// SetLogger sets the logger handed to every new session.
func SetLogger(l *log.Logger) {
	if l != nil {
		sessionLogger = l
	}
}

// SetObserverFactory installs a function creating the engine observer of
// each new session, keyed by variant ID. nil removes it.
func SetObserverFactory(f func(variant string) engine.Observer) {
	observerFor = f
}

// New creates a game of the given variant.
func New(v Variant) *Game {
	return &Game{variant: v}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Reset starts a fresh session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = loadConfig()
	if g.variant.Size > 0 {
		g.cfg.Board.Size = g.variant.Size
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g.logger = sessionLogger.With("game", g.variant.ID)
	opts := []engine.Option{engine.WithLogger(g.logger)}
	if observerFor != nil {
		opts = append(opts, engine.WithObserver(observerFor(g.variant.ID)))
	}

	machine := engine.NewMachine(g.rules(), engine.NewRandom(seed))
	g.session = engine.NewSession(machine, opts...)

	// Durations come from their own stream so animation timing never shifts
	// which cells the engine spawns into.
	jitter := rand.New(rand.NewSource(seed ^ 0x2048))
	a := g.cfg.Animation
	g.anims = NewAnimator(Timing{SlideTicks: a.SlideTicks, PopTicks: a.PopTicks, Jitter: a.Jitter}, jitter.Intn)
	g.anims.Sync(g.session.View())

	g.tick = 0
	g.roundTicks = 0
	g.forced = 0
	g.paused = false
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	g.logger.Debug("game reset", "size", g.cfg.Board.Size, "target", g.cfg.Board.WinTarget, "seed", seed)
}

func loadConfig() config.T2048Config {
	cfg, err := config.LoadT2048(configPath)
	if err != nil {
		sessionLogger.Warn("using default 2048 config", "error", err)
		cfg = config.DefaultT2048Config()
	}
	config.ApplyT2048Preset(&cfg, difficultyPreset)
	return cfg
}

func (g *Game) rules() engine.Rules {
	b := g.cfg.Board
	return engine.Rules{
		Size:            b.Size,
		WinTarget:       b.WinTarget,
		SpawnFourChance: b.SpawnFourChance,
		RejectNoopMoves: b.RejectNoopMoves,
	}
}

// Resize adapts the layout to a new screen size without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	minW, minH := minScreen(g.cfg.Board.Size)
	g.tooSmall = w < minW || h < minH
}

// moves is checked in order, so the first held direction wins.
var moves = []struct {
	action core.Action
	dir    engine.Direction
}{
	{core.ActionUp, engine.Up},
	{core.ActionDown, engine.Down},
	{core.ActionLeft, engine.Left},
	{core.ActionRight, engine.Right},
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)
	g.animate()

	return core.StepResult{State: g.State()}
}

func (g *Game) handleInput(in core.InputFrame) {
	if in.Has(core.ActionRestart) {
		g.session.Restart()
		return
	}

	phase := g.session.View().Phase
	if in.Has(core.ActionConfirm) && phase.Terminal() {
		//nolint:errcheck // Terminal phase checked above
		g.session.Acknowledge()
		return
	}

	if phase != engine.PhaseInput {
		return
	}
	for _, m := range moves {
		if in.Has(m.action) {
			//nolint:errcheck // Directions in the table are valid
			g.session.Move(m.dir)
			return
		}
	}
}

// animate runs one tick of the animation layer and the round watchdog.
func (g *Game) animate() {
	if g.anims.Sync(g.session.View()) {
		g.roundTicks = 0
	}

	round := g.anims.Round()
	for range g.anims.Advance() {
		// Stale reports only mean the round moved on without us.
		//nolint:errcheck // Logged by the session
		g.session.Complete(round)
	}

	v := g.session.View()
	if v.Pending == 0 || v.Round != round {
		g.anims.Sync(v)
		g.roundTicks = 0
		return
	}

	g.roundTicks++
	if g.roundTicks > g.cfg.Animation.RoundTimeoutTicks {
		g.session.ForceComplete()
		g.forced++
		g.anims.Drop()
		g.anims.Sync(g.session.View())
		g.roundTicks = 0
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	v := g.session.View()
	return core.GameState{
		Score:    v.Score,
		GameOver: v.Phase.Terminal(),
		Won:      v.Phase == engine.PhaseWon,
		Paused:   g.paused || g.tooSmall,
	}
}

// Result summarizes the game for the results table.
func (g *Game) Result() core.GameResult {
	v := g.session.View()
	outcome := core.OutcomeUnfinished
	switch v.Phase {
	case engine.PhaseWon:
		outcome = core.OutcomeWon
	case engine.PhaseGameOver:
		outcome = core.OutcomeLost
	}
	return core.GameResult{
		Outcome:   outcome,
		Score:     v.Score,
		MaxTile:   v.MaxValue,
		Moves:     v.Moves,
		BoardSize: v.Size,
	}
}
