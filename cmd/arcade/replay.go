package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/merge-arcade/internal/config"
	"github.com/vovakirdan/merge-arcade/internal/games/t2048/engine"
)

var (
	flagReplaySize    int
	flagReplayTimeout time.Duration
	flagReplayVerbose bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <moves>",
	Short: "Run a move script headless and print the final board",
	Long: `Play a sequence of moves without a terminal UI and print the board.

Moves are letters u, d, l, r (or words up, down, left, right separated by
spaces or commas). Every animation round is completed by concurrent
reporters, the way the animation layer does it, and awaited with a timeout.
With the same --seed the same script always gives the same board.

Examples:
  arcade replay --seed 7 uuddllrr
  arcade replay --seed 7 --size 6 "up,left,left,down" -v`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().IntVar(&flagReplaySize, "size", 0, "Board size (default from config)")
	replayCmd.Flags().DurationVar(&flagReplayTimeout, "timeout", 2*time.Second, "How long to wait for one animation round")
	replayCmd.Flags().BoolVarP(&flagReplayVerbose, "verbose", "v", false, "Print the board after every move")
	replayCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	replayCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// parseMoves accepts a run of direction letters or a list of direction words.
func parseMoves(script string) ([]engine.Direction, error) {
	fields := strings.FieldsFunc(strings.ToLower(script), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields) == 1 && len(fields[0]) > 1 && strings.Trim(fields[0], "udlr") == "" {
		fields = strings.Split(fields[0], "")
	}

	dirs := make([]engine.Direction, 0, len(fields))
	for _, f := range fields {
		d, err := engine.ParseDirection(f)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, d)
	}
	return dirs, nil
}

// settle completes animation rounds until the session waits for input or
// has ended. Each round's completions are reported from their own goroutines.
func settle(ctx context.Context, s *engine.Session, timeout time.Duration) error {
	for {
		v := s.View()
		if v.Pending == 0 {
			return nil
		}

		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			errs []error
		)
		for range v.Pending {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := s.Complete(v.Round); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}()
		}

		waitCtx, cancel := context.WithTimeout(ctx, timeout)
		err := s.AwaitRound(waitCtx)
		cancel()
		wg.Wait()

		if err := errors.Join(append(errs, err)...); err != nil {
			return err
		}
	}
}

func printBoard(w io.Writer, v engine.View, g engine.Grid) {
	fmt.Fprintf(w, "phase=%s score=%d moves=%d max=%d\n", v.Phase, v.Score, v.Moves, v.MaxValue)
	for _, row := range g.Values() {
		cells := make([]string, len(row))
		for i, val := range row {
			if val == 0 {
				cells[i] = fmt.Sprintf("%5s", ".")
			} else {
				cells[i] = fmt.Sprintf("%5d", val)
			}
		}
		fmt.Fprintln(w, strings.Join(cells, ""))
	}
}

func runReplay(cmd *cobra.Command, args []string) error {
	moves, err := parseMoves(args[0])
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger("replay", os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := config.LoadT2048(flagConfig)
	if err != nil {
		return err
	}
	preset, err := config.ParseDifficultyPreset(flagDifficulty)
	if err != nil {
		return err
	}
	config.ApplyT2048Preset(&cfg, preset)
	if flagReplaySize > 0 {
		cfg.Board.Size = flagReplaySize
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
		logger.Info("no --seed given", "seed", seed)
	}

	machine := engine.NewMachine(engine.Rules{
		Size:            cfg.Board.Size,
		WinTarget:       cfg.Board.WinTarget,
		SpawnFourChance: cfg.Board.SpawnFourChance,
		RejectNoopMoves: cfg.Board.RejectNoopMoves,
	}, engine.NewRandom(seed))
	session := engine.NewSession(machine, engine.WithLogger(logger))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	if err := settle(ctx, session, flagReplayTimeout); err != nil {
		return err
	}
	for i, dir := range moves {
		if session.View().Phase.Terminal() {
			logger.Info("game over before script ended", "played", i, "remaining", len(moves)-i)
			break
		}
		if err := session.Move(dir); err != nil {
			return fmt.Errorf("move %d (%s): %w", i+1, dir, err)
		}
		if err := settle(ctx, session, flagReplayTimeout); err != nil {
			return fmt.Errorf("move %d (%s): %w", i+1, dir, err)
		}
		if flagReplayVerbose {
			fmt.Fprintf(out, "#%d %s\n", i+1, dir)
			printBoard(out, session.View(), session.State().Grid)
			fmt.Fprintln(out)
		}
	}

	printBoard(out, session.View(), session.State().Grid)
	return nil
}
