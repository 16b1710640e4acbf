package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/merge-arcade/internal/config"
	"github.com/vovakirdan/merge-arcade/internal/core"
	"github.com/vovakirdan/merge-arcade/internal/games/t2048"
	"github.com/vovakirdan/merge-arcade/internal/platform/tui"
	"github.com/vovakirdan/merge-arcade/internal/registry"
	"github.com/vovakirdan/merge-arcade/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a board",
	Long: `Start playing the specified board.

Controls:
  Arrows/WASD/HJKL  - Slide the tiles
  Enter/Space       - Dismiss a won or lost game and start over
  R                 - Restart the current game
  P                 - Pause
  Esc/B             - Leave
  Q/Ctrl+C          - Quit

Difficulty options (board "2048" only; the sized boards keep their size):
  easy   - 6x6 board, only 2s spawn
  normal - 4x4 board, reach 2048
  hard   - 3x3 board, reach 512, some 4s spawn
  fixed  - Use the config file as is

Without --difficulty, "arcade play 2048" asks for one.

Examples:
  arcade play 2048
  arcade play 2048 --difficulty hard
  arcade play 2048_6x6
  arcade play 2048 --config ./my-2048.yaml --difficulty fixed`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// terminalConfig builds the runtime config from the terminal size and the
// global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// chooseDifficulty applies --difficulty, or asks for a preset when the
// board takes its size from the config. ok is false when the user backed out.
func chooseDifficulty(gameID string, cfg core.RuntimeConfig) (ok bool, err error) {
	t2048.SetConfigPath(flagConfig)

	v, _ := t2048.VariantByID(gameID)
	if flagDifficulty != "" || v.Size > 0 {
		preset, err := config.ParseDifficultyPreset(flagDifficulty)
		if err != nil {
			return false, err
		}
		t2048.SetDifficultyPreset(string(preset))
		return true, nil
	}

	preset, err := tui.RunDifficultySelector(cfg, config.DifficultyNormal)
	if err != nil || preset == nil {
		return false, err
	}
	t2048.SetDifficultyPreset(string(*preset))
	return true, nil
}

// openStore opens the scores database, logging instead of failing: the
// game still works without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	logger, closeLog, err := newLogger("arcade", nil)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := terminalConfig()

	ok, err := chooseDifficulty(gameID, cfg)
	if err != nil || !ok {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, cfg, logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
