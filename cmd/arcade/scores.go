package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/merge-arcade/internal/registry"
	"github.com/vovakirdan/merge-arcade/internal/storage"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a board",
	Long: `Display the top 10 scores, a summary and the latest results for the
specified board.

Examples:
  arcade scores 2048
  arcade scores 2048_6x6
  arcade scores 2048 --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete every score and result of the board")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagClearScores {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared scores for %s\n", game.Title())
		return nil
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", game.Title())

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Fprintf(out, "  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	if stats.GamesCount == 0 {
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Games: %d  Won: %d  Best tile: %d  Average score: %.0f\n",
		stats.GamesCount, stats.Wins, stats.BestTile, stats.AvgScore)

	recent, err := store.RecentResults(gameID, 5)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Recent games:")
	for _, r := range recent {
		fmt.Fprintf(out, "  %-10s  score %-7d  tile %-5d  %3d moves  %s\n",
			r.Outcome, r.Score, r.MaxTile, r.Moves, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
