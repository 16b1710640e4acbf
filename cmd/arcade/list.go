package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/merge-arcade/internal/games/t2048"
	"github.com/vovakirdan/merge-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available boards",
	Long:  `Shows every board variant registered in the arcade.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	games := registry.List()
	if len(games) == 0 {
		fmt.Fprintln(out, "No boards available.")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderColumn(false).
		Headers("ID", "TITLE", "BOARD")
	for _, g := range games {
		board := "from config"
		if v, ok := t2048.VariantByID(g.ID); ok && v.Size > 0 {
			board = fmt.Sprintf("%dx%d", v.Size, v.Size)
		}
		t.Row(g.ID, g.Title, board)
	}

	fmt.Fprintln(out, t.String())
	fmt.Fprintln(out, "Run 'arcade play <id>' to play a board.")
}
