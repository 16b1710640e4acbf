package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

var (
	pickTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	pickCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	pickDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	pickHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// pickRow is one line of a pick list: a label and a dimmed detail.
type pickRow struct {
	label  string
	detail string
}

// pickList is the vertical selector shared by the board menu and the
// difficulty screen.
type pickList struct {
	title    string
	subtitle string
	rows     []pickRow
	cursor   int
	help     help.Model
	keys     MenuKeyMap
}

func newPickList(title, subtitle string, rows []pickRow) pickList {
	return pickList{
		title:    title,
		subtitle: subtitle,
		rows:     rows,
		help:     help.New(),
		keys:     DefaultMenuKeyMap(),
	}
}

func (p *pickList) move(delta int) {
	if len(p.rows) == 0 {
		return
	}
	p.cursor = (p.cursor + delta + len(p.rows)) % len(p.rows)
}

func (p pickList) view(width int) string {
	labelW := 0
	for _, r := range p.rows {
		labelW = max(labelW, lipgloss.Width(r.label))
	}

	lines := make([]string, 0, len(p.rows))
	for i, r := range p.rows {
		label := r.label + strings.Repeat(" ", labelW-lipgloss.Width(r.label))
		line := "  " + label
		if i == p.cursor {
			line = pickCursorStyle.Render("> " + label)
		}
		if r.detail != "" {
			line += "  " + pickDimStyle.Render(r.detail)
		}
		lines = append(lines, line)
	}

	p.help.Width = width
	block := lipgloss.JoinVertical(lipgloss.Left,
		pickTitleStyle.Render(p.title),
		"",
		pickDimStyle.Render(p.subtitle),
		"",
		strings.Join(lines, "\n"),
		"",
		pickHelpStyle.Render(p.help.View(p.keys)),
	)
	if width <= 0 {
		return block
	}
	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

// centerText pads text so it is centered in width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
