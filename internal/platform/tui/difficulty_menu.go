package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/merge-arcade/internal/config"
	"github.com/vovakirdan/merge-arcade/internal/core"
)

var difficultyOptions = []struct {
	preset config.DifficultyPreset
	row    pickRow
}{
	{config.DifficultyEasy, pickRow{"Easy", "6x6 board, only 2s spawn"}},
	{config.DifficultyNormal, pickRow{"Normal", "4x4 board, reach 2048"}},
	{config.DifficultyHard, pickRow{"Hard", "3x3 board, reach 512, some 4s"}},
	{config.DifficultyFixed, pickRow{"Custom", "board from your config file"}},
}

// DifficultyModel picks the board preset before a game.
type DifficultyModel struct {
	list      pickList
	width     int
	keyMapper *KeyMapper
	selected  *config.DifficultyPreset
	done      bool
}

// NewDifficultyModel creates a selector with initial highlighted.
func NewDifficultyModel(width int, initial config.DifficultyPreset) DifficultyModel {
	rows := make([]pickRow, len(difficultyOptions))
	cursor := 1
	for i, opt := range difficultyOptions {
		rows[i] = opt.row
		if opt.preset == initial {
			cursor = i
		}
	}

	list := newPickList("2 0 4 8", "Select difficulty", rows)
	list.cursor = cursor
	list.keys.Scoreboard.SetEnabled(false)

	return DifficultyModel{list: list, width: width, keyMapper: NewKeyMapper()}
}

func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit, MenuActionBack:
			m.done = true
			return m, tea.Quit
		case MenuActionUp:
			m.list.move(-1)
		case MenuActionDown:
			m.list.move(1)
		case MenuActionSelect:
			p := difficultyOptions[m.list.cursor].preset
			m.selected = &p
			m.done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m DifficultyModel) View() string {
	if m.done {
		return ""
	}
	return m.list.view(m.width)
}

// Selected returns the chosen preset, or nil when the user backed out.
func (m DifficultyModel) Selected() *config.DifficultyPreset {
	return m.selected
}

// RunDifficultySelector asks for a difficulty preset. It returns nil when
// the user backs out or quits.
func RunDifficultySelector(cfg core.RuntimeConfig, initial config.DifficultyPreset) (*config.DifficultyPreset, error) {
	final, err := tea.NewProgram(NewDifficultyModel(cfg.ScreenW, initial), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}
	if m, ok := final.(DifficultyModel); ok {
		return m.Selected(), nil
	}
	return nil, nil
}
