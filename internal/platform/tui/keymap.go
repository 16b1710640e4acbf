package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/merge-arcade/internal/core"
)

type actionBinding struct {
	action  core.Action
	binding key.Binding
}

// KeyMapper translates key messages into game and menu actions. Bindings
// are bubbles key.Binding values so menus can print them with help.Model.
type KeyMapper struct {
	quit    key.Binding
	actions []actionBinding
	menu    MenuKeyMap
}

// NewKeyMapper returns the default bindings: arrows, WASD and vim keys
// for directions.
func NewKeyMapper() *KeyMapper {
	bind := func(a core.Action, keys ...string) actionBinding {
		return actionBinding{a, key.NewBinding(key.WithKeys(keys...))}
	}
	return &KeyMapper{
		quit: key.NewBinding(key.WithKeys("q", "ctrl+c")),
		actions: []actionBinding{
			bind(core.ActionUp, "up", "w", "k"),
			bind(core.ActionDown, "down", "s", "j"),
			bind(core.ActionLeft, "left", "a", "h"),
			bind(core.ActionRight, "right", "d", "l"),
			bind(core.ActionConfirm, "enter", " "),
			bind(core.ActionBack, "esc", "b"),
			bind(core.ActionPause, "p"),
			bind(core.ActionRestart, "r"),
		},
		menu: DefaultMenuKeyMap(),
	}
}

// MapKey returns the game action bound to msg and whether msg asks to quit.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	if key.Matches(msg, km.quit) {
		return core.ActionQuit, true
	}
	for _, ab := range km.actions {
		if key.Matches(msg, ab.binding) {
			return ab.action, false
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame records the action bound to msg in frame and reports
// whether msg asks to quit.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction is what a key means on a menu screen.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MenuKeyMap holds the menu bindings and implements help.KeyMap.
type MenuKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Back       key.Binding
	Scoreboard key.Binding
	Quit       key.Binding
}

// DefaultMenuKeyMap returns the menu bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "w", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "s", "j"), key.WithHelp("↓/j", "down")),
		Select:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Back:       key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Scoreboard: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "scores")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scoreboard, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// MapKeyToMenuAction returns the menu action bound to msg.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	k := km.menu
	switch {
	case key.Matches(msg, k.Quit):
		return MenuActionQuit
	case key.Matches(msg, k.Up):
		return MenuActionUp
	case key.Matches(msg, k.Down):
		return MenuActionDown
	case key.Matches(msg, k.Select):
		return MenuActionSelect
	case key.Matches(msg, k.Back):
		return MenuActionBack
	case key.Matches(msg, k.Scoreboard):
		return MenuActionScoreboard
	}
	return MenuActionNone
}
