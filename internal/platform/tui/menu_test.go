package tui

import (
	"regexp"
	"strings"
	"testing"

	"github.com/vovakirdan/merge-arcade/internal/config"
	"github.com/vovakirdan/merge-arcade/internal/core"
	"github.com/vovakirdan/merge-arcade/internal/registry"
)

func TestPickListWrapsAround(t *testing.T) {
	p := newPickList("t", "s", []pickRow{{label: "a"}, {label: "b"}, {label: "c"}})

	p.move(-1)
	if p.cursor != 2 {
		t.Errorf("cursor after up from top = %d, want 2", p.cursor)
	}
	p.move(1)
	if p.cursor != 0 {
		t.Errorf("cursor after down from bottom = %d, want 0", p.cursor)
	}

	empty := newPickList("t", "s", nil)
	empty.move(1)
	if empty.cursor != 0 {
		t.Errorf("empty list cursor = %d", empty.cursor)
	}
}

func TestMenuSelectsBoard(t *testing.T) {
	if !registry.Exists("fake") {
		registry.Register("fake", func() registry.Game { return &fakeGame{} })
	}
	m := NewMenuModel(nil, core.DefaultConfig())
	if len(m.items) == 0 {
		t.Fatal("menu lists no boards")
	}

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(MenuModel)
	if cmd == nil || m.Selected() == nil {
		t.Fatal("enter should select the highlighted board and quit")
	}
	if m.Selected().GameID != m.items[0].GameID {
		t.Errorf("selected %q, want %q", m.Selected().GameID, m.items[0].GameID)
	}
}

func TestDifficultySelector(t *testing.T) {
	m := NewDifficultyModel(80, config.DifficultyHard)
	if m.list.cursor != 2 {
		t.Fatalf("initial cursor = %d, want Hard", m.list.cursor)
	}
	if strings.Contains(m.View(), "scores") {
		t.Error("difficulty help should not offer the scoreboard")
	}

	next, _ := m.Update(keyMsg("down"))
	next, _ = next.(DifficultyModel).Update(keyMsg("enter"))
	got := next.(DifficultyModel).Selected()
	if got == nil || *got != config.DifficultyFixed {
		t.Errorf("selected %v, want fixed", got)
	}

	next, _ = NewDifficultyModel(80, config.DifficultyNormal).Update(keyMsg("esc"))
	if next.(DifficultyModel).Selected() != nil {
		t.Error("esc should leave nothing selected")
	}
}

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawText(0, 0, "score")
	s.DrawTextColored(6, 0, "2048", core.ColorBrightYellow)
	s.DrawTextColored(0, 1, "──", core.ColorGray)

	got := ansiEscape.ReplaceAllString(RenderScreen(s), "")
	if got != s.String() {
		t.Errorf("RenderScreen text = %q, want %q", got, s.String())
	}
}
