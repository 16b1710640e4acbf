package core

import (
	"strings"
	"testing"
)

func rows(s *Screen) []string {
	out := make([]string, s.Height())
	for y := range out {
		out[y] = s.Row(y)
	}
	return out
}

func TestScreenStartsBlank(t *testing.T) {
	s := NewScreen(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, want 6x3", s.Width(), s.Height())
	}
	want := strings.Repeat(" ", 6)
	for y, r := range rows(s) {
		if r != want {
			t.Errorf("row %d = %q, want blanks", y, r)
		}
	}
}

func TestScreenOutOfBounds(t *testing.T) {
	s := NewScreen(4, 4)
	for _, p := range [][2]int{{-1, 0}, {4, 0}, {0, -1}, {0, 4}} {
		s.SetColored(p[0], p[1], 'X', ColorRed)
		if c := s.GetCell(p[0], p[1]); c != blank {
			t.Errorf("GetCell%v = %+v, want blank", p, c)
		}
	}
	if strings.ContainsRune(s.String(), 'X') {
		t.Error("out-of-bounds writes leaked onto the screen")
	}
	if got := s.Row(9); got != "    " {
		t.Errorf("Row(9) = %q, want blanks", got)
	}
}

func TestScreenColors(t *testing.T) {
	s := NewScreen(5, 1)
	s.SetColored(1, 0, '#', ColorOrange)

	if c := s.GetCell(1, 0); c.Rune != '#' || c.Color != ColorOrange {
		t.Errorf("GetCell = %+v, want orange #", c)
	}
	s.Set(1, 0, 'x')
	if c := s.GetCell(1, 0); c.Color != ColorDefault {
		t.Errorf("Set should reset the color, got %v", c.Color)
	}

	s.SetColored(2, 0, '#', ColorGray)
	s.Clear()
	if c := s.GetCell(2, 0); c != blank {
		t.Errorf("after Clear cell = %+v, want blank", c)
	}
}

func TestScreenDrawing(t *testing.T) {
	tests := []struct {
		name string
		draw func(s *Screen)
		want []string
	}{
		{
			name: "text clipped at the right edge",
			draw: func(s *Screen) { s.DrawText(5, 0, "2048") },
			want: []string{"     20", "       ", "       "},
		},
		{
			name: "runes take one cell each",
			draw: func(s *Screen) { s.DrawText(0, 1, "▲▼ok") },
			want: []string{"       ", "▲▼ok   ", "       "},
		},
		{
			name: "centered on the middle row",
			draw: func(s *Screen) { s.DrawTextCentered(1, "hi") },
			want: []string{"       ", "  hi   ", "       "},
		},
		{
			name: "centered inside a rect",
			draw: func(s *Screen) { s.DrawTextCenteredIn(NewRect(1, 0, 5, 3), "64", ColorYellow) },
			want: []string{"       ", "  64   ", "       "},
		},
		{
			name: "filled rect",
			draw: func(s *Screen) { s.DrawRect(NewRect(1, 1, 3, 2), '#', ColorGreen) },
			want: []string{"       ", " ###   ", " ###   "},
		},
		{
			name: "box outline",
			draw: func(s *Screen) { s.DrawBox(NewRect(0, 0, 5, 3), ColorGray) },
			want: []string{"┌───┐  ", "│   │  ", "└───┘  "},
		},
		{
			name: "box too small is skipped",
			draw: func(s *Screen) { s.DrawBox(NewRect(0, 0, 1, 3), ColorGray) },
			want: []string{"       ", "       ", "       "},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(7, 3)
			tc.draw(s)
			got := rows(s)
			for y := range tc.want {
				if got[y] != tc.want[y] {
					t.Errorf("row %d = %q, want %q", y, got[y], tc.want[y])
				}
			}
		})
	}
}

func TestScreenDrawKeepsColor(t *testing.T) {
	s := NewScreen(7, 3)
	s.DrawTextCenteredIn(NewRect(1, 0, 5, 3), "64", ColorYellow)
	if c := s.GetCell(3, 1); c.Color != ColorYellow {
		t.Errorf("centered text color = %v, want yellow", c.Color)
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc")
	s.DrawText(0, 1, "de")
	if got := s.String(); got != "abc\nde " {
		t.Errorf("String() = %q", got)
	}
}

func TestScreenResizeKeepsTopLeft(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")
	s.DrawText(0, 5, "World")

	s.Resize(4, 3)
	if s.Width() != 4 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, want 4x3", s.Width(), s.Height())
	}
	if got := s.Row(0); got != "Hell" {
		t.Errorf("row 0 = %q, want %q", got, "Hell")
	}

	s.Resize(8, 8)
	if got := s.Row(0); got != "Hell    " {
		t.Errorf("row 0 after growing = %q", got)
	}
	if got := s.Row(5); strings.TrimSpace(got) != "" {
		t.Errorf("row 5 should be blank after the shrink dropped it, got %q", got)
	}
}
