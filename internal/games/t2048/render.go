package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/merge-arcade/internal/core"
	"github.com/vovakirdan/merge-arcade/internal/games/t2048/engine"
)

const (
	hudHeight = 3

	// Cell pitch including one border line, roomy and compact.
	cellWidth         = 7
	cellHeight        = 3
	compactCellWidth  = 5
	compactCellHeight = 2
)

// cellSize picks the largest cell pitch that fits the screen.
func cellSize(size, screenW, screenH int) (w, h int) {
	if size*cellWidth+1 <= screenW && size*cellHeight+1+hudHeight+2 <= screenH {
		return cellWidth, cellHeight
	}
	return compactCellWidth, compactCellHeight
}

// minScreen returns the smallest screen that can show a board of size.
func minScreen(size int) (w, h int) {
	return max(size*compactCellWidth+1, 30), size*compactCellHeight + 1 + hudHeight + 2
}

// tileColors maps log2 of a tile value to its color.
var tileColors = []core.Color{
	core.ColorDefault,
	core.ColorWhite,         // 2
	core.ColorBrightWhite,   // 4
	core.ColorYellow,        // 8
	core.ColorOrange,        // 16
	core.ColorBrightRed,     // 32
	core.ColorRed,           // 64
	core.ColorBrightYellow,  // 128
	core.ColorBrightGreen,   // 256
	core.ColorGreen,         // 512
	core.ColorBrightCyan,    // 1024
	core.ColorCyan,          // 2048
	core.ColorBrightMagenta, // 4096
	core.ColorMagenta,       // 8192
}

func tileColor(value int) core.Color {
	exp := 0
	for v := value; v > 1; v >>= 1 {
		exp++
	}
	if exp < len(tileColors) {
		return tileColors[exp]
	}
	return core.ColorBrightBlue
}

// formatValue fits a tile value into width characters, switching to a
// k suffix for large values.
func formatValue(value, width int) string {
	s := strconv.Itoa(value)
	if len(s) <= width {
		return s
	}
	return strconv.Itoa(value/1024) + "k"
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	v := g.session.View()
	cw, ch := cellSize(v.Size, g.screenW, g.screenH)
	board := core.NewRect((g.screenW-(v.Size*cw+1))/2, hudHeight+1, v.Size*cw+1, v.Size*ch+1)

	g.renderHUD(dst, v, board)
	g.renderGrid(dst, v.Size, board, cw, ch)
	g.renderTiles(dst, v, board, cw, ch)
	dst.DrawTextCenteredIn(core.NewRect(0, board.Bottom(), g.screenW, 1), g.Controls(), core.ColorGray)
	g.renderOverlays(dst, v, board)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	w, h := minScreen(g.cfg.Board.Size)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", w, h))
}

// renderHUD draws the title, score and progress line.
func (g *Game) renderHUD(dst *core.Screen, v engine.View, board core.Rect) {
	dst.DrawTextCenteredIn(core.NewRect(board.X, 0, board.W, 1), g.Title(), core.ColorBrightYellow)

	dst.DrawText(board.X, 1, fmt.Sprintf("Score: %d", v.Score))
	info := fmt.Sprintf("Max: %d", v.MaxValue)
	dst.DrawText(max(board.Right()-len(info), board.X), 1, info)

	progress := fmt.Sprintf("Moves: %d  Target: %d", v.Moves, g.cfg.Board.WinTarget)
	dst.DrawTextCenteredIn(core.NewRect(board.X, 2, board.W, 1), progress, core.ColorGray)
}

// renderGrid draws the cell borders.
func (g *Game) renderGrid(dst *core.Screen, size int, board core.Rect, cw, ch int) {
	for y := range size + 1 {
		for x := range size + 1 {
			px := board.X + x*cw
			py := board.Y + y*ch

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == size:
				corner = '┐'
			case y == size && x == 0:
				corner = '└'
			case y == size && x == size:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == size:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == size:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGray)

			if x < size {
				for i := 1; i < cw; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < size {
				for i := 1; i < ch; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

// renderTiles draws every entity, at its tween position while animating.
// Absorbed blocks are drawn first so the block they merged into covers them.
func (g *Game) renderTiles(dst *core.Screen, v engine.View, board core.Rect, cw, ch int) {
	tweens := make(map[engine.BlockID]TileAnimation, len(g.anims.Tweens()))
	for _, t := range g.anims.Tweens() {
		tweens[t.ID] = t
	}

	draw := func(e engine.Entity) {
		from, t := e.Position, 1.0
		text := formatValue(e.Value, cw-1)

		if tw, ok := tweens[e.ID]; ok && g.anims.Round() == v.Round {
			if e.IsMerged && tw.Done() {
				return
			}
			from, t = tw.From, tw.Eased()
			if tw.IsNew && tw.Progress() < 0.5 {
				text = "·"
			}
		}

		cell := core.NewRect(
			board.X+core.Lerp(from.X*cw, e.Position.X*cw, t)+1,
			board.Y+core.Lerp(from.Y*ch, e.Position.Y*ch, t)+1,
			cw-1, ch-1,
		)
		dst.DrawTextCenteredIn(cell, text, tileColor(e.Value))
	}

	for _, e := range v.Entities {
		if e.IsMerged {
			draw(e)
		}
	}
	for _, e := range v.Entities {
		if !e.IsMerged {
			draw(e)
		}
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, v engine.View, board core.Rect) {
	cx, cy := board.Center()

	switch {
	case g.paused:
		drawOverlay(dst, cx, cy, core.ColorBrightWhite, "PAUSED", "Press P to resume")
	case v.Phase == engine.PhaseWon:
		drawOverlay(dst, cx, cy, core.ColorBrightGreen,
			fmt.Sprintf("%d reached!", g.cfg.Board.WinTarget),
			fmt.Sprintf("Score: %d in %d moves", v.Score, v.Moves),
			"Enter: new game")
	case v.Phase == engine.PhaseGameOver:
		drawOverlay(dst, cx, cy, core.ColorBrightRed,
			"GAME OVER",
			fmt.Sprintf("Max tile: %d", v.MaxValue),
			"Enter: new game")
	}
}

// drawOverlay draws a boxed block of centered lines.
func drawOverlay(dst *core.Screen, centerX, centerY int, c core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	box := core.NewRect(centerX-(maxLen+4)/2, centerY-(len(lines)+2)/2, maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)

	for i, line := range lines {
		dst.DrawTextCenteredIn(core.NewRect(box.X, box.Y+1+i, box.W, 1), line, c)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | R: Restart | P: Pause | Q: Quit"
}
