package driver

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Glyphs used to draw the board.
const (
	GlyphHead = 'O'
	GlyphBody = '#'
	GlyphFood = '@'
)

// Render draws the current state into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall || g.arena == nil {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	dst.DrawBox(g.board, core.ColorGray)
	g.renderSnake(dst)

	if food, ok := g.arena.FoodPosition(); ok {
		x, y := g.toScreen(food)
		dst.SetColored(x, y, GlyphFood, core.ColorBrightRed)
	}

	switch {
	case g.won:
		g.renderOverlay(dst, "Board filled!", fmt.Sprintf("Final Score: %d", g.arena.Score()))
	case g.gameOver:
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	st := g.State()
	hud := fmt.Sprintf(" %s  Score: %d  Length: %d  Speed: %.1fx", g.Title(), st.Score, st.Length, g.Speed())
	dst.DrawText(0, 0, hud, core.ColorBrightWhite)
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
}

// renderSnake draws the body tail first so the head always ends up on top.
func (g *Game) renderSnake(dst *core.Screen) {
	cells := g.arena.SnakePositions()
	for i := len(cells) - 1; i >= 0; i-- {
		x, y := g.toScreen(cells[i])
		if i == 0 {
			dst.SetColored(x, y, GlyphHead, core.ColorBrightGreen)
		} else {
			dst.SetColored(x, y, GlyphBody, core.ColorGreen)
		}
	}
}

// toScreen maps a board cell to screen coordinates inside the border.
func (g *Game) toScreen(c snake.Cell) (int, int) {
	return g.board.X + 1 + c.X, g.board.Y + 1 + c.Y
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	boxH := 5
	box := core.Rect{X: (w - boxW) / 2, Y: (h - boxH) / 2, W: boxW, H: boxH}

	dst.FillRect(box, ' ')
	dst.DrawBox(box, core.ColorYellow)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorDefault)
}
