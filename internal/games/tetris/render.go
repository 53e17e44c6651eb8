package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Layout in screen characters. Each field cell is two characters wide so
// blocks look square in a terminal.
const (
	cellW      = 2
	boardW     = Width*cellW + 2
	boardH     = Height + 2
	panelGap   = 2
	panelW     = 16
	minScreenW = boardW + panelGap + panelW
	minScreenH = boardH
)

// Visual glyphs
const (
	blockGlyph = '█'
	ghostGlyph = '░'
	emptyGlyph = '·'
)

// Render draws the board, the side panel and any phase overlay.
func (g *Game) Render(dst *core.Screen) {
	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCenteredColored(dst.Height()/2-1, "Window too small", core.ColorBrightRed)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}

	originX := (dst.Width() - minScreenW) / 2
	originY := (dst.Height() - minScreenH) / 2
	board := core.NewRect(originX, originY, boardW, boardH)

	g.renderBoard(dst, board)
	g.renderPanel(dst, board.Right()+panelGap, originY)

	switch g.phase {
	case PhaseStart:
		renderOverlay(dst, board, core.ColorCyan, "TETRIS", "", "Enter  start", "H  scores")
	case PhasePaused:
		renderOverlay(dst, board, core.ColorYellow, "PAUSED", "", "Esc  resume")
	case PhaseGameOver:
		renderOverlay(dst, board, core.ColorBrightRed, "GAME OVER", fmt.Sprintf("Score %d", g.score), "", "Enter  again", "H  scores")
	}
}

// cellOrigin maps a field cell to the screen position of its left character.
func cellOrigin(board core.Rect, col, row int) (x, y int) {
	return board.X + 1 + col*cellW, board.Y + 1 + (Height - 1 - row)
}

func drawCell(dst *core.Screen, x, y int, glyph rune, c core.Color) {
	for i := 0; i < cellW; i++ {
		dst.SetColored(x+i, y, glyph, c)
	}
}

func (g *Game) renderBoard(dst *core.Screen, board core.Rect) {
	dst.DrawBox(board, core.ColorGray)

	for row := 0; row < Height; row++ {
		for col := 0; col < Width; col++ {
			x, y := cellOrigin(board, col, row)
			if v := g.field.Cell(col, row); v != 0 {
				drawCell(dst, x, y, blockGlyph, ColorOf(v))
			} else {
				dst.SetColored(x+1, y, emptyGlyph, core.ColorDarkGray)
			}
		}
	}

	if g.phase != PhasePlaying && g.phase != PhasePaused {
		return
	}

	ghostY := g.GhostY()
	if ghostY != g.cursor.Y {
		g.renderPiece(dst, board, g.active.Mask, g.cursor.X, ghostY, ghostGlyph, core.ColorDarkGray)
	}
	g.renderPiece(dst, board, g.active.Mask, g.cursor.X, g.cursor.Y, blockGlyph, g.active.Color)
}

func (g *Game) renderPiece(dst *core.Screen, board core.Rect, m Mask, px, py int, glyph rune, c core.Color) {
	for _, p := range m.Cells(px, py) {
		if !inside(p.X, p.Y) {
			continue
		}
		x, y := cellOrigin(board, p.X, p.Y)
		drawCell(dst, x, y, glyph, c)
	}
}

func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	dst.DrawTextColored(x, y, "TETRIS", core.ColorCyan)

	stats := []struct {
		label string
		value string
	}{
		{"Score", fmt.Sprintf("%d", g.score)},
		{"Lines", fmt.Sprintf("%d", g.lines)},
		{"Time", formatElapsed(g.elapsed)},
		{"Level", string(g.preset)},
	}
	for i, s := range stats {
		dst.DrawTextColored(x, y+2+i*2, s.label, core.ColorGray)
		dst.DrawTextColored(x+7, y+2+i*2, s.value, core.ColorBrightWhite)
	}

	nextY := y + 2 + len(stats)*2
	dst.DrawTextColored(x, nextY, "Next", core.ColorGray)
	preview := core.NewRect(x, nextY+1, ShapeSize*cellW+2, ShapeSize+2)
	dst.DrawBox(preview, core.ColorGray)
	for j := 0; j < ShapeSize; j++ {
		for i := 0; i < ShapeSize; i++ {
			if g.next.Mask.At(i, j) {
				drawCell(dst, preview.X+1+i*cellW, preview.Y+1+j, blockGlyph, g.next.Color)
			}
		}
	}
	if !g.canSwap && g.phase == PhasePlaying {
		dst.DrawTextColored(x, preview.Bottom(), "swap used", core.ColorDarkGray)
	}
}

func renderOverlay(dst *core.Screen, board core.Rect, titleColor core.Color, title string, lines ...string) {
	box := board.Centered(boardW-4, len(lines)+4)
	for yy := box.Y; yy < box.Bottom(); yy++ {
		for xx := box.X; xx < box.Right(); xx++ {
			dst.Set(xx, yy, ' ')
		}
	}
	dst.DrawBox(box, titleColor)

	center := func(y int, text string, c core.Color) {
		x := box.X + (box.W-len([]rune(text)))/2
		dst.DrawTextColored(x, y, text, c)
	}
	center(box.Y+1, title, titleColor)
	for i, line := range lines {
		center(box.Y+3+i, line, core.ColorWhite)
	}
}

func formatElapsed(sec float64) string {
	total := int(sec)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
