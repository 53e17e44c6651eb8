package gui

import (
	"image/color"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

// Window geometry in pixels.
const (
	cellPx    = 28
	previewPx = 20
	margin    = 24
	panelW    = 180

	// DebugPrint glyph metrics.
	charW = 6
	lineH = 16

	fieldW = tetris.Width * cellPx
	fieldH = tetris.Height * cellPx

	ScreenWidth  = margin*3 + fieldW + panelW
	ScreenHeight = margin*2 + fieldH
)

var (
	backgroundColor = color.RGBA{18, 18, 24, 255}
	gridColor       = color.RGBA{40, 40, 48, 255}
	borderColor     = color.RGBA{128, 128, 140, 255}
	shadeColor      = color.RGBA{0, 0, 0, 190}
)

// cellRect returns the pixel rectangle of a field cell. Row 0 is the floor.
func cellRect(col, row int) (x, y, w, h float32) {
	return float32(margin + col*cellPx), float32(margin + (tetris.Height-1-row)*cellPx), cellPx, cellPx
}

func panelX() int {
	return margin*2 + fieldW
}

// centeredTextX returns the x that centers text over the field.
func centeredTextX(text string) int {
	return margin + (fieldW-len(text)*charW)/2
}

func rgba(c core.Color) color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{r, g, b, 255}
}

var fieldBounds = core.NewRect(0, 0, tetris.Width, tetris.Height)

func onField(p tetris.Point) bool {
	return fieldBounds.Contains(p.X, p.Y)
}
