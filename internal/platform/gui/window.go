// Package gui runs the game in a desktop window using Ebiten.
package gui

import (
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Settings carries options for the window that are not part of the runtime config.
type Settings struct {
	Difficulty string
	Logger     *log.Logger
}

// Window implements ebiten.Game for a single tetris game.
type Window struct {
	game       *tetris.Game
	store      *storage.Store
	cfg        core.RuntimeConfig
	settings   Settings
	logger     *log.Logger
	tracker    *core.InputTracker
	dt         float64
	state      core.GameState
	scoreSaved bool
}

// NewWindow creates a window and resets the game onto its start screen.
func NewWindow(game *tetris.Game, store *storage.Store, cfg core.RuntimeConfig, settings Settings) *Window {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	cfg.ScreenW, cfg.ScreenH = ScreenWidth, ScreenHeight

	logger := settings.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	game.Reset(cfg)

	return &Window{
		game:     game,
		store:    store,
		cfg:      cfg,
		settings: settings,
		logger:   logger,
		// Ebiten reports real key releases, so no auto-release.
		tracker: core.NewInputTracker(0),
		dt:      1.0 / float64(cfg.TickRate),
	}
}

// Update advances the game by one tick.
func (w *Window) Update() error {
	pollKeys(ebitenKeyboard{}, w.tracker)
	return w.step(w.tracker.Frame(w.dt))
}

func (w *Window) step(in core.InputFrame) error {
	if in.Pressed(core.ActionQuit) {
		return ebiten.Termination
	}

	w.state = w.game.Step(in, w.dt).State

	if !w.state.GameOver {
		w.scoreSaved = false
	} else if !w.scoreSaved {
		w.saveScore()
	}
	return nil
}

func (w *Window) saveScore() {
	w.scoreSaved = true
	w.logger.Info("Round over", "score", w.state.Score, "lines", w.state.Lines)
	if w.store == nil || w.state.Score <= 0 {
		return
	}

	_, err := w.store.SaveScore(storage.ScoreEntry{
		GameID:     w.game.ID(),
		Difficulty: w.settings.Difficulty,
		Player:     w.cfg.Player,
		Score:      w.state.Score,
		Lines:      w.state.Lines,
		Duration:   time.Duration(w.game.Elapsed() * float64(time.Second)),
	})
	if err != nil {
		w.logger.Warn("Could not save score", "err", err)
	}
}

// Layout keeps a fixed logical resolution; Ebiten scales it to the window.
func (w *Window) Layout(_, _ int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Draw renders the field, the side panel and any phase overlay.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	w.drawField(screen)
	w.drawPanel(screen)
	w.drawOverlay(screen)
}

func (w *Window) drawField(screen *ebiten.Image) {
	vector.StrokeRect(screen, margin-3, margin-3, fieldW+6, fieldH+6, 2, borderColor, false)

	field := w.game.Field()
	for row := 0; row < tetris.Height; row++ {
		for col := 0; col < tetris.Width; col++ {
			if v := field.Cell(col, row); v != 0 {
				fillCell(screen, col, row, rgba(tetris.ColorOf(v)))
				continue
			}
			x, y, cw, ch := cellRect(col, row)
			vector.StrokeRect(screen, x, y, cw, ch, 1, gridColor, false)
		}
	}

	phase := w.game.Phase()
	if phase != tetris.PhasePlaying && phase != tetris.PhasePaused {
		return
	}

	active := w.game.Active()
	cursor := w.game.Cursor()
	pieceColor := rgba(active.Color)

	if ghostY := w.game.GhostY(); ghostY != cursor.Y {
		for _, p := range active.Mask.Cells(cursor.X, ghostY) {
			if onField(p) {
				x, y, cw, ch := cellRect(p.X, p.Y)
				vector.StrokeRect(screen, x+2, y+2, cw-4, ch-4, 2, pieceColor, false)
			}
		}
	}
	for _, p := range active.Mask.Cells(cursor.X, cursor.Y) {
		if onField(p) {
			fillCell(screen, p.X, p.Y, pieceColor)
		}
	}
}

func fillCell(screen *ebiten.Image, col, row int, c color.Color) {
	x, y, cw, ch := cellRect(col, row)
	vector.DrawFilledRect(screen, x+1, y+1, cw-2, ch-2, c, false)
}

func (w *Window) drawPanel(screen *ebiten.Image) {
	x := panelX()
	y := margin

	elapsed := int(w.game.Elapsed())
	lines := []string{
		"TETRIS",
		"",
		fmt.Sprintf("Score  %d", w.game.Score()),
		fmt.Sprintf("Lines  %d", w.game.Lines()),
		fmt.Sprintf("Time   %02d:%02d", elapsed/60, elapsed%60),
		fmt.Sprintf("Level  %s", w.game.Difficulty()),
		"",
		"Next",
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x, y+i*lineH)
	}

	previewY := y + len(lines)*lineH + 4
	size := float32(previewPx * tetris.ShapeSize)
	vector.StrokeRect(screen, float32(x), float32(previewY), size+8, size+8, 1, borderColor, false)

	next := w.game.Next()
	for j := 0; j < tetris.ShapeSize; j++ {
		for i := 0; i < tetris.ShapeSize; i++ {
			if !next.Mask.At(i, j) {
				continue
			}
			px := float32(x + 4 + i*previewPx)
			py := float32(previewY + 4 + j*previewPx)
			vector.DrawFilledRect(screen, px+1, py+1, previewPx-2, previewPx-2, rgba(next.Color), false)
		}
	}

	footerY := previewY + int(size) + 16
	if !w.game.CanSwap() && w.game.Phase() == tetris.PhasePlaying {
		ebitenutil.DebugPrintAt(screen, "swap used", x, footerY)
	}
	ebitenutil.DebugPrintAt(screen, "Arrows  move/rotate", x, footerY+2*lineH)
	ebitenutil.DebugPrintAt(screen, "Space   drop", x, footerY+3*lineH)
	ebitenutil.DebugPrintAt(screen, "C       swap", x, footerY+4*lineH)
	ebitenutil.DebugPrintAt(screen, "Esc     pause", x, footerY+5*lineH)
	ebitenutil.DebugPrintAt(screen, "Q       quit", x, footerY+6*lineH)
}

func (w *Window) drawOverlay(screen *ebiten.Image) {
	var lines []string
	switch w.game.Phase() {
	case tetris.PhaseStart:
		lines = []string{"TETRIS", "", "Enter  start"}
	case tetris.PhasePaused:
		lines = []string{"PAUSED", "", "Esc  resume"}
	case tetris.PhaseGameOver:
		lines = []string{"GAME OVER", fmt.Sprintf("Score %d", w.game.Score()), "", "Enter  again"}
	default:
		return
	}

	boxH := float32(len(lines)*lineH + 2*lineH)
	boxY := float32(margin) + (fieldH-boxH)/2
	vector.DrawFilledRect(screen, margin, boxY, fieldW, boxH, shadeColor, false)

	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, centeredTextX(line), int(boxY)+lineH+i*lineH)
	}
}

// Run opens the window and blocks until it is closed or the player quits.
func Run(game *tetris.Game, store *storage.Store, cfg core.RuntimeConfig, settings Settings) error {
	w := NewWindow(game, store, cfg, settings)

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("Tetris")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(w.cfg.TickRate)

	return ebiten.RunGame(w)
}
