package tetris

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

const dt = 1.0 / 60.0

type audioRecorder struct {
	sounds  []core.Sound
	volumes []float64
}

func (a *audioRecorder) PlaySound(s core.Sound)   { a.sounds = append(a.sounds, s) }
func (a *audioRecorder) SetMusicVolume(v float64) { a.volumes = append(a.volumes, v) }

func (a *audioRecorder) count(s core.Sound) int {
	n := 0
	for _, got := range a.sounds {
		if got == s {
			n++
		}
	}
	return n
}

func newGame(t *testing.T, seed int64) (*Game, *audioRecorder) {
	t.Helper()
	rec := &audioRecorder{}
	g := NewWithConfig(config.DefaultTetrisConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: seed, Audio: rec})
	return g, rec
}

// startedGame returns a game that has just entered the playing phase.
func startedGame(t *testing.T, seed int64) (*Game, *audioRecorder) {
	t.Helper()
	g, rec := newGame(t, seed)
	g.Step(core.PressedFrame(core.ActionConfirm), dt)
	require.Equal(t, PhasePlaying, g.Phase())
	return g, rec
}

func idle() core.InputFrame { return core.NewInputFrame() }

func TestRegistered(t *testing.T) {
	assert.True(t, registry.Exists(GameID))
	g, err := registry.Create(GameID)
	require.NoError(t, err)
	assert.Equal(t, "Tetris", g.Title())
}

func TestNewPlaysWithResolvedConfig(t *testing.T) {
	t.Cleanup(func() {
		resolvedConfig = nil
		difficultyPreset = config.DifficultyClassic
	})

	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1})
	assert.Equal(t, config.DefaultTetrisConfig(), g.Config())
	assert.Equal(t, config.DifficultyClassic, g.Difficulty())

	cfg := config.DefaultTetrisConfig()
	cfg.Timing.GravityInterval = 0.5
	config.ApplyTetrisPreset(&cfg, config.DifficultyFixed)
	SetConfig(cfg, config.DifficultyFixed)

	created, err := registry.Create(GameID)
	require.NoError(t, err)
	created.Reset(core.RuntimeConfig{Seed: 1})
	game := created.(*Game)
	assert.Equal(t, cfg, game.Config())
	assert.Equal(t, config.DifficultyFixed, game.Difficulty())
	assert.InDelta(t, 0.5, game.GravityInterval(), 1e-9)
}

func TestStartScreenWaitsForConfirm(t *testing.T) {
	g, _ := newGame(t, 1)
	assert.Equal(t, PhaseStart, g.Phase())

	for i := 0; i < 10; i++ {
		g.Step(core.PressedFrame(core.ActionLeft, core.ActionHardDrop, core.ActionBack), 1)
	}
	assert.Equal(t, PhaseStart, g.Phase())
	assert.False(t, g.State().Started)
}

func TestConfirmStartsRound(t *testing.T) {
	g, _ := startedGame(t, 7)

	assert.Zero(t, g.Score())
	assert.Zero(t, g.Lines())
	assert.Zero(t, countFilled(g.Field()))
	assert.Equal(t, Point{X: 3, Y: 14}, g.Cursor())
	assert.True(t, g.CanSwap())

	for _, s := range []Shape{g.Active(), g.Next()} {
		assert.GreaterOrEqual(t, s.ID, uint8(1))
		assert.LessOrEqual(t, s.ID, uint8(ShapeCount))
		assert.Equal(t, GetShape(s.ID), s)
	}
	assert.Equal(t, 0.8, g.GravityInterval())
	assert.True(t, g.State().Started)
}

func TestGravity(t *testing.T) {
	g, _ := startedGame(t, 3)

	g.Step(idle(), 0.5)
	assert.Equal(t, 14, g.Cursor().Y)

	g.Step(idle(), 0.31)
	assert.Equal(t, 13, g.Cursor().Y, "piece should fall once the interval is exceeded")

	g.Step(idle(), 0.5)
	assert.Equal(t, 13, g.Cursor().Y, "gravity timer restarts after a tick")
}

func TestGravityLocksOnFloor(t *testing.T) {
	g, rec := startedGame(t, 3)
	g.cursor.Y = g.GhostY()

	g.Step(idle(), 0.9)

	assert.Equal(t, 4, countFilled(g.Field()))
	assert.Equal(t, 1, g.pieces)
	assert.Equal(t, 1, rec.count(core.SoundLock))
	assert.Equal(t, Point{X: 3, Y: 14}, g.Cursor())
}

func TestSlide(t *testing.T) {
	g, _ := startedGame(t, 5)

	g.Step(core.PressedFrame(core.ActionLeft), 0.01)
	assert.Equal(t, 2, g.Cursor().X, "press moves immediately")

	g.Step(core.HeldFrame(core.ActionLeft), 0.06)
	assert.Equal(t, 2, g.Cursor().X, "hold waits for the slide delay")

	g.Step(core.HeldFrame(core.ActionLeft), 0.06)
	assert.Equal(t, 1, g.Cursor().X, "hold repeats after the slide delay")

	g.Step(core.PressedFrame(core.ActionRight), 0.01)
	assert.Equal(t, 2, g.Cursor().X)
}

func TestSlideStopsAtWall(t *testing.T) {
	g, _ := startedGame(t, 5)
	for i := 0; i < 12; i++ {
		g.Step(core.PressedFrame(core.ActionRight), 0.01)
	}

	x := g.Cursor().X
	assert.False(t, g.field.CheckCollision(g.Active().Mask, x, g.Cursor().Y))
	assert.True(t, g.field.CheckCollision(g.Active().Mask, x+1, g.Cursor().Y))
}

func TestSoftDrop(t *testing.T) {
	g, _ := startedGame(t, 9)

	g.Step(core.PressedFrame(core.ActionDown), 0.01)
	assert.Equal(t, 13, g.Cursor().Y)

	g.Step(core.HeldFrame(core.ActionDown), 0.06)
	assert.Equal(t, 13, g.Cursor().Y)

	g.Step(core.HeldFrame(core.ActionDown), 0.06)
	assert.Equal(t, 12, g.Cursor().Y)
}

func TestSoftDropLocksOnCollision(t *testing.T) {
	g, rec := startedGame(t, 9)
	g.cursor.Y = g.GhostY()
	g.sinceGravity = 0.5

	g.Step(core.PressedFrame(core.ActionDown), 0.01)

	assert.Equal(t, 4, countFilled(g.Field()))
	assert.Equal(t, 1, rec.count(core.SoundLock))
	assert.Equal(t, Point{X: 3, Y: 14}, g.Cursor())
	assert.Zero(t, g.sinceGravity, "lock resets the gravity timer")
}

func TestHardDrop(t *testing.T) {
	g, rec := startedGame(t, 11)
	active, next := g.Active(), g.Next()

	var want Field
	want.PlaceShape(active.Mask, active.ID, g.Cursor().X, g.GhostY())

	g.Step(core.PressedFrame(core.ActionHardDrop), 0.01)

	assert.Equal(t, want.Cells(), g.Field().Cells())
	assert.Equal(t, next, g.Active(), "next piece becomes active")
	assert.Equal(t, Point{X: 3, Y: 14}, g.Cursor())
	assert.True(t, g.CanSwap())
	assert.Equal(t, 1, rec.count(core.SoundLock))
}

func TestRotate(t *testing.T) {
	g, _ := startedGame(t, 13)
	before := g.Active()

	g.Step(core.PressedFrame(core.ActionRotate), 0.01)
	assert.Equal(t, Rotate(before), g.Active())

	g.Step(core.HeldFrame(core.ActionRotate), 0.01)
	assert.Equal(t, Rotate(before), g.Active(), "holding does not rotate again")
}

func TestRotateRejectedOnCollision(t *testing.T) {
	g, _ := startedGame(t, 13)
	g.active = GetShape(1)
	g.cursor = Point{X: 0, Y: 0} // bar on row 3, columns 0..3
	g.field.SetCell(3, 0, 5)     // blocks the rotated bar in column 3

	g.Step(core.PressedFrame(core.ActionRotate), 0.01)

	assert.Equal(t, GetShape(1), g.Active())
	assert.Equal(t, Point{X: 0, Y: 0}, g.Cursor(), "no wall kick")
}

func TestSwapOncePerPiece(t *testing.T) {
	g, _ := startedGame(t, 17)
	active, next := g.Active(), g.Next()

	g.Step(core.PressedFrame(core.ActionLeft), 0.01)
	g.Step(core.PressedFrame(core.ActionSwap), 0.01)

	assert.Equal(t, next, g.Active())
	assert.Equal(t, active, g.Next())
	assert.Equal(t, Point{X: 3, Y: 14}, g.Cursor(), "swap resets the cursor")
	assert.False(t, g.CanSwap())

	g.Step(core.PressedFrame(core.ActionSwap), 0.01)
	assert.Equal(t, next, g.Active(), "second swap is ignored")

	g.Step(core.PressedFrame(core.ActionHardDrop), 0.01)
	assert.True(t, g.CanSwap(), "spawn re-enables swap")
}

func TestPauseFreezesTimers(t *testing.T) {
	g, _ := startedGame(t, 19)
	g.Step(idle(), 0.25)

	g.Step(core.PressedFrame(core.ActionBack), 0.25)
	require.Equal(t, PhasePaused, g.Phase())
	assert.True(t, g.State().Paused)
	elapsed, y := g.Elapsed(), g.Cursor().Y

	for i := 0; i < 10; i++ {
		g.Step(core.PressedFrame(core.ActionLeft, core.ActionHardDrop), 5)
	}
	assert.Equal(t, elapsed, g.Elapsed())
	assert.Equal(t, y, g.Cursor().Y)
	assert.Zero(t, countFilled(g.Field()))

	g.Step(core.PressedFrame(core.ActionBack), 0.01)
	assert.Equal(t, PhasePlaying, g.Phase())
}

func TestPauseSkipsRestOfFrame(t *testing.T) {
	g, _ := startedGame(t, 19)
	g.sinceGravity = 10

	g.Step(core.PressedFrame(core.ActionBack), 0.01)

	assert.Equal(t, PhasePaused, g.Phase())
	assert.Equal(t, 14, g.Cursor().Y, "gravity does not run on the pause frame")
}

func TestScoreTable(t *testing.T) {
	want := []int{0, 100, 300, 500, 800}

	for n := 0; n <= 4; n++ {
		g, rec := startedGame(t, 23)
		for row := 0; row < n; row++ {
			fillRow(&g.field, row, 1)
		}
		g.score = 1000
		before := g.GravityInterval()

		res := g.Step(idle(), 0)

		assert.Equal(t, n, res.LinesCleared)
		assert.Equal(t, 1000+want[n], g.Score(), "%d lines", n)
		assert.Equal(t, n, g.Lines())
		assert.InDelta(t, before*math.Pow(0.97, float64(n)), g.GravityInterval(), 1e-12)
		if n > 0 {
			assert.Less(t, g.GravityInterval(), before)
			assert.Equal(t, 1, rec.count(core.SoundLineClear))
		} else {
			assert.Zero(t, rec.count(core.SoundLineClear))
		}
	}
}

func TestSpeedUpCompounds(t *testing.T) {
	g, _ := startedGame(t, 29)

	fillRow(&g.field, 0, 1)
	g.Step(idle(), 0)
	fillRow(&g.field, 0, 1)
	fillRow(&g.field, 1, 1)
	g.Step(idle(), 0)

	assert.InDelta(t, 0.8*math.Pow(0.97, 3), g.GravityInterval(), 1e-12)
}

func TestFixedDifficultyKeepsInterval(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	config.ApplyTetrisPreset(&cfg, config.DifficultyFixed)
	g := NewWithConfig(cfg)
	g.Reset(core.RuntimeConfig{Seed: 1})
	g.Step(core.PressedFrame(core.ActionConfirm), dt)

	fillRow(&g.field, 0, 1)
	g.Step(idle(), 0)

	assert.Equal(t, 100, g.Score())
	assert.Equal(t, 0.8, g.GravityInterval())
}

func TestStackOutOnSpawn(t *testing.T) {
	g, rec := startedGame(t, 31)
	for row := 14; row < Height; row++ {
		for col := 3; col < 7; col++ {
			g.field.SetCell(col, row, 6)
		}
	}

	g.spawn()

	assert.Equal(t, PhaseGameOver, g.Phase())
	assert.True(t, g.State().GameOver)
	assert.Equal(t, 1, rec.count(core.SoundGameOver))
}

func TestStackOutAfterLock(t *testing.T) {
	g, rec := startedGame(t, 31)
	for row := 14; row < Height; row++ {
		for col := 3; col < 7; col++ {
			g.field.SetCell(col, row, 6)
		}
	}
	g.cursor = Point{X: 3, Y: 0}

	g.Step(core.PressedFrame(core.ActionHardDrop, core.ActionLeft), 0.01)

	assert.Equal(t, PhaseGameOver, g.Phase())
	assert.Equal(t, 1, rec.count(core.SoundGameOver))
	assert.Equal(t, Point{X: 3, Y: 14}, g.Cursor())
}

func TestStackOutAfterSwap(t *testing.T) {
	g, _ := startedGame(t, 37)
	g.cursor = Point{X: 3, Y: 0}
	for row := 14; row < Height; row++ {
		for col := 3; col < 7; col++ {
			g.field.SetCell(col, row, 6)
		}
	}

	g.Step(core.PressedFrame(core.ActionSwap), 0.01)
	assert.Equal(t, PhaseGameOver, g.Phase())
}

func TestRestartFromGameOver(t *testing.T) {
	g, _ := startedGame(t, 41)
	g.score = 1234
	g.lines = 9
	g.field.SetCell(0, 0, 1)
	g.interval = 0.1
	g.phase = PhaseGameOver

	g.Step(idle(), 1)
	assert.Equal(t, PhaseGameOver, g.Phase())

	g.Step(core.PressedFrame(core.ActionConfirm), 0.01)

	assert.Equal(t, PhasePlaying, g.Phase())
	assert.Zero(t, g.Score())
	assert.Zero(t, g.Lines())
	assert.Zero(t, g.Elapsed())
	assert.Zero(t, countFilled(g.Field()))
	assert.Equal(t, 0.8, g.GravityInterval())
}

func TestMusicFollowsFill(t *testing.T) {
	g, rec := startedGame(t, 43)

	g.Step(idle(), 0.01)
	require.NotEmpty(t, rec.volumes)
	assert.InDelta(t, 0.2, rec.volumes[len(rec.volumes)-1], 1e-12)

	for row := 0; row < Height/2; row++ {
		for col := 0; col < Width-1; col++ {
			g.field.SetCell(col, row, 1)
		}
	}
	g.Step(idle(), 0.01)
	fill := float64((Width-1)*Height/2) / float64(Width*Height)
	assert.InDelta(t, 0.2+0.8*fill, rec.volumes[len(rec.volumes)-1], 1e-12)
}

func TestNilAudioIsSilent(t *testing.T) {
	g := NewWithConfig(config.DefaultTetrisConfig())
	g.Reset(core.RuntimeConfig{Seed: 1})

	assert.NotPanics(t, func() {
		g.Step(core.PressedFrame(core.ActionConfirm), dt)
		g.Step(core.PressedFrame(core.ActionHardDrop), dt)
	})
}

func TestDeterminism(t *testing.T) {
	script := func(i int, g *Game) core.InputFrame {
		if g.Phase() != PhasePlaying {
			return core.PressedFrame(core.ActionConfirm)
		}
		switch i % 11 {
		case 0:
			return core.PressedFrame(core.ActionLeft)
		case 2:
			return core.PressedFrame(core.ActionRotate)
		case 4:
			return core.HeldFrame(core.ActionRight)
		case 6:
			return core.HeldFrame(core.ActionDown)
		case 9:
			return core.PressedFrame(core.ActionHardDrop)
		}
		return idle()
	}

	g1, _ := newGame(t, 12345)
	g2, _ := newGame(t, 12345)

	for i := 0; i < 3000; i++ {
		g1.Step(script(i, g1), dt)
		g2.Step(script(i, g2), dt)
		if i%100 == 0 {
			require.Equal(t, g1.Snapshot(), g2.Snapshot(), "frame %d", i)
		}
	}
	assert.Equal(t, g1.Snapshot(), g2.Snapshot())
	assert.Equal(t, uint64(3000), g1.Snapshot().Frame)
}

func TestFieldNeverHoldsFullRowsAfterStep(t *testing.T) {
	g, _ := startedGame(t, 99)
	for i := 0; i < 2000; i++ {
		in := idle()
		switch {
		case g.Phase() != PhasePlaying:
			in = core.PressedFrame(core.ActionConfirm)
		case i%5 == 0:
			in = core.PressedFrame(core.ActionHardDrop)
		case i%3 == 0:
			in = core.PressedFrame(core.ActionLeft)
		case i%7 == 0:
			in = core.PressedFrame(core.ActionRight, core.ActionRotate)
		}
		g.Step(in, dt)

		for row := 0; row < Height; row++ {
			require.False(t, g.Field().IsRowFull(row), "frame %d row %d", i, row)
		}
		for _, v := range g.Field().Cells() {
			require.LessOrEqual(t, v, uint8(ShapeCount))
		}
	}
}

func TestRenderPhases(t *testing.T) {
	g, _ := newGame(t, 1)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()
	assert.Contains(t, out, "TETRIS")
	assert.Contains(t, out, "Enter  start")

	g.Step(core.PressedFrame(core.ActionConfirm), dt)
	screen.Clear()
	g.Render(screen)
	out = screen.String()
	assert.Contains(t, out, "Score")
	assert.Contains(t, out, "Next")
	assert.NotContains(t, out, "Enter  start")
	assert.Contains(t, out, string(blockGlyph))

	g.Step(core.PressedFrame(core.ActionBack), dt)
	screen.Clear()
	g.Render(screen)
	assert.Contains(t, screen.String(), "PAUSED")
}

func TestRenderGameOver(t *testing.T) {
	g, _ := startedGame(t, 1)
	g.score = 4200
	g.phase = PhaseGameOver

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	assert.Contains(t, out, "GAME OVER")
	assert.Contains(t, out, "Score 4200")
}

func TestRenderTooSmall(t *testing.T) {
	g, _ := newGame(t, 1)
	screen := core.NewScreen(20, 10)
	g.Render(screen)
	assert.True(t, strings.Contains(screen.String(), "Window too small"))
}

func TestRenderFieldCellColor(t *testing.T) {
	g, _ := startedGame(t, 1)
	g.field.SetCell(0, 0, 6)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	board := core.NewRect((80-minScreenW)/2, (24-minScreenH)/2, boardW, boardH)
	x, y := cellOrigin(board, 0, 0)
	cell := screen.GetCell(x, y)
	assert.Equal(t, blockGlyph, cell.Rune)
	assert.Equal(t, core.ColorGreen, cell.Color)
}
