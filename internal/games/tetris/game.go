// Package tetris implements the falling-block puzzle game: the shape catalog,
// the playfield and the frame-driven state machine that ties them together.
package tetris

import (
	"math/rand"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// GameID is the registry and score-storage identifier.
const GameID = "tetris"

// Phase is the state machine's current state.
type Phase int

const (
	PhaseStart Phase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Point is a field position. Y counts rows upward from the floor.
type Point struct {
	X, Y int
}

// resolvedConfig stores the configuration resolved by the CLI
var resolvedConfig *config.TetrisConfig

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset = config.DifficultyClassic

// SetConfig sets the configuration, already loaded and adjusted for preset,
// that games created with New play with.
func SetConfig(cfg config.TetrisConfig, preset config.DifficultyPreset) {
	resolvedConfig = &cfg
	difficultyPreset = preset
}

// Game implements the tetris state machine.
type Game struct {
	// Configuration
	override   *config.TetrisConfig
	cfg        config.TetrisConfig
	preset     config.DifficultyPreset
	difficulty *config.DifficultyManager
	runtime    core.RuntimeConfig
	rng        *rand.Rand
	audio      core.AudioSink

	// Pieces
	field   Field
	active  Shape
	next    Shape
	cursor  Point
	canSwap bool

	// Progress
	phase  Phase
	score  int
	lines  int
	pieces int
	frames uint64

	// Timers, in seconds
	elapsed      float64
	sinceGravity float64
	sinceSlide   float64
	sinceDrop    float64
	interval     float64
}

// New creates a game that plays with the config passed to SetConfig, or the
// built-in defaults when none was set.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game that uses cfg instead of loading from disk.
func NewWithConfig(cfg config.TetrisConfig) *Game {
	return &Game{override: &cfg}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset loads configuration and puts the game on its start screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	switch {
	case g.override != nil:
		g.cfg = *g.override
		g.preset = config.DifficultyClassic
	case resolvedConfig != nil:
		g.cfg = *resolvedConfig
		g.preset = difficultyPreset
	default:
		g.cfg = config.DefaultTetrisConfig()
		g.preset = config.DifficultyClassic
	}

	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.audio = runtime.AudioOrNop()

	g.field.Clear()
	g.active = GetShape(0)
	g.next = GetShape(0)
	g.cursor = g.spawnPoint()
	g.canSwap = false
	g.phase = PhaseStart
	g.score = 0
	g.lines = 0
	g.pieces = 0
	g.frames = 0
	g.resetTimers()
}

// Restart begins a new round: empty field, zero score, fresh pieces.
// The round may end immediately if the first piece cannot spawn.
func (g *Game) Restart() {
	g.field.Clear()
	g.score = 0
	g.lines = 0
	g.pieces = 0
	g.resetTimers()
	g.phase = PhasePlaying
	g.next = g.randomShape()
	g.spawn()
}

func (g *Game) resetTimers() {
	g.elapsed = 0
	g.sinceGravity = 0
	g.sinceSlide = 0
	g.sinceDrop = 0
	if g.difficulty != nil {
		g.interval = g.difficulty.InitialInterval(g.cfg.Timing.GravityInterval)
	}
}

func (g *Game) spawnPoint() Point {
	return Point{X: g.cfg.Spawn.X, Y: g.cfg.Spawn.Y}
}

func (g *Game) randomShape() Shape {
	return GetShape(uint8(g.rng.Intn(ShapeCount) + 1))
}

// spawn promotes the next shape to active and rolls a new next shape.
// A spawn that collides ends the round.
func (g *Game) spawn() {
	g.cursor = g.spawnPoint()
	g.active = g.next
	g.next = g.randomShape()
	g.canSwap = true
	g.checkStackOut()
}

func (g *Game) checkStackOut() {
	if g.field.CheckCollision(g.active.Mask, g.cursor.X, g.cursor.Y) {
		g.phase = PhaseGameOver
		g.audio.PlaySound(core.SoundGameOver)
	}
}

// Step advances the simulation by dt seconds.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	g.frames++

	var cleared int
	switch g.phase {
	case PhaseStart:
		g.stepStart(in)
	case PhasePlaying:
		cleared = g.stepPlaying(in, dt)
	case PhasePaused:
		g.stepPaused(in)
	case PhaseGameOver:
		g.stepGameOver(in)
	}

	return core.StepResult{State: g.State(), LinesCleared: cleared}
}

func (g *Game) stepStart(in core.InputFrame) {
	if in.Pressed(core.ActionConfirm) {
		g.Restart()
	}
}

func (g *Game) stepPaused(in core.InputFrame) {
	if in.Pressed(core.ActionBack) {
		g.phase = PhasePlaying
	}
}

func (g *Game) stepGameOver(in core.InputFrame) {
	if in.Pressed(core.ActionConfirm) {
		g.Restart()
	}
}

func (g *Game) stepPlaying(in core.InputFrame, dt float64) int {
	g.elapsed += dt
	g.sinceGravity += dt
	g.sinceSlide += dt
	g.sinceDrop += dt

	g.audio.SetMusicVolume(g.musicVolume())

	if paused := g.move(in); paused {
		return 0
	}
	return g.clearLines()
}

// move applies one frame of player input and gravity. It stops early once
// the round ends and reports whether the player paused.
func (g *Game) move(in core.InputFrame) (paused bool) {
	if in.Pressed(core.ActionSwap) && g.canSwap {
		Swap(&g.active, &g.next)
		g.cursor = g.spawnPoint()
		g.canSwap = false
		g.checkStackOut()
		if g.phase != PhasePlaying {
			return false
		}
	}

	if in.Pressed(core.ActionRotate) {
		rotated := Rotate(g.active)
		if !g.field.CheckCollision(rotated.Mask, g.cursor.X, g.cursor.Y) {
			g.active = rotated
		}
	}

	g.slide(in)

	if g.softDrop(in) && !g.descend() {
		g.lock()
		if g.phase != PhasePlaying {
			return false
		}
	}

	if in.Pressed(core.ActionHardDrop) {
		g.cursor.Y = g.GhostY()
		g.lock()
		if g.phase != PhasePlaying {
			return false
		}
	}

	if in.Pressed(core.ActionBack) {
		g.phase = PhasePaused
		return true
	}

	if g.sinceGravity > g.interval {
		g.sinceGravity = 0
		if !g.descend() {
			g.lock()
		}
	}
	return false
}

// slide moves the piece one column on press, then every QuickSlide seconds
// while the button stays held.
func (g *Game) slide(in core.InputFrame) {
	quick := g.sinceSlide >= g.cfg.Timing.QuickSlide
	dx := 0
	switch {
	case in.Pressed(core.ActionLeft):
		dx = -1
	case in.Pressed(core.ActionRight):
		dx = 1
	case in.Held(core.ActionLeft) && quick:
		dx = -1
	case in.Held(core.ActionRight) && quick:
		dx = 1
	}
	if dx == 0 {
		return
	}

	g.sinceSlide = 0
	if !g.field.CheckCollision(g.active.Mask, g.cursor.X+dx, g.cursor.Y) {
		g.cursor.X += dx
	}
}

// softDrop reports whether the player asked for a one-row descent this frame.
func (g *Game) softDrop(in core.InputFrame) bool {
	if in.Pressed(core.ActionDown) || (in.Held(core.ActionDown) && g.sinceDrop >= g.cfg.Timing.QuickDrop) {
		g.sinceDrop = 0
		return true
	}
	return false
}

// descend moves the piece down one row unless it would collide.
func (g *Game) descend() bool {
	if g.field.CheckCollision(g.active.Mask, g.cursor.X, g.cursor.Y-1) {
		return false
	}
	g.cursor.Y--
	return true
}

// lock writes the active piece into the field and spawns the next one.
func (g *Game) lock() {
	g.field.PlaceShape(g.active.Mask, g.active.ID, g.cursor.X, g.cursor.Y)
	g.pieces++
	g.audio.PlaySound(core.SoundLock)
	g.spawn()
	g.sinceGravity = 0
}

func (g *Game) clearLines() int {
	n := g.field.ClearFullLines()
	if n == 0 {
		return 0
	}

	g.interval = g.difficulty.NextInterval(g.interval, g.cfg.Timing.SpeedUp, n)
	g.score += g.lineScore(n)
	g.lines += n
	g.audio.PlaySound(core.SoundLineClear)
	return n
}

func (g *Game) lineScore(n int) int {
	table := g.cfg.Scoring.LineScores
	if len(table) == 0 {
		return 0
	}
	return table[core.Clamp(n, 0, len(table)-1)]
}

func (g *Game) musicVolume() float64 {
	lo, hi := g.cfg.Audio.MusicMin, g.cfg.Audio.MusicMax
	return core.ClampF(lo+(hi-lo)*g.field.FillFactor(), 0, 1)
}

// GhostY returns the row the active piece would lock at after a hard drop.
func (g *Game) GhostY() int {
	if g.active.Empty() {
		return g.cursor.Y
	}
	d := 1
	for !g.field.CheckCollision(g.active.Mask, g.cursor.X, g.cursor.Y-d) {
		d++
	}
	return g.cursor.Y - (d - 1)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Lines:    g.lines,
		GameOver: g.phase == PhaseGameOver,
		Paused:   g.phase == PhasePaused,
		Started:  g.phase != PhaseStart,
	}
}

// Phase returns the state machine's current state.
func (g *Game) Phase() Phase { return g.phase }

// Field returns the playfield. Callers must treat it as read-only.
func (g *Game) Field() *Field { return &g.field }

// Active returns the piece under player control.
func (g *Game) Active() Shape { return g.active }

// Next returns the piece that spawns after the active one.
func (g *Game) Next() Shape { return g.next }

// Cursor returns the bottom-left corner of the active piece's bounding box.
func (g *Game) Cursor() Point { return g.cursor }

// CanSwap reports whether the active piece may still be swapped.
func (g *Game) CanSwap() bool { return g.canSwap }

// Score returns the points earned this round.
func (g *Game) Score() int { return g.score }

// Lines returns the rows cleared this round.
func (g *Game) Lines() int { return g.lines }

// Elapsed returns the seconds spent in the playing state this round.
func (g *Game) Elapsed() float64 { return g.elapsed }

// GravityInterval returns the current seconds between automatic descents.
func (g *Game) GravityInterval() float64 { return g.interval }

// Difficulty returns the preset the config was loaded with.
func (g *Game) Difficulty() config.DifficultyPreset { return g.preset }

// Config returns the resolved configuration.
func (g *Game) Config() config.TetrisConfig { return g.cfg }
