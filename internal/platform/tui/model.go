package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// helpHeight is the number of rows reserved below the game for key help.
const helpHeight = 1

// Settings carries per-session options that are not part of the game's runtime config.
type Settings struct {
	Difficulty  string      // stored with each saved score
	HoldRelease float64     // seconds without a key event before a held key counts as released
	Logger      *log.Logger // nil discards
}

// elapsedReporter is implemented by games that track round duration.
type elapsedReporter interface {
	Elapsed() float64
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	settings   Settings
	logger     *log.Logger
	tracker    *core.InputTracker
	keys       KeyMap
	help       help.Model
	lastTick   time.Time
	gameState  core.GameState
	scoreboard ScoreboardModel
	showScores bool
	quitting   bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, settings Settings) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := settings.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:     game,
		screen:   core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpHeight, 1)),
		store:    store,
		config:   cfg,
		settings: settings,
		logger:   logger,
		tracker:  core.NewInputTracker(settings.HoldRelease),
		keys:     DefaultKeyMap(),
		help:     h,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showScores {
		return m.updateScoreboard(msg)
	}

	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionScoreboard:
		if !m.gameState.Started || m.gameState.GameOver {
			m.openScoreboard()
		}
		return m, nil
	}

	m.tracker.KeyDown(action)
	return m, nil
}

func (m *Model) openScoreboard() {
	m.scoreboard = NewScoreboardModel(m.store, m.game.ID(), m.settings.Difficulty,
		m.config.ScreenW, m.config.ScreenH)
	m.scoreboard.embedded = true
	m.showScores = true
	m.tracker.Reset()
}

func (m Model) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.scoreboard.Update(msg)
	if sb, ok := updated.(ScoreboardModel); ok {
		m.scoreboard = sb
	}
	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		m.showScores = false
		return m, nil
	}
	return m, cmd
}

// handleResize processes window resize events. The round keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-helpHeight, 1))
	m.help.Width = msg.Width

	if m.showScores {
		m.scoreboard.setSize(msg.Width, msg.Height)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	now := time.Time(msg)
	dt := frameDelta(m.lastTick, now, m.config.TickRate)
	m.lastTick = now

	if m.showScores {
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.tracker.Frame(dt), dt)
	m.gameState = result.State

	if !m.gameState.GameOver {
		m.scoreSaved = false
	} else if !m.scoreSaved {
		m.saveScore()
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScore records the finished round. Zero scores are not kept.
func (m *Model) saveScore() {
	m.scoreSaved = true
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}

	entry := storage.ScoreEntry{
		GameID:     m.game.ID(),
		Difficulty: m.settings.Difficulty,
		Player:     m.config.Player,
		Score:      m.gameState.Score,
		Lines:      m.gameState.Lines,
	}
	if r, ok := m.game.(elapsedReporter); ok {
		entry.Duration = time.Duration(r.Elapsed() * float64(time.Second))
	}

	if _, err := m.store.SaveScore(entry); err != nil {
		m.logger.Warn("Could not save score", "err", err)
		return
	}
	m.logger.Info("Score saved", "player", entry.Player, "score", entry.Score, "lines", entry.Lines)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("Screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".tetris", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("Screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("Screenshot failed", "err", err)
		return
	}
	m.logger.Info("Screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showScores {
		return m.scoreboard.View()
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, settings Settings) error {
	model := NewModel(game, store, cfg, settings)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
