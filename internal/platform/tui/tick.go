// Package tui provides the Bubble Tea integration for the game.
// It handles the terminal UI loop, input mapping, and score bookkeeping.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxFrameDT caps the simulated time per tick so a stalled terminal does not
// drop a piece several rows at once.
const maxFrameDT = 0.25

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDelta returns the seconds between two ticks, falling back to the
// nominal interval for the first tick.
func frameDelta(last, now time.Time, tickRate int) float64 {
	if tickRate <= 0 {
		tickRate = 60
	}
	if last.IsZero() {
		return 1.0 / float64(tickRate)
	}
	dt := now.Sub(last).Seconds()
	if dt < 0 {
		return 0
	}
	return min(dt, maxFrameDT)
}
