// Package tui provides the Bubble Tea front end: the game model, the level
// menu, the scoreboard, and an SSH server that serves them through Wish.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// Model ignores ticks scheduled by another model so a stale tick from a
// previous game cannot speed up the next one.
type TickMsg struct {
	At    time.Time
	Owner string
}

// tickCmd returns a Bubble Tea command that sends one tick message after period.
func tickCmd(owner string, period time.Duration) tea.Cmd {
	if period <= 0 {
		period = 200 * time.Millisecond
	}
	return tea.Tick(period, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Owner: owner}
	})
}
