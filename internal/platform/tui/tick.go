// Package tui provides the Bubble Tea host for the snake engine.
// It handles the terminal UI loop, input mapping, timing and rendering.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger one simulation tick.
// Gen identifies the timer that produced it; ticks from a superseded timer
// (after pause, restart or leaving the game) are dropped.
type TickMsg struct {
	Gen  uint64
	Time time.Time
}

// tickGen hands out timer generations. It is process-wide so that a tick
// from a discarded game model can never match a newer one.
var tickGen atomic.Uint64

func nextGen() uint64 {
	return tickGen.Add(1)
}

// tickCmd schedules a single tick after interval. The game model
// reschedules after every tick, so interval changes apply immediately.
func tickCmd(interval time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
