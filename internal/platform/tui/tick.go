// Package tui is the terminal front end of the portal: the listing page,
// the game runner and the stats view, served locally or over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per frame. Seq identifies the game run that
// scheduled it so frames from a closed game are dropped.
type TickMsg struct {
	Time time.Time
	Seq  int
}

// tickCmd schedules the next frame at frameRate per second.
func tickCmd(frameRate, seq int) tea.Cmd {
	if frameRate <= 0 {
		frameRate = 30
	}
	interval := time.Second / time.Duration(frameRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Seq: seq}
	})
}
