package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key      string
		want     core.Action
		wantQuit bool
	}{
		{"w", core.ActionUp, false},
		{"up", core.ActionUp, false},
		{"s", core.ActionDown, false},
		{"down", core.ActionDown, false},
		{"a", core.ActionLeft, false},
		{"left", core.ActionLeft, false},
		{"d", core.ActionRight, false},
		{"right", core.ActionRight, false},
		{" ", core.ActionPrimary, false},
		{"enter", core.ActionConfirm, false},
		{"b", core.ActionBack, false},
		{"esc", core.ActionBack, false},
		{"p", core.ActionPause, false},
		{"r", core.ActionRestart, false},
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"x", core.ActionNone, false},
	}

	for _, tt := range tests {
		got, quit := km.MapKey(keyMsg(tt.key))
		if got != tt.want || quit != tt.wantQuit {
			t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tt.key, got, quit, tt.want, tt.wantQuit)
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key  string
		want MenuAction
	}{
		{"k", MenuActionUp},
		{"up", MenuActionUp},
		{"j", MenuActionDown},
		{"down", MenuActionDown},
		{"enter", MenuActionSelect},
		{" ", MenuActionSelect},
		{"tab", MenuActionStats},
		{"esc", MenuActionBack},
		{"q", MenuActionQuit},
		{"z", MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(keyMsg(tt.key)); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.key, got, tt.want)
		}
	}
}
