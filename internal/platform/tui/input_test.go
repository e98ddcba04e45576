package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/board-runner/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionJump, false},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump, false},
		{"w", runeKey("w"), core.ActionJump, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"r", runeKey("r"), core.ActionRestart, false},
		{"b", runeKey("b"), core.ActionBack, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"ctrl+s", tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionScreenshot, false},
		{"q", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey("x"), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.action || quit != tc.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tc.msg.String(), action, quit, tc.action, tc.quit)
			}
		})
	}
}

func TestMapMouse(t *testing.T) {
	km := NewKeyMapper()

	press := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	if km.MapMouse(press) != core.ActionJump {
		t.Error("left press should jump")
	}
	release := tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	if km.MapMouse(release) != core.ActionNone {
		t.Error("release should not jump")
	}
	motion := tea.MouseMsg{Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}
	if km.MapMouse(motion) != core.ActionNone {
		t.Error("motion should not jump")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey("q"), MenuActionQuit},
		{runeKey("x"), MenuActionNone},
	}

	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
		}
	}
}

func TestFrameScheduler(t *testing.T) {
	s := NewFrameScheduler(0)
	if s.Interval() != time.Second/60 {
		t.Errorf("Interval() = %v, expected default 60 fps", s.Interval())
	}

	if s.Cmd() != nil {
		t.Error("Cmd() without a pending frame should be nil")
	}

	fired := 0
	s.RequestFrame(func() { fired++ })
	// A newer request replaces the pending one
	s.RequestFrame(func() { fired += 10 })
	if !s.Pending() {
		t.Fatal("frame should be pending")
	}

	cmd := s.Cmd()
	if cmd == nil {
		t.Fatal("Cmd() with a pending frame should tick")
	}
	if s.Cmd() != nil {
		t.Error("only one tick may be in flight")
	}

	raw := cmd()
	msg, ok := raw.(FrameMsg)
	if !ok {
		t.Fatalf("tick produced %T, expected FrameMsg", raw)
	}
	if !s.Owns(msg) {
		t.Error("scheduler should own its own tick")
	}
	if NewFrameScheduler(60).Owns(msg) {
		t.Error("another scheduler should not own the tick")
	}

	s.Fire()
	if fired != 10 {
		t.Errorf("fired = %d, expected only the latest frame to run", fired)
	}
	if s.Pending() {
		t.Error("frame should be consumed")
	}

	// Firing with nothing pending is a no-op
	s.Fire()
	if fired != 10 {
		t.Errorf("fired = %d after empty Fire", fired)
	}
}

func TestTextSlot(t *testing.T) {
	s := NewTextSlot()
	if !s.Visible() || s.Text() != "" {
		t.Errorf("new slot = (%q, %v), expected empty and visible", s.Text(), s.Visible())
	}
	s.SetText("Score: 5")
	s.SetVisible(false)
	if s.Text() != "Score: 5" || s.Visible() {
		t.Errorf("slot = (%q, %v), expected (Score: 5, false)", s.Text(), s.Visible())
	}
}
