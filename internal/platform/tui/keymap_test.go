package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gravity-maze/internal/core"
	"github.com/vovakirdan/gravity-maze/internal/platform"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		want   core.Action
		isQuit bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"w", runeKey("w"), core.ActionUp, false},
		{"a", runeKey("a"), core.ActionLeft, false},
		{"s", runeKey("s"), core.ActionDown, false},
		{"d", runeKey("d"), core.ActionRight, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"space", runeKey(" "), core.ActionConfirm, false},
		{"esc pauses", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, false},
		{"p pauses", runeKey("p"), core.ActionPause, false},
		{"b goes back", runeKey("b"), core.ActionBack, false},
		{"r restarts", runeKey("r"), core.ActionRestart, false},
		{"q quits", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey("z"), core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, quit := km.MapKey(tt.msg)
			if got != tt.want || quit != tt.isQuit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), got, quit, tt.want, tt.isQuit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionTimes},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey("q"), MenuActionQuit},
		{runeKey("x"), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestHeldKeysExpire(t *testing.T) {
	h := NewHeldKeys(3)
	h.Press(core.ActionRight)

	for tick := 1; tick <= 3; tick++ {
		f := core.NewInputFrame()
		h.Apply(&f)
		if !f.Has(core.ActionRight) {
			t.Fatalf("tick %d: right should still be held", tick)
		}
	}

	f := core.NewInputFrame()
	h.Apply(&f)
	if f.Has(core.ActionRight) {
		t.Error("right should be released after the hold runs out")
	}
}

func TestHeldKeysRepeatExtends(t *testing.T) {
	h := NewHeldKeys(2)
	h.Press(core.ActionUp)

	f := core.NewInputFrame()
	h.Apply(&f)
	h.Press(core.ActionUp) // auto-repeat

	for tick := 1; tick <= 2; tick++ {
		f := core.NewInputFrame()
		h.Apply(&f)
		if !f.Has(core.ActionUp) {
			t.Fatalf("tick %d after repeat: up should be held", tick)
		}
	}
}

func TestHeldKeysOppositeReleases(t *testing.T) {
	h := NewHeldKeys(10)
	h.Press(core.ActionLeft)
	h.Press(core.ActionUp)
	h.Press(core.ActionRight)

	f := core.NewInputFrame()
	h.Apply(&f)
	if f.Has(core.ActionLeft) {
		t.Error("pressing right should release left")
	}
	if !f.Has(core.ActionRight) || !f.Has(core.ActionUp) {
		t.Error("right and up should both be held for diagonal movement")
	}
}

func TestHeldKeysIgnoresNonDirections(t *testing.T) {
	h := NewHeldKeys(0)
	if h.hold != platform.DefaultHoldTicks {
		t.Errorf("hold = %d, want default %d", h.hold, platform.DefaultHoldTicks)
	}

	h.Press(core.ActionPause)
	if h.Held(core.ActionPause) {
		t.Error("pause must not be held")
	}

	h.Press(core.ActionDown)
	h.Clear()
	if h.Held(core.ActionDown) {
		t.Error("Clear should release everything")
	}
}
