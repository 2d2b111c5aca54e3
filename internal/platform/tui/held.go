package tui

import (
	"github.com/vovakirdan/gravity-maze/internal/core"
	"github.com/vovakirdan/gravity-maze/internal/platform"
)

// HeldKeys turns terminal key presses into held directions. Terminals
// report presses and auto-repeats but never releases, so a direction
// counts as held for a fixed number of ticks after its last press.
type HeldKeys struct {
	hold int
	left map[core.Action]int
}

// NewHeldKeys creates a tracker that holds each press for hold ticks.
func NewHeldKeys(hold int) *HeldKeys {
	if hold <= 0 {
		hold = platform.DefaultHoldTicks
	}
	return &HeldKeys{
		hold: hold,
		left: make(map[core.Action]int, 4),
	}
}

func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionUp:
		return core.ActionDown
	case core.ActionDown:
		return core.ActionUp
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	}
	return core.ActionNone
}

// Press starts or extends the hold of a direction. Pressing a direction
// releases its opposite, so reversing is immediate.
func (h *HeldKeys) Press(a core.Action) {
	if !IsDirection(a) {
		return
	}
	delete(h.left, opposite(a))
	h.left[a] = h.hold
}

// Apply sets every held direction on f and ages the holds by one tick.
func (h *HeldKeys) Apply(f *core.InputFrame) {
	for a, n := range h.left {
		f.Set(a)
		if n <= 1 {
			delete(h.left, a)
		} else {
			h.left[a] = n - 1
		}
	}
}

// Held reports whether a is currently held.
func (h *HeldKeys) Held(a core.Action) bool {
	return h.left[a] > 0
}

// Clear releases every direction.
func (h *HeldKeys) Clear() {
	clear(h.left)
}
