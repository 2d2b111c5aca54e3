package gui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/gravity-maze/internal/core"
)

// keyState answers keyboard queries for one frame.
type keyState interface {
	Pressed(k ebiten.Key) bool
	JustPressed(k ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) Pressed(k ebiten.Key) bool     { return ebiten.IsKeyPressed(k) }
func (ebitenKeys) JustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

// Directions are sampled while held.
var heldBindings = []struct {
	action core.Action
	keys   []ebiten.Key
}{
	{core.ActionUp, []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}},
	{core.ActionDown, []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}},
	{core.ActionLeft, []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}},
	{core.ActionRight, []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}},
}

// Everything else fires once per press.
var pressBindings = []struct {
	action core.Action
	keys   []ebiten.Key
}{
	{core.ActionConfirm, []ebiten.Key{ebiten.KeyEnter, ebiten.KeyNumpadEnter, ebiten.KeySpace}},
	{core.ActionPause, []ebiten.Key{ebiten.KeyP, ebiten.KeyEscape}},
	{core.ActionRestart, []ebiten.Key{ebiten.KeyR}},
	{core.ActionBack, []ebiten.Key{ebiten.KeyB}},
	{core.ActionQuit, []ebiten.Key{ebiten.KeyQ}},
}

// readKeys fills in the actions for the current frame.
func readKeys(ks keyState, in *core.InputFrame) {
	for _, b := range heldBindings {
		for _, k := range b.keys {
			if ks.Pressed(k) {
				in.Set(b.action)
				break
			}
		}
	}
	for _, b := range pressBindings {
		for _, k := range b.keys {
			if ks.JustPressed(k) {
				in.Set(b.action)
				break
			}
		}
	}
}
