// Package gui runs a level in a desktop window with Ebitengine. The game
// logic is the same mazegame.Game the terminal frontend drives; the window
// samples keys and clicks in world space and draws the world at its
// native size.
package gui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/gravity-maze/internal/core"
	"github.com/vovakirdan/gravity-maze/internal/games/mazegame"
	"github.com/vovakirdan/gravity-maze/internal/platform"
)

// DefaultScale is the window size multiplier for the world.
const DefaultScale = 1

// Window is the ebiten.Game for one level.
type Window struct {
	game  *mazegame.Game
	svc   platform.Services
	cfg   core.RuntimeConfig
	keys  keyState
	input core.InputFrame

	cursor  core.Point
	face    *text.GoXFace
	sprites *ebiten.Image
	done    bool
}

// New creates a window for game and resets it.
func New(game *mazegame.Game, svc platform.Services, cfg core.RuntimeConfig) *Window {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultTickRate
	}
	cfg.ScreenW, cfg.ScreenH = game.Level().Size()
	game.Reset(cfg)

	return &Window{
		game:  game,
		svc:   svc.WithDefaults(),
		cfg:   cfg,
		keys:  ebitenKeys{},
		input: core.NewInputFrame(),
		face:  text.NewGoXFace(basicfont.Face7x13),
	}
}

// Update samples input and advances the game by one tick.
func (w *Window) Update() error {
	x, y := ebiten.CursorPosition()
	click := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	return w.step(w.keys, core.Point{X: x, Y: y}, click)
}

func (w *Window) step(ks keyState, cursor core.Point, click bool) error {
	if w.done {
		return ebiten.Termination
	}

	w.cursor = cursor
	readKeys(ks, &w.input)
	if click {
		w.input.Click(cursor.X, cursor.Y)
	}

	result := w.game.Step(w.input)
	w.input.Clear()
	w.svc.Handle(w.game.ID(), result.Events)

	if result.State.Exit {
		w.svc.Audio.StopMusic()
		w.done = true
		return ebiten.Termination
	}
	return nil
}

// Layout reports the world size; Ebitengine scales it to the window.
func (w *Window) Layout(_, _ int) (int, int) {
	l := w.game.Layout()
	return l.W, l.H
}

// Run opens the window and plays game until it exits or the window
// is closed.
func Run(game *mazegame.Game, svc platform.Services, cfg core.RuntimeConfig, scale int) error {
	if scale <= 0 {
		scale = DefaultScale
	}
	w := New(game, svc, cfg)
	lw, lh := w.Layout(0, 0)

	ebiten.SetWindowSize(lw*scale, lh*scale)
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetTPS(w.cfg.TickRate)

	err := ebiten.RunGame(w)
	w.svc.Audio.StopMusic()
	return err
}
