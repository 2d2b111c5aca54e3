package gui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/gravity-maze/internal/core"
	"github.com/vovakirdan/gravity-maze/internal/games/mazegame"
	"github.com/vovakirdan/gravity-maze/internal/maze"
)

const gameTitle = "Gravity Maze"

var (
	titleBackground = color.RGBA{175, 238, 238, 255}
	playBackground  = color.RGBA{255, 255, 255, 255}
	labelColor      = color.RGBA{0, 0, 0, 255}
	shadeColor      = color.RGBA{0, 0, 0, 120}
)

// palette maps core.Color to window colors.
var palette = map[core.Color]color.RGBA{
	core.ColorDefault:    {0, 0, 0, 255},
	core.ColorWall:       {0, 255, 0, 255},
	core.ColorGoal:       {255, 69, 0, 255},
	core.ColorPlayer:     {0, 0, 255, 255},
	core.ColorButtonPlay: {255, 0, 0, 255},
	core.ColorButtonMenu: {0, 255, 0, 255},
	core.ColorTitle:      {0, 0, 0, 255},
	core.ColorTrophy:     {255, 215, 0, 255},
	core.ColorMuted:      {90, 90, 90, 255},
}

func rgba(c core.Color) color.RGBA {
	if v, ok := palette[c]; ok {
		return v
	}
	return palette[core.ColorDefault]
}

// hovered lightens a button color under the cursor.
func hovered(c color.RGBA) color.RGBA {
	mix := func(v uint8) uint8 { return v + (255-v)/3 }
	return color.RGBA{mix(c.R), mix(c.G), mix(c.B), c.A}
}

func backgroundFor(p mazegame.Phase) color.RGBA {
	if p == mazegame.PhaseTitle {
		return titleBackground
	}
	return playBackground
}

// Draw renders the current snapshot.
func (w *Window) Draw(screen *ebiten.Image) {
	snap := w.game.Snapshot()
	layout := w.game.Layout()
	screen.Fill(backgroundFor(snap.Phase))

	switch snap.Phase {
	case mazegame.PhaseTitle:
		w.drawText(screen, gameTitle, layout.Title, 3, rgba(core.ColorTitle))
		if t := w.game.Title(); t != gameTitle {
			sub := core.Point{X: layout.Title.X, Y: layout.Title.Y + 45}
			w.drawText(screen, t, sub, 1.5, rgba(core.ColorMuted))
		}
		w.drawButton(screen, layout, mazegame.ButtonPlay, core.ColorButtonPlay, snap.Focus)
	case mazegame.PhasePlaying:
		w.drawMaze(screen)
		w.drawActor(screen, snap.Actor, snap.Facing)
		if w.game.Options().ShowTimer {
			w.drawText(screen, mazegame.FormatTime(snap.ElapsedMS), core.Point{X: layout.W / 2, Y: 12}, 1, rgba(core.ColorTitle))
		}
		if snap.Paused {
			vector.DrawFilledRect(screen, 0, 0, float32(layout.W), float32(layout.H), shadeColor, false)
			w.drawText(screen, "Paused", core.Point{X: layout.W / 2, Y: layout.H / 2}, 3, playBackground)
		}
	case mazegame.PhaseWon:
		w.drawText(screen, "You Win!", core.Point{X: layout.Banner.X, Y: snap.BannerY}, 4, rgba(core.ColorTitle))
		w.drawButton(screen, layout, mazegame.ButtonMenu, core.ColorButtonMenu, snap.Focus)
		w.drawButton(screen, layout, mazegame.ButtonExit, core.ColorButtonPlay, snap.Focus)
		w.drawText(screen, mazegame.FormatTime(snap.LastMS), layout.TimeText, 2, rgba(core.ColorTitle))
		drawTrophy(screen, layout.Trophy, layout.W/6)
	}
}

func (w *Window) drawText(dst *ebiten.Image, s string, at core.Point, scale float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(at.X), float64(at.Y))
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(dst, s, w.face, op)
}

func (w *Window) drawButton(dst *ebiten.Image, l mazegame.Layout, b mazegame.Button, c core.Color, focus mazegame.Button) {
	r := l.ButtonRect(b)
	fill := rgba(c)
	if r.Contains(w.cursor.X, w.cursor.Y) {
		fill = hovered(fill)
	}
	x, y, bw, bh := float32(r.X), float32(r.Y), float32(r.W), float32(r.H)
	vector.DrawFilledRect(dst, x, y, bw, bh, fill, false)
	if b == focus {
		vector.StrokeRect(dst, x, y, bw, bh, 3, labelColor, false)
	}
	cx, cy := r.Center()
	w.drawText(dst, b.String(), core.Point{X: cx, Y: cy}, 2, labelColor)
}

func (w *Window) drawMaze(dst *ebiten.Image) {
	grid := w.game.Level().Grid()
	fill := func(rects []core.Rect, c core.Color) {
		for _, r := range rects {
			vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), rgba(c), false)
		}
	}
	fill(grid.Walls(), core.ColorWall)
	fill(grid.Goals(), core.ColorGoal)
}

func (w *Window) drawActor(dst *ebiten.Image, a maze.Actor, f maze.Facing) {
	if w.sprites == nil {
		w.sprites = newSpriteSheet()
	}
	src := f.Source()
	frame := w.sprites.SubImage(image.Rect(src.X, src.Y, src.Right(), src.Bottom())).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	s := float64(a.Size) / maze.SpriteSize
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(float64(a.X), float64(a.Y))
	dst.DrawImage(frame, op)
}

// newSpriteSheet draws the 3×3 player sheet: a blue square per frame
// with a white marker pushed toward the facing direction.
func newSpriteSheet() *ebiten.Image {
	const n = maze.SpriteSize
	sheet := ebiten.NewImage(3*n, 3*n)
	marker := float32(n) / 4
	for f := maze.FacingIdle; f <= maze.FacingDownRight; f++ {
		src := f.Source()
		x, y := float32(src.X), float32(src.Y)
		vector.DrawFilledRect(sheet, x, y, n, n, rgba(core.ColorPlayer), false)

		dx := float32(src.X/n-1) * marker
		dy := float32(src.Y/n-1) * marker
		cx, cy := x+n/2+dx, y+n/2+dy
		vector.DrawFilledRect(sheet, cx-marker/2, cy-marker/2, marker, marker, playBackground, false)
	}
	return sheet
}

// drawTrophy draws a cup of the given width centered on at.
func drawTrophy(dst *ebiten.Image, at core.Point, width int) {
	gold := rgba(core.ColorTrophy)
	w := float32(width)
	x := float32(at.X) - w/2
	y := float32(at.Y) - w/2

	vector.DrawFilledRect(dst, x, y, w, w*0.5, gold, false)
	vector.StrokeRect(dst, x-w*0.15, y+w*0.08, w*0.15, w*0.25, w*0.05, gold, false)
	vector.StrokeRect(dst, x+w, y+w*0.08, w*0.15, w*0.25, w*0.05, gold, false)
	vector.DrawFilledRect(dst, x+w*0.42, y+w*0.5, w*0.16, w*0.3, gold, false)
	vector.DrawFilledRect(dst, x+w*0.2, y+w*0.8, w*0.6, w*0.15, gold, false)
}
