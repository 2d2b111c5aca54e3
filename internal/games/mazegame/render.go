package mazegame

import (
	"fmt"

	"github.com/vovakirdan/gravity-maze/internal/core"
	"github.com/vovakirdan/gravity-maze/internal/maze"
)

const (
	hudHeight    = 2 // title line and separator
	footerHeight = 1
	minButtonH   = 3 // box border plus one label row
)

var trophyArt = []string{
	" .-=-. ",
	"(|   |)",
	" '._.' ",
	"  _|_  ",
	" [___] ",
}

// view projects world coordinates onto terminal cells: each grid cell
// becomes cellW columns and one row.
type view struct {
	offX, offY int
	cellW      int
	cellSize   int
	width      int // map width in columns
	height     int // map height in rows
	fits       bool
}

func newView(g *maze.Grid, cellW, screenW, screenH int) view {
	v := view{
		cellW:    cellW,
		cellSize: g.CellSize(),
		width:    g.Cols() * cellW,
		height:   g.Rows(),
	}
	v.fits = screenW >= v.width && screenH >= v.height+hudHeight+footerHeight
	v.offX = max((screenW-v.width)/2, 0)
	v.offY = hudHeight
	return v
}

func (v view) col(x int) int {
	return v.offX + core.FloorDiv(x*v.cellW, v.cellSize)
}

func (v view) row(y int) int {
	return v.offY + core.FloorDiv(y, v.cellSize)
}

// rect projects a world rect, growing it to at least minW×minH cells
// around its center.
func (v view) rect(r core.Rect, minW, minH int) core.Rect {
	x0, y0 := v.col(r.X), v.row(r.Y)
	x1, y1 := v.col(r.Right()), v.row(r.Bottom())
	out := core.NewRect(x0, y0, x1-x0, y1-y0)
	if out.W < minW {
		out.X -= (minW - out.W) / 2
		out.W = minW
	}
	if out.H < minH {
		out.Y -= (minH - out.H) / 2
		out.H = minH
	}
	return out
}

// world maps a terminal cell to the world point at its center.
func (v view) world(col, row int) core.Point {
	half := v.cellSize / v.cellW / 2
	return core.Point{
		X: (col-v.offX)*v.cellSize/v.cellW + half,
		Y: (row-v.offY)*v.cellSize + v.cellSize/2,
	}
}

// visibleButtons returns the buttons shown in the current phase.
func (g *Game) visibleButtons() []Button {
	switch g.phase {
	case PhaseTitle:
		return []Button{ButtonPlay}
	case PhaseWon:
		return []Button{ButtonMenu, ButtonExit}
	default:
		return nil
	}
}

func (g *Game) buttonBox(b Button) core.Rect {
	return g.view.rect(g.layout.ButtonRect(b), len(b.String())+6, minButtonH)
}

// ScreenToWorld converts a terminal cell to world coordinates. A cell
// inside a drawn button maps to that button's center, since a button's
// box can be larger on screen than its world hit area.
func (g *Game) ScreenToWorld(col, row int) core.Point {
	for _, b := range g.visibleButtons() {
		if g.buttonBox(b).Contains(col, row) {
			cx, cy := g.layout.ButtonRect(b).Center()
			return core.Point{X: cx, Y: cy}
		}
	}
	return g.view.world(col, row)
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if !g.view.fits {
		need := fmt.Sprintf("Need %dx%d", g.view.width, g.view.height+hudHeight+footerHeight)
		g.renderOverlay(dst, "Window too small", need)
		return
	}

	switch g.phase {
	case PhaseTitle:
		g.renderTitle(dst)
	case PhasePlaying:
		g.renderMap(dst)
		g.renderActor(dst)
		if g.paused {
			g.renderOverlay(dst, "Paused", "Press P to continue")
		}
	case PhaseWon:
		g.renderWon(dst)
	case PhaseExit:
		g.renderOverlay(dst, "Goodbye", "")
	}

	g.renderFooter(dst)
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := " " + g.level.Title
	switch g.phase {
	case PhasePlaying:
		if g.opts.ShowTimer {
			hud += fmt.Sprintf(" · Time: %.3fs", float64(g.ElapsedMS())/1000)
		}
		if g.paused {
			hud += "  [PAUSED]"
		}
	case PhaseWon:
		hud += fmt.Sprintf(" · Finished in %.3fs", float64(g.lastMS)/1000)
	}
	dst.DrawText(0, 0, hud, core.ColorTitle)
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorMuted)
}

func (g *Game) renderFooter(dst *core.Screen) {
	var hint string
	switch g.phase {
	case PhaseTitle:
		hint = "Enter or click Play to start · Q quit"
	case PhasePlaying:
		hint = "Arrows/WASD move · P pause · R restart · B menu · Q quit"
	case PhaseWon:
		hint = "←/→ choose · Enter select · R play again"
	}
	dst.DrawTextCentered(dst.Height()-1, hint, core.ColorMuted)
}

// renderMap draws walls and goal cells.
func (g *Game) renderMap(dst *core.Screen) {
	grid := g.level.Grid()
	grid.Each(func(col, row int, c maze.Cell) bool {
		var fill rune
		var color core.Color
		switch c {
		case maze.CellWall:
			fill, color = '█', core.ColorWall
		case maze.CellGoal:
			fill, color = '▒', core.ColorGoal
		default:
			return true
		}
		r := grid.CellRect(col, row)
		dst.FillRect(core.NewRect(g.view.col(r.X), g.view.row(r.Y), g.view.cellW, 1), fill, color)
		return true
	})
}

func (g *Game) renderActor(dst *core.Screen) {
	cx, cy := g.actor.Rect().Center()
	dst.SetColored(g.view.col(cx), g.view.row(cy), g.facing.Glyph(), core.ColorPlayer)
}

func (g *Game) renderTitle(dst *core.Screen) {
	t := g.layout.Title
	dst.DrawTextCenteredAt(g.view.col(t.X), g.view.row(t.Y), "GRAVITY MAZE", core.ColorTitle)
	dst.DrawTextCenteredAt(g.view.col(t.X), g.view.row(t.Y)+2, g.level.Title, core.ColorMuted)
	g.renderButton(dst, ButtonPlay, core.ColorButtonPlay)
}

func (g *Game) renderWon(dst *core.Screen) {
	b := g.layout.Banner
	if row := g.view.row(int(g.bannerY)); row >= hudHeight {
		dst.DrawTextCenteredAt(g.view.col(b.X), row, "YOU WIN!", core.ColorTitle)
	}

	g.renderButton(dst, ButtonMenu, core.ColorButtonMenu)
	g.renderButton(dst, ButtonExit, core.ColorButtonPlay)

	tt := g.layout.TimeText
	dst.DrawTextCenteredAt(g.view.col(tt.X), g.view.row(tt.Y), FormatTime(g.lastMS), core.ColorTitle)

	tr := g.layout.Trophy
	top := g.view.row(tr.Y) - len(trophyArt)/2
	for i, line := range trophyArt {
		dst.DrawTextCenteredAt(g.view.col(tr.X), top+i, line, core.ColorTrophy)
	}
}

func (g *Game) renderButton(dst *core.Screen, b Button, color core.Color) {
	box := g.buttonBox(b)
	dst.FillRect(box, ' ', color)
	dst.DrawBox(box, color)

	label := b.String()
	if g.focus == b {
		label = "▸ " + label + " ◂"
	}
	cx, cy := box.Center()
	dst.DrawTextCenteredAt(cx, cy, label, color)
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := core.CenteredRect(dst.Width()/2, dst.Height()/2, w, 5)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorMuted)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorTitle)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorDefault)
}
