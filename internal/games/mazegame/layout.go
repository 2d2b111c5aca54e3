package mazegame

import "github.com/vovakirdan/gravity-maze/internal/core"

// Positions below are for a 600×600 world and scale with the level size.
const refSize = 600

// Button identifies a clickable menu button.
type Button int

const (
	ButtonNone Button = iota
	ButtonPlay
	ButtonMenu
	ButtonExit
)

// String returns the button label.
func (b Button) String() string {
	switch b {
	case ButtonPlay:
		return "Play"
	case ButtonMenu:
		return "Main Menu"
	case ButtonExit:
		return "Exit"
	default:
		return ""
	}
}

// Layout holds the world-space positions of every screen element.
// Points are centers; rects are button hit areas.
type Layout struct {
	W, H int

	Title    core.Point
	Banner   core.Point
	Trophy   core.Point
	TimeText core.Point

	Play core.Rect
	Menu core.Rect
	Exit core.Rect
}

// LayoutFor scales the screen layout to a w×h world.
func LayoutFor(w, h int) Layout {
	sx := func(v int) int { return v * w / refSize }
	sy := func(v int) int { return v * h / refSize }
	rect := func(x, y, rw, rh int) core.Rect {
		return core.NewRect(sx(x), sy(y), sx(rw), sy(rh))
	}

	return Layout{
		W:        w,
		H:        h,
		Title:    core.Point{X: sx(300), Y: sy(80)},
		Banner:   core.Point{X: sx(300), Y: sy(75)},
		Trophy:   core.Point{X: sx(300), Y: sy(450)},
		TimeText: core.Point{X: sx(300), Y: sy(300)},
		Play:     rect(250, 240, 100, 50),
		Menu:     rect(50, 200, 200, 50),
		Exit:     rect(400, 200, 100, 50),
	}
}

// ButtonRect returns the hit area of b.
func (l Layout) ButtonRect(b Button) core.Rect {
	switch b {
	case ButtonPlay:
		return l.Play
	case ButtonMenu:
		return l.Menu
	case ButtonExit:
		return l.Exit
	default:
		return core.Rect{}
	}
}

// Hit returns which of the given buttons contains p.
func (l Layout) Hit(p core.Point, buttons ...Button) Button {
	for _, b := range buttons {
		if l.ButtonRect(b).Contains(p.X, p.Y) {
			return b
		}
	}
	return ButtonNone
}
