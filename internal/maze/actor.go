package maze

import "github.com/vovakirdan/gravity-maze/internal/core"

// Actor is the player sprite: a square bounding box in world space.
type Actor struct {
	X, Y int // top-left corner
	Size int
}

// NewActor places an actor of the given size at (x, y).
func NewActor(x, y, size int) Actor {
	return Actor{X: x, Y: y, Size: size}
}

// Rect returns the actor's bounding box.
func (a Actor) Rect() core.Rect {
	return core.NewRect(a.X, a.Y, a.Size, a.Size)
}

// At returns a copy of the actor moved to (x, y).
func (a Actor) At(x, y int) Actor {
	a.X, a.Y = x, y
	return a
}

// Dir holds the directional flags sampled for one tick.
type Dir struct {
	Up, Down, Left, Right bool
}

// DirFromInput extracts the held directions from an input frame.
func DirFromInput(in core.InputFrame) Dir {
	return Dir{
		Up:    in.Has(core.ActionUp),
		Down:  in.Has(core.ActionDown),
		Left:  in.Has(core.ActionLeft),
		Right: in.Has(core.ActionRight),
	}
}

// Any reports whether any direction is held.
func (d Dir) Any() bool {
	return d.Up || d.Down || d.Left || d.Right
}

// Delta returns the unit movement per axis. Opposing flags cancel.
func (d Dir) Delta() (dx, dy int) {
	if d.Left {
		dx--
	}
	if d.Right {
		dx++
	}
	if d.Up {
		dy--
	}
	if d.Down {
		dy++
	}
	return dx, dy
}
