package maze

import "github.com/vovakirdan/gravity-maze/internal/core"

// Facing is the sprite frame chosen from the held directions.
type Facing int

const (
	FacingIdle Facing = iota
	FacingUp
	FacingDown
	FacingLeft
	FacingRight
	FacingUpLeft
	FacingUpRight
	FacingDownLeft
	FacingDownRight
)

// SpriteSize is the side of one spritesheet frame.
const SpriteSize = 20

type facingInfo struct {
	name  string
	glyph rune
	sx    int
	sy    int
}

// Spritesheet is a 3×3 grid of frames; idle sits in the middle.
var facings = [...]facingInfo{
	FacingIdle:      {"idle", '●', 20, 20},
	FacingUp:        {"up", '▲', 20, 0},
	FacingDown:      {"down", '▼', 20, 40},
	FacingLeft:      {"left", '◀', 0, 20},
	FacingRight:     {"right", '▶', 40, 20},
	FacingUpLeft:    {"up-left", '◤', 0, 0},
	FacingUpRight:   {"up-right", '◥', 40, 0},
	FacingDownLeft:  {"down-left", '◣', 0, 40},
	FacingDownRight: {"down-right", '◢', 40, 40},
}

// FacingFor selects the frame for exactly the held flags. Combinations
// other than a single direction or two adjacent ones show the idle frame.
func FacingFor(d Dir) Facing {
	switch d {
	case Dir{Up: true}:
		return FacingUp
	case Dir{Down: true}:
		return FacingDown
	case Dir{Left: true}:
		return FacingLeft
	case Dir{Right: true}:
		return FacingRight
	case Dir{Up: true, Left: true}:
		return FacingUpLeft
	case Dir{Up: true, Right: true}:
		return FacingUpRight
	case Dir{Down: true, Left: true}:
		return FacingDownLeft
	case Dir{Down: true, Right: true}:
		return FacingDownRight
	default:
		return FacingIdle
	}
}

func (f Facing) info() facingInfo {
	if f < 0 || int(f) >= len(facings) {
		return facings[FacingIdle]
	}
	return facings[f]
}

// String returns the facing name.
func (f Facing) String() string { return f.info().name }

// Glyph returns a terminal arrow for the facing.
func (f Facing) Glyph() rune { return f.info().glyph }

// Source returns the frame's region in the spritesheet.
func (f Facing) Source() core.Rect {
	i := f.info()
	return core.NewRect(i.sx, i.sy, SpriteSize, SpriteSize)
}
