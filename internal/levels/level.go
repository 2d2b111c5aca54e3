// Package levels loads maze layouts from YAML. A set of levels is built
// into the binary; more can be dropped into a directory.
package levels

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/gravity-maze/internal/core"
	"github.com/vovakirdan/gravity-maze/internal/maze"
)

// DefaultCellSize is the side of one grid cell in world units.
const DefaultCellSize = 30

// Validation errors.
var (
	ErrMissingID   = errors.New("levels: level has no id")
	ErrNotEnclosed = errors.New("levels: border must be walls")
	ErrNoGoal      = errors.New("levels: level has no goal cell")
	ErrBadStart    = errors.New("levels: start position overlaps a wall")
	ErrActorSize   = errors.New("levels: actor must be smaller than a cell")
	ErrStepTooBig  = errors.New("levels: step must be smaller than cell size minus actor size")
)

// Level is one maze layout as stored on disk.
type Level struct {
	ID       string     `yaml:"id"`
	Title    string     `yaml:"title"`
	Order    int        `yaml:"order"`
	CellSize int        `yaml:"cell_size"`
	Start    core.Point `yaml:"start"`
	Rows     []string   `yaml:"rows"`

	grid *maze.Grid
}

// Parse decodes a level and validates it for an actor of the given size
// moving step units per tick.
func Parse(data []byte, actorSize, step int) (*Level, error) {
	var l Level
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("levels: parse: %w", err)
	}
	if err := l.Validate(actorSize, step); err != nil {
		return nil, err
	}
	return &l, nil
}

// Validate fills defaults, builds the grid and checks that the level is
// playable: enclosed, with a goal and a wall-free start box, and a step
// short enough that no single move can carry the actor across a wall.
func (l *Level) Validate(actorSize, step int) error {
	if l.ID == "" {
		return ErrMissingID
	}
	if l.Title == "" {
		l.Title = l.ID
	}
	if l.CellSize == 0 {
		l.CellSize = DefaultCellSize
	}
	if l.Start == (core.Point{}) {
		l.Start = core.Point{X: l.CellSize, Y: l.CellSize}
	}

	g, err := maze.ParseRows(l.Rows, l.CellSize)
	if err != nil {
		return fmt.Errorf("levels: %s: %w", l.ID, err)
	}
	if !g.Enclosed() {
		return fmt.Errorf("levels: %s: %w", l.ID, ErrNotEnclosed)
	}
	if g.Count(maze.CellGoal) == 0 {
		return fmt.Errorf("levels: %s: %w", l.ID, ErrNoGoal)
	}
	if actorSize <= 0 || actorSize >= l.CellSize {
		return fmt.Errorf("levels: %s: actor %d, cell %d: %w", l.ID, actorSize, l.CellSize, ErrActorSize)
	}
	if step >= l.CellSize-actorSize {
		return fmt.Errorf("levels: %s: step %d, cell %d, actor %d: %w", l.ID, step, l.CellSize, actorSize, ErrStepTooBig)
	}
	box := maze.NewActor(l.Start.X, l.Start.Y, actorSize).Rect()
	if g.HitsWall(box) || !contains(g.Bounds(), box) {
		return fmt.Errorf("levels: %s: start (%d, %d): %w", l.ID, l.Start.X, l.Start.Y, ErrBadStart)
	}

	l.grid = g
	return nil
}

// Grid returns the parsed grid. Nil until Validate succeeds.
func (l *Level) Grid() *maze.Grid {
	return l.grid
}

// Size returns the world-space size of the level.
func (l *Level) Size() (w, h int) {
	b := l.grid.Bounds()
	return b.W, b.H
}

func contains(outer, inner core.Rect) bool {
	return inner.X >= outer.X && inner.Y >= outer.Y &&
		inner.Right() <= outer.Right() && inner.Bottom() <= outer.Bottom()
}
