// Package maze implements the tile grid and the movement and collision
// resolver. It is pure logic: no rendering, no audio, no clocks.
package maze

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/gravity-maze/internal/core"
)

// Cell is a grid cell code.
type Cell uint8

const (
	CellOpen Cell = 0
	CellWall Cell = 1
	CellGoal Cell = 2
)

// String returns the cell name.
func (c Cell) String() string {
	switch c {
	case CellOpen:
		return "open"
	case CellWall:
		return "wall"
	case CellGoal:
		return "goal"
	default:
		return fmt.Sprintf("cell(%d)", uint8(c))
	}
}

// Errors returned when building a grid.
var (
	ErrEmptyGrid   = errors.New("maze: grid has no cells")
	ErrRaggedGrid  = errors.New("maze: rows have different lengths")
	ErrBadCellCode = errors.New("maze: unknown cell code")
	ErrBadCellSize = errors.New("maze: cell size must be positive")
)

// Grid is an immutable tile map. Cells are stored row-major in a flat
// slice: index = row*cols + col.
type Grid struct {
	cols     int
	rows     int
	cellSize int
	cells    []Cell

	walls []core.Rect
	goals []core.Rect
}

// NewGrid builds a grid from row-major cells. The slice is copied.
func NewGrid(cols, rows, cellSize int, cells []Cell) (*Grid, error) {
	if cols <= 0 || rows <= 0 {
		return nil, ErrEmptyGrid
	}
	if cellSize <= 0 {
		return nil, ErrBadCellSize
	}
	if len(cells) != cols*rows {
		return nil, fmt.Errorf("maze: expected %d cells, got %d: %w", cols*rows, len(cells), ErrRaggedGrid)
	}

	g := &Grid{
		cols:     cols,
		rows:     rows,
		cellSize: cellSize,
		cells:    make([]Cell, len(cells)),
	}
	copy(g.cells, cells)

	for i, c := range g.cells {
		col, row := i%cols, i/cols
		switch c {
		case CellOpen:
		case CellWall:
			g.walls = append(g.walls, g.CellRect(col, row))
		case CellGoal:
			g.goals = append(g.goals, g.CellRect(col, row))
		default:
			return nil, fmt.Errorf("maze: code %d at (%d, %d): %w", c, col, row, ErrBadCellCode)
		}
	}
	return g, nil
}

// ParseRows builds a grid from strings of '0', '1' and '2' digits,
// one string per row.
func ParseRows(lines []string, cellSize int) (*Grid, error) {
	if len(lines) == 0 || len(lines[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	cols := len(lines[0])
	cells := make([]Cell, 0, cols*len(lines))
	for row, line := range lines {
		if len(line) != cols {
			return nil, fmt.Errorf("maze: row %d has %d cells, expected %d: %w", row, len(line), cols, ErrRaggedGrid)
		}
		for col := 0; col < len(line); col++ {
			ch := line[col]
			if ch < '0' || ch > '2' {
				return nil, fmt.Errorf("maze: %q at (%d, %d): %w", ch, col, row, ErrBadCellCode)
			}
			cells = append(cells, Cell(ch-'0'))
		}
	}
	return NewGrid(cols, len(lines), cellSize, cells)
}

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// CellSize returns the side of one cell in world units.
func (g *Grid) CellSize() int { return g.cellSize }

// Bounds returns the world-space rectangle covered by the grid.
func (g *Grid) Bounds() core.Rect {
	return core.NewRect(0, 0, g.cols*g.cellSize, g.rows*g.cellSize)
}

// InBounds reports whether (col, row) is a grid cell.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

// At returns the cell at (col, row). Off-grid positions read as walls.
func (g *Grid) At(col, row int) Cell {
	if !g.InBounds(col, row) {
		return CellWall
	}
	return g.cells[row*g.cols+col]
}

// CellRect returns the world-space region of cell (col, row).
func (g *Grid) CellRect(col, row int) core.Rect {
	return core.NewRect(col*g.cellSize, row*g.cellSize, g.cellSize, g.cellSize)
}

// CellAt returns the cell coordinates containing world point (x, y).
func (g *Grid) CellAt(x, y int) (col, row int) {
	return core.FloorDiv(x, g.cellSize), core.FloorDiv(y, g.cellSize)
}

// Walls returns the regions of all wall cells in row-major order.
func (g *Grid) Walls() []core.Rect { return g.walls }

// Goals returns the regions of all goal cells in row-major order.
func (g *Grid) Goals() []core.Rect { return g.goals }

// Each calls fn for every cell in row-major order until fn returns false.
func (g *Grid) Each(fn func(col, row int, c Cell) bool) {
	for i, c := range g.cells {
		if !fn(i%g.cols, i/g.cols, c) {
			return
		}
	}
}

// Count returns how many cells hold the given code.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, v := range g.cells {
		if v == c {
			n++
		}
	}
	return n
}

// Enclosed reports whether every border cell is a wall.
func (g *Grid) Enclosed() bool {
	for col := 0; col < g.cols; col++ {
		if g.At(col, 0) != CellWall || g.At(col, g.rows-1) != CellWall {
			return false
		}
	}
	for row := 0; row < g.rows; row++ {
		if g.At(0, row) != CellWall || g.At(g.cols-1, row) != CellWall {
			return false
		}
	}
	return true
}

// HitsWall reports whether r overlaps any wall cell.
func (g *Grid) HitsWall(r core.Rect) bool {
	for _, w := range g.walls {
		if w.Intersects(r) {
			return true
		}
	}
	return false
}

// HitsGoal reports whether r overlaps any goal cell.
func (g *Grid) HitsGoal(r core.Rect) bool {
	for _, goal := range g.goals {
		if goal.Intersects(r) {
			return true
		}
	}
	return false
}

// Lines returns the grid as digit strings, the inverse of ParseRows.
func (g *Grid) Lines() []string {
	lines := make([]string, g.rows)
	buf := make([]byte, g.cols)
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			buf[col] = '0' + byte(g.At(col, row))
		}
		lines[row] = string(buf)
	}
	return lines
}
