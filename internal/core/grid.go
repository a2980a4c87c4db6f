// Package core provides the Game of Life simulation engine: the two-state
// grid, the transition rule, row-band partitioning and the double-buffered
// parallel stepper. It contains no external dependencies (especially no
// Bubble Tea) so the simulation stays pure and testable.
package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions is returned when a grid would have zero area.
	ErrInvalidDimensions = errors.New("core: grid dimensions must be positive")

	// ErrNotRectangular is returned when rows of a grid differ in length.
	ErrNotRectangular = errors.New("core: grid rows must have equal length")
)

// Cell is the state of a single grid position.
type Cell uint8

const (
	Dead Cell = iota
	Alive
)

// String returns a human-readable name for the cell state.
func (c Cell) String() string {
	if c == Alive {
		return "Alive"
	}
	return "Dead"
}

// Grid is a fixed-size rectangular array of cells stored row by row.
// Height and width never change after construction.
type Grid struct {
	height int
	width  int
	cells  [][]Cell
}

// NewGrid creates a blank grid with the given dimensions.
func NewGrid(height, width int) (*Grid, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, height, width)
	}
	g := &Grid{
		height: height,
		width:  width,
	}
	g.allocate()
	return g, nil
}

// FromRows builds a grid that adopts the given rows.
// The rows must be non-empty and all of the same length.
func FromRows(rows [][]Cell) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrNotRectangular, i, len(row), width)
		}
	}
	return &Grid{
		height: len(rows),
		width:  width,
		cells:  rows,
	}, nil
}

// allocate creates the underlying cell storage, all dead.
func (g *Grid) allocate() {
	g.cells = make([][]Cell, g.height)
	for r := range g.cells {
		g.cells[r] = make([]Cell, g.width)
	}
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// InBounds reports whether (row, col) lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// At returns the cell at (row, col). Out-of-bounds positions read as Dead.
func (g *Grid) At(row, col int) Cell {
	if !g.InBounds(row, col) {
		return Dead
	}
	return g.cells[row][col]
}

// Set stores a cell at (row, col).
// Out-of-bounds coordinates are silently ignored.
func (g *Grid) Set(row, col int, c Cell) {
	if !g.InBounds(row, col) {
		return
	}
	g.cells[row][col] = c
}

// Row returns a copy of the given row, or nil when out of range.
func (g *Grid) Row(row int) []Cell {
	if row < 0 || row >= g.height {
		return nil
	}
	out := make([]Cell, g.width)
	copy(out, g.cells[row])
	return out
}

// Rows returns a deep copy of all rows.
func (g *Grid) Rows() [][]Cell {
	out := make([][]Cell, g.height)
	for r := range g.cells {
		out[r] = g.Row(r)
	}
	return out
}

// Alive returns the number of live cells.
func (g *Grid) Alive() int {
	count := 0
	for _, row := range g.cells {
		for _, c := range row {
			if c == Alive {
				count++
			}
		}
	}
	return count
}

// Clear kills every cell.
func (g *Grid) Clear() {
	for _, row := range g.cells {
		for c := range row {
			row[c] = Dead
		}
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{
		height: g.height,
		width:  g.width,
		cells:  g.Rows(),
	}
}

// Equal returns true if both grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.height != other.height || g.width != other.width {
		return false
	}
	for r, row := range g.cells {
		for c, cell := range row {
			if cell != other.cells[r][c] {
				return false
			}
		}
	}
	return true
}

// String renders the grid with '#' for live and '.' for dead cells.
// Intended for test failure messages; display rendering lives in the
// platform layer.
func (g *Grid) String() string {
	buf := make([]byte, 0, (g.width+1)*g.height)
	for r, row := range g.cells {
		if r > 0 {
			buf = append(buf, '\n')
		}
		for _, c := range row {
			if c == Alive {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
	}
	return string(buf)
}
