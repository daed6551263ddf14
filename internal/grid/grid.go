// Package grid provides a bounds-checked 2D container of cell values.
package grid

import (
	"errors"
	"fmt"

	"github.com/samdwyer/dungeongen/internal/geom"
)

// ErrOutOfBounds is returned when a write addresses a cell outside the grid.
var ErrOutOfBounds = errors.New("coordinates out of bounds")

// Grid is a width x height plane of values stored row-major.
type Grid[T comparable] struct {
	width, height int
	cells         []T
}

// New creates a grid with every cell set to fill.
func New[T comparable](width, height int, fill T) *Grid[T] {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g := &Grid[T]{width: width, height: height, cells: make([]T, width*height)}
	g.Fill(fill)
	return g
}

// Width returns the number of columns.
func (g *Grid[T]) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid[T]) Height() int { return g.height }

// Bounds returns the rect covered by the grid.
func (g *Grid[T]) Bounds() geom.Rect {
	return geom.R(0, 0, g.width, g.height)
}

// InBounds reports whether c is within [0, width) x [0, height).
func (g *Grid[T]) InBounds(c geom.Coordinates) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// Get returns the value at c and whether c was in bounds.
func (g *Grid[T]) Get(c geom.Coordinates) (T, bool) {
	if !g.InBounds(c) {
		var zero T
		return zero, false
	}
	return g.cells[c.Y*g.width+c.X], true
}

// At returns the value at c, or the zero value when c is out of bounds.
func (g *Grid[T]) At(c geom.Coordinates) T {
	v, _ := g.Get(c)
	return v
}

// Set stores v at c.
func (g *Grid[T]) Set(c geom.Coordinates, v T) error {
	if !g.InBounds(c) {
		return fmt.Errorf("set %v on %dx%d grid: %w", c, g.width, g.height, ErrOutOfBounds)
	}
	g.cells[c.Y*g.width+c.X] = v
	return nil
}

// Fill sets every cell to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.cells {
		g.cells[i] = v
	}
}

// FillRect sets every in-bounds cell of r to v. Cells of r outside the grid
// are ignored.
func (g *Grid[T]) FillRect(r geom.Rect, v T) {
	for y := max(r.Top, 0); y < min(r.Bottom(), g.height); y++ {
		for x := max(r.Left, 0); x < min(r.Right(), g.width); x++ {
			g.cells[y*g.width+x] = v
		}
	}
}

// Each calls fn for every cell in row-major order.
func (g *Grid[T]) Each(fn func(c geom.Coordinates, v T)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			fn(geom.Coordinates{X: x, Y: y}, g.cells[y*g.width+x])
		}
	}
}

// Count returns the number of cells for which match returns true.
func (g *Grid[T]) Count(match func(v T) bool) int {
	n := 0
	for _, v := range g.cells {
		if match(v) {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid[T]) Clone() *Grid[T] {
	cells := make([]T, len(g.cells))
	copy(cells, g.cells)
	return &Grid[T]{width: g.width, height: g.height, cells: cells}
}

// Equal reports whether both grids have the same size and contents.
func (g *Grid[T]) Equal(other *Grid[T]) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}
