// Package geom provides the integer plane primitives used by dungeon generation.
package geom

import "fmt"

// Coordinates is a cell position on the map.
type Coordinates struct {
	X, Y int
}

// Offsets is a displacement between two cells.
type Offsets struct {
	DX, DY int
}

// Direction is one of the four orthogonal steps.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists the orthogonal directions in clockwise order starting at North.
var Directions = [...]Direction{North, East, South, West}

// Offsets returns the unit displacement for the direction.
func (d Direction) Offsets() Offsets {
	switch d {
	case North:
		return Offsets{DX: 0, DY: -1}
	case East:
		return Offsets{DX: 1, DY: 0}
	case South:
		return Offsets{DX: 0, DY: 1}
	case West:
		return Offsets{DX: -1, DY: 0}
	default:
		return Offsets{}
	}
}

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Add returns the coordinates displaced by o.
func (c Coordinates) Add(o Offsets) Coordinates {
	return Coordinates{X: c.X + o.DX, Y: c.Y + o.DY}
}

// Step returns the neighbouring cell in direction d.
func (c Coordinates) Step(d Direction) Coordinates {
	return c.Add(d.Offsets())
}

// Sub returns the displacement from other to c.
func (c Coordinates) Sub(other Coordinates) Offsets {
	return Offsets{DX: c.X - other.X, DY: c.Y - other.Y}
}

// Manhattan returns the taxicab distance between two cells.
func (c Coordinates) Manhattan(other Coordinates) int {
	return abs(c.X-other.X) + abs(c.Y-other.Y)
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
