package world

import "github.com/samdwyer/dungeongen/internal/geom"

// CorridorShape describes how a corridor bends.
type CorridorShape uint8

const (
	// CorridorStraight is a single segment; Middle equals From.
	CorridorStraight CorridorShape = iota
	// CorridorElbow is two segments joined at Middle.
	CorridorElbow
)

// String returns the shape name.
func (s CorridorShape) String() string {
	switch s {
	case CorridorStraight:
		return "straight"
	case CorridorElbow:
		return "elbow"
	default:
		return "unknown"
	}
}

// Connection is a corridor between the rooms of two leaf regions. It refers
// to the regions by ID and owns neither of them.
type Connection struct {
	Start, End RegionID

	// From lies on the edge of the Start room, To on the edge of the End room.
	From, Middle, To geom.Coordinates

	Shape CorridorShape
	// Split is the axis separating the two regions: a vertical split yields a
	// corridor that leaves Start sideways.
	Split SplitDirection
}

// Matches reports whether the connection joins a and b in either order.
func (c Connection) Matches(a, b RegionID) bool {
	return (c.Start == a && c.End == b) || (c.Start == b && c.End == a)
}

// Other returns the region at the opposite end from id, or NoRegion when id
// is not an endpoint.
func (c Connection) Other(id RegionID) RegionID {
	switch id {
	case c.Start:
		return c.End
	case c.End:
		return c.Start
	default:
		return NoRegion
	}
}

// Path returns every cell of the corridor from From to To, each once.
func (c Connection) Path() []geom.Coordinates {
	path := segment(c.From, c.Middle)
	return append(path, segment(c.Middle, c.To)[1:]...)
}

// segment walks from a to b, both ends included. Corridor legs are always
// axis-aligned; anything else is walked along X first, then Y.
func segment(a, b geom.Coordinates) []geom.Coordinates {
	cells := []geom.Coordinates{a}
	for cur := a; cur != b; {
		if cur.X != b.X {
			cur.X += sign(b.X - cur.X)
		} else {
			cur.Y += sign(b.Y - cur.Y)
		}
		cells = append(cells, cur)
	}
	return cells
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
