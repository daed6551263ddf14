package world

import (
	"math/rand"

	"github.com/samdwyer/dungeongen/internal/geom"
	"github.com/samdwyer/dungeongen/internal/grid"
)

// Router synthesizes corridors between the rooms of a tree. Corridors may
// cross walls and other corridors but never the floor of a third room.
type Router struct {
	tree       *Tree
	interior   geom.Rect
	owners     *grid.Grid[RegionID]
	minOverlap int
	attempts   int
	rng        *rand.Rand
}

// NewRouter indexes the rooms of tree on a width x height map. Corridors are
// kept off the outermost ring of cells so their walls stay on the map.
func NewRouter(tree *Tree, width, height int, cfg Config, rng *rand.Rand) *Router {
	owners := grid.New(width, height, NoRegion)
	for _, id := range tree.Leaves() {
		if r := tree.regions[id]; r.HasRoom {
			owners.FillRect(r.Room, id)
		}
	}
	return &Router{
		tree:       tree,
		interior:   geom.R(1, 1, width-2, height-2),
		owners:     owners,
		minOverlap: max(cfg.MinOverlap, 1),
		attempts:   max(cfg.RouteAttempts, 1),
		rng:        rng,
	}
}

// Route joins the rooms of regions a and b with a corridor lying inside
// within. Rooms sharing at least MinOverlap rows or columns get a straight
// corridor; otherwise an elbow bends once outside both rooms.
func (r *Router) Route(a, b RegionID, within geom.Rect) (Connection, error) {
	if a == b {
		return Connection{}, &RoutingError{Start: a, End: b, Reason: "region cannot connect to itself"}
	}
	ra, rb := r.tree.regions[a], r.tree.regions[b]
	if !ra.HasRoom || !rb.HasRoom {
		return Connection{}, &RoutingError{Start: a, End: b, Reason: "region has no room"}
	}

	area := within.Intersect(r.interior)
	if conn, ok := r.straight(a, b, area); ok {
		return conn, nil
	}
	if conn, ok := r.elbow(a, b, area); ok {
		return conn, nil
	}
	return Connection{}, &RoutingError{Start: a, End: b, Reason: "every straight and elbow corridor leaves the area or crosses another room"}
}

func (r *Router) straight(a, b RegionID, area geom.Rect) (Connection, bool) {
	A, B := r.tree.regions[a].Room, r.tree.regions[b].Room

	if lo, hi := A.OverlapX(B); hi-lo >= r.minOverlap {
		for _, i := range r.candidates(hi - lo) {
			x := lo + i
			from, to := geom.Coordinates{X: x, Y: A.Top}, geom.Coordinates{X: x, Y: B.Bottom() - 1}
			if A.Bottom() <= B.Top {
				from, to = geom.Coordinates{X: x, Y: A.Bottom() - 1}, geom.Coordinates{X: x, Y: B.Top}
			}
			conn := Connection{Start: a, End: b, From: from, Middle: from, To: to,
				Shape: CorridorStraight, Split: SplitHorizontal}
			if r.clear(conn, area) {
				return conn, true
			}
		}
	}

	if lo, hi := A.OverlapY(B); hi-lo >= r.minOverlap {
		for _, i := range r.candidates(hi - lo) {
			y := lo + i
			from, to := geom.Coordinates{X: A.Left, Y: y}, geom.Coordinates{X: B.Right() - 1, Y: y}
			if A.Right() <= B.Left {
				from, to = geom.Coordinates{X: A.Right() - 1, Y: y}, geom.Coordinates{X: B.Left, Y: y}
			}
			conn := Connection{Start: a, End: b, From: from, Middle: from, To: to,
				Shape: CorridorStraight, Split: SplitVertical}
			if r.clear(conn, area) {
				return conn, true
			}
		}
	}
	return Connection{}, false
}

func (r *Router) elbow(a, b RegionID, area geom.Rect) (Connection, bool) {
	A, B := r.tree.regions[a].Room, r.tree.regions[b].Room

	split := SplitHorizontal
	if dx, dy := axisGap(A.Left, A.Right(), B.Left, B.Right()), axisGap(A.Top, A.Bottom(), B.Top, B.Bottom()); dx >= dy {
		split = SplitVertical
	}

	// sideways: leave A along a row, turn into a column of B.
	// downward: leave A along a column, turn into a row of B.
	orientations := [2]bool{true, false}
	if r.rng.Intn(2) == 0 {
		orientations = [2]bool{false, true}
	}

	for _, sideways := range orientations {
		var middles []geom.Coordinates
		if sideways {
			middles = bends(A.Top, A.Bottom(), B.Left, B.Right(), A, B, true)
		} else {
			middles = bends(B.Top, B.Bottom(), A.Left, A.Right(), A, B, false)
		}
		r.rng.Shuffle(len(middles), func(i, j int) { middles[i], middles[j] = middles[j], middles[i] })

		for i, mid := range middles {
			if i >= r.attempts {
				break
			}
			conn := Connection{Start: a, End: b, Middle: mid, Shape: CorridorElbow, Split: split}
			if sideways {
				conn.From = geom.Coordinates{X: edgeToward(A.Left, A.Right(), mid.X), Y: mid.Y}
				conn.To = geom.Coordinates{X: mid.X, Y: edgeToward(B.Top, B.Bottom(), mid.Y)}
			} else {
				conn.From = geom.Coordinates{X: mid.X, Y: edgeToward(A.Top, A.Bottom(), mid.Y)}
				conn.To = geom.Coordinates{X: edgeToward(B.Left, B.Right(), mid.X), Y: mid.Y}
			}
			if r.clear(conn, area) {
				return conn, true
			}
		}
	}
	return Connection{}, false
}

// bends lists the bend points of one elbow orientation, keeping only those
// outside both rooms. Rows come from [rowLo, rowHi), columns from [colLo, colHi).
func bends(rowLo, rowHi, colLo, colHi int, A, B geom.Rect, sideways bool) []geom.Coordinates {
	var out []geom.Coordinates
	for y := rowLo; y < rowHi; y++ {
		for x := colLo; x < colHi; x++ {
			c := geom.Coordinates{X: x, Y: y}
			if A.Contains(c) || B.Contains(c) {
				continue
			}
			// The first leg must leave its room straight through a side.
			if sideways && x >= A.Left && x < A.Right() {
				continue
			}
			if !sideways && y >= A.Top && y < A.Bottom() {
				continue
			}
			out = append(out, c)
		}
	}
	return out
}

// candidates returns up to attempts offsets into a span of n cells in random
// order.
func (r *Router) candidates(n int) []int {
	perm := r.rng.Perm(n)
	if len(perm) > r.attempts {
		perm = perm[:r.attempts]
	}
	return perm
}

// clear reports whether every corridor cell lies inside area and touches no
// room other than the two endpoints.
func (r *Router) clear(conn Connection, area geom.Rect) bool {
	for _, c := range conn.Path() {
		if !area.Contains(c) {
			return false
		}
		if owner := r.owners.At(c); owner != NoRegion && owner != conn.Start && owner != conn.End {
			return false
		}
	}
	return true
}

// edgeToward returns the cell of the span [lo, hi) closest to v.
func edgeToward(lo, hi, v int) int {
	if v >= hi {
		return hi - 1
	}
	if v < lo {
		return lo
	}
	return v
}

// axisGap returns the number of cells between spans [aLo, aHi) and [bLo, bHi).
func axisGap(aLo, aHi, bLo, bHi int) int {
	return max(0, bLo-aHi, aLo-bHi)
}
