package geom

import "fmt"

// Rect is an axis-aligned rectangle of cells. Bounds are half-open: a Rect
// covers x in [Left, Left+Width) and y in [Top, Top+Height), so two rects that
// share a boundary line never share a cell.
type Rect struct {
	Left, Top     int
	Width, Height int
}

// R is a convenience constructor for Rect.
func R(left, top, width, height int) Rect {
	return Rect{Left: left, Top: top, Width: width, Height: height}
}

// Valid reports whether the rect has a positive area.
func (r Rect) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

// Right returns the first column past the rect.
func (r Rect) Right() int {
	return r.Left + r.Width
}

// Bottom returns the first row past the rect.
func (r Rect) Bottom() int {
	return r.Top + r.Height
}

// TopLeft returns the corner cell of the rect.
func (r Rect) TopLeft() Coordinates {
	return Coordinates{X: r.Left, Y: r.Top}
}

// Center returns the middle cell, rounding toward the top-left.
func (r Rect) Center() Coordinates {
	return Coordinates{X: r.Left + (r.Width-1)/2, Y: r.Top + (r.Height-1)/2}
}

// Area returns the number of cells covered.
func (r Rect) Area() int {
	return r.Width * r.Height
}

// Contains reports whether the cell lies inside the rect.
func (r Rect) Contains(c Coordinates) bool {
	return c.X >= r.Left && c.X < r.Right() && c.Y >= r.Top && c.Y < r.Bottom()
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.Left >= r.Left && o.Right() <= r.Right() &&
		o.Top >= r.Top && o.Bottom() <= r.Bottom()
}

// StrictlyContains reports whether o lies inside r with at least margin cells
// of r left uncovered on every side.
func (r Rect) StrictlyContains(o Rect, margin int) bool {
	return r.Inset(margin).ContainsRect(o)
}

// Intersects reports whether r and o share at least one cell.
func (r Rect) Intersects(o Rect) bool {
	return r.Left < o.Right() && o.Left < r.Right() &&
		r.Top < o.Bottom() && o.Top < r.Bottom()
}

// Inset shrinks the rect by n cells on every side. A negative n grows it.
// The result may be invalid when n is too large.
func (r Rect) Inset(n int) Rect {
	return Rect{Left: r.Left + n, Top: r.Top + n, Width: r.Width - 2*n, Height: r.Height - 2*n}
}

// Union returns the smallest rect covering both r and o.
func (r Rect) Union(o Rect) Rect {
	left, top := min(r.Left, o.Left), min(r.Top, o.Top)
	right, bottom := max(r.Right(), o.Right()), max(r.Bottom(), o.Bottom())
	return Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

// Intersect returns the cells shared by r and o. The result is the zero Rect
// when they do not intersect.
func (r Rect) Intersect(o Rect) Rect {
	left, top := max(r.Left, o.Left), max(r.Top, o.Top)
	right, bottom := min(r.Right(), o.Right()), min(r.Bottom(), o.Bottom())
	if right <= left || bottom <= top {
		return Rect{}
	}
	return Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

// OverlapX returns the half-open column span [lo, hi) shared by r and o.
// The span is empty when lo >= hi.
func (r Rect) OverlapX(o Rect) (lo, hi int) {
	return max(r.Left, o.Left), min(r.Right(), o.Right())
}

// OverlapY returns the half-open row span [lo, hi) shared by r and o.
func (r Rect) OverlapY(o Rect) (lo, hi int) {
	return max(r.Top, o.Top), min(r.Bottom(), o.Bottom())
}

// Gap returns the number of cells separating r and o horizontally plus
// vertically. Touching or overlapping rects have a gap of zero.
func (r Rect) Gap(o Rect) int {
	dx := max(0, o.Left-r.Right(), r.Left-o.Right())
	dy := max(0, o.Top-r.Bottom(), r.Top-o.Bottom())
	return dx + dy
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d %dx%d]", r.Left, r.Top, r.Width, r.Height)
}

// AreAdjacent reports whether a and b share a boundary line along which they
// overlap by at least minOverlap cells. Rects touching only at a corner are
// never adjacent.
func AreAdjacent(a, b Rect, minOverlap int) bool {
	if minOverlap < 1 {
		minOverlap = 1
	}
	if a.Right() == b.Left || b.Right() == a.Left {
		lo, hi := a.OverlapY(b)
		return hi-lo >= minOverlap
	}
	if a.Bottom() == b.Top || b.Bottom() == a.Top {
		lo, hi := a.OverlapX(b)
		return hi-lo >= minOverlap
	}
	return false
}
