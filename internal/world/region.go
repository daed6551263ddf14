package world

import "github.com/samdwyer/dungeongen/internal/geom"

// RegionID addresses a region inside its Tree. IDs are only meaningful for
// the tree that issued them.
type RegionID int

// NoRegion marks an absent parent or child.
const NoRegion RegionID = -1

// SplitDirection is the axis along which a region was divided.
type SplitDirection uint8

const (
	// SplitHorizontal cuts along a horizontal line; children are stacked
	// top (Left) and bottom (Right).
	SplitHorizontal SplitDirection = iota
	// SplitVertical cuts along a vertical line; children sit side by side,
	// west (Left) and east (Right).
	SplitVertical
)

// String returns the split name.
func (s SplitDirection) String() string {
	switch s {
	case SplitHorizontal:
		return "horizontal"
	case SplitVertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Region is one node of the BSP tree. Leaves carry a room once rooms have
// been placed; internal nodes never do.
type Region struct {
	ID      RegionID
	Bound   geom.Rect
	Room    geom.Rect
	HasRoom bool

	Parent, Left, Right RegionID
	Split               SplitDirection
	Depth               int
}

// IsLeaf returns true if the region has no children.
func (r Region) IsLeaf() bool {
	return r.Left == NoRegion && r.Right == NoRegion
}

// Tree is an arena of regions. The root is always RegionID 0 and every
// internal node owns exactly two children.
type Tree struct {
	regions []Region
}

func newTree(bound geom.Rect) *Tree {
	return &Tree{regions: []Region{{
		ID:     0,
		Bound:  bound,
		Parent: NoRegion,
		Left:   NoRegion,
		Right:  NoRegion,
	}}}
}

// Root returns the ID of the region covering the whole bound.
func (t *Tree) Root() RegionID { return 0 }

// Len returns the number of regions, internal nodes included.
func (t *Tree) Len() int { return len(t.regions) }

// Region returns a copy of the region with the given ID.
func (t *Tree) Region(id RegionID) Region {
	return t.regions[id]
}

// IsLeaf reports whether the region has no children.
func (t *Tree) IsLeaf(id RegionID) bool {
	return t.regions[id].IsLeaf()
}

// Leaves returns the leaf IDs in left-to-right tree order.
func (t *Tree) Leaves() []RegionID {
	return t.LeavesUnder(t.Root())
}

// LeavesUnder returns the leaves of the subtree rooted at id.
func (t *Tree) LeavesUnder(id RegionID) []RegionID {
	var leaves []RegionID
	stack := []RegionID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		r := t.regions[cur]
		if r.IsLeaf() {
			leaves = append(leaves, cur)
			continue
		}
		// Right first so Left pops first.
		stack = append(stack, r.Right, r.Left)
	}
	return leaves
}

// PostOrder returns every internal node with children before parents.
func (t *Tree) PostOrder() []RegionID {
	var order []RegionID
	var walk func(id RegionID)
	walk = func(id RegionID) {
		r := t.regions[id]
		if r.IsLeaf() {
			return
		}
		walk(r.Left)
		walk(r.Right)
		order = append(order, id)
	}
	walk(t.Root())
	return order
}

// Rooms returns the room of every leaf that has one, in leaf order.
func (t *Tree) Rooms() []geom.Rect {
	var rooms []geom.Rect
	for _, id := range t.Leaves() {
		if r := t.regions[id]; r.HasRoom {
			rooms = append(rooms, r.Room)
		}
	}
	return rooms
}

// Depth returns the length of the longest root-to-leaf path.
func (t *Tree) Depth() int {
	depth := 0
	for _, r := range t.regions {
		depth = max(depth, r.Depth)
	}
	return depth
}

// split divides a leaf at offset cells from its top (horizontal) or left
// (vertical) edge and returns the new children.
func (t *Tree) split(id RegionID, dir SplitDirection, offset int) (RegionID, RegionID) {
	parent := t.regions[id]
	b := parent.Bound

	var first, second geom.Rect
	if dir == SplitHorizontal {
		first = geom.R(b.Left, b.Top, b.Width, offset)
		second = geom.R(b.Left, b.Top+offset, b.Width, b.Height-offset)
	} else {
		first = geom.R(b.Left, b.Top, offset, b.Height)
		second = geom.R(b.Left+offset, b.Top, b.Width-offset, b.Height)
	}

	left := t.add(first, id, parent.Depth+1)
	right := t.add(second, id, parent.Depth+1)

	t.regions[id].Left = left
	t.regions[id].Right = right
	t.regions[id].Split = dir
	return left, right
}

func (t *Tree) add(bound geom.Rect, parent RegionID, depth int) RegionID {
	id := RegionID(len(t.regions))
	t.regions = append(t.regions, Region{
		ID:     id,
		Bound:  bound,
		Parent: parent,
		Left:   NoRegion,
		Right:  NoRegion,
		Depth:  depth,
	})
	return id
}

func (t *Tree) setRoom(id RegionID, room geom.Rect) {
	t.regions[id].Room = room
	t.regions[id].HasRoom = true
}
