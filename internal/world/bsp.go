package world

import (
	"math/rand"

	"github.com/samdwyer/dungeongen/internal/geom"
)

// Partitioner recursively splits a bound into a BSP tree of regions.
type Partitioner struct {
	// MinRegion is the smallest leaf either split may produce.
	MinRegion Size
	// MinLeaves is the number of leaves every partition must reach. Cuts
	// that would leave the bound unable to hold that many are never taken.
	MinLeaves int
	// MaxLeaves stops splitting once the tree has this many leaves.
	// Zero splits until no leaf can be divided.
	MaxLeaves int
	// SplitRatio is the aspect ratio at which the longer axis is always cut.
	// Below it the axis is a coin flip.
	SplitRatio float64
}

// Partition builds the region tree for bound. The largest splittable leaf is
// divided first, so the tree stays balanced when MaxLeaves cuts it short.
// Every child is strictly smaller than its parent, which bounds the number of
// splits by bound.Area() / MinRegion area.
func (p Partitioner) Partition(bound geom.Rect, rng *rand.Rand) (*Tree, error) {
	if p.MinRegion.Width < 1 || p.MinRegion.Height < 1 {
		return nil, configErrorf("min_region", "must be at least 1x1, got %dx%d", p.MinRegion.Width, p.MinRegion.Height)
	}
	if !bound.Valid() {
		return nil, configErrorf("bound", "empty bound %v", bound)
	}
	if bound.Width < p.MinRegion.Width || bound.Height < p.MinRegion.Height {
		return nil, configErrorf("bound", "%v is smaller than one %dx%d region",
			bound, p.MinRegion.Width, p.MinRegion.Height)
	}
	if !p.canSplit(bound, SplitVertical) && !p.canSplit(bound, SplitHorizontal) {
		return nil, configErrorf("bound", "%v is smaller than twice the %dx%d minimum region on both axes",
			bound, p.MinRegion.Width, p.MinRegion.Height)
	}

	if limit := p.capacity(bound); p.MinLeaves > limit {
		return nil, configErrorf("min_leaves", "%v holds at most %d regions, %d required", bound, limit, p.MinLeaves)
	}
	if p.MaxLeaves > 0 && p.MaxLeaves < p.MinLeaves {
		return nil, configErrorf("max_leaves", "%d is below min_leaves %d", p.MaxLeaves, p.MinLeaves)
	}

	// spare is how many leaves the remaining cuts may still give up. Once no
	// leaf can split, each one holds exactly one region, so keeping spare
	// non-negative guarantees MinLeaves.
	tree := newTree(bound)
	leaves, spare := 1, p.capacity(bound)-p.MinLeaves
	for p.MaxLeaves == 0 || leaves < p.MaxLeaves {
		id, ok := p.largestSplittable(tree)
		if !ok {
			break
		}
		b := tree.regions[id].Bound
		dir := p.chooseAxis(b, rng)
		offset, lost := p.chooseOffset(b, dir, spare, rng)
		tree.split(id, dir, offset)
		spare -= lost
		leaves++
	}
	return tree, nil
}

// capacity is the number of minimum regions a grid-aligned tiling of b holds.
func (p Partitioner) capacity(b geom.Rect) int {
	return (b.Width / p.MinRegion.Width) * (b.Height / p.MinRegion.Height)
}

// canSplit reports whether b can hold two minimum regions along the axis.
func (p Partitioner) canSplit(b geom.Rect, dir SplitDirection) bool {
	if dir == SplitVertical {
		return b.Width >= 2*p.MinRegion.Width
	}
	return b.Height >= 2*p.MinRegion.Height
}

func (p Partitioner) largestSplittable(tree *Tree) (RegionID, bool) {
	best, bestArea := NoRegion, 0
	for _, id := range tree.Leaves() {
		b := tree.regions[id].Bound
		if !p.canSplit(b, SplitVertical) && !p.canSplit(b, SplitHorizontal) {
			continue
		}
		if area := b.Area(); area > bestArea || (area == bestArea && id < best) {
			best, bestArea = id, area
		}
	}
	return best, best != NoRegion
}

func (p Partitioner) chooseAxis(b geom.Rect, rng *rand.Rand) SplitDirection {
	canV, canH := p.canSplit(b, SplitVertical), p.canSplit(b, SplitHorizontal)
	switch {
	case canV && !canH:
		return SplitVertical
	case canH && !canV:
		return SplitHorizontal
	}

	ratio := p.SplitRatio
	if ratio < 1 {
		ratio = 1
	}
	w, h := float64(b.Width), float64(b.Height)
	switch {
	case w/h >= ratio && w > h:
		return SplitVertical
	case h/w >= ratio && h > w:
		return SplitHorizontal
	case rng.Intn(2) == 0:
		return SplitHorizontal
	default:
		return SplitVertical
	}
}

// chooseOffset picks a cut so both children keep at least MinRegion along
// the split axis and the cut gives up at most spare regions of capacity. It
// returns the offset and the capacity lost. A cut at one minimum region never
// loses any, so a candidate always exists.
func (p Partitioner) chooseOffset(b geom.Rect, dir SplitDirection, spare int, rng *rand.Rand) (int, int) {
	size, minSize, across := b.Height, p.MinRegion.Height, b.Width/p.MinRegion.Width
	if dir == SplitVertical {
		size, minSize, across = b.Width, p.MinRegion.Width, b.Height/p.MinRegion.Height
	}
	loss := func(offset int) int {
		return (size/minSize - offset/minSize - (size-offset)/minSize) * across
	}

	offsets := make([]int, 0, size-2*minSize+1)
	for o := minSize; o <= size-minSize; o++ {
		if loss(o) <= spare {
			offsets = append(offsets, o)
		}
	}
	o := offsets[rng.Intn(len(offsets))]
	return o, loss(o)
}
