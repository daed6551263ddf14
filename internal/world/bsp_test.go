package world

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/dungeongen/internal/geom"
)

func TestPartitionLeavesTileTheBound(t *testing.T) {
	bound := geom.R(0, 0, 80, 40)
	p := Partitioner{MinRegion: Size{Width: 10, Height: 8}, SplitRatio: 1.25}

	for seed := int64(1); seed <= 25; seed++ {
		tree, err := p.Partition(bound, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)

		area := 0
		leaves := tree.Leaves()
		for i, id := range leaves {
			b := tree.Region(id).Bound
			assert.True(t, bound.ContainsRect(b), "seed %d: leaf %v escapes the bound", seed, b)
			assert.GreaterOrEqual(t, b.Width, 10, "seed %d: leaf %v too narrow", seed, b)
			assert.GreaterOrEqual(t, b.Height, 8, "seed %d: leaf %v too short", seed, b)
			for _, other := range leaves[i+1:] {
				assert.False(t, b.Intersects(tree.Region(other).Bound), "seed %d: leaves overlap", seed)
			}
			area += b.Area()
		}
		assert.Equal(t, bound.Area(), area, "seed %d: leaves must cover the bound exactly", seed)
	}
}

func TestPartitionChildrenTileTheirParent(t *testing.T) {
	p := Partitioner{MinRegion: Size{Width: 6, Height: 6}, SplitRatio: 1.25}
	tree, err := p.Partition(geom.R(0, 0, 60, 30), rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	for _, id := range tree.PostOrder() {
		node := tree.Region(id)
		left, right := tree.Region(node.Left), tree.Region(node.Right)
		assert.Equal(t, node.Bound, left.Bound.Union(right.Bound))
		assert.Equal(t, node.Bound.Area(), left.Bound.Area()+right.Bound.Area())
		assert.Equal(t, id, left.Parent)
		assert.Equal(t, id, right.Parent)
		assert.True(t, geom.AreAdjacent(left.Bound, right.Bound, 1), "siblings share the split line")
	}
}

func TestPartitionRespectsMaxLeaves(t *testing.T) {
	p := Partitioner{MinRegion: Size{Width: 5, Height: 5}, MaxLeaves: 6, SplitRatio: 1.25}
	tree, err := p.Partition(geom.R(0, 0, 100, 100), rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	assert.Len(t, tree.Leaves(), 6)
	assert.Equal(t, 11, tree.Len(), "a full binary tree has 2n-1 nodes")
}

func TestPartitionReachesMinLeavesOnTightBound(t *testing.T) {
	// Only cuts at multiples of the minimum region fit six leaves here.
	p := Partitioner{MinRegion: Size{Width: 10, Height: 8}, MinLeaves: 6, MaxLeaves: 6, SplitRatio: 1.25}
	for seed := int64(1); seed <= 50; seed++ {
		tree, err := p.Partition(geom.R(0, 0, 30, 16), rand.New(rand.NewSource(seed)))
		require.NoError(t, err, "seed %d", seed)
		assert.Len(t, tree.Leaves(), 6, "seed %d", seed)
	}
}

func TestPartitionWithoutMaxFillsCapacity(t *testing.T) {
	p := Partitioner{MinRegion: Size{Width: 10, Height: 8}, MinLeaves: 16, SplitRatio: 1.25}
	for seed := int64(1); seed <= 20; seed++ {
		tree, err := p.Partition(geom.R(0, 0, 47, 35), rand.New(rand.NewSource(seed)))
		require.NoError(t, err, "seed %d", seed)
		assert.Len(t, tree.Leaves(), 16, "seed %d", seed)
	}
}

func TestChooseOffsetKeepsCapacity(t *testing.T) {
	p := Partitioner{MinRegion: Size{Width: 10, Height: 8}}
	rng := rand.New(rand.NewSource(1))
	for range 50 {
		offset, lost := p.chooseOffset(geom.R(0, 0, 30, 16), SplitVertical, 0, rng)
		assert.Zero(t, lost)
		assert.Contains(t, []int{10, 20}, offset)
	}

	seen := map[int]bool{}
	for range 200 {
		offset, _ := p.chooseOffset(geom.R(0, 0, 30, 16), SplitVertical, 100, rng)
		seen[offset] = true
	}
	assert.Len(t, seen, 11, "with spare capacity every legal cut is possible")
}

func TestPartitionTerminatesOnLargeBound(t *testing.T) {
	p := Partitioner{MinRegion: Size{Width: 10, Height: 10}, MaxLeaves: 50, SplitRatio: 1.25}
	tree, err := p.Partition(geom.R(0, 0, 100, 100), rand.New(rand.NewSource(99)))
	require.NoError(t, err)

	n := len(tree.Leaves())
	assert.LessOrEqual(t, n, 50)
	assert.LessOrEqual(t, n, 100, "cannot hold more than area / min area leaves")
	assert.GreaterOrEqual(t, n, 2)
}

func TestPartitionStopsWhenNothingSplits(t *testing.T) {
	p := Partitioner{MinRegion: Size{Width: 10, Height: 10}}
	tree, err := p.Partition(geom.R(0, 0, 20, 19), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Len(t, tree.Leaves(), 2)

	root := tree.Region(tree.Root())
	assert.Equal(t, SplitVertical, root.Split, "only the width holds two regions")
}

func TestPartitionConfigurationErrors(t *testing.T) {
	tests := []struct {
		name  string
		p     Partitioner
		bound geom.Rect
	}{
		{"zero min region", Partitioner{}, geom.R(0, 0, 40, 40)},
		{"empty bound", Partitioner{MinRegion: Size{Width: 4, Height: 4}}, geom.R(0, 0, 0, 10)},
		{"smaller than one region", Partitioner{MinRegion: Size{Width: 10, Height: 10}}, geom.R(0, 0, 9, 30)},
		{"cannot split either axis", Partitioner{MinRegion: Size{Width: 10, Height: 10}}, geom.R(0, 0, 19, 19)},
		{"more leaves than fit", Partitioner{MinRegion: Size{Width: 10, Height: 10}, MinLeaves: 5}, geom.R(0, 0, 40, 20)},
		{"max below min leaves", Partitioner{MinRegion: Size{Width: 10, Height: 10}, MinLeaves: 4, MaxLeaves: 2}, geom.R(0, 0, 40, 40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.p.Partition(tt.bound, rand.New(rand.NewSource(1)))
			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestChooseAxisFollowsAspectRatio(t *testing.T) {
	p := Partitioner{MinRegion: Size{Width: 4, Height: 4}, SplitRatio: 1.25}
	rng := rand.New(rand.NewSource(1))

	for range 20 {
		assert.Equal(t, SplitVertical, p.chooseAxis(geom.R(0, 0, 40, 10), rng), "wide regions are cut side by side")
		assert.Equal(t, SplitHorizontal, p.chooseAxis(geom.R(0, 0, 10, 40), rng), "tall regions are stacked")
	}

	seen := map[SplitDirection]bool{}
	for range 100 {
		seen[p.chooseAxis(geom.R(0, 0, 20, 20), rng)] = true
	}
	assert.Len(t, seen, 2, "square regions pick either axis")
}
