package world

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/dungeongen/internal/geom"
)

func placedTree(t *testing.T, cfg Config, seed int64) (*Tree, *rand.Rand) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	p := Partitioner{MinRegion: cfg.MinRegion, MaxLeaves: cfg.MaxRooms, SplitRatio: cfg.SplitRatio}
	tree, err := p.Partition(geom.R(0, 0, cfg.Width, cfg.Height), rng)
	require.NoError(t, err)
	placer := RoomPlacer{MinRoom: cfg.MinRoom, MaxRoom: cfg.MaxRoom, Margin: cfg.Margin}
	require.NoError(t, placer.PlaceRooms(tree, rng))
	return tree, rng
}

// connectedTree returns the first tree at or after seed whose tree walk
// routes every internal node.
func connectedTree(t *testing.T, cfg Config, seed int64) (*Tree, *Router, []Connection) {
	t.Helper()
	for i := range int64(20) {
		tree, rng := placedTree(t, cfg, seed+i)
		router := NewRouter(tree, cfg.Width, cfg.Height, cfg, rng)
		if conns, failures := Connect(tree, router); len(failures) == 0 {
			return tree, router, conns
		}
	}
	t.Fatalf("every tree from seed %d needed repair", seed)
	return nil, nil, nil
}

func TestConnectBuildsSpanningTree(t *testing.T) {
	cfg := DefaultConfig()
	complete := 0

	for seed := int64(1); seed <= 30; seed++ {
		tree, rng := placedTree(t, cfg, seed)
		router := NewRouter(tree, cfg.Width, cfg.Height, cfg, rng)

		conns, failures := Connect(tree, router)
		leaves := tree.Leaves()
		assert.Len(t, conns, len(leaves)-1-len(failures), "seed %d: one corridor per internal node", seed)

		for _, c := range conns {
			assert.True(t, tree.IsLeaf(c.Start) && tree.IsLeaf(c.End), "seed %d: corridors join leaves", seed)
			requireContiguous(t, c.Path())
		}
		if len(failures) == 0 {
			complete++
			assert.Len(t, Components(leaves, conns), 1, "seed %d: spanning tree is connected", seed)
		}
	}
	assert.Positive(t, complete, "some seeds connect without repair")
}

func TestConnectJoinsAcrossEachSplit(t *testing.T) {
	tree, _, conns := connectedTree(t, DefaultConfig(), 4)

	for i, id := range tree.PostOrder() {
		node := tree.Region(id)
		left := tree.LeavesUnder(node.Left)
		c := conns[i]
		assert.Contains(t, left, c.Start, "node %d: corridor starts in the left subtree", id)
		assert.NotContains(t, left, c.End, "node %d: corridor ends in the right subtree", id)
		assert.Equal(t, node.Split, c.Split)
	}
}

func TestComponents(t *testing.T) {
	leaves := []RegionID{5, 1, 3, 7, 9}
	conns := []Connection{
		{Start: 1, End: 3},
		{Start: 9, End: 7},
		{Start: 3, End: 42}, // not a leaf
	}

	assert.Equal(t, [][]RegionID{{1, 3}, {5}, {7, 9}}, Components(leaves, conns))
	assert.Empty(t, Components(nil, nil))
}

func TestRepairJoinsIsolatedRooms(t *testing.T) {
	tree := rowOfRooms(t, 10, 12, geom.R(2, 3, 5, 4), geom.R(12, 3, 5, 4), geom.R(22, 3, 5, 4))
	router := testRouter(tree, DefaultConfig(), 1)

	conns, err := Repair(tree, nil, router)
	require.NoError(t, err)
	assert.Len(t, conns, 2, "three components need two corridors")
	assert.Len(t, Components(tree.Leaves(), conns), 1)
}

func TestRepairKeepsExistingCorridors(t *testing.T) {
	tree := rowOfRooms(t, 10, 12, geom.R(2, 3, 5, 4), geom.R(12, 3, 5, 4), geom.R(22, 3, 5, 4))
	router := testRouter(tree, DefaultConfig(), 1)

	first, err := router.Route(1, 3, tree.Region(tree.Root()).Bound)
	require.NoError(t, err)

	conns, err := Repair(tree, []Connection{first}, router)
	require.NoError(t, err)
	require.Len(t, conns, 2)
	assert.Equal(t, first, conns[0])
	assert.True(t, conns[1].Matches(3, 4), "the remaining room joins its neighbour")
}

func TestRepairIsNoopWhenConnected(t *testing.T) {
	tree, router, conns := connectedTree(t, DefaultConfig(), 4)

	repaired, err := Repair(tree, conns, router)
	require.NoError(t, err)
	assert.Equal(t, conns, repaired)
}

func TestRepairRestoresDroppedCorridors(t *testing.T) {
	cfg := DefaultConfig()
	restored := 0

	for seed := int64(1); seed <= 20; seed++ {
		tree, rng := placedTree(t, cfg, seed)
		router := NewRouter(tree, cfg.Width, cfg.Height, cfg, rng)
		conns, _ := Connect(tree, router)
		if len(conns) < 3 {
			continue
		}
		kept := []Connection{conns[0], conns[len(conns)-1]}
		before := len(Components(tree.Leaves(), kept))

		repaired, err := Repair(tree, kept, router)
		if err != nil {
			require.ErrorIs(t, err, ErrRouting)
			continue
		}
		restored++
		assert.Len(t, Components(tree.Leaves(), repaired), 1, "seed %d", seed)
		assert.Len(t, repaired, len(kept)+before-1, "seed %d: one corridor per merge", seed)
	}
	assert.Positive(t, restored)
}

func TestRepairFailsWhenARoomIsUnreachable(t *testing.T) {
	// The first room sits on the map edge where no corridor may run.
	tree := rowOfRooms(t, 10, 10, geom.R(0, 0, 1, 1), geom.R(12, 3, 4, 4))

	_, err := Repair(tree, nil, testRouter(tree, DefaultConfig(), 1))
	var routeErr *RoutingError
	require.ErrorAs(t, err, &routeErr)
	assert.ErrorIs(t, err, ErrRouting)
}
