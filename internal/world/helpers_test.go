package world

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samdwyer/dungeongen/internal/geom"
)

// rowOfRooms builds a tree of side by side leaves, each width cells wide,
// holding the given rooms in order.
func rowOfRooms(t *testing.T, width, height int, rooms ...geom.Rect) *Tree {
	t.Helper()
	tree := newTree(geom.R(0, 0, width*len(rooms), height))
	cur := tree.Root()
	for i := range len(rooms) - 1 {
		left, right := tree.split(cur, SplitVertical, width)
		tree.setRoom(left, rooms[i])
		cur = right
	}
	tree.setRoom(cur, rooms[len(rooms)-1])
	return tree
}

func testRouter(tree *Tree, cfg Config, seed int64) *Router {
	b := tree.regions[tree.Root()].Bound
	return NewRouter(tree, b.Width, b.Height, cfg, rand.New(rand.NewSource(seed)))
}

// requireContiguous checks that consecutive path cells are orthogonal
// neighbours and no cell repeats.
func requireContiguous(t *testing.T, path []geom.Coordinates) {
	t.Helper()
	seen := make(map[geom.Coordinates]bool, len(path))
	for i, c := range path {
		require.False(t, seen[c], "cell %v repeats", c)
		seen[c] = true
		if i > 0 {
			require.Equal(t, 1, c.Manhattan(path[i-1]), "gap between %v and %v", path[i-1], c)
		}
	}
}

// reachable floods passable tiles from start.
func reachable(m *Map) map[geom.Coordinates]bool {
	seen := map[geom.Coordinates]bool{m.Start: true}
	frontier := []geom.Coordinates{m.Start}
	for len(frontier) > 0 {
		cur := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		for _, d := range geom.Directions {
			next := cur.Step(d)
			if !seen[next] && m.IsPassable(next) {
				seen[next] = true
				frontier = append(frontier, next)
			}
		}
	}
	return seen
}

// generateSeed returns the first successful generation at or after seed.
// Routing can legitimately fail for a seed; configuration errors cannot.
func generateSeed(t *testing.T, g *Generator, seed int64) (*Dungeon, int64) {
	t.Helper()
	for i := range int64(20) {
		d, err := g.Generate(t.Context(), rand.New(rand.NewSource(seed+i)))
		if err == nil {
			return d, seed + i
		}
		require.ErrorIs(t, err, ErrRouting)
	}
	t.Fatalf("no successful generation for seeds %d..%d", seed, seed+19)
	return nil, 0
}
