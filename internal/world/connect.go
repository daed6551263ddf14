package world

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/samdwyer/dungeongen/internal/geom"
)

type regionPair struct {
	a, b     RegionID
	adjacent bool
	gap      int
}

// Connect walks the tree bottom-up and joins the two subtrees of every
// internal node with one corridor. Candidate pairs are tried adjacent regions
// first, then by distance between rooms. Nodes whose subtrees cannot be joined
// are returned as routing failures for Repair to resolve.
func Connect(tree *Tree, router *Router) ([]Connection, []*RoutingError) {
	var conns []Connection
	var failures []*RoutingError

	for _, id := range tree.PostOrder() {
		node := tree.regions[id]
		pairs := crossPairs(tree, tree.LeavesUnder(node.Left), tree.LeavesUnder(node.Right), router.minOverlap)

		routed := false
		for _, p := range pairs {
			conn, err := router.Route(p.a, p.b, node.Bound)
			if err != nil {
				continue
			}
			conn.Split = node.Split
			conns = append(conns, conn)
			routed = true
			break
		}
		if !routed && len(pairs) > 0 {
			failures = append(failures, &RoutingError{
				Start:  pairs[0].a,
				End:    pairs[0].b,
				Reason: fmt.Sprintf("no room pair across the %s split of region %d routes", node.Split, id),
			})
		}
	}
	return conns, failures
}

// crossPairs returns every pairing of a left leaf with a right leaf in the
// order Connect and Repair try them.
func crossPairs(tree *Tree, left, right []RegionID, minOverlap int) []regionPair {
	pairs := make([]regionPair, 0, len(left)*len(right))
	for _, a := range left {
		ra := tree.regions[a]
		for _, b := range right {
			rb := tree.regions[b]
			pairs = append(pairs, regionPair{
				a:        a,
				b:        b,
				adjacent: geom.AreAdjacent(ra.Bound, rb.Bound, minOverlap),
				gap:      ra.Room.Gap(rb.Room),
			})
		}
	}
	slices.SortFunc(pairs, comparePairs)
	return pairs
}

func comparePairs(x, y regionPair) int {
	if x.adjacent != y.adjacent {
		if x.adjacent {
			return -1
		}
		return 1
	}
	return cmp.Or(
		cmp.Compare(x.gap, y.gap),
		cmp.Compare(x.a, y.a),
		cmp.Compare(x.b, y.b),
	)
}
