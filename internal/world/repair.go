package world

import (
	"slices"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

// Components groups the leaves into connected components of the graph whose
// edges are conns. Regions are matched by ID. Components are ordered by
// their smallest member and each is sorted.
func Components(leaves []RegionID, conns []Connection) [][]RegionID {
	members := mapset.New[RegionID]()
	for _, id := range leaves {
		members.Put(id)
	}

	adjacency := make(map[RegionID][]RegionID, len(leaves))
	for _, c := range conns {
		if !members.Has(c.Start) || !members.Has(c.End) {
			continue
		}
		adjacency[c.Start] = append(adjacency[c.Start], c.End)
		adjacency[c.End] = append(adjacency[c.End], c.Start)
	}

	ordered := slices.Clone(leaves)
	slices.Sort(ordered)

	seen := mapset.New[RegionID]()
	var components [][]RegionID
	for _, id := range ordered {
		if seen.Has(id) {
			continue
		}
		var component []RegionID
		q := queue.New[RegionID]()
		q.Enqueue(id)
		seen.Put(id)
		for !q.Empty() {
			cur := q.Dequeue()
			component = append(component, cur)
			for _, next := range adjacency[cur] {
				if !seen.Has(next) {
					seen.Put(next)
					q.Enqueue(next)
				}
			}
		}
		slices.Sort(component)
		components = append(components, component)
	}
	return components
}

// Repair adds corridors until every leaf of the tree is reachable from every
// other. Each added corridor merges two components, so at most leaves-1
// corridors are added. A *RoutingError is returned when no room of any
// component can be routed to a room outside it.
func Repair(tree *Tree, conns []Connection, router *Router) ([]Connection, error) {
	leaves := tree.Leaves()
	out := slices.Clone(conns)

	for range len(leaves) {
		components := Components(leaves, out)
		if len(components) <= 1 {
			return out, nil
		}
		conn, err := bridge(tree, leaves, components, router)
		if err != nil {
			return nil, err
		}
		out = append(out, conn)
	}

	if len(Components(leaves, out)) > 1 {
		return nil, &RoutingError{Start: leaves[0], End: leaves[len(leaves)-1], Reason: "repair did not converge"}
	}
	return out, nil
}

// bridge routes one corridor out of the first component that can reach any
// other. Pairs are tried closest rooms first.
func bridge(tree *Tree, leaves []RegionID, components [][]RegionID, router *Router) (Connection, error) {
	for _, component := range components {
		inside := mapset.New[RegionID]()
		for _, id := range component {
			inside.Put(id)
		}
		var outside []RegionID
		for _, id := range leaves {
			if !inside.Has(id) {
				outside = append(outside, id)
			}
		}

		for _, p := range crossPairs(tree, component, outside, router.minOverlap) {
			within := tree.regions[p.a].Bound.Union(tree.regions[p.b].Bound)
			if conn, err := router.Route(p.a, p.b, within); err == nil {
				return conn, nil
			}
		}
	}
	return Connection{}, &RoutingError{
		Start:  components[0][0],
		End:    components[1][0],
		Reason: "no room of any component routes to a room outside it",
	}
}
