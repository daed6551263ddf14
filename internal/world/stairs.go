package world

import (
	"github.com/zyedidia/generic/queue"
)

// hops returns the corridor distance from the room of leaf from to every
// reachable leaf.
func hops(conns []Connection, from RegionID) map[RegionID]int {
	adjacency := make(map[RegionID][]RegionID)
	for _, c := range conns {
		adjacency[c.Start] = append(adjacency[c.Start], c.End)
		adjacency[c.End] = append(adjacency[c.End], c.Start)
	}

	dist := map[RegionID]int{from: 0}
	q := queue.New[RegionID]()
	q.Enqueue(from)
	for !q.Empty() {
		cur := q.Dequeue()
		for _, next := range adjacency[cur] {
			if _, ok := dist[next]; !ok {
				dist[next] = dist[cur] + 1
				q.Enqueue(next)
			}
		}
	}
	return dist
}

// farthestLeaf returns the leaf most corridors away from start, preferring
// the lower ID on ties. It returns start when nothing else is reachable.
func farthestLeaf(tree *Tree, conns []Connection, start RegionID) RegionID {
	dist := hops(conns, start)
	best, bestHops := start, 0
	for _, id := range tree.Leaves() {
		d, ok := dist[id]
		if !ok {
			continue
		}
		if d > bestHops || (d == bestHops && d > 0 && id < best) {
			best, bestHops = id, d
		}
	}
	return best
}

// placeStairs puts the up staircase on the start cell and the down staircase
// in the centre of the room farthest from the start room.
func placeStairs(m *Map, tree *Tree, conns []Connection, startLeaf RegionID) error {
	down := farthestLeaf(tree, conns, startLeaf)
	if down == startLeaf {
		return nil
	}
	return m.PlaceStairs(m.Start, tree.regions[down].Room.Center())
}
