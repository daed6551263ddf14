package world

import (
	"math/rand"

	"github.com/samdwyer/dungeongen/internal/geom"
)

// RoomPlacer carves one room inside each leaf region.
type RoomPlacer struct {
	MinRoom Size
	// MaxRoom caps room dimensions; zero leaves a dimension limited only by
	// the region.
	MaxRoom Size
	// Margin is kept free between the room and the region bound on every side.
	Margin int
}

// PlaceRoom returns a room of random size and position lying strictly inside
// region with at least Margin cells on every side.
func (p RoomPlacer) PlaceRoom(region geom.Rect, rng *rand.Rand) (geom.Rect, error) {
	if p.MinRoom.Width < 1 || p.MinRoom.Height < 1 {
		return geom.Rect{}, configErrorf("min_room", "must be at least 1x1, got %dx%d", p.MinRoom.Width, p.MinRoom.Height)
	}
	margin := max(p.Margin, 1)
	availW := region.Width - 2*margin
	availH := region.Height - 2*margin
	if availW < p.MinRoom.Width || availH < p.MinRoom.Height {
		return geom.Rect{}, configErrorf("min_room", "region %v cannot fit a %dx%d room with margin %d",
			region, p.MinRoom.Width, p.MinRoom.Height, margin)
	}

	maxW, maxH := availW, availH
	if p.MaxRoom.Width > 0 {
		maxW = min(maxW, p.MaxRoom.Width)
	}
	if p.MaxRoom.Height > 0 {
		maxH = min(maxH, p.MaxRoom.Height)
	}
	maxW, maxH = max(maxW, p.MinRoom.Width), max(maxH, p.MinRoom.Height)

	w := p.MinRoom.Width + rng.Intn(maxW-p.MinRoom.Width+1)
	h := p.MinRoom.Height + rng.Intn(maxH-p.MinRoom.Height+1)
	x := region.Left + margin + rng.Intn(availW-w+1)
	y := region.Top + margin + rng.Intn(availH-h+1)

	return geom.R(x, y, w, h), nil
}

// PlaceRooms assigns a room to every leaf of the tree in leaf order.
func (p RoomPlacer) PlaceRooms(tree *Tree, rng *rand.Rand) error {
	for _, id := range tree.Leaves() {
		room, err := p.PlaceRoom(tree.regions[id].Bound, rng)
		if err != nil {
			return err
		}
		tree.setRoom(id, room)
	}
	return nil
}
