package world

import (
	"github.com/samdwyer/dungeongen/internal/geom"
	"github.com/samdwyer/dungeongen/internal/grid"
)

// Materialize stamps rooms and corridors onto a width x height tile grid.
// Room interiors become floor and corridor cells outside rooms become hall
// floor. Untouched cells next to a room floor become walls, facing walls
// when the cell below them is walkable; the rest bordering a hall become hall
// walls. Everything else stays TileNone. The result depends only on its
// inputs.
func Materialize(tree *Tree, conns []Connection, width, height int) *grid.Grid[TileType] {
	tiles := grid.New(width, height, TileNone)

	for _, id := range tree.Leaves() {
		if r := tree.regions[id]; r.HasRoom {
			tiles.FillRect(r.Room, TileFloor)
		}
	}

	for _, c := range conns {
		for _, cell := range c.Path() {
			if tiles.InBounds(cell) && tiles.At(cell) == TileNone {
				_ = tiles.Set(cell, TileFloorHall)
			}
		}
	}

	tiles.Each(func(c geom.Coordinates, t TileType) {
		if t != TileNone {
			return
		}
		nearRoom, nearHall := false, false
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				switch tiles.At(c.Add(geom.Offsets{DX: dx, DY: dy})) {
				case TileFloor:
					nearRoom = true
				case TileFloorHall:
					nearHall = true
				}
			}
		}
		switch {
		case nearRoom && tiles.At(c.Step(geom.South)).IsPassable():
			_ = tiles.Set(c, TileWall)
		case nearRoom:
			_ = tiles.Set(c, TileWallTop)
		case nearHall:
			_ = tiles.Set(c, TileWallHall)
		}
	})
	return tiles
}
