// Package world provides dungeon generation and map management.
package world

import "fmt"

// TileType is the abstract category of a map cell. Concrete glyphs and colours
// come from a tile set at render time.
type TileType uint8

const (
	// TileNone is solid, unreachable rock.
	TileNone TileType = iota
	// TileFloor is the floor of a room.
	TileFloor
	// TileFloorHall is the floor of a corridor outside any room.
	TileFloorHall
	// TileWall is a room wall whose face is visible from the floor below it.
	TileWall
	// TileWallTop is a room wall seen from above.
	TileWallTop
	// TileWallHall is a wall bordering a corridor.
	TileWallHall
	// TileStairsUp leads to the previous level.
	TileStairsUp
	// TileStairsDown leads to the next level.
	TileStairsDown
)

var tileNames = [...]string{
	TileNone:       "none",
	TileFloor:      "floor",
	TileFloorHall:  "floor_hall",
	TileWall:       "wall",
	TileWallTop:    "wall_top",
	TileWallHall:   "wall_hall",
	TileStairsUp:   "stairs_up",
	TileStairsDown: "stairs_down",
}

// TileTypes lists every tile type in declaration order.
var TileTypes = [...]TileType{
	TileNone, TileFloor, TileFloorHall, TileWall,
	TileWallTop, TileWallHall, TileStairsUp, TileStairsDown,
}

// String returns the tile-set key for the tile type.
func (t TileType) String() string {
	if int(t) < len(tileNames) {
		return tileNames[t]
	}
	return "unknown"
}

// ParseTileType maps a tile-set key back to its tile type.
func ParseTileType(name string) (TileType, error) {
	for i, n := range tileNames {
		if n == name {
			return TileType(i), nil
		}
	}
	return TileNone, fmt.Errorf("unknown tile type %q", name)
}

// IsPassable returns true if the tile can be walked on.
func (t TileType) IsPassable() bool {
	switch t {
	case TileFloor, TileFloorHall, TileStairsUp, TileStairsDown:
		return true
	default:
		return false
	}
}

// IsWall returns true for any of the wall variants.
func (t TileType) IsWall() bool {
	return t == TileWall || t == TileWallTop || t == TileWallHall
}
