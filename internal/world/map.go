package world

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/samdwyer/dungeongen/internal/geom"
	"github.com/samdwyer/dungeongen/internal/grid"
)

// ErrInvalidMap is returned when a map instance cannot be built from its parts.
var ErrInvalidMap = errors.New("invalid map")

// Map is a playable level: its tile grid plus the player start.
type Map struct {
	ID     uuid.UUID
	Width  int
	Height int
	Start  geom.Coordinates
	Tiles  *grid.Grid[TileType]
	Rooms  []geom.Rect

	StairsUp, StairsDown *geom.Coordinates
}

// NewMap builds a map instance around a materialized tile grid.
func NewMap(width, height int, start geom.Coordinates, tiles *grid.Grid[TileType]) (*Map, error) {
	return newMap(uuid.New(), width, height, start, tiles)
}

func newMap(id uuid.UUID, width, height int, start geom.Coordinates, tiles *grid.Grid[TileType]) (*Map, error) {
	switch {
	case width <= 0 || height <= 0:
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidMap, width, height)
	case tiles == nil:
		return nil, fmt.Errorf("%w: no tiles", ErrInvalidMap)
	case tiles.Width() != width || tiles.Height() != height:
		return nil, fmt.Errorf("%w: %dx%d tiles for a %dx%d map", ErrInvalidMap, tiles.Width(), tiles.Height(), width, height)
	case !tiles.InBounds(start):
		return nil, fmt.Errorf("%w: start %v outside the map", ErrInvalidMap, start)
	case !tiles.At(start).IsPassable():
		return nil, fmt.Errorf("%w: start %v is %s", ErrInvalidMap, start, tiles.At(start))
	}
	return &Map{ID: id, Width: width, Height: height, Start: start, Tiles: tiles}, nil
}

// Tile returns the tile at c, or TileNone outside the map.
func (m *Map) Tile(c geom.Coordinates) TileType {
	return m.Tiles.At(c)
}

// IsPassable returns true if the given position can be walked on.
func (m *Map) IsPassable(c geom.Coordinates) bool {
	return m.Tiles.At(c).IsPassable()
}

// RoomIndexAt returns the index of the room containing the position, or -1 if not in a room.
func (m *Map) RoomIndexAt(c geom.Coordinates) int {
	for i, room := range m.Rooms {
		if room.Contains(c) {
			return i
		}
	}
	return -1
}

// PlaceStairs puts the up and down staircases on two distinct room floor
// cells. It is the only change allowed after generation.
func (m *Map) PlaceStairs(up, down geom.Coordinates) error {
	if up == down {
		return fmt.Errorf("%w: both staircases at %v", ErrInvalidMap, up)
	}
	for _, c := range []geom.Coordinates{up, down} {
		if t := m.Tiles.At(c); !m.Tiles.InBounds(c) || t != TileFloor {
			return fmt.Errorf("%w: staircase at %v needs a room floor, found %s", ErrInvalidMap, c, t)
		}
	}
	if err := m.Tiles.Set(up, TileStairsUp); err != nil {
		return err
	}
	if err := m.Tiles.Set(down, TileStairsDown); err != nil {
		return err
	}
	m.StairsUp, m.StairsDown = &up, &down
	return nil
}

// Fingerprint hashes the size, start and every tile. Two maps with the same
// layout share a fingerprint regardless of their IDs.
func (m *Map) Fingerprint() uint64 {
	d := xxhash.New()
	var header [32]byte
	binary.LittleEndian.PutUint64(header[0:], uint64(m.Width))
	binary.LittleEndian.PutUint64(header[8:], uint64(m.Height))
	binary.LittleEndian.PutUint64(header[16:], uint64(m.Start.X))
	binary.LittleEndian.PutUint64(header[24:], uint64(m.Start.Y))
	_, _ = d.Write(header[:])

	row := make([]byte, m.Width)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			row[x] = byte(m.Tiles.At(geom.Coordinates{X: x, Y: y}))
		}
		_, _ = d.Write(row)
	}
	return d.Sum64()
}

// String renders the map with the layout legend, the start marked '@'.
func (m *Map) String() string {
	var b strings.Builder
	b.Grow((m.Width + 1) * m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			c := geom.Coordinates{X: x, Y: y}
			if c == m.Start {
				b.WriteRune(startSymbol)
				continue
			}
			b.WriteRune(legendSymbol(m.Tiles.At(c)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
