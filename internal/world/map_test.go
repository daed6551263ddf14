package world

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/dungeongen/internal/geom"
	"github.com/samdwyer/dungeongen/internal/grid"
)

func TestNewMapValidates(t *testing.T) {
	tiles := grid.New(4, 3, TileNone)
	_ = tiles.Set(geom.Coordinates{X: 1, Y: 1}, TileFloor)

	m, err := NewMap(4, 3, geom.Coordinates{X: 1, Y: 1}, tiles)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, m.ID)

	tests := []struct {
		name          string
		width, height int
		start         geom.Coordinates
		tiles         *grid.Grid[TileType]
	}{
		{"zero size", 0, 3, geom.Coordinates{X: 1, Y: 1}, tiles},
		{"no tiles", 4, 3, geom.Coordinates{X: 1, Y: 1}, nil},
		{"size mismatch", 5, 3, geom.Coordinates{X: 1, Y: 1}, tiles},
		{"start outside", 4, 3, geom.Coordinates{X: 4, Y: 1}, tiles},
		{"start on rock", 4, 3, geom.Coordinates{X: 0, Y: 0}, tiles},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMap(tt.width, tt.height, tt.start, tt.tiles)
			assert.ErrorIs(t, err, ErrInvalidMap)
		})
	}
}

func TestMapPlaceStairs(t *testing.T) {
	m, err := ParseLayout([]string{
		"######",
		"#@..,#",
		"######",
	})
	require.NoError(t, err)

	up, down := geom.Coordinates{X: 1, Y: 1}, geom.Coordinates{X: 3, Y: 1}
	assert.ErrorIs(t, m.PlaceStairs(up, up), ErrInvalidMap)
	assert.ErrorIs(t, m.PlaceStairs(up, geom.Coordinates{X: 4, Y: 1}), ErrInvalidMap, "hall floor is not a room")
	assert.ErrorIs(t, m.PlaceStairs(up, geom.Coordinates{X: 0, Y: 0}), ErrInvalidMap)
	assert.Equal(t, TileFloor, m.Tile(up), "failed placement leaves the map untouched")

	require.NoError(t, m.PlaceStairs(up, down))
	assert.Equal(t, TileStairsUp, m.Tile(up))
	assert.Equal(t, TileStairsDown, m.Tile(down))
	assert.True(t, m.IsPassable(down))
	require.NotNil(t, m.StairsDown)
	assert.Equal(t, down, *m.StairsDown)
}

func TestMapRoomIndexAt(t *testing.T) {
	m := &Map{Rooms: []geom.Rect{geom.R(1, 1, 3, 3), geom.R(10, 1, 2, 2)}}
	assert.Equal(t, 0, m.RoomIndexAt(geom.Coordinates{X: 2, Y: 2}))
	assert.Equal(t, 1, m.RoomIndexAt(geom.Coordinates{X: 11, Y: 2}))
	assert.Equal(t, -1, m.RoomIndexAt(geom.Coordinates{X: 4, Y: 2}))
}

func TestMapFingerprintIgnoresID(t *testing.T) {
	rows := []string{
		"%%%%%",
		"%@,,%",
		"%%%%%",
	}
	a, err := ParseLayout(rows)
	require.NoError(t, err)
	b, err := ParseLayout(rows)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	require.NoError(t, b.Tiles.Set(geom.Coordinates{X: 3, Y: 1}, TileFloor))
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestMapStringRoundTrips(t *testing.T) {
	rows := []string{
		"  ^^^^  ",
		"  #..#  ",
		"%%#@<#%%",
		",,,..>,,",
		"%%^^^^%%",
	}
	m, err := ParseLayout(rows)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(rows, "\n")+"\n", m.String())
}
