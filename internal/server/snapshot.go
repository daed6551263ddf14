package server

import (
	"fmt"
	"strings"

	"github.com/samdwyer/dungeongen/internal/game"
	"github.com/samdwyer/dungeongen/internal/gamedata"
	"github.com/samdwyer/dungeongen/internal/geom"
	"github.com/samdwyer/dungeongen/internal/protocol"
	"github.com/samdwyer/dungeongen/internal/world"
)

// Snapshot renders a built level with the symbols of set.
func Snapshot(level *game.Level, set *gamedata.TileSet) protocol.MapSnapshot {
	m := level.Map

	symbols := make(map[world.TileType]string, len(world.TileTypes))
	legend := make(map[string]string, len(world.TileTypes))
	for _, t := range world.TileTypes {
		sym := "?"
		if style, ok := set.Style(t.String()); ok {
			sym = string(style.SymbolRune())
		}
		symbols[t] = sym
		legend[sym] = t.String()
	}

	rows := make([]string, m.Height)
	var b strings.Builder
	for y := range m.Height {
		b.Reset()
		for x := range m.Width {
			b.WriteString(symbols[m.Tile(geom.Coordinates{X: x, Y: y})])
		}
		rows[y] = b.String()
	}

	return protocol.MapSnapshot{
		ID:          m.ID.String(),
		Level:       level.Spec.ID,
		Seed:        level.Seed,
		Width:       m.Width,
		Height:      m.Height,
		Start:       point(m.Start),
		Tiles:       rows,
		Legend:      legend,
		StairsUp:    pointPtr(m.StairsUp),
		StairsDown:  pointPtr(m.StairsDown),
		Rooms:       rooms(m.Rooms),
		Attempts:    level.Attempts,
		Fingerprint: fmt.Sprintf("%016x", m.Fingerprint()),
	}
}

// Summary describes a level spec for listing.
func Summary(spec *gamedata.LevelSpec) protocol.LevelSummary {
	return protocol.LevelSummary{
		ID:           spec.ID,
		Name:         spec.Name,
		Kind:         spec.Kind,
		Depth:        spec.Depth,
		Width:        spec.Width,
		Height:       spec.Height,
		MinRooms:     spec.MinRooms,
		MaxRooms:     spec.MaxRooms,
		EnemyDensity: spec.EnemyDensity,
		ItemDensity:  spec.ItemDensity,
		TileSet:      spec.TileSet,
	}
}

func point(c geom.Coordinates) protocol.Point {
	return protocol.Point{X: c.X, Y: c.Y}
}

func rooms(rs []geom.Rect) []protocol.Rect {
	out := make([]protocol.Rect, len(rs))
	for i, r := range rs {
		out[i] = protocol.Rect{X: r.Left, Y: r.Top, W: r.Width, H: r.Height}
	}
	return out
}

func pointPtr(c *geom.Coordinates) *protocol.Point {
	if c == nil {
		return nil
	}
	p := point(*c)
	return &p
}
