package world

import (
	"fmt"

	"github.com/samdwyer/dungeongen/internal/geom"
	"github.com/samdwyer/dungeongen/internal/grid"
)

const startSymbol = '@'

var legend = map[rune]TileType{
	'.': TileFloor,
	',': TileFloorHall,
	'#': TileWall,
	'^': TileWallTop,
	'%': TileWallHall,
	' ': TileNone,
	'<': TileStairsUp,
	'>': TileStairsDown,
}

var symbols = func() map[TileType]rune {
	out := make(map[TileType]rune, len(legend))
	for r, t := range legend {
		out[t] = r
	}
	return out
}()

func legendSymbol(t TileType) rune {
	if r, ok := symbols[t]; ok {
		return r
	}
	return '?'
}

// ParseLayout builds a map from rows of legend symbols. Exactly one '@' marks
// the start, which is a room floor. Rows must all have the same length.
func ParseLayout(rows []string) (*Map, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrInvalidMap)
	}
	width := len([]rune(rows[0]))
	tiles := grid.New(width, len(rows), TileNone)

	var start *geom.Coordinates
	var up, down []geom.Coordinates
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidMap, y, len(runes), width)
		}
		for x, r := range runes {
			c := geom.Coordinates{X: x, Y: y}
			t, ok := legend[r]
			switch {
			case r == startSymbol:
				if start != nil {
					return nil, fmt.Errorf("%w: second start at %v, first at %v", ErrInvalidMap, c, *start)
				}
				start, t = &c, TileFloor
			case !ok:
				return nil, fmt.Errorf("%w: unknown symbol %q at %v", ErrInvalidMap, r, c)
			case t == TileStairsUp:
				up = append(up, c)
			case t == TileStairsDown:
				down = append(down, c)
			}
			_ = tiles.Set(c, t)
		}
	}
	if start == nil {
		return nil, fmt.Errorf("%w: layout has no start", ErrInvalidMap)
	}

	m, err := NewMap(width, len(rows), *start, tiles)
	if err != nil {
		return nil, err
	}
	if len(up) == 1 {
		m.StairsUp = &up[0]
	}
	if len(down) == 1 {
		m.StairsDown = &down[0]
	}
	return m, nil
}
