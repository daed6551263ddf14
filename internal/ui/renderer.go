package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/samdwyer/dungeongen/internal/gamedata"
	"github.com/samdwyer/dungeongen/internal/geom"
	"github.com/samdwyer/dungeongen/internal/world"
)

// statusLines is the number of rows kept below the map for messages.
const statusLines = 2

// Renderer handles drawing maps to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// View is one frame of the viewer.
type View struct {
	Map     *world.Map
	TileSet *gamedata.TileSet
	// Marker is drawn on top of the map and kept on screen.
	Marker geom.Coordinates
	Status []string
}

// Render draws the visible part of the map, the marker and the status lines.
func (r *Renderer) Render(v View) {
	r.screen.Clear()

	styles, cellWidth := tileStyles(v.TileSet)
	screenW, screenH := r.screen.Size()
	cols, rows := screenW/cellWidth, screenH-statusLines
	origin := Camera(v.Map.Width, v.Map.Height, cols, rows, v.Marker)

	for sy := 0; sy < rows && origin.Y+sy < v.Map.Height; sy++ {
		for sx := 0; sx < cols && origin.X+sx < v.Map.Width; sx++ {
			c := geom.Coordinates{X: origin.X + sx, Y: origin.Y + sy}
			s := styles[v.Map.Tile(c)]
			r.drawCell(sx*cellWidth, sy, cellWidth, s.symbol, s.style)
		}
	}

	if m := v.Marker.Sub(origin); m.DX >= 0 && m.DX < cols && m.DY >= 0 && m.DY < rows {
		markerStyle := tcell.StyleDefault.
			Foreground(tcell.ColorYellow).
			Bold(true)
		r.drawCell(m.DX*cellWidth, m.DY, cellWidth, '@', markerStyle)
	}

	for i, line := range v.Status {
		if i >= statusLines {
			break
		}
		r.RenderMessage(line, screenH-statusLines+i)
	}

	r.screen.Show()
}

// drawCell writes one map cell, padding narrow glyphs when the tile set uses
// double width symbols.
func (r *Renderer) drawCell(x, y, cellWidth int, ch rune, style tcell.Style) {
	r.screen.SetContent(x, y, ch, style)
	if cellWidth == 2 && runewidth.RuneWidth(ch) < 2 {
		r.screen.SetContent(x+1, y, ' ', style)
	}
}

// RenderMessage displays a message on row y, truncated to the screen width.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	width, _ := r.screen.Size()
	x := 0
	for _, ch := range runewidth.Truncate(msg, width, "…") {
		r.screen.SetContent(x, y, ch, style)
		x += max(runewidth.RuneWidth(ch), 1)
	}
}

type cellStyle struct {
	symbol rune
	style  tcell.Style
}

// tileStyles resolves the tile set once per frame. The cell width is 2 when
// any symbol is double width.
func tileStyles(set *gamedata.TileSet) (map[world.TileType]cellStyle, int) {
	styles := make(map[world.TileType]cellStyle, len(world.TileTypes))
	cellWidth := 1
	for _, t := range world.TileTypes {
		s, ok := gamedata.TileStyle{}, false
		if set != nil {
			s, ok = set.Style(t.String())
		}
		if !ok {
			styles[t] = fallbackStyle(t)
			continue
		}
		if runewidth.StringWidth(s.Symbol) == 2 {
			cellWidth = 2
		}
		styles[t] = cellStyle{symbol: s.SymbolRune(), style: s.TCellStyle()}
	}
	return styles, cellWidth
}

// fallbackStyle draws a tile with no tile set entry.
func fallbackStyle(t world.TileType) cellStyle {
	switch {
	case t == world.TileNone:
		return cellStyle{symbol: ' ', style: tcell.StyleDefault}
	case t.IsWall():
		return cellStyle{symbol: '#', style: tcell.StyleDefault.Foreground(tcell.ColorDarkGray)}
	case t == world.TileStairsUp:
		return cellStyle{symbol: '<', style: tcell.StyleDefault.Foreground(tcell.ColorYellow)}
	case t == world.TileStairsDown:
		return cellStyle{symbol: '>', style: tcell.StyleDefault.Foreground(tcell.ColorYellow)}
	default:
		return cellStyle{symbol: '.', style: tcell.StyleDefault.Foreground(tcell.ColorGray)}
	}
}

// Camera returns the map cell drawn at the top-left of a cols x rows
// viewport so that focus stays centred where the map allows.
func Camera(mapW, mapH, cols, rows int, focus geom.Coordinates) geom.Coordinates {
	return geom.Coordinates{X: axisOrigin(mapW, cols, focus.X), Y: axisOrigin(mapH, rows, focus.Y)}
}

func axisOrigin(size, view, focus int) int {
	if view <= 0 || size <= view {
		return 0
	}
	return min(max(focus-view/2, 0), size-view)
}
