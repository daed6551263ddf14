package gamedata

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// TileStyle is how one tile type is drawn.
type TileStyle struct {
	Symbol     string `json:"symbol"`     // Single glyph, may be double width (e.g., "█")
	Color      string `json:"color"`      // Foreground hex color
	Background string `json:"background"` // Background hex color, empty for the terminal default
}

// SymbolRune returns the symbol as a rune for rendering.
func (s TileStyle) SymbolRune() rune {
	for _, r := range s.Symbol {
		return r
	}
	return ' '
}

// TCellStyle returns the tcell style for this tile.
func (s TileStyle) TCellStyle() tcell.Style {
	style := tcell.StyleDefault
	if fg, err := ParseHexColor(s.Color); err == nil {
		style = style.Foreground(fg)
	}
	if bg, err := ParseHexColor(s.Background); err == nil {
		style = style.Background(bg)
	}
	return style
}

// TileSet maps tile type names (e.g., "floor_hall") to their visual style.
type TileSet struct {
	ID    string               `json:"id"`
	Name  string               `json:"name"`
	Tiles map[string]TileStyle `json:"tiles"`
}

// Style returns the style for a tile type name.
func (t *TileSet) Style(name string) (TileStyle, bool) {
	s, ok := t.Tiles[name]
	return s, ok
}

// Validate checks that every named tile has a symbol and parseable colors.
func (t *TileSet) Validate(names []string) error {
	for _, name := range names {
		s, ok := t.Tiles[name]
		if !ok {
			return fmt.Errorf("tile set %s: no style for %s", t.ID, name)
		}
		if s.Symbol == "" {
			return fmt.Errorf("tile set %s: %s has no symbol", t.ID, name)
		}
		if _, err := ParseHexColor(s.Color); err != nil {
			return fmt.Errorf("tile set %s: %s: %w", t.ID, name, err)
		}
		if _, err := ParseHexColor(s.Background); err != nil {
			return fmt.Errorf("tile set %s: %s background: %w", t.ID, name, err)
		}
	}
	return nil
}

// TileSetsFile represents the structure of tilesets.json.
type TileSetsFile struct {
	TileSets []TileSet `json:"tilesets"`
}

// LoadTileSets loads tile set definitions from the embedded tilesets.json file.
func LoadTileSets() ([]TileSet, error) {
	file, err := Load[TileSetsFile]("tilesets.json")
	if err != nil {
		return nil, err
	}
	return file.TileSets, nil
}
