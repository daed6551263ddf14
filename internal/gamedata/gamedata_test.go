package gamedata

import (
	"testing"
	"testing/fstest"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/dungeongen/internal/world"
)

func TestLoadTileSets(t *testing.T) {
	registry, err := LoadTileSetRegistry()
	require.NoError(t, err)

	assert.Equal(t, 2, registry.Count())
	assert.Equal(t, "classic", registry.Default().ID)
	require.NotNil(t, registry.GetByID("crypt"))
	assert.Nil(t, registry.GetByID("missing"))
	assert.Equal(t, "classic", registry.Resolve("missing").ID)

	for _, set := range registry.All() {
		for _, tile := range world.TileTypes {
			style, ok := set.Style(tile.String())
			require.True(t, ok, "%s has no %s style", set.ID, tile)
			assert.NotEmpty(t, style.Symbol)
		}
	}
}

func TestNewTileSetRegistryRejectsIncompleteSets(t *testing.T) {
	_, err := NewTileSetRegistry(nil)
	assert.Error(t, err)

	_, err = NewTileSetRegistry([]TileSet{{ID: "bare", Tiles: map[string]TileStyle{
		"floor": {Symbol: ".", Color: "#FFFFFF"},
	}}})
	assert.ErrorContains(t, err, "no style for none")
}

func TestLoadLevels(t *testing.T) {
	registry, err := LoadLevelRegistry()
	require.NoError(t, err)
	require.Positive(t, registry.Count())

	entrance := registry.GetByID("entrance")
	require.NotNil(t, entrance)
	assert.Equal(t, KindPredefined, entrance.Kind)
	assert.Equal(t, entrance, registry.ByDepth(0))

	m, err := world.ParseLayout(entrance.Layout)
	require.NoError(t, err, "the predefined layout must parse")
	assert.True(t, m.IsPassable(m.Start))

	prev := -1
	for i, level := range registry.All() {
		assert.GreaterOrEqual(t, level.Depth, prev, "levels are ordered by depth")
		prev = level.Depth
		assert.Equal(t, i, registry.Index(level.ID))
		assert.NoError(t, level.Validate())
	}
	assert.Equal(t, -1, registry.Index("missing"))
	assert.Nil(t, registry.ByDepth(99))
}

func TestLevelSpecValidate(t *testing.T) {
	tests := []struct {
		name  string
		level LevelSpec
		valid bool
	}{
		{"generated", LevelSpec{ID: "a", Kind: KindGenerated, Width: 80, Height: 40}, true},
		{"generated without size", LevelSpec{ID: "a", Kind: KindGenerated}, false},
		{"rooms inverted", LevelSpec{ID: "a", Kind: KindGenerated, Width: 80, Height: 40, MinRooms: 9, MaxRooms: 2}, false},
		{"predefined", LevelSpec{ID: "a", Kind: KindPredefined, Layout: []string{"@"}}, true},
		{"predefined without layout", LevelSpec{ID: "a", Kind: KindPredefined}, false},
		{"unknown kind", LevelSpec{ID: "a", Kind: "cave"}, false},
		{"negative density", LevelSpec{ID: "a", Kind: KindPredefined, Layout: []string{"@"}, EnemyDensity: -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.level.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNewLevelRegistryRejectsDuplicates(t *testing.T) {
	level := LevelSpec{ID: "a", Kind: KindPredefined, Layout: []string{"@"}}
	_, err := NewLevelRegistry([]LevelSpec{level, level})
	assert.ErrorContains(t, err, "duplicate")
}

func TestLoadFromRejectsUnknownFields(t *testing.T) {
	fsys := fstest.MapFS{
		"levels.json": {Data: []byte(`{"levels": [{"id": "a", "kind": "generated", "widht": 3}]}`)},
	}
	_, err := LoadFrom[LevelsFile](fsys, "levels.json")
	assert.ErrorContains(t, err, "widht")

	_, err = LoadFrom[LevelsFile](fsys, "missing.json")
	assert.Error(t, err)
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#00FF00", true},
		{"#0000FF", true},
		{"#FFFFFF", true},
		{"#000000", true},
		{"", true},
		{"invalid", false},
		{"#FFFF", false}, // Neither long nor short form
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}

	red, err := ParseHexColor("#FF0000")
	require.NoError(t, err)
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), red)
}

func TestTileStyleMethods(t *testing.T) {
	style := TileStyle{Symbol: "▀", Color: "#FF0000", Background: "#000080"}
	assert.Equal(t, '▀', style.SymbolRune())

	fg, bg, _ := style.TCellStyle().Decompose()
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), fg)
	assert.Equal(t, tcell.NewRGBColor(0, 0, 128), bg)

	assert.Equal(t, ' ', TileStyle{}.SymbolRune())
}
