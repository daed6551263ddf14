package gamedata

import (
	"errors"
	"fmt"
	"sort"

	"github.com/samdwyer/dungeongen/internal/world"
)

// tileNames lists every tile type a tile set must style.
func tileNames() []string {
	names := make([]string, 0, len(world.TileTypes))
	for _, t := range world.TileTypes {
		names = append(names, t.String())
	}
	return names
}

// TileSetRegistry holds loaded tile sets. The first set is the default.
type TileSetRegistry struct {
	sets []TileSet
	byID map[string]*TileSet
}

// NewTileSetRegistry creates a registry after checking that every set styles
// every tile type.
func NewTileSetRegistry(sets []TileSet) (*TileSetRegistry, error) {
	if len(sets) == 0 {
		return nil, errors.New("no tile sets defined")
	}
	r := &TileSetRegistry{sets: sets, byID: make(map[string]*TileSet, len(sets))}
	names := tileNames()
	for i := range sets {
		if _, dup := r.byID[sets[i].ID]; dup {
			return nil, fmt.Errorf("duplicate tile set %s", sets[i].ID)
		}
		if err := sets[i].Validate(names); err != nil {
			return nil, err
		}
		r.byID[sets[i].ID] = &sets[i]
	}
	return r, nil
}

// LoadTileSetRegistry loads and creates a registry from the embedded tilesets.json.
func LoadTileSetRegistry() (*TileSetRegistry, error) {
	sets, err := LoadTileSets()
	if err != nil {
		return nil, err
	}
	return NewTileSetRegistry(sets)
}

// MustLoadTileSetRegistry loads a registry, panicking on error.
func MustLoadTileSetRegistry() *TileSetRegistry {
	registry, err := LoadTileSetRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the tile set with the given ID, or nil if not found.
func (r *TileSetRegistry) GetByID(id string) *TileSet {
	return r.byID[id]
}

// Resolve returns the tile set with the given ID, falling back to the default.
func (r *TileSetRegistry) Resolve(id string) *TileSet {
	if s := r.byID[id]; s != nil {
		return s
	}
	return r.Default()
}

// Default returns the first tile set.
func (r *TileSetRegistry) Default() *TileSet {
	return &r.sets[0]
}

// All returns all tile sets.
func (r *TileSetRegistry) All() []TileSet {
	return r.sets
}

// Count returns the number of tile sets in the registry.
func (r *TileSetRegistry) Count() int {
	return len(r.sets)
}

// =============================================================================
// LevelRegistry
// =============================================================================

// LevelRegistry holds level specs ordered by depth.
type LevelRegistry struct {
	levels []LevelSpec
	byID   map[string]*LevelSpec
}

// NewLevelRegistry creates a registry from level specs, validating each one.
func NewLevelRegistry(levels []LevelSpec) (*LevelRegistry, error) {
	if len(levels) == 0 {
		return nil, errors.New("no levels defined")
	}
	sorted := make([]LevelSpec, len(levels))
	copy(sorted, levels)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Depth < sorted[j].Depth })

	r := &LevelRegistry{levels: sorted, byID: make(map[string]*LevelSpec, len(sorted))}
	for i := range sorted {
		if err := sorted[i].Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byID[sorted[i].ID]; dup {
			return nil, fmt.Errorf("duplicate level %s", sorted[i].ID)
		}
		r.byID[sorted[i].ID] = &sorted[i]
	}
	return r, nil
}

// LoadLevelRegistry loads and creates a registry from the embedded levels.json.
func LoadLevelRegistry() (*LevelRegistry, error) {
	levels, err := LoadLevels()
	if err != nil {
		return nil, err
	}
	return NewLevelRegistry(levels)
}

// MustLoadLevelRegistry loads a registry, panicking on error.
func MustLoadLevelRegistry() *LevelRegistry {
	registry, err := LoadLevelRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the level with the given ID, or nil if not found.
func (r *LevelRegistry) GetByID(id string) *LevelSpec {
	return r.byID[id]
}

// ByDepth returns the first level at the given depth, or nil.
func (r *LevelRegistry) ByDepth(depth int) *LevelSpec {
	for i := range r.levels {
		if r.levels[i].Depth == depth {
			return &r.levels[i]
		}
	}
	return nil
}

// Index returns the position of the level in depth order, or -1.
func (r *LevelRegistry) Index(id string) int {
	for i := range r.levels {
		if r.levels[i].ID == id {
			return i
		}
	}
	return -1
}

// At returns the level at position i in depth order.
func (r *LevelRegistry) At(i int) *LevelSpec {
	return &r.levels[i]
}

// All returns all levels in depth order.
func (r *LevelRegistry) All() []LevelSpec {
	return r.levels
}

// Count returns the number of levels in the registry.
func (r *LevelRegistry) Count() int {
	return len(r.levels)
}
