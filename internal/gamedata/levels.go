package gamedata

import "fmt"

// Level kinds.
const (
	KindGenerated  = "generated"
	KindPredefined = "predefined"
)

// LevelSpec describes one dungeon level loaded from JSON. Generated levels
// carry generator parameters; predefined levels carry an ASCII layout.
type LevelSpec struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Kind         string   `json:"kind"`
	Depth        int      `json:"depth"`
	Width        int      `json:"width,omitempty"`
	Height       int      `json:"height,omitempty"`
	MinRooms     int      `json:"minRooms,omitempty"`
	MaxRooms     int      `json:"maxRooms,omitempty"`
	EnemyDensity float64  `json:"enemyDensity"` // Expected enemies per room
	ItemDensity  float64  `json:"itemDensity"`  // Expected items per room
	TileSet      string   `json:"tileSet"`      // Tile set ID, empty for the default
	Layout       []string `json:"layout,omitempty"`
}

// Validate checks the fields required by the level kind.
func (l *LevelSpec) Validate() error {
	switch l.Kind {
	case KindGenerated:
		if l.Width <= 0 || l.Height <= 0 {
			return fmt.Errorf("level %s: generated levels need a size, got %dx%d", l.ID, l.Width, l.Height)
		}
		if l.MaxRooms > 0 && l.MinRooms > l.MaxRooms {
			return fmt.Errorf("level %s: minRooms %d exceeds maxRooms %d", l.ID, l.MinRooms, l.MaxRooms)
		}
	case KindPredefined:
		if len(l.Layout) == 0 {
			return fmt.Errorf("level %s: predefined levels need a layout", l.ID)
		}
	default:
		return fmt.Errorf("level %s: unknown kind %q", l.ID, l.Kind)
	}
	if l.EnemyDensity < 0 || l.ItemDensity < 0 {
		return fmt.Errorf("level %s: densities must not be negative", l.ID)
	}
	return nil
}

// LevelsFile represents the structure of levels.json.
type LevelsFile struct {
	Levels []LevelSpec `json:"levels"`
}

// LoadLevels loads level definitions from the embedded levels.json file.
func LoadLevels() ([]LevelSpec, error) {
	file, err := Load[LevelsFile]("levels.json")
	if err != nil {
		return nil, err
	}
	return file.Levels, nil
}
