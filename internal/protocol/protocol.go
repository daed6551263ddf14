// Package protocol defines the JSON messages exchanged with browser clients.
package protocol

// Message types.
const (
	TypeGenerate = "generate"
	TypeMap      = "map"
	TypeError    = "error"
)

// Point is a map cell.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect is a room on the map, with W and H in cells.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Request is sent by the client over the websocket.
type Request struct {
	Type  string `json:"type"`
	Level string `json:"level"`
	// Seed picks the map. Zero asks the server for a random one.
	Seed int64 `json:"seed,omitempty"`
}

// Message is sent by the server. Exactly one of Map and Error is set.
type Message struct {
	Type     string       `json:"type"`
	Sequence uint64       `json:"sequence"`
	Map      *MapSnapshot `json:"map,omitempty"`
	Error    *ErrorBody   `json:"error,omitempty"`
}

// MapSnapshot is a generated or predefined level rendered for a client.
type MapSnapshot struct {
	ID     string `json:"id"`
	Level  string `json:"level"`
	Seed   int64  `json:"seed"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Start  Point  `json:"start"`
	// Tiles holds one string per row with one tile set symbol per cell.
	Tiles      []string          `json:"tiles"`
	Legend     map[string]string `json:"legend"`
	StairsUp   *Point            `json:"stairsUp,omitempty"`
	StairsDown *Point            `json:"stairsDown,omitempty"`
	Rooms      []Rect            `json:"rooms"`
	Attempts   int               `json:"attempts"`
	// Fingerprint is hex encoded; JSON numbers cannot hold 64 bits.
	Fingerprint string `json:"fingerprint"`
}

// LevelSummary lists one level without building it.
type LevelSummary struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Kind         string  `json:"kind"`
	Depth        int     `json:"depth"`
	Width        int     `json:"width,omitempty"`
	Height       int     `json:"height,omitempty"`
	MinRooms     int     `json:"minRooms,omitempty"`
	MaxRooms     int     `json:"maxRooms,omitempty"`
	EnemyDensity float64 `json:"enemyDensity"`
	ItemDensity  float64 `json:"itemDensity"`
	TileSet      string  `json:"tileSet"`
}

// ErrorBody reports a failed request. Status is the HTTP status code the
// failure maps to, also on the websocket.
type ErrorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
