// Package game builds levels from their specs and runs the terminal viewer.
package game

// State represents the current viewer state.
type State int

const (
	// StateView shows the current level with a movable marker.
	StateView State = iota
	// StateFailed shows why the current level could not be built.
	StateFailed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateView:
		return "view"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
