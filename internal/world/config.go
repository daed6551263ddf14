package world

import "math/rand"

const (
	// Default dungeon dimensions
	DefaultWidth  = 80
	DefaultHeight = 40
)

// Size is a width/height pair.
type Size struct {
	Width, Height int
}

// Config drives procedural generation for one map.
type Config struct {
	Width, Height int

	// MinRegion is the smallest BSP leaf. It must hold MinRoom plus Margin on
	// every side.
	MinRegion Size
	// MinRoom and MaxRoom bound room dimensions. A zero MaxRoom dimension
	// lets rooms grow to fill their region.
	MinRoom Size
	MaxRoom Size
	// Margin is the number of cells kept between a room and its region
	// boundary for walls.
	Margin int

	// MinRooms and MaxRooms bound the number of leaves. A zero MaxRooms
	// splits until no region can be divided further.
	MinRooms int
	MaxRooms int

	// SplitRatio is the aspect ratio at which the longer axis is always split.
	SplitRatio float64
	// MinOverlap is the shared span two rooms need for a straight corridor.
	MinOverlap int
	// RouteAttempts caps the candidate corridors tried per shape and pair.
	RouteAttempts int

	PlaceStairs bool
}

// DefaultConfig returns parameters that produce a medium sized level.
func DefaultConfig() Config {
	return Config{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		MinRegion:     Size{Width: 10, Height: 8},
		MinRoom:       Size{Width: 4, Height: 3},
		Margin:        1,
		MinRooms:      4,
		MaxRooms:      12,
		SplitRatio:    1.25,
		MinOverlap:    1,
		RouteAttempts: 32,
		PlaceStairs:   true,
	}
}

// Validate checks every parameter and the cross-component invariants between
// the partitioner and the room placer.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return configErrorf("size", "map must be at least 1x1, got %dx%d", c.Width, c.Height)
	case c.MinRoom.Width < 1 || c.MinRoom.Height < 1:
		return configErrorf("min_room", "must be at least 1x1, got %dx%d", c.MinRoom.Width, c.MinRoom.Height)
	case c.Margin < 1:
		return configErrorf("margin", "must leave at least one cell for walls, got %d", c.Margin)
	case c.MinRegion.Width < c.MinRoom.Width+2*c.Margin:
		return configErrorf("min_region", "width %d cannot hold a %d wide room with margin %d",
			c.MinRegion.Width, c.MinRoom.Width, c.Margin)
	case c.MinRegion.Height < c.MinRoom.Height+2*c.Margin:
		return configErrorf("min_region", "height %d cannot hold a %d tall room with margin %d",
			c.MinRegion.Height, c.MinRoom.Height, c.Margin)
	case c.MaxRoom.Width != 0 && c.MaxRoom.Width < c.MinRoom.Width:
		return configErrorf("max_room", "width %d is below min_room width %d", c.MaxRoom.Width, c.MinRoom.Width)
	case c.MaxRoom.Height != 0 && c.MaxRoom.Height < c.MinRoom.Height:
		return configErrorf("max_room", "height %d is below min_room height %d", c.MaxRoom.Height, c.MinRoom.Height)
	case c.Width < c.MinRegion.Width || c.Height < c.MinRegion.Height:
		return configErrorf("size", "%dx%d map cannot hold a %dx%d region",
			c.Width, c.Height, c.MinRegion.Width, c.MinRegion.Height)
	case c.MinRooms < 0 || c.MaxRooms < 0:
		return configErrorf("rooms", "room counts must not be negative")
	case c.MaxRooms > 0 && c.MinRooms > c.MaxRooms:
		return configErrorf("rooms", "min %d exceeds max %d", c.MinRooms, c.MaxRooms)
	case c.MinRooms > c.capacity():
		return configErrorf("rooms", "%dx%d map fits at most %d regions, %d requested",
			c.Width, c.Height, c.capacity(), c.MinRooms)
	case c.SplitRatio < 1:
		return configErrorf("split_ratio", "must be at least 1, got %g", c.SplitRatio)
	case c.MinOverlap < 1:
		return configErrorf("min_overlap", "must be at least 1, got %d", c.MinOverlap)
	case c.MinOverlap > min(c.MinRoom.Width, c.MinRoom.Height):
		return configErrorf("min_overlap", "%d exceeds the %dx%d minimum room, so rooms that size never get straight corridors",
			c.MinOverlap, c.MinRoom.Width, c.MinRoom.Height)
	case c.RouteAttempts < 1:
		return configErrorf("route_attempts", "must be at least 1, got %d", c.RouteAttempts)
	}
	return nil
}

// capacity is the number of leaves a grid-aligned partition of the map holds.
// Partition always reaches MinRooms when it does not exceed this.
func (c Config) capacity() int {
	return (c.Width / c.MinRegion.Width) * (c.Height / c.MinRegion.Height)
}

// targetRooms draws the leaf budget for one generation. Zero means unlimited.
func (c Config) targetRooms(rng *rand.Rand) int {
	if c.MaxRooms == 0 {
		return 0
	}
	lo := max(c.MinRooms, 1)
	return lo + rng.Intn(c.MaxRooms-lo+1)
}
