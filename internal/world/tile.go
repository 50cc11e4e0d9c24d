// Package world provides the procedural overworld generator and the map it produces.
package world

import "fmt"

// TileType classifies a tile for passability.
type TileType int

const (
	// TileFloor is open ground: dirt, grass, vegetation, trees, ruin flagstones.
	TileFloor TileType = iota
	// TileWall blocks movement: ruin walls, pillars, boulders.
	TileWall
	// TileDoor is a passable gap cut into a ruin wall.
	TileDoor
	// TileWater blocks movement: lakes and rivers.
	TileWater
	// TileObstacle is reserved for external overwrites; it stays passable.
	TileObstacle
)

var tileTypeNames = [...]string{
	TileFloor:    "Floor",
	TileWall:     "Wall",
	TileDoor:     "Door",
	TileWater:    "Water",
	TileObstacle: "Obstacle",
}

// String returns the tile type name used in save files.
func (t TileType) String() string {
	if t < 0 || int(t) >= len(tileTypeNames) {
		return "Unknown"
	}
	return tileTypeNames[t]
}

// ParseTileType converts a tile type name back to a TileType.
func ParseTileType(name string) (TileType, error) {
	for i, n := range tileTypeNames {
		if n == name {
			return TileType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tile type %q", name)
}

// Tile is a single map cell. Display attributes and movement cost are baked
// in at generation time.
type Tile struct {
	Type         TileType
	Glyph        rune
	Foreground   string // Color id (hex)
	Background   string // Color id (hex)
	MovementCost int
}

// IsPassable returns true if an entity may occupy the tile.
func (t Tile) IsPassable() bool {
	return t.Type != TileWall && t.Type != TileWater
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return t.Glyph
}

// Point is a grid coordinate.
type Point struct {
	X, Y int
}
