package world

import (
	"fmt"

	"github.com/samdwyer/overworld/internal/tileset"
)

// Tile ids every tileset must define.
const (
	tileDirt         = "dirt"
	tileGrass        = "grass"
	tileVegetation   = "vegetation"
	tileWaterDeep    = "water_deep"
	tileWaterShallow = "water_shallow"
	tileRuinFloor    = "ruin_floor"
	tileRuinWall     = "ruin_wall"
	tileDoor         = "door"
	tileTree         = "tree"
	tileBoulder      = "boulder"
)

// palette holds the baked tiles generation stamps onto the grid.
type palette struct {
	dirt, grass, vegetation Tile
	deepWater, shallowWater Tile
	ruinFloor, ruinWall     Tile
	door                    Tile
	tree                    Tile
	boulder                 Tile
}

// newPalette resolves every required tile from the tileset.
func newPalette(ts *tileset.Tileset) (*palette, error) {
	var p palette
	slots := []struct {
		id   string
		dst  *Tile
		want TileType
	}{
		{tileDirt, &p.dirt, TileFloor},
		{tileGrass, &p.grass, TileFloor},
		{tileVegetation, &p.vegetation, TileFloor},
		{tileWaterDeep, &p.deepWater, TileWater},
		{tileWaterShallow, &p.shallowWater, TileWater},
		{tileRuinFloor, &p.ruinFloor, TileFloor},
		{tileRuinWall, &p.ruinWall, TileWall},
		{tileDoor, &p.door, TileDoor},
		{tileTree, &p.tree, TileFloor},
		{tileBoulder, &p.boulder, TileWall},
	}

	for _, s := range slots {
		def := ts.GetByID(s.id)
		if def == nil {
			return nil, fmt.Errorf("tileset %q is missing tile %q", ts.Name(), s.id)
		}
		tile, err := tileFromDef(def)
		if err != nil {
			return nil, err
		}
		if tile.Type != s.want {
			return nil, fmt.Errorf("tile %q must be %s, got %s", s.id, s.want, tile.Type)
		}
		*s.dst = tile
	}

	// Trees always slow movement, whatever the tileset says.
	p.tree.MovementCost = max(p.tree.MovementCost, treeMoveCost)
	return &p, nil
}

// tileFromDef bakes a tileset definition into a Tile.
func tileFromDef(def *tileset.TileDef) (Tile, error) {
	tt, err := ParseTileType(def.Type)
	if err != nil {
		return Tile{}, fmt.Errorf("tile %q: %w", def.ID, err)
	}
	return Tile{
		Type:         tt,
		Glyph:        def.GlyphRune(),
		Foreground:   def.Foreground,
		Background:   def.Background,
		MovementCost: def.MovementCost,
	}, nil
}
