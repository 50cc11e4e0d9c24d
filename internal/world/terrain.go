package world

import "github.com/samdwyer/overworld/internal/noise"

const (
	// Spatial frequency divisors for the two noise passes.
	baseScale  = 50.0
	waterScale = 100.0

	// Base biome thresholds on normalized noise.
	dirtBelow  = 0.3
	grassBelow = 0.8

	// Water thresholds on normalized noise.
	deepWaterAbove    = 0.85
	shallowWaterAbove = 0.70
)

// terrainFields returns the base and water noise fields for a map seed.
func terrainFields(seed int64) (base, water *noise.Field) {
	return noise.New(seed), noise.New(seed + 1)
}

// synthesizeTerrain classifies every tile into a base biome, then applies the
// water mask over it. The water pass always runs second and always wins.
func (b *builder) synthesizeTerrain(seed int64) {
	base, water := terrainFields(seed)

	for y := 0; y < b.m.height; y++ {
		for x := 0; x < b.m.width; x++ {
			v := base.Normalized(float64(x)/baseScale, float64(y)/baseScale)
			*b.m.at(x, y) = b.baseTile(v)
		}
	}

	for y := 0; y < b.m.height; y++ {
		for x := 0; x < b.m.width; x++ {
			v := water.Normalized(float64(x)/waterScale, float64(y)/waterScale)
			if t, ok := b.waterTile(v); ok {
				*b.m.at(x, y) = t
			}
		}
	}
}

// baseTile maps a normalized base-noise value to a biome tile.
func (b *builder) baseTile(v float64) Tile {
	switch {
	case v < dirtBelow:
		return b.tiles.dirt
	case v < grassBelow:
		return b.tiles.grass
	default:
		return b.tiles.vegetation
	}
}

// waterTile maps a normalized water-noise value to a water tile, if any.
func (b *builder) waterTile(v float64) (Tile, bool) {
	switch {
	case v > deepWaterAbove:
		return b.tiles.deepWater, true
	case v > shallowWaterAbove:
		return b.tiles.shallowWater, true
	default:
		return Tile{}, false
	}
}
