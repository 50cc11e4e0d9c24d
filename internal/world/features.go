package world

import (
	"strconv"

	"github.com/zyedidia/generic/mapset"
)

// Ruin placement parameters.
const (
	minRuins       = 5
	extraRuins     = 10
	ruinMargin     = 50 // Interior margin for ruin anchors
	minRuinSize    = 5
	ruinSizeRange  = 10 // sizes 5..14 per axis
	ruinWallChance = 70 // percent of perimeter cells left standing
	ruinAttempts   = 20 // rejection-sampling tries per ruin
)

// Forest placement parameters.
const (
	minForests      = 10
	extraForests    = 15
	minForestSize   = 10
	forestSizeRange = 30
	forestRadius    = 10
	minTreeDensity  = 40
	treeDensityRng  = 41 // density 40..80 percent
	largeTreeOdds   = 5  // 1 in 5 trees is a 2x2 variant
	treeMoveCost    = 2
)

// Rock formation parameters.
const (
	minRocks     = 10
	extraRocks   = 20
	maxBoulders  = 5
	rockSpread   = 3
	boulderRange = 2*rockSpread + 1
)

// Ruin door sides.
var doorSides = [4]string{"north", "south", "west", "east"}

// placeRuins stamps walled ruins onto the grid. Candidates overlapping an
// earlier ruin are rejected so each ruin keeps exactly one door.
func (b *builder) placeRuins() int {
	count := minRuins + b.rng.Intn(extraRuins)
	placed := make([]Rect, 0, count)

	for i := 0; i < count; i++ {
		site, ok := b.findRuinSite(placed)
		if !ok {
			continue
		}
		b.buildRuin(site)
		placed = append(placed, site)
	}
	return len(placed)
}

// findRuinSite samples a ruin rectangle inside the interior margin.
func (b *builder) findRuinSite(placed []Rect) (Rect, bool) {
	for attempt := 0; attempt < ruinAttempts; attempt++ {
		w := minRuinSize + b.rng.Intn(ruinSizeRange)
		h := minRuinSize + b.rng.Intn(ruinSizeRange)
		site := Rect{
			X:      b.interiorCoord(b.m.width),
			Y:      b.interiorCoord(b.m.height),
			Width:  w,
			Height: h,
		}

		if site.X+site.Width > b.m.width || site.Y+site.Height > b.m.height {
			continue
		}
		if overlapsAny(site, placed) {
			continue
		}
		return site, true
	}
	return Rect{}, false
}

// interiorCoord picks an anchor coordinate inside the margin along one axis.
func (b *builder) interiorCoord(extent int) int {
	lo, hi := interiorSpan(extent)
	return lo + intn(b.rng, hi-lo)
}

// interiorSpan returns the anchor range [lo, hi) for an axis. Axes too short
// for the full margin fall back to a quarter of their length.
func interiorSpan(extent int) (int, int) {
	margin := ruinMargin
	if 2*margin >= extent {
		margin = extent / 4
	}
	return margin, extent - margin
}

func overlapsAny(r Rect, others []Rect) bool {
	for _, o := range others {
		if r.Intersects(o) {
			return true
		}
	}
	return false
}

// buildRuin draws a crumbling wall ring, flagstone interior, one door and
// scattered pillars, then records the ruin.
func (b *builder) buildRuin(r Rect) {
	standing := 0
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			if !r.OnPerimeter(x, y) {
				*b.m.at(x, y) = b.tiles.ruinFloor
				continue
			}
			// Crumbled sections keep whatever terrain was there.
			if b.rng.Intn(100) < ruinWallChance {
				*b.m.at(x, y) = b.tiles.ruinWall
				standing++
			}
		}
	}

	side := b.rng.Intn(len(doorSides))
	dx, dy := doorPosition(r, side)
	*b.m.at(dx, dy) = b.tiles.door

	pillars := r.Width / 3
	for i := 0; i < pillars; i++ {
		px := r.X + 1 + b.rng.Intn(r.Width-2)
		py := r.Y + 1 + b.rng.Intn(r.Height-2)
		*b.m.at(px, py) = b.tiles.ruinWall
	}

	b.m.addFeature(Feature{
		Type:   FeatureRuin,
		Bounds: r,
		Properties: map[string]string{
			"door_side":      doorSides[side],
			"pillars":        strconv.Itoa(pillars),
			"walls_standing": strconv.Itoa(standing),
		},
	})
}

// doorPosition returns the midpoint of the given side of r.
func doorPosition(r Rect, side int) (int, int) {
	cx, cy := r.Center()
	switch side {
	case 0:
		return cx, r.Y
	case 1:
		return cx, r.Y + r.Height - 1
	case 2:
		return r.X, cy
	default:
		return r.X + r.Width - 1, cy
	}
}

// placeForests scatters tree clusters. Trees only grow on Floor tiles, so
// water, walls and doors placed earlier are never touched.
func (b *builder) placeForests() int {
	count := minForests + b.rng.Intn(extraForests)

	for i := 0; i < count; i++ {
		cx := b.rng.Intn(b.m.width)
		cy := b.rng.Intn(b.m.height)
		size := minForestSize + b.rng.Intn(forestSizeRange)
		density := minTreeDensity + b.rng.Intn(treeDensityRng)

		trees := mapset.New[Point]()
		large := 0
		for j := 0; j < size; j++ {
			tx := cx + b.rng.Intn(2*forestRadius+1) - forestRadius
			ty := cy + b.rng.Intn(2*forestRadius+1) - forestRadius
			if !b.isFloor(tx, ty) {
				continue
			}
			if b.rng.Intn(100) >= density {
				continue
			}

			if b.rng.Intn(largeTreeOdds) == 0 {
				large++
				for _, p := range [4]Point{{tx, ty}, {tx + 1, ty}, {tx, ty + 1}, {tx + 1, ty + 1}} {
					b.plantTree(p, trees)
				}
				continue
			}
			b.plantTree(Point{tx, ty}, trees)
		}

		b.m.addFeature(Feature{
			Type:   FeatureForest,
			Bounds: around(cx, cy, forestRadius).Clip(b.m.width, b.m.height),
			Properties: map[string]string{
				"trees":       strconv.Itoa(trees.Size()),
				"large_trees": strconv.Itoa(large),
				"density":     strconv.Itoa(density),
			},
		})
	}
	return count
}

// plantTree places a single tree if the target is still open floor.
func (b *builder) plantTree(p Point, trees mapset.Set[Point]) {
	if !b.isFloor(p.X, p.Y) {
		return
	}
	*b.m.at(p.X, p.Y) = b.tiles.tree
	trees.Put(p)
}

// placeRocks drops small boulder clusters. Anchors on water are abandoned;
// boulders only replace Floor tiles.
func (b *builder) placeRocks() int {
	count := minRocks + b.rng.Intn(extraRocks)
	placed := 0

	for i := 0; i < count; i++ {
		ax := b.rng.Intn(b.m.width)
		ay := b.rng.Intn(b.m.height)
		if b.m.at(ax, ay).Type == TileWater {
			continue
		}

		size := 1 + b.rng.Intn(maxBoulders)
		boulders := 0
		for j := 0; j < size; j++ {
			bx := ax + b.rng.Intn(boulderRange) - rockSpread
			by := ay + b.rng.Intn(boulderRange) - rockSpread
			if !b.isFloor(bx, by) {
				continue
			}
			*b.m.at(bx, by) = b.tiles.boulder
			boulders++
		}

		b.m.addFeature(Feature{
			Type:   FeatureRockFormation,
			Bounds: around(ax, ay, rockSpread).Clip(b.m.width, b.m.height),
			Properties: map[string]string{
				"boulders": strconv.Itoa(boulders),
			},
		})
		placed++
	}
	return placed
}

// isFloor reports whether (x, y) is on the grid and currently Floor.
func (b *builder) isFloor(x, y int) bool {
	return b.m.InBounds(x, y) && b.m.at(x, y).Type == TileFloor
}
