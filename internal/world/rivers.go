package world

import "github.com/zyedidia/generic/mapset"

const (
	minRivers       = 3
	extraRivers     = 5  // rivers = minRivers + rand(extraRivers)
	riverBiasChance = 70 // percent of steps that follow the current bias
	riverTurnChance = 5  // percent of steps that re-roll the bias
	riverBankChance = 70 // percent of bank cells that become shallow water
	maxRiverWidth   = 3
)

// Cardinal directions, indexed by a uniform roll in [0,4).
var cardinals = [4]Point{
	{X: 0, Y: -1}, // N
	{X: 1, Y: 0},  // E
	{X: 0, Y: 1},  // S
	{X: -1, Y: 0}, // W
}

// RiverTrace records one river's walk: where it entered, every step it took
// (on or off the grid), and the set of cells it painted.
type RiverTrace struct {
	Entry   Point
	Steps   []Point
	Painted mapset.Set[Point]
}

// carveRivers runs 3 + rand(5) biased random walks from the map edges.
func (b *builder) carveRivers() []RiverTrace {
	count := minRivers + intn(b.rng, extraRivers)
	traces := make([]RiverTrace, 0, count)
	for i := 0; i < count; i++ {
		traces = append(traces, b.carveRiver())
	}
	return traces
}

// carveRiver walks a single river from a random edge point.
func (b *builder) carveRiver() RiverTrace {
	pos := b.edgePoint()
	length := b.m.width/2 + intn(b.rng, b.m.width/2)
	bias := b.rng.Intn(len(cardinals))

	trace := RiverTrace{
		Entry:   pos,
		Steps:   make([]Point, 0, length),
		Painted: mapset.New[Point](),
	}

	for step := 0; step < length; step++ {
		trace.Steps = append(trace.Steps, pos)
		if b.m.InBounds(pos.X, pos.Y) {
			b.paintRiverCell(pos, &trace)
		}

		dir := bias
		if b.rng.Intn(100) >= riverBiasChance {
			dir = b.rng.Intn(len(cardinals))
		}
		if b.rng.Intn(100) < riverTurnChance {
			bias = b.rng.Intn(len(cardinals))
		}
		pos = Point{X: pos.X + cardinals[dir].X, Y: pos.Y + cardinals[dir].Y}
	}

	return trace
}

// edgePoint picks a uniformly random point on one of the four map edges.
func (b *builder) edgePoint() Point {
	switch b.rng.Intn(4) {
	case 0:
		return Point{X: b.rng.Intn(b.m.width), Y: 0}
	case 1:
		return Point{X: b.rng.Intn(b.m.width), Y: b.m.height - 1}
	case 2:
		return Point{X: 0, Y: b.rng.Intn(b.m.height)}
	default:
		return Point{X: b.m.width - 1, Y: b.rng.Intn(b.m.height)}
	}
}

// paintRiverCell marks the channel cell deep and scatters a shallow bank
// around it. The bank is a Manhattan diamond thinned by an independent coin
// flip per cell, so its edge is ragged on purpose.
func (b *builder) paintRiverCell(pos Point, trace *RiverTrace) {
	*b.m.at(pos.X, pos.Y) = b.tiles.deepWater
	trace.Painted.Put(pos)

	// River width is rolled in [1,3]; the bank reaches one cell past it.
	riverWidth := 1 + intn(b.rng, maxRiverWidth)
	reach := riverWidth + 1
	for dy := -reach; dy <= reach; dy++ {
		for dx := -reach; dx <= reach; dx++ {
			if (dx == 0 && dy == 0) || abs(dx)+abs(dy) > reach {
				continue
			}
			nx, ny := pos.X+dx, pos.Y+dy
			if !b.m.InBounds(nx, ny) {
				continue
			}
			if b.rng.Intn(100) < riverBankChance {
				*b.m.at(nx, ny) = b.tiles.shallowWater
				trace.Painted.Put(Point{X: nx, Y: ny})
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
