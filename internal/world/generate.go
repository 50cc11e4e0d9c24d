package world

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/overworld/internal/telemetry"
	"github.com/samdwyer/overworld/internal/tileset"
)

// Generator turns (width, height, seed) into a finished Map using a fixed tileset.
// A Generator is immutable and may be shared.
type Generator struct {
	tiles *palette
}

// NewGenerator creates a generator that bakes tiles from the given tileset.
func NewGenerator(ts *tileset.Tileset) (*Generator, error) {
	p, err := newPalette(ts)
	if err != nil {
		return nil, err
	}
	return &Generator{tiles: p}, nil
}

var (
	defaultOnce sync.Once
	defaultGen  *Generator
	defaultErr  error
)

// DefaultGenerator returns a generator using the embedded tileset.
func DefaultGenerator() (*Generator, error) {
	defaultOnce.Do(func() {
		ts, err := tileset.LoadDefault()
		if err != nil {
			defaultErr = err
			return
		}
		defaultGen, defaultErr = NewGenerator(ts)
	})
	return defaultGen, defaultErr
}

// Generate builds a map with the embedded tileset.
func Generate(ctx context.Context, width, height int, seed int64) (*Map, error) {
	g, err := DefaultGenerator()
	if err != nil {
		return nil, err
	}
	return g.Generate(ctx, width, height, seed)
}

// builder carries one generation run: the grid, baked tiles and the single
// random stream every pass draws from, in order.
type builder struct {
	m     *Map
	tiles *palette
	rng   *rand.Rand
}

func newBuilder(m *Map, tiles *palette, seed int64) *builder {
	return &builder{
		m:     m,
		tiles: tiles,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Generate runs terrain, rivers and features strictly in sequence. Each pass
// finishes with the grid before the next one starts. The same arguments always
// yield the same map.
func (g *Generator) Generate(ctx context.Context, width, height int, seed int64) (*Map, error) {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "world.generate")
	defer span.End()

	startTime := time.Now()
	span.SetAttributes(
		attribute.Int("world.width", width),
		attribute.Int("world.height", height),
		attribute.Int64("world.seed", seed),
	)

	m, err := NewMap(width, height, g.tiles.grass)
	if err != nil {
		telemetry.Fail(span, err)
		return nil, err
	}
	m.seed = seed

	b := newBuilder(m, g.tiles, seed)

	stage(ctx, tracer, "world.terrain", func(trace.Span) {
		b.synthesizeTerrain(seed)
	})

	stage(ctx, tracer, "world.rivers", func(s trace.Span) {
		traces := b.carveRivers()
		painted := 0
		for _, t := range traces {
			painted += t.Painted.Size()
		}
		s.SetAttributes(
			attribute.Int("world.river_count", len(traces)),
			attribute.Int("world.river_cells", painted),
		)
	})

	stage(ctx, tracer, "world.features", func(s trace.Span) {
		ruins := b.placeRuins()
		forests := b.placeForests()
		rocks := b.placeRocks()
		s.SetAttributes(
			attribute.Int("world.ruins", ruins),
			attribute.Int("world.forests", forests),
			attribute.Int("world.rock_formations", rocks),
		)
	})

	m.CenterCamera(width/2, height/2)

	span.SetAttributes(
		attribute.Int("world.water_tiles", m.CountTiles(TileWater)),
		attribute.Int("world.feature_count", len(m.features)),
		attribute.Int64("world.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return m, nil
}

// stage runs one pipeline pass inside its own span.
func stage(ctx context.Context, tracer trace.Tracer, name string, fn func(trace.Span)) {
	_, span := tracer.Start(ctx, name)
	defer span.End()
	fn(span)
}

// intn is rand.Intn that yields 0 for an empty range instead of panicking.
func intn(rng *rand.Rand, n int) int {
	if n <= 0 {
		return 0
	}
	return rng.Intn(n)
}
