package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/overworld/internal/entity"
	"github.com/samdwyer/overworld/internal/persistence"
	"github.com/samdwyer/overworld/internal/telemetry"
	"github.com/samdwyer/overworld/internal/tileset"
	"github.com/samdwyer/overworld/internal/ui"
	"github.com/samdwyer/overworld/internal/world"
)

// App holds the generator, the store and the world being browsed.
type App struct {
	cfg       Config
	generator *world.Generator
	store     persistence.Store

	world *world.Map
	scout *entity.Scout
	state State

	screen   *ui.Screen
	renderer *ui.Renderer
	running  bool
	message  string
}

// New builds the generator and opens the configured store.
func New(ctx context.Context, cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gen, err := newGenerator(cfg.TilesetFile)
	if err != nil {
		return nil, err
	}

	store, err := persistence.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store, err)
	}

	return &App{
		cfg:       cfg,
		generator: gen,
		store:     store,
	}, nil
}

func newGenerator(tilesetFile string) (*world.Generator, error) {
	if tilesetFile == "" {
		return world.DefaultGenerator()
	}
	ts, err := tileset.LoadPath(tilesetFile)
	if err != nil {
		return nil, fmt.Errorf("load tileset: %w", err)
	}
	return world.NewGenerator(ts)
}

// Start produces the initial world: the named save when Load is set and the
// save exists, otherwise a fresh world from the configured seed.
func (a *App) Start(ctx context.Context) error {
	tracer := telemetry.Tracer("app")
	ctx, span := tracer.Start(ctx, "app.start")
	defer span.End()

	if a.cfg.Load {
		m, err := a.store.Load(ctx, a.cfg.SaveName)
		switch {
		case err == nil:
			a.cfg.Seed = m.Seed()
			a.setWorld(m, StateLoaded)
			span.SetAttributes(attribute.String("source", "save"))
			return nil
		case errors.Is(err, persistence.ErrNotFound):
			log.Printf("No save named %q, generating a new world", a.cfg.SaveName)
		default:
			return fmt.Errorf("load %q: %w", a.cfg.SaveName, err)
		}
	}

	seed := a.cfg.ResolveSeed()
	log.Printf("Generating %dx%d world with seed %d", a.cfg.Width, a.cfg.Height, seed)
	if err := a.generate(ctx); err != nil {
		return err
	}
	span.SetAttributes(
		attribute.String("source", "generated"),
		attribute.Int64("seed", seed),
	)
	return nil
}

// generate replaces the current world with one built from the configured seed.
func (a *App) generate(ctx context.Context) error {
	m, err := a.generator.Generate(ctx, a.cfg.Width, a.cfg.Height, a.cfg.Seed)
	if err != nil {
		return fmt.Errorf("generate world: %w", err)
	}
	a.setWorld(m, StateGenerated)
	return nil
}

func (a *App) setWorld(m *world.Map, state State) {
	a.world = m
	a.state = state
	a.scout = entity.Spawn(m)
	m.CenterCamera(a.scout.Position())
	if a.renderer != nil {
		a.renderer.FitViewport(m)
	}
}

// Save writes the current world under the configured save name.
func (a *App) Save(ctx context.Context) error {
	if a.world == nil {
		return errors.New("no world to save")
	}
	if err := a.store.Save(ctx, a.cfg.SaveName, a.world); err != nil {
		return fmt.Errorf("save %q: %w", a.cfg.SaveName, err)
	}
	a.state = StateSaved
	return nil
}

// World returns the current world, or nil before Start.
func (a *App) World() *world.Map { return a.world }

// Run starts the app in headless or interactive mode.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.Headless {
		return a.RunHeadless(ctx)
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return err
	}
	defer screen.Close()

	return a.Browse(ctx, screen)
}

// RunHeadless generates or loads the world, saves it and logs a summary.
func (a *App) RunHeadless(ctx context.Context) error {
	if err := a.Start(ctx); err != nil {
		return err
	}
	if err := a.Save(ctx); err != nil {
		return err
	}

	m := a.world
	counts := make(map[world.FeatureType]int)
	for _, f := range m.Features() {
		counts[f.Type]++
	}
	log.Printf("%s %s as %q: water=%d ruins=%d forests=%d rocks=%d",
		m, a.state, a.cfg.SaveName, m.CountTiles(world.TileWater),
		counts[world.FeatureRuin], counts[world.FeatureForest], counts[world.FeatureRockFormation])
	return nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.store.Close()
}
