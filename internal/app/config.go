package app

import (
	"flag"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/samdwyer/overworld/internal/persistence"
	"github.com/samdwyer/overworld/internal/world"
)

// Environment variables read by ApplyEnv.
const (
	EnvWidth       = "OVERWORLD_WIDTH"
	EnvHeight      = "OVERWORLD_HEIGHT"
	EnvSeed        = "OVERWORLD_SEED"
	EnvStore       = "OVERWORLD_STORE"
	EnvDataDir     = "OVERWORLD_DATA_DIR"
	EnvTileset     = "OVERWORLD_TILESET"
	EnvDatabaseURL = "DATABASE_URL"
)

// Config holds application configuration options.
type Config struct {
	Width  int
	Height int

	// Seed for world generation. A seed of 0 means a random seed will be chosen.
	Seed int64

	SaveName    string
	Store       string // json, sqlite or postgres
	DataDir     string
	DatabaseURL string
	TilesetFile string // empty uses the embedded tileset

	Headless bool // generate, save and exit without a terminal
	Load     bool // start from the save named SaveName instead of generating
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Width:    200,
		Height:   200,
		SaveName: "world",
		Store:    persistence.BackendJSON,
		DataDir:  "saves",
	}
}

// ApplyEnv overrides fields from environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvWidth); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWidth, err)
		}
		c.Width = n
	}
	if v, ok := lookup(EnvHeight); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvHeight, err)
		}
		c.Height = n
	}
	if v, ok := lookup(EnvSeed); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = n
	}
	if v, ok := lookup(EnvStore); ok && v != "" {
		c.Store = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvDataDir); ok && v != "" {
		c.DataDir = v
	}
	if v, ok := lookup(EnvTileset); ok {
		c.TilesetFile = v
	}
	if v, ok := lookup(EnvDatabaseURL); ok {
		c.DatabaseURL = v
	}
	return nil
}

// RegisterFlags binds command-line flags to the config, using current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "world width in tiles")
	fs.IntVar(&c.Height, "height", c.Height, "world height in tiles")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "generation seed (0 = random)")
	fs.StringVar(&c.SaveName, "name", c.SaveName, "save name (a-z, 0-9, '_' and '-' only)")
	fs.StringVar(&c.Store, "store", c.Store, "storage backend: json, sqlite or postgres")
	fs.StringVar(&c.DataDir, "data-dir", c.DataDir, "directory for json and sqlite saves")
	fs.StringVar(&c.DatabaseURL, "database-url", c.DatabaseURL, "PostgreSQL connection string")
	fs.StringVar(&c.TilesetFile, "tileset", c.TilesetFile, "path to a tileset JSON file")
	fs.BoolVar(&c.Headless, "headless", c.Headless, "generate and save without opening the viewer")
	fs.BoolVar(&c.Load, "load", c.Load, "load the named save instead of generating")
}

// LoadConfig layers defaults, environment and command-line arguments.
func LoadConfig(args []string, lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(lookup); err != nil {
		return cfg, err
	}

	fs := flag.NewFlagSet("overworld", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))

	return cfg, cfg.Validate()
}

// Validate checks the config for values generation or storage would reject.
func (c Config) Validate() error {
	if err := world.CheckDimensions(c.Width, c.Height); err != nil {
		return err
	}
	if err := persistence.ValidateName(c.SaveName); err != nil {
		return err
	}
	switch c.Store {
	case persistence.BackendJSON, persistence.BackendSQLite:
	case persistence.BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("store %q requires %s or -database-url", c.Store, EnvDatabaseURL)
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	return nil
}

// ResolveSeed replaces a zero seed with a time-derived one and returns it.
func (c *Config) ResolveSeed() int64 {
	for c.Seed == 0 {
		c.Seed = rand.New(rand.NewSource(time.Now().UnixNano())).Int63()
	}
	return c.Seed
}

// StoreOptions converts the config to persistence options.
func (c Config) StoreOptions() persistence.Options {
	return persistence.Options{
		Backend:     c.Store,
		DataDir:     c.DataDir,
		DatabaseURL: c.DatabaseURL,
	}
}
