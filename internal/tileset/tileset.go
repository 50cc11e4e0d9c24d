package tileset

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// DefaultFile is the embedded tileset used when no custom file is configured.
const DefaultFile = "tiles.json"

// TileDef defines one terrain variant loaded from JSON.
type TileDef struct {
	ID           string `json:"id"`           // Unique identifier (e.g., "grass")
	Type         string `json:"type"`         // Tile type name: Floor, Wall, Door, Water or Obstacle
	Glyph        string `json:"glyph"`        // Single character for rendering
	Foreground   string `json:"foreground"`   // Hex color id
	Background   string `json:"background"`   // Hex color id
	MovementCost int    `json:"movementCost"` // Cost to enter, at least 1
}

// GlyphRune returns the glyph as a rune for rendering.
func (d *TileDef) GlyphRune() rune {
	r, size := utf8.DecodeRuneInString(d.Glyph)
	if size == 0 || r == utf8.RuneError {
		return '?'
	}
	return r
}

// File represents the structure of a tileset JSON file.
type File struct {
	Name  string    `json:"name"`
	Tiles []TileDef `json:"tiles"`
}

// Tileset holds loaded tile definitions keyed by id.
type Tileset struct {
	name  string
	byID  map[string]*TileDef
	order []TileDef
}

// New creates a tileset from loaded definitions. Definitions with an empty id,
// a duplicate id, a glyph that is not a single character, or a movement cost
// below 1 are rejected.
func New(name string, defs []TileDef) (*Tileset, error) {
	if len(defs) == 0 {
		return nil, errors.New("tileset has no tiles")
	}

	ts := &Tileset{
		name:  name,
		byID:  make(map[string]*TileDef, len(defs)),
		order: defs,
	}
	for i := range defs {
		def := &defs[i]
		if def.ID == "" {
			return nil, fmt.Errorf("tile %d has no id", i)
		}
		if _, dup := ts.byID[def.ID]; dup {
			return nil, fmt.Errorf("duplicate tile id %q", def.ID)
		}
		if utf8.RuneCountInString(def.Glyph) != 1 {
			return nil, fmt.Errorf("tile %q: glyph %q must be a single character", def.ID, def.Glyph)
		}
		if def.MovementCost < 1 {
			return nil, fmt.Errorf("tile %q: movement cost %d must be at least 1", def.ID, def.MovementCost)
		}
		ts.byID[def.ID] = def
	}
	return ts, nil
}

// LoadDefault loads the embedded tileset.
func LoadDefault() (*Tileset, error) {
	file, err := Load[File](DefaultFile)
	if err != nil {
		return nil, err
	}
	return New(file.Name, file.Tiles)
}

// MustLoadDefault loads the embedded tileset, panicking on error.
func MustLoadDefault() *Tileset {
	ts, err := LoadDefault()
	if err != nil {
		panic(err)
	}
	return ts
}

// LoadPath loads a tileset from a JSON file on disk.
func LoadPath(path string) (*Tileset, error) {
	file, err := LoadFile[File](path)
	if err != nil {
		return nil, err
	}
	return New(file.Name, file.Tiles)
}

// Name returns the tileset name.
func (t *Tileset) Name() string {
	return t.name
}

// GetByID returns the tile definition with the given id, or nil if not found.
func (t *Tileset) GetByID(id string) *TileDef {
	return t.byID[id]
}

// All returns all tile definitions in file order.
func (t *Tileset) All() []TileDef {
	return t.order
}

// Count returns the number of tile definitions.
func (t *Tileset) Count() int {
	return len(t.order)
}
