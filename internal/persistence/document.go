// Package persistence saves and restores generated worlds.
//
// Every backend stores the same versioned JSON document: the grid flattened
// row-major (index = y*width + x) plus the feature list.
package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/samdwyer/overworld/internal/world"
)

// SchemaVersion is written into every document. Documents with any other
// version are rejected as malformed.
const SchemaVersion = 1

var (
	// ErrNotFound is returned when no saved world exists under the requested name or path.
	ErrNotFound = errors.New("saved world not found")
	// ErrMalformed is returned when a saved payload cannot be turned back into a map.
	ErrMalformed = errors.New("malformed world document")
)

// Document is the exchange format for a saved world.
type Document struct {
	Version  int          `json:"version"`
	Seed     int64        `json:"seed"`
	Width    int          `json:"width"`
	Height   int          `json:"height"`
	Tiles    []TileDoc    `json:"tiles"`
	Features []FeatureDoc `json:"features"`
}

// TileDoc is one flattened grid cell.
type TileDoc struct {
	TileType        string `json:"tile_type"`
	ForegroundGlyph string `json:"foreground_glyph"`
	ForegroundColor string `json:"foreground_color"`
	BackgroundColor string `json:"background_color"`
	MovementCost    int    `json:"movement_cost"`
}

// FeatureDoc is one placed structure.
type FeatureDoc struct {
	Type       string            `json:"type"`
	X          int               `json:"x"`
	Y          int               `json:"y"`
	Width      int               `json:"width"`
	Height     int               `json:"height"`
	Properties map[string]string `json:"properties"`
}

// Encode flattens a map into a Document.
func Encode(m *world.Map) *Document {
	tiles, features := m.Tiles(), m.Features()
	doc := &Document{
		Version:  SchemaVersion,
		Seed:     m.Seed(),
		Width:    m.Width(),
		Height:   m.Height(),
		Tiles:    make([]TileDoc, len(tiles)),
		Features: make([]FeatureDoc, 0, len(features)),
	}

	for i, t := range tiles {
		doc.Tiles[i] = TileDoc{
			TileType:        t.Type.String(),
			ForegroundGlyph: string(t.Glyph),
			ForegroundColor: t.Foreground,
			BackgroundColor: t.Background,
			MovementCost:    t.MovementCost,
		}
	}

	for _, f := range features {
		doc.Features = append(doc.Features, FeatureDoc{
			Type:       string(f.Type),
			X:          f.Bounds.X,
			Y:          f.Bounds.Y,
			Width:      f.Bounds.Width,
			Height:     f.Bounds.Height,
			Properties: f.Properties,
		})
	}

	return doc
}

// Decode validates a Document and rebuilds the map it describes.
// Every failure wraps ErrMalformed; no partial map is returned.
func Decode(doc *Document) (*world.Map, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}
	if doc.Version != SchemaVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformed, doc.Version)
	}
	if err := world.CheckDimensions(doc.Width, doc.Height); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(doc.Tiles) != doc.Width*doc.Height {
		return nil, fmt.Errorf("%w: %d tiles for a %dx%d grid", ErrMalformed, len(doc.Tiles), doc.Width, doc.Height)
	}

	tiles := make([]world.Tile, len(doc.Tiles))
	for i, td := range doc.Tiles {
		t, err := decodeTile(td)
		if err != nil {
			return nil, fmt.Errorf("%w: tile (%d,%d): %v", ErrMalformed, i%doc.Width, i/doc.Width, err)
		}
		tiles[i] = t
	}

	features := make([]world.Feature, 0, len(doc.Features))
	for i, fd := range doc.Features {
		f, err := decodeFeature(fd)
		if err != nil {
			return nil, fmt.Errorf("%w: feature %d: %v", ErrMalformed, i, err)
		}
		features = append(features, f)
	}

	m, err := world.FromTiles(doc.Width, doc.Height, doc.Seed, tiles, features)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return m, nil
}

func decodeTile(td TileDoc) (world.Tile, error) {
	tt, err := world.ParseTileType(td.TileType)
	if err != nil {
		return world.Tile{}, err
	}
	if utf8.RuneCountInString(td.ForegroundGlyph) != 1 {
		return world.Tile{}, fmt.Errorf("glyph %q must be a single character", td.ForegroundGlyph)
	}
	if td.MovementCost < 1 {
		return world.Tile{}, fmt.Errorf("movement cost %d below 1", td.MovementCost)
	}

	glyph, _ := utf8.DecodeRuneInString(td.ForegroundGlyph)
	return world.Tile{
		Type:         tt,
		Glyph:        glyph,
		Foreground:   td.ForegroundColor,
		Background:   td.BackgroundColor,
		MovementCost: td.MovementCost,
	}, nil
}

func decodeFeature(fd FeatureDoc) (world.Feature, error) {
	ft := world.FeatureType(fd.Type)
	switch ft {
	case world.FeatureRuin, world.FeatureForest, world.FeatureRockFormation:
	default:
		return world.Feature{}, fmt.Errorf("unknown feature type %q", fd.Type)
	}
	if fd.Width < 0 || fd.Height < 0 {
		return world.Feature{}, fmt.Errorf("negative bounds %dx%d", fd.Width, fd.Height)
	}

	return world.Feature{
		Type:       ft,
		Bounds:     world.Rect{X: fd.X, Y: fd.Y, Width: fd.Width, Height: fd.Height},
		Properties: fd.Properties,
	}, nil
}

// Marshal encodes a map as indented JSON.
func Marshal(m *world.Map) ([]byte, error) {
	return json.MarshalIndent(Encode(m), "", "  ")
}

// Unmarshal parses JSON produced by Marshal.
func Unmarshal(data []byte) (*world.Map, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return Decode(&doc)
}

// Write streams the JSON document for m to w.
func Write(w io.Writer, m *world.Map) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Encode(m))
}
