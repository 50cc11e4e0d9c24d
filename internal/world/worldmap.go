package world

import (
	"errors"
	"fmt"
	"math"
)

const (
	// Default viewport dimensions, in tiles.
	DefaultViewportWidth  = 80
	DefaultViewportHeight = 24
)

// ErrInvalidDimensions is returned when a map is requested with a non-positive width or height.
var ErrInvalidDimensions = errors.New("invalid map dimensions")

// Map is a fully generated overworld. Its dimensions are fixed at construction;
// after generation only the camera and viewport are expected to change, and
// callers must confine those updates to a single goroutine.
type Map struct {
	width    int
	height   int
	seed     int64
	tiles    []Tile // row-major: index = y*width + x
	features []Feature

	cameraX, cameraY int

	// Viewport size in tiles. Mutable so callers can react to terminal resizes.
	ViewportWidth  int
	ViewportHeight int
}

// CheckDimensions reports ErrInvalidDimensions unless width and height are
// positive and width*height fits in an int.
func CheckDimensions(width, height int) error {
	if width <= 0 || height <= 0 || height > math.MaxInt/width {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return nil
}

// NewMap creates a map with every tile set to fill.
func NewMap(width, height int, fill Tile) (*Map, error) {
	if err := CheckDimensions(width, height); err != nil {
		return nil, err
	}

	tiles := make([]Tile, width*height)
	for i := range tiles {
		tiles[i] = fill
	}

	return &Map{
		width:          width,
		height:         height,
		tiles:          tiles,
		features:       make([]Feature, 0),
		cameraX:        width / 2,
		cameraY:        height / 2,
		ViewportWidth:  DefaultViewportWidth,
		ViewportHeight: DefaultViewportHeight,
	}, nil
}

// FromTiles rebuilds a map from a row-major tile slice, as produced by Tiles.
func FromTiles(width, height int, seed int64, tiles []Tile, features []Feature) (*Map, error) {
	if err := CheckDimensions(width, height); err != nil {
		return nil, err
	}
	if len(tiles) != width*height {
		return nil, fmt.Errorf("tile count %d does not match %dx%d", len(tiles), width, height)
	}

	m, err := NewMap(width, height, Tile{})
	if err != nil {
		return nil, err
	}
	copy(m.tiles, tiles)
	m.seed = seed
	for _, f := range features {
		m.features = append(m.features, f.clone())
	}
	return m, nil
}

// Width returns the map width in tiles.
func (m *Map) Width() int { return m.width }

// Height returns the map height in tiles.
func (m *Map) Height() int { return m.height }

// Seed returns the seed the map was generated from.
func (m *Map) Seed() int64 { return m.seed }

// InBounds reports whether (x, y) is within the map.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// TileAt returns the tile at the given position. The second result is false,
// and the tile is the zero value, when the position is out of bounds.
func (m *Map) TileAt(x, y int) (Tile, bool) {
	if !m.InBounds(x, y) {
		return Tile{}, false
	}
	return m.tiles[y*m.width+x], true
}

// SetTile overwrites a single tile. Out-of-bounds writes are ignored.
func (m *Map) SetTile(x, y int, t Tile) {
	if !m.InBounds(x, y) {
		return
	}
	m.tiles[y*m.width+x] = t
}

// IsPassable returns true if the given position can be walked on.
func (m *Map) IsPassable(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.tiles[y*m.width+x].IsPassable()
}

// Tiles returns a row-major copy of the grid.
func (m *Map) Tiles() []Tile {
	out := make([]Tile, len(m.tiles))
	copy(out, m.tiles)
	return out
}

// Features returns a copy of the recorded features in placement order.
func (m *Map) Features() []Feature {
	out := make([]Feature, len(m.features))
	for i, f := range m.features {
		out[i] = f.clone()
	}
	return out
}

// CountTiles returns how many tiles have the given type.
func (m *Map) CountTiles(tt TileType) int {
	n := 0
	for _, t := range m.tiles {
		if t.Type == tt {
			n++
		}
	}
	return n
}

// CenterCamera moves the camera to (x, y). No smoothing is applied.
func (m *Map) CenterCamera(x, y int) {
	m.cameraX = x
	m.cameraY = y
}

// Camera returns the current camera position.
func (m *Map) Camera() (int, int) {
	return m.cameraX, m.cameraY
}

// VisibleArea returns the half-open window [x0,x1)x[y0,y1) around the camera,
// clamped to the map. The window never leaves the grid, whatever the camera
// position, and shrinks rather than shifts at the far edges.
func (m *Map) VisibleArea() (x0, y0, x1, y1 int) {
	vw, vh := max(m.ViewportWidth, 0), max(m.ViewportHeight, 0)

	x0 = min(max(0, m.cameraX-vw/2), m.width)
	y0 = min(max(0, m.cameraY-vh/2), m.height)
	x1 = min(m.width, x0+vw)
	y1 = min(m.height, y0+vh)
	return x0, y0, x1, y1
}

// addFeature records a placed structure.
func (m *Map) addFeature(f Feature) {
	m.features = append(m.features, f)
}

// at returns a pointer into the grid. Callers must check bounds first.
func (m *Map) at(x, y int) *Tile {
	return &m.tiles[y*m.width+x]
}

// String summarizes the map for logs.
func (m *Map) String() string {
	return fmt.Sprintf("Map(%dx%d seed=%d features=%d)", m.width, m.height, m.seed, len(m.features))
}
