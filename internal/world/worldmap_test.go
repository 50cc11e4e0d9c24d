package world

import (
	"errors"
	"math"
	"testing"
)

func floorTile() Tile {
	return Tile{Type: TileFloor, Glyph: '.', Foreground: "#FFFFFF", Background: "#000000", MovementCost: 1}
}

func TestNewMapInvalidDimensions(t *testing.T) {
	cases := []struct{ w, h int }{{0, 10}, {10, 0}, {-1, 5}, {0, 0}, {1 << 32, 1 << 32}, {math.MaxInt, 2}}
	for _, c := range cases {
		if _, err := NewMap(c.w, c.h, floorTile()); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("NewMap(%d,%d) error = %v, want ErrInvalidDimensions", c.w, c.h, err)
		}
	}
}

func TestIsPassableOutOfBounds(t *testing.T) {
	m, err := NewMap(10, 8, floorTile())
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}

	for y := -3; y < 11; y++ {
		for x := -3; x < 13; x++ {
			inside := x >= 0 && x < 10 && y >= 0 && y < 8
			if got := m.IsPassable(x, y); got != inside {
				t.Errorf("IsPassable(%d,%d) = %v, want %v", x, y, got, inside)
			}
		}
	}
}

func TestPassabilityByType(t *testing.T) {
	cases := []struct {
		name string
		tt   TileType
		want bool
	}{
		{"floor", TileFloor, true},
		{"wall", TileWall, false},
		{"door", TileDoor, true},
		{"water", TileWater, false},
		{"obstacle", TileObstacle, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, _ := NewMap(3, 3, floorTile())
			tile := floorTile()
			tile.Type = tc.tt
			m.SetTile(1, 1, tile)
			if got := m.IsPassable(1, 1); got != tc.want {
				t.Errorf("IsPassable = %v; want %v", got, tc.want)
			}
		})
	}
}

func TestTileAtAndSetTile(t *testing.T) {
	m, _ := NewMap(5, 5, floorTile())

	wall := Tile{Type: TileWall, Glyph: '#', MovementCost: 1}
	m.SetTile(2, 3, wall)
	got, ok := m.TileAt(2, 3)
	if !ok || got != wall {
		t.Fatalf("TileAt(2,3) = %+v,%v; want wall", got, ok)
	}

	// Out-of-bounds writes are ignored and reads report false.
	m.SetTile(-1, 0, wall)
	m.SetTile(5, 5, wall)
	if _, ok := m.TileAt(-1, 0); ok {
		t.Error("TileAt(-1,0) should report out of bounds")
	}
	if tile, ok := m.TileAt(0, 5); ok || tile != (Tile{}) {
		t.Errorf("TileAt(0,5) = %+v,%v; want zero,false", tile, ok)
	}
	if n := m.CountTiles(TileWall); n != 1 {
		t.Errorf("CountTiles(Wall) = %d, want 1", n)
	}
}

func TestVisibleArea(t *testing.T) {
	cases := []struct {
		name           string
		camX, camY     int
		vw, vh         int
		x0, y0, x1, y1 int
	}{
		{"centered", 50, 25, 80, 24, 10, 13, 90, 37},
		{"top-left corner", 0, 0, 80, 24, 0, 0, 80, 24},
		{"bottom-right corner", 100, 50, 80, 24, 60, 38, 100, 50},
		{"negative camera", -10, -10, 80, 24, 0, 0, 80, 24},
		{"far beyond grid", 500, 500, 80, 24, 100, 50, 100, 50},
		{"viewport wider than map", 50, 25, 200, 100, 0, 0, 100, 50},
		{"zero viewport", 20, 20, 0, 0, 20, 20, 20, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, _ := NewMap(100, 50, floorTile())
			m.ViewportWidth, m.ViewportHeight = tc.vw, tc.vh
			m.CenterCamera(tc.camX, tc.camY)

			x0, y0, x1, y1 := m.VisibleArea()
			if x0 != tc.x0 || y0 != tc.y0 || x1 != tc.x1 || y1 != tc.y1 {
				t.Errorf("VisibleArea() = (%d,%d,%d,%d); want (%d,%d,%d,%d)",
					x0, y0, x1, y1, tc.x0, tc.y0, tc.x1, tc.y1)
			}
		})
	}
}

func TestVisibleAreaAlwaysContained(t *testing.T) {
	m, _ := NewMap(37, 23, floorTile())

	for _, vw := range []int{-5, 0, 1, 10, 37, 80} {
		for _, vh := range []int{-1, 0, 7, 23, 40} {
			m.ViewportWidth, m.ViewportHeight = vw, vh
			for cy := -60; cy <= 60; cy += 3 {
				for cx := -60; cx <= 60; cx += 3 {
					m.CenterCamera(cx, cy)
					x0, y0, x1, y1 := m.VisibleArea()
					if x0 < 0 || y0 < 0 || x1 > m.Width() || y1 > m.Height() || x0 > x1 || y0 > y1 {
						t.Fatalf("camera (%d,%d) viewport %dx%d: area (%d,%d,%d,%d) escapes the grid",
							cx, cy, vw, vh, x0, y0, x1, y1)
					}
				}
			}
		}
	}
}

func TestCenterCamera(t *testing.T) {
	m, _ := NewMap(20, 20, floorTile())
	if x, y := m.Camera(); x != 10 || y != 10 {
		t.Errorf("new map camera = (%d,%d), want (10,10)", x, y)
	}
	m.CenterCamera(-4, 99)
	if x, y := m.Camera(); x != -4 || y != 99 {
		t.Errorf("Camera() = (%d,%d), want (-4,99)", x, y)
	}
}

func TestFromTiles(t *testing.T) {
	tiles := make([]Tile, 6)
	for i := range tiles {
		tiles[i] = floorTile()
	}
	tiles[1*3+2] = Tile{Type: TileWater, Glyph: '~', MovementCost: 1}

	m, err := FromTiles(3, 2, 9, tiles, nil)
	if err != nil {
		t.Fatalf("FromTiles: %v", err)
	}
	if got, _ := m.TileAt(2, 1); got.Type != TileWater {
		t.Errorf("TileAt(2,1) = %v, want water (row-major layout)", got.Type)
	}
	if m.Seed() != 9 {
		t.Errorf("Seed() = %d, want 9", m.Seed())
	}

	// Mutating the source slice must not leak into the map.
	tiles[0].Type = TileWall
	if got, _ := m.TileAt(0, 0); got.Type != TileFloor {
		t.Error("FromTiles should copy the tile slice")
	}

	if _, err := FromTiles(3, 3, 0, tiles, nil); err == nil {
		t.Error("FromTiles should reject a tile count that does not match")
	}
	if _, err := FromTiles(0, 3, 0, nil, nil); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("FromTiles(0,3) error = %v, want ErrInvalidDimensions", err)
	}
	// 2^32 * 2^32 wraps to 0 and would otherwise match an empty tile slice.
	if _, err := FromTiles(1<<32, 1<<32, 0, []Tile{}, nil); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("FromTiles(2^32,2^32) error = %v, want ErrInvalidDimensions", err)
	}
}

func TestFeaturesReturnsCopy(t *testing.T) {
	tiles := []Tile{floorTile(), floorTile()}
	features := []Feature{{Type: FeatureForest, Bounds: Rect{Width: 2, Height: 1}, Properties: map[string]string{"trees": "1"}}}
	m, err := FromTiles(2, 1, 0, tiles, features)
	if err != nil {
		t.Fatalf("FromTiles: %v", err)
	}

	features[0].Properties["trees"] = "source"
	got := m.Features()
	got[0].Properties["trees"] = "caller"
	got[0].Bounds.Width = 99
	_ = append(got, Feature{Type: FeatureRuin})

	again := m.Features()
	if len(again) != 1 {
		t.Fatalf("len(Features()) = %d, want 1", len(again))
	}
	if again[0].Properties["trees"] != "1" || again[0].Bounds.Width != 2 {
		t.Errorf("feature was mutated through a returned copy: %+v", again[0])
	}
}

func TestFromTilesNilPropertiesBecomeEmpty(t *testing.T) {
	m, err := FromTiles(1, 1, 0, []Tile{floorTile()}, []Feature{{Type: FeatureRuin}})
	if err != nil {
		t.Fatalf("FromTiles: %v", err)
	}
	if p := m.Features()[0].Properties; p == nil || len(p) != 0 {
		t.Errorf("Properties = %#v, want empty map", p)
	}
}

func TestTileTypeNames(t *testing.T) {
	for _, tt := range []TileType{TileFloor, TileWall, TileDoor, TileWater, TileObstacle} {
		parsed, err := ParseTileType(tt.String())
		if err != nil || parsed != tt {
			t.Errorf("ParseTileType(%q) = %v,%v; want %v", tt.String(), parsed, err, tt)
		}
	}
	if _, err := ParseTileType("Lava"); err == nil {
		t.Error("ParseTileType(Lava) should fail")
	}
	if TileType(42).String() != "Unknown" {
		t.Errorf("TileType(42).String() = %q", TileType(42).String())
	}
}

func TestRect(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 5, Height: 5}
	b := Rect{X: 3, Y: 3, Width: 5, Height: 5}
	c := Rect{X: 5, Y: 0, Width: 2, Height: 2}

	if !a.Intersects(b) {
		t.Error("a and b should intersect")
	}
	if a.Intersects(c) {
		t.Error("touching rectangles should not intersect")
	}
	if cx, cy := a.Center(); cx != 2 || cy != 2 {
		t.Errorf("Center() = (%d,%d), want (2,2)", cx, cy)
	}
	if !a.OnPerimeter(0, 2) || !a.OnPerimeter(4, 4) || a.OnPerimeter(2, 2) || a.OnPerimeter(5, 5) {
		t.Error("OnPerimeter misclassified a cell")
	}

	clipped := around(1, 1, 3).Clip(10, 10)
	if clipped != (Rect{X: 0, Y: 0, Width: 5, Height: 5}) {
		t.Errorf("Clip = %+v", clipped)
	}
	if empty := (Rect{X: 20, Y: 20, Width: 3, Height: 3}).Clip(10, 10); empty.Width != 0 || empty.Height != 0 {
		t.Errorf("Clip outside grid = %+v, want empty", empty)
	}
}
