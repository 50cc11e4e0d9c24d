package entity

import (
	"testing"

	"github.com/samdwyer/overworld/internal/world"
)

var (
	grass = world.Tile{Type: world.TileFloor, Glyph: ',', MovementCost: 1}
	water = world.Tile{Type: world.TileWater, Glyph: '~', MovementCost: 1}
)

func waterMap(t *testing.T, w, h int) *world.Map {
	t.Helper()
	m, err := world.NewMap(w, h, water)
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	return m
}

func TestSpawnAtCenterWhenPassable(t *testing.T) {
	m := waterMap(t, 11, 9)
	m.SetTile(5, 4, grass)

	s := Spawn(m)
	if x, y := s.Position(); x != 5 || y != 4 {
		t.Errorf("Spawn = (%d,%d), want (5,4)", x, y)
	}
	if s.Symbol != '@' {
		t.Errorf("Symbol = %q, want '@'", s.Symbol)
	}
}

func TestSpawnSearchesOutward(t *testing.T) {
	m := waterMap(t, 21, 21)
	m.SetTile(0, 0, grass)
	m.SetTile(13, 10, grass)

	s := Spawn(m)
	if x, y := s.Position(); x != 13 || y != 10 {
		t.Errorf("Spawn = (%d,%d), want nearest passable (13,10)", x, y)
	}
}

func TestSpawnWithoutPassableTile(t *testing.T) {
	m := waterMap(t, 6, 4)
	if x, y := Spawn(m).Position(); x != 3 || y != 2 {
		t.Errorf("Spawn = (%d,%d), want center fallback", x, y)
	}
}

func TestTryMove(t *testing.T) {
	m := waterMap(t, 5, 5)
	m.SetTile(2, 2, grass)
	m.SetTile(3, 2, grass)

	s := NewScout(2, 2)
	if !s.TryMove(m, 1, 0) {
		t.Fatal("move onto grass should succeed")
	}
	if s.TryMove(m, 1, 0) {
		t.Error("move onto water should fail")
	}
	if x, y := s.Position(); x != 3 || y != 2 {
		t.Errorf("Position = (%d,%d), want (3,2)", x, y)
	}

	// Leaving the map is never allowed.
	edge := NewScout(0, 0)
	m.SetTile(0, 0, grass)
	if edge.TryMove(m, -1, 0) {
		t.Error("move off the map should fail")
	}
}
