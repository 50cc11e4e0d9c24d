// Package entity provides the scout that explores a generated world.
package entity

import "github.com/samdwyer/overworld/internal/world"

// Scout is the marker the camera follows while browsing a world.
type Scout struct {
	X, Y   int  // Current position on the map
	Symbol rune // Display symbol
}

// NewScout creates a new scout at the given position.
func NewScout(x, y int) *Scout {
	return &Scout{
		X:      x,
		Y:      y,
		Symbol: '@',
	}
}

// Spawn places a scout on the passable tile nearest the map center, searching
// outward ring by ring. A map with no passable tile gets the scout at its center.
func Spawn(m *world.Map) *Scout {
	cx, cy := m.Width()/2, m.Height()/2
	limit := max(m.Width(), m.Height())

	for r := 0; r <= limit; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if max(abs(dx), abs(dy)) != r {
					continue
				}
				if m.IsPassable(cx+dx, cy+dy) {
					return NewScout(cx+dx, cy+dy)
				}
			}
		}
	}
	return NewScout(cx, cy)
}

// Move updates the scout position by the given delta.
func (s *Scout) Move(dx, dy int) {
	s.X += dx
	s.Y += dy
}

// TryMove moves the scout if the destination is passable and reports whether it moved.
func (s *Scout) TryMove(m *world.Map, dx, dy int) bool {
	if !m.IsPassable(s.X+dx, s.Y+dy) {
		return false
	}
	s.Move(dx, dy)
	return true
}

// Position returns the current x, y coordinates.
func (s *Scout) Position() (int, int) {
	return s.X, s.Y
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
