package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/overworld/internal/entity"
	"github.com/samdwyer/overworld/internal/tileset"
	"github.com/samdwyer/overworld/internal/world"
)

// statusLines is the number of rows reserved below the map.
const statusLines = 1

type colorPair struct {
	fg, bg string
}

// Renderer draws the visible window of a world to the screen.
type Renderer struct {
	screen *Screen
	styles map[colorPair]tcell.Style
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{
		screen: screen,
		styles: make(map[colorPair]tcell.Style),
	}
}

// FitViewport sizes the map viewport to the screen, leaving room for the status line.
func (r *Renderer) FitViewport(m *world.Map) {
	w, h := r.screen.Size()
	m.ViewportWidth = w
	m.ViewportHeight = max(h-statusLines, 0)
}

// Render draws the map's visible area, the scout, and a status line.
func (r *Renderer) Render(m *world.Map, scout *entity.Scout, status string) {
	r.screen.Clear()

	x0, y0, x1, y1 := m.VisibleArea()
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			tile, _ := m.TileAt(x, y)
			r.screen.SetContent(x-x0, y-y0, tile.Rune(), r.tileStyle(tile))
		}
	}

	// Draw scout on top
	if scout != nil && scout.X >= x0 && scout.X < x1 && scout.Y >= y0 && scout.Y < y1 {
		tile, _ := m.TileAt(scout.X, scout.Y)
		scoutStyle := r.tileStyle(tile).
			Foreground(tcell.ColorYellow).
			Bold(true)
		r.screen.SetContent(scout.X-x0, scout.Y-y0, scout.Symbol, scoutStyle)
	}

	r.RenderMessage(status, m.ViewportHeight)
	r.screen.Show()
}

// tileStyle returns the cached style for a tile's color ids.
func (r *Renderer) tileStyle(tile world.Tile) tcell.Style {
	key := colorPair{tile.Foreground, tile.Background}
	style, ok := r.styles[key]
	if !ok {
		style = tileset.Style(tile.Foreground, tile.Background)
		r.styles[key] = style
	}
	return style
}

// RenderMessage displays a message on the given row.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	i := 0
	for _, ch := range msg {
		r.screen.SetContent(i, y, ch, style)
		i++
	}
}
