package app

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/overworld/internal/ui"
)

// Browse runs the interactive viewer on screen until the user quits.
func (a *App) Browse(ctx context.Context, screen *ui.Screen) error {
	a.screen = screen
	a.renderer = ui.NewRenderer(screen)

	if a.world == nil {
		if err := a.Start(ctx); err != nil {
			return err
		}
	}
	a.renderer.FitViewport(a.world)

	a.running = true
	for a.running {
		// Camera follows the scout every tick.
		a.world.CenterCamera(a.scout.Position())
		a.renderer.Render(a.world, a.scout, a.statusLine())

		// Handle input (blocking)
		a.handleInput(ctx)
	}
	return nil
}

// handleInput processes a single input event.
func (a *App) handleInput(ctx context.Context) {
	ev := a.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		a.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		a.renderer.FitViewport(a.world)
		a.screen.Sync()
	case nil:
		// Screen finalized.
		a.running = false
	}
}

// handleKeyEvent processes keyboard input.
func (a *App) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.running = false

	case tcell.KeyUp:
		a.tryMove(0, -1)
	case tcell.KeyDown:
		a.tryMove(0, 1)
	case tcell.KeyLeft:
		a.tryMove(-1, 0)
	case tcell.KeyRight:
		a.tryMove(1, 0)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			a.running = false
		case 'k':
			a.tryMove(0, -1)
		case 'j':
			a.tryMove(0, 1)
		case 'h':
			a.tryMove(-1, 0)
		case 'l':
			a.tryMove(1, 0)
		case 's':
			if err := a.Save(ctx); err != nil {
				a.message = err.Error()
			} else {
				a.message = fmt.Sprintf("saved %q", a.cfg.SaveName)
			}
		case 'n':
			a.cfg.Seed++
			if err := a.generate(ctx); err != nil {
				a.message = err.Error()
			} else {
				a.message = fmt.Sprintf("new world, seed %d", a.cfg.Seed)
			}
		}
	}
}

// tryMove attempts to move the scout by the given delta.
func (a *App) tryMove(dx, dy int) {
	if !a.scout.TryMove(a.world, dx, dy) {
		a.message = "blocked"
		return
	}
	a.message = ""
}

func (a *App) statusLine() string {
	x, y := a.scout.Position()
	tile, _ := a.world.TileAt(x, y)
	line := fmt.Sprintf("seed %d  (%d,%d) %s  [%s]", a.world.Seed(), x, y, tile.Type, a.state)
	if a.message != "" {
		line += "  " + a.message
	}
	return line
}
