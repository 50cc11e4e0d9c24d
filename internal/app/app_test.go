package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/overworld/internal/persistence"
	"github.com/samdwyer/overworld/internal/ui"
	"github.com/samdwyer/overworld/internal/world"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 60, 40
	cfg.Seed = 5
	cfg.DataDir = t.TempDir()
	return cfg
}

func newTestApp(t *testing.T, cfg Config) *App {
	t.Helper()
	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestRunHeadlessSavesWorld(t *testing.T) {
	cfg := testConfig(t)
	cfg.Headless = true
	a := newTestApp(t, cfg)

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if a.state != StateSaved {
		t.Errorf("state = %s, want saved", a.state)
	}

	saved, err := persistence.LoadFile(filepath.Join(cfg.DataDir, "world.json"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	want, _ := world.Generate(context.Background(), 60, 40, 5)
	if saved.Seed() != 5 || len(saved.Tiles()) != len(want.Tiles()) {
		t.Fatalf("saved %s, want %s", saved, want)
	}
	st, wt := saved.Tiles(), want.Tiles()
	for i := range wt {
		if st[i] != wt[i] {
			t.Fatalf("saved tile %d differs", i)
		}
	}
}

func TestStartLoadsExistingSave(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store = persistence.BackendSQLite
	cfg.Seed = 31
	cfg.Headless = true
	first := newTestApp(t, cfg)
	if err := first.RunHeadless(context.Background()); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	first.Close()

	cfg.Seed = 999
	cfg.Load = true
	second := newTestApp(t, cfg)
	if err := second.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if second.state != StateLoaded || second.World().Seed() != 31 {
		t.Errorf("state %s seed %d, want loaded world with seed 31", second.state, second.World().Seed())
	}
}

func TestStartGeneratesWhenSaveMissing(t *testing.T) {
	cfg := testConfig(t)
	cfg.Load = true
	a := newTestApp(t, cfg)

	if err := a.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if a.state != StateGenerated || a.World().Seed() != 5 {
		t.Errorf("state %s seed %d, want generated world with seed 5", a.state, a.World().Seed())
	}
}

func TestStartRejectsMalformedSave(t *testing.T) {
	cfg := testConfig(t)
	cfg.Load = true
	if err := writeFile(filepath.Join(cfg.DataDir, "world.json"), `{"version": 1, "width": 2, "height": 2, "tiles": []}`); err != nil {
		t.Fatal(err)
	}
	a := newTestApp(t, cfg)

	if err := a.Start(context.Background()); !errors.Is(err, persistence.ErrMalformed) {
		t.Errorf("Start error = %v, want ErrMalformed", err)
	}
	if a.World() != nil {
		t.Error("malformed save must not produce a world")
	}
}

func TestBrowse(t *testing.T) {
	ss := tcell.NewSimulationScreen("UTF-8")
	if err := ss.Init(); err != nil {
		t.Fatalf("SimulationScreen.Init: %v", err)
	}
	ss.SetSize(40, 12)
	defer ss.Fini()

	cfg := testConfig(t)
	a := newTestApp(t, cfg)

	ss.InjectKey(tcell.KeyRune, 'l', tcell.ModNone)
	ss.InjectKey(tcell.KeyDown, 0, tcell.ModNone)
	ss.InjectKey(tcell.KeyRune, 's', tcell.ModNone)
	ss.InjectKey(tcell.KeyRune, 'n', tcell.ModNone)
	ss.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	if err := a.Browse(context.Background(), ui.NewScreenFrom(ss)); err != nil {
		t.Fatalf("Browse: %v", err)
	}

	if a.World().Seed() != 6 || a.state != StateGenerated {
		t.Errorf("after 'n': seed %d state %s, want a fresh world with seed 6", a.World().Seed(), a.state)
	}
	if _, err := persistence.LoadFile(filepath.Join(cfg.DataDir, "world.json")); err != nil {
		t.Errorf("'s' should have saved the first world: %v", err)
	}
	if a.World().ViewportWidth != 40 || a.World().ViewportHeight != 11 {
		t.Errorf("viewport = %dx%d, want 40x11", a.World().ViewportWidth, a.World().ViewportHeight)
	}
	if !a.World().IsPassable(a.scout.Position()) {
		t.Error("scout should stand on a passable tile")
	}
}

func TestScoutMovementFollowsPassability(t *testing.T) {
	cfg := testConfig(t)
	a := newTestApp(t, cfg)
	if err := a.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	for _, d := range [][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}} {
		x, y := a.scout.Position()
		a.tryMove(d[0], d[1])
		nx, ny := a.scout.Position()
		if a.World().IsPassable(x+d[0], y+d[1]) {
			if nx != x+d[0] || ny != y+d[1] {
				t.Errorf("move %v onto passable tile did not happen", d)
			}
		} else if nx != x || ny != y || a.message != "blocked" {
			t.Errorf("move %v onto blocked tile moved the scout", d)
		}
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{
		StateGenerated: "unsaved",
		StateLoaded:    "loaded",
		StateSaved:     "saved",
		State(9):       "unknown",
	} {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
