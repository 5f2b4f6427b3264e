package catalog

import (
	"errors"
	"testing"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

func TestCatalogEntries(t *testing.T) {
	r := New()
	want := []string{"snake", "tetris", "breakout", "clicker", "rhythm", "collector", "hexmerge"}

	ids := r.IDs()
	if len(ids) != len(want) {
		t.Fatalf("IDs = %v, expected %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("IDs[%d] = %q, expected %q", i, ids[i], want[i])
		}
	}
}

// Every playable entry must create a game that reports the same id and title,
// survives a reset and a few ticks, and renders.
func TestCatalogGamesRun(t *testing.T) {
	r := New()
	for _, d := range r.List() {
		if !d.Playable() {
			continue
		}
		t.Run(d.ID, func(t *testing.T) {
			g, err := r.Create(d.ID)
			if err != nil {
				t.Fatal(err)
			}
			if g.ID() != d.ID || g.Title() != d.Title {
				t.Errorf("game reports %q/%q, descriptor has %q/%q", g.ID(), g.Title(), d.ID, d.Title)
			}
			if _, ok := g.(registry.Configurable); !ok {
				t.Error("game is not configurable")
			}

			cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
			if c, ok := g.(registry.Checker); ok {
				if err := c.Check(cfg); err != nil {
					t.Fatalf("Check(80x24) = %v", err)
				}
			}
			g.Reset(cfg)
			for i := 0; i < 120; i++ {
				g.Step(core.InputOf(core.ActionPrimary))
			}
			screen := core.NewScreen(80, 24)
			g.Render(screen)
			if screen.IsBlank() {
				t.Error("render drew nothing")
			}
		})
	}
}

func TestCatalogComingSoon(t *testing.T) {
	r := New()
	if _, err := r.Create("hexmerge"); !errors.Is(err, registry.ErrUnavailable) {
		t.Errorf("Create(hexmerge) = %v, expected ErrUnavailable", err)
	}
}

func TestCatalogConfigureAll(t *testing.T) {
	games := config.Default().Games
	games.ApplyPreset(config.DifficultyHard)

	r := New()
	for _, id := range []string{"snake", "tetris", "breakout", "clicker", "rhythm", "collector"} {
		g, _ := r.Create(id)
		g.(registry.Configurable).Configure(games)
		g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 2})
		if g.State().GameOver {
			t.Errorf("%s: game over right after reset", id)
		}
	}
}
