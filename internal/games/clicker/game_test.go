package clicker

import (
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
)

func newGame() *Game {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10})
	return g
}

func click(g *Game, n int) {
	for i := 0; i < n; i++ {
		g.Step(core.InputOf(core.ActionPrimary))
	}
}

func TestClickEarnsOne(t *testing.T) {
	g := newGame()
	click(g, 3)

	if g.Cookies() != 3 {
		t.Errorf("Cookies = %v, expected 3", g.Cookies())
	}
	if g.State().Score != 3 {
		t.Errorf("Score = %d, expected 3", g.State().Score)
	}
}

func TestUnaffordablePurchaseIsNoop(t *testing.T) {
	g := newGame()
	click(g, 5)

	g.Step(core.InputOf(core.ActionConfirm))

	if g.Upgrades()[0].Owned != 0 {
		t.Error("upgrade bought without enough cookies")
	}
	if g.Cookies() != 5 {
		t.Errorf("Cookies = %v, balance must not change", g.Cookies())
	}
}

func TestBuyDeductsAndRaisesPrice(t *testing.T) {
	g := newGame()
	click(g, 20)
	first := g.Upgrades()[0].Price()

	if !g.Buy(0) {
		t.Fatal("Buy failed with enough cookies")
	}
	if g.Cookies() != 20-first {
		t.Errorf("Cookies = %v, expected %v", g.Cookies(), 20-first)
	}
	if g.Upgrades()[0].Price() <= first {
		t.Errorf("price %v should grow past %v", g.Upgrades()[0].Price(), first)
	}
	if g.State().Score != 20 {
		t.Errorf("spending must not lower the score, got %d", g.State().Score)
	}
}

func TestBuyInvalidIndex(t *testing.T) {
	g := newGame()
	click(g, 1000)
	for _, i := range []int{-1, len(g.Upgrades())} {
		if g.Buy(i) {
			t.Errorf("Buy(%d) succeeded", i)
		}
	}
}

func TestPassiveProduction(t *testing.T) {
	games := config.Default().Games
	games.Clicker.Upgrades = []config.UpgradeConfig{{Name: "Oven", Cost: 10, CostGrowth: 1, PerSecond: 5}}

	g := New()
	g.Configure(games)
	g.Reset(core.RuntimeConfig{TickRate: 10})
	click(g, 10)
	g.Buy(0)

	for i := 0; i < 20; i++ { // two seconds
		g.Step(core.NewInputFrame())
	}
	if math.Abs(g.Cookies()-10) > 1e-9 {
		t.Errorf("Cookies = %v, expected 10 after 2s at 5/s", g.Cookies())
	}
}

func TestClickUpgrade(t *testing.T) {
	games := config.Default().Games
	games.Clicker.Upgrades = []config.UpgradeConfig{{Name: "Pin", Cost: 2, CostGrowth: 2, PerClick: 1}}

	g := New()
	g.Configure(games)
	g.Reset(core.RuntimeConfig{TickRate: 10})
	click(g, 2)
	g.Buy(0)

	if g.ClickPower() != 2 {
		t.Errorf("ClickPower = %v, expected 2", g.ClickPower())
	}
	if g.Upgrades()[0].Price() != 4 {
		t.Errorf("Price = %v, expected 4", g.Upgrades()[0].Price())
	}
}

func TestSelectionClamped(t *testing.T) {
	g := newGame()
	g.Step(core.InputOf(core.ActionUp))
	if g.selected != 0 {
		t.Errorf("selected = %d, expected 0", g.selected)
	}
	for i := 0; i < 20; i++ {
		g.Step(core.InputOf(core.ActionDown))
	}
	if g.selected != len(g.Upgrades())-1 {
		t.Errorf("selected = %d, expected last", g.selected)
	}
}

func TestNeverEnds(t *testing.T) {
	g := newGame()
	for i := 0; i < 1000; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.State().GameOver {
		t.Error("clicker has no game over")
	}
}

func TestPauseStopsProduction(t *testing.T) {
	g := newGame()
	click(g, 15)
	g.Buy(0)

	g.Step(core.InputOf(core.ActionPause))
	before := g.Cookies()
	click(g, 5)
	if g.Cookies() != before {
		t.Error("cookies changed while paused")
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999.9, "999"},
		{1234, "1,234"},
		{2500000, "2.50M"},
		{3e9, "3.00B"},
	}
	for _, tt := range tests {
		if got := formatCount(tt.in); got != tt.want {
			t.Errorf("formatCount(%v) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	g := newGame()
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"COOKIE CLICKER", "Cursor", "Grandma"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}
