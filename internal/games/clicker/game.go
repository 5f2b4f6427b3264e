// Package clicker is an idle game: click for cookies, spend them on upgrades
// that bake on their own. It has no losing state; a run ends when the
// player leaves.
package clicker

import (
	"fmt"
	"math"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
)

// Upgrade is one shop entry and how many the player owns.
type Upgrade struct {
	config.UpgradeConfig
	Owned int
}

// Price returns the cost of the next unit.
func (u Upgrade) Price() float64 {
	return math.Ceil(u.Cost * math.Pow(u.CostGrowth, float64(u.Owned)))
}

// Game implements the clicker.
type Game struct {
	shop []config.UpgradeConfig

	upgrades []Upgrade
	selected int
	tickRate int

	cookies float64 // current balance
	baked   float64 // lifetime total, the score
	clicks  int
	paused  bool
}

// New creates a clicker with the default shop.
func New() *Game {
	g := &Game{}
	g.Configure(config.Default().Games)
	return g
}

// Configure replaces the shop from the portal config. Entries with a
// non-positive cost are skipped.
func (g *Game) Configure(games config.Games) {
	g.shop = g.shop[:0]
	for _, u := range games.Clicker.Upgrades {
		if u.Cost <= 0 {
			continue
		}
		if u.CostGrowth < 1 {
			u.CostGrowth = 1
		}
		g.shop = append(g.shop, u)
	}
}

// ID returns the game identifier.
func (g *Game) ID() string { return "clicker" }

// Title returns the display name.
func (g *Game) Title() string { return "Cookie Clicker" }

// Reset starts an empty bakery.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}
	g.upgrades = make([]Upgrade, len(g.shop))
	for i, u := range g.shop {
		g.upgrades[i] = Upgrade{UpgradeConfig: u}
	}
	g.selected = 0
	g.cookies = 0
	g.baked = 0
	g.clicks = 0
	g.paused = false
}

// ClickPower is the number of cookies per click.
func (g *Game) ClickPower() float64 {
	power := 1.0
	for _, u := range g.upgrades {
		power += u.PerClick * float64(u.Owned)
	}
	return power
}

// PerSecond is the passive production rate.
func (g *Game) PerSecond() float64 {
	rate := 0.0
	for _, u := range g.upgrades {
		rate += u.PerSecond * float64(u.Owned)
	}
	return rate
}

// Cookies returns the spendable balance.
func (g *Game) Cookies() float64 { return g.cookies }

// Upgrades returns the shop with owned counts.
func (g *Game) Upgrades() []Upgrade { return g.upgrades }

// Step advances one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionUp) && g.selected > 0 {
		g.selected--
	}
	if in.Has(core.ActionDown) && g.selected < len(g.upgrades)-1 {
		g.selected++
	}
	if in.Has(core.ActionPrimary) {
		g.clicks++
		g.earn(g.ClickPower())
	}
	if in.Has(core.ActionConfirm) {
		g.Buy(g.selected)
	}

	g.earn(g.PerSecond() / float64(g.tickRate))
	return core.StepResult{State: g.State()}
}

// Buy purchases one unit of upgrade i. It reports false, changing nothing,
// when the index is invalid or the balance is short.
func (g *Game) Buy(i int) bool {
	if i < 0 || i >= len(g.upgrades) {
		return false
	}
	u := &g.upgrades[i]
	price := u.Price()
	if g.cookies < price {
		return false
	}
	g.cookies -= price
	u.Owned++
	return true
}

func (g *Game) earn(n float64) {
	g.cookies += n
	g.baked += n
}

// Render draws the counter and the shop.
func (g *Game) Render(dst *core.Screen) {
	dst.DrawTextColor(2, 1, "COOKIE CLICKER", core.ColorOrange)
	dst.DrawText(2, 3, fmt.Sprintf("Cookies: %s", formatCount(g.cookies)))
	dst.DrawText(2, 4, fmt.Sprintf("Per second: %.1f   Per click: %.0f", g.PerSecond(), g.ClickPower()))
	dst.DrawText(2, 5, fmt.Sprintf("Baked: %s   Clicks: %d", formatCount(g.baked), g.clicks))

	dst.DrawHLine(2, 7, max(dst.Width()-4, 0), '─')
	for i, u := range g.upgrades {
		y := 8 + i
		marker := "  "
		if i == g.selected {
			marker = "> "
		}
		line := fmt.Sprintf("%s%-12s x%-3d %10s", marker, u.Name, u.Owned, formatCount(u.Price()))
		color := core.ColorGray
		if g.cookies >= u.Price() {
			color = core.ColorGreen
		}
		if i == g.selected {
			color = core.ColorYellow
		}
		dst.DrawTextColor(2, y, line, color)
	}

	dst.DrawText(2, dst.Height()-1, "SPACE click  ↑/↓ select  ENTER buy  P pause  B back")
}

// formatCount shortens large numbers: 1234 -> 1,234; 2.5e6 -> 2.50M.
func formatCount(n float64) string {
	n = math.Floor(n)
	switch {
	case n >= 1e9:
		return fmt.Sprintf("%.2fB", n/1e9)
	case n >= 1e6:
		return fmt.Sprintf("%.2fM", n/1e6)
	case n >= 1e3:
		return fmt.Sprintf("%d,%03d", int(n)/1000, int(n)%1000)
	default:
		return fmt.Sprintf("%d", int(n))
	}
}

// State returns the current game state. The score is lifetime cookies baked.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  int(g.baked),
		Paused: g.paused,
	}
}
