// Package collector is a first person orb hunt on a flat arena, drawn with
// a small perspective projection into the character grid. Orbs collected
// before the timer runs out score points; clearing the field spawns a new
// set.
package collector

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
)

const (
	ArenaHalf   = 12.0 // arena spans [-ArenaHalf, ArenaHalf] on X and Z
	eyeHeight   = 1.0
	pickupRange = 1.2
	turnStep    = math.Pi / 12
	orbPoints   = 10
	clearBonus  = 50
	hudRows     = 2
)

// Orb is a collectible.
type Orb struct {
	Pos   Vec3
	Taken bool
}

// Game implements the collector.
type Game struct {
	cfg config.CollectorConfig
	rng *rand.Rand

	cam   Camera
	orbs  []Orb
	left  int // orbs remaining in this set
	sets  int
	score int

	tick     int
	duration int // ticks in a round
	tickRate int

	gameOver bool
	paused   bool
}

// New creates a collector with the default tuning.
func New() *Game {
	g := &Game{}
	g.Configure(config.Default().Games)
	return g
}

// Configure applies the portal's collector section.
func (g *Game) Configure(games config.Games) {
	g.cfg = games.Collector
	g.cfg.RoundSeconds = max(g.cfg.RoundSeconds, 1)
	g.cfg.Orbs = max(g.cfg.Orbs, 1)
	if g.cfg.MoveSpeed <= 0 {
		g.cfg.MoveSpeed = 0.6
	}
}

// ID returns the game identifier.
func (g *Game) ID() string { return "collector" }

// Title returns the display name.
func (g *Game) Title() string { return "Orb Collector 3D" }

// Check rejects screens too small for the projected view.
func (g *Game) Check(cfg core.RuntimeConfig) error {
	if cfg.ScreenW < g.cfg.MinWidth || cfg.ScreenH < g.cfg.MinHeight {
		return fmt.Errorf("needs a %dx%d terminal, have %dx%d",
			g.cfg.MinWidth, g.cfg.MinHeight, cfg.ScreenW, cfg.ScreenH)
	}
	return nil
}

// Reset starts a round in the middle of the arena.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}
	g.duration = g.cfg.RoundSeconds * g.tickRate
	g.cam = Camera{Pos: Vec3{Y: eyeHeight}}
	g.score = 0
	g.sets = 0
	g.tick = 0
	g.gameOver = false
	g.paused = false
	g.spawnOrbs()
}

// spawnOrbs scatters a fresh set, keeping clear of the player.
func (g *Game) spawnOrbs() {
	g.orbs = g.orbs[:0]
	for len(g.orbs) < g.cfg.Orbs {
		p := Vec3{
			X: (g.rng.Float64()*2 - 1) * (ArenaHalf - 1),
			Y: 0.5 + g.rng.Float64(),
			Z: (g.rng.Float64()*2 - 1) * (ArenaHalf - 1),
		}
		if groundDist(p, g.cam.Pos) < 3 {
			continue
		}
		g.orbs = append(g.orbs, Orb{Pos: p})
	}
	g.left = len(g.orbs)
	g.sets++
}

// Remaining returns the seconds left, rounded up.
func (g *Game) Remaining() int {
	ticks := max(g.duration-g.tick, 0)
	return (ticks + g.tickRate - 1) / g.tickRate
}

// Step advances one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.gameOver || g.paused {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	if in.Has(core.ActionLeft) {
		g.cam.Heading -= turnStep
	}
	if in.Has(core.ActionRight) {
		g.cam.Heading += turnStep
	}
	var move float64
	if in.Has(core.ActionUp) {
		move += g.cfg.MoveSpeed
	}
	if in.Has(core.ActionDown) {
		move -= g.cfg.MoveSpeed
	}
	if move != 0 {
		fx, fz := g.cam.Forward()
		g.cam.Pos.X = core.ClampF(g.cam.Pos.X+fx*move, -ArenaHalf, ArenaHalf)
		g.cam.Pos.Z = core.ClampF(g.cam.Pos.Z+fz*move, -ArenaHalf, ArenaHalf)
	}

	g.collect()

	if g.tick >= g.duration {
		g.gameOver = true
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) collect() {
	for i := range g.orbs {
		o := &g.orbs[i]
		if o.Taken || groundDist(o.Pos, g.cam.Pos) > pickupRange {
			continue
		}
		o.Taken = true
		g.left--
		g.score += orbPoints
	}
	if g.left == 0 {
		g.score += clearBonus
		g.spawnOrbs()
	}
}

type sprite struct {
	x, y  int
	depth float64
}

// Render draws the floor, the orbs far to near, a minimap and the HUD.
func (g *Game) Render(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	view := Viewport{Width: w, Height: h - hudRows, Near: 0.3}
	horizon := view.Height / 2

	for y := horizon + 1; y < view.Height; y++ {
		glyph := '·'
		if (y-horizon)%2 == 0 {
			glyph = ' '
		}
		for x := 0; x < w; x += 2 {
			dst.SetColor(x, y+hudRows, glyph, core.ColorGray)
		}
	}

	var sprites []sprite
	for _, o := range g.orbs {
		if o.Taken {
			continue
		}
		x, y, d, ok := view.Project(g.cam, o.Pos)
		if ok {
			sprites = append(sprites, sprite{x, y, d})
		}
	}
	sort.Slice(sprites, func(i, j int) bool { return sprites[i].depth > sprites[j].depth })
	for _, s := range sprites {
		glyph, color := '·', core.ColorBlue
		switch {
		case s.depth < 3:
			glyph, color = '●', core.ColorYellow
		case s.depth < 7:
			glyph, color = 'o', core.ColorCyan
		}
		dst.SetColor(s.x, s.y+hudRows, glyph, color)
	}

	dst.SetColor(w/2, view.Height/2+hudRows, '+', core.ColorWhite)

	hud := fmt.Sprintf(" Score: %d  Orbs: %d/%d  Time: %ds  Set: %d",
		g.score, g.cfg.Orbs-g.left, g.cfg.Orbs, g.Remaining(), g.sets)
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, w, '─')
	g.renderMinimap(dst, w-13, hudRows+1)
}

// renderMinimap draws a top-down 11x6 view of the arena.
func (g *Game) renderMinimap(dst *core.Screen, x0, y0 int) {
	const mw, mh = 11, 6
	toMap := func(p Vec3) (int, int) {
		mx := int((p.X + ArenaHalf) / (2 * ArenaHalf) * (mw - 1))
		my := int((ArenaHalf - p.Z) / (2 * ArenaHalf) * (mh - 1))
		return x0 + 1 + mx, y0 + 1 + my
	}
	dst.DrawBox(core.NewRect(x0, y0, mw+2, mh+2))
	for _, o := range g.orbs {
		if !o.Taken {
			x, y := toMap(o.Pos)
			dst.SetColor(x, y, '∙', core.ColorCyan)
		}
	}
	x, y := toMap(g.cam.Pos)
	dst.SetColor(x, y, '@', core.ColorYellow)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}
