// Package rhythm implements a four lane note highway. A seeded chart of
// notes falls toward the hit line; pressing the lane's direction inside the
// timing window scores it. The run ends when the chart is exhausted.
package rhythm

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
)

const (
	perfectPoints = 300
	goodPoints    = 100
	laneWidth     = 5
)

var laneActions = [laneCount]core.Action{core.ActionLeft, core.ActionDown, core.ActionUp, core.ActionRight}

var laneColors = [laneCount]core.Color{core.ColorMagenta, core.ColorCyan, core.ColorGreen, core.ColorRed}

// Game implements the rhythm game.
type Game struct {
	cfg config.RhythmConfig

	notes []Note
	next  int // first note not yet judged
	tick  int

	score    int
	combo    int
	maxCombo int
	counts   [Miss + 1]int
	last     Judgement
	lastTick int

	gameOver bool
	paused   bool
}

// New creates a rhythm game with the default chart settings.
func New() *Game {
	g := &Game{}
	g.Configure(config.Default().Games)
	return g
}

// Configure applies the portal's rhythm section.
func (g *Game) Configure(games config.Games) {
	g.cfg = games.Rhythm
	g.cfg.Notes = max(g.cfg.Notes, 1)
	g.cfg.BeatTicks = max(g.cfg.BeatTicks, 2)
	g.cfg.FallTicks = max(g.cfg.FallTicks, 1)
	g.cfg.PerfectWindow = max(g.cfg.PerfectWindow, 0)
	g.cfg.GoodWindow = max(g.cfg.GoodWindow, g.cfg.PerfectWindow)
}

// ID returns the game identifier.
func (g *Game) ID() string { return "rhythm" }

// Title returns the display name.
func (g *Game) Title() string { return "Rhythm" }

// Reset deals a new chart from the seed.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	g.notes = buildChart(rng, g.cfg.Notes, g.cfg.BeatTicks, g.cfg.FallTicks)
	g.next = 0
	g.tick = 0
	g.score = 0
	g.combo = 0
	g.maxCombo = 0
	g.counts = [Miss + 1]int{}
	g.last = Pending
	g.gameOver = false
	g.paused = false
}

// Step advances one tick: judge presses, then expire late notes.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.gameOver || g.paused {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	for lane, action := range laneActions {
		if in.Has(action) {
			g.press(Lane(lane))
		}
	}

	for i := g.next; i < len(g.notes); i++ {
		n := &g.notes[i]
		if n.HitTick-g.cfg.GoodWindow > g.tick {
			break
		}
		if n.Result == Pending && g.tick > n.HitTick+g.cfg.GoodWindow {
			g.judge(n, Miss)
		}
	}
	for g.next < len(g.notes) && g.notes[g.next].Result != Pending {
		g.next++
	}

	if g.next == len(g.notes) {
		g.gameOver = true
	}
	return core.StepResult{State: g.State()}
}

// press judges the closest pending note in lane. A press with nothing in
// the window does nothing.
func (g *Game) press(lane Lane) {
	var best *Note
	bestOff := g.cfg.GoodWindow + 1
	for i := g.next; i < len(g.notes); i++ {
		n := &g.notes[i]
		if n.HitTick-g.cfg.GoodWindow > g.tick {
			break
		}
		if n.Lane != lane || n.Result != Pending {
			continue
		}
		if off := core.Abs(n.HitTick - g.tick); off < bestOff {
			best, bestOff = n, off
		}
	}
	if best == nil {
		return
	}
	if bestOff <= g.cfg.PerfectWindow {
		g.judge(best, Perfect)
	} else {
		g.judge(best, Good)
	}
}

func (g *Game) judge(n *Note, j Judgement) {
	n.Result = j
	g.counts[j]++
	g.last, g.lastTick = j, g.tick

	if j == Miss {
		g.combo = 0
		return
	}
	g.combo++
	g.maxCombo = max(g.maxCombo, g.combo)

	base := goodPoints
	if j == Perfect {
		base = perfectPoints
	}
	g.score += base * (10 + min(g.combo, 40)) / 10
}

// Combo returns the current streak of hits.
func (g *Game) Combo() int { return g.combo }

// Counts returns how many notes got each judgement.
func (g *Game) Counts() (perfect, good, miss int) {
	return g.counts[Perfect], g.counts[Good], g.counts[Miss]
}

// Accuracy is the weighted hit rate of judged notes, 0 to 100.
func (g *Game) Accuracy() float64 {
	judged := g.counts[Perfect] + g.counts[Good] + g.counts[Miss]
	if judged == 0 {
		return 100
	}
	return float64(2*g.counts[Perfect]+g.counts[Good]) * 50 / float64(judged)
}

// Render draws the highway, falling notes and the HUD.
func (g *Game) Render(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	hitY := h - 3
	left := (w - int(laneCount)*laneWidth) / 2

	dst.DrawText(1, 0, fmt.Sprintf("Score: %d  Combo: %d  Max: %d  Acc: %.1f%%",
		g.score, g.combo, g.maxCombo, g.Accuracy()))

	for lane := Lane(0); lane < laneCount; lane++ {
		x := left + int(lane)*laneWidth
		dst.DrawVLine(x, 1, hitY, '│')
		dst.SetColor(x+laneWidth/2, hitY, laneGlyphs[lane], laneColors[lane])
	}
	dst.DrawVLine(left+int(laneCount)*laneWidth, 1, hitY, '│')
	dst.DrawHLine(left, hitY+1, int(laneCount)*laneWidth+1, '─')

	for i := g.next; i < len(g.notes); i++ {
		n := g.notes[i]
		dt := n.HitTick - g.tick
		if dt > g.cfg.FallTicks {
			break
		}
		if n.Result != Pending {
			continue
		}
		y := hitY - dt*(hitY-1)/g.cfg.FallTicks
		if y < 1 || y > hitY {
			continue
		}
		x := left + int(n.Lane)*laneWidth + 1
		dst.DrawTextColor(x, y, "███", laneColors[n.Lane])
	}

	if g.last != Pending && g.tick-g.lastTick < 30 {
		dst.DrawTextCentered(hitY-4, g.last.String())
	}
	dst.DrawText(1, h-1, "←↓↑→ hit  P pause  B back")
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}
