// Package tetris implements a 10x20 falling block puzzle with a seven-piece
// bag, wall kicks, soft and hard drop, and level-scaled line scoring.
package tetris

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/loop"
)

const (
	WellWidth  = 10
	WellHeight = 20
)

// lineScores is indexed by lines cleared at once.
var lineScores = [5]int{0, 100, 300, 500, 800}

type cellState struct {
	filled bool
	kind   Kind
}

// Game implements Tetris.
type Game struct {
	cfg        config.TetrisConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	bag        *bag
	gravity    *loop.Interval

	well    [WellHeight][WellWidth]cellState
	current Piece
	next    Kind

	tick     uint64
	score    int
	lines    int
	softDrop int // ticks left in the current soft drop window

	screenW, screenH int

	gameOver bool
	paused   bool
}

// New creates a Tetris game with the default tuning.
func New() *Game {
	g := &Game{}
	g.Configure(config.Default().Games)
	return g
}

// Configure applies the portal's tetris section.
func (g *Game) Configure(games config.Games) {
	g.cfg = games.Tetris
	if g.cfg.LinesPerLevel <= 0 {
		g.cfg.LinesPerLevel = 10
	}
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
}

// ID returns the game identifier.
func (g *Game) ID() string { return "tetris" }

// Title returns the display name.
func (g *Game) Title() string { return "Tetris" }

// Reset clears the well and deals the first piece.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.bag = newBag(g.rng)
	g.well = [WellHeight][WellWidth]cellState{}
	g.tick = 0
	g.score = 0
	g.lines = 0
	g.softDrop = 0
	g.gameOver = false
	g.paused = false
	g.screenW, g.screenH = cfg.ScreenW, cfg.ScreenH

	g.gravity = loop.NewInterval(g.gravityEvery())
	g.next = g.bag.next()
	g.spawn()
}

// Level starts at 1 and rises every LinesPerLevel cleared lines.
func (g *Game) Level() int {
	return 1 + g.lines/g.cfg.LinesPerLevel
}

// gravityEvery combines the score-driven difficulty with the line level.
func (g *Game) gravityEvery() int {
	every := g.difficulty.Interval(g.cfg.GravityTicks, g.cfg.MinGravityTicks, g.score, int(g.tick))
	every -= (g.Level() - 1) * 2
	return max(every, max(g.cfg.MinGravityTicks, 1))
}

// spawn moves the preview piece into the well. A blocked spawn tops out.
func (g *Game) spawn() {
	kind := g.next
	g.next = g.bag.next()

	size := shapeDefs[kind].size
	g.current = Piece{Kind: kind, X: (WellWidth - size) / 2, Y: 0}
	if g.collides(g.current) {
		g.gameOver = true
	}
	g.gravity.Reset()
}

func (g *Game) collides(p Piece) bool {
	for _, c := range p.Cells() {
		if c.X < 0 || c.X >= WellWidth || c.Y >= WellHeight {
			return true
		}
		if c.Y >= 0 && g.well[c.Y][c.X].filled {
			return true
		}
	}
	return false
}

// tryMove shifts the piece, reporting whether it moved.
func (g *Game) tryMove(dx, dy int) bool {
	p := g.current
	p.X += dx
	p.Y += dy
	if g.collides(p) {
		return false
	}
	g.current = p
	return true
}

// rotate turns the piece clockwise, trying each kick offset.
func (g *Game) rotate() bool {
	if g.current.Kind == KindO {
		return false
	}
	for _, k := range kicks {
		p := g.current
		p.Rotation = (p.Rotation + 1) % 4
		p.X += k.X
		p.Y += k.Y
		if !g.collides(p) {
			g.current = p
			return true
		}
	}
	return false
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	if input.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.gameOver || g.paused {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	switch {
	case input.Has(core.ActionLeft):
		g.tryMove(-1, 0)
	case input.Has(core.ActionRight):
		g.tryMove(1, 0)
	}
	if input.Has(core.ActionUp) {
		g.rotate()
	}
	if input.Has(core.ActionPrimary) {
		g.hardDrop()
		return core.StepResult{State: g.State()}
	}
	if input.Has(core.ActionDown) {
		// Key repeat arrives every few ticks; keep falling fast in between.
		g.softDrop = g.cfg.SoftDropTicks * 2
		g.gravity.SetEvery(g.cfg.SoftDropTicks)
	}

	if g.gravity.Tick() {
		if g.tryMove(0, 1) {
			if g.softDrop > 0 {
				g.score++
			}
		} else {
			g.lock()
		}
	}

	if g.softDrop > 0 {
		g.softDrop--
		if g.softDrop == 0 {
			g.gravity.SetEvery(g.gravityEvery())
		}
	}

	return core.StepResult{State: g.State()}
}

// hardDrop drops the piece to the floor, scoring 2 per row, and locks it.
func (g *Game) hardDrop() {
	rows := 0
	for g.tryMove(0, 1) {
		rows++
	}
	g.score += rows * 2
	g.lock()
}

// lock writes the piece into the well, clears lines and spawns the next piece.
func (g *Game) lock() {
	for _, c := range g.current.Cells() {
		if c.Y < 0 {
			g.gameOver = true
			return
		}
		g.well[c.Y][c.X] = cellState{filled: true, kind: g.current.Kind}
	}

	cleared := g.clearLines()
	if cleared > 0 {
		g.score += lineScores[cleared] * g.Level()
		g.lines += cleared
	}

	g.softDrop = 0
	g.gravity.SetEvery(g.gravityEvery())
	g.spawn()
}

// clearLines removes full rows and returns how many were removed.
func (g *Game) clearLines() int {
	cleared := 0
	for y := WellHeight - 1; y >= 0; {
		if !g.rowFull(y) {
			y--
			continue
		}
		for yy := y; yy > 0; yy-- {
			g.well[yy] = g.well[yy-1]
		}
		g.well[0] = [WellWidth]cellState{}
		cleared++
	}
	return cleared
}

func (g *Game) rowFull(y int) bool {
	for x := 0; x < WellWidth; x++ {
		if !g.well[y][x].filled {
			return false
		}
	}
	return true
}

// ghostY returns the row the current piece would land on.
func (g *Game) ghostY() int {
	p := g.current
	for {
		p.Y++
		if g.collides(p) {
			return p.Y - 1
		}
	}
}

// Render draws the well, the falling piece with its landing shadow and the HUD.
// Each well cell is two columns wide.
func (g *Game) Render(dst *core.Screen) {
	boxW := WellWidth*2 + 2
	boxH := WellHeight + 2
	ox := max((dst.Width()-boxW-16)/2, 0)
	oy := max((dst.Height()-boxH)/2, 0)

	dst.DrawBox(core.NewRect(ox, oy, boxW, boxH))

	drawCell := func(c Cell, ch rune, color core.Color) {
		if c.Y < 0 {
			return
		}
		x := ox + 1 + c.X*2
		y := oy + 1 + c.Y
		dst.SetColor(x, y, ch, color)
		dst.SetColor(x+1, y, ch, color)
	}

	for y := 0; y < WellHeight; y++ {
		for x := 0; x < WellWidth; x++ {
			if cell := g.well[y][x]; cell.filled {
				drawCell(Cell{x, y}, '█', shapeDefs[cell.kind].color)
			}
		}
	}

	if !g.gameOver {
		ghost := g.current
		ghost.Y = g.ghostY()
		for _, c := range ghost.Cells() {
			drawCell(c, '░', core.ColorGray)
		}
		for _, c := range g.current.Cells() {
			drawCell(c, '█', shapeDefs[g.current.Kind].color)
		}
	}

	hx := ox + boxW + 2
	dst.DrawText(hx, oy+1, "TETRIS")
	dst.DrawText(hx, oy+3, fmt.Sprintf("Score %d", g.score))
	dst.DrawText(hx, oy+4, fmt.Sprintf("Lines %d", g.lines))
	dst.DrawText(hx, oy+5, fmt.Sprintf("Level %d", g.Level()))
	dst.DrawText(hx, oy+7, "Next")
	for _, c := range rotations[g.next][0] {
		dst.SetColor(hx+c.X*2, oy+9+c.Y, '█', shapeDefs[g.next].color)
		dst.SetColor(hx+c.X*2+1, oy+9+c.Y, '█', shapeDefs[g.next].color)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}
