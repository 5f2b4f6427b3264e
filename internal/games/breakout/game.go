// Package breakout implements a paddle and ball brick breaker. Clearing a
// wall deals a new one at a higher ball speed until the lives run out.
package breakout

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
)

const (
	PaddleChar = '='
	BallChar   = '●'

	brickTop   = 3 // first brick row on screen
	serveDelay = 45
	waveSpeed  = 1.1 // ball speed multiplier per cleared wall
)

// MinWidth and MinHeight are the smallest playable screen.
const (
	MinWidth  = 30
	MinHeight = 15
)

// BrickGlyphs by row, cycling.
var BrickGlyphs = []rune{'█', '▓', '▒', '░'}

var rowColors = []core.Color{core.ColorRed, core.ColorOrange, core.ColorYellow, core.ColorGreen, core.ColorCyan, core.ColorBlue}

// Brick is one wall segment. HP 0 means destroyed.
type Brick struct {
	HP     int
	Points int
}

// Game implements Breakout.
type Game struct {
	cfg config.BreakoutConfig
	rng *rand.Rand

	field  Field
	paddle Paddle
	ball   Ball
	bricks [][]Brick
	cols   int
	left   int // x of the first brick column

	speed Fixed
	score int
	lives int
	wave  int
	tick  int
	delay int

	gameOver bool
	paused   bool
	tooSmall bool
}

// New creates a Breakout game with the default tuning.
func New() *Game {
	g := &Game{}
	g.Configure(config.Default().Games)
	return g
}

// Configure applies the portal's breakout section.
func (g *Game) Configure(games config.Games) {
	g.cfg = games.Breakout
	g.cfg.Lives = max(g.cfg.Lives, 1)
	g.cfg.PaddleWidth = max(g.cfg.PaddleWidth, 3)
	g.cfg.PaddleSpeed = max(g.cfg.PaddleSpeed, 1)
	g.cfg.BrickRows = max(g.cfg.BrickRows, 1)
	g.cfg.BrickWidth = max(g.cfg.BrickWidth, 2)
	if g.cfg.BallSpeed <= 0 {
		g.cfg.BallSpeed = 0.5
	}
}

// ID returns the game identifier.
func (g *Game) ID() string { return "breakout" }

// Title returns the display name.
func (g *Game) Title() string { return "Breakout" }

// Reset starts a new game sized to the screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.score = 0
	g.lives = g.cfg.Lives
	g.wave = 0
	g.tick = 0
	g.gameOver = false
	g.paused = false

	g.tooSmall = cfg.ScreenW < MinWidth || cfg.ScreenH < MinHeight
	w, h := max(cfg.ScreenW, MinWidth), max(cfg.ScreenH, MinHeight)
	g.field = Field{Left: 1, Top: 2, Right: w - 1, Bottom: h}

	g.paddle = Paddle{
		X:     ToFixed((w - g.cfg.PaddleWidth) / 2),
		Y:     h - 2,
		Width: g.cfg.PaddleWidth,
	}
	g.speed = FromFloat(g.cfg.BallSpeed)
	g.buildWall()
	g.serve()
	g.delay = 0
}

// buildWall fills the brick rows. The top row takes two hits.
func (g *Game) buildWall() {
	inner := g.field.Right - g.field.Left
	g.cols = max(inner/g.cfg.BrickWidth, 1)
	g.left = g.field.Left + (inner-g.cols*g.cfg.BrickWidth)/2

	g.bricks = make([][]Brick, g.cfg.BrickRows)
	for r := range g.bricks {
		g.bricks[r] = make([]Brick, g.cols)
		hp := 1
		if r == 0 {
			hp = 2
		}
		for c := range g.bricks[r] {
			g.bricks[r][c] = Brick{HP: hp, Points: (g.cfg.BrickRows - r) * 10}
		}
	}
}

// serve puts the ball on the paddle.
func (g *Game) serve() {
	g.ball = Ball{X: g.paddle.CenterX(), Y: ToFixed(g.paddle.Y - 1), Stuck: true}
	g.delay = serveDelay
}

// launch releases the ball at a random upward angle.
func (g *Game) launch() {
	g.ball.Stuck = false
	g.ball.VX = g.speed / 4
	if g.rng.Intn(2) == 0 {
		g.ball.VX = -g.ball.VX
	}
	g.ball.VY = -g.speed
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.gameOver || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	g.movePaddle(in)

	if g.ball.Stuck {
		g.ball.X = g.paddle.CenterX()
		if g.delay > 0 {
			g.delay--
		} else if in.Has(core.ActionPrimary) {
			g.launch()
		}
		return core.StepResult{State: g.State()}
	}

	g.ball.Move()
	if bounceWalls(&g.ball, g.field) {
		g.miss()
		return core.StepResult{State: g.State()}
	}
	if !bouncePaddle(&g.ball, &g.paddle, g.speed) {
		g.hitBricks()
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) movePaddle(in core.InputFrame) {
	step := ToFixed(g.cfg.PaddleSpeed)
	if in.Has(core.ActionLeft) {
		g.paddle.X -= step
	}
	if in.Has(core.ActionRight) {
		g.paddle.X += step
	}
	lo := ToFixed(g.field.Left)
	hi := ToFixed(g.field.Right - g.paddle.Width)
	g.paddle.X = max(lo, min(g.paddle.X, hi))
}

// brickAt maps a screen cell to a brick index.
func (g *Game) brickAt(x, y int) (row, col int, ok bool) {
	row = y - brickTop
	if row < 0 || row >= len(g.bricks) || x < g.left {
		return 0, 0, false
	}
	col = (x - g.left) / g.cfg.BrickWidth
	if col >= g.cols {
		return 0, 0, false
	}
	return row, col, g.bricks[row][col].HP > 0
}

// hitBricks damages the brick under the ball and bounces it.
// Entering a brick row from above or below flips VY, otherwise VX.
func (g *Game) hitBricks() {
	x, y := g.ball.X.Cell(), g.ball.Y.Cell()
	row, col, ok := g.brickAt(x, y)
	if !ok {
		return
	}

	prevY := (g.ball.Y - g.ball.VY).Cell()
	if prevY != y {
		g.ball.VY = -g.ball.VY
	} else {
		g.ball.VX = -g.ball.VX
	}

	b := &g.bricks[row][col]
	b.HP--
	if b.HP == 0 {
		g.score += b.Points * (g.wave + 1)
	}
	if g.bricksLeft() == 0 {
		g.nextWave()
	}
}

func (g *Game) bricksLeft() int {
	n := 0
	for _, row := range g.bricks {
		for _, b := range row {
			if b.HP > 0 {
				n++
			}
		}
	}
	return n
}

func (g *Game) nextWave() {
	g.wave++
	g.speed = FromFloat(g.cfg.BallSpeed * pow(waveSpeed, g.wave))
	g.buildWall()
	g.serve()
}

func (g *Game) miss() {
	g.lives--
	if g.lives <= 0 {
		g.gameOver = true
		return
	}
	g.serve()
}

func pow(base float64, n int) float64 {
	out := 1.0
	for i := 0; i < n; i++ {
		out *= base
	}
	return out
}

// Render draws the HUD, walls, bricks, paddle and ball.
func (g *Game) Render(dst *core.Screen) {
	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinWidth, MinHeight))
		return
	}

	hud := fmt.Sprintf(" Breakout  Score: %d  Lives: %s  Wave: %d",
		g.score, strings.Repeat("♥", g.lives), g.wave+1)
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
	dst.DrawVLine(0, 2, dst.Height()-2, '│')
	dst.DrawVLine(g.field.Right, 2, dst.Height()-2, '│')

	for r, row := range g.bricks {
		glyph := BrickGlyphs[r%len(BrickGlyphs)]
		color := rowColors[r%len(rowColors)]
		for c, b := range row {
			if b.HP == 0 {
				continue
			}
			x := g.left + c*g.cfg.BrickWidth
			for i := 0; i < g.cfg.BrickWidth-1; i++ {
				dst.SetColor(x+i, brickTop+r, glyph, color)
			}
		}
	}

	for i := 0; i < g.paddle.Width; i++ {
		dst.SetColor(g.paddle.X.Cell()+i, g.paddle.Y, PaddleChar, core.ColorWhite)
	}
	dst.SetColor(g.ball.X.Cell(), g.ball.Y.Cell(), BallChar, core.ColorYellow)

	if g.ball.Stuck && g.delay == 0 {
		dst.DrawTextCentered(g.paddle.Y-3, "SPACE to serve")
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
