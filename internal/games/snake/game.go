// Package snake implements the classic grid snake inside a walled arena.
package snake

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/loop"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Point is a cell in arena coordinates; the walls sit on the outer ring.
type Point struct {
	X, Y int
}

const hudHeight = 2

// Game implements Snake.
type Game struct {
	cfg        config.SnakeConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	tick       uint64
	score      int
	move       *loop.Interval

	// Snake state
	snake     []Point // Head at index 0
	direction Direction
	nextDir   Direction // Buffered direction for next move
	growing   bool

	width, height int // Arena size including walls
	offsetX       int
	food          Point

	gameOver bool
	paused   bool
}

// New creates a Snake game with the default tuning.
func New() *Game {
	g := &Game{}
	g.Configure(config.Default().Games)
	return g
}

// Configure applies the portal's snake section.
func (g *Game) Configure(games config.Games) {
	g.cfg = games.Snake
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
}

// ID returns the game identifier.
func (g *Game) ID() string { return "snake" }

// Title returns the display name.
func (g *Game) Title() string { return "Snake" }

// Reset initializes or restarts the game. The arena shrinks to fit the screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.score = 0
	g.gameOver = false
	g.paused = false

	g.width = core.Clamp(g.cfg.Width, 8, max(cfg.ScreenW, 8))
	g.height = core.Clamp(g.cfg.Height, 6, max(cfg.ScreenH-hudHeight, 6))
	g.offsetX = max((cfg.ScreenW-g.width)/2, 0)

	g.move = loop.NewInterval(g.moveEvery())
	g.initSnake()
	g.spawnFood()
}

func (g *Game) moveEvery() int {
	return g.difficulty.Interval(g.cfg.MoveEveryTicks, g.cfg.MinMoveTicks, g.score, int(g.tick))
}

// initSnake places a three segment snake on the left half, heading right.
func (g *Game) initSnake() {
	startX := max(g.width/4, 1)
	startY := g.height / 2

	g.snake = []Point{
		{X: startX + 2, Y: startY}, // Head
		{X: startX + 1, Y: startY},
		{X: startX, Y: startY},
	}
	g.direction = DirRight
	g.nextDir = DirRight
	g.growing = false
}

// spawnFood places food at a random empty cell.
func (g *Game) spawnFood() {
	var emptyCells []Point
	for y := 1; y < g.height-1; y++ {
		for x := 1; x < g.width-1; x++ {
			p := Point{X: x, Y: y}
			if !g.isSnakeAt(p) {
				emptyCells = append(emptyCells, p)
			}
		}
	}

	if len(emptyCells) == 0 {
		// Arena full: nothing left to eat.
		g.food = Point{X: -1, Y: -1}
		g.gameOver = true
		return
	}

	g.food = emptyCells[g.rng.Intn(len(emptyCells))]
}

func (g *Game) isSnakeAt(p Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

func (g *Game) isWall(p Point) bool {
	return p.X <= 0 || p.Y <= 0 || p.X >= g.width-1 || p.Y >= g.height-1
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

	g.processInput(input)

	if g.move.Tick() {
		g.moveSnake()
		g.move.SetEvery(g.moveEvery())
	}

	return core.StepResult{State: g.State()}
}

// processInput buffers a direction change for the next move.
func (g *Game) processInput(input core.InputFrame) {
	newDir := g.nextDir

	switch {
	case input.Has(core.ActionUp):
		newDir = DirUp
	case input.Has(core.ActionDown):
		newDir = DirDown
	case input.Has(core.ActionLeft):
		newDir = DirLeft
	case input.Has(core.ActionRight):
		newDir = DirRight
	}

	// Reversal into the neck is ignored.
	if !isOpposite(newDir, g.direction) {
		g.nextDir = newDir
	}
}

func isOpposite(d1, d2 Direction) bool {
	return (d1 == DirUp && d2 == DirDown) ||
		(d1 == DirDown && d2 == DirUp) ||
		(d1 == DirLeft && d2 == DirRight) ||
		(d1 == DirRight && d2 == DirLeft)
}

// moveSnake moves the snake one cell in the buffered direction.
func (g *Game) moveSnake() {
	if len(g.snake) == 0 {
		return
	}
	g.direction = g.nextDir

	head := g.snake[0]
	newHead := head
	switch g.direction {
	case DirUp:
		newHead.Y--
	case DirDown:
		newHead.Y++
	case DirLeft:
		newHead.X--
	case DirRight:
		newHead.X++
	}

	if g.isWall(newHead) {
		g.gameOver = true
		return
	}

	// The tail moves away this step unless the snake is growing.
	checkLen := len(g.snake)
	if !g.growing {
		checkLen--
	}
	for i := range checkLen {
		if g.snake[i] == newHead {
			g.gameOver = true
			return
		}
	}

	g.snake = append([]Point{newHead}, g.snake...)

	if newHead == g.food {
		g.score++
		g.growing = true
		g.spawnFood()
	}

	if g.growing {
		g.growing = false
	} else {
		g.snake = g.snake[:len(g.snake)-1]
	}
}

// Render draws the HUD, arena, snake and food.
func (g *Game) Render(dst *core.Screen) {
	hud := fmt.Sprintf(" Snake  Score: %d  Length: %d", g.score, len(g.snake))
	dst.DrawTextColor(0, 0, hud, core.ColorWhite)
	dst.DrawHLine(0, 1, dst.Width(), '─')

	arena := core.NewRect(g.offsetX, hudHeight, g.width, g.height)
	dst.DrawBox(arena)

	if g.food.X >= 0 {
		dst.SetColor(g.offsetX+g.food.X, hudHeight+g.food.Y, '*', core.ColorRed)
	}
	for i, seg := range g.snake {
		ch, c := 'o', core.ColorGreen
		if i == 0 {
			ch, c = 'O', core.ColorYellow
		}
		dst.SetColor(g.offsetX+seg.X, hudHeight+seg.Y, ch, c)
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

// Snapshot captures the state for determinism checks.
type Snapshot struct {
	Tick      uint64
	Score     int
	SnakeLen  int
	HeadX     int
	HeadY     int
	Dir       Direction
	FoodX     int
	FoodY     int
	MoveEvery int
	GameOver  bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:      g.tick,
		Score:     g.score,
		SnakeLen:  len(g.snake),
		Dir:       g.direction,
		FoodX:     g.food.X,
		FoodY:     g.food.Y,
		MoveEvery: g.move.Every(),
		GameOver:  g.gameOver,
	}
	if len(g.snake) > 0 {
		s.HeadX, s.HeadY = g.snake[0].X, g.snake[0].Y
	}
	return s
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}
