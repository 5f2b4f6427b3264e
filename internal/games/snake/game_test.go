package snake

import (
	"strings"
	"testing"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
)

func newGame(seed int64) *Game {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 24})
	return g
}

// stepN runs n ticks, sending in on the first one.
func stepN(g *Game, n int, in core.InputFrame) {
	for i := 0; i < n; i++ {
		g.Step(in)
		in = core.NewInputFrame()
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newGame(12345)
	g2 := newGame(12345)

	for i := 0; i < 200; i++ {
		input := core.NewInputFrame()
		if i == 20 {
			input.Set(core.ActionDown)
		}
		if i == 40 {
			input.Set(core.ActionLeft)
		}
		g1.Step(input)
		g2.Step(input)
	}

	if g1.Snapshot() != g2.Snapshot() {
		t.Errorf("snapshots differ:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := newGame(42)

	if g.direction != DirRight {
		t.Fatalf("Expected initial direction Right, got %v", g.direction)
	}

	g.Step(core.InputOf(core.ActionLeft))
	if g.nextDir == DirLeft {
		t.Error("Should not allow immediate reversal from Right to Left")
	}

	g.Step(core.InputOf(core.ActionDown))
	if g.nextDir != DirDown {
		t.Errorf("Expected nextDir to be Down, got %v", g.nextDir)
	}
}

func TestMovementFollowsInterval(t *testing.T) {
	g := newGame(1)
	head := g.snake[0]
	every := g.cfg.MoveEveryTicks

	stepN(g, every-1, core.NewInputFrame())
	if g.snake[0] != head {
		t.Fatalf("snake moved before %d ticks", every)
	}
	g.Step(core.NewInputFrame())
	if g.snake[0].X != head.X+1 {
		t.Errorf("head = %+v, expected one cell right of %+v", g.snake[0], head)
	}
}

func TestFoodSpawnValidity(t *testing.T) {
	g := newGame(999)

	for i := 0; i < 100; i++ {
		g.spawnFood()
		if g.isWall(g.food) {
			t.Errorf("Food spawned on wall at (%d, %d)", g.food.X, g.food.Y)
		}
		if g.isSnakeAt(g.food) {
			t.Errorf("Food spawned on snake at (%d, %d)", g.food.X, g.food.Y)
		}
	}
}

func TestWallCollision(t *testing.T) {
	g := newGame(789)

	g.snake = []Point{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}}
	g.direction = DirUp
	g.nextDir = DirUp
	g.moveSnake()

	if !g.gameOver {
		t.Error("Game should be over after hitting wall")
	}
}

func TestSelfCollision(t *testing.T) {
	g := newGame(111)

	g.snake = []Point{
		{X: 5, Y: 5}, // Head
		{X: 5, Y: 6},
		{X: 6, Y: 6},
		{X: 6, Y: 5},
		{X: 6, Y: 4},
	}
	g.direction = DirRight
	g.nextDir = DirRight
	g.moveSnake()

	if !g.gameOver {
		t.Error("Game should be over after self collision")
	}
}

func TestChasingTailIsSafe(t *testing.T) {
	g := newGame(111)

	// Square loop: the head moves into the cell the tail is leaving.
	g.snake = []Point{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 5}}
	g.direction = DirRight
	g.nextDir = DirRight
	g.food = Point{X: 10, Y: 10}
	g.moveSnake()

	if g.gameOver {
		t.Error("moving into the departing tail should be allowed")
	}
}

func TestSnakeGrowth(t *testing.T) {
	g := newGame(222)
	initialLen := len(g.snake)

	head := g.snake[0]
	g.food = Point{X: head.X + 1, Y: head.Y}
	g.moveSnake()

	if len(g.snake) != initialLen+1 {
		t.Errorf("Snake should grow by 1 after eating food, got %d vs %d", len(g.snake), initialLen+1)
	}
	if g.score != 1 {
		t.Errorf("Score should be 1 after eating food, got %d", g.score)
	}
}

func TestSpeedsUpWithScore(t *testing.T) {
	g := newGame(5)
	slow := g.moveEvery()

	g.score = g.cfg.Difficulty.Progression.MaxAt
	fast := g.moveEvery()

	if fast >= slow || fast != g.cfg.MinMoveTicks {
		t.Errorf("moveEvery = %d at max score, expected %d (start %d)", fast, g.cfg.MinMoveTicks, slow)
	}
}

func TestConfigureFixedSpeed(t *testing.T) {
	games := config.Default().Games
	games.ApplyPreset(config.DifficultyFixed)

	g := New()
	g.Configure(games)
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24})
	g.score = 1000

	if got := g.moveEvery(); got != games.Snake.MoveEveryTicks {
		t.Errorf("fixed difficulty moveEvery = %d, expected %d", got, games.Snake.MoveEveryTicks)
	}
}

func TestArenaFitsSmallScreen(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 20, ScreenH: 10})

	if g.width > 20 || g.height > 8 {
		t.Errorf("arena %dx%d does not fit 20x10 with HUD", g.width, g.height)
	}
}

func TestPauseFreezes(t *testing.T) {
	g := newGame(3)
	g.Step(core.InputOf(core.ActionPause))
	head := g.snake[0]

	stepN(g, 50, core.NewInputFrame())
	if g.snake[0] != head || !g.State().Paused {
		t.Error("paused snake should not move")
	}
}

func TestRender(t *testing.T) {
	g := newGame(444)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	content := screen.String()
	if !strings.Contains(content, "Snake") {
		t.Error("HUD should contain 'Snake'")
	}
	if !strings.Contains(content, "O") {
		t.Error("snake head should be drawn")
	}
}
