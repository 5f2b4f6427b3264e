package breakout

import (
	"strings"
	"testing"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
)

func newGame(seed int64) *Game {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 60, ScreenH: 20})
	return g
}

// serveBall waits out the serve delay and launches.
func serveBall(g *Game) {
	for g.delay > 0 {
		g.Step(core.NewInputFrame())
	}
	g.Step(core.InputOf(core.ActionPrimary))
}

func TestDeterminism(t *testing.T) {
	g1 := newGame(99)
	g2 := newGame(99)
	serveBall(g1)
	serveBall(g2)

	for i := 0; i < 500; i++ {
		in := core.NewInputFrame()
		if i%7 == 0 {
			in.Set(core.ActionLeft)
		}
		g1.Step(in)
		g2.Step(in)
	}

	if g1.ball != g2.ball || g1.score != g2.score || g1.lives != g2.lives {
		t.Errorf("runs diverged: %+v/%d vs %+v/%d", g1.ball, g1.score, g2.ball, g2.score)
	}
}

func TestServeWaitsForDelayAndPrimary(t *testing.T) {
	g := newGame(1)

	g.Step(core.InputOf(core.ActionPrimary))
	if !g.ball.Stuck {
		t.Fatal("ball launched during serve delay")
	}

	for g.delay > 0 {
		g.Step(core.NewInputFrame())
	}
	g.Step(core.NewInputFrame())
	if !g.ball.Stuck {
		t.Fatal("ball launched without Primary")
	}

	g.Step(core.InputOf(core.ActionPrimary))
	if g.ball.Stuck || g.ball.VY >= 0 {
		t.Errorf("ball = %+v, expected launched upward", g.ball)
	}
}

func TestStuckBallFollowsPaddle(t *testing.T) {
	g := newGame(1)
	g.Step(core.InputOf(core.ActionRight))

	if g.ball.X != g.paddle.CenterX() {
		t.Errorf("ball X = %d, paddle center = %d", g.ball.X, g.paddle.CenterX())
	}
}

func TestPaddleClampedToField(t *testing.T) {
	g := newGame(1)
	for i := 0; i < 50; i++ {
		g.Step(core.InputOf(core.ActionLeft))
	}
	if g.paddle.X != ToFixed(g.field.Left) {
		t.Errorf("paddle X = %d, expected left wall %d", g.paddle.X, ToFixed(g.field.Left))
	}
	for i := 0; i < 50; i++ {
		g.Step(core.InputOf(core.ActionRight))
	}
	if g.paddle.Right() != ToFixed(g.field.Right) {
		t.Errorf("paddle right = %d, expected right wall %d", g.paddle.Right(), ToFixed(g.field.Right))
	}
}

func TestMissCostsLife(t *testing.T) {
	g := newGame(1)
	serveBall(g)

	g.ball = Ball{X: ToFixed(5), Y: ToFixed(g.field.Bottom) - 1, VX: 0, VY: 500}
	g.paddle.X = ToFixed(30)
	g.Step(core.NewInputFrame())

	if g.lives != g.cfg.Lives-1 {
		t.Errorf("lives = %d, expected %d", g.lives, g.cfg.Lives-1)
	}
	if !g.ball.Stuck {
		t.Error("ball should return to the paddle after a miss")
	}
	if g.State().GameOver {
		t.Error("game should continue with lives left")
	}
}

func TestGameOverWhenLivesRunOut(t *testing.T) {
	g := newGame(1)
	g.lives = 1
	serveBall(g)

	g.ball = Ball{X: ToFixed(5), Y: ToFixed(g.field.Bottom) - 1, VY: 500}
	g.paddle.X = ToFixed(30)
	g.Step(core.NewInputFrame())

	if !g.State().GameOver {
		t.Fatal("expected game over")
	}
	before := g.tick
	g.Step(core.InputOf(core.ActionLeft))
	if g.tick != before {
		t.Error("game advanced after game over")
	}
}

func TestPaddleBounce(t *testing.T) {
	tests := []struct {
		name   string
		offset Fixed
		wantVX func(Fixed) bool
	}{
		{"center goes straight up", 0, func(vx Fixed) bool { return vx == 0 }},
		{"left edge goes left", -ToFixed(3), func(vx Fixed) bool { return vx < 0 }},
		{"right edge goes right", ToFixed(3), func(vx Fixed) bool { return vx > 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paddle{X: ToFixed(10), Y: 18, Width: 8}
			b := Ball{X: p.CenterX() + tt.offset, Y: ToFixed(17), VY: 500}
			if !bouncePaddle(&b, &p, 500) {
				t.Fatal("expected a bounce")
			}
			if b.VY != -500 {
				t.Errorf("VY = %d, expected -500", b.VY)
			}
			if !tt.wantVX(b.VX) {
				t.Errorf("VX = %d", b.VX)
			}
		})
	}
}

func TestBounceWalls(t *testing.T) {
	f := Field{Left: 1, Top: 2, Right: 59, Bottom: 20}

	b := Ball{X: ToFixed(1) - 100, Y: ToFixed(10), VX: -300}
	bounceWalls(&b, f)
	if b.VX <= 0 {
		t.Errorf("left wall: VX = %d, expected positive", b.VX)
	}

	b = Ball{X: ToFixed(30), Y: ToFixed(2) - 100, VY: -300}
	bounceWalls(&b, f)
	if b.VY <= 0 {
		t.Errorf("top wall: VY = %d, expected positive", b.VY)
	}

	b = Ball{X: ToFixed(30), Y: ToFixed(20), VY: 300}
	if !bounceWalls(&b, f) {
		t.Error("ball past the bottom should report a fall")
	}
}

func TestBrickHitScores(t *testing.T) {
	g := newGame(1)
	serveBall(g)

	row := len(g.bricks) - 1
	x := g.left + 1
	g.ball = Ball{X: ToFixed(x), Y: ToFixed(brickTop+row+1) + 200, VY: -500}
	g.Step(core.NewInputFrame())

	if g.bricks[row][0].HP != 0 {
		t.Fatalf("brick HP = %d, expected destroyed", g.bricks[row][0].HP)
	}
	if g.score != 10 {
		t.Errorf("score = %d, expected 10 for the bottom row", g.score)
	}
	if g.ball.VY <= 0 {
		t.Error("ball should bounce back down")
	}
}

func TestTopRowTakesTwoHits(t *testing.T) {
	g := newGame(1)
	if g.bricks[0][0].HP != 2 {
		t.Fatalf("top row HP = %d, expected 2", g.bricks[0][0].HP)
	}
	if g.bricks[1][0].HP != 1 {
		t.Errorf("second row HP = %d, expected 1", g.bricks[1][0].HP)
	}
}

func TestClearingWallStartsNextWave(t *testing.T) {
	g := newGame(1)
	serveBall(g)
	speed := g.speed

	for r := range g.bricks {
		for c := range g.bricks[r] {
			g.bricks[r][c].HP = 0
		}
	}
	last := len(g.bricks) - 1
	g.bricks[last][0].HP = 1
	g.ball = Ball{X: ToFixed(g.left + 1), Y: ToFixed(brickTop+last+1) + 200, VY: -500}
	g.Step(core.NewInputFrame())

	if g.wave != 1 {
		t.Fatalf("wave = %d, expected 1", g.wave)
	}
	if g.bricksLeft() != g.cols*g.cfg.BrickRows {
		t.Errorf("new wall has %d bricks", g.bricksLeft())
	}
	if g.speed <= speed {
		t.Errorf("speed %d should exceed %d after a wave", g.speed, speed)
	}
	if !g.ball.Stuck {
		t.Error("a new wave starts with a serve")
	}
}

func TestConfigureUsesPreset(t *testing.T) {
	games := config.Default().Games
	games.ApplyPreset(config.DifficultyHard)

	g := New()
	g.Configure(games)
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 60, ScreenH: 20})

	if g.lives != games.Breakout.Lives || g.paddle.Width != games.Breakout.PaddleWidth {
		t.Errorf("lives=%d width=%d, expected %d/%d",
			g.lives, g.paddle.Width, games.Breakout.Lives, games.Breakout.PaddleWidth)
	}
}

func TestPauseFreezes(t *testing.T) {
	g := newGame(1)
	serveBall(g)

	g.Step(core.InputOf(core.ActionPause))
	before := g.ball
	g.Step(core.NewInputFrame())
	if g.ball != before || !g.State().Paused {
		t.Error("ball moved while paused")
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 20, ScreenH: 10})

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Error("expected a size warning")
	}
}

func TestRender(t *testing.T) {
	g := newGame(1)
	screen := core.NewScreen(60, 20)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"Score: 0", "Wave: 1", string(BallChar), string(PaddleChar)} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}
