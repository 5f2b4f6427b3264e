package tui

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-portal/internal/analytics"
	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/storage"
)

// pingGame scores on Primary and ends on Confirm.
type pingGame struct {
	id    string
	state core.GameState
}

func (g *pingGame) ID() string               { return g.id }
func (g *pingGame) Title() string            { return strings.ToUpper(g.id) }
func (g *pingGame) Reset(core.RuntimeConfig) { g.state = core.GameState{} }
func (g *pingGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, "playing "+g.id) }
func (g *pingGame) State() core.GameState    { return g.state }
func (g *pingGame) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.state.Paused = !g.state.Paused
	}
	if in.Has(core.ActionPrimary) {
		g.state.Score++
	}
	if in.Has(core.ActionConfirm) {
		g.state.GameOver = true
	}
	return core.StepResult{State: g.state}
}

type testEnv struct {
	deps    Deps
	now     time.Time
	backend *storage.Backend
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{now: time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)}

	reg := registry.New()
	for _, id := range []string{"alpha", "beta"} {
		reg.Register(registry.Descriptor{ID: id, Title: strings.ToUpper(id), Category: registry.CategoryArcade},
			func() registry.Game { return &pingGame{id: id} })
	}
	reg.Register(registry.Descriptor{ID: "later", Title: "LATER", Category: registry.CategoryPuzzle,
		Status: registry.StatusComingSoon}, nil)

	backend, err := storage.Open(context.Background(), config.StorageConfig{Driver: config.DriverMemory})
	if err != nil {
		t.Fatal(err)
	}
	env.backend = backend

	cfg := config.Default()
	cfg.Loop = config.LoopConfig{TickRate: 10, FrameRate: 10, MaxCatchUp: 5}
	env.deps = Deps{
		Registry: reg,
		Tracker:  analytics.New(backend.KV, analytics.WithClock(func() time.Time { return env.now })),
		Backend:  backend,
		Config:   cfg,
		Seed:     1,
	}
	return env
}

func send(a *App, msgs ...tea.Msg) {
	for _, m := range msgs {
		a.Update(m)
	}
}

func frame(a *App, at time.Time) TickMsg {
	return TickMsg{Time: at, Seq: a.seq}
}

func TestAppMenuListsCatalog(t *testing.T) {
	env := newTestEnv(t)
	app := NewApp(context.Background(), env.deps, AppOptions{Width: 80, Height: 24})

	view := app.View()
	for _, want := range []string{"ALPHA", "BETA", "LATER", "SOON"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu missing %q", want)
		}
	}
}

func TestAppComingSoonNotSelectable(t *testing.T) {
	env := newTestEnv(t)
	app := NewApp(context.Background(), env.deps, AppOptions{Width: 80, Height: 24})

	send(app, keyMsg("down"), keyMsg("down"), keyMsg("enter"))

	if app.page != pageMenu {
		t.Fatalf("page = %v, coming soon entry must not start", app.page)
	}
	if !strings.Contains(app.View(), "coming soon") {
		t.Error("expected a coming soon notice")
	}
}

func TestAppPlayAndReturn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	app := NewApp(ctx, env.deps, AppOptions{Width: 80, Height: 24})

	send(app, keyMsg("enter"))
	if app.page != pageGame {
		t.Fatalf("page = %v, expected game", app.page)
	}
	if !strings.Contains(app.View(), "playing alpha") {
		t.Errorf("game view:\n%s", app.View())
	}

	start := time.Unix(0, 0)
	send(app, frame(app, start), keyMsg(" "), frame(app, start.Add(100*time.Millisecond)))
	send(app, keyMsg("b"))
	if app.page != pageGame {
		t.Fatal("back while running should be ignored")
	}

	send(app, keyMsg("p"), frame(app, start.Add(200*time.Millisecond)))
	env.now = env.now.Add(2 * time.Minute)
	send(app, keyMsg("b"))

	if app.page != pageMenu {
		t.Fatalf("page = %v, expected menu after back while paused", app.page)
	}
	s, err := env.deps.Tracker.Stats(ctx, "alpha")
	if err != nil {
		t.Fatal(err)
	}
	if s.VisitCount != 1 || s.TotalPlayTime != 120 {
		t.Errorf("stats = %+v, expected one 120s visit", s)
	}
	if _, ok, _ := env.deps.Tracker.ActiveSession(ctx); ok {
		t.Error("session left open")
	}
}

func TestAppDropsStaleFrames(t *testing.T) {
	env := newTestEnv(t)
	app := NewApp(context.Background(), env.deps, AppOptions{Width: 80, Height: 24})
	send(app, keyMsg("enter"))

	stale := TickMsg{Time: time.Unix(0, 0), Seq: app.seq - 1}
	_, cmd := app.Update(stale)
	if cmd != nil {
		t.Error("stale frame should not schedule another")
	}
}

func TestAppQuitClosesGame(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	app := NewApp(ctx, env.deps, AppOptions{Width: 80, Height: 24})
	send(app, keyMsg("enter"))

	_, cmd := app.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("expected tea.Quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected a quit message")
	}
	if _, ok, _ := env.deps.Tracker.ActiveSession(ctx); ok {
		t.Error("quitting must end the session")
	}
}

func TestAppDirectGame(t *testing.T) {
	env := newTestEnv(t)
	app := NewApp(context.Background(), env.deps, AppOptions{Width: 80, Height: 24, Direct: "beta"})

	if cmd := app.Init(); cmd == nil {
		t.Fatal("direct start should schedule frames")
	}
	if app.page != pageGame {
		t.Fatalf("page = %v, expected game", app.page)
	}

	start := time.Unix(0, 0)
	send(app, frame(app, start), keyMsg("enter"), frame(app, start.Add(100*time.Millisecond)))
	_, cmd := app.Update(keyMsg("esc"))
	if cmd == nil {
		t.Fatal("leaving a direct game should quit")
	}
}

func TestAppDirectUnknownGame(t *testing.T) {
	env := newTestEnv(t)
	app := NewApp(context.Background(), env.deps, AppOptions{Direct: "nope"})
	app.Init()

	if app.Err() == nil {
		t.Error("expected an error for an unknown direct game")
	}
}

func TestAppScoreSavedOnGameOver(t *testing.T) {
	env := newTestEnv(t)
	store, err := storage.OpenSQLite(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	env.deps.Backend = &storage.Backend{KV: store, Scores: store}

	app := NewApp(context.Background(), env.deps, AppOptions{Width: 80, Height: 24})
	send(app, keyMsg("enter"))
	start := time.Unix(0, 0)
	send(app, frame(app, start),
		keyMsg(" "), frame(app, start.Add(100*time.Millisecond)),
		keyMsg(" "), frame(app, start.Add(200*time.Millisecond)),
		keyMsg("enter"), frame(app, start.Add(300*time.Millisecond)))

	if !strings.Contains(app.View(), "GAME OVER") {
		t.Fatalf("expected game over overlay:\n%s", app.View())
	}
	best, err := store.HighScore("alpha")
	if err != nil || best != 2 {
		t.Errorf("HighScore = %d, %v; expected 2", best, err)
	}
}

func TestAppStatsPage(t *testing.T) {
	env := newTestEnv(t)
	app := NewApp(context.Background(), env.deps, AppOptions{Width: 100, Height: 30})

	send(app, keyMsg("tab"))
	if app.page != pageStats {
		t.Fatalf("page = %v, expected stats", app.page)
	}
	if !strings.Contains(app.View(), "PORTAL STATS") {
		t.Error("stats title missing")
	}
	send(app, keyMsg("esc"))
	if app.page != pageMenu {
		t.Errorf("page = %v, expected menu", app.page)
	}
}

func TestAppCloseEndsGameAfterCancel(t *testing.T) {
	env := newTestEnv(t)
	store, err := storage.OpenSQLite(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	env.deps.Tracker = analytics.New(store, analytics.WithClock(func() time.Time { return env.now }))
	env.deps.Backend = &storage.Backend{KV: store, Scores: store}

	ctx, cancel := context.WithCancel(context.Background())
	app := NewApp(ctx, env.deps, AppOptions{Width: 80, Height: 24, Direct: "alpha"})
	app.Init()
	start := time.Unix(0, 0)
	send(app, frame(app, start), keyMsg(" "), frame(app, start.Add(100*time.Millisecond)))

	env.now = env.now.Add(42 * time.Second)
	cancel()
	app.Close()
	app.Close()

	bg := context.Background()
	if app.host.Active() != nil {
		t.Error("game still active after Close")
	}
	if _, ok, _ := env.deps.Tracker.ActiveSession(bg); ok {
		t.Error("session left open after Close")
	}
	s, err := env.deps.Tracker.Stats(bg, "alpha")
	if err != nil {
		t.Fatal(err)
	}
	if s.VisitCount != 1 || s.TotalPlayTime != 42 {
		t.Errorf("stats = %+v, expected one 42s visit", s)
	}
	if best, _ := store.HighScore("alpha"); best != 1 {
		t.Errorf("HighScore = %d, expected the running score 1", best)
	}
}

func TestAppCloseWithoutGame(t *testing.T) {
	env := newTestEnv(t)
	app := NewApp(context.Background(), env.deps, AppOptions{Width: 80, Height: 24})
	app.Close()

	if app.page != pageMenu {
		t.Errorf("page = %v, expected menu", app.page)
	}
	if _, ok, _ := env.deps.Tracker.ActiveSession(context.Background()); ok {
		t.Error("no session should exist")
	}
}

func TestRunProgramCancelledMidGame(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	app := NewApp(ctx, env.deps, AppOptions{Width: 80, Height: 24, Direct: "alpha"})

	time.AfterFunc(100*time.Millisecond, cancel)
	err := runProgram(ctx, app,
		tea.WithInput(nil), tea.WithOutput(io.Discard), tea.WithoutSignalHandler())
	if err != nil {
		t.Errorf("runProgram = %v, cancellation is a clean exit", err)
	}

	bg := context.Background()
	if app.host.Active() != nil {
		t.Error("game still active after the program was killed")
	}
	if sess, ok, _ := env.deps.Tracker.ActiveSession(bg); ok {
		t.Errorf("session %+v left open", sess)
	}
	if s, _ := env.deps.Tracker.Stats(bg, "alpha"); s.VisitCount != 1 {
		t.Errorf("VisitCount = %d, expected 1", s.VisitCount)
	}
}

func TestAppPlayersHaveOwnSessions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ann := NewApp(ctx, env.deps, AppOptions{Width: 80, Height: 24, User: "ann"})
	bob := NewApp(ctx, env.deps, AppOptions{Width: 80, Height: 24, User: "bob"})

	send(ann, keyMsg("enter"))
	send(bob, keyMsg("enter"))
	env.now = env.now.Add(10 * time.Second)
	ann.Update(keyMsg("q"))
	env.now = env.now.Add(20 * time.Second)
	bob.Update(keyMsg("q"))

	s, err := env.deps.Tracker.Stats(ctx, "alpha")
	if err != nil {
		t.Fatal(err)
	}
	if s.VisitCount != 2 || s.TotalPlayTime != 40 {
		t.Errorf("stats = %+v, expected 2 visits and 10s+30s", s)
	}
}
