package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/host"
)

// closeTimeout bounds the storage writes made by Close.
const closeTimeout = 5 * time.Second

type page int

const (
	pageMenu page = iota
	pageGame
	pageStats
)

// AppOptions configures one App.
type AppOptions struct {
	Width, Height int
	// Direct starts in this game and quits when the player leaves it.
	Direct string
	// User names the SSH user in logs; empty for local play.
	User string
}

// App is the top-level model for one player: listing page, game runner and
// stats view. Every App owns its Host, so one game runs per player.
type App struct {
	ctx  context.Context
	deps Deps
	opts AppOptions
	host *host.Host

	page  page
	menu  MenuModel
	game  GameModel
	stats StatsModel
	seq   int

	width, height int
	err           error
	quitting      bool
}

// NewApp creates an App over the shared services.
func NewApp(ctx context.Context, deps Deps, opts AppOptions) *App {
	if opts.Width <= 0 || opts.Height <= 0 {
		def := core.DefaultConfig()
		opts.Width, opts.Height = def.ScreenW, def.ScreenH
	}
	a := &App{
		ctx:    ctx,
		deps:   deps,
		opts:   opts,
		host:   deps.newHost(opts.User),
		width:  opts.Width,
		height: opts.Height,
	}
	a.showMenu()
	return a
}

// Init starts the direct game, if any.
func (a *App) Init() tea.Cmd {
	if a.opts.Direct != "" {
		return a.startGame(a.opts.Direct)
	}
	return nil
}

// Update routes messages to the current page.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		a.width, a.height = ws.Width, ws.Height
	}

	var cmd tea.Cmd
	switch a.page {
	case pageGame:
		a.game, cmd = a.game.Update(msg)
		switch {
		case a.game.IsQuitting():
			return a.quit()
		case a.game.BackToMenu():
			if a.opts.Direct != "" {
				return a.quit()
			}
			a.showMenu()
			return a, nil
		}

	case pageStats:
		a.stats, cmd = a.stats.Update(msg)
		switch {
		case a.stats.IsQuitting():
			return a.quit()
		case a.stats.IsGoingBack():
			a.showMenu()
			return a, nil
		}

	default:
		a.menu, cmd = a.menu.Update(msg)
		switch {
		case a.menu.IsQuitting():
			return a.quit()
		case a.menu.WantsStats():
			a.stats = NewStatsModel(a.ctx, a.deps, a.width, a.height)
			a.page = pageStats
			return a, nil
		case a.menu.Selected() != "":
			id := a.menu.Selected()
			a.menu.selected = ""
			return a, a.startGame(id)
		}
	}
	return a, cmd
}

func (a *App) startGame(id string) tea.Cmd {
	a.seq++
	g, err := NewGameModel(a.ctx, a.host, id, a.width, a.height,
		a.deps.Config.Loop.FrameRate, a.seq, a.deps.logger())
	if err != nil {
		a.deps.logger().Warn("cannot start game", "game", id, "user", a.opts.User, "err", err)
		if a.opts.Direct != "" {
			a.err = err
			a.quitting = true
			return tea.Quit
		}
		a.menu.status = err.Error()
		return nil
	}
	a.game = g
	a.page = pageGame
	return g.Init()
}

func (a *App) showMenu() {
	entries := LoadEntries(a.ctx, a.deps.Registry, a.deps.Tracker, a.deps.logger())
	cursor := 0
	if a.page == pageGame {
		// Keep the cursor on the game just played, wherever it ranks now.
		for i, e := range entries {
			if e.ID == a.game.Result().GameID {
				cursor = i
			}
		}
	}
	a.menu = NewMenuModel(entries, a.width, a.height)
	a.menu.cursor = cursor
	a.page = pageMenu
}

func (a *App) quit() (tea.Model, tea.Cmd) {
	if a.page == pageGame && !a.game.closed {
		a.game.close()
	}
	a.quitting = true
	return a, tea.Quit
}

// View renders the current page.
func (a *App) View() string {
	if a.quitting {
		return ""
	}
	switch a.page {
	case pageGame:
		return a.game.View()
	case pageStats:
		return a.stats.View()
	default:
		return a.menu.View()
	}
}

// Err returns the error that ended a direct game, if any.
func (a *App) Err() error { return a.err }

// Close deactivates a game that is still running after the program stopped
// without the player leaving it, as on an SSH disconnect or a signal. The App
// context is usually cancelled by then, so storage writes run on a detached
// context. Calling Close again does nothing.
func (a *App) Close() {
	if a.page != pageGame || a.game.closed {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(a.ctx), closeTimeout)
	defer cancel()

	a.game.ctx = ctx
	a.game.close()
	a.deps.logger().Info("closed abandoned game", "game", a.game.Result().GameID,
		"user", a.opts.User, "played", a.game.Result().Played)
}

// Run runs an App on the local terminal until the player quits or ctx is
// cancelled.
func Run(ctx context.Context, deps Deps, opts AppOptions) error {
	return runProgram(ctx, NewApp(ctx, deps, opts), tea.WithAltScreen())
}

func runProgram(ctx context.Context, app *App, opts ...tea.ProgramOption) error {
	defer app.Close()

	p := tea.NewProgram(app, append(opts, tea.WithContext(ctx))...)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return app.Err()
}
