// Package host runs game modules. A Module owns one game instance and the
// screen it was mounted into; a Host resolves ids through the registry,
// activates at most one Module at a time and reports visits and sessions to
// analytics.
package host

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/loop"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

var (
	// ErrAlreadyMounted is returned by a second Mount on the same Module.
	ErrAlreadyMounted = errors.New("module already mounted")
	// ErrGameActive is returned by Activate while another game is active.
	ErrGameActive = errors.New("a game is already active")
)

// ModuleOptions configures a Module.
type ModuleOptions struct {
	TickRate   int
	MaxCatchUp int
	// Seed for the first run; later runs use Seed+n. Zero picks a seed from the clock.
	Seed int64
	// OnOver is called once per run when the game ends, with the final score.
	OnOver func(score int)
}

// Result summarizes a module's lifetime, returned by Unmount.
type Result struct {
	GameID string
	Score  int // score of the last run
	Best   int // best score over all runs
	Runs   int
	Ticks  uint64        // ticks stepped, paused ones included
	Played time.Duration // simulated time spent running
	// Recorded is true when the last run's score was already passed to OnOver.
	Recorded bool
}

// Module drives one game through its lifecycle:
//
//	Idle -> Running -> {Paused <-> Running} -> Over -> Running (restart)
//
// Failed is terminal and entered only when the preflight check fails.
type Module struct {
	game   registry.Game
	opts   ModuleOptions
	clock  *loop.Clock
	screen *core.Screen
	input  core.InputFrame
	cfg    core.RuntimeConfig

	phase     core.Phase
	failure   error
	mounted   bool
	unmounted bool

	runs        int
	best        int
	totalTicks  uint64
	activeTicks uint64
	recorded    bool
	result      Result
}

// NewModule wraps game. The module is Idle until Mount.
func NewModule(game registry.Game, opts ModuleOptions) *Module {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	return &Module{
		game:  game,
		opts:  opts,
		clock: loop.NewClock(opts.TickRate, opts.MaxCatchUp),
		input: core.NewInputFrame(),
		phase: core.PhaseIdle,
	}
}

// Mount takes ownership of container, runs the optional preflight and starts
// the first run. A failed preflight leaves the module Failed with the reason
// drawn into the container; Mount still returns nil in that case.
func (m *Module) Mount(container *core.Screen) error {
	if m.mounted || m.unmounted {
		return fmt.Errorf("host: %s: %w", m.game.ID(), ErrAlreadyMounted)
	}
	m.mounted = true
	m.screen = container
	m.cfg = core.RuntimeConfig{
		ScreenW:  container.Width(),
		ScreenH:  container.Height(),
		TickRate: m.opts.TickRate,
	}

	if c, ok := m.game.(registry.Checker); ok {
		if err := c.Check(m.cfg); err != nil {
			m.failure = err
			m.phase = core.PhaseFailed
			m.clock.Stop()
			m.render()
			return nil
		}
	}

	m.start()
	return nil
}

// start is the initialization path shared by Mount and restart.
func (m *Module) start() {
	m.runs++
	m.cfg.Seed = m.nextSeed()
	m.game.Reset(m.cfg)
	m.clock.Reset()
	m.input.Clear()
	m.recorded = false
	m.phase = core.PhaseRunning
	m.render()
}

func (m *Module) nextSeed() int64 {
	if m.opts.Seed == 0 {
		return time.Now().UnixNano()
	}
	return m.opts.Seed + int64(m.runs-1)
}

// Input queues an action for the next tick. Ignored unless the module is
// mounted and playable.
func (m *Module) Input(a core.Action) {
	if !m.phase.Active() {
		return
	}
	m.input.Set(a)
}

// Advance runs the ticks due after elapsed wall time and redraws the
// container. It returns the number of ticks run.
func (m *Module) Advance(elapsed time.Duration) int {
	switch m.phase {
	case core.PhaseRunning, core.PhasePaused:
	case core.PhaseOver:
		if m.input.Has(core.ActionRestart) {
			m.totalTicks += m.clock.Ticks()
			m.start()
		} else {
			m.input.Clear()
		}
		return 0
	default:
		return 0
	}

	n := m.clock.Advance(elapsed)
	ran := 0
	for ran < n {
		running := m.phase == core.PhaseRunning
		res := m.game.Step(m.input)
		m.input.Clear()
		ran++
		if running {
			m.activeTicks++
		}

		m.phase = core.PhaseOf(res.State)
		if m.phase == core.PhaseOver {
			m.finishRun(res.State.Score)
			break
		}
	}
	if ran > 0 {
		m.render()
	}
	return ran
}

func (m *Module) finishRun(score int) {
	m.clock.Stop()
	if score > m.best {
		m.best = score
	}
	if m.opts.OnOver != nil && !m.recorded {
		m.opts.OnOver(score)
	}
	m.recorded = true
}

// Resize adopts a new container size. The running game keeps its own field
// size until the next run.
func (m *Module) Resize(w, h int) {
	if m.screen == nil {
		return
	}
	m.screen.Resize(w, h)
	m.cfg.ScreenW, m.cfg.ScreenH = w, h
	m.render()
}

// Unmount stops the module, drops queued input and clears the container.
// Later calls return the same Result.
func (m *Module) Unmount() Result {
	if m.unmounted {
		return m.result
	}
	m.unmounted = true

	m.clock.Stop()
	m.input.Clear()

	score := 0
	if m.phase != core.PhaseFailed && m.mounted {
		score = m.game.State().Score
	}
	if score > m.best {
		m.best = score
	}
	ticks := m.totalTicks + m.clock.Ticks()
	m.result = Result{
		GameID:   m.game.ID(),
		Score:    score,
		Best:     m.best,
		Runs:     m.runs,
		Ticks:    ticks,
		Played:   time.Duration(m.activeTicks) * m.clock.Step(),
		Recorded: m.recorded,
	}

	if m.screen != nil {
		m.screen.Clear()
		m.screen = nil
	}
	if m.phase != core.PhaseFailed {
		m.phase = core.PhaseIdle
	}
	return m.result
}

// Phase returns the lifecycle phase.
func (m *Module) Phase() core.Phase { return m.phase }

// Failure returns the preflight error of a Failed module.
func (m *Module) Failure() error { return m.failure }

// GameID returns the wrapped game's id.
func (m *Module) GameID() string { return m.game.ID() }

// Title returns the wrapped game's title.
func (m *Module) Title() string { return m.game.Title() }

// State returns the game's current state.
func (m *Module) State() core.GameState { return m.game.State() }

// Screen returns the mounted container, or nil.
func (m *Module) Screen() *core.Screen { return m.screen }

func (m *Module) render() {
	if m.screen == nil {
		return
	}
	m.screen.Clear()

	if m.phase == core.PhaseFailed {
		m.screen.DrawPanel(
			m.game.Title()+" is unavailable",
			m.failure.Error(),
			"",
			"B back",
		)
		return
	}

	m.game.Render(m.screen)

	switch m.phase {
	case core.PhasePaused:
		m.screen.DrawPanel("PAUSED", "", "P resume  B back")
	case core.PhaseOver:
		m.screen.DrawPanel(
			"GAME OVER",
			fmt.Sprintf("Score: %d", m.game.State().Score),
			"",
			"R restart  B back",
		)
	}
}
