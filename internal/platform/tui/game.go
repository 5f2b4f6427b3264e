package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/host"
)

// GameModel runs one activated game. Frames feed the wall-clock delta to
// the module, which converts it into fixed ticks.
type GameModel struct {
	ctx       context.Context
	host      *host.Host
	module    *host.Module
	keyMapper *KeyMapper
	logger    *log.Logger

	frameRate int
	seq       int
	last      time.Time

	result   host.Result
	closed   bool
	back     bool
	quitting bool
}

// NewGameModel activates id on h inside a width x height screen.
func NewGameModel(ctx context.Context, h *host.Host, id string, width, height, frameRate, seq int, logger *log.Logger) (GameModel, error) {
	mod, err := h.Activate(ctx, id, core.NewScreen(width, height))
	if err != nil {
		return GameModel{}, err
	}
	return GameModel{
		ctx:       ctx,
		host:      h,
		module:    mod,
		keyMapper: NewKeyMapper(),
		logger:    logger,
		frameRate: frameRate,
		seq:       seq,
	}, nil
}

// Init starts the frame loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.frameRate, m.seq)
}

// Update handles frames, keys and resizes.
func (m GameModel) Update(msg tea.Msg) (GameModel, tea.Cmd) {
	if m.closed {
		return m, nil
	}

	switch msg := msg.(type) {
	case TickMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		var elapsed time.Duration
		if !m.last.IsZero() {
			elapsed = msg.Time.Sub(m.last)
		}
		m.last = msg.Time
		m.module.Advance(elapsed)
		return m, tickCmd(m.frameRate, m.seq)

	case tea.KeyMsg:
		action, quit := m.keyMapper.MapKey(msg)
		if quit {
			m.close()
			m.quitting = true
			return m, nil
		}
		if action == core.ActionBack {
			if m.canLeave() {
				m.close()
				m.back = true
			}
			return m, nil
		}
		m.module.Input(action)

	case tea.WindowSizeMsg:
		m.module.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

// canLeave reports whether Back returns to the listing. A running game has
// to be paused first so a stray key does not end a run.
func (m GameModel) canLeave() bool {
	switch m.module.Phase() {
	case core.PhasePaused, core.PhaseOver, core.PhaseFailed:
		return true
	}
	return false
}

func (m *GameModel) close() {
	res, err := m.host.Deactivate(m.ctx)
	if err != nil {
		m.logger.Warn("end session failed", "game", res.GameID, "err", err)
	}
	m.result = res
	m.closed = true
}

// View draws the module's screen.
func (m GameModel) View() string {
	if m.closed || m.module.Screen() == nil {
		return ""
	}
	return RenderScreen(m.module.Screen())
}

// BackToMenu reports whether the player left the game.
func (m GameModel) BackToMenu() bool { return m.back }

// IsQuitting reports whether the player asked to quit the program.
func (m GameModel) IsQuitting() bool { return m.quitting }

// Result returns the summary of a closed game.
func (m GameModel) Result() host.Result { return m.result }
