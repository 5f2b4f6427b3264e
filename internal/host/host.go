package host

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// Recorder receives visit and session events. Implemented by analytics.Tracker.
type Recorder interface {
	RecordVisit(ctx context.Context, gameID string) error
	EndSession(ctx context.Context, gameID string) (int64, error)
}

// ScoreSink persists final scores. Implemented by storage.Backend.
type ScoreSink interface {
	SaveScore(gameID string, score int) error
}

// Options configures a Host.
type Options struct {
	Loop   config.LoopConfig
	Games  config.Games
	Seed   int64
	Logger *log.Logger
}

// Host activates games one at a time. One Host exists per process or per SSH
// session; it is the only caller of RecordVisit and EndSession.
type Host struct {
	mu       sync.Mutex
	registry *registry.Registry
	recorder Recorder
	scores   ScoreSink
	opts     Options
	logger   *log.Logger
	active   *Module
}

// New creates a Host. recorder and scores may be nil.
func New(reg *registry.Registry, recorder Recorder, scores ScoreSink, opts Options) *Host {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Host{
		registry: reg,
		recorder: recorder,
		scores:   scores,
		opts:     opts,
		logger:   logger,
	}
}

// Activate creates the game registered under id, mounts it into container
// and records the visit. Only one game may be active at a time.
func (h *Host) Activate(ctx context.Context, id string, container *core.Screen) (*Module, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.active != nil {
		return nil, fmt.Errorf("host: activate %q while %q is running: %w", id, h.active.GameID(), ErrGameActive)
	}

	game, err := h.registry.Create(id)
	if err != nil {
		return nil, err
	}
	if c, ok := game.(registry.Configurable); ok {
		c.Configure(h.opts.Games)
	}

	mod := NewModule(game, ModuleOptions{
		TickRate:   h.opts.Loop.TickRate,
		MaxCatchUp: h.opts.Loop.MaxCatchUp,
		Seed:       h.opts.Seed,
		OnOver:     func(score int) { h.saveScore(id, score) },
	})
	if err := mod.Mount(container); err != nil {
		return nil, err
	}
	if mod.Phase() == core.PhaseFailed {
		h.logger.Warn("preflight failed", "game", id, "err", mod.Failure())
	}

	if h.recorder != nil {
		if err := h.recorder.RecordVisit(ctx, id); err != nil {
			h.logger.Warn("record visit failed", "game", id, "err", err)
		}
	}

	h.logger.Info("game activated", "game", id)
	h.active = mod
	return mod, nil
}

// Deactivate unmounts the active game, saves an unrecorded positive score and
// ends the analytics session. Without an active game it does nothing.
func (h *Host) Deactivate(ctx context.Context) (Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.active == nil {
		return Result{}, nil
	}
	mod := h.active
	h.active = nil

	res := mod.Unmount()
	if !res.Recorded {
		h.saveScore(res.GameID, res.Score)
	}

	h.logger.Info("game deactivated", "game", res.GameID, "score", res.Score, "played", res.Played)

	if h.recorder == nil {
		return res, nil
	}
	if _, err := h.recorder.EndSession(ctx, res.GameID); err != nil {
		return res, fmt.Errorf("host: end session %q: %w", res.GameID, err)
	}
	return res, nil
}

// Active returns the active module, or nil.
func (h *Host) Active() *Module {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active
}

// Catalog lists the registry in declaration order.
func (h *Host) Catalog() []registry.Descriptor {
	return h.registry.List()
}

func (h *Host) saveScore(id string, score int) {
	if h.scores == nil || score <= 0 {
		return
	}
	if err := h.scores.SaveScore(id, score); err != nil {
		h.logger.Warn("save score failed", "game", id, "score", score, "err", err)
	}
}
