package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/arcade-portal/internal/analytics"
	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/games/catalog"
	"github.com/vovakirdan/arcade-portal/internal/platform/tui"
	"github.com/vovakirdan/arcade-portal/internal/storage"
)

// runtime holds everything a command needs, built from config and flags.
type runtime struct {
	cfg     config.Portal
	deps    tui.Deps
	backend *storage.Backend
	logFile *os.File
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (config.Portal, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagStore != "" {
		cfg.Storage.Driver = flagStore
	}
	if flagFPS > 0 {
		cfg.Loop.FrameRate = flagFPS
	}
	switch p := config.DifficultyPreset(flagDifficulty); p {
	case "", config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed:
		cfg.Games.ApplyPreset(p)
	default:
		return cfg, fmt.Errorf("unknown difficulty %q (easy, normal, hard, fixed)", flagDifficulty)
	}
	return cfg, nil
}

// newLogger returns the stderr server logger, a file logger when --log is
// set, or a discarding one so the TUI owns the terminal.
func newLogger(server bool) (*log.Logger, *os.File, error) {
	if server {
		return log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "portal",
		}), nil, nil
	}
	if flagLogPath == "" {
		return log.New(io.Discard), nil, nil
	}
	f, err := os.OpenFile(config.ExpandHome(flagLogPath), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return log.NewWithOptions(f, log.Options{ReportTimestamp: true}), f, nil
}

// openRuntime loads config, opens storage and builds the tracker.
func openRuntime(ctx context.Context, server bool) (*runtime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, logFile, err := newLogger(server)
	if err != nil {
		return nil, err
	}

	backend, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return nil, err
	}

	tracker := analytics.New(backend.KV,
		analytics.WithLogger(logger),
		analytics.WithPrefix(cfg.Storage.KeyPrefix),
		analytics.WithRetentionDays(cfg.Analytics.RetentionDays),
	)

	return &runtime{
		cfg:     cfg,
		backend: backend,
		logFile: logFile,
		deps: tui.Deps{
			Registry: catalog.New(),
			Tracker:  tracker,
			Backend:  backend,
			Config:   cfg,
			Seed:     flagSeed,
			Logger:   logger,
		},
	}, nil
}

// discardOrphan drops a session left open by a process that did not exit
// cleanly. Its elapsed time is not credited.
func (r *runtime) discardOrphan(ctx context.Context) {
	s, ok, err := r.deps.Tracker.DiscardSession(ctx)
	if err != nil {
		r.deps.Logger.Warn("discard orphan session failed", "err", err)
		return
	}
	if ok {
		r.deps.Logger.Warn("discarded orphan session", "game", s.GameID, "started", s.StartTime)
	}
}

// discardPlayerOrphans drops SSH player sessions left by a server that did
// not shut down cleanly.
func (r *runtime) discardPlayerOrphans(ctx context.Context) {
	players, err := r.deps.Tracker.DiscardPlayerSessions(ctx)
	if err != nil {
		r.deps.Logger.Warn("discard player sessions failed", "err", err)
		return
	}
	for _, p := range players {
		r.deps.Logger.Warn("discarded orphan player session", "game", p.GameID, "started", p.StartTime)
	}
}

func (r *runtime) Close() {
	if err := r.backend.Close(); err != nil {
		r.deps.Logger.Warn("close storage", "err", err)
	}
	if r.logFile != nil {
		r.logFile.Close()
	}
}

// terminalSize returns the size of stdout, or 80x24.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
