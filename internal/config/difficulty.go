package config

import "math"

// DifficultyManager turns score or elapsed ticks into a difficulty level.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a manager for cfg.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	cfg.InitialLevel = clampF(cfg.InitialLevel, 0, 1)
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled reports whether difficulty progresses at all.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty in [0, 1].
// It interpolates from the initial level to 1.0 as score or ticks approach MaxAt.
func (d *DifficultyManager) Level(score, ticks int) float64 {
	if !d.IsEnabled() {
		return d.cfg.InitialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.cfg.InitialLevel
	}

	progress = clampF(progress, 0, 1)
	return d.cfg.InitialLevel + progress*(1-d.cfg.InitialLevel)
}

// Interval shrinks a tick interval from slowest toward fastest as the level rises.
// Used by tick games for movement and gravity periods.
func (d *DifficultyManager) Interval(slowest, fastest, score, ticks int) int {
	if fastest < 1 {
		fastest = 1
	}
	if slowest < fastest {
		return fastest
	}
	level := d.Level(score, ticks)
	span := float64(slowest - fastest)
	return slowest - int(math.Round(level*span))
}

func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
