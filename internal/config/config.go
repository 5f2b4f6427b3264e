// Package config provides YAML-based configuration for the portal:
// loop timing, storage backend, analytics retention, the SSH server and
// per-game tuning.
package config

import "time"

// Portal is the root configuration document.
type Portal struct {
	Loop      LoopConfig      `yaml:"loop"`
	Storage   StorageConfig   `yaml:"storage"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	SSH       SSHConfig       `yaml:"ssh"`
	Games     Games           `yaml:"games"`
}

// LoopConfig controls the fixed-timestep driver.
type LoopConfig struct {
	TickRate   int `yaml:"tick_rate"`    // Simulation ticks per second
	FrameRate  int `yaml:"frame_rate"`   // Redraws per second
	MaxCatchUp int `yaml:"max_catch_up"` // Max ticks run for one frame after a stall
}

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverValkey = "valkey"
	DriverMemory = "memory"
)

// StorageConfig selects the key-value backend used for analytics and scores.
type StorageConfig struct {
	Driver     string `yaml:"driver"`      // sqlite, valkey or memory
	Path       string `yaml:"path"`        // SQLite database path
	ValkeyAddr string `yaml:"valkey_addr"` // host:port of a Redis-protocol server
	KeyPrefix  string `yaml:"key_prefix"`  // Prefix for analytics keys
}

// AnalyticsConfig tunes visit tracking.
type AnalyticsConfig struct {
	RetentionDays int `yaml:"retention_days"` // Daily visit entries older than this are pruned
}

// SSHConfig configures the remote play server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// Games holds per-game tuning.
type Games struct {
	Snake     SnakeConfig     `yaml:"snake"`
	Tetris    TetrisConfig    `yaml:"tetris"`
	Breakout  BreakoutConfig  `yaml:"breakout"`
	Clicker   ClickerConfig   `yaml:"clicker"`
	Rhythm    RhythmConfig    `yaml:"rhythm"`
	Collector CollectorConfig `yaml:"collector"`
}

// SnakeConfig tunes Snake.
type SnakeConfig struct {
	MoveEveryTicks int              `yaml:"move_every_ticks"` // Ticks between moves at the start
	MinMoveTicks   int              `yaml:"min_move_ticks"`   // Fastest allowed movement
	Width          int              `yaml:"width"`            // Arena width including walls
	Height         int              `yaml:"height"`           // Arena height including walls
	Difficulty     DifficultyConfig `yaml:"difficulty"`
}

// TetrisConfig tunes Tetris.
type TetrisConfig struct {
	GravityTicks    int              `yaml:"gravity_ticks"`     // Ticks per row at level 1
	MinGravityTicks int              `yaml:"min_gravity_ticks"` // Fastest gravity
	SoftDropTicks   int              `yaml:"soft_drop_ticks"`   // Ticks per row while soft dropping
	LinesPerLevel   int              `yaml:"lines_per_level"`
	Difficulty      DifficultyConfig `yaml:"difficulty"`
}

// BreakoutConfig tunes Breakout.
type BreakoutConfig struct {
	Lives       int     `yaml:"lives"`
	BallSpeed   float64 `yaml:"ball_speed"` // Cells per tick
	PaddleWidth int     `yaml:"paddle_width"`
	PaddleSpeed int     `yaml:"paddle_speed"` // Cells per key press
	BrickRows   int     `yaml:"brick_rows"`
	BrickWidth  int     `yaml:"brick_width"`
}

// ClickerConfig tunes the cookie clicker.
type ClickerConfig struct {
	Upgrades []UpgradeConfig `yaml:"upgrades"`
}

// UpgradeConfig is one purchasable clicker upgrade.
type UpgradeConfig struct {
	Name       string  `yaml:"name"`
	Cost       float64 `yaml:"cost"`
	CostGrowth float64 `yaml:"cost_growth"` // Price multiplier after each purchase
	PerSecond  float64 `yaml:"per_second"`  // Passive production added per unit
	PerClick   float64 `yaml:"per_click"`   // Click power added per unit
}

// RhythmConfig tunes the rhythm game.
type RhythmConfig struct {
	Notes         int `yaml:"notes"`          // Chart length
	BeatTicks     int `yaml:"beat_ticks"`     // Ticks between beats
	FallTicks     int `yaml:"fall_ticks"`     // Ticks a note takes to reach the hit line
	PerfectWindow int `yaml:"perfect_window"` // +/- ticks for a perfect hit
	GoodWindow    int `yaml:"good_window"`    // +/- ticks for a good hit
}

// CollectorConfig tunes the 3D orb collector.
type CollectorConfig struct {
	RoundSeconds int     `yaml:"round_seconds"`
	Orbs         int     `yaml:"orbs"`
	MoveSpeed    float64 `yaml:"move_speed"` // World units per key press
	MinWidth     int     `yaml:"min_width"`  // Smallest terminal the renderer supports
	MinHeight    int     `yaml:"min_height"`
}

// DifficultyConfig defines how a game speeds up.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines what drives difficulty up.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// DifficultyPreset is a named starting difficulty.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the starting level for a preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset adjusts every game's difficulty for a preset.
// An empty preset leaves the configuration untouched.
func (g *Games) ApplyPreset(preset DifficultyPreset) {
	if preset == "" {
		return
	}
	for _, d := range []*DifficultyConfig{&g.Snake.Difficulty, &g.Tetris.Difficulty} {
		if preset == DifficultyFixed {
			d.Enabled = false
			continue
		}
		d.Enabled = true
		d.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		g.Breakout.Lives = 5
		g.Breakout.PaddleWidth += 2
	case DifficultyHard:
		g.Breakout.Lives = 2
		g.Breakout.BallSpeed *= 1.3
	}
}
