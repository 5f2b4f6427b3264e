package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/portal.yaml
var defaultPortalYAML []byte

// Default returns the built-in configuration.
// It matches defaults/portal.yaml and is the base every loaded file is merged onto.
func Default() Portal {
	return Portal{
		Loop: LoopConfig{
			TickRate:   60,
			FrameRate:  30,
			MaxCatchUp: 5,
		},
		Storage: StorageConfig{
			Driver:     DriverSQLite,
			Path:       "~/.arcade/portal.db",
			ValkeyAddr: "127.0.0.1:6379",
			KeyPrefix:  "arcade",
		},
		Analytics: AnalyticsConfig{
			RetentionDays: 30,
		},
		SSH: SSHConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
		Games: Games{
			Snake: SnakeConfig{
				MoveEveryTicks: 6,
				MinMoveTicks:   2,
				Width:          40,
				Height:         18,
				Difficulty: DifficultyConfig{
					Enabled:     true,
					Progression: ProgressionConfig{Type: "score", MaxAt: 40},
				},
			},
			Tetris: TetrisConfig{
				GravityTicks:    30,
				MinGravityTicks: 3,
				SoftDropTicks:   2,
				LinesPerLevel:   10,
				Difficulty: DifficultyConfig{
					Enabled:     true,
					Progression: ProgressionConfig{Type: "score", MaxAt: 20000},
				},
			},
			Breakout: BreakoutConfig{
				Lives:       3,
				BallSpeed:   0.5,
				PaddleWidth: 8,
				PaddleSpeed: 3,
				BrickRows:   5,
				BrickWidth:  6,
			},
			Clicker: ClickerConfig{
				Upgrades: []UpgradeConfig{
					{Name: "Cursor", Cost: 15, CostGrowth: 1.15, PerSecond: 0.1},
					{Name: "Rolling Pin", Cost: 50, CostGrowth: 1.2, PerClick: 1},
					{Name: "Grandma", Cost: 100, CostGrowth: 1.15, PerSecond: 1},
					{Name: "Bakery", Cost: 1100, CostGrowth: 1.15, PerSecond: 8},
					{Name: "Factory", Cost: 12000, CostGrowth: 1.15, PerSecond: 47},
				},
			},
			Rhythm: RhythmConfig{
				Notes:         64,
				BeatTicks:     15,
				FallTicks:     60,
				PerfectWindow: 3,
				GoodWindow:    8,
			},
			Collector: CollectorConfig{
				RoundSeconds: 60,
				Orbs:         10,
				MoveSpeed:    0.6,
				MinWidth:     40,
				MinHeight:    16,
			},
		},
	}
}
