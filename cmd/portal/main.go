// portal is a terminal game portal: a ranked listing of games with visit
// analytics, playable locally or over SSH.
//
// Usage:
//
//	portal menu              - Listing page, pick and play games
//	portal play <game>       - Play one game directly
//	portal list              - Print the catalog
//	portal stats [--json]    - Print visit analytics
//	portal scores <game>     - Show high scores for a game
//	portal reset-stats       - Delete analytics (and optionally scores)
//	portal serve             - Start the SSH server
//
// Global flags:
//
//	--config <path>      - Portal config YAML
//	--db <path>          - SQLite database path
//	--store <driver>     - sqlite, valkey or memory
//	--fps <rate>         - Redraws per second
//	--seed <value>       - RNG seed for reproducible runs
//	--log <path>         - Log file for interactive commands
//	--difficulty <name>  - easy, normal, hard or fixed
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	flagConfig     string
	flagDBPath     string
	flagStore      string
	flagFPS        int
	flagSeed       int64
	flagLogPath    string
	flagDifficulty string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "portal",
	Short: "Arcade Portal - a game catalog for your terminal",
	Long: `Arcade Portal lists terminal games ranked by how much they are played,
tracks visits and play time, and keeps high scores.

Available commands:
  menu         - Listing page, pick and play games
  play         - Play a specific game directly
  list         - Show the catalog
  stats        - Show visit analytics
  scores       - View high scores
  reset-stats  - Delete analytics
  serve        - Start SSH server for remote play

Examples:
  portal menu
  portal play tetris --difficulty hard
  portal stats --json
  portal serve --store valkey`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to portal config YAML")
	pf.StringVar(&flagDBPath, "db", "", "SQLite database path (overrides config)")
	pf.StringVar(&flagStore, "store", "", "Storage driver: sqlite, valkey, memory (overrides config)")
	pf.IntVar(&flagFPS, "fps", 0, "Redraws per second (overrides config)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagLogPath, "log", "", "Log file for interactive commands")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(resetStatsCmd)
	rootCmd.AddCommand(serveCmd)
}
