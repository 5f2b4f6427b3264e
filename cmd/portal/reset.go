package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-portal/internal/games/catalog"
)

var flagResetScores bool

var resetStatsCmd = &cobra.Command{
	Use:   "reset-stats",
	Short: "Delete visit analytics",
	Long: `Delete all visit statistics, the open session and the global rollup.
With --scores, high scores are cleared too.`,
	Args: cobra.NoArgs,
	RunE: runResetStats,
}

func init() {
	resetStatsCmd.Flags().BoolVar(&flagResetScores, "scores", false, "Also clear every high score")
}

func runResetStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	rt, err := openRuntime(ctx, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.deps.Tracker.Reset(ctx); err != nil {
		return err
	}
	fmt.Println("Analytics cleared.")

	if !flagResetScores || rt.backend.Scores == nil {
		return nil
	}
	for _, id := range catalog.New().IDs() {
		if err := rt.backend.Scores.ClearScores(id); err != nil {
			return err
		}
	}
	fmt.Println("High scores cleared.")
	return nil
}
