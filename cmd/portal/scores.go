package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-portal/internal/games/catalog"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top high scores for the specified game.

Examples:
  portal scores snake
  portal scores tetris --limit 20`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	d, ok := catalog.New().Lookup(gameID)
	if !ok {
		return fmt.Errorf("unknown game %q, run 'portal list' to see available games", gameID)
	}

	rt, err := openRuntime(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer rt.Close()

	store := rt.backend.Scores
	if store == nil {
		return errors.New("the memory store keeps no scores")
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", d.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'portal play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if sum, err := store.Summary(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Average: %.0f\n", sum.HighScore, sum.GamesCount, sum.AvgScore)
	}
	return nil
}
