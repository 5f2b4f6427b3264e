package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-portal/internal/games/catalog"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all games in the catalog",
	Long:  `Shows every game in the catalog in declaration order with its category and status.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := catalog.New().List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	maxIDLen, maxTitleLen := 2, 5
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	fmt.Printf("  %-*s  %-*s  %-8s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Category", "Status")
	fmt.Printf("  %-*s  %-*s  %-8s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "--------", "------")
	for _, g := range games {
		status := string(g.Status)
		if g.Status == registry.StatusComingSoon {
			status = "coming soon"
		}
		fmt.Printf("  %-*s  %-*s  %-8s  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, g.Category, status)
	}

	fmt.Println()
	fmt.Println("Run 'portal play <id>' to play a game.")
}
