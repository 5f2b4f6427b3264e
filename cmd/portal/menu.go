package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-portal/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the listing page",
	Long: `Start the portal on its listing page. Games are ranked by popularity
with a trending badge and today's visit count. Leaving a game returns here.

Controls:
  Up/Down/j/k  - Navigate
  Enter/Space  - Play
  Tab          - Stats
  Q            - Quit

In a game, pause with P, then B or Esc returns to the listing.`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	rt, err := openRuntime(ctx, false)
	if err != nil {
		return err
	}
	defer rt.Close()
	rt.discardOrphan(ctx)

	w, h := terminalSize()
	return tui.Run(ctx, rt.deps, tui.AppOptions{Width: w, Height: h})
}
