package main

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-portal/internal/platform/tui"
)

var flagStatsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show visit analytics",
	Long: `Print per-game visits, play time, popularity and trend, in listing order.

Examples:
  portal stats
  portal stats --json
  portal stats --store valkey`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagStatsJSON, "json", false, "Print JSON instead of a table")
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	rt, err := openRuntime(ctx, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	report, err := tui.BuildReport(ctx, rt.deps)
	if err != nil {
		return err
	}

	if flagStatsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Println(report.Table())
	fmt.Println(report.Footer())
	return nil
}
