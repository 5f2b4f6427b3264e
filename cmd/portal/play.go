package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-portal/internal/games/catalog"
	"github.com/vovakirdan/arcade-portal/internal/platform/tui"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game. The visit and play time are recorded
like a visit from the listing page.

Controls:
  Arrows/WASD  - Move
  Space        - Action
  Enter        - Confirm
  P            - Pause
  R            - Restart (after game over)
  B/Esc        - Leave (when paused or over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression

Examples:
  portal play snake
  portal play tetris --difficulty hard
  portal play breakout --seed 42`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	if d, ok := catalog.New().Lookup(gameID); !ok {
		return fmt.Errorf("unknown game %q, run 'portal list' to see available games", gameID)
	} else if !d.Playable() {
		return fmt.Errorf("%s is coming soon", d.Title)
	}

	ctx := cmd.Context()
	rt, err := openRuntime(ctx, false)
	if err != nil {
		return err
	}
	defer rt.Close()
	rt.discardOrphan(ctx)

	w, h := terminalSize()
	err = tui.Run(ctx, rt.deps, tui.AppOptions{Width: w, Height: h, Direct: gameID})
	if errors.Is(err, registry.ErrUnavailable) {
		return fmt.Errorf("%s cannot be played: %w", gameID, err)
	}
	return err
}
