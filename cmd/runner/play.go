package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/board-runner/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a game right away",
	Long: `Start a run without going through the menu.

Controls:
  Space/Up/Click  - Jump
  R/Enter         - Restart (after game over)
  B/Esc           - Back to menu (after game over)
  Ctrl+S          - Save a screenshot to ~/.runner/screenshots
  Q/Ctrl+C        - Quit

Difficulty options:
  easy   - Start at the base speed, progresses with score
  normal - Start one speed tier up
  hard   - Start three speed tiers up
  fixed  - No speed progression

Examples:
  runner play
  runner play --difficulty hard
  runner play --seed 42
  runner play --config ./my-runner.yaml`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		runSession(tui.ScreenGame)
	},
}
