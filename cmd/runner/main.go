// runner is an endless obstacle runner for the terminal, with a small
// discussion board that launches the game when a post names the keyword.
//
// Usage:
//
//	runner                   - Start the menu
//	runner play              - Start a game right away
//	runner board             - Open the board
//	runner serve             - Start SSH server for remote play
//	runner scores            - Show high scores
//	runner assets            - Check sprite sources
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.runner/scores.db)
//	--config <path>      - Use a custom runner.yaml
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/board-runner/internal/platform/tui"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagPlayer     string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Board Runner - jump over cones in your terminal",
	Long: `Board Runner is an endless side-scrolling runner for the terminal.
Jump over obstacles while the speed and spawn rate grow with your score.
A post on the board that mentions the keyword launches a run.

Available commands:
  play     - Start a game right away
  board    - Open the board
  serve    - Start SSH server for remote play
  scores   - View high scores
  assets   - Check sprite sources

Examples:
  runner
  runner play --difficulty hard
  runner board post "anyone seen my miata?"
  runner serve --ssh :2222
  runner scores --stats`,
	Run: func(_ *cobra.Command, _ []string) {
		runSession(tui.ScreenMenu)
	},
}

func init() {
	home := "~/.runner"

	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", home+"/scores.db", "Path to scores and posts database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Name recorded with your scores (default: $USER)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", home+"/runner.log", "Log file for local sessions")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(assetsCmd)
}
