package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/board-runner/internal/platform/tui"
	"github.com/vovakirdan/board-runner/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresStats bool
	flagScoresClear bool
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top high scores.

Examples:
  runner scores
  runner scores --limit 25
  runner scores --stats
  runner scores --tui
  runner scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show aggregate statistics")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded scores")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores interactively")
}

func runScores(_ *cobra.Command, _ []string) {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		if err := store.ClearScores(tui.GameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Scores cleared.")
		return

	case flagScoresTUI:
		rt := runtimeConfig()
		if err := tui.RunScoreboard(store, rt.Player, rt.ScreenW, rt.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return

	case flagScoresStats:
		printStats(store)
		return
	}

	scores, err := store.TopScores(tui.GameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Board Runner")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'runner play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-16s  %-10s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Printf("  %-4s  %-16s  %-10s  %s\n", "----", "------", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-16s  %-10d  %s\n", i+1, entry.Player, entry.Score, dateStr)
	}

	fmt.Println()
	if best, err := store.PlayerBest(tui.GameID, playerName()); err == nil && best > 0 {
		fmt.Printf("Your best (%s): %d\n", playerName(), best)
	}
}

func printStats(store *storage.Store) {
	stats, err := store.GetGameStats(tui.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}
	if stats.GamesCount == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("Runs:        %d\n", stats.GamesCount)
	fmt.Printf("Players:     %d\n", stats.Players)
	fmt.Printf("High score:  %d\n", stats.HighScore)
	fmt.Printf("Average:     %.1f\n", stats.AvgScore)
	fmt.Printf("Total:       %d\n", stats.TotalScore)
	fmt.Printf("Last played: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
}
