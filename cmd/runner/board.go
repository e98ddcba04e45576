package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/board-runner/internal/board"
	"github.com/vovakirdan/board-runner/internal/platform/tui"
	"github.com/vovakirdan/board-runner/internal/storage"
)

var (
	flagBoardGrep   string
	flagBoardImages bool
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the board",
	Long: `Open the board, read the thread and post to it.

A post that mentions a keyword from the config (default "miata") launches
a run. When the run is over you are back on the board.

Examples:
  runner board
  runner board post "first"
  runner board list --grep miata`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		runSession(tui.ScreenBoard)
	},
}

var boardPostCmd = &cobra.Command{
	Use:   "post <text>",
	Short: "Publish a post without opening the board",
	Args:  cobra.MinimumNArgs(1),
	Run:   runBoardPost,
}

var boardListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the thread",
	Args:  cobra.NoArgs,
	Run:   runBoardList,
}

var boardClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every post",
	Args:  cobra.NoArgs,
	Run:   runBoardClear,
}

func init() {
	boardListCmd.Flags().StringVar(&flagBoardGrep, "grep", "", "Only posts containing this text (case-insensitive)")
	boardListCmd.Flags().BoolVar(&flagBoardImages, "images", false, "Only posts with an image")

	boardCmd.AddCommand(boardPostCmd)
	boardCmd.AddCommand(boardListCmd)
	boardCmd.AddCommand(boardClearCmd)
}

// openBoard opens the database and the board backed by it.
func openBoard() (*storage.Store, *board.Store) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	posts, err := tui.OpenBoard(store)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error loading board: %v\n", err)
		os.Exit(1)
	}
	return store, posts
}

func runBoardPost(_ *cobra.Command, args []string) {
	store, posts := openBoard()
	defer store.Close()

	post, err := posts.Publish(strings.Join(args, " "))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error publishing post: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Posted No.%d\n", post.Number)
}

func runBoardList(_ *cobra.Command, _ []string) {
	store, posts := openBoard()
	defer store.Close()

	var list []board.Post
	switch {
	case flagBoardGrep != "":
		list = posts.WithText(flagBoardGrep)
	case flagBoardImages:
		list = posts.WithImages()
	default:
		list = posts.All()
	}

	if len(list) == 0 {
		fmt.Println("No posts.")
		return
	}
	for _, p := range list {
		op := ""
		if p.IsOP {
			op = " OP"
		}
		fmt.Printf("No.%d  %s%s\n", p.Number, p.Timestamp.Format("2006-01-02 15:04:05"), op)
		if p.Image != nil {
			fmt.Printf("  [image %s %dx%d]\n", p.Image.Filename, p.Image.Width, p.Image.Height)
		}
		fmt.Printf("  %s\n\n", p.Text)
	}
}

func runBoardClear(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.ClearPosts(); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing posts: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Board cleared.")
}
