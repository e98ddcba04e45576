package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/board-runner/internal/assets"
)

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Check sprite sources",
	Long: `Load every sprite named in the config and report whether it loaded.

Sources can be "builtin:<name>", a local PNG or YAML sprite, or an http(s)
URL. Sprites that fail to load are drawn as colored boxes in game.

Examples:
  runner assets
  runner assets --config ./my-runner.yaml`,
	Args: cobra.NoArgs,
	Run:  runAssets,
}

func runAssets(_ *cobra.Command, _ []string) {
	cfg, err := loadRunnerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Built-in sprites:")
	for _, name := range assets.Builtins() {
		fmt.Printf("  %s%s\n", assets.BuiltinPrefix, name)
	}
	fmt.Println()

	loader := assets.NewLoaderFor(cfg.Assets)
	set := assets.LoadSet(loader, cfg.Assets)
	loader.Wait()

	cells := append([]*assets.Cell{}, set.Poses...)
	cells = append(cells, set.Special, set.Obstacle, set.Background)

	failed := 0
	fmt.Println("Configured sprites:")
	for _, c := range cells {
		line := fmt.Sprintf("  %-12s %s", c.Name(), c.State())
		if sp, ok := c.Get(); ok {
			line += fmt.Sprintf(" (%dx%d)", sp.Width, sp.Height)
		} else {
			failed++
		}
		fmt.Println(line)
	}

	if failed > 0 {
		fmt.Printf("\n%d sprite(s) will use fallback boxes.\n", failed)
	}
}
