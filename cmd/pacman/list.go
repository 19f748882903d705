package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pacman/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available levels",
	Long: `Shows every playable level: the built-in catalog followed by
levels found in the directory configured as levels.dir.`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	maxIDLen := len("Level")
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.Level))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "Level", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "-----", "-----")

	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.Level, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'pacman play <level>' to play.")
}
