package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pacman/internal/games/pacman/levels"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check level files",
	Long: `Parse level files and report their figures or the first problem found.

Exits with status 1 when any file is invalid.

Examples:
  pacman validate ./levels/*.txt`,
	Args: cobra.MinimumNArgs(1),
	Run:  runValidate,
}

func runValidate(_ *cobra.Command, args []string) {
	failed := 0
	for _, path := range args {
		line, ok := validateFile(path)
		if !ok {
			failed++
		}
		fmt.Println(line)
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "Error: %d of %d level files are invalid\n", failed, len(args))
		os.Exit(1)
	}
}

// validateFile returns the report line for one level file and whether it is valid.
func validateFile(path string) (string, bool) {
	lvl, err := levels.LoadPath(path)
	if err != nil {
		return fmt.Sprintf("FAIL  %s: %v", path, err), false
	}
	l := lvl.Layout
	return fmt.Sprintf("ok    %s: %q %dx%d, %d small, %d big, %d ghosts, player at %s",
		path, lvl.Name, l.Width(), l.Height(), l.SmallItems(), l.BigItems(), l.Ghosts(), l.PlayerStart()), true
}
