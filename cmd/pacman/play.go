package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pacman/internal/games/pacman"
	"github.com/vovakirdan/tui-pacman/internal/platform/tui"
	"github.com/vovakirdan/tui-pacman/internal/registry"
	"github.com/vovakirdan/tui-pacman/internal/storage"
)

var flagLevelFile string

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the given level, or the configured default level.

Controls:
  Arrows/WASD/HJKL - Move (the last key pressed before a tick wins)
  P/Space          - Pause
  R/G              - Restart
  Ctrl+S           - Save a screenshot to ~/.pacman/screenshots
  Esc/B            - Leave the level
  Q/Ctrl+C         - Quit

Examples:
  pacman play
  pacman play tunnels
  pacman play --file ./my-maze.txt --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLevelFile, "file", "", "Play a level file (.txt, .pac, .yaml)")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID, err := resolveGame(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'pacman list' to see available levels.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fatalf("creating game: %v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database; scores will not be saved", "path", flagDBPath, "error", err)
		store = nil
	}

	_, runErr := tui.Run(game, store, runtimeConfig(), logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fatalf("running game: %v", runErr)
	}
}

// resolveGame picks the game to play from --file, the argument or the
// configured default level. Level ids and game ids are both accepted.
func resolveGame(args []string) (string, error) {
	if flagLevelFile != "" {
		return pacman.RegisterFile(flagLevelFile)
	}

	name := appConfig.Levels.Default
	if len(args) > 0 {
		name = args[0]
	}
	return lookupGame(name)
}

// lookupGame resolves a level id or a game id to a registered game id.
func lookupGame(name string) (string, error) {
	if registry.Exists(name) {
		return name, nil
	}
	if id := pacman.GameID(name); registry.Exists(id) {
		return id, nil
	}
	return "", fmt.Errorf("unknown level %q", name)
}
