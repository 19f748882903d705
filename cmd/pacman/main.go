// pacman is a terminal Pac-Man: a deterministic tile-grid maze game with a
// level picker, persistent high scores and an SSH server.
//
// Usage:
//
//	pacman list                 - List available levels
//	pacman play [level]         - Play a level
//	pacman menu                 - Pick levels interactively
//	pacman scores <level>       - Show high scores for a level
//	pacman serve                - Start SSH server for remote play
//	pacman validate <file>...   - Check level files
//	pacman sim <level>          - Run a level headless with a move script
//
// Global flags:
//
//	--seed <value>      - Set RNG seed for reproducible ghosts
//	--db <path>         - Set database path (default: ~/.pacman/scores.db)
//	--config <path>     - Use a specific pacman.yaml
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pacman/internal/config"
	"github.com/vovakirdan/tui-pacman/internal/core"
	"github.com/vovakirdan/tui-pacman/internal/games/pacman"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string

	logger    *log.Logger
	appConfig config.PacmanConfig
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pacman",
	Short: "Pac-Man in your terminal",
	Long: `A deterministic, tile-based Pac-Man for the terminal.

Eat every dot to clear the maze. Big dots make the ghosts edible for a
while; a ghost that catches you otherwise ends the game.

Available commands:
  list      - Show all available levels
  play      - Play a level directly
  menu      - Interactive level picker
  scores    - View high scores
  serve     - Start SSH server for remote play
  validate  - Check level files
  sim       - Run a level headless with a scripted move list

Examples:
  pacman list
  pacman play classic
  pacman play --file ./my-maze.txt
  pacman menu --seed 42
  pacman serve --ssh :2222
  pacman sim classic --moves LLLLUUUU --seed 7`,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pacman/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to pacman.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(simCmd)
}

// setup builds the logger, loads pacman.yaml and registers extra levels.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "pacman",
		Level:           level,
	})

	appConfig, err = config.LoadPacman(flagConfig)
	if err != nil {
		return err
	}
	pacman.SetConfigPath(flagConfig)

	if dir := appConfig.Levels.Dir; dir != "" {
		ids, skipped, err := pacman.RegisterDir(dir)
		if err != nil {
			logger.Warn("could not load level directory", "dir", dir, "error", err)
		} else {
			for _, sk := range skipped {
				logger.Warn("skipped level file", "dir", dir, "file", sk.Path, "error", sk.Err)
			}
			logger.Debug("registered extra levels", "dir", dir, "games", ids)
		}
	}
	return nil
}

// runtimeConfig returns the platform config for the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickPeriod = appConfig.TickPeriod()
	cfg.Seed = flagSeed
	return cfg
}

// fatalf prints an error and exits.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
