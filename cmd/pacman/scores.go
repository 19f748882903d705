package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pacman/internal/registry"
	"github.com/vovakirdan/tui-pacman/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <level>",
	Short: "Show high scores for a level",
	Long: `Display the top scores recorded for a level.

Ties are ranked by the shorter run.

Examples:
  pacman scores classic
  pacman scores arena --limit 20
  pacman scores classic --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores of the level")
}

func runScores(_ *cobra.Command, args []string) {
	gameID, err := lookupGame(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'pacman list' to see available levels.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fatalf("creating game: %v", err)
	}
	levelID := game.Level()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatalf("opening scores database: %v", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(levelID); err != nil {
			store.Close()
			fatalf("%v", err)
		}
		fmt.Printf("Cleared scores for %s.\n", game.Title())
		return
	}

	scores, err := store.TopScores(levelID, flagScoresLimit)
	if err != nil {
		store.Close()
		fatalf("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'pacman play %s' to set the first high score!\n", levelID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %s\n", "Rank", "Score", "Result", "Ticks", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %s\n", "----", "-----", "------", "-----", "----")

	for i, entry := range scores {
		result := "LOSS"
		if entry.Victorious {
			result = "WIN"
		}
		fmt.Printf("  %-4d  %-8d  %-6s  %-6d  %s\n",
			i+1, entry.Score, result, entry.Ticks, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.LevelStats(levelID); err == nil {
		fmt.Printf("Best: %d  Played: %d  Won: %d", stats.HighScore, stats.GamesCount, stats.Wins)
		if stats.BestTicks > 0 {
			fmt.Printf("  Fastest clear: %d ticks", stats.BestTicks)
		}
		fmt.Println()
	}
}
