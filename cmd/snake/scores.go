package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <variant>",
	Short: "Show high scores for a variant",
	Long: `Display the top scores for the specified variant.

Examples:
  snake scores classic
  snake scores wrap --limit 20
  snake scores wrap --limit 0     # every recorded run
  snake scores classic --clear`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeVariants,
	RunE:              runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show (0 = all)")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the variant")
}

func runScores(cmd *cobra.Command, args []string) error {
	variant := args[0]

	info, ok := registry.Lookup(variant)
	if !ok {
		return unknownVariant(variant)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(variant); err != nil {
			return fmt.Errorf("error clearing scores: %w", err)
		}
		fmt.Printf("Cleared scores for %s.\n", info.Title)
		return nil
	}

	var scores []storage.ScoreEntry
	if flagScoresLimit <= 0 {
		scores, err = store.AllScores(variant)
	} else {
		scores, err = store.TopScores(variant, flagScoresLimit)
	}
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'snake play %s' to set the first high score!\n", variant)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %-12s  %s\n", "Rank", "Score", "Length", "Player", "When")
	fmt.Printf("  %-4s  %-6s  %-6s  %-12s  %s\n", "----", "-----", "------", "------", "----")

	for i, entry := range scores {
		player := entry.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-6d  %-6d  %-12s  %s\n", i+1, entry.Score, entry.Length, player, humanize.Time(entry.CreatedAt))
	}

	stats, err := store.GetGameStats(variant)
	if err == nil && stats != nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %s  Average: %.1f\n",
			stats.HighScore, humanize.Comma(int64(stats.GamesCount)), stats.AvgScore)
	}
	return nil
}
