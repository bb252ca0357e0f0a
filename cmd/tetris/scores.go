package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagScoresEvals bool
	flagScoresClear bool
	flagScoresLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores or evaluation history",
	Long: `Display the top scores for a mode (default: tetris), or with --evals the
weight vectors ranked by their mean evaluation score.

Examples:
  tetris scores
  tetris scores tetris_ai
  tetris scores --evals
  tetris scores tetris --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresEvals, "evals", false, "Show evaluation runs instead of game scores")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the mode")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Rows to show")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagScoresEvals {
		return printEvalRuns(store)
	}

	gameID := string(tetris.ModeHuman)
	if len(args) == 1 {
		gameID = args[0]
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s\n", game.Title())
		return nil
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n\n", game.Title())
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %s\n", "Rank", "Score", "Lines", "Pieces", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %s\n", "----", "-----", "-----", "------", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-8d  %-6d  %-6d  %s\n", i+1, e.Score, e.Lines, e.Pieces, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Printf("\nGames %d  Best %d  Average %.1f  Lines %d\n", stats.GamesCount, stats.HighScore, stats.AvgScore, stats.TotalLines)
	return nil
}

func printEvalRuns(store *storage.Store) error {
	best, err := store.BestEvalRuns(flagScoresLimit)
	if err != nil {
		return err
	}
	fmt.Printf("Best weight vectors\n\n")
	if len(best) == 0 {
		fmt.Println("No evaluation runs yet. Run 'tetris eval' first.")
		return nil
	}
	fmt.Printf("  %-4s  %-9s  %-7s  %-4s  %s\n", "Rank", "Mean", "Max", "Runs", "Weights")
	for i, w := range best {
		fmt.Printf("  %-4d  %-9.1f  %-7d  %-4d  %s\n", i+1, w.AvgScore, w.MaxScore, w.Runs, w.Weights)
	}

	recent, err := store.RecentEvalRuns(flagScoresLimit)
	if err != nil {
		return err
	}
	fmt.Printf("\nRecent runs\n\n")
	for _, r := range recent {
		fmt.Printf("  %s  seed %-6d  score %-7d  lines %-5d  pieces %-5d  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Seed, r.Score, r.Lines, r.Pieces, r.Weights)
	}
	return nil
}
