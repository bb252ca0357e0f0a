package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/ai"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagEvalWeights  string
	flagEvalGames    int
	flagEvalPieces   int
	flagEvalWorkers  int
	flagEvalBaseSeed int64
	flagEvalNoSave   bool
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Score a weight vector over headless bot games",
	Long: `Play a batch of headless games with the bot and report the mean score,
which is the fitness of the weight vector. Game i uses seed base-seed+i, so
two runs with the same flags give the same numbers. Results are stored in
the scores database unless --no-save is given.

Examples:
  tetris eval
  tetris eval --games 50 --pieces 1000 --workers 8
  tetris eval --weights 1,-2,-0.5,-0.5,-0.5,-0.5,-0.1,-0.2 --base-seed 100`,
	Args: cobra.NoArgs,
	RunE: runEval,
}

func init() {
	f := evalCmd.Flags()
	f.StringVar(&flagEvalWeights, "weights", "", "Comma-separated weight vector (default: config ai.weights)")
	f.IntVar(&flagEvalGames, "games", 0, "Number of games (0 = config value)")
	f.IntVar(&flagEvalPieces, "pieces", 0, "Piece limit per game (0 = config value)")
	f.IntVar(&flagEvalWorkers, "workers", 0, "Games played in parallel (0 = config value or every CPU)")
	f.Int64Var(&flagEvalBaseSeed, "base-seed", 0, "Seed of the first game (0 = config value)")
	f.BoolVar(&flagEvalNoSave, "no-save", false, "Do not store the results")
}

func runEval(cmd *cobra.Command, _ []string) error {
	weights, err := gameCfg.Weights()
	if err != nil {
		return err
	}
	if flagEvalWeights != "" {
		if weights, err = ai.ParseWeightString(flagEvalWeights); err != nil {
			return err
		}
	}

	ec := ai.DefaultEvalConfig()
	ec.Weights = weights
	ec.Width = gameCfg.Board.Width
	ec.Height = gameCfg.Board.Height
	ec.Games = gameCfg.Eval.Games
	ec.PieceLimit = gameCfg.Eval.PieceLimit
	ec.Workers = gameCfg.Eval.Workers
	ec.BaseSeed = gameCfg.Eval.BaseSeed
	if flagEvalGames > 0 {
		ec.Games = flagEvalGames
	}
	if flagEvalPieces > 0 {
		ec.PieceLimit = flagEvalPieces
	}
	if flagEvalWorkers > 0 {
		ec.Workers = flagEvalWorkers
	}
	if flagEvalBaseSeed != 0 {
		ec.BaseSeed = flagEvalBaseSeed
	}
	ec.SearchWorkers = max(gameCfg.AI.SearchWorkers, 1)
	ec.Logger = logger

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("evaluating",
		"weights", weights.String(),
		"games", ec.Games,
		"pieces", ec.PieceLimit,
		"base_seed", ec.BaseSeed,
	)
	start := time.Now()
	results, err := ai.Evaluate(ctx, ec)
	if err != nil {
		return err
	}
	sum := ai.Summarize(results)
	logger.Info("evaluation finished", "mean", sum.Mean, "elapsed", time.Since(start).Round(time.Millisecond))

	printResults(weights, results, sum)

	if flagEvalNoSave {
		return nil
	}
	return saveEvalRuns(weights, ec.PieceLimit, results)
}

func printResults(w ai.Weights, results []ai.Result, sum ai.Summary) {
	fmt.Printf("Weights: %s\n\n", w)
	fmt.Printf("  %-4s  %-12s  %-8s  %-6s  %s\n", "Game", "Seed", "Score", "Lines", "Pieces")
	fmt.Printf("  %-4s  %-12s  %-8s  %-6s  %s\n", "----", "----", "-----", "-----", "------")
	for i, r := range results {
		fmt.Printf("  %-4d  %-12d  %-8d  %-6d  %d\n", i, r.Seed, r.Score, r.Lines, r.Pieces)
	}
	fmt.Println()
	fmt.Printf("Mean %.1f  Best %d  Worst %d  Lines %d\n", sum.Mean, sum.Best, sum.Worst, sum.Lines)
}

func saveEvalRuns(w ai.Weights, pieceLimit int, results []ai.Result) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs := make([]storage.EvalRun, len(results))
	for i, r := range results {
		runs[i] = storage.EvalRun{
			Weights:    w.String(),
			Seed:       r.Seed,
			PieceLimit: pieceLimit,
			Score:      r.Score,
			Lines:      r.Lines,
			Pieces:     r.Pieces,
		}
	}
	if err := store.SaveEvalRuns(runs); err != nil {
		return err
	}
	logger.Debug("eval runs saved", "count", len(runs), "db", flagDBPath)
	return nil
}
