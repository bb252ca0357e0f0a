package ai

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

// EvalConfig describes a batch of headless games played with one weight
// vector.
type EvalConfig struct {
	Weights    Weights
	Games      int
	BaseSeed   int64 // game i uses BaseSeed+i
	PieceLimit int   // pieces per game; negative for unlimited
	Width      int
	Height     int

	// Workers bounds how many games run at once. Zero uses every CPU.
	Workers int
	// SearchWorkers parallelises each placement search. Usually 1 when
	// Workers already saturates the machine.
	SearchWorkers int

	Logger *log.Logger
}

// DefaultEvalConfig returns a ten-game batch on a standard board.
func DefaultEvalConfig() EvalConfig {
	return EvalConfig{
		Weights:       DefaultWeights,
		Games:         10,
		PieceLimit:    500,
		Width:         core.DefaultWidth,
		Height:        core.DefaultHeight,
		SearchWorkers: 1,
	}
}

// Evaluate plays cfg.Games independent games, one per goroutine, and
// returns their results in game order. Each game owns its board and
// searcher; nothing is shared between them.
func Evaluate(ctx context.Context, cfg EvalConfig) ([]Result, error) {
	if cfg.Games <= 0 {
		return nil, fmt.Errorf("ai: games must be positive, got %d", cfg.Games)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	results := make([]Result, cfg.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range cfg.Games {
		seed := cfg.BaseSeed + int64(i)
		g.Go(func() error {
			board, err := core.New(core.Options{
				Width:      cfg.Width,
				Height:     cfg.Height,
				PieceLimit: cfg.PieceLimit,
				Seed:       seed,
			})
			if err != nil {
				return err
			}

			start := time.Now()
			res, err := Play(ctx, board, NewSearcher(cfg.Weights, WithWorkers(cfg.SearchWorkers)))
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			res.Seed = seed
			results[i] = res

			logger.Debug("game finished",
				"game", i,
				"seed", seed,
				"score", res.Score,
				"lines", res.Lines,
				"pieces", res.Pieces,
				"elapsed", time.Since(start).Round(time.Millisecond),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("ai: evaluation failed: %w", err)
	}
	return results, nil
}

// Summary aggregates a batch of results.
type Summary struct {
	Games int
	Mean  float64
	Best  int
	Worst int
	Lines int
}

// Summarize returns aggregate statistics. The mean score is the fitness of
// the weight vector that produced the batch.
func Summarize(results []Result) Summary {
	s := Summary{Games: len(results)}
	if len(results) == 0 {
		return s
	}
	s.Best, s.Worst = results[0].Score, results[0].Score
	total := 0
	for _, r := range results {
		total += r.Score
		s.Lines += r.Lines
		s.Best = max(s.Best, r.Score)
		s.Worst = min(s.Worst, r.Score)
	}
	s.Mean = float64(total) / float64(len(results))
	return s
}
