package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

func limitedBoard(t *testing.T, seed int64, limit int) *core.Board {
	t.Helper()
	opts := core.DefaultOptions()
	opts.Seed = seed
	opts.PieceLimit = limit
	b, err := core.New(opts)
	require.NoError(t, err)
	return b
}

func TestPlayStopsAtPieceLimit(t *testing.T) {
	b := limitedBoard(t, 1, 30)

	res, err := Play(context.Background(), b, NewSearcher(DefaultWeights))
	require.NoError(t, err)
	assert.Equal(t, 30, res.Pieces)
	assert.True(t, b.Over())
	assert.Equal(t, b.Score(), res.Score)
	assert.GreaterOrEqual(t, res.Score, 0)
}

func TestPlayIsDeterministic(t *testing.T) {
	a, err := Play(context.Background(), limitedBoard(t, 99, 40), NewSearcher(DefaultWeights))
	require.NoError(t, err)
	b, err := Play(context.Background(), limitedBoard(t, 99, 40), NewSearcher(DefaultWeights, WithWorkers(3)))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestPlayHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Play(ctx, limitedBoard(t, 1, core.Unlimited), NewSearcher(DefaultWeights))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlayClearsLines(t *testing.T) {
	res, err := Play(context.Background(), limitedBoard(t, 5, 120), NewSearcher(DefaultWeights))
	require.NoError(t, err)
	assert.Positive(t, res.Lines)
	assert.Positive(t, res.Score)
}

func TestPlacePieceResignsWithoutPlacement(t *testing.T) {
	b := boardWithFalling(t, core.KindO,
		"..........",
		"..........",
		"#########.",
		"#########.",
	)
	settled := len(b.Settled())

	s := NewSearcher(DefaultWeights)
	_, ok := s.Best(b)
	require.False(t, ok)

	err := PlacePiece(b, s)
	require.ErrorIs(t, err, core.ErrGameOver)
	assert.True(t, b.Over())
	assert.Len(t, b.Settled(), settled)
	assert.Equal(t, 1, b.PiecesPlaced())
}

func TestEvaluateMatchesSequentialPlay(t *testing.T) {
	cfg := DefaultEvalConfig()
	cfg.Games = 4
	cfg.BaseSeed = 100
	cfg.PieceLimit = 25
	cfg.Workers = 2

	results, err := Evaluate(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, results, 4)

	for i, got := range results {
		seed := cfg.BaseSeed + int64(i)
		want, err := Play(context.Background(), limitedBoard(t, seed, cfg.PieceLimit), NewSearcher(cfg.Weights))
		require.NoError(t, err)
		want.Seed = seed
		assert.Equal(t, want, got, "game %d", i)
	}
}

func TestEvaluateRejectsEmptyBatch(t *testing.T) {
	cfg := DefaultEvalConfig()
	cfg.Games = 0
	_, err := Evaluate(context.Background(), cfg)
	assert.Error(t, err)
}

func TestEvaluateRejectsBadBoard(t *testing.T) {
	cfg := DefaultEvalConfig()
	cfg.Games = 2
	cfg.Width = 2
	_, err := Evaluate(context.Background(), cfg)
	assert.ErrorIs(t, err, core.ErrInvalidDimensions)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Result{
		{Score: 100, Lines: 2},
		{Score: 300, Lines: 5},
		{Score: 200, Lines: 3},
	})
	assert.Equal(t, 3, s.Games)
	assert.Equal(t, 200.0, s.Mean)
	assert.Equal(t, 300, s.Best)
	assert.Equal(t, 100, s.Worst)
	assert.Equal(t, 10, s.Lines)

	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestParseWeights(t *testing.T) {
	_, err := ParseWeights([]float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrWeightCount)

	w, err := ParseWeights([]float64{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)
	assert.Equal(t, Weights{1, 2, 3, 4, 5, 6, 7, 8}, w)
}

func TestParseWeightString(t *testing.T) {
	w, err := ParseWeightString(DefaultWeights.String())
	require.NoError(t, err)
	assert.Equal(t, DefaultWeights, w)

	_, err = ParseWeightString("1, 2, x, 4, 5, 6, 7, 8")
	assert.Error(t, err)

	_, err = ParseWeightString("1,2")
	assert.ErrorIs(t, err, ErrWeightCount)
}

func TestWeightsScore(t *testing.T) {
	w := Weights{1, -1, 0, 0, 0, 0, 0, 2}
	f := Features{FullRows: 3, Holes: 2, PatternDiversity: 4}
	assert.Equal(t, 9.0, w.Score(f))
}
