package ai

import (
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

const (
	// searchStartRow is the anchor row every candidate is dropped from.
	searchStartRow = 2

	// searchMargin widens the column sweep past both walls so offsets that
	// start inside the 4x4 box can still reach the edge columns.
	searchMargin = 2
)

// Placement is a resting position for the falling piece and its evaluation.
type Placement struct {
	Row         int
	Col         int
	Orientation int
	Score       float64
}

// Searcher finds the best placement of the falling piece by trying every
// column and orientation and scoring the resulting board.
type Searcher struct {
	weights Weights
	workers int
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithWorkers evaluates candidates on up to n goroutines. Values below 2
// keep the search sequential. Results do not depend on n.
func WithWorkers(n int) Option {
	return func(s *Searcher) {
		s.workers = n
	}
}

// NewSearcher creates a searcher that scores boards with w.
func NewSearcher(w Weights, opts ...Option) *Searcher {
	s := &Searcher{weights: w, workers: 1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Weights returns the weights the searcher scores with.
func (s *Searcher) Weights() Weights {
	return s.weights
}

// ScoreBoard evaluates a board as it stands.
func (s *Searcher) ScoreBoard(b *core.Board) float64 {
	return s.weights.Score(Extract(b))
}

type candidate struct {
	col         int
	orientation int
}

// candidates enumerates columns in the outer loop and orientations in the
// inner loop. This order decides ties.
func candidates(width int, k core.Kind) []candidate {
	n := core.Orientations(k)
	out := make([]candidate, 0, (width+2*searchMargin)*n)
	for col := -searchMargin; col < width+searchMargin; col++ {
		for o := 0; o < n; o++ {
			out = append(out, candidate{col: col, orientation: o})
		}
	}
	return out
}

type outcome struct {
	placement Placement
	ok        bool
}

// evaluate drops the falling piece from the candidate start on a copy of b
// and scores the copy. Rows are settled but not cleared, so full rows show
// up in the FullRows feature.
func (s *Searcher) evaluate(b *core.Board, falling core.Piece, c candidate) outcome {
	clone := b.Clone()
	start := falling.WithOrientation(c.orientation).At(searchStartRow, c.col)
	rest, ok := clone.DropFrom(start)
	if !ok {
		return outcome{}
	}
	clone.SettleWithoutClear(rest)
	return outcome{
		placement: Placement{
			Row:         rest.Row,
			Col:         rest.Col,
			Orientation: rest.Orientation,
			Score:       s.weights.Score(Extract(clone)),
		},
		ok: true,
	}
}

// Best returns the highest scoring placement of the falling piece. Ties go
// to the candidate enumerated first. ok is false when there is no falling
// piece or no legal placement, which means the game is about to end.
func (s *Searcher) Best(b *core.Board) (Placement, bool) {
	falling, ok := b.Falling()
	if !ok {
		return Placement{}, false
	}

	cands := candidates(b.Width(), falling.Kind)
	results := make([]outcome, len(cands))

	if s.workers > 1 {
		var g errgroup.Group
		g.SetLimit(s.workers)
		for i, c := range cands {
			g.Go(func() error {
				results[i] = s.evaluate(b, falling, c)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, c := range cands {
			results[i] = s.evaluate(b, falling, c)
		}
	}

	var best Placement
	found := false
	for _, r := range results {
		if !r.ok {
			continue
		}
		if !found || r.placement.Score > best.Score {
			best = r.placement
			found = true
		}
	}
	return best, found
}
