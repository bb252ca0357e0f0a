package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

// ErrPlacementRejected means the board refused a placement the searcher
// reported as legal. It indicates a bug, not a game event.
var ErrPlacementRejected = errors.New("ai: board rejected placement")

// Result summarises a finished game.
type Result struct {
	Seed   int64
	Score  int
	Lines  int
	Pieces int
}

func resultOf(b *core.Board) Result {
	return Result{
		Score:  b.Score(),
		Lines:  b.Lines(),
		Pieces: b.PiecesPlaced(),
	}
}

// PlacePiece searches the falling piece's best placement and drops it
// there. When the search finds nothing the board resigns.
func PlacePiece(b *core.Board, s *Searcher) error {
	pl, ok := s.Best(b)
	if !ok {
		return b.Resign()
	}
	if !b.MoveTo(pl.Row, pl.Col, pl.Orientation) {
		return fmt.Errorf("%w: row %d col %d orientation %d", ErrPlacementRejected, pl.Row, pl.Col, pl.Orientation)
	}
	_, err := b.HardDrop()
	return err
}

// Play runs a whole game on b with no rendering and returns its result once
// the game is over. The score in the result is the game's fitness.
// Cancelling ctx stops the game between pieces.
func Play(ctx context.Context, b *core.Board, s *Searcher) (Result, error) {
	err := b.StartGame()
	for err == nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return resultOf(b), ctxErr
		}
		err = PlacePiece(b, s)
	}
	if _, over := core.IsGameOver(err); over {
		return resultOf(b), nil
	}
	return resultOf(b), err
}
