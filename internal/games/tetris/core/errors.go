package core

import (
	"errors"
	"fmt"
)

var (
	// ErrGameOver matches any *GameOverError via errors.Is.
	ErrGameOver = errors.New("tetris: game over")

	// ErrInvalidDimensions is returned when a board is too small to hold a piece.
	ErrInvalidDimensions = errors.New("tetris: invalid board dimensions")
)

// GameOverError reports the end of a game. It is terminal: once returned,
// the board rejects further play.
type GameOverError struct {
	Score int
}

func (e *GameOverError) Error() string {
	return fmt.Sprintf("tetris: game over with score %d", e.Score)
}

// Is lets errors.Is(err, ErrGameOver) match.
func (e *GameOverError) Is(target error) bool {
	return target == ErrGameOver
}

// IsGameOver reports whether err ends the game and returns the final score.
func IsGameOver(err error) (int, bool) {
	var over *GameOverError
	if errors.As(err, &over) {
		return over.Score, true
	}
	return 0, false
}
