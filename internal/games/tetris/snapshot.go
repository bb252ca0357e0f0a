package tetris

import "github.com/vovakirdan/tui-tetris/internal/games/tetris/core"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying  GameStateType = "playing"
	StatePaused   GameStateType = "paused"
	StateGameOver GameStateType = "game_over"
)

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick     uint64
	Mode     string
	Score    int
	Lines    int
	Pieces   int
	Falling  core.Piece
	HasPiece bool
	Next     core.Kind
	Grid     string // settled cells and falling piece, one row per line
	State    GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	falling, ok := g.board.Falling()
	return Snapshot{
		Tick:     g.tick,
		Mode:     string(g.mode),
		Score:    g.board.Score(),
		Lines:    g.board.Lines(),
		Pieces:   g.board.PiecesPlaced(),
		Falling:  falling,
		HasPiece: ok,
		Next:     g.board.Next().Kind,
		Grid:     g.board.String(),
		State:    state,
	}
}
