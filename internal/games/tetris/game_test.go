package tetris

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/config"
	platform "github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/ai"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

func runtimeConfig(seed int64) platform.RuntimeConfig {
	return platform.RuntimeConfig{
		Seed:     seed,
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

func newGame(mode Mode, seed int64, mutate func(*config.TetrisConfig)) *Game {
	cfg := config.DefaultTetrisConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	g := New(mode, cfg)
	g.Reset(runtimeConfig(seed))
	return g
}

func newBoard(t *testing.T, cfg config.TetrisConfig, seed int64) *core.Board {
	t.Helper()
	b, err := core.New(cfg.BoardOptions(seed))
	if err != nil {
		t.Fatalf("core.New() failed: %v", err)
	}
	return b
}

func frame(actions ...platform.Action) platform.InputFrame {
	f := platform.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"tetris", "tetris_ai"} {
		if !registry.Exists(id) {
			t.Errorf("game %q should be registered", id)
		}
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newGame(ModeHuman, 12345, nil)
	g2 := newGame(ModeHuman, 12345, nil)

	script := map[int]platform.Action{
		5:   platform.ActionLeft,
		10:  platform.ActionRotate,
		30:  platform.ActionHardDrop,
		45:  platform.ActionRight,
		46:  platform.ActionRight,
		60:  platform.ActionHardDrop,
		90:  platform.ActionSoftDrop,
		120: platform.ActionHardDrop,
	}

	for i := 0; i < 300; i++ {
		in := platform.NewInputFrame()
		if a, ok := script[i]; ok {
			in.Set(a)
		}
		g1.Step(in)
		g2.Step(in)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1 != s2 {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
	if s1.Pieces < 4 {
		t.Errorf("expected at least 4 pieces after three hard drops, got %d", s1.Pieces)
	}
}

func TestGravityMovesPiece(t *testing.T) {
	g := newGame(ModeHuman, 1, nil)
	start := g.Snapshot().Falling.Row

	for i := 0; i < g.GravityTicks(); i++ {
		g.Step(platform.NewInputFrame())
	}

	if row := g.Snapshot().Falling.Row; row != start+1 {
		t.Errorf("after one gravity period row = %d, expected %d", row, start+1)
	}
}

func TestHumanMoves(t *testing.T) {
	g := newGame(ModeHuman, 2, nil)
	col := g.Snapshot().Falling.Col

	g.Step(frame(platform.ActionLeft))
	if got := g.Snapshot().Falling.Col; got != col-1 {
		t.Errorf("left: col = %d, expected %d", got, col-1)
	}

	g.Step(frame(platform.ActionRight))
	g.Step(frame(platform.ActionRight))
	if got := g.Snapshot().Falling.Col; got != col+1 {
		t.Errorf("right: col = %d, expected %d", got, col+1)
	}

	pieces := g.Snapshot().Pieces
	g.Step(frame(platform.ActionHardDrop))
	if got := g.Snapshot().Pieces; got != pieces+1 {
		t.Errorf("hard drop should spawn the next piece, pieces = %d", got)
	}
}

func TestPauseStopsSimulation(t *testing.T) {
	g := newGame(ModeHuman, 3, nil)

	g.Step(frame(platform.ActionPause))
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}
	before := g.Snapshot()
	for i := 0; i < 200; i++ {
		g.Step(frame(platform.ActionHardDrop))
	}
	after := g.Snapshot()
	if before.Pieces != after.Pieces || before.Falling != after.Falling {
		t.Error("paused game should not change")
	}
	if after.State != StatePaused {
		t.Errorf("State = %q, expected paused", after.State)
	}

	g.Step(frame(platform.ActionPause))
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestPieceLimitEndsGame(t *testing.T) {
	g := newGame(ModeHuman, 4, func(c *config.TetrisConfig) {
		c.Gameplay.PieceLimit = 3
	})

	for i := 0; i < 10 && !g.State().GameOver; i++ {
		g.Step(frame(platform.ActionHardDrop))
	}

	state := g.State()
	if !state.GameOver {
		t.Fatal("game should end after the piece limit")
	}
	if state.Pieces != 3 {
		t.Errorf("Pieces = %d, expected 3", state.Pieces)
	}
	if g.Err() != nil {
		t.Errorf("normal game over should not set Err, got %v", g.Err())
	}
	if g.Snapshot().State != StateGameOver {
		t.Error("snapshot should report game over")
	}
}

func TestBotPlaysOnItsOwn(t *testing.T) {
	g := newGame(ModeBot, 5, func(c *config.TetrisConfig) {
		c.AI.MoveDelayTicks = 0
		c.Gameplay.PieceLimit = 40
	})

	for i := 0; i < 1000 && !g.State().GameOver; i++ {
		g.Step(platform.NewInputFrame())
	}

	state := g.State()
	if !state.GameOver {
		t.Fatal("bot should exhaust the piece limit")
	}
	if state.Pieces != 40 {
		t.Errorf("bot should survive 40 pieces, got %d", state.Pieces)
	}
	if g.Err() != nil {
		t.Errorf("bot game ended with error: %v", g.Err())
	}
}

func TestBotMatchesHeadlessPlay(t *testing.T) {
	g := newGame(ModeBot, 6, func(c *config.TetrisConfig) {
		c.AI.MoveDelayTicks = 0
		c.Gameplay.PieceLimit = 20
		c.Gameplay.GravityTicks = 1000
		c.Gameplay.MinGravityTicks = 1000
	})
	for i := 0; i < 500 && !g.State().GameOver; i++ {
		g.Step(platform.NewInputFrame())
	}

	cfg := config.DefaultTetrisConfig()
	cfg.Gameplay.PieceLimit = 20
	board := newBoard(t, cfg, 6)
	if _, err := ai.Play(t.Context(), board, ai.NewSearcher(ai.DefaultWeights)); err != nil {
		t.Fatalf("Play() failed: %v", err)
	}

	if g.State().Score != board.Score() || g.State().Lines != board.Lines() {
		t.Errorf("tui bot scored %d/%d lines, headless %d/%d",
			g.State().Score, g.State().Lines, board.Score(), board.Lines())
	}
}

func TestBotIgnoresKeyboard(t *testing.T) {
	g := newGame(ModeBot, 7, func(c *config.TetrisConfig) {
		c.AI.MoveDelayTicks = 100
	})
	col := g.Snapshot().Falling.Col

	g.Step(frame(platform.ActionLeft, platform.ActionHardDrop))
	snap := g.Snapshot()
	if snap.Falling.Col != col || snap.Pieces != 1 {
		t.Error("bot game should not react to movement keys")
	}
}

func TestBotResignsWithoutPlacement(t *testing.T) {
	var board *core.Board
	for seed := int64(0); seed < 500 && board == nil; seed++ {
		opts := core.DefaultOptions()
		opts.Seed = seed
		b, err := core.FromRows([]string{
			"..........",
			"..........",
			"#########.",
			"#########.",
		}, opts)
		if err != nil {
			t.Fatalf("FromRows() failed: %v", err)
		}
		if err := b.StartGame(); err != nil {
			t.Fatalf("StartGame() failed: %v", err)
		}
		if p, _ := b.Falling(); p.Kind == core.KindO {
			board = b
		}
	}
	if board == nil {
		t.Fatal("no seed spawns O first")
	}
	settled := len(board.Settled())

	bot := NewBotController(ai.NewSearcher(ai.DefaultWeights), 0)
	moves := bot.Decide(board, platform.NewInputFrame())
	if len(moves) != 1 || moves[0].Command != CommandResign {
		t.Fatalf("Decide() = %+v, expected a single resign", moves)
	}

	g := newGame(ModeBot, 1, func(c *config.TetrisConfig) {
		c.AI.MoveDelayTicks = 0
	})
	g.board = board
	g.SetController(bot)
	g.Step(platform.NewInputFrame())

	if !g.State().GameOver {
		t.Fatal("game should end when the bot resigns")
	}
	if g.Err() != nil {
		t.Errorf("resigning is a normal game over, got %v", g.Err())
	}
	if got := len(board.Settled()); got != settled {
		t.Errorf("resigned piece should not settle, cells %d -> %d", settled, got)
	}
}

func TestInvalidConfigEndsGame(t *testing.T) {
	tests := []struct {
		name   string
		mode   Mode
		mutate func(*config.TetrisConfig)
		target error
	}{
		{
			name:   "board too narrow",
			mode:   ModeHuman,
			mutate: func(c *config.TetrisConfig) { c.Board.Width = 2 },
			target: core.ErrInvalidDimensions,
		},
		{
			name:   "short weight vector",
			mode:   ModeBot,
			mutate: func(c *config.TetrisConfig) { c.AI.Weights = []float64{1} },
		},
		{
			name:   "zero gravity",
			mode:   ModeHuman,
			mutate: func(c *config.TetrisConfig) { c.Gameplay.GravityTicks = 0 },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newGame(tc.mode, 1, tc.mutate)

			if !g.State().GameOver {
				t.Error("invalid config should end the game at once")
			}
			if g.Err() == nil {
				t.Fatal("Err() should report the invalid config")
			}
			if tc.target != nil && !errors.Is(g.Err(), tc.target) {
				t.Errorf("Err() = %v, expected it to wrap %v", g.Err(), tc.target)
			}

			g.Step(frame(platform.ActionHardDrop))
			if g.State().Pieces != 0 {
				t.Errorf("failed game should not play, pieces = %d", g.State().Pieces)
			}

			screen := platform.NewScreen(80, 24)
			g.Render(screen)
			if !strings.Contains(screen.String(), "GAME OVER") {
				t.Error("failed game should still render")
			}
		})
	}
}

func TestRender(t *testing.T) {
	g := newGame(ModeHuman, 8, nil)
	screen := platform.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"NEXT", "SCORE", "LINES", "Tetris", "█"} {
		if !strings.Contains(out, want) {
			t.Errorf("render should contain %q", want)
		}
	}
}

func TestRenderGameOverBanner(t *testing.T) {
	g := newGame(ModeHuman, 9, func(c *config.TetrisConfig) {
		c.Gameplay.PieceLimit = 1
	})
	g.Step(frame(platform.ActionHardDrop))

	screen := platform.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over banner missing")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newGame(ModeHuman, 10, nil)
	screen := platform.NewScreen(30, 10)
	g.Render(screen)

	if !strings.Contains(screen.String(), "Terminal too small") {
		t.Error("expected too-small message")
	}
}
