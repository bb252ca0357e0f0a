// Package tetris plugs the tetris board and bot into the platform as
// registry games: "tetris" for human play and "tetris_ai" to watch the bot.
package tetris

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-tetris/internal/config"
	platform "github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/ai"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Mode selects who controls the falling piece.
type Mode string

const (
	ModeHuman Mode = "tetris"
	ModeBot   Mode = "tetris_ai"
)

var (
	settingsMu sync.RWMutex
	settings   = config.DefaultTetrisConfig()
)

// SetConfig sets the configuration used by games the registry creates.
// The CLI calls it once after loading the config file.
func SetConfig(cfg config.TetrisConfig) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = cfg
}

func currentConfig() config.TetrisConfig {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

func init() {
	registry.Register(string(ModeHuman), func() registry.Game {
		return New(ModeHuman, currentConfig())
	})
	registry.Register(string(ModeBot), func() registry.Game {
		return New(ModeBot, currentConfig())
	})
}

// Game runs one tetris game on the platform tick loop.
type Game struct {
	mode       Mode
	cfg        config.TetrisConfig
	board      *core.Board
	controller Controller
	difficulty *config.DifficultyManager

	tick          uint64
	gravityTicker int
	paused        bool
	gameOver      bool
	err           error // set when the game ended for a reason other than topping out

	screenW int
	screenH int
}

// New creates a game. Reset must be called before Step.
func New(mode Mode, cfg config.TetrisConfig) *Game {
	return &Game{mode: mode, cfg: cfg}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeBot {
		return "Tetris (Bot)"
	}
	return "Tetris"
}

// Description returns the menu blurb.
func (g *Game) Description() string {
	if g.mode == ModeBot {
		return "Watch the placement search play"
	}
	return "Classic falling blocks"
}

// Reset starts a new game with the runtime seed.
func (g *Game) Reset(rc platform.RuntimeConfig) {
	g.tick = 0
	g.gravityTicker = 0
	g.paused = false
	g.gameOver = false
	g.err = nil
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	if err := g.cfg.Validate(); err != nil {
		// A default board stands in so the failed game can still render.
		opts := core.DefaultOptions()
		opts.Seed = rc.Seed
		g.board, _ = core.New(opts)
		g.controller = HumanController{}
		g.gameOver = true
		g.err = fmt.Errorf("tetris: invalid config: %w", err)
		return
	}

	g.board, _ = core.New(g.cfg.BoardOptions(rc.Seed))
	g.controller = g.newController()
	g.finish(g.board.StartGame())
}

// newController builds the controller for the mode. The config must be valid.
func (g *Game) newController() Controller {
	if g.mode != ModeBot {
		return HumanController{}
	}
	weights, _ := g.cfg.Weights()
	searcher := ai.NewSearcher(weights, ai.WithWorkers(g.cfg.AI.SearchWorkers))
	return NewBotController(searcher, g.cfg.AI.MoveDelayTicks)
}

// SetController replaces the controller, for example to let a human take
// over from the bot.
func (g *Game) SetController(c Controller) {
	g.controller = c
}

// Board exposes the board for read-only inspection.
func (g *Game) Board() *core.Board {
	return g.board
}

// Err returns why the game stopped, if it was not a normal game over.
func (g *Game) Err() error {
	return g.err
}

// Step advances the game by one tick.
func (g *Game) Step(in platform.InputFrame) platform.StepResult {
	if in.Has(platform.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused || g.gameOver {
		return platform.StepResult{State: g.State()}
	}
	g.tick++

	for _, mv := range g.controller.Decide(g.board, in) {
		if g.finish(g.apply(mv)) {
			return platform.StepResult{State: g.State()}
		}
	}

	g.gravityTicker++
	if g.gravityTicker >= g.GravityTicks() {
		g.gravityTicker = 0
		_, err := g.board.Tick()
		g.finish(err)
	}

	return platform.StepResult{State: g.State()}
}

// apply performs one move on the board.
func (g *Game) apply(mv Move) error {
	switch mv.Command {
	case CommandLeft:
		g.board.MoveLeft()
	case CommandRight:
		g.board.MoveRight()
	case CommandRotate:
		g.board.RotateClockwise()
	case CommandRotateBack:
		g.board.RotateCounterclockwise()
	case CommandSoftDrop:
		g.gravityTicker = 0
		_, err := g.board.Tick()
		return err
	case CommandHardDrop:
		g.gravityTicker = 0
		_, err := g.board.HardDrop()
		return err
	case CommandPlace:
		g.gravityTicker = 0
		t := mv.Target
		if !g.board.MoveTo(t.Row, t.Col, t.Orientation) {
			return fmt.Errorf("%w: row %d col %d orientation %d", ai.ErrPlacementRejected, t.Row, t.Col, t.Orientation)
		}
		_, err := g.board.HardDrop()
		return err
	case CommandResign:
		return g.board.Resign()
	}
	return nil
}

// finish records the end of the game if err is non-nil and reports
// whether the game is over.
func (g *Game) finish(err error) bool {
	if err == nil {
		return false
	}
	g.gameOver = true
	if !errors.Is(err, core.ErrGameOver) {
		g.err = err
	}
	return true
}

// GravityTicks returns the current number of ticks per gravity step.
func (g *Game) GravityTicks() int {
	return g.difficulty.GravityTicks(g.cfg.Gameplay.GravityTicks, g.cfg.Gameplay.MinGravityTicks, g.progress())
}

// Level returns the difficulty level as a 1-10 number for display.
func (g *Game) Level() int {
	return 1 + int(g.difficulty.Level(g.progress())*9)
}

func (g *Game) progress() config.Progress {
	return config.Progress{
		Score: g.board.Score(),
		Lines: g.board.Lines(),
		Ticks: int(g.tick),
	}
}

// State returns the platform view of the game.
func (g *Game) State() platform.GameState {
	return platform.GameState{
		Score:    g.board.Score(),
		Lines:    g.board.Lines(),
		Pieces:   g.board.PiecesPlaced(),
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}
