package tetris

import (
	platform "github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/ai"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

// Command is one thing a controller asks the board to do.
type Command int

const (
	CommandLeft Command = iota + 1
	CommandRight
	CommandRotate
	CommandRotateBack
	CommandSoftDrop
	CommandHardDrop
	CommandPlace  // jump straight to Move.Target and drop
	CommandResign // give up; no placement exists
)

// Move is a command plus, for CommandPlace, its target.
type Move struct {
	Command Command
	Target  ai.Placement
}

// Controller decides what to do with the falling piece on each tick.
type Controller interface {
	Decide(b *core.Board, in platform.InputFrame) []Move
}

// HumanController turns keyboard actions into moves.
type HumanController struct{}

// humanBindings is applied in order, so a frame with both a shift and a
// hard drop shifts first.
var humanBindings = []struct {
	action  platform.Action
	command Command
}{
	{platform.ActionLeft, CommandLeft},
	{platform.ActionRight, CommandRight},
	{platform.ActionRotate, CommandRotate},
	{platform.ActionRotateBack, CommandRotateBack},
	{platform.ActionSoftDrop, CommandSoftDrop},
	{platform.ActionHardDrop, CommandHardDrop},
}

// Decide implements Controller.
func (HumanController) Decide(_ *core.Board, in platform.InputFrame) []Move {
	var moves []Move
	for _, bind := range humanBindings {
		if in.Has(bind.action) {
			moves = append(moves, Move{Command: bind.command})
		}
	}
	return moves
}

// BotController plays with a Searcher. It waits Delay ticks after each
// spawn before placing the piece so a watcher can follow along.
type BotController struct {
	Searcher *ai.Searcher
	Delay    int

	waited  int
	lastGen int
}

// NewBotController creates a bot that places a piece every delay ticks.
func NewBotController(s *ai.Searcher, delay int) *BotController {
	return &BotController{Searcher: s, Delay: delay, lastGen: -1}
}

// Decide implements Controller. Keyboard input is ignored.
func (c *BotController) Decide(b *core.Board, _ platform.InputFrame) []Move {
	if _, ok := b.Falling(); !ok {
		return nil
	}
	if gen := b.PiecesPlaced(); gen != c.lastGen {
		c.lastGen = gen
		c.waited = 0
	}
	if c.waited < c.Delay {
		c.waited++
		return nil
	}

	target, ok := c.Searcher.Best(b)
	if !ok {
		return []Move{{Command: CommandResign}}
	}
	return []Move{{Command: CommandPlace, Target: target}}
}
