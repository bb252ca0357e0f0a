// Package config provides YAML-based configuration loading and difficulty
// management for tetris.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/ai"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

// TetrisConfig contains all configuration for the game, the bot and the
// headless evaluator.
type TetrisConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	AI         AIConfig         `yaml:"ai"`
	Eval       EvalConfig       `yaml:"eval"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig sets the well size.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// GameplayConfig controls interactive play.
type GameplayConfig struct {
	PieceLimit      int  `yaml:"piece_limit"`       // -1 for endless
	GravityTicks    int  `yaml:"gravity_ticks"`     // ticks per row at the start
	MinGravityTicks int  `yaml:"min_gravity_ticks"` // fastest gravity
	Ghost           bool `yaml:"ghost"`             // draw the landing preview
}

// AIConfig controls the bot.
type AIConfig struct {
	Weights        []float64 `yaml:"weights"`          // full_rows, holes, hole_depth, bumpiness, deep_wells, delta_height, shallow_wells, pattern_diversity
	SearchWorkers  int       `yaml:"search_workers"`   // goroutines per placement search
	MoveDelayTicks int       `yaml:"move_delay_ticks"` // ticks between bot placements in the TUI
}

// EvalConfig controls the headless evaluator.
type EvalConfig struct {
	Games      int   `yaml:"games"`
	PieceLimit int   `yaml:"piece_limit"`
	Workers    int   `yaml:"workers"` // 0 uses every CPU
	BaseSeed   int64 `yaml:"base_seed"`
}

// DifficultyConfig defines the gravity progression.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "lines", "time" or "none"
	MaxAt int    `yaml:"max_at"` // score, lines or ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // gravity speed-up added at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func (c *TetrisConfig) ApplyPreset(preset DifficultyPreset) {
	if preset == DifficultyFixed {
		c.Difficulty.Enabled = false
		return
	}
	c.Difficulty.Enabled = true
	c.Difficulty.InitialLevel = InitialLevelForPreset(preset)
}

// Weights returns the bot weights as a validated vector.
func (c TetrisConfig) Weights() (ai.Weights, error) {
	return ai.ParseWeights(c.AI.Weights)
}

// BoardOptions returns options for a new board with the given seed.
func (c TetrisConfig) BoardOptions(seed int64) core.Options {
	return core.Options{
		Width:      c.Board.Width,
		Height:     c.Board.Height,
		PieceLimit: c.Gameplay.PieceLimit,
		Seed:       seed,
	}
}

// Validate reports every problem with the config at once.
func (c TetrisConfig) Validate() error {
	var errs []error
	if c.Board.Width < core.MinDimension || c.Board.Height < core.MinDimension {
		errs = append(errs, fmt.Errorf("%w: %dx%d", core.ErrInvalidDimensions, c.Board.Width, c.Board.Height))
	}
	if c.Gameplay.GravityTicks <= 0 {
		errs = append(errs, fmt.Errorf("config: gravity_ticks must be positive, got %d", c.Gameplay.GravityTicks))
	}
	if c.Gameplay.MinGravityTicks <= 0 || c.Gameplay.MinGravityTicks > c.Gameplay.GravityTicks {
		errs = append(errs, fmt.Errorf("config: min_gravity_ticks must be in [1, %d], got %d",
			c.Gameplay.GravityTicks, c.Gameplay.MinGravityTicks))
	}
	if _, err := c.Weights(); err != nil {
		errs = append(errs, err)
	}
	if c.AI.MoveDelayTicks < 0 {
		errs = append(errs, fmt.Errorf("config: move_delay_ticks must not be negative, got %d", c.AI.MoveDelayTicks))
	}
	if c.Eval.Games <= 0 {
		errs = append(errs, fmt.Errorf("config: eval games must be positive, got %d", c.Eval.Games))
	}
	if c.Eval.PieceLimit <= 0 {
		errs = append(errs, fmt.Errorf("config: eval piece_limit must be positive, got %d", c.Eval.PieceLimit))
	}
	switch c.Difficulty.Progression.Type {
	case "score", "lines", "time", "none", "":
	default:
		errs = append(errs, fmt.Errorf("config: unknown progression type %q", c.Difficulty.Progression.Type))
	}
	return errors.Join(errs...)
}
