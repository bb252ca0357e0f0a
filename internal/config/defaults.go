package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the built-in configuration. It matches
// defaults/tetris.yaml and is used when the embedded file cannot be parsed.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Width:  10,
			Height: 20,
		},
		Gameplay: GameplayConfig{
			PieceLimit:      -1,
			GravityTicks:    30,
			MinGravityTicks: 3,
			Ghost:           true,
		},
		AI: AIConfig{
			Weights:        []float64{1.0, -1.0, -0.5, -0.5, -0.5, -0.5, -0.1, -0.2},
			SearchWorkers:  1,
			MoveDelayTicks: 8,
		},
		Eval: EvalConfig{
			Games:      10,
			PieceLimit: 500,
			Workers:    0,
			BaseSeed:   1,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "lines",
				MaxAt: 150,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 9.0,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultTetrisYAML
}
