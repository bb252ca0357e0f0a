package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/ai"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var (
	flagWatchWeights string
	flagWatchDelay   int
	flagPieces       int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play tetris",
	Long: `Start a game of tetris.

Controls:
  Left/Right, A/D  - Move
  Up, W, X         - Rotate clockwise
  Z                - Rotate counterclockwise
  Down, S          - Soft drop
  Space            - Hard drop
  P/Esc            - Pause
  R                - Restart (after game over)
  Q/Ctrl+C         - Quit

Examples:
  tetris play
  tetris play --difficulty hard
  tetris play --pieces 100 --seed 42`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runMode(tetris.ModeHuman)
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the bot play",
	Long: `Watch the placement-search bot play. The weights are the eight
feature weights in order: full_rows, holes, hole_depth, bumpiness,
deep_wells, delta_height, shallow_wells, pattern_diversity.

Examples:
  tetris watch
  tetris watch --delay 2 --fps 120
  tetris watch --weights 1,-1,-0.5,-0.5,-0.5,-0.5,-0.1,-0.2`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runMode(tetris.ModeBot)
	},
}

func init() {
	for _, c := range []*cobra.Command{playCmd, watchCmd} {
		c.Flags().IntVar(&flagPieces, "pieces", 0, "End the game after this many pieces (0 = config value)")
	}
	watchCmd.Flags().StringVar(&flagWatchWeights, "weights", "", "Comma-separated weight vector")
	watchCmd.Flags().IntVar(&flagWatchDelay, "delay", -1, "Ticks between bot placements (-1 = config value)")
}

func runMode(mode tetris.Mode) error {
	cfg := gameCfg
	if flagPieces > 0 {
		cfg.Gameplay.PieceLimit = flagPieces
	}
	if mode == tetris.ModeBot {
		if flagWatchWeights != "" {
			w, err := ai.ParseWeightString(flagWatchWeights)
			if err != nil {
				return err
			}
			cfg.AI.Weights = w[:]
		}
		if flagWatchDelay >= 0 {
			cfg.AI.MoveDelayTicks = flagWatchDelay
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	logger.Debug("starting game", "mode", mode, "seed", flagSeed, "fps", flagFPS)
	game := tetris.New(mode, cfg)
	if err := tui.Run(game, store, runtimeConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return game.Err()
}
