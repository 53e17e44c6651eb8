package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game in the terminal.

Controls:
  Left/Right, A/D   - Move
  Up, W, X          - Rotate
  Down, S           - Soft drop
  Space             - Hard drop
  C/Tab             - Swap with next shape (once per shape)
  Esc/P             - Pause / resume
  Enter             - Start / play again
  H                 - High scores (start or game over screen)
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  classic - Start at 0.8s per row, speed up with every line (default)
  easy    - Same as classic
  normal  - Start 30% faster
  hard    - Start 70% faster
  fixed   - Never speed up

Examples:
  tetris play
  tetris play --difficulty hard
  tetris play --seed 42 --mute
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, preset, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	sink, closeAudio := newAudio(cfg.Audio, logger)
	defer closeAudio()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Player:   flagPlayer,
		Audio:    sink,
	}

	logger.Info("Starting game", "difficulty", preset, "seed", flagSeed, "fps", flagFPS)
	return tui.Run(tetris.New(), store, runtime, tui.Settings{
		Difficulty:  string(preset),
		HoldRelease: cfg.Input.HoldRelease,
		Logger:      logger,
	})
}
