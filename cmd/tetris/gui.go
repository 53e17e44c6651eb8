package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/gui"
)

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Play in a desktop window",
	Long: `Open a window and play with the keyboard.

Uses the same controls, config and score database as 'tetris play'.

Examples:
  tetris gui
  tetris gui --difficulty normal --fps 120`,
	Args: cobra.NoArgs,
	RunE: runGUI,
}

func runGUI(_ *cobra.Command, _ []string) error {
	cfg, preset, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	sink, closeAudio := newAudio(cfg.Audio, logger)
	defer closeAudio()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	runtime := core.RuntimeConfig{
		TickRate: flagFPS,
		Seed:     flagSeed,
		Player:   flagPlayer,
		Audio:    sink,
	}

	logger.Info("Opening window", "difficulty", preset, "seed", flagSeed, "fps", flagFPS)
	return gui.Run(tetris.New(), store, runtime, gui.Settings{
		Difficulty: string(preset),
		Logger:     logger,
	})
}
