// tetris is a falling-block puzzle game for the terminal, a desktop window
// or remote play over SSH.
//
// Usage:
//
//	tetris                  - Play in the terminal (same as 'tetris play')
//	tetris play             - Play in the terminal
//	tetris gui              - Play in a desktop window
//	tetris serve            - Start SSH server for remote play
//	tetris scores           - Show high scores
//	tetris config           - Print the resolved configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.tetris/scores.db)
//	--config <path>       - Load a custom config YAML
//	--difficulty <name>   - classic, easy, normal, hard or fixed
//	--mute                - Disable sound
//	--log-file <path>     - Write a game log to this file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/audio"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagMute       bool
	flagLogFile    string
	flagPlayer     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - falling blocks in your terminal",
	Long: `Tetris drops shapes into a 10x18 well. Fill a row to clear it;
the game speeds up with every cleared line and ends when a new
shape has no room to appear.

Available commands:
  play     - Play in the terminal
  gui      - Play in a desktop window
  serve    - Start SSH server for remote play
  scores   - View high scores
  config   - Print the resolved configuration

Examples:
  tetris
  tetris play --difficulty hard
  tetris gui --mute
  tetris serve --ssh :2222
  tetris scores --difficulty classic`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlay,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: classic, easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable sound effects and music")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append game events to this file")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Name stored with your scores")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(guiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// loadGameConfig resolves --config and --difficulty once and hands the result
// to the game package, so every game, SSH sessions included, plays with it.
func loadGameConfig() (config.TetrisConfig, config.DifficultyPreset, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.TetrisConfig{}, "", err
	}

	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return config.TetrisConfig{}, "", err
	}
	config.ApplyTetrisPreset(&cfg, preset)

	tetris.SetConfig(cfg, preset)
	return cfg, preset, nil
}

// newLogger returns a file logger for --log-file, or a discarding one.
// The terminal UI owns stdout, so nothing is logged there.
func newLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetris",
	})
	return logger, func() { f.Close() }, nil
}

// newAudio opens the speaker unless sound is muted. Audio failures only warn.
func newAudio(cfg config.AudioConfig, logger *log.Logger) (core.AudioSink, func()) {
	if flagMute || !cfg.Enabled {
		return nil, func() {}
	}

	sm := audio.NewSoundManager(cfg)
	if err := sm.Initialize(); err != nil {
		logger.Warn("Audio unavailable", "err", err)
		return nil, func() {}
	}
	return sm, sm.Cleanup
}

// openStore opens the score database. Play continues without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("Scores disabled", "err", err)
		return nil
	}
	return store
}
