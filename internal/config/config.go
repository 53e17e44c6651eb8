// Package config provides YAML-based game configuration loading and
// difficulty management for the tetris game.
package config

import (
	"errors"
	"fmt"
)

// Field geometry shared with the game package. Spawn bounds are validated
// against these so a bad config cannot place the first piece off the field.
const (
	FieldWidth  = 10
	FieldHeight = 18
	ShapeSize   = 4
)

// TetrisConfig contains all configuration for the tetris game.
type TetrisConfig struct {
	Timing     TetrisTiming     `yaml:"timing"`
	Scoring    TetrisScoring    `yaml:"scoring"`
	Spawn      TetrisSpawn      `yaml:"spawn"`
	Input      InputConfig      `yaml:"input"`
	Audio      AudioConfig      `yaml:"audio"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TetrisTiming defines the timers driving piece movement. All values are seconds.
type TetrisTiming struct {
	GravityInterval float64 `yaml:"gravity_interval"` // Initial time between automatic descents
	SpeedUp         float64 `yaml:"speed_up"`         // Interval multiplier per cleared line
	QuickSlide      float64 `yaml:"quick_slide"`      // Repeat delay while left/right is held
	QuickDrop       float64 `yaml:"quick_drop"`       // Repeat delay while down is held
}

// TetrisScoring defines points awarded per clear, indexed by lines cleared at once.
type TetrisScoring struct {
	LineScores []int `yaml:"line_scores"`
}

// TetrisSpawn is the bottom-left corner of the 4x4 box where new pieces appear.
// Rows count upward from the bottom of the field.
type TetrisSpawn struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// InputConfig tunes how key events become held buttons.
type InputConfig struct {
	// HoldRelease is how long a key counts as held after its last event.
	// Terminals never report key releases; zero disables the timeout.
	HoldRelease float64 `yaml:"hold_release"`
}

// AudioConfig defines audio levels.
type AudioConfig struct {
	Enabled   bool    `yaml:"enabled"`
	MusicMin  float64 `yaml:"music_min"`  // Music volume on an empty field
	MusicMax  float64 `yaml:"music_max"`  // Music volume on a full field
	SFXVolume float64 `yaml:"sfx_volume"` // Volume of one-shot effects
}

// DifficultyConfig defines how fast the game starts and whether it accelerates.
type DifficultyConfig struct {
	Enabled      bool          `yaml:"enabled"`       // False keeps the gravity interval constant
	InitialLevel float64       `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Scaling      ScalingConfig `yaml:"scaling"`
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Gravity speed added at initial_level 1.0
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyClassic DifficultyPreset = "classic"
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyHard    DifficultyPreset = "hard"
	DifficultyFixed   DifficultyPreset = "fixed"
)

// Presets lists every difficulty preset in display order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{
		DifficultyClassic,
		DifficultyEasy,
		DifficultyNormal,
		DifficultyHard,
		DifficultyFixed,
	}
}

// ParsePreset converts a user-supplied name to a preset.
// The empty string selects the classic preset.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyClassic, nil
	}
	for _, p := range Presets() {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want classic, easy, normal, hard or fixed)", name)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables acceleration.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate reports the first out-of-range value in the config.
func (c TetrisConfig) Validate() error {
	switch {
	case c.Timing.GravityInterval <= 0:
		return fmt.Errorf("%w: timing.gravity_interval must be positive, got %v", ErrInvalidConfig, c.Timing.GravityInterval)
	case c.Timing.SpeedUp <= 0 || c.Timing.SpeedUp > 1:
		return fmt.Errorf("%w: timing.speed_up must be in (0, 1], got %v", ErrInvalidConfig, c.Timing.SpeedUp)
	case c.Timing.QuickSlide <= 0:
		return fmt.Errorf("%w: timing.quick_slide must be positive, got %v", ErrInvalidConfig, c.Timing.QuickSlide)
	case c.Timing.QuickDrop <= 0:
		return fmt.Errorf("%w: timing.quick_drop must be positive, got %v", ErrInvalidConfig, c.Timing.QuickDrop)
	case len(c.Scoring.LineScores) != 5:
		return fmt.Errorf("%w: scoring.line_scores needs 5 entries, got %d", ErrInvalidConfig, len(c.Scoring.LineScores))
	case c.Spawn.X < 0 || c.Spawn.X > FieldWidth-ShapeSize:
		return fmt.Errorf("%w: spawn.x must be in [0, %d], got %d", ErrInvalidConfig, FieldWidth-ShapeSize, c.Spawn.X)
	case c.Spawn.Y < 0 || c.Spawn.Y > FieldHeight-ShapeSize:
		return fmt.Errorf("%w: spawn.y must be in [0, %d], got %d", ErrInvalidConfig, FieldHeight-ShapeSize, c.Spawn.Y)
	case c.Input.HoldRelease < 0:
		return fmt.Errorf("%w: input.hold_release must not be negative, got %v", ErrInvalidConfig, c.Input.HoldRelease)
	case c.Audio.MusicMin < 0 || c.Audio.MusicMax > 1 || c.Audio.MusicMin > c.Audio.MusicMax:
		return fmt.Errorf("%w: audio music range [%v, %v] must lie within [0, 1]", ErrInvalidConfig, c.Audio.MusicMin, c.Audio.MusicMax)
	case c.Audio.SFXVolume < 0 || c.Audio.SFXVolume > 1:
		return fmt.Errorf("%w: audio.sfx_volume must be in [0, 1], got %v", ErrInvalidConfig, c.Audio.SFXVolume)
	case c.Difficulty.InitialLevel < 0 || c.Difficulty.InitialLevel > 1:
		return fmt.Errorf("%w: difficulty.initial_level must be in [0, 1], got %v", ErrInvalidConfig, c.Difficulty.InitialLevel)
	case c.Difficulty.Scaling.SpeedMultiplier < 0:
		return fmt.Errorf("%w: difficulty.scaling.speed_multiplier must not be negative", ErrInvalidConfig)
	}
	for i, s := range c.Scoring.LineScores {
		if s < 0 {
			return fmt.Errorf("%w: scoring.line_scores[%d] must not be negative", ErrInvalidConfig, i)
		}
	}
	return nil
}
