package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default tetris configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Timing: TetrisTiming{
			GravityInterval: 0.8,
			SpeedUp:         0.97,
			QuickSlide:      0.1,
			QuickDrop:       0.1,
		},
		Scoring: TetrisScoring{
			LineScores: []int{0, 100, 300, 500, 800},
		},
		Spawn: TetrisSpawn{
			X: 3,
			Y: 14,
		},
		Input: InputConfig{
			HoldRelease: 0.08,
		},
		Audio: AudioConfig{
			Enabled:   true,
			MusicMin:  0.2,
			MusicMax:  1.0,
			SFXVolume: 0.6,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// DefaultYAML returns the embedded default tetris YAML.
func DefaultYAML() []byte {
	return defaultTetrisYAML
}
