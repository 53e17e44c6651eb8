package config

import "math"

// DifficultyManager derives gravity timing from the difficulty config.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// InitialInterval returns the gravity interval a new round starts with.
// Level 0 keeps the base interval; higher levels divide it by up to
// 1 + speed_multiplier.
func (d *DifficultyManager) InitialInterval(base float64) float64 {
	return base / (1.0 + d.initialLevel*d.cfg.Scaling.SpeedMultiplier)
}

// NextInterval returns the gravity interval after clearing lines at once.
func (d *DifficultyManager) NextInterval(interval, speedUp float64, lines int) float64 {
	if !d.cfg.Enabled || lines <= 0 {
		return interval
	}
	return interval * math.Pow(speedUp, float64(lines))
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
