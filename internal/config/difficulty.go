package config

import (
	"math"
	"time"
)

// DifficultyManager derives the snake's speed from score or elapsed moves.
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

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/moves.
func (d *DifficultyManager) Level(score int, moves uint64) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(moves) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// MoveInterval returns the time between snake moves at the current level.
// Speed grows from 1x to (1 + speed_multiplier)x; the interval never drops
// below minInterval.
func (d *DifficultyManager) MoveInterval(base, minInterval time.Duration, score int, moves uint64) time.Duration {
	level := d.Level(score, moves)
	interval := time.Duration(float64(base) / (1.0 + level*d.cfg.Scaling.SpeedMultiplier))
	if interval < minInterval {
		return minInterval
	}
	return interval
}

// TicksPerMove converts a move interval to platform ticks at tickRate, at least one.
func TicksPerMove(interval time.Duration, tickRate int) int {
	if tickRate <= 0 {
		return 1
	}
	tick := time.Second / time.Duration(tickRate)
	n := int(math.Round(float64(interval) / float64(tick)))
	return max(1, n)
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
