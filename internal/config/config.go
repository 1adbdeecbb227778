// Package config provides YAML-based configuration loading and difficulty
// management for the snake game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// SnakeConfig contains all configuration for a snake session.
type SnakeConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Snake      SnakeParams      `yaml:"snake"`
	Timing     TimingConfig     `yaml:"timing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the playing field size. Zero fits the terminal.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SnakeParams defines the snake itself.
type SnakeParams struct {
	InitialLength int `yaml:"initial_length"`
}

// TimingConfig defines how often the snake moves.
type TimingConfig struct {
	MoveIntervalMS int  `yaml:"move_interval_ms"`
	MinIntervalMS  int  `yaml:"min_interval_ms"`
	StepOnTurn     bool `yaml:"step_on_turn"`
}

// MoveInterval returns the base move interval.
func (t TimingConfig) MoveInterval() time.Duration {
	return time.Duration(t.MoveIntervalMS) * time.Millisecond
}

// MinInterval returns the fastest move interval difficulty may reach.
func (t TimingConfig) MinInterval() time.Duration {
	return time.Duration(t.MinIntervalMS) * time.Millisecond
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/moves at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Extra speed factor at max difficulty
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the values the game cannot run without.
func (c SnakeConfig) Validate() error {
	switch {
	case c.Board.Width < 0 || c.Board.Height < 0:
		return fmt.Errorf("config: board %dx%d: %w", c.Board.Width, c.Board.Height, ErrInvalidConfig)
	case c.Snake.InitialLength < 1:
		return fmt.Errorf("config: initial_length %d: %w", c.Snake.InitialLength, ErrInvalidConfig)
	case c.Board.Width > 0 && c.Snake.InitialLength > c.Board.Width:
		return fmt.Errorf("config: initial_length %d exceeds board width %d: %w",
			c.Snake.InitialLength, c.Board.Width, ErrInvalidConfig)
	case c.Timing.MoveIntervalMS <= 0:
		return fmt.Errorf("config: move_interval_ms %d: %w", c.Timing.MoveIntervalMS, ErrInvalidConfig)
	case c.Timing.MinIntervalMS < 0 || c.Timing.MinIntervalMS > c.Timing.MoveIntervalMS:
		return fmt.Errorf("config: min_interval_ms %d: %w", c.Timing.MinIntervalMS, ErrInvalidConfig)
	case c.Difficulty.InitialLevel < 0 || c.Difficulty.InitialLevel > 1:
		return fmt.Errorf("config: initial_level %.2f: %w", c.Difficulty.InitialLevel, ErrInvalidConfig)
	}

	switch c.Difficulty.Progression.Type {
	case "score", "time", "none", "":
	default:
		return fmt.Errorf("config: progression type %q: %w", c.Difficulty.Progression.Type, ErrInvalidConfig)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. An empty string means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

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
