package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	cfg, err := parseSnake(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != DefaultSnakeConfig() {
		t.Errorf("embedded default = %+v\nexpected %+v", cfg, DefaultSnakeConfig())
	}
}

func TestLoadSnakeCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	data := []byte("board:\n  width: 20\n  height: 10\ntiming:\n  move_interval_ms: 200\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := LoadSnake(path)
	if err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}

	if cfg.Board.Width != 20 || cfg.Board.Height != 10 {
		t.Errorf("Board = %dx%d, expected 20x10", cfg.Board.Width, cfg.Board.Height)
	}
	if cfg.Timing.MoveIntervalMS != 200 {
		t.Errorf("MoveIntervalMS = %d, expected 200", cfg.Timing.MoveIntervalMS)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Snake.InitialLength != 3 {
		t.Errorf("InitialLength = %d, expected default 3", cfg.Snake.InitialLength)
	}
	if !cfg.Timing.StepOnTurn {
		t.Error("StepOnTurn should keep its default")
	}
}

func TestLoadSnakeErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadSnake(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadSnake() should fail for a missing custom file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board: [1, 2"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if _, err := LoadSnake(bad); err == nil {
		t.Error("LoadSnake() should fail for malformed YAML")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("snake:\n  initial_length: 0\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if _, err := LoadSnake(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadSnake() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*SnakeConfig)
		ok     bool
	}{
		{"defaults", func(*SnakeConfig) {}, true},
		{"negative width", func(c *SnakeConfig) { c.Board.Width = -1 }, false},
		{"zero length", func(c *SnakeConfig) { c.Snake.InitialLength = 0 }, false},
		{"length exceeds width", func(c *SnakeConfig) { c.Board.Width = 2; c.Snake.InitialLength = 3 }, false},
		{"zero interval", func(c *SnakeConfig) { c.Timing.MoveIntervalMS = 0 }, false},
		{"min above base", func(c *SnakeConfig) { c.Timing.MinIntervalMS = 1000 }, false},
		{"level above one", func(c *SnakeConfig) { c.Difficulty.InitialLevel = 1.5 }, false},
		{"unknown progression", func(c *SnakeConfig) { c.Difficulty.Progression.Type = "vibes" }, false},
		{"fixed board", func(c *SnakeConfig) { c.Board.Width = 10; c.Board.Height = 10 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSnakeConfig()
			tc.modify(&cfg)
			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestApplySnakePreset(t *testing.T) {
	tests := []struct {
		preset     DifficultyPreset
		enabled    bool
		level      float64
		intervalMS int
		minLength  int
	}{
		{DifficultyEasy, true, 0.0, 750, 3},
		{DifficultyNormal, true, 0.3, 500, 3},
		{DifficultyHard, true, 0.7, 500, 5},
		{DifficultyFixed, false, 0.0, 500, 3},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultSnakeConfig()
			ApplySnakePreset(&cfg, tc.preset)

			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.level {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tc.level)
			}
			if cfg.Timing.MoveIntervalMS != tc.intervalMS {
				t.Errorf("MoveIntervalMS = %d, expected %d", cfg.Timing.MoveIntervalMS, tc.intervalMS)
			}
			if cfg.Snake.InitialLength != tc.minLength {
				t.Errorf("InitialLength = %d, expected %d", cfg.Snake.InitialLength, tc.minLength)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"", "easy", "normal", "hard", "fixed"} {
		if _, err := ParsePreset(s); err != nil {
			t.Errorf("ParsePreset(%q) failed: %v", s, err)
		}
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset(\"nightmare\") should fail")
	}
}

func TestDifficultyMoveInterval(t *testing.T) {
	cfg := DefaultSnakeConfig()
	dm := NewDifficultyManager(cfg.Difficulty)
	base, floor := cfg.Timing.MoveInterval(), cfg.Timing.MinInterval()

	if got := dm.MoveInterval(base, floor, 0, 0); got != base {
		t.Errorf("MoveInterval at score 0 = %v, expected %v", got, base)
	}

	// At max difficulty speed is 5x: 500ms / 5 = 100ms.
	if got := dm.MoveInterval(base, floor, 40, 0); got != 100*time.Millisecond {
		t.Errorf("MoveInterval at max = %v, expected 100ms", got)
	}

	// Progress is clamped past max_at.
	if got := dm.MoveInterval(base, floor, 400, 0); got != 100*time.Millisecond {
		t.Errorf("MoveInterval past max = %v, expected 100ms", got)
	}

	mid := dm.MoveInterval(base, floor, 20, 0)
	if mid >= base || mid <= 100*time.Millisecond {
		t.Errorf("MoveInterval halfway = %v, expected between 100ms and 500ms", mid)
	}
}

func TestDifficultyFloorAndFixed(t *testing.T) {
	cfg := DefaultSnakeConfig()
	cfg.Difficulty.Scaling.SpeedMultiplier = 100
	dm := NewDifficultyManager(cfg.Difficulty)

	if got := dm.MoveInterval(cfg.Timing.MoveInterval(), cfg.Timing.MinInterval(), 40, 0); got != 60*time.Millisecond {
		t.Errorf("MoveInterval should stop at the floor, got %v", got)
	}

	ApplySnakePreset(&cfg, DifficultyFixed)
	fixed := NewDifficultyManager(cfg.Difficulty)
	if fixed.IsEnabled() {
		t.Error("Fixed preset should disable progression")
	}
	if got := fixed.Level(1000, 1000); got != 0 {
		t.Errorf("Level() with progression off = %v, expected 0", got)
	}
}

func TestDifficultyTimeProgression(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 100},
	})

	if got := dm.Level(0, 0); got != 0.5 {
		t.Errorf("Level(0, 0) = %v, expected 0.5", got)
	}
	if got := dm.Level(0, 50); got != 0.75 {
		t.Errorf("Level(0, 50) = %v, expected 0.75", got)
	}
	if got := dm.Level(0, 500); got != 1.0 {
		t.Errorf("Level(0, 500) = %v, expected 1.0", got)
	}
}

func TestTicksPerMove(t *testing.T) {
	tests := []struct {
		interval time.Duration
		rate     int
		want     int
	}{
		{500 * time.Millisecond, 60, 30},
		{100 * time.Millisecond, 60, 6},
		{time.Millisecond, 60, 1},
		{time.Second, 0, 1},
	}
	for _, tc := range tests {
		if got := TicksPerMove(tc.interval, tc.rate); got != tc.want {
			t.Errorf("TicksPerMove(%v, %d) = %d, expected %d", tc.interval, tc.rate, got, tc.want)
		}
	}
}
