package core

// RuntimeConfig contains configuration passed to the driver at initialization.
// The driver uses it to fit the board to the screen and to seed food placement.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game as seen by the platform.
type GameState struct {
	Score    int  // Food eaten
	Length   int  // Current snake length
	GameOver bool // The session ended (collision or full board)
	Won      bool // The snake filled the whole board
	Paused   bool
}

// StepResult is returned by the driver after each simulation tick.
type StepResult struct {
	State GameState
	Moved bool // The snake advanced this tick
}
