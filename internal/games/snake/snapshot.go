package snake

// Snapshot captures the arena state for determinism testing and replay.
type Snapshot struct {
	Tick       uint64
	Width      int
	Height     int
	Score      int
	SnakeLen   int
	Head       Cell
	Dir        Direction
	Food       Cell
	HasFood    bool
	Terminated bool
}

// Snapshot returns the current arena snapshot.
func (a *Arena) Snapshot() Snapshot {
	return Snapshot{
		Tick:       a.tick,
		Width:      a.width,
		Height:     a.height,
		Score:      a.score,
		SnakeLen:   a.body.Len(),
		Head:       a.body.Head(),
		Dir:        a.heading,
		Food:       a.food,
		HasFood:    a.hasFood,
		Terminated: a.terminated,
	}
}
