// Package snake implements the snake simulation: the body, its heading, the
// food cell and the board it wraps around on. It has no knowledge of
// terminals, keys or timers; a driver calls SetDirection and Step and reads
// the state back for rendering.
package snake

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

var (
	// ErrInvalidBounds is returned when the board width or height is not positive.
	ErrInvalidBounds = errors.New("board dimensions must be positive")
	// ErrInvalidLength is returned when the initial snake length is not positive.
	ErrInvalidLength = errors.New("initial length must be positive")
	// ErrSnakeTooLong is returned when the initial snake does not fit in one row.
	ErrSnakeTooLong = errors.New("initial length exceeds board width")
)

// Arena owns the snake, its heading, the food and the board bounds for one
// game session. It is not safe for concurrent use; a new Arena is built for
// every session.
type Arena struct {
	width, height int
	initialLength int

	body    *Body
	heading Direction
	food    Cell
	hasFood bool

	rng        *rand.Rand
	tick       uint64
	score      int
	terminated bool
}

// Option configures an Arena.
type Option func(*Arena)

// WithSeed seeds the food placement RNG for reproducible games.
func WithSeed(seed int64) Option {
	return func(a *Arena) {
		a.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand uses rng for food placement.
func WithRand(rng *rand.Rand) Option {
	return func(a *Arena) {
		if rng != nil {
			a.rng = rng
		}
	}
}

// NewArena builds a width x height board with a snake of initialLength cells
// whose head sits at the board center, heading right. Food is placed before
// NewArena returns.
func NewArena(width, height, initialLength int, opts ...Option) (*Arena, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("snake: %dx%d: %w", width, height, ErrInvalidBounds)
	}
	if initialLength < 1 {
		return nil, fmt.Errorf("snake: length %d: %w", initialLength, ErrInvalidLength)
	}
	if initialLength > width {
		return nil, fmt.Errorf("snake: length %d on width %d: %w", initialLength, width, ErrSnakeTooLong)
	}

	a := &Arena{
		width:         width,
		height:        height,
		initialLength: initialLength,
		heading:       DirRight,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	start := Cell{X: width / 2, Y: height / 2}
	a.body = NewBody(start, initialLength, width)
	a.placeFood()

	return a, nil
}

// SetDirection changes the heading. A request for the exact opposite of the
// current heading is rejected and reported as false.
func (a *Arena) SetDirection(d Direction) bool {
	if d == a.heading.Opposite() {
		return false
	}
	a.heading = d
	return true
}

// Step moves the snake one cell, resolves food and reports whether the snake
// ran into itself. Once a step has terminated the game, later calls return
// OutcomeTerminated without changing anything.
func (a *Arena) Step() Outcome {
	if a.terminated {
		return OutcomeTerminated
	}
	a.tick++

	newHead := a.heading.offset(a.body.Head(), a.width, a.height)
	a.body.Advance(newHead)

	if a.hasFood && a.food == newHead {
		a.body.Grow()
		a.score++
		a.placeFood()
	}

	if a.body.SelfIntersects() {
		a.terminated = true
		return OutcomeTerminated
	}
	return OutcomeContinuing
}

// placeFood picks a random free cell, or clears the food when the body
// covers the whole board.
func (a *Arena) placeFood() {
	if a.body.Len() >= a.width*a.height {
		a.hasFood = false
		return
	}

	// Len < width*height guarantees at least one free cell.
	for {
		c := Cell{X: a.rng.Intn(a.width), Y: a.rng.Intn(a.height)}
		if !a.body.Occupies(c) {
			a.food = c
			a.hasFood = true
			return
		}
	}
}

// FoodPosition returns the food cell, or false when the board is full.
func (a *Arena) FoodPosition() (Cell, bool) {
	return a.food, a.hasFood
}

// SnakePositions returns the body cells, head first.
func (a *Arena) SnakePositions() []Cell {
	return a.body.Cells()
}

// Heading returns the current direction of travel.
func (a *Arena) Heading() Direction {
	return a.heading
}

// Width returns the board width.
func (a *Arena) Width() int {
	return a.width
}

// Height returns the board height.
func (a *Arena) Height() int {
	return a.height
}

// Len returns the current snake length.
func (a *Arena) Len() int {
	return a.body.Len()
}

// Score returns the number of food cells eaten.
func (a *Arena) Score() int {
	return a.score
}

// Ticks returns the number of steps taken.
func (a *Arena) Ticks() uint64 {
	return a.tick
}

// Terminated reports whether a step has ended the game.
func (a *Arena) Terminated() bool {
	return a.terminated
}

// DebugSnapshot returns a human-readable dump of the arena for diagnostics.
func (a *Arena) DebugSnapshot() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Board: %dx%d, Tick: %d, Score: %d\n", a.width, a.height, a.tick, a.score)
	fmt.Fprintf(&b, "Snake len: %d, Direction: %s, Terminated: %v\n", a.body.Len(), a.heading, a.terminated)

	cells := a.body.Cells()
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.String()
	}
	fmt.Fprintf(&b, "Body: %s\n", strings.Join(parts, " "))

	if a.hasFood {
		fmt.Fprintf(&b, "Food: %s\n", a.food)
	} else {
		b.WriteString("Food: none\n")
	}
	return b.String()
}
