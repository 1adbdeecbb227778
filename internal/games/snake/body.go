package snake

import "fmt"

// Cell is a single board coordinate.
type Cell struct {
	X, Y int
}

// String returns the cell as "(x, y)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Body is the ordered sequence of cells occupied by the snake, head first.
// It is a ring buffer so that pushing a new head and dropping the tail are
// both O(1); growth doubles the backing array.
type Body struct {
	cells []Cell
	head  int // Index of the head in cells
	n     int // Number of occupied slots
}

// NewBody lays out length cells starting at head and extending toward lower x,
// one step apart. Cells that would fall left of x=0 wrap to the right edge of
// a board of the given width, so every cell is distinct as long as
// length <= width.
//
// NewBody panics if length < 1 or length > width.
func NewBody(head Cell, length, width int) *Body {
	if length < 1 {
		panic(fmt.Sprintf("snake: body length must be positive, got %d", length))
	}
	if length > width {
		panic(fmt.Sprintf("snake: body length %d does not fit in row of width %d", length, width))
	}

	b := &Body{
		cells: make([]Cell, nextCapacity(length)),
		n:     length,
	}
	for i := range length {
		x := (head.X - i) % width
		if x < 0 {
			x += width
		}
		b.cells[i] = Cell{X: x, Y: head.Y}
	}
	return b
}

// nextCapacity returns the smallest power of two >= n (minimum 4).
func nextCapacity(n int) int {
	c := 4
	for c < n {
		c *= 2
	}
	return c
}

// index maps a logical position (0 = head) to a slot in the backing array.
func (b *Body) index(i int) int {
	return (b.head + i) % len(b.cells)
}

// Len returns the number of cells in the body.
func (b *Body) Len() int {
	return b.n
}

// Head returns the foremost cell.
func (b *Body) Head() Cell {
	return b.cells[b.head]
}

// Tail returns the rearmost cell.
func (b *Body) Tail() Cell {
	return b.cells[b.index(b.n-1)]
}

// At returns the i-th cell counting from the head.
func (b *Body) At(i int) Cell {
	if i < 0 || i >= b.n {
		panic(fmt.Sprintf("snake: body index %d out of range [0, %d)", i, b.n))
	}
	return b.cells[b.index(i)]
}

// Advance pushes newHead to the front and drops the rearmost cell.
func (b *Body) Advance(newHead Cell) {
	b.head = (b.head - 1 + len(b.cells)) % len(b.cells)
	b.cells[b.head] = newHead
	// The old tail now falls outside the window, so n is unchanged.
}

// Grow duplicates the rearmost cell, extending the body by one.
func (b *Body) Grow() {
	tail := b.Tail()
	if b.n == len(b.cells) {
		b.resize(len(b.cells) * 2)
	}
	b.cells[b.index(b.n)] = tail
	b.n++
}

// resize copies the body into a new backing array with the head at slot 0.
func (b *Body) resize(capacity int) {
	cells := make([]Cell, capacity)
	for i := range b.n {
		cells[i] = b.cells[b.index(i)]
	}
	b.cells = cells
	b.head = 0
}

// Occupies reports whether any cell of the body equals c.
func (b *Body) Occupies(c Cell) bool {
	for i := range b.n {
		if b.cells[b.index(i)] == c {
			return true
		}
	}
	return false
}

// SelfIntersects reports whether the head shares its cell with any other
// part of the body.
func (b *Body) SelfIntersects() bool {
	head := b.Head()
	for i := 1; i < b.n; i++ {
		if b.cells[b.index(i)] == head {
			return true
		}
	}
	return false
}

// Cells returns a head-first copy of the body.
func (b *Body) Cells() []Cell {
	out := make([]Cell, b.n)
	for i := range b.n {
		out[i] = b.cells[b.index(i)]
	}
	return out
}
