package snake

// Direction is the snake's heading.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Outcome is the result of a single Step.
type Outcome int

const (
	OutcomeContinuing Outcome = iota
	OutcomeTerminated
)

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return d
	}
}

// offset moves c one cell in direction d on a width x height board,
// wrapping at the edges.
func (d Direction) offset(c Cell, width, height int) Cell {
	switch d {
	case DirUp:
		if c.Y == 0 {
			c.Y = height - 1
		} else {
			c.Y--
		}
	case DirDown:
		if c.Y == height-1 {
			c.Y = 0
		} else {
			c.Y++
		}
	case DirLeft:
		if c.X == 0 {
			c.X = width - 1
		} else {
			c.X--
		}
	case DirRight:
		if c.X == width-1 {
			c.X = 0
		} else {
			c.X++
		}
	}
	return c
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

func (o Outcome) String() string {
	switch o {
	case OutcomeContinuing:
		return "continuing"
	case OutcomeTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}
