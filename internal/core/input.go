package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow
	ActionDown           // S, J, Down arrow
	ActionLeft           // A, H, Left arrow
	ActionRight          // D, L, Right arrow
	ActionPause          // P, Esc
	ActionRestart        // R, after game over
	ActionQuit           // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered between two simulation ticks.
// Directional actions keep their arrival order so that two quick turns
// within one tick are both applied.
type InputFrame struct {
	actions map[Action]bool
	turns   []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.actions == nil {
		f.actions = make(map[Action]bool)
	}
	f.actions[a] = true
	if a.IsDirection() {
		f.turns = append(f.turns, a)
	}
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.actions[a]
}

// Turns returns the directional actions in the order they arrived.
func (f InputFrame) Turns() []Action {
	return f.turns
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.actions)
	f.turns = f.turns[:0]
}

// IsDirection reports whether a is one of the four movement actions.
func (a Action) IsDirection() bool {
	return a == ActionUp || a == ActionDown || a == ActionLeft || a == ActionRight
}
