package core

// Action is a semantic player intent, abstracted from physical keys.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // W, Up arrow
	ActionDown             // S, Down arrow
	ActionLeft             // A, Left arrow
	ActionRight            // D, Right arrow
	ActionPlayPause        // Space: start, pause or resume
	ActionReset            // R
	ActionHistory          // H: toggle score history
	ActionBack             // Esc, B
	ActionQuit             // Q, Ctrl+C
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
	case ActionPlayPause:
		return "PlayPause"
	case ActionReset:
		return "Reset"
	case ActionHistory:
		return "History"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsMovement reports whether the action steers the snake.
func (a Action) IsMovement() bool {
	return a >= ActionUp && a <= ActionRight
}
