package core

// Action is a semantic host action, abstracted from physical key presses,
// button taps and swipes.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionPause
	ActionRestart
	ActionQuit
	ActionBack
)

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
	case ActionBack:
		return "Back"
	default:
		return "Unknown"
	}
}

// Direction maps a movement action to its direction.
// The second result is false for actions that do not steer.
func (a Action) Direction() (Direction, bool) {
	switch a {
	case ActionUp:
		return DirUp, true
	case ActionDown:
		return DirDown, true
	case ActionLeft:
		return DirLeft, true
	case ActionRight:
		return DirRight, true
	}
	return DirRight, false
}

// MinSwipeDistance is the shortest drag, in cells, recognized as a swipe.
const MinSwipeDistance = 2

// SwipeAction translates a drag vector into one steering action along its
// dominant axis. Short or perfectly diagonal drags yield ActionNone.
func SwipeAction(dx, dy int) Action {
	ax, ay := abs(dx), abs(dy)
	if max(ax, ay) < MinSwipeDistance || ax == ay {
		return ActionNone
	}
	if ax > ay {
		if dx > 0 {
			return ActionRight
		}
		return ActionLeft
	}
	if dy > 0 {
		return ActionDown
	}
	return ActionUp
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
