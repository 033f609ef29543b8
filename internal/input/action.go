package input

import (
	"fmt"

	"imageviewer/internal/viewport"
)

// Action is what the viewer does in response to input.
type Action int

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	case ActionQuit:
		return "quit"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction returns the action with the given name.
func ParseAction(name string) (Action, bool) {
	for a := ActionLeft; a <= ActionQuit; a++ {
		if a.String() == name {
			return a, true
		}
	}
	return ActionNone, false
}

// Direction returns the pan direction of a, if it is a pan.
func (a Action) Direction() (viewport.Direction, bool) {
	switch a {
	case ActionLeft:
		return viewport.Left, true
	case ActionRight:
		return viewport.Right, true
	case ActionUp:
		return viewport.Up, true
	case ActionDown:
		return viewport.Down, true
	}
	return 0, false
}

// ActionFor maps a key to an action. Reverse swaps left/right and up/down
// but leaves the quit key alone.
func ActionFor(k Key, reverse bool) Action {
	switch k {
	case KeyEscape:
		return ActionQuit
	case KeyLeft:
		if reverse {
			return ActionRight
		}
		return ActionLeft
	case KeyRight:
		if reverse {
			return ActionLeft
		}
		return ActionRight
	case KeyUp:
		if reverse {
			return ActionDown
		}
		return ActionUp
	case KeyDown:
		if reverse {
			return ActionUp
		}
		return ActionDown
	}
	return ActionNone
}
