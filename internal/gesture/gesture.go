package gesture

import (
	"fmt"

	"imageviewer/internal/input"
)

// Code is a discrete gesture reported by the sensor driver.
type Code uint8

const (
	None Code = iota
	Up
	Down
	Left
	Right
)

func (c Code) String() string {
	switch c {
	case None:
		return "none"
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Code(%d)", uint8(c))
}

// Key returns the direction key a gesture stands for. No gesture quits.
func (c Code) Key() (input.Key, bool) {
	switch c {
	case Up:
		return input.KeyUp, true
	case Down:
		return input.KeyDown, true
	case Left:
		return input.KeyLeft, true
	case Right:
		return input.KeyRight, true
	}
	return input.KeyUnknown, false
}

// Sensor returns the most recent gesture, or None.
type Sensor interface {
	Gesture() (Code, error)
}
