package input

import "image"

// EventKind identifies the payload of an Event.
type EventKind int

const (
	EventKeyPress EventKind = iota
	EventMousePress
	EventMouseRelease
	EventMouseMove
	EventClose
	EventAction
	EventImage
)

// Event is one entry of the input queue.
type Event struct {
	Kind EventKind

	Key    Key
	Action Action

	// Pointer position in viewport pixels
	X, Y float64

	// Image is a freshly decoded replacement for the displayed image
	Image *image.NRGBA
}

// KeyPress returns a key press event.
func KeyPress(k Key) Event {
	return Event{Kind: EventKeyPress, Key: k}
}

// MousePress returns a button press at (x, y).
func MousePress(x, y float64) Event {
	return Event{Kind: EventMousePress, X: x, Y: y}
}

// MouseRelease returns a button release.
func MouseRelease() Event {
	return Event{Kind: EventMouseRelease}
}

// MouseMove returns a pointer motion to (x, y).
func MouseMove(x, y float64) Event {
	return Event{Kind: EventMouseMove, X: x, Y: y}
}

// Close returns a window close request.
func Close() Event {
	return Event{Kind: EventClose}
}

// ActionEvent returns an event carrying an action directly, bypassing the key mapping.
func ActionEvent(a Action) Event {
	return Event{Kind: EventAction, Action: a}
}

// ImageEvent returns an event replacing the displayed image.
func ImageEvent(img *image.NRGBA) Event {
	return Event{Kind: EventImage, Image: img}
}
