package input

// Key is a raw key independent of the windowing library.
type Key int

const (
	KeyUnknown Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyEscape
)

var keyNames = map[Key]string{
	KeyUnknown: "unknown",
	KeyLeft:    "left",
	KeyRight:   "right",
	KeyUp:      "up",
	KeyDown:    "down",
	KeyEscape:  "escape",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return keyNames[KeyUnknown]
}
