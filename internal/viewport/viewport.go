package viewport

import (
	"fmt"

	"imageviewer/internal/diag"
)

// Direction of a discrete pan. The name describes where the view moves,
// the image moves the opposite way.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Rect is the image rectangle relative to the viewport's top-left corner.
// W and H are the natural size of the image.
type Rect struct {
	X, Y float64
	W, H int
}

func (r Rect) String() string {
	return fmt.Sprintf("(x,y,w,h): (%g,%g,%d,%d)", r.X, r.Y, r.W, r.H)
}

// Viewport owns the image offset inside a fixed visible area
type Viewport struct {
	// Viewport dimensions
	Width  int
	Height int

	// Fraction of the viewport moved per discrete pan
	Paging float64

	Image Rect

	// Drag state
	isDragging bool
	lastDragX  float64
	lastDragY  float64

	log *diag.Logger
}

// New creates a viewport with the image's top-left corner on the viewport's top-left corner
func New(width, height, imageWidth, imageHeight int, paging float64, log *diag.Logger) *Viewport {
	return &Viewport{
		Width:  width,
		Height: height,
		Paging: paging,
		Image:  Rect{W: imageWidth, H: imageHeight},
		log:    log,
	}
}

// Offset returns the current position of the image
func (v *Viewport) Offset() (x, y float64) {
	return v.Image.X, v.Image.Y
}

// SetImageSize replaces the image size after a reload. The offset is reset
// when the size changed.
func (v *Viewport) SetImageSize(width, height int) {
	if v.Image.W == width && v.Image.H == height {
		return
	}
	v.Image = Rect{W: width, H: height}
}

// Pan moves the view one page in the given direction and returns the delta
// applied to the image offset.
func (v *Viewport) Pan(dir Direction) (dx, dy float64) {
	v.log.Debugf("img: %s", v.Image)
	x, y := v.Image.X, v.Image.Y
	switch dir {
	case Right:
		v.Image.X = v.panRight()
		dx = v.Image.X - x
		v.log.Debugf("vx: %g", dx)
	case Left:
		v.Image.X = v.panLeft()
		dx = v.Image.X - x
		v.log.Debugf("vx: %g", dx)
	case Up:
		v.Image.Y = v.panUp()
		dy = v.Image.Y - y
		v.log.Debugf("vy: %g", dy)
	case Down:
		v.Image.Y = v.panDown()
		dy = v.Image.Y - y
		v.log.Debugf("vy: %g", dy)
	}
	v.log.Debugf("img: %s", v.Image)
	return dx, dy
}

// panRight moves the image left by one page. The image's right edge stops
// at the viewport's right edge, even when that moves a narrow image right.
func (v *Viewport) panRight() float64 {
	limit := float64(v.Width - v.Image.W)
	x := v.Image.X - v.Paging*float64(v.Width)
	if x < limit {
		x = limit
	}
	return x
}

// panLeft moves the image right by one page, stopping at the left edge.
func (v *Viewport) panLeft() float64 {
	x := v.Image.X + v.Paging*float64(v.Width)
	if x > 0 {
		x = 0
	}
	return x
}

// panUp moves the image down by one page, stopping at the top edge.
func (v *Viewport) panUp() float64 {
	y := v.Image.Y + v.Paging*float64(v.Height)
	if y > 0 {
		y = 0
	}
	return y
}

// panDown moves the image up by one page. The image's bottom edge stops at
// the viewport's bottom edge.
func (v *Viewport) panDown() float64 {
	limit := float64(v.Height - v.Image.H)
	y := v.Image.Y - v.Paging*float64(v.Height)
	if y < limit {
		y = limit
	}
	return y
}

// StartDrag begins a drag operation
func (v *Viewport) StartDrag(x, y float64) {
	v.isDragging = true
	v.lastDragX = x
	v.lastDragY = y
}

// Drag moves the image by the pointer movement since the last call.
// Dragging is free positioning and is not clamped.
func (v *Viewport) Drag(x, y float64) {
	if !v.isDragging {
		return
	}

	v.Image.X += x - v.lastDragX
	v.Image.Y += y - v.lastDragY

	v.lastDragX = x
	v.lastDragY = y
}

// EndDrag ends a drag operation
func (v *Viewport) EndDrag() {
	v.isDragging = false
}

// IsDragging returns whether a drag is in progress
func (v *Viewport) IsDragging() bool {
	return v.isDragging
}
