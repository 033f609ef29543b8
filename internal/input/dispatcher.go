package input

import (
	"imageviewer/internal/diag"
	"imageviewer/internal/viewport"
)

// Target is the viewport state driven by input.
type Target interface {
	Pan(dir viewport.Direction) (dx, dy float64)
	StartDrag(x, y float64)
	Drag(x, y float64)
	EndDrag()
	IsDragging() bool
}

// Dispatcher turns queued events into viewport changes.
type Dispatcher struct {
	target  Target
	reverse bool
	quit    func()
	log     *diag.Logger
}

// NewDispatcher creates a dispatcher. quit is called for every quit action
// and must be safe to call more than once.
func NewDispatcher(target Target, reverse bool, quit func(), log *diag.Logger) *Dispatcher {
	return &Dispatcher{
		target:  target,
		reverse: reverse,
		quit:    quit,
		log:     log,
	}
}

// Handle applies ev and reports whether it was an input event.
func (d *Dispatcher) Handle(ev Event) bool {
	switch ev.Kind {
	case EventKeyPress:
		d.Apply(ActionFor(ev.Key, d.reverse))
	case EventAction:
		d.Apply(ev.Action)
	case EventClose:
		d.Apply(ActionQuit)
	case EventMousePress:
		d.target.StartDrag(ev.X, ev.Y)
	case EventMouseRelease:
		d.target.EndDrag()
	case EventMouseMove:
		if d.target.IsDragging() {
			d.target.Drag(ev.X, ev.Y)
		}
	default:
		return false
	}
	return true
}

// Apply performs a single action.
func (d *Dispatcher) Apply(a Action) {
	if a == ActionQuit {
		d.log.Debugf("quit")
		d.quit()
		return
	}
	if dir, ok := a.Direction(); ok {
		d.target.Pan(dir)
	}
}
