// Package viewer runs the frame loop: it drains the input queue, applies
// the events to the viewport and renders the image at the current offset.
package viewer

import (
	"context"
	"image"
	"time"

	"imageviewer/internal/diag"
	"imageviewer/internal/input"
	"imageviewer/internal/viewport"
)

// FrameRate is the target number of frames per second.
const FrameRate = 30

// EventPump lets the windowing system deliver its pending events, which its
// callbacks post into the queue.
type EventPump interface {
	PollEvents()
}

// Renderer draws the image at an offset.
type Renderer interface {
	SetImage(img *image.NRGBA) error
	Render(x, y float64) error
}

// Viewer owns the loop state. It is used from a single goroutine.
type Viewer struct {
	queue      *input.Queue
	viewport   *viewport.Viewport
	dispatcher *input.Dispatcher
	log        *diag.Logger
	ready      chan struct{}
	frames     int
}

// New creates a viewer. Quit actions call cancel, which ends Run after the
// current frame.
func New(queue *input.Queue, vp *viewport.Viewport, reverse bool, cancel context.CancelFunc, log *diag.Logger) *Viewer {
	return &Viewer{
		queue:      queue,
		viewport:   vp,
		dispatcher: input.NewDispatcher(vp, reverse, cancel, log),
		log:        log,
		ready:      make(chan struct{}),
	}
}

// Ready is closed once the loop has started.
func (v *Viewer) Ready() <-chan struct{} {
	return v.ready
}

// Frames returns the number of frames rendered so far.
func (v *Viewer) Frames() int {
	return v.frames
}

// Run loops until ctx is done. Each iteration pumps window events, applies
// every queued event, renders one frame and waits for the next tick.
func (v *Viewer) Run(ctx context.Context, pump EventPump, r Renderer, tick <-chan time.Time) error {
	close(v.ready)
	v.log.Debugf("main loop started")

	for ctx.Err() == nil {
		pump.PollEvents()
		v.handleEvents(r)

		x, y := v.viewport.Offset()
		if err := r.Render(x, y); err != nil {
			v.log.Printf("Warning: render failed: %v", err)
		}
		v.frames++

		select {
		case <-tick:
		case <-ctx.Done():
		}
	}

	v.log.Debugf("main loop stopped after %d frames", v.frames)
	return nil
}

func (v *Viewer) handleEvents(r Renderer) {
	for _, ev := range v.queue.Drain() {
		if v.dispatcher.Handle(ev) {
			continue
		}
		if ev.Kind == input.EventImage && ev.Image != nil {
			if err := r.SetImage(ev.Image); err != nil {
				v.log.Printf("Warning: image reload failed: %v", err)
				continue
			}
			b := ev.Image.Bounds()
			v.viewport.SetImageSize(b.Dx(), b.Dy())
		}
	}
}
