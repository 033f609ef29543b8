package gesture

import (
	"context"
	"time"

	"imageviewer/internal/diag"
	"imageviewer/internal/input"
)

// DefaultInterval is the delay between two sensor reads.
const DefaultInterval = 100 * time.Millisecond

// Poller reads a Sensor periodically and posts recognized gestures as key
// presses, so gestures follow the same mapping as the keyboard.
type Poller struct {
	sensor   Sensor
	queue    input.Poster
	interval time.Duration
	waitLog  time.Duration
	log      *diag.Logger
}

// NewPoller creates a poller reading sensor every interval.
func NewPoller(sensor Sensor, queue input.Poster, interval time.Duration, log *diag.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		sensor:   sensor,
		queue:    queue,
		interval: interval,
		waitLog:  time.Second,
		log:      log,
	}
}

// Run waits until ready is closed, then polls the sensor until ctx is done.
// A read error stops polling and is returned; the caller decides whether it
// is fatal.
func (p *Poller) Run(ctx context.Context, ready <-chan struct{}) error {
	if !p.waitReady(ctx, ready) {
		return nil
	}
	p.log.Debugf("gesture poller: running")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Debugf("gesture poller: stopped")
			return nil
		case <-ticker.C:
		}

		code, err := p.sensor.Gesture()
		if err != nil {
			p.log.Printf("Warning: gesture sensor read failed: %v", err)
			return err
		}
		if code == None {
			continue
		}

		p.log.Debugf("gesture poller: gesture: %d (%s)", uint8(code), code)
		key, ok := code.Key()
		if !ok {
			continue
		}
		if !p.queue.Post(input.KeyPress(key)) {
			p.log.Debugf("event queue full, dropped gesture %s", code)
		}
	}
}

func (p *Poller) waitReady(ctx context.Context, ready <-chan struct{}) bool {
	t := time.NewTicker(p.waitLog)
	defer t.Stop()
	for {
		select {
		case <-ready:
			return true
		case <-ctx.Done():
			return false
		case <-t.C:
			p.log.Debugf("gesture poller: waiting for main loop")
		}
	}
}
