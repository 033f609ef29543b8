package app

import (
	"context"
	"fmt"

	"imageviewer/internal/control"
	"imageviewer/internal/gesture"
	"imageviewer/internal/imagecache"
	"imageviewer/internal/watch"
)

// startGestures probes the gesture sensor and polls it in the background.
// A missing sensor only disables gesture input.
func (app *App) startGestures(ctx context.Context, ready <-chan struct{}) {
	sensor, err := gesture.OpenAPDS9960(app.cfg.SensorBus)
	if err != nil {
		app.log.Printf("Warning: could not detect APDS9960")
		app.log.Debugf("gesture sensor: %v", err)
		return
	}
	app.sensor = sensor
	app.log.Debugf("gesture sensor: %s", sensor)

	p := gesture.NewPoller(sensor, app.events, gesture.DefaultInterval, app.log)
	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		p.Run(ctx, ready)
	}()
}

func (app *App) startWatcher(ctx context.Context) error {
	if !app.cfg.Watch {
		return nil
	}
	if imagecache.IsRemote(app.cfg.ImagePath) {
		return fmt.Errorf("cannot watch remote image %s", app.cfg.ImagePath)
	}

	w, err := watch.New(app.cfg.ImagePath, app.events, app.log)
	if err != nil {
		return err
	}
	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		w.Run(ctx)
	}()
	return nil
}

// startControl starts the remote control server and returns its stop function.
func (app *App) startControl() (func(), error) {
	if app.cfg.Listen == "" {
		return nil, nil
	}

	s := control.NewServer(app.events, app.cfg.Listen, app.log)
	if err := s.Start(); err != nil {
		return nil, err
	}
	return func() {
		if err := s.Stop(); err != nil {
			app.log.Debugf("stopping control server: %v", err)
		}
	}, nil
}
