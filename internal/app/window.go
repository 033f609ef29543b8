package app

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"imageviewer/internal/input"
)

// createWindow opens a fixed-size window. A zero width or height takes the
// display's size on that axis; with both zero the window is maximized.
func (app *App) createWindow() error {
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return fmt.Errorf("no display found")
	}
	mode := monitor.GetVideoMode()

	width, height := app.cfg.Width, app.cfg.Height
	if width == 0 {
		width = mode.Width
	}
	if height == 0 {
		height = mode.Height
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.CocoaRetinaFramebuffer, glfw.True)
	if app.cfg.Maximized() && !app.cfg.Fullscreen {
		glfw.WindowHint(glfw.Maximized, glfw.True)
	}

	var fullscreen *glfw.Monitor
	if app.cfg.Fullscreen {
		fullscreen = monitor
		glfw.WindowHint(glfw.RefreshRate, mode.RefreshRate)
	}

	window, err := glfw.CreateWindow(width, height, Title, fullscreen, nil)
	if err != nil {
		return fmt.Errorf("window creation failed: %w", err)
	}
	app.window = window
	return nil
}

func (app *App) setupCallbacks() {
	app.window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		if width == 0 || height == 0 {
			return
		}
		app.log.Debugf("size: (%d,%d)", width, height)
		app.viewport.Width = width
		app.viewport.Height = height
		if err := app.renderer.Resize(uint32(width), uint32(height)); err != nil {
			app.log.Printf("Warning: %v", err)
		}
	})

	app.window.SetCloseCallback(func(w *glfw.Window) {
		app.events.Post(input.Close())
	})

	app.window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		if k := mapKey(key); k != input.KeyUnknown {
			app.events.Post(input.KeyPress(k))
		}
	})

	app.window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		switch action {
		case glfw.Press:
			x, y := w.GetCursorPos()
			app.events.Post(input.MousePress(x*app.scaleX, y*app.scaleY))
		case glfw.Release:
			app.events.Post(input.MouseRelease())
		}
	})

	app.window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		app.events.Post(input.MouseMove(x*app.scaleX, y*app.scaleY))
	})
}

func mapKey(key glfw.Key) input.Key {
	switch key {
	case glfw.KeyLeft:
		return input.KeyLeft
	case glfw.KeyRight:
		return input.KeyRight
	case glfw.KeyUp:
		return input.KeyUp
	case glfw.KeyDown:
		return input.KeyDown
	case glfw.KeyEscape:
		return input.KeyEscape
	}
	return input.KeyUnknown
}
