package app

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rajveermalviya/go-webgpu/wgpu"

	"imageviewer/internal/config"
	"imageviewer/internal/diag"
	"imageviewer/internal/gesture"
	"imageviewer/internal/imagecache"
	"imageviewer/internal/imagefile"
	"imageviewer/internal/input"
	"imageviewer/internal/renderer"
	"imageviewer/internal/viewer"
	"imageviewer/internal/viewport"
)

// Title is the window title
const Title = "Image Viewer"

// App owns the window, the GPU resources and the input sources of the viewer
type App struct {
	cfg config.Config
	log *diag.Logger

	window   *glfw.Window
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	renderer *renderer.Renderer
	viewport *viewport.Viewport
	events   *input.Queue
	cache    *imagecache.Cache
	sensor   *gesture.APDS9960

	// framebuffer pixels per window coordinate
	scaleX, scaleY float64

	wg sync.WaitGroup
}

// New loads the image, opens the window and sets up the GPU. It must be
// called from the main goroutine, locked to the main thread.
func New(ctx context.Context, cfg config.Config, log *diag.Logger) (*App, error) {
	app := &App{
		cfg:    cfg,
		log:    log,
		events: input.NewQueue(input.DefaultQueueSize),
	}

	img, err := app.loadImage(ctx)
	if err != nil {
		return nil, err
	}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("GLFW init failed: %w", err)
	}

	if err := app.createWindow(); err != nil {
		glfw.Terminate()
		return nil, err
	}

	fbWidth, fbHeight := app.window.GetFramebufferSize()
	winWidth, winHeight := app.window.GetSize()
	app.scaleX, app.scaleY = 1, 1
	if winWidth > 0 && winHeight > 0 {
		app.scaleX = float64(fbWidth) / float64(winWidth)
		app.scaleY = float64(fbHeight) / float64(winHeight)
	}
	log.Debugf("size: (%d,%d)", fbWidth, fbHeight)

	if err := app.initWebGPU(); err != nil {
		app.Cleanup()
		return nil, err
	}

	app.renderer, err = renderer.NewRenderer(app.adapter, app.device, app.queue, app.surface, uint32(fbWidth), uint32(fbHeight), log)
	if err != nil {
		app.Cleanup()
		return nil, fmt.Errorf("renderer creation failed: %w", err)
	}
	if err := app.renderer.SetImage(img); err != nil {
		app.Cleanup()
		return nil, err
	}

	b := img.Bounds()
	app.viewport = viewport.New(fbWidth, fbHeight, b.Dx(), b.Dy(), cfg.Paging, log)

	app.setupCallbacks()

	return app, nil
}

func (app *App) loadImage(ctx context.Context) (*image.NRGBA, error) {
	if imagecache.IsRemote(app.cfg.ImagePath) {
		cache, err := imagecache.New(app.cfg.CacheDir)
		if err != nil {
			return nil, err
		}
		app.cache = cache
	}

	img, err := imagefile.Open(ctx, app.cfg.ImagePath, app.cache)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	app.log.Debugf("image: %s (%dx%d)", app.cfg.ImagePath, b.Dx(), b.Dy())
	return img, nil
}

func (app *App) initWebGPU() error {
	app.instance = wgpu.CreateInstance(&wgpu.InstanceDescriptor{
		Backends: instanceBackends,
	})
	if app.instance == nil {
		return fmt.Errorf("failed to create WebGPU instance")
	}

	var err error
	app.surface, err = CreateSurface(app.instance, app.window)
	if err != nil {
		return fmt.Errorf("surface creation failed: %w", err)
	}

	// Request adapter - try with surface first, then without
	app.adapter, err = app.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: app.surface,
		PowerPreference:   wgpu.PowerPreference_LowPower,
	})
	if err != nil {
		app.log.Debugf("trying adapter without surface constraint: %v", err)
		app.adapter, err = app.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
			PowerPreference: wgpu.PowerPreference_LowPower,
		})
		if err != nil {
			return fmt.Errorf("adapter request failed: %w", err)
		}
	}

	props := app.adapter.GetProperties()
	app.log.Debugf("GPU: %s (%s)", props.Name, props.DriverDescription)

	app.device, err = app.adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "ImageViewerDevice",
	})
	if err != nil {
		return fmt.Errorf("device request failed: %w", err)
	}

	app.queue = app.device.GetQueue()
	return nil
}

// PollEvents delivers pending window events to the callbacks
func (app *App) PollEvents() {
	glfw.PollEvents()
}

// Run shows the image until a quit action, a window close or the
// cancellation of ctx.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	v := viewer.New(app.events, app.viewport, app.cfg.Reverse, cancel, app.log)

	app.startGestures(ctx, v.Ready())
	if err := app.startWatcher(ctx); err != nil {
		app.log.Printf("Warning: %v", err)
	}
	stopControl, err := app.startControl()
	if err != nil {
		app.log.Printf("Warning: %v", err)
	}

	ticker := time.NewTicker(time.Second / viewer.FrameRate)
	defer ticker.Stop()

	err = v.Run(ctx, app, app.renderer, ticker.C)

	cancel()
	if stopControl != nil {
		stopControl()
	}
	app.wg.Wait()
	return err
}

// Cleanup releases the sensor, GPU resources and window in reverse order of creation
func (app *App) Cleanup() {
	if app.sensor != nil {
		if err := app.sensor.Close(); err != nil {
			app.log.Debugf("closing gesture sensor: %v", err)
		}
	}
	if app.renderer != nil {
		app.renderer.Release()
	}
	if app.queue != nil {
		app.queue.Release()
	}
	if app.device != nil {
		app.device.Release()
	}
	if app.adapter != nil {
		app.adapter.Release()
	}
	if app.surface != nil {
		app.surface.Release()
	}
	if app.instance != nil {
		app.instance.Release()
	}
	if app.window != nil {
		app.window.Destroy()
	}
	glfw.Terminate()
}
