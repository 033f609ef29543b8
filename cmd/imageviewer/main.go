package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"imageviewer/internal/app"
	"imageviewer/internal/config"
	"imageviewer/internal/diag"
)

// GLFW calls must come from the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Parse(args)
	if errors.Is(err, config.ErrHelp) {
		fmt.Print(config.Usage())
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		fmt.Fprint(os.Stderr, config.Usage())
		return 2
	}

	log := diag.New(os.Stderr, cfg.Debug, cfg.Quiet)
	log.Debugf("Controls:")
	log.Debugf("  Arrows / gestures : Pan one page")
	log.Debugf("  Mouse drag        : Pan freely")
	log.Debugf("  Escape            : Exit")
	if cfg.File != "" {
		log.Debugf("config file: %s", cfg.File)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer application.Cleanup()

	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
