package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPaging   = 0.5
	DefaultSize     = "0,0"
	DefaultCacheDir = ".image_cache"
)

var (
	// ErrHelp is returned by Parse when -h/--help was given.
	ErrHelp = errors.New("help requested")

	// ErrNoImage is returned when neither the command line nor the config file names an image.
	ErrNoImage = errors.New("image path required")
)

// Config holds the viewer settings. It is built once at startup and passed by value.
type Config struct {
	// ImagePath is a local path or an http(s) URL
	ImagePath string

	// Paging is the fraction of the viewport moved per discrete pan
	Paging float64

	// Width and Height of the viewport; 0 means "size of the display" on that axis
	Width  int
	Height int

	Fullscreen bool
	Reverse    bool
	Debug      bool
	Quiet      bool

	// Watch reloads the image when the file changes
	Watch bool

	// Listen is the address of the remote control server, empty to disable
	Listen string

	// CacheDir holds downloaded images
	CacheDir string

	// SensorBus names the I2C bus of the gesture sensor, empty for the first one
	SensorBus string

	// File is the config file the values were read from, if any
	File string
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Paging:   DefaultPaging,
		CacheDir: DefaultCacheDir,
	}
}

// Maximized reports whether the window should cover the whole display.
func (c Config) Maximized() bool {
	return c.Width == 0 && c.Height == 0
}

// Validate checks the values that cannot be enforced by the flag types.
func (c Config) Validate() error {
	if c.ImagePath == "" {
		return ErrNoImage
	}
	if math.IsNaN(c.Paging) || math.IsInf(c.Paging, 0) || c.Paging <= 0 {
		return fmt.Errorf("paging must be a positive number, got %v", c.Paging)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("size must not be negative, got %d,%d", c.Width, c.Height)
	}
	return nil
}

// ParseSize parses a "W,H" viewport size.
func ParseSize(s string) (w, h int, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q: want W,H", s)
	}
	w, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size width %q: %w", parts[0], err)
	}
	h, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size height %q: %w", parts[1], err)
	}
	if w < 0 || h < 0 {
		return 0, 0, fmt.Errorf("invalid size %q: values must not be negative", s)
	}
	return w, h, nil
}
