package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

const description = "Pi Image Viewer"

// flagValues receives the raw command line before it is merged into a Config.
type flagValues struct {
	paging     float64
	size       string
	fullscreen bool
	reverse    bool
	debug      bool
	quiet      bool
	watch      bool
	listen     string
	cacheDir   string
	sensorBus  string
	file       string
	help       bool
}

func newFlagSet(v *flagValues) *pflag.FlagSet {
	fs := pflag.NewFlagSet("imageviewer", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	fs.Float64VarP(&v.paging, "paging", "p", DefaultPaging, "relative amount for paging (e.g. 0.5: half of screen)")
	fs.StringVarP(&v.size, "size", "s", DefaultSize, "size of the viewer W,H (default: maximize window)")
	fs.BoolVarP(&v.fullscreen, "fullscreen", "f", false, "use fullscreen-mode")
	fs.BoolVarP(&v.reverse, "reverse", "r", false, "swap behavior of up/down and left/right")
	fs.BoolVarP(&v.debug, "debug", "d", false, "force debug-mode")
	fs.BoolVarP(&v.quiet, "quiet", "q", false, "don't print messages")
	fs.BoolVarP(&v.watch, "watch", "w", false, "reload the image when the file changes")
	fs.StringVarP(&v.listen, "listen", "l", "", "address of the remote control server (e.g. :8080)")
	fs.StringVar(&v.cacheDir, "cache-dir", DefaultCacheDir, "directory for downloaded images")
	fs.StringVar(&v.sensorBus, "i2c-bus", "", "I2C bus of the gesture sensor (default: first bus)")
	fs.StringVarP(&v.file, "config", "c", "", "read settings from a .json, .toml or .yaml file")
	fs.BoolVarP(&v.help, "help", "h", false, "print this help")
	return fs
}

// Usage returns the help text.
func Usage() string {
	var b strings.Builder
	b.WriteString("usage: imageviewer [options] image\n\n")
	b.WriteString(description + "\n\n")
	b.WriteString("positional arguments:\n")
	b.WriteString("  image    path or http(s) URL of the image\n\n")
	b.WriteString("options:\n")
	b.WriteString(newFlagSet(&flagValues{}).FlagUsages())
	return b.String()
}

// Parse builds the configuration from command line arguments (without the
// program name). Values come from the defaults, then the config file given
// with -c, then flags set explicitly on the command line.
func Parse(args []string) (Config, error) {
	var v flagValues
	fs := newFlagSet(&v)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if v.help {
		return Config{}, ErrHelp
	}

	cfg := DefaultConfig()
	if v.file != "" {
		if err := loadFile(v.file, &cfg); err != nil {
			return Config{}, err
		}
		cfg.File = v.file
	}

	switch rest := fs.Args(); len(rest) {
	case 0:
	case 1:
		cfg.ImagePath = rest[0]
	default:
		return Config{}, fmt.Errorf("unrecognized arguments: %s", strings.Join(rest[1:], " "))
	}

	if fs.Changed("paging") {
		cfg.Paging = v.paging
	}
	if fs.Changed("size") {
		w, h, err := ParseSize(v.size)
		if err != nil {
			return Config{}, err
		}
		cfg.Width, cfg.Height = w, h
	}
	if fs.Changed("fullscreen") {
		cfg.Fullscreen = v.fullscreen
	}
	if fs.Changed("reverse") {
		cfg.Reverse = v.reverse
	}
	if fs.Changed("debug") {
		cfg.Debug = v.debug
	}
	if fs.Changed("quiet") {
		cfg.Quiet = v.quiet
	}
	if fs.Changed("watch") {
		cfg.Watch = v.watch
	}
	if fs.Changed("listen") {
		cfg.Listen = v.listen
	}
	if fs.Changed("cache-dir") {
		cfg.CacheDir = v.cacheDir
	}
	if fs.Changed("i2c-bus") {
		cfg.SensorBus = v.sensorBus
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
