package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the long flag names. Fields absent from the file keep
// the value they had before decoding.
type fileConfig struct {
	Image      string  `json:"image" toml:"image" yaml:"image"`
	Paging     float64 `json:"paging" toml:"paging" yaml:"paging"`
	Size       string  `json:"size" toml:"size" yaml:"size"`
	Fullscreen bool    `json:"fullscreen" toml:"fullscreen" yaml:"fullscreen"`
	Reverse    bool    `json:"reverse" toml:"reverse" yaml:"reverse"`
	Debug      bool    `json:"debug" toml:"debug" yaml:"debug"`
	Quiet      bool    `json:"quiet" toml:"quiet" yaml:"quiet"`
	Watch      bool    `json:"watch" toml:"watch" yaml:"watch"`
	Listen     string  `json:"listen" toml:"listen" yaml:"listen"`
	CacheDir   string  `json:"cache_dir" toml:"cache_dir" yaml:"cache_dir"`
	I2CBus     string  `json:"i2c_bus" toml:"i2c_bus" yaml:"i2c_bus"`
}

// loadFile decodes path according to its extension and merges it into cfg.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	fc := fileConfig{
		Image:      cfg.ImagePath,
		Paging:     cfg.Paging,
		Size:       fmt.Sprintf("%d,%d", cfg.Width, cfg.Height),
		Fullscreen: cfg.Fullscreen,
		Reverse:    cfg.Reverse,
		Debug:      cfg.Debug,
		Quiet:      cfg.Quiet,
		Watch:      cfg.Watch,
		Listen:     cfg.Listen,
		CacheDir:   cfg.CacheDir,
		I2CBus:     cfg.SensorBus,
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &fc)
	case ".toml":
		err = toml.Unmarshal(data, &fc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		return fmt.Errorf("config file %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	w, h, err := ParseSize(fc.Size)
	if err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}

	cfg.ImagePath = fc.Image
	cfg.Paging = fc.Paging
	cfg.Width, cfg.Height = w, h
	cfg.Fullscreen = fc.Fullscreen
	cfg.Reverse = fc.Reverse
	cfg.Debug = fc.Debug
	cfg.Quiet = fc.Quiet
	cfg.Watch = fc.Watch
	cfg.Listen = fc.Listen
	cfg.CacheDir = fc.CacheDir
	cfg.SensorBus = fc.I2CBus
	return nil
}
