// Package config loads chartgeo settings from TOML or YAML files.
//
// The file format is chosen by extension (.toml, .yaml, .yml). Values that
// are absent from the file keep their [Default]. Environment variables of
// the form $VAR or ${VAR} are expanded before parsing, which lets deployments
// keep the Redis address out of the file:
//
//	[cache]
//	redis_addr = "${CHARTGEO_REDIS}"
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/chartgeo/pkg/chart/gauge"
	"github.com/matzehuels/chartgeo/pkg/chart/radar"
	"github.com/matzehuels/chartgeo/pkg/errors"
	"github.com/matzehuels/chartgeo/pkg/geom"
	"github.com/matzehuels/chartgeo/pkg/widget"
)

const appName = "chartgeo"

// Config is the root configuration document.
type Config struct {
	Canvas  Canvas   `toml:"canvas" yaml:"canvas"`
	Palette []string `toml:"palette" yaml:"palette"`
	Gauge   Gauge    `toml:"gauge" yaml:"gauge"`
	Radar   Radar    `toml:"radar" yaml:"radar"`
	Cache   Cache    `toml:"cache" yaml:"cache"`
	Server  Server   `toml:"server" yaml:"server"`
}

// Canvas is the pixel frame used by charts that lay out in pixel space.
type Canvas struct {
	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`
}

// Gauge holds gauge defaults.
type Gauge struct {
	Splits int `toml:"splits" yaml:"splits"`
}

// Radar holds radar defaults.
type Radar struct {
	Levels int `toml:"levels" yaml:"levels"`
}

// Cache selects and tunes the cache backend. RedisAddr takes precedence
// over Dir; Disabled turns caching off entirely.
type Cache struct {
	Dir       string `toml:"dir" yaml:"dir"`
	RedisAddr string `toml:"redis_addr" yaml:"redis_addr"`
	Prefix    string `toml:"prefix" yaml:"prefix"`
	TTL       string `toml:"ttl" yaml:"ttl"`
	Disabled  bool   `toml:"disabled" yaml:"disabled"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr" yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Canvas:  Canvas{Width: 800, Height: 600},
		Palette: append([]string(nil), geom.DefaultPaletteHex...),
		Gauge:   Gauge{Splits: 5},
		Radar:   Radar{Levels: 5},
		Server:  Server{Addr: ":8080"},
	}
}

// Load reads path on top of [Default]. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.New(errors.ErrCodeNotFound, "config file not found: %s", path)
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Decode(data, filepath.Ext(path), &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Decode parses data in the format named by ext into cfg. Fields missing
// from data are left untouched.
func Decode(data []byte, ext string, cfg *Config) error {
	data = []byte(os.ExpandEnv(string(data)))

	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse toml")
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse yaml")
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}
	return nil
}

// Validate checks value ranges and formats.
func (c Config) Validate() error {
	if err := errors.ValidateDimension("canvas.width", c.Canvas.Width); err != nil {
		return err
	}
	if err := errors.ValidateDimension("canvas.height", c.Canvas.Height); err != nil {
		return err
	}
	if _, err := geom.ParsePalette(c.Palette); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "palette")
	}
	if c.Gauge.Splits < 0 || c.Radar.Levels < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "gauge.splits and radar.levels must not be negative")
	}
	if err := errors.ValidateCount("gauge.splits", c.Gauge.Splits, gauge.MaxSplits); err != nil {
		return err
	}
	if err := errors.ValidateCount("radar.levels", c.Radar.Levels, radar.MaxLevels); err != nil {
		return err
	}
	if _, err := c.Cache.TTLDuration(); err != nil {
		return err
	}
	return nil
}

// Settings converts the chart sections into widget settings.
func (c Config) Settings() (widget.Settings, error) {
	pal, err := geom.ParsePalette(c.Palette)
	if err != nil {
		return widget.Settings{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "palette")
	}
	return widget.Settings{
		Palette:     pal,
		Canvas:      geom.Frame{Width: c.Canvas.Width, Height: c.Canvas.Height},
		GaugeSplits: c.Gauge.Splits,
		RadarLevels: c.Radar.Levels,
	}, nil
}

// TTLDuration parses TTL. Zero means the per-stage defaults apply.
func (c Cache) TTLDuration() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil || d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "cache.ttl: invalid duration %q", c.TTL)
	}
	return d, nil
}

// CacheDir returns Dir, or the XDG cache directory (~/.cache/chartgeo/)
// when Dir is empty.
func (c Cache) CacheDir() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
