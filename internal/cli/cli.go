// Package cli implements the chartgeo command-line interface.
//
// Commands read chart requests from JSON files of the form
//
//	{"kind": "gauge", "data": {...}, "options": {...}}
//
// and run them through the layout and render pipeline. Layouts and
// artifacts are cached locally (or in Redis when configured), so repeated
// runs on unchanged input are instant.
//
// # Commands
//
//   - layout: compute geometry and write it as a JSON envelope
//   - render: write SVG, JSON, DOT or flow SVG artifacts
//   - hit: report the chart element under a point
//   - kinds: list the supported chart kinds
//   - browse: pick a request file interactively and render it
//   - serve: run the HTTP API
//   - cache: inspect or clear the cache
//
// All commands accept --verbose (-v) for debug logging and --config to load
// a TOML or YAML settings file.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartgeo/pkg/buildinfo"
	"github.com/matzehuels/chartgeo/pkg/cache"
	"github.com/matzehuels/chartgeo/pkg/config"
	"github.com/matzehuels/chartgeo/pkg/pipeline"
	"github.com/matzehuels/chartgeo/pkg/widget"
)

// appName is the application name used for directories and display.
const appName = "chartgeo"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	out        io.Writer
	configPath string
}

// New creates a new CLI instance with a default logger and configuration.
// Command output goes to stdout; log output to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "chartgeo computes chart geometry",
		Long:         `chartgeo turns chart data (gauges, radars, candlesticks, funnels, heatmaps, sankeys and liquid fills) into drawable geometry and renders it as SVG, JSON or Graphviz output.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.out = cmd.OutOrStdout()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (.toml, .yaml or .yml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.hitCommand())
	root.AddCommand(c.kindsCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	if c.configPath == "" {
		return nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", c.configPath)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner from the loaded configuration.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	settings, err := c.Config.Settings()
	if err != nil {
		return nil, err
	}
	ttl, err := c.Config.Cache.TTLDuration()
	if err != nil {
		return nil, err
	}
	cc, keyer, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}

	r := pipeline.NewRunner(cc, keyer, widget.Default(settings), c.Logger)
	r.TTL = ttl
	return r, nil
}

// newCache opens the configured cache backend. A FileCache that cannot be
// created degrades to no caching with a warning.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, cache.Keyer, error) {
	cfg := c.Config.Cache
	var keyer cache.Keyer
	if cfg.Prefix != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), cfg.Prefix)
	}

	switch {
	case noCache || cfg.Disabled:
		return cache.NewNullCache(), keyer, nil
	case cfg.RedisAddr != "":
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{Addr: cfg.RedisAddr})
		if err != nil {
			return nil, nil, err
		}
		c.Logger.Debug("using redis cache", "addr", cfg.RedisAddr)
		return rc, keyer, nil
	}

	dir, err := cfg.CacheDir()
	if err != nil {
		c.Logger.Warn("caching disabled", "err", err)
		return cache.NewNullCache(), keyer, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("caching disabled", "dir", dir, "err", err)
		return cache.NewNullCache(), keyer, nil
	}
	return fc, keyer, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
