// Package cli implements the jigsaw command-line interface.
//
// Commands work on puzzle config files (the JSON documents the browser tool imports
// and exports):
//   - init, validate: create and check configs
//   - render, pieces, export: previews, piece outlines and the asset archive
//   - edge, edit: edit the edge library from flags or in a terminal editor
//   - serve: the HTTP API
//   - settings, cache, completion: housekeeping
//
// All commands support --verbose (-v) for debug logging, --config to point at a
// settings file and --no-cache to bypass the artifact cache.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jigsaw/pkg/cache"
	"github.com/matzehuels/jigsaw/pkg/core/grid"
	pkgio "github.com/matzehuels/jigsaw/pkg/io"
	"github.com/matzehuels/jigsaw/pkg/pipeline"
	"github.com/matzehuels/jigsaw/pkg/settings"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "jigsaw"

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

	// Set by persistent flags.
	settingsPath string
	noCache      bool

	// Loaded before every command runs.
	settings settings.Settings
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:   newLogger(w, level),
		settings: settings.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	store, err := c.openCache(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// openCache opens the cache backend named in the settings, or a NullCache when
// --no-cache is set. An unusable file cache degrades to no caching.
func (c *CLI) openCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	opts := c.settings.CacheOptions()
	if opts.Backend == cache.BackendFile || opts.Backend == "" {
		dir, err := c.cacheDir()
		if err != nil {
			c.Logger.Warn("cache disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		opts.Dir = dir
	}
	store, err := cache.Open(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return store, nil
}

// cacheDir returns the file cache directory: the settings value or
// $XDG_CACHE_HOME/jigsaw.
func (c *CLI) cacheDir() (string, error) {
	if c.settings.Cache.Dir != "" {
		return c.settings.Cache.Dir, nil
	}
	return cache.DefaultDir()
}

// =============================================================================
// Config Files
// =============================================================================

// loadConfig imports and validates a puzzle config file.
func loadConfig(path string) (grid.Config, error) {
	return pkgio.ImportJSON(path)
}

// saveConfig replaces path atomically; the previous file survives a failed write.
func saveConfig(cfg grid.Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return pkgio.ExportJSON(cfg, path)
}
