// Package settings loads user defaults for the jigsaw CLI and API server.
//
// Settings live in a TOML file, by default $XDG_CONFIG_HOME/jigsaw/config.toml:
//
//	[render]
//	piece_size = 120
//
//	[export]
//	unit_size = 512
//	margin = 0.25
//	auto_margin = false
//	workers = 0
//	rasterizer = "canvas"
//
//	[cache]
//	backend = "file"
//	redis_url = ""
//	ttl = "168h"
//
//	[server]
//	addr = ":8080"
//
// Every key is optional. Command-line flags override settings, and settings override
// the built-in defaults returned by [Default].
package settings

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/jigsaw/pkg/cache"
	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/export"
	"github.com/matzehuels/jigsaw/pkg/pipeline"
	"github.com/matzehuels/jigsaw/pkg/render/sink"
)

// FileName is the settings file name inside the config directory.
const FileName = "config.toml"

// DefaultAddr is the API listen address when none is configured.
const DefaultAddr = ":8080"

// Settings holds every configurable default.
type Settings struct {
	Render Render `toml:"render"`
	Export Export `toml:"export"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
}

// Render holds preview defaults.
type Render struct {
	PieceSize float64 `toml:"piece_size"`
}

// Export holds archive defaults.
type Export struct {
	UnitSize   int     `toml:"unit_size"`
	Margin     float64 `toml:"margin"`
	AutoMargin bool    `toml:"auto_margin"`
	Workers    int     `toml:"workers"`
	Rasterizer string  `toml:"rasterizer"`
}

// Cache selects the memoization backend.
type Cache struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir,omitempty"`
	RedisURL string   `toml:"redis_url"`
	TTL      Duration `toml:"ttl"`
}

// Server holds API server settings.
type Server struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a Go duration string ("90m", "168h").
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Render: Render{PieceSize: pipeline.DefaultPieceSize},
		Export: Export{
			UnitSize:   export.DefaultUnitSize,
			Margin:     export.DefaultMargin,
			Rasterizer: sink.RasterizerCanvas,
		},
		Cache:  Cache{Backend: cache.BackendFile, TTL: Duration{cache.TTLArtifact}},
		Server: Server{Addr: DefaultAddr},
	}
}

// DefaultPath returns the settings file location below the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "jigsaw", FileName), nil
}

// Load reads the settings file at path on top of [Default].
//
// An empty path means [DefaultPath]; a missing default file is not an error. An
// explicitly named file must exist.
func Load(path string) (Settings, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		if os.IsNotExist(err) {
			return Settings{}, errors.Wrap(errors.ErrCodeNotFound, err, "settings %s", path)
		}
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	s, err := Decode(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode parses TOML settings on top of [Default] and validates the result. Unknown
// keys are rejected so typos do not go unnoticed.
func Decode(data []byte) (Settings, error) {
	s := Default()
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&s)
	if err != nil {
		return Settings{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse settings")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Settings{}, errors.New(errors.ErrCodeInvalidFormat, "unknown settings: %s", strings.Join(keys, ", "))
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks value ranges.
func (s Settings) Validate() error {
	if s.Render.PieceSize <= 0 || s.Render.PieceSize > pipeline.MaxPieceSize {
		return errors.New(errors.ErrCodeInvalidConfig, "render.piece_size must be in (0, %g]", pipeline.MaxPieceSize)
	}
	if err := pipeline.ValidateRasterizer(s.Export.Rasterizer); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "export.rasterizer")
	}
	eo := export.Options{UnitSize: s.Export.UnitSize, Margin: s.Export.Margin, Workers: s.Export.Workers}
	if err := eo.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "export")
	}
	switch s.Cache.Backend {
	case cache.BackendFile, cache.BackendNone:
	case cache.BackendRedis:
		if s.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be file, redis or none, got %q", s.Cache.Backend)
	}
	if s.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return nil
}

// CacheOptions converts the cache section for [cache.Open].
func (s Settings) CacheOptions() cache.Options {
	return cache.Options{
		Backend:  s.Cache.Backend,
		Dir:      s.Cache.Dir,
		RedisURL: s.Cache.RedisURL,
		MaxTTL:   s.Cache.TTL.Duration,
	}
}

// RenderOptions returns pipeline render options seeded from the settings.
func (s Settings) RenderOptions() pipeline.Options {
	return pipeline.Options{PieceSize: s.Render.PieceSize}
}

// ExportOptions returns pipeline export options seeded from the settings.
func (s Settings) ExportOptions() pipeline.Options {
	margin := s.Export.Margin
	return pipeline.Options{
		UnitSize:   s.Export.UnitSize,
		Margin:     &margin,
		AutoMargin: s.Export.AutoMargin,
		Workers:    s.Export.Workers,
		Rasterizer: s.Export.Rasterizer,
	}
}

// Encode writes s as TOML.
func (s Settings) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(s)
}

// Write stores s at path, creating the parent directory.
func (s Settings) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
