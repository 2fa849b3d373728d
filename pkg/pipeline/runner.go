package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jigsaw/pkg/cache"
	"github.com/matzehuels/jigsaw/pkg/core/grid"
	"github.com/matzehuels/jigsaw/pkg/export"
	pkgio "github.com/matzehuels/jigsaw/pkg/io"
	"github.com/matzehuels/jigsaw/pkg/observability"
	"github.com/matzehuels/jigsaw/pkg/render/sink"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// ConfigHash returns the content hash of cfg's canonical JSON encoding.
func ConfigHash(cfg grid.Config) (string, error) {
	data, err := pkgio.MarshalJSON(cfg)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}

// Generate draws the boundary grid of cfg.
func (r *Runner) Generate(ctx context.Context, cfg grid.Config) (*grid.Grid, error) {
	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, cfg.Rows, cfg.Columns)
	start := time.Now()

	g, err := grid.Generate(cfg)
	if err != nil {
		hooks.OnGenerateComplete(ctx, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnGenerateComplete(ctx, g.Len(), time.Since(start), nil)

	if g.FellBack && len(cfg.SelectedEdgeIDs) > 0 {
		r.Logger.Warn("selected edges not in library, using all edges", "selected", cfg.SelectedEdgeIDs)
	}
	r.Logger.Debug("generated grid",
		"rows", g.Rows,
		"columns", g.Columns,
		"draws", len(g.Draws),
		"duration", time.Since(start))
	return g, nil
}

// PiecesWithCacheInfo compiles every piece of cfg at size and returns cache hit info.
func (r *Runner) PiecesWithCacheInfo(ctx context.Context, cfg grid.Config, size float64) (Pieces, bool, error) {
	if err := ValidatePieceSize(size); err != nil {
		return Pieces{}, false, err
	}
	hash, err := ConfigHash(cfg)
	if err != nil {
		return Pieces{}, false, err
	}
	cacheKey := r.Keyer.PiecesKey(hash, size)

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		var cached Pieces
		if err := json.Unmarshal(data, &cached); err == nil {
			observability.Cache().OnCacheHit(ctx, "pieces")
			return cached, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "pieces")

	g, err := r.Generate(ctx, cfg)
	if err != nil {
		return Pieces{}, false, err
	}
	pieces := CompilePieces(g, size)

	if data, err := json.Marshal(pieces); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLPieces); err == nil {
			observability.Cache().OnCacheSet(ctx, "pieces", len(data))
		}
	}
	return pieces, false, nil
}

// Pieces is a convenience wrapper that calls PiecesWithCacheInfo and discards the cache hit info.
func (r *Runner) Pieces(ctx context.Context, cfg grid.Config, size float64) (Pieces, error) {
	p, _, err := r.PiecesWithCacheInfo(ctx, cfg, size)
	return p, err
}

// RenderWithCacheInfo renders cfg in every requested format and returns
// whether all artifacts came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, cfg grid.Config, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	if err := opts.ValidateRasterArea(cfg.Rows, cfg.Columns); err != nil {
		return nil, false, err
	}

	hash, err := ConfigHash(cfg)
	if err != nil {
		return nil, false, err
	}
	cacheable := opts.cacheable() && !opts.Refresh

	if cacheable {
		artifacts := make(map[string][]byte)
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	g, err := r.Generate(ctx, cfg)
	if err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Type, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, cfg, g, opts)
	hooks.OnRenderComplete(ctx, opts.Type, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	r.Logger.Debug("rendered", "type", opts.Type, "formats", opts.Formats, "duration", time.Since(start))

	if cacheable {
		for format, data := range rendered {
			cacheKey := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
			if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
				observability.Cache().OnCacheSet(ctx, "artifact", len(data))
			}
		}
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, cfg grid.Config, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, cfg, opts)
	return artifacts, err
}

// Export builds the per-piece asset set of cfg. Rasterized PNGs are cached by
// SVG content, so re-exporting an unchanged puzzle skips rasterization.
func (r *Runner) Export(ctx context.Context, cfg grid.Config, opts Options) (*export.Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForExport(); err != nil {
		return nil, err
	}

	g, err := r.Generate(ctx, cfg)
	if err != nil {
		return nil, err
	}

	rasterizer, err := sink.NewRasterizer(opts.Rasterizer)
	if err != nil {
		return nil, err
	}
	var c cache.Cache = r.Cache
	if opts.Refresh {
		c = cache.NewNullCache()
	}
	exportOpts := opts.exportOptions(c, r.Keyer)
	exportOpts.Rasterizer = rasterizer

	hooks := observability.Pipeline()
	hooks.OnExportStart(ctx, g.Len())
	start := time.Now()
	res, err := export.Build(ctx, g, exportOpts)
	if err != nil {
		hooks.OnExportComplete(ctx, g.Len(), g.Len(), time.Since(start), err)
		return nil, err
	}
	hooks.OnExportComplete(ctx, g.Len(), res.Failed, time.Since(start), nil)

	r.Logger.Info("exported pieces",
		"pieces", res.Manifest.TotalPieces,
		"failed", res.Failed,
		"exportSize", res.Manifest.ExportSize,
		"duration", time.Since(start))
	return res, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
