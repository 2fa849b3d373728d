package export

import (
	"context"
	"fmt"
	"image"
	"math"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/jigsaw/pkg/cache"
	"github.com/matzehuels/jigsaw/pkg/core/edge"
	"github.com/matzehuels/jigsaw/pkg/core/grid"
	"github.com/matzehuels/jigsaw/pkg/core/piece"
	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/observability"
	"github.com/matzehuels/jigsaw/pkg/render/sink"
)

// Asset is one file of an export.
type Asset struct {
	Name string
	Data []byte
}

// Result is a finished export.
type Result struct {
	Manifest Manifest
	Geometry Geometry

	// Assets holds SVG and PNG files in row-major piece order, SVG first.
	// Pieces whose PNG failed contribute only their SVG.
	Assets []Asset

	// Failed counts pieces without a PNG.
	Failed int

	Created time.Time
}

// Failures returns the manifest entries of pieces whose PNG failed.
func (r *Result) Failures() []PieceRecord {
	var out []PieceRecord
	for _, p := range r.Manifest.Pieces {
		if p.PNGFile == nil {
			out = append(out, p)
		}
	}
	return out
}

type rendered struct {
	svg []byte
	png []byte
	err error
}

// Build compiles, draws and rasterizes every piece of g. The context is checked
// before each piece; cancellation aborts the export.
func Build(ctx context.Context, g *grid.Grid, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	logger := opts.Logger

	geo := opts.Layout(usedEdges(g))
	if err := sink.CheckRasterArea(geo.ExportSize, geo.ExportSize); err != nil {
		return nil, err
	}
	paths := piece.CompileGrid(g, float64(geo.UnitSize))
	if len(paths) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "puzzle has no pieces")
	}
	if !opts.AutoMargin {
		if need := maxProtrusion(paths); need > geo.Margin {
			logger.Warn("tabs reach past the margin and will be clipped; use auto margin",
				"margin", geo.Margin, "required", need)
		}
	}

	var texture image.Image
	if opts.Texture != nil {
		unit := float64(geo.UnitSize)
		if err := sink.CheckRasterArea(float64(g.Columns)*unit, float64(g.Rows)*unit); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "texture")
		}
		texture = sink.FitTexture(opts.Texture, g.Columns*geo.UnitSize, g.Rows*geo.UnitSize)
	}

	workers := opts.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logger.Debug("exporting", "pieces", len(paths), "exportSize", geo.ExportSize, "offset", geo.Offset,
		"rasterizer", opts.Rasterizer.Name(), "workers", workers)

	out := make([]rendered, len(paths))
	for i, p := range paths {
		out[i].svg = sink.PieceSVG(p, geo.ExportSize, geo.Offset)
	}

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, p := range paths {
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			job := sink.Job{Path: p, Size: geo.Pixels(), Offset: geo.Offset, Texture: texture, SVG: out[i].svg}
			start := time.Now()
			png, err := rasterize(egctx, opts, job)
			observability.Raster().OnRaster(egctx, opts.Rasterizer.Name(), p.Row, p.Col, time.Since(start), err)
			if err != nil {
				if ctxErr := egctx.Err(); ctxErr != nil {
					return ctxErr
				}
				logger.Warn("rasterize failed", "piece", BaseName(p.Row, p.Col), "err", err)
			}
			out[i].png, out[i].err = png, err
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	res := assemble(g, geo, paths, out, opts)
	if res.Failed == len(paths) {
		return nil, errors.Wrap(errors.ErrCodeRasterFailed, out[0].err, "every piece failed to rasterize")
	}
	return res, nil
}

func assemble(g *grid.Grid, geo Geometry, paths []piece.Path, out []rendered, opts Options) *Result {
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	res := &Result{
		Geometry: geo,
		Created:  time.Now(),
		Manifest: Manifest{
			PuzzleID:    newID(),
			Rows:        g.Rows,
			Columns:     g.Columns,
			UnitSize:    geo.UnitSize,
			ExportSize:  geo.ExportSize,
			Offset:      geo.Offset,
			TotalPieces: len(paths),
			Pieces:      make([]PieceRecord, len(paths)),
		},
		Assets: make([]Asset, 0, 2*len(paths)),
	}
	for i, p := range paths {
		rec := newRecord(p.Row, p.Col, g.Rows, g.Columns)
		res.Assets = append(res.Assets, Asset{Name: rec.SVGFile, Data: out[i].svg})
		if out[i].err != nil {
			rec.Error = out[i].err.Error()
			res.Failed++
		} else {
			name := BaseName(p.Row, p.Col) + ".png"
			rec.PNGFile = &name
			res.Assets = append(res.Assets, Asset{Name: name, Data: out[i].png})
		}
		res.Manifest.Pieces[i] = rec
	}
	return res
}

func rasterize(ctx context.Context, opts Options, job sink.Job) ([]byte, error) {
	key, cacheable := rasterKey(opts, job)
	if cacheable {
		if data, hit, err := opts.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "raster")
			return data, nil
		}
		observability.Cache().OnCacheMiss(ctx, "raster")
	}

	png, err := opts.Rasterizer.Rasterize(ctx, job)
	if err != nil {
		return nil, err
	}
	if cacheable {
		if err := opts.Cache.Set(ctx, key, png, cache.TTLRaster); err != nil {
			opts.Logger.Debug("raster cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "raster", len(png))
		}
	}
	return png, nil
}

func rasterKey(opts Options, job sink.Job) (string, bool) {
	var texture string
	if job.Texture != nil {
		if opts.TextureKey == "" {
			return "", false
		}
		texture = fmt.Sprintf("%s@%d,%d", opts.TextureKey, job.Path.Row, job.Path.Col)
	}
	return opts.Keyer.RasterKey(cache.Hash(job.SVG), cache.RasterKeyOpts{
		Rasterizer: opts.Rasterizer.Name(),
		Size:       job.Size,
		Texture:    texture,
	}), true
}

// maxProtrusion returns the furthest any outline reaches outside its cell, as a
// fraction of the cell size.
func maxProtrusion(paths []piece.Path) float64 {
	var m float64
	for _, p := range paths {
		m = math.Max(m, p.Protrusion())
	}
	return m
}

// usedEdges returns the curves actually drawn on interior boundaries.
func usedEdges(g *grid.Grid) []edge.Edge {
	var out []edge.Edge
	for _, b := range g.Boundaries() {
		if !b.Outer {
			out = append(out, b.Edge)
		}
	}
	return out
}
