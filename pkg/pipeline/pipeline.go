// Package pipeline provides the core puzzle pipeline for jigsaw.
//
// This package implements the generate → compile → render/export pipeline used
// by both the CLI and the API server. Centralizing it keeps caching, logging and
// validation identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Generate: Draw the seeded boundary grid from a [grid.Config]
//  2. Compile: Assemble closed piece outlines at a piece size
//  3. Render or Export: Produce previews (SVG, PNG, PDF, DOT) or the per-piece
//     asset archive
//
// Each stage can be run on its own through a [Runner].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Type: pipeline.TypePuzzle, Formats: []string{"svg"}}
//	artifacts, err := runner.Render(ctx, cfg, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := artifacts["svg"]
//
// Export the asset archive:
//
//	res, err := runner.Export(ctx, cfg, opts)
//	err = res.WriteZipFile(export.ArchiveName(cfg.Seed))
//
// [grid.Config]: github.com/matzehuels/jigsaw/pkg/core/grid
package pipeline

import (
	"image"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jigsaw/pkg/cache"
	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/export"
	"github.com/matzehuels/jigsaw/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultPieceSize is the cell size in pixels used for previews.
	DefaultPieceSize = 120.0

	// MaxPieceSize bounds preview cells.
	MaxPieceSize = 4096.0

	// DefaultType is the default render type.
	DefaultType = TypePuzzle
)

// Render types.
const (
	TypePuzzle    = "puzzle"
	TypeEdge      = "edge"
	TypeAdjacency = "adjacency"
)

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
	FormatDOT = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
	FormatDOT: true,
}

// ValidTypes is the set of supported render types.
var ValidTypes = map[string]bool{
	TypePuzzle:    true,
	TypeEdge:      true,
	TypeAdjacency: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for rendering and exporting.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Render options
	Type      string   `json:"type,omitempty"`
	Formats   []string `json:"formats,omitempty"`
	PieceSize float64  `json:"piece_size,omitempty"`
	EdgeID    string   `json:"edge_id,omitempty"` // edge type: which library edge to draw
	Labels    bool     `json:"labels,omitempty"`  // adjacency type: label boundaries

	// Export options
	UnitSize   int      `json:"unit_size,omitempty"`
	Margin     *float64 `json:"margin,omitempty"` // nil means the default, or none with AutoMargin
	AutoMargin bool     `json:"auto_margin,omitempty"`
	Workers    int      `json:"workers,omitempty"`
	Rasterizer string   `json:"rasterizer,omitempty"`

	// Refresh bypasses cached artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger     *log.Logger `json:"-"`
	Texture    image.Image `json:"-"`
	TextureKey string      `json:"-"` // content hash of Texture; empty disables caching of textured output

	// NewID overrides the export puzzle id (tests).
	NewID func() string `json:"-"`
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: svg, png, pdf, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateType checks that a render type is valid.
func ValidateType(typ string) error {
	if !ValidTypes[typ] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid type: %q (must be one of: puzzle, edge, adjacency)", typ)
	}
	return nil
}

// ValidateRasterizer checks that a rasterizer name is known.
func ValidateRasterizer(name string) error {
	if name != "" && !slices.Contains(sink.Rasterizers, strings.ToLower(name)) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid rasterizer: %q (must be one of: %s)", name, strings.Join(sink.Rasterizers, ", "))
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Type == "" {
		o.Type = DefaultType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.PieceSize == 0 {
		o.PieceSize = DefaultPieceSize
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateType(o.Type); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if slices.Contains(o.Formats, FormatDOT) && o.Type != TypeAdjacency {
		return errors.New(errors.ErrCodeInvalidInput, "format dot is only available for type adjacency")
	}
	return ValidatePieceSize(o.PieceSize)
}

// ValidatePieceSize checks that size is a finite cell size in (0, MaxPieceSize].
func ValidatePieceSize(size float64) error {
	if math.IsNaN(size) || size <= 0 || size > MaxPieceSize {
		return errors.New(errors.ErrCodeInvalidInput, "piece size must be in (0, %g], got %g", MaxPieceSize, size)
	}
	return nil
}

// ValidateRasterArea checks that a rows×cols puzzle render fits
// [sink.MaxRasterPixels]. Only puzzle renders with PNG output or a texture
// allocate a canvas of the whole puzzle.
func (o *Options) ValidateRasterArea(rows, cols int) error {
	if o.Type != TypePuzzle || (o.Texture == nil && !slices.Contains(o.Formats, FormatPNG)) {
		return nil
	}
	return sink.CheckRasterArea(float64(cols)*o.PieceSize, float64(rows)*o.PieceSize)
}

// SetExportDefaults sets default values for exporting.
func (o *Options) SetExportDefaults() {
	if o.UnitSize == 0 {
		o.UnitSize = export.DefaultUnitSize
	}
	if o.Margin == nil && !o.AutoMargin {
		m := export.DefaultMargin
		o.Margin = &m
	}
	if o.Rasterizer == "" {
		o.Rasterizer = sink.RasterizerCanvas
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForExport validates and sets defaults for exporting.
func (o *Options) ValidateForExport() error {
	o.SetExportDefaults()
	if err := ValidateRasterizer(o.Rasterizer); err != nil {
		return err
	}
	if o.Texture != nil && strings.EqualFold(o.Rasterizer, sink.RasterizerRsvg) {
		return errors.New(errors.ErrCodeInvalidInput, "rasterizer rsvg does not support textures")
	}
	return o.exportOptions(nil, nil).Validate()
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Type:      o.Type,
		Format:    format,
		PieceSize: o.PieceSize,
		Texture:   o.TextureKey,
	}
	switch o.Type {
	case TypeEdge:
		k.EdgeID = o.EdgeID
		k.PieceSize = 0
	case TypeAdjacency:
		k.Labels = o.Labels
		k.PieceSize = 0
	}
	return k
}

// cacheable reports whether artifacts can be cached: textured output needs a
// texture key.
func (o *Options) cacheable() bool {
	return o.Texture == nil || o.TextureKey != ""
}

func (o *Options) exportOptions(c cache.Cache, keyer cache.Keyer) export.Options {
	var margin float64
	if o.Margin != nil {
		margin = *o.Margin
	}
	return export.Options{
		UnitSize:   o.UnitSize,
		Margin:     margin,
		AutoMargin: o.AutoMargin,
		Workers:    o.Workers,
		Texture:    o.Texture,
		TextureKey: o.TextureKey,
		Cache:      c,
		Keyer:      keyer,
		Logger:     o.Logger,
		NewID:      o.NewID,
	}
}
