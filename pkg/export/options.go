package export

import (
	"image"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jigsaw/pkg/cache"
	"github.com/matzehuels/jigsaw/pkg/core/edge"
	"github.com/matzehuels/jigsaw/pkg/core/piece"
	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/render/sink"
)

const (
	DefaultUnitSize = 512
	DefaultMargin   = 0.25

	// MaxMargin bounds the margin fraction; beyond it canvases are mostly empty.
	MaxMargin = 2.0

	// AutoMarginPad is added to the measured protrusion when AutoMargin is set.
	AutoMarginPad = 0.02
)

// Options configures an export.
type Options struct {
	UnitSize   int     `json:"unit_size"`
	Margin     float64 `json:"margin"`
	AutoMargin bool    `json:"auto_margin"`

	// Workers bounds concurrent rasterizations; zero means one per CPU.
	Workers int `json:"workers"`

	// Rasterizer renders PNGs; nil selects the canvas rasterizer.
	Rasterizer sink.Rasterizer `json:"-"`

	// Texture, when set, is fitted over the whole puzzle and clipped per piece.
	Texture image.Image `json:"-"`

	// TextureKey identifies Texture in raster cache keys. Textured pieces are
	// not cached without it.
	TextureKey string `json:"-"`

	// Cache stores PNGs by SVG hash; nil disables raster caching.
	Cache cache.Cache `json:"-"`
	Keyer cache.Keyer `json:"-"`

	Logger *log.Logger `json:"-"`

	// NewID returns the puzzle id; nil means a random UUID.
	NewID func() string `json:"-"`
}

// DefaultOptions returns the standard export settings.
func DefaultOptions() Options {
	return Options{UnitSize: DefaultUnitSize, Margin: DefaultMargin}
}

// Validate checks the numeric settings.
func (o Options) Validate() error {
	if o.UnitSize <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "unit size must be positive, got %d", o.UnitSize)
	}
	if o.UnitSize > 8192 {
		return errors.New(errors.ErrCodeInvalidInput, "unit size %d exceeds 8192", o.UnitSize)
	}
	if math.IsNaN(o.Margin) || o.Margin < 0 || o.Margin > MaxMargin {
		return errors.New(errors.ErrCodeInvalidInput, "margin must be in [0, %g], got %g", MaxMargin, o.Margin)
	}
	if o.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "workers must not be negative, got %d", o.Workers)
	}
	return nil
}

// Geometry is the canvas layout shared by every piece of an export.
type Geometry struct {
	UnitSize   int
	Margin     float64
	ExportSize float64
	Offset     float64
}

// Pixels returns the PNG side length.
func (g Geometry) Pixels() int {
	return int(math.Ceil(g.ExportSize))
}

// Layout computes the canvas geometry. With AutoMargin the margin grows to fit
// the furthest protrusion of edges.
func (o Options) Layout(edges []edge.Edge) Geometry {
	m := o.Margin
	if o.AutoMargin {
		m = math.Max(m, piece.RequiredMargin(edges...)+AutoMarginPad)
	}
	unit := float64(o.UnitSize)
	return Geometry{
		UnitSize:   o.UnitSize,
		Margin:     m,
		ExportSize: unit * (1 + 2*m),
		Offset:     unit * m,
	}
}

func (o Options) withDefaults() Options {
	if o.Rasterizer == nil {
		o.Rasterizer = sink.Canvas{}
	}
	if o.Cache == nil {
		o.Cache = cache.NewNullCache()
	}
	if o.Keyer == nil {
		o.Keyer = cache.NewDefaultKeyer()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}
