package sink

import (
	"context"
	"image"
	"math"
	"strings"

	"github.com/matzehuels/jigsaw/pkg/core/piece"
	"github.com/matzehuels/jigsaw/pkg/errors"
)

// Job describes one piece to rasterize.
type Job struct {
	Path piece.Path

	// Size is the side of the square output in pixels.
	Size int

	// Offset shifts the outline right and down so tabs fit on the canvas.
	Offset float64

	// Texture, when set, is clipped by the outline instead of a white fill. It
	// must cover the whole puzzle at the piece size (see [FitTexture]).
	Texture image.Image

	// SVG is the piece mask from [PieceSVG]. Rasterizers that need it build it
	// when nil.
	SVG []byte
}

// Rasterizer renders a piece to PNG bytes. Implementations must be safe for
// concurrent use.
type Rasterizer interface {
	Name() string
	Rasterize(ctx context.Context, job Job) ([]byte, error)
}

// Rasterizer names accepted by [NewRasterizer].
const (
	RasterizerCanvas = "canvas"
	RasterizerRsvg   = "rsvg"
)

// Rasterizers lists the supported rasterizer names, default first.
var Rasterizers = []string{RasterizerCanvas, RasterizerRsvg}

// MaxRasterPixels bounds the area of any canvas or fitted texture (1 GiB of RGBA).
const MaxRasterPixels = 1 << 28

// CheckRasterArea rejects canvases of w×h pixels larger than [MaxRasterPixels] or
// with a non-finite side.
func CheckRasterArea(w, h float64) error {
	if !(w*h <= MaxRasterPixels) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "raster of %gx%g pixels exceeds %d pixels", w, h, MaxRasterPixels)
	}
	return nil
}

// NewRasterizer returns the rasterizer called name. The empty name selects the
// canvas rasterizer.
func NewRasterizer(name string) (Rasterizer, error) {
	switch strings.ToLower(name) {
	case "", RasterizerCanvas:
		return Canvas{}, nil
	case RasterizerRsvg:
		return Rsvg{}, nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unknown rasterizer %q (want one of %s)", name, strings.Join(Rasterizers, ", "))
}

func checkJob(job Job) error {
	if job.Size <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "raster size must be positive, got %d", job.Size)
	}
	return CheckRasterArea(float64(job.Size), float64(job.Size))
}
