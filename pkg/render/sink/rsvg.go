package sink

import (
	"context"

	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/render"
)

// Rsvg rasterizes the piece SVG with the external rsvg-convert tool.
type Rsvg struct{}

func (Rsvg) Name() string { return RasterizerRsvg }

// Rasterize converts job.SVG (or a freshly built piece SVG) at scale 1.
// Textures are not supported.
func (Rsvg) Rasterize(ctx context.Context, job Job) ([]byte, error) {
	if err := checkJob(job); err != nil {
		return nil, err
	}
	if job.Texture != nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "the rsvg rasterizer cannot apply textures")
	}
	svg := job.SVG
	if svg == nil {
		svg = PieceSVG(job.Path, float64(job.Size), job.Offset)
	}
	png, err := render.ToPNG(ctx, svg, 1)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRasterFailed, err, "rsvg")
	}
	return png, nil
}

var _ Rasterizer = Rsvg{}
