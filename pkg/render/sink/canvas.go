package sink

import (
	"bytes"
	"context"
	"image"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/jigsaw/pkg/core/piece"
	"github.com/matzehuels/jigsaw/pkg/errors"
)

// Canvas rasterizes pieces in process with fogleman/gg.
type Canvas struct{}

func (Canvas) Name() string { return RasterizerCanvas }

// Rasterize draws job.Path on a transparent job.Size square.
func (Canvas) Rasterize(ctx context.Context, job Job) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkJob(job); err != nil {
		return nil, err
	}

	dc := gg.NewContext(job.Size, job.Size)
	dc.Translate(job.Offset, job.Offset)
	trace(dc, job.Path)

	if job.Texture != nil {
		dc.Clip()
		x, y := cellOrigin(job.Path)
		dc.DrawImage(job.Texture, -x, -y)
	} else {
		dc.SetRGB(1, 1, 1)
		dc.Fill()
	}
	return encode(dc)
}

// PuzzlePNG draws the assembled puzzle: every piece at its cell, outlined in
// black, filled white or cut from texture.
func PuzzlePNG(paths []piece.Path, rows, cols int, texture image.Image) ([]byte, error) {
	if len(paths) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no pieces to draw")
	}
	size := paths[0].Size
	if err := CheckRasterArea(float64(cols)*size, float64(rows)*size); err != nil {
		return nil, err
	}
	w, h := int(math.Ceil(float64(cols)*size)), int(math.Ceil(float64(rows)*size))
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "puzzle has no area")
	}

	dc := gg.NewContext(w, h)
	if texture == nil {
		dc.SetHexColor("#f3f4f6")
		dc.Clear()
	}
	dc.SetLineWidth(2)
	for _, p := range paths {
		x, y := cellOrigin(p)
		dc.Push()
		dc.Translate(float64(x), float64(y))
		trace(dc, p)
		if texture != nil {
			dc.ClipPreserve()
			dc.DrawImage(texture, -x, -y)
			dc.ResetClip()
		} else {
			dc.SetRGB(1, 1, 1)
			dc.FillPreserve()
		}
		dc.SetRGB(0, 0, 0)
		dc.Stroke()
		dc.Pop()
	}
	return encode(dc)
}

func trace(dc *gg.Context, p piece.Path) {
	segs := p.Segments()
	if len(segs) == 0 {
		return
	}
	dc.MoveTo(segs[0].P0.X, segs[0].P0.Y)
	for _, s := range segs {
		dc.CubicTo(s.P1.X, s.P1.Y, s.P2.X, s.P2.Y, s.P3.X, s.P3.Y)
	}
	dc.ClosePath()
}

func cellOrigin(p piece.Path) (int, int) {
	return int(math.Round(float64(p.Col) * p.Size)), int(math.Round(float64(p.Row) * p.Size))
}

func encode(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRasterFailed, err, "encode png")
	}
	return buf.Bytes(), nil
}

var _ Rasterizer = Canvas{}
