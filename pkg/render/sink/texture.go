package sink

import (
	"bytes"
	"encoding/base64"
	"image"
	"io"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/jigsaw/pkg/errors"
)

// DecodeTexture reads an image from r, honouring EXIF orientation.
func DecodeTexture(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode texture")
	}
	return img, nil
}

// FitTexture scales and center-crops img to exactly w×h, covering the whole area.
func FitTexture(img image.Image, w, h int) *image.NRGBA {
	return imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
}

// TextureDataURI encodes img as a PNG data URI for embedding in SVG.
func TextureDataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode texture")
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
