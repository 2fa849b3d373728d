package cache

import "strconv"

// Keyer derives cache keys. Inputs are content hashes (see [Hash]) plus the options
// that change the output, so a key never outlives the data it describes.
type Keyer interface {
	// PiecesKey addresses the compiled piece outlines of a config.
	PiecesKey(configHash string, pieceSize float64) string

	// ArtifactKey addresses a rendered view of a config (preview, adjacency, edge).
	ArtifactKey(configHash string, opts ArtifactKeyOpts) string

	// RasterKey addresses the PNG rasterization of one SVG document.
	RasterKey(svgHash string, opts RasterKeyOpts) string
}

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	Type      string  `json:"type"`
	Format    string  `json:"format"`
	PieceSize float64 `json:"piece_size,omitempty"`
	EdgeID    string  `json:"edge_id,omitempty"`
	Labels    bool    `json:"labels,omitempty"`
	Texture   string  `json:"texture,omitempty"`
}

// RasterKeyOpts are the rasterizer settings that change a PNG.
type RasterKeyOpts struct {
	Rasterizer string `json:"rasterizer"`
	Size       int    `json:"size"`
	Texture    string `json:"texture,omitempty"`
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) PiecesKey(configHash string, pieceSize float64) string {
	return "pieces:" + configHash + ":" + strconv.FormatFloat(pieceSize, 'f', -1, 64)
}

func (DefaultKeyer) ArtifactKey(configHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", configHash, opts)
}

func (DefaultKeyer) RasterKey(svgHash string, opts RasterKeyOpts) string {
	return hashKey("raster", svgHash, opts)
}

var _ Keyer = DefaultKeyer{}
