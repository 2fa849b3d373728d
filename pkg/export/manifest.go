package export

import (
	"encoding/json"
	"fmt"
)

// ManifestName is the manifest file name inside an archive.
const ManifestName = "PuzzleData.json"

// Manifest describes an exported puzzle.
type Manifest struct {
	PuzzleID    string        `json:"puzzleId"`
	Rows        int           `json:"rows"`
	Columns     int           `json:"columns"`
	UnitSize    int           `json:"unitSize"`
	ExportSize  float64       `json:"exportSize"`
	Offset      float64       `json:"offset"`
	TotalPieces int           `json:"totalPieces"`
	Pieces      []PieceRecord `json:"pieces"`
}

// PieceRecord is one manifest entry.
type PieceRecord struct {
	PieceIndex int     `json:"pieceIndex"`
	Column     int     `json:"column"`
	Row        int     `json:"row"`
	SVGFile    string  `json:"svgFile"`
	PNGFile    *string `json:"pngFile"`
	Error      string  `json:"error,omitempty"`

	NormalizedPos Position `json:"normalizedPos"`
}

// Position is a point in [0,1]² relative to the whole puzzle.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BaseName returns the file stem of the piece at (r, c).
func BaseName(r, c int) string {
	return fmt.Sprintf("R %d C %d", r, c)
}

func newRecord(r, c, rows, cols int) PieceRecord {
	return PieceRecord{
		PieceIndex: r*cols + c,
		Column:     c,
		Row:        r,
		SVGFile:    BaseName(r, c) + ".svg",
		NormalizedPos: Position{
			X: (float64(c) + 0.5) / float64(cols),
			Y: (float64(r) + 0.5) / float64(rows),
		},
	}
}

// encode renders m with two-space indentation.
func (m Manifest) encode() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return data, nil
}
