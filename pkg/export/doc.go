// Package export turns a generated puzzle into per-piece image assets.
//
// Every piece is written twice: as an SVG mask and as a PNG of the same square
// canvas. The canvas is larger than the piece cell by a margin on every side so
// that tabs are never clipped:
//
//	exportSize = unitSize × (1 + 2·margin)
//	offset     = unitSize × margin
//
// With the defaults (unit 512, margin 0.25) that gives 768 pixel canvases with the
// cell starting at (128, 128).
//
// # Manifest
//
// PuzzleData.json lists every piece with its file names and the normalized
// position of its cell center, which is what game engines consume:
//
//	{
//	  "puzzleId": "5f0c...",
//	  "rows": 2, "columns": 2,
//	  "unitSize": 512, "exportSize": 768, "offset": 128,
//	  "totalPieces": 4,
//	  "pieces": [
//	    {"pieceIndex": 0, "column": 0, "row": 0, "svgFile": "R 0 C 0.svg",
//	     "pngFile": "R 0 C 0.png", "normalizedPos": {"x": 0.25, "y": 0.25}}
//	  ]
//	}
//
// # Failures
//
// Rasterization runs concurrently. A piece whose PNG fails keeps its SVG and its
// manifest entry, with "pngFile": null and an "error" message; the export as a
// whole still succeeds. Only when every piece fails does [Build] return an error.
//
// # Archive
//
// [Result.WriteZip] writes the assets in row-major order (SVG then PNG per piece)
// followed by the manifest. [ArchiveName] gives the conventional file name.
package export
