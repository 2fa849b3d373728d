// Package io provides JSON import and export for puzzle configurations.
//
// # JSON Format
//
// A configuration is a single object:
//
//	{
//	  "rows": 15,
//	  "columns": 15,
//	  "seed": 12345,
//	  "edgeConfigs": [
//	    {
//	      "id": "edge-1",
//	      "name": "Standard Tab",
//	      "points": [
//	        {
//	          "position": {"x": 0, "y": 0},
//	          "leftControlPoint": {"x": -0.1, "y": 0},
//	          "rightControlPoint": {"x": 0.1, "y": 0},
//	          "mode": "Continuous"
//	        }
//	      ]
//	    }
//	  ],
//	  "selectedEdgeIds": ["edge-1"]
//	}
//
// rows, columns, seed and edgeConfigs are required; selectedEdgeIds is optional and
// an empty selection means every edge is available. Control points are offsets from
// their anchor. The format is the one the browser puzzle tool imports and exports, so
// files move between the two unchanged.
//
// # Import
//
// Import is all-or-nothing. [ReadJSON] rejects malformed JSON, unknown fields,
// trailing data, missing required fields, invalid edges and duplicate edge ids, and
// returns no configuration at all in that case:
//
//	cfg, err := io.ImportJSON("puzzle.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Export
//
// [WriteJSON] and [ExportJSON] write indented JSON that [ReadJSON] reads back to an
// equal configuration. [ExportJSON] writes to a temporary file in the target
// directory and renames it into place, so a failed write never clobbers the previous
// file.
package io
