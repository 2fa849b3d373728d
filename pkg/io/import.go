package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/jigsaw/pkg/core/edge"
	"github.com/matzehuels/jigsaw/pkg/core/grid"
	"github.com/matzehuels/jigsaw/pkg/errors"
)

// MaxConfigSize bounds how much input ReadJSON will consume.
const MaxConfigSize = 32 << 20

type document struct {
	Rows            *int        `json:"rows"`
	Columns         *int        `json:"columns"`
	Seed            *int64      `json:"seed"`
	EdgeConfigs     []edge.Edge `json:"edgeConfigs"`
	SelectedEdgeIDs []string    `json:"selectedEdgeIds,omitempty"`
}

// ReadJSON decodes a puzzle configuration from r.
//
// The result is either a fully validated configuration or an error; partially
// decoded data is never returned. Errors carry [errors.ErrCodeInvalidFormat] for
// syntax and schema problems and [errors.ErrCodeInvalidConfig] when the document is
// well-formed but describes an invalid puzzle.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (grid.Config, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxConfigSize+1))
	if err != nil {
		return grid.Config{}, fmt.Errorf("read: %w", err)
	}
	if len(data) > MaxConfigSize {
		return grid.Config{}, errors.New(errors.ErrCodeInvalidFormat, "config exceeds %d bytes", MaxConfigSize)
	}
	return DecodeJSON(data)
}

// DecodeJSON decodes a puzzle configuration from data with the same rules as
// [ReadJSON].
func DecodeJSON(data []byte) (grid.Config, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return grid.Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode")
	}
	if dec.More() {
		return grid.Config{}, errors.New(errors.ErrCodeInvalidFormat, "unexpected data after config object")
	}

	switch {
	case doc.Rows == nil:
		return grid.Config{}, missing("rows")
	case doc.Columns == nil:
		return grid.Config{}, missing("columns")
	case doc.Seed == nil:
		return grid.Config{}, missing("seed")
	case doc.EdgeConfigs == nil:
		return grid.Config{}, missing("edgeConfigs")
	}

	cfg := grid.Config{
		Rows:            *doc.Rows,
		Columns:         *doc.Columns,
		Seed:            *doc.Seed,
		EdgeConfigs:     doc.EdgeConfigs,
		SelectedEdgeIDs: doc.SelectedEdgeIDs,
	}
	if err := cfg.Validate(); err != nil {
		return grid.Config{}, err
	}
	return cfg, nil
}

func missing(field string) error {
	return errors.New(errors.ErrCodeInvalidFormat, "missing required field %q", field)
}

// ImportJSON reads the configuration file at path with [ReadJSON].
func ImportJSON(path string) (grid.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return grid.Config{}, errors.Wrap(errors.ErrCodeNotFound, err, "open %s", path)
		}
		return grid.Config{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := ReadJSON(f)
	if err != nil {
		return grid.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
