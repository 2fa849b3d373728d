package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/jigsaw/pkg/core/edge"
	"github.com/matzehuels/jigsaw/pkg/core/grid"
)

// WriteJSON encodes cfg as indented JSON and writes it to w. The output can be read
// back with [ReadJSON].
func WriteJSON(cfg grid.Config, w io.Writer) error {
	data, err := MarshalJSON(cfg)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// MarshalJSON returns the canonical encoding of cfg. Identical configurations always
// encode to identical bytes, which makes the output usable as a cache key.
func MarshalJSON(cfg grid.Config) ([]byte, error) {
	doc := document{
		Rows:            &cfg.Rows,
		Columns:         &cfg.Columns,
		Seed:            &cfg.Seed,
		EdgeConfigs:     cfg.EdgeConfigs,
		SelectedEdgeIDs: cfg.SelectedEdgeIDs,
	}
	if doc.EdgeConfigs == nil {
		doc.EdgeConfigs = []edge.Edge{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportJSON writes cfg to path. The file is written to a temporary sibling first
// and renamed into place.
func ExportJSON(cfg grid.Config, path string) error {
	data, err := MarshalJSON(cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
