package grid

import (
	"slices"

	"github.com/matzehuels/jigsaw/pkg/core/edge"
	"github.com/matzehuels/jigsaw/pkg/errors"
)

// Default dimensions and seed of a new puzzle.
const (
	DefaultRows    = 15
	DefaultColumns = 15
	DefaultSeed    = 12345
)

// Config is everything a puzzle layout is derived from. Values are treated as
// immutable: the With* helpers return modified copies.
type Config struct {
	Rows            int         `json:"rows"`
	Columns         int         `json:"columns"`
	Seed            int64       `json:"seed"`
	EdgeConfigs     []edge.Edge `json:"edgeConfigs"`
	SelectedEdgeIDs []string    `json:"selectedEdgeIds"`
}

// DefaultConfig returns a 15×15 puzzle using the built-in edge library.
func DefaultConfig() Config {
	lib := edge.Library()
	ids := make([]string, len(lib))
	for i, e := range lib {
		ids[i] = e.ID
	}
	return Config{
		Rows:            DefaultRows,
		Columns:         DefaultColumns,
		Seed:            DefaultSeed,
		EdgeConfigs:     lib,
		SelectedEdgeIDs: ids,
	}
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c
	if c.EdgeConfigs != nil {
		out.EdgeConfigs = make([]edge.Edge, len(c.EdgeConfigs))
		for i, e := range c.EdgeConfigs {
			out.EdgeConfigs[i] = e.Clone()
		}
	}
	out.SelectedEdgeIDs = slices.Clone(c.SelectedEdgeIDs)
	return out
}

// Validate checks dimensions, every edge definition, and edge id uniqueness.
// Selected ids that match no edge are not an error; see [Config.Available].
func (c Config) Validate() error {
	if err := errors.ValidateDimensions(c.Rows, c.Columns); err != nil {
		return err
	}
	seen := make(map[string]bool, len(c.EdgeConfigs))
	for i, e := range c.EdgeConfigs {
		if err := e.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "edgeConfigs[%d]", i)
		}
		if seen[e.ID] {
			return errors.New(errors.ErrCodeInvalidConfig, "edgeConfigs[%d]: duplicate edge id %q", i, e.ID)
		}
		seen[e.ID] = true
	}
	return nil
}

// Available returns the edges interior boundaries are drawn from: the edges whose id
// is selected, in edgeConfigs order. When the selection is empty or matches nothing,
// every edge is available and fellBack is true.
func (c Config) Available() (edges []edge.Edge, fellBack bool) {
	if len(c.SelectedEdgeIDs) > 0 {
		for _, e := range c.EdgeConfigs {
			if slices.Contains(c.SelectedEdgeIDs, e.ID) {
				edges = append(edges, e)
			}
		}
		if len(edges) > 0 {
			return edges, false
		}
	}
	return c.EdgeConfigs, len(c.EdgeConfigs) > 0
}

// Edge returns the edge with the given id and its index in EdgeConfigs.
func (c Config) Edge(id string) (edge.Edge, int, bool) {
	for i, e := range c.EdgeConfigs {
		if e.ID == id {
			return e, i, true
		}
	}
	return edge.Edge{}, -1, false
}

// IsSelected reports whether id is explicitly selected.
func (c Config) IsSelected(id string) bool {
	return slices.Contains(c.SelectedEdgeIDs, id)
}

func (c Config) edgeNotFound(id string) error {
	return errors.New(errors.ErrCodeEdgeNotFound, "edge %q not found", id)
}

// WithEdge returns a copy of c with the edge of the same id replaced by e.
func (c Config) WithEdge(e edge.Edge) (Config, error) {
	_, i, ok := c.Edge(e.ID)
	if !ok {
		return c, c.edgeNotFound(e.ID)
	}
	out := c.Clone()
	out.EdgeConfigs[i] = e.Clone()
	return out, nil
}

// AddEdge appends e to the library and selects it.
func (c Config) AddEdge(e edge.Edge) (Config, error) {
	if err := e.Validate(); err != nil {
		return c, err
	}
	if _, _, ok := c.Edge(e.ID); ok {
		return c, errors.New(errors.ErrCodeInvalidInput, "edge %q already exists", e.ID)
	}
	out := c.Clone()
	out.EdgeConfigs = append(out.EdgeConfigs, e.Clone())
	out.SelectedEdgeIDs = append(out.SelectedEdgeIDs, e.ID)
	return out, nil
}

// RemoveEdge deletes the edge with id from the library and the selection.
func (c Config) RemoveEdge(id string) (Config, error) {
	_, i, ok := c.Edge(id)
	if !ok {
		return c, c.edgeNotFound(id)
	}
	out := c.Clone()
	out.EdgeConfigs = slices.Delete(out.EdgeConfigs, i, i+1)
	out.SelectedEdgeIDs = slices.DeleteFunc(out.SelectedEdgeIDs, func(s string) bool { return s == id })
	return out, nil
}

// RenameEdge changes the display name of an edge.
func (c Config) RenameEdge(id, name string) (Config, error) {
	e, _, ok := c.Edge(id)
	if !ok {
		return c, c.edgeNotFound(id)
	}
	e.Name = name
	return c.WithEdge(e)
}

// WithSelection returns a copy of c with the given edges selected. Every id must
// name an existing edge.
func (c Config) WithSelection(ids ...string) (Config, error) {
	for _, id := range ids {
		if _, _, ok := c.Edge(id); !ok {
			return c, c.edgeNotFound(id)
		}
	}
	out := c.Clone()
	out.SelectedEdgeIDs = make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out.SelectedEdgeIDs, id) {
			out.SelectedEdgeIDs = append(out.SelectedEdgeIDs, id)
		}
	}
	return out, nil
}

// WithSelected adds or removes a single id from the selection.
func (c Config) WithSelected(id string, selected bool) (Config, error) {
	if _, _, ok := c.Edge(id); !ok {
		return c, c.edgeNotFound(id)
	}
	out := c.Clone()
	out.SelectedEdgeIDs = slices.DeleteFunc(out.SelectedEdgeIDs, func(s string) bool { return s == id })
	if selected {
		out.SelectedEdgeIDs = append(out.SelectedEdgeIDs, id)
	}
	return out, nil
}

// WithDimensions returns a copy of c with a new grid size.
func (c Config) WithDimensions(rows, columns int) (Config, error) {
	if err := errors.ValidateDimensions(rows, columns); err != nil {
		return c, err
	}
	out := c.Clone()
	out.Rows, out.Columns = rows, columns
	return out, nil
}

// WithSeed returns a copy of c with a new seed.
func (c Config) WithSeed(seed int64) Config {
	out := c.Clone()
	out.Seed = seed
	return out
}
