package cli

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/matzehuels/jigsaw/pkg/core/bezier"
	"github.com/matzehuels/jigsaw/pkg/core/grid"
	"github.com/matzehuels/jigsaw/pkg/errors"
)

// runCLI executes the root command with an isolated settings and cache home.
func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(append([]string{"--no-cache"}, args...))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(t.Context())
}

func mustRun(t *testing.T, args ...string) {
	t.Helper()
	if err := runCLI(t, args...); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
}

func newConfigFile(t *testing.T, args ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "puzzle.json")
	mustRun(t, append([]string{"init", path}, args...)...)
	return path
}

func mustLoad(t *testing.T, path string) grid.Config {
	t.Helper()
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestRootCommand(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"init", "validate", "render", "pieces", "export", "edge", "edit", "serve", "settings", "cache", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("no-cache") == nil || root.PersistentFlags().Lookup("config") == nil {
		t.Error("persistent flags missing")
	}
}

func TestInit(t *testing.T) {
	path := newConfigFile(t, "--rows", "3", "--columns", "4", "--seed", "7")
	cfg := mustLoad(t, path)
	if cfg.Rows != 3 || cfg.Columns != 4 || cfg.Seed != 7 || len(cfg.EdgeConfigs) != 1 {
		t.Errorf("cfg = %+v", cfg)
	}

	if err := runCLI(t, "init", path); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("init over existing file err = %v", err)
	}
	mustRun(t, "init", path, "--force", "--rows", "2")
	if cfg := mustLoad(t, path); cfg.Rows != 2 {
		t.Errorf("rows after --force = %d", cfg.Rows)
	}
	if err := runCLI(t, "init", filepath.Join(t.TempDir(), "x.json"), "--rows", "0"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("zero rows err = %v", err)
	}
}

func TestValidate(t *testing.T) {
	path := newConfigFile(t, "--rows", "2", "--columns", "2")
	mustRun(t, "validate", path, "--draws")

	if err := runCLI(t, "validate", filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing file err = %v", err)
	}
}

func TestSettingsFlag(t *testing.T) {
	path := newConfigFile(t, "--rows", "2", "--columns", "2")
	if err := runCLI(t, "--config", filepath.Join(t.TempDir(), "nope.toml"), "validate", path); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing --config err = %v", err)
	}

	settingsPath := filepath.Join(t.TempDir(), "config.toml")
	mustRun(t, "--config", settingsPath, "settings", "init")
	mustRun(t, "--config", settingsPath, "validate", path)
	if err := runCLI(t, "--config", settingsPath, "settings", "init"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("settings init over existing file err = %v", err)
	}
}

func TestEdgeCommands(t *testing.T) {
	path := newConfigFile(t, "--rows", "2", "--columns", "2")

	mustRun(t, "edge", "add", path, "--name", "Flat")
	cfg := mustLoad(t, path)
	e, _, ok := cfg.Edge("edge-2")
	if !ok || e.Name != "Flat" || e.Len() != 2 {
		t.Fatalf("added edge = %+v (ok=%v)", e, ok)
	}
	if !cfg.IsSelected("edge-2") {
		t.Error("added edge not selected")
	}

	mustRun(t, "edge", "insert", path, "edge-2", "0.5", "-0.1")
	mustRun(t, "edge", "move", path, "edge-2", "1", "0.4", "0.2")
	mustRun(t, "edge", "mode", path, "edge-2", "1", "Free")
	e, _, _ = mustLoad(t, path).Edge("edge-2")
	if e.Len() != 3 {
		t.Fatalf("points = %d", e.Len())
	}
	if p := e.Points[1]; !p.Position.ApproxEqual(bezier.Vec(0.4, 0.2), 1e-12) || p.Mode() != bezier.ModeFree {
		t.Errorf("point 1 = %v %v", p.Position, p.Mode())
	}

	mustRun(t, "edge", "mode", path, "edge-2", "1")
	mustRun(t, "edge", "handle", path, "edge-2", "1", "right", "0.1", "0")
	e, _, _ = mustLoad(t, path).Edge("edge-2")
	if p := e.Points[1]; p.Mode() != bezier.ModeContinuous || !p.Left().ApproxEqual(bezier.Vec(-0.1, 0), 1e-12) {
		t.Errorf("continuous handle not mirrored: %v %v", p.Mode(), p.Left())
	}

	mustRun(t, "edge", "handle", path, "edge-2", "1", "left", "0.3", "0.2", "--absolute")
	e, _, _ = mustLoad(t, path).Edge("edge-2")
	if got := e.Points[1].LeftAbs(); !got.ApproxEqual(bezier.Vec(0.3, 0.2), 1e-12) {
		t.Errorf("absolute handle = %v", got)
	}

	mustRun(t, "edge", "smooth", path, "edge-2", "1")
	mustRun(t, "edge", "rename", path, "edge-2", "Flat 2")
	mustRun(t, "edge", "delete", path, "edge-2", "1")
	e, _, _ = mustLoad(t, path).Edge("edge-2")
	if e.Name != "Flat 2" || e.Len() != 2 {
		t.Errorf("edge = %+v", e)
	}

	mustRun(t, "edge", "add", path, "copy", "--from", "edge-1")
	if e, _, ok := mustLoad(t, path).Edge("copy"); !ok || e.Len() != 7 || e.Name != "Standard Tab copy" {
		t.Errorf("copied edge = %+v", e)
	}

	mustRun(t, "edge", "select", path, "edge-2")
	if got := mustLoad(t, path).SelectedEdgeIDs; len(got) != 1 || got[0] != "edge-2" {
		t.Errorf("selection = %v", got)
	}
	mustRun(t, "edge", "select", path)
	if got := mustLoad(t, path).SelectedEdgeIDs; len(got) != 0 {
		t.Errorf("cleared selection = %v", got)
	}

	mustRun(t, "edge", "remove", path, "copy")
	if n := len(mustLoad(t, path).EdgeConfigs); n != 2 {
		t.Errorf("edges after remove = %d", n)
	}
	mustRun(t, "edge", "list", path)
}

func TestEdgeCommandErrors(t *testing.T) {
	path := newConfigFile(t, "--rows", "2", "--columns", "2")
	before := mustLoad(t, path)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown edge", []string{"edge", "move", path, "nope", "0", "0", "0"}, errors.ErrCodeEdgeNotFound},
		{"bad index", []string{"edge", "smooth", path, "edge-1", "one"}, errors.ErrCodeInvalidInput},
		{"index out of range", []string{"edge", "smooth", path, "edge-1", "99"}, errors.ErrCodeInvalidInput},
		{"bad coordinate", []string{"edge", "insert", path, "edge-1", "abc", "0"}, errors.ErrCodeInvalidInput},
		{"insert near endpoint", []string{"edge", "insert", path, "edge-1", "0.01", "0"}, errors.ErrCodeInvalidInput},
		{"delete endpoint", []string{"edge", "delete", path, "edge-1", "0"}, errors.ErrCodeInvalidInput},
		{"bad side", []string{"edge", "handle", path, "edge-1", "1", "up", "0", "0"}, errors.ErrCodeInvalidInput},
		{"bad mode", []string{"edge", "mode", path, "edge-1", "1", "Smooth"}, errors.ErrCodeInvalidInput},
		{"duplicate id", []string{"edge", "add", path, "edge-1"}, errors.ErrCodeInvalidInput},
		{"bad id", []string{"edge", "add", path, "has space"}, errors.ErrCodeInvalidEdge},
		{"select unknown", []string{"edge", "select", path, "nope"}, errors.ErrCodeEdgeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runCLI(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}

	after := mustLoad(t, path)
	if len(after.EdgeConfigs) != len(before.EdgeConfigs) || !after.EdgeConfigs[0].ApproxEqual(before.EdgeConfigs[0], 0) {
		t.Error("failed edits changed the file")
	}
}
