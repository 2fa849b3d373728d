package settings

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/jigsaw/pkg/errors"
)

func TestDefault(t *testing.T) {
	s := Default()
	if err := s.Validate(); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}
	if s.Render.PieceSize != 120 || s.Export.UnitSize != 512 || s.Export.Margin != 0.25 {
		t.Errorf("defaults = %+v", s)
	}
	if s.Server.Addr != DefaultAddr || s.Cache.Backend != "file" {
		t.Errorf("defaults = %+v", s)
	}
}

func TestDecode(t *testing.T) {
	data := []byte(`
[render]
piece_size = 80

[export]
unit_size = 256
auto_margin = true
workers = 4
rasterizer = "rsvg"

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/0"
ttl = "90m"
`)
	s, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if s.Render.PieceSize != 80 || s.Export.UnitSize != 256 || !s.Export.AutoMargin || s.Export.Workers != 4 {
		t.Errorf("decoded = %+v", s)
	}
	// Keys not present keep their defaults.
	if s.Export.Margin != 0.25 || s.Server.Addr != DefaultAddr {
		t.Errorf("defaults lost: %+v", s)
	}
	if s.Cache.TTL.Duration != 90*time.Minute {
		t.Errorf("ttl = %v", s.Cache.TTL)
	}

	co := s.CacheOptions()
	if co.Backend != "redis" || co.RedisURL == "" || co.MaxTTL != 90*time.Minute {
		t.Errorf("cache options = %+v", co)
	}
	eo := s.ExportOptions()
	if eo.UnitSize != 256 || eo.Rasterizer != "rsvg" || !eo.AutoMargin {
		t.Errorf("export options = %+v", eo)
	}
}

func TestZeroMarginKept(t *testing.T) {
	s, err := Decode([]byte("[export]\nmargin = 0\n"))
	if err != nil {
		t.Fatal(err)
	}
	eo := s.ExportOptions()
	if err := eo.ValidateForExport(); err != nil {
		t.Fatal(err)
	}
	if eo.Margin == nil || *eo.Margin != 0 {
		t.Errorf("margin = %v, want 0", eo.Margin)
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{"syntax", `[render`, errors.ErrCodeInvalidFormat},
		{"unknown key", "[render]\npiece_szie = 10", errors.ErrCodeInvalidFormat},
		{"unknown table", "[colors]\nbg = 1", errors.ErrCodeInvalidFormat},
		{"bad duration", "[cache]\nttl = \"soon\"", errors.ErrCodeInvalidFormat},
		{"piece size", "[render]\npiece_size = 0", errors.ErrCodeInvalidConfig},
		{"rasterizer", "[export]\nrasterizer = \"cairo\"", errors.ErrCodeInvalidConfig},
		{"margin", "[export]\nmargin = 3.0", errors.ErrCodeInvalidConfig},
		{"unit size", "[export]\nunit_size = -1", errors.ErrCodeInvalidConfig},
		{"backend", "[cache]\nbackend = \"memcached\"", errors.ErrCodeInvalidConfig},
		{"redis url", "[cache]\nbackend = \"redis\"", errors.ErrCodeInvalidConfig},
		{"negative ttl", "[cache]\nttl = \"-1h\"", errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	// Missing default file falls back to defaults.
	s, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if s != Default() {
		t.Errorf("Load(\"\") = %+v", s)
	}

	missing := filepath.Join(t.TempDir(), "nope.toml")
	if _, err := Load(missing); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing explicit file err = %v", err)
	}

	path := filepath.Join(t.TempDir(), "sub", FileName)
	want := Default()
	want.Server.Addr = "127.0.0.1:9000"
	want.Cache.TTL = Duration{2 * time.Hour}
	if err := want.Write(path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("round trip:\n got %+v\nwant %+v", got, want)
	}

	if err := os.WriteFile(path, []byte("[server]\nport = 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("unknown key accepted")
	}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().Encode(&buf); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"[render]", "piece_size = 120.0", `ttl = "168h0m0s"`, `addr = ":8080"`} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("encoded settings missing %q:\n%s", want, buf.String())
		}
	}
}

func TestExampleSettings(t *testing.T) {
	s, err := Load(filepath.Join("..", "..", "examples", FileName))
	if err != nil {
		t.Fatal(err)
	}
	if s != Default() {
		t.Errorf("example settings differ from defaults:\n got %+v\nwant %+v", s, Default())
	}
}
