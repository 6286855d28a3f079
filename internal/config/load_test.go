package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"LayerBoard/internal/state"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	def := Default()
	if cfg.Stroke != def.Stroke || cfg.Canvas != def.Canvas || cfg.Remote != def.Remote {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadOverridesFromYAML(t *testing.T) {
	path := writeConfig(t, `
canvas:
  width: 800
  grid: false
stroke:
  width: 2.5
  color: red
paste:
  x: 15
  y: 25
remote:
  enabled: true
  addr: 127.0.0.1:9999
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Canvas.Width != 800 || cfg.Canvas.Height != 400 || cfg.Canvas.Grid {
		t.Fatalf("unexpected canvas %+v", cfg.Canvas)
	}
	if cfg.Stroke.Width != 2.5 || cfg.Stroke.Color != "red" {
		t.Fatalf("unexpected stroke %+v", cfg.Stroke)
	}
	if cfg.Paste.X != 15 || cfg.Paste.Y != 25 {
		t.Fatalf("unexpected paste %+v", cfg.Paste)
	}
	if !cfg.Remote.Enabled || cfg.Remote.Addr != "127.0.0.1:9999" || !cfg.Remote.MDNS {
		t.Fatalf("unexpected remote %+v", cfg.Remote)
	}
}

func TestLoadRejectsInvalidStroke(t *testing.T) {
	path := writeConfig(t, `
stroke:
  width: 0
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "stroke.width") {
		t.Fatalf("expected stroke.width error, got %v", err)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("LAYERBOARD_STROKE_COLOR", "blue")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Stroke.Color != "blue" {
		t.Fatalf("expected env override, got %q", cfg.Stroke.Color)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Stroke.Color = "#112233"
	cfg.Export.Margin = 5
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Stroke.Color != "#112233" || got.Export.Margin != 5 {
		t.Fatalf("unexpected config %+v", got)
	}
}

func TestStoreOptionsApplyStyle(t *testing.T) {
	cfg := Default()
	cfg.Stroke.Width = 9
	cfg.Paste = PasteConfig{X: 3, Y: 4}
	s := state.NewStore(cfg.StoreOptions()...)
	if s.Style() != (state.Style{Width: 9, Color: "black"}) {
		t.Fatalf("unexpected style %+v", s.Style())
	}
	s.PasteImage(state.ImageSource{Width: 1, Height: 1})
	id, _ := s.Selected()
	img, _ := s.View().Image(id)
	if img.Geometry.X != 3 || img.Geometry.Y != 4 {
		t.Fatalf("paste origin not applied: %+v", *img.Geometry)
	}
}
