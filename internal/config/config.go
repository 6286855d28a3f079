package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"LayerBoard/internal/state"
)

// Config is the top-level application configuration.
type Config struct {
	Canvas CanvasConfig `mapstructure:"canvas" yaml:"canvas"`
	Stroke StrokeConfig `mapstructure:"stroke" yaml:"stroke"`
	Paste  PasteConfig  `mapstructure:"paste" yaml:"paste"`
	Remote RemoteConfig `mapstructure:"remote" yaml:"remote"`
	Export ExportConfig `mapstructure:"export" yaml:"export"`
}

// CanvasConfig sizes the drawing surface.
type CanvasConfig struct {
	Width      float32 `mapstructure:"width" yaml:"width"`
	Height     float32 `mapstructure:"height" yaml:"height"`
	Background string  `mapstructure:"background" yaml:"background"`
	Grid       bool    `mapstructure:"grid" yaml:"grid"`
	GridSize   float32 `mapstructure:"grid_size" yaml:"grid_size"`
}

// StrokeConfig is the pen a new board starts with.
type StrokeConfig struct {
	Width float32 `mapstructure:"width" yaml:"width"`
	Color string  `mapstructure:"color" yaml:"color"`
}

// PasteConfig is where pasted images land.
type PasteConfig struct {
	X float32 `mapstructure:"x" yaml:"x"`
	Y float32 `mapstructure:"y" yaml:"y"`
}

// RemoteConfig controls the websocket surface.
type RemoteConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Addr    string `mapstructure:"addr" yaml:"addr"`
	MDNS    bool   `mapstructure:"mdns" yaml:"mdns"`
}

// ExportConfig controls PDF output.
type ExportConfig struct {
	Margin float64 `mapstructure:"margin" yaml:"margin"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Canvas: CanvasConfig{Width: 400, Height: 400, Background: "white", Grid: true, GridSize: 50},
		Stroke: StrokeConfig{Width: state.DefaultStyle.Width, Color: state.DefaultStyle.Color},
		Remote: RemoteConfig{Addr: ":8888", MDNS: true},
		Export: ExportConfig{Margin: 20},
	}
}

// DefaultConfigPath returns the per-user config location.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "layerboard", "config.yaml"), nil
}

// StoreOptions turns the config into store options.
func (c Config) StoreOptions() []state.Option {
	return []state.Option{
		state.WithStyle(state.Style{Width: c.Stroke.Width, Color: c.Stroke.Color}),
		state.WithPasteOrigin(state.Point{X: c.Paste.X, Y: c.Paste.Y}),
	}
}

// Marshal renders the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Save writes cfg to path as YAML, creating parent directories.
func Save(path string, cfg Config) error {
	data, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
