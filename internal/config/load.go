package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. LAYERBOARD_STROKE_WIDTH.
const EnvPrefix = "LAYERBOARD"

// Load reads configuration from path. If path is empty, uses DefaultConfigPath.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg := Default()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("canvas.width", cfg.Canvas.Width)
	v.SetDefault("canvas.height", cfg.Canvas.Height)
	v.SetDefault("canvas.background", cfg.Canvas.Background)
	v.SetDefault("canvas.grid", cfg.Canvas.Grid)
	v.SetDefault("canvas.grid_size", cfg.Canvas.GridSize)
	v.SetDefault("stroke.width", cfg.Stroke.Width)
	v.SetDefault("stroke.color", cfg.Stroke.Color)
	v.SetDefault("paste.x", cfg.Paste.X)
	v.SetDefault("paste.y", cfg.Paste.Y)
	v.SetDefault("remote.enabled", cfg.Remote.Enabled)
	v.SetDefault("remote.addr", cfg.Remote.Addr)
	v.SetDefault("remote.mdns", cfg.Remote.MDNS)
	v.SetDefault("export.margin", cfg.Export.Margin)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.Canvas.Width <= 0 || cfg.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size must be positive, got %vx%v", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if cfg.Stroke.Width <= 0 {
		return fmt.Errorf("stroke.width must be positive, got %v", cfg.Stroke.Width)
	}
	if strings.TrimSpace(cfg.Stroke.Color) == "" {
		return fmt.Errorf("stroke.color is required")
	}
	if cfg.Remote.Enabled && cfg.Remote.Addr == "" {
		return fmt.Errorf("remote.addr is required when remote.enabled is set")
	}
	if cfg.Export.Margin < 0 {
		return fmt.Errorf("export.margin must not be negative")
	}
	return nil
}
