// Package config handles loading and saving vitae configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/vitae/config.yaml
//   - State:  ~/.local/state/vitae/ (export defaults cache)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ViewerConfig holds viewer preference settings.
type ViewerConfig struct {
	ShowLabels   bool    `yaml:"show_labels,omitempty"`
	InitialScale float64 `yaml:"initial_scale,omitempty"` // clamped to the zoom bounds at use time
	TickRateMs   int     `yaml:"tick_rate_ms,omitempty"`
}

// ExportConfig holds default export options.
type ExportConfig struct {
	OutDir  string   `yaml:"out_dir,omitempty"`
	Formats []string `yaml:"formats,omitempty"`
	Width   int      `yaml:"width,omitempty"`
	Height  int      `yaml:"height,omitempty"`
}

// ServeConfig holds defaults for the live-reload server.
type ServeConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// Config is the top-level configuration for vitae.
type Config struct {
	CVPath string       `yaml:"cv_path,omitempty"`
	Viewer ViewerConfig `yaml:"viewer,omitempty"`
	Export ExportConfig `yaml:"export,omitempty"`
	Serve  ServeConfig  `yaml:"serve,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Viewer: ViewerConfig{
			ShowLabels:   true,
			InitialScale: 1,
			TickRateMs:   33,
		},
		Export: ExportConfig{
			OutDir:  "./vitae-out",
			Formats: []string{"svg", "html"},
			Width:   1600,
			Height:  1000,
		},
		Serve: ServeConfig{
			Addr: "localhost:7333",
		},
	}
}

// ConfigDir returns the XDG config directory for vitae.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "vitae")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "vitae")
}

// StateDir returns the XDG state directory for vitae.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "vitae")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "vitae")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.CVPath = expandHome(cfg.CVPath)
	cfg.Export.OutDir = expandHome(cfg.Export.OutDir)

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
