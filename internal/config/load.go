package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		DefaultPath(),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "MidgardRig")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "MidgardRig")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "midgard-rig")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "midgard-rig")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Config validation errors.
var (
	ErrInvalidWindow = errors.New("window size must be positive")
	ErrInvalidSpeed  = errors.New("animation speed must be positive")
	ErrTooManyLights = errors.New("too many point lights")
	ErrBadFormat     = errors.New("unsupported screenshot format")
)

// MaxPointLights matches the size of the pointlights uniform array.
const MaxPointLights = 4

// Validate checks values that would break the viewer at startup.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidWindow, c.Window.Width, c.Window.Height)
	}
	if c.Window.Samples < 0 {
		return fmt.Errorf("%w: %d samples", ErrInvalidWindow, c.Window.Samples)
	}
	if c.Animation.Speed <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSpeed, c.Animation.Speed)
	}
	if len(c.Lighting.Points) > MaxPointLights {
		return fmt.Errorf("%w: %d, max %d", ErrTooManyLights, len(c.Lighting.Points), MaxPointLights)
	}
	switch c.Capture.Format {
	case "png", "bmp":
	default:
		return fmt.Errorf("%w: %q", ErrBadFormat, c.Capture.Format)
	}
	return nil
}
