// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Animation AnimationConfig `yaml:"animation"`
	Lighting  LightingConfig  `yaml:"lighting"`
	Data      DataConfig      `yaml:"data"`
	Capture   CaptureConfig   `yaml:"capture"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	Samples    int    `yaml:"samples"` // MSAA samples, 0 disables
}

// AnimationConfig holds playback settings.
type AnimationConfig struct {
	// Speed is the playback multiplier.
	Speed                 float32 `yaml:"speed"`
	// DefaultTicksPerSecond is used when a clip leaves its tick rate unset.
	DefaultTicksPerSecond float32 `yaml:"default_ticks_per_second"`
	Paused                bool    `yaml:"paused"`
	ShowBones             bool    `yaml:"show_bones"`
}

// DirLightConfig is a directional light.
type DirLightConfig struct {
	Direction [3]float32 `yaml:"direction"`
	Ambient   [3]float32 `yaml:"ambient"`
	Diffuse   [3]float32 `yaml:"diffuse"`
	Specular  [3]float32 `yaml:"specular"`
	Color     [3]float32 `yaml:"color"`
}

// PointLightConfig is an attenuated point light.
type PointLightConfig struct {
	Position  [3]float32 `yaml:"position"`
	Ambient   [3]float32 `yaml:"ambient"`
	Diffuse   [3]float32 `yaml:"diffuse"`
	Specular  [3]float32 `yaml:"specular"`
	Color     [3]float32 `yaml:"color"`
	Constant  float32    `yaml:"constant"`
	Linear    float32    `yaml:"linear"`
	Quadratic float32    `yaml:"quadratic"`
}

// SpotLightConfig is a cone light that follows the camera.
// Cutoffs are half-angles in degrees.
type SpotLightConfig struct {
	Enabled     bool       `yaml:"enabled"`
	Ambient     [3]float32 `yaml:"ambient"`
	Diffuse     [3]float32 `yaml:"diffuse"`
	Specular    [3]float32 `yaml:"specular"`
	Color       [3]float32 `yaml:"color"`
	InnerCutoff float32    `yaml:"inner_cutoff"`
	OuterCutoff float32    `yaml:"outer_cutoff"`
	Constant    float32    `yaml:"constant"`
	Linear      float32    `yaml:"linear"`
	Quadratic   float32    `yaml:"quadratic"`
}

// LightingConfig holds the scene light set.
type LightingConfig struct {
	Directional DirLightConfig     `yaml:"directional"`
	Points      []PointLightConfig `yaml:"points"`
	Spot        SpotLightConfig    `yaml:"spot"`
}

// DataConfig holds data file paths.
type DataConfig struct {
	RigPath string `yaml:"rig_path"` // empty shows the built-in tube rig
}

// CaptureConfig holds screenshot settings.
type CaptureConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
	Format string `yaml:"format"` // png or bmp
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Midgard Rig",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			Samples:    4,
		},
		Animation: AnimationConfig{
			Speed:                 1,
			DefaultTicksPerSecond: 25,
		},
		Lighting: LightingConfig{
			Directional: DirLightConfig{
				Direction: [3]float32{-0.2, -1.0, -0.3},
				Ambient:   [3]float32{0.1, 0.1, 0.1},
				Diffuse:   [3]float32{0.8, 0.8, 0.8},
				Specular:  [3]float32{1, 1, 1},
				Color:     [3]float32{1, 1, 1},
			},
			Points: []PointLightConfig{
				{
					Position:  [3]float32{0, 2, -20},
					Ambient:   [3]float32{0.2, 0.2, 0.2},
					Diffuse:   [3]float32{0.7, 0.7, 0.7},
					Specular:  [3]float32{1, 1, 1},
					Color:     [3]float32{1, 1, 1},
					Constant:  1,
					Linear:    0.1,
					Quadratic: 0.032,
				},
			},
			Spot: SpotLightConfig{
				Enabled:     true,
				Diffuse:     [3]float32{0.8, 0.8, 0.8},
				Specular:    [3]float32{1, 1, 1},
				Color:       [3]float32{1, 1, 1},
				InnerCutoff: 2.5,
				OuterCutoff: 5,
				Constant:    1,
				Linear:      0.09,
				Quadratic:   0.032,
			},
		},
		Capture: CaptureConfig{
			Dir:    "screenshots",
			Prefix: "rig",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
