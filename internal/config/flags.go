package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging and bone overlay")
	flagRig        = flag.String("rig", "", "Rig file to view")
	flagSpeed      = flag.Float64("speed", 0, "Animation playback speed")
	flagPaused     = flag.Bool("paused", false, "Start with animation paused")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")

	flagWriteConfig = flag.Bool("write-config", false, "Write the effective config and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigRequested reports whether -write-config was given.
func WriteConfigRequested() bool {
	return *flagWriteConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Animation.ShowBones = true
	}
	if *flagRig != "" {
		cfg.Data.RigPath = *flagRig
	}
	if *flagSpeed > 0 {
		cfg.Animation.Speed = float32(*flagSpeed)
	}
	if *flagPaused {
		cfg.Animation.Paused = true
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
