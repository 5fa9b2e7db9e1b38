package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging and all overlays")
	flagMap        = flag.String("map", "", "Map name or path to a .yaml/.txt map file")
	flagFOV        = flag.Float64("fov", 0, "Field of view in degrees")
	flagMargin     = flag.Int("margin", -1, "Cells reserved right and below the view")
	flagFrames     = flag.Int("frames", 0, "Stop after N frames")
	flagLogFile    = flag.String("log-file", "", "Write logs to this file")
	flagSaveConfig = flag.Bool("save-config", false, "Write the effective config to the config directory")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Overlay.ShowFPS = true
		cfg.Overlay.ShowDebug = true
	}
	if *flagMap != "" {
		if looksLikePath(*flagMap) {
			cfg.Map.Path = *flagMap
		} else {
			cfg.Map.Name = *flagMap
			cfg.Map.Path = ""
		}
	}
	if *flagFOV > 0 {
		cfg.Camera.FOV = *flagFOV
	}
	if *flagMargin >= 0 {
		cfg.Graphics.Margin = *flagMargin
	}
	if *flagFrames > 0 {
		cfg.Game.MaxFrames = *flagFrames
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
