// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Map      MapConfig      `yaml:"map"`
	Overlay  OverlayConfig  `yaml:"overlay"`
	Palette  PaletteConfig  `yaml:"palette"`
	Game     GameConfig     `yaml:"game"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds terminal drawing settings.
type GraphicsConfig struct {
	Margin     int    `yaml:"margin"`      // Cells reserved right and below the 3D view
	FPSLimit   int    `yaml:"fps_limit"`   // 0 = unlimited
	WallGlyph  string `yaml:"wall_glyph"`  // Glyph used for wall strips
	ShadeGlyph string `yaml:"shade_glyph"` // Glyph used for ceiling and floor
}

// CameraConfig holds field of view and movement tuning.
type CameraConfig struct {
	FOV           float64       `yaml:"fov"`            // Degrees
	Heading       float64       `yaml:"heading"`        // Degrees from +X towards +Y
	MoveSpeed     float64       `yaml:"move_speed"`     // Cells per second
	RotationSpeed float64       `yaml:"rotation_speed"` // Radians per second
	MaxDelta      time.Duration `yaml:"max_delta"`      // Upper bound for a frame's delta time
}

// MapConfig selects the map and the symbols of plain text maps.
type MapConfig struct {
	Name   string   `yaml:"name"`   // Built-in or search-path map name
	Path   string   `yaml:"path"`   // Explicit map file, overrides Name
	Dirs   []string `yaml:"dirs"`   // Extra directories searched for Name
	Empty  string   `yaml:"empty"`  // Walkable symbol for text maps
	Player string   `yaml:"player"` // Spawn marker for text maps
}

// OverlayConfig toggles the 2D overlays drawn over the view.
type OverlayConfig struct {
	ShowFPS     bool `yaml:"show_fps"`
	ShowMinimap bool `yaml:"show_minimap"`
	ShowDebug   bool `yaml:"show_debug"`
}

// WallColors is the color pair of one wall symbol.
type WallColors struct {
	Light string `yaml:"light"` // Faces hit on the X side
	Dark  string `yaml:"dark"`  // Faces hit on the Y side
}

// PaletteConfig maps wall symbols to colors. Color values are tcell color
// names ("green", "darkblue") or "#rrggbb".
type PaletteConfig struct {
	Walls      map[string]WallColors `yaml:"walls"`
	Fallback   WallColors            `yaml:"fallback"`
	CeilingFar string                `yaml:"ceiling_far"`
	Ceiling    string                `yaml:"ceiling"`
	FloorFar   string                `yaml:"floor_far"`
	Floor      string                `yaml:"floor"`
	Background string                `yaml:"background"`
	Text       string                `yaml:"text"`
}

// GameConfig holds frame loop settings.
type GameConfig struct {
	MaxFrames int `yaml:"max_frames"` // Stop after N frames, 0 = run until quit
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Margin:     10,
			FPSLimit:   0,
			WallGlyph:  "█",
			ShadeGlyph: "▒",
		},
		Camera: CameraConfig{
			FOV:           90,
			Heading:       180,
			MoveSpeed:     40,
			RotationSpeed: 20,
			MaxDelta:      250 * time.Millisecond,
		},
		Map: MapConfig{
			Name:   "classic",
			Empty:  " ",
			Player: "p",
		},
		Overlay: OverlayConfig{
			ShowFPS:     true,
			ShowMinimap: true,
			ShowDebug:   true,
		},
		Palette: PaletteConfig{
			Walls: map[string]WallColors{
				"x": {Light: "green", Dark: "darkgreen"},
				"y": {Light: "blue", Dark: "darkblue"},
				"z": {Light: "yellow", Dark: "olive"},
			},
			Fallback:   WallColors{Light: "white", Dark: "gray"},
			CeilingFar: "darkred",
			Ceiling:    "red",
			FloorFar:   "darkred",
			Floor:      "red",
			Background: "black",
			Text:       "white",
		},
		Game: GameConfig{
			MaxFrames: 0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that would make the viewer misbehave.
func (c *Config) Validate() error {
	var errs []error

	if !(c.Camera.FOV > 0 && c.Camera.FOV < 180) {
		errs = append(errs, fmt.Errorf("camera.fov must be in (0, 180), got %v", c.Camera.FOV))
	}
	if c.Camera.MoveSpeed < 0 {
		errs = append(errs, fmt.Errorf("camera.move_speed must not be negative, got %v", c.Camera.MoveSpeed))
	}
	if c.Camera.RotationSpeed < 0 {
		errs = append(errs, fmt.Errorf("camera.rotation_speed must not be negative, got %v", c.Camera.RotationSpeed))
	}
	if c.Camera.MaxDelta < 0 {
		errs = append(errs, fmt.Errorf("camera.max_delta must not be negative, got %v", c.Camera.MaxDelta))
	}
	if c.Graphics.Margin < 0 {
		errs = append(errs, fmt.Errorf("graphics.margin must not be negative, got %d", c.Graphics.Margin))
	}
	if c.Graphics.FPSLimit < 0 {
		errs = append(errs, fmt.Errorf("graphics.fps_limit must not be negative, got %d", c.Graphics.FPSLimit))
	}
	if c.Game.MaxFrames < 0 {
		errs = append(errs, fmt.Errorf("game.max_frames must not be negative, got %d", c.Game.MaxFrames))
	}

	for name, s := range map[string]string{
		"graphics.wall_glyph":  c.Graphics.WallGlyph,
		"graphics.shade_glyph": c.Graphics.ShadeGlyph,
		"map.empty":            c.Map.Empty,
		"map.player":           c.Map.Player,
	} {
		if utf8.RuneCountInString(s) != 1 {
			errs = append(errs, fmt.Errorf("%s must be a single character, got %q", name, s))
		}
	}
	for sym := range c.Palette.Walls {
		if utf8.RuneCountInString(sym) != 1 {
			errs = append(errs, fmt.Errorf("palette.walls key must be a single character, got %q", sym))
		}
	}

	return errors.Join(errs...)
}
