// Package config holds the settings of the viewer and the headless runner.
package config

// Config holds all application settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Sim     SimConfig     `yaml:"sim"`
	Debug   DebugConfig   `yaml:"debug"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds viewer window settings.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// SimConfig holds simulation settings.
type SimConfig struct {
	Level string `yaml:"level"`
	// TickRate is the fixed physics rate in Hz.
	TickRate         float64 `yaml:"tick_rate"`
	MaxStepsPerFrame int     `yaml:"max_steps_per_frame"`
	// Script drives the player instead of the keyboard when set.
	Script string `yaml:"script"`
	// Frames is how many frames the headless runner simulates.
	Frames    int  `yaml:"frames"`
	HotReload bool `yaml:"hot_reload"`
	// PrefabDir is checked for prefab overrides and watched for changes.
	PrefabDir string `yaml:"prefab_dir"`
}

// DebugConfig toggles viewer overlays.
type DebugConfig struct {
	ShowHUD     bool `yaml:"show_hud"`
	DrawPhysics bool `yaml:"draw_physics"`
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
			Width:  1280,
			Height: 720,
			Title:  "slide",
		},
		Sim: SimConfig{
			Level:            "flat",
			TickRate:         96,
			MaxStepsPerFrame: 8,
			Frames:           600,
			HotReload:        true,
			PrefabDir:        "prefabs",
		},
		Debug: DebugConfig{
			ShowHUD:     true,
			DrawPhysics: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
