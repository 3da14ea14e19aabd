package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("config: invalid")

// DefaultPath is used when no path is given and the file exists.
const DefaultPath = "slide.yaml"

// Load loads configuration with priority: defaults < file < flags.
// An empty path falls back to DefaultPath if it exists.
func Load(path string, flags *Flags) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultPath); err == nil {
			path = DefaultPath
		}
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	flags.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func (c *Config) Validate() error {
	switch {
	case c.Sim.TickRate <= 0:
		return fmt.Errorf("%w: tick rate %v must be positive", ErrInvalidConfig, c.Sim.TickRate)
	case c.Sim.MaxStepsPerFrame < 1:
		return fmt.Errorf("%w: max steps per frame %d must be at least 1", ErrInvalidConfig, c.Sim.MaxStepsPerFrame)
	case c.Sim.Level == "":
		return fmt.Errorf("%w: no level", ErrInvalidConfig)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	return nil
}
