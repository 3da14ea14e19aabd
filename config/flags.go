package config

import "flag"

// Flags are the command-line overrides. Zero values leave the config alone.
type Flags struct {
	Config string
	Debug  bool
	Level  string
	Script string
	Frames int
	Rate   float64
	NoHUD  bool
}

// RegisterFlags binds the overrides to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Level, "level", "", "Level to load")
	fs.StringVar(&f.Script, "script", "", "Tengo input script")
	fs.IntVar(&f.Frames, "frames", 0, "Frames to simulate headless")
	fs.Float64Var(&f.Rate, "rate", 0, "Fixed tick rate in Hz")
	fs.BoolVar(&f.NoHUD, "nohud", false, "Hide the debug HUD")
	return f
}

func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Level != "" {
		cfg.Sim.Level = f.Level
	}
	if f.Script != "" {
		cfg.Sim.Script = f.Script
	}
	if f.Frames > 0 {
		cfg.Sim.Frames = f.Frames
	}
	if f.Rate > 0 {
		cfg.Sim.TickRate = f.Rate
	}
	if f.NoHUD {
		cfg.Debug.ShowHUD = false
	}
}
