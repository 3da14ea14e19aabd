package sim

import (
	"strings"

	"github.com/milk9111/slide/ecs/system"
	"github.com/milk9111/slide/prefabs"
	"go.uber.org/zap"
)

// Reload re-reads a changed prefab. Rejected files leave the running state
// untouched.
func (s *Simulation) Reload(name string) error {
	switch {
	case name == prefabs.ControllerFile:
		p, err := prefabs.LoadControllerParams(name)
		if err != nil {
			return err
		}
		*s.params = p
		s.log.Info("controller params reloaded")
	case name == prefabs.LevelPath(s.level):
		if err := s.Load(); err != nil {
			return err
		}
	case strings.HasPrefix(name, "scripts/") && s.opts.ScriptSource == nil && s.opts.Script != "" &&
		strings.HasSuffix(name, strings.TrimPrefix(s.opts.Script, "scripts/")):
		src, err := prefabs.LoadScript(name)
		if err != nil {
			return err
		}
		script, err := system.NewScriptInput(src, s.log.Named("script"))
		if err != nil {
			return err
		}
		s.script = script
		s.fixed.Scheduler = s.tickScheduler()
		s.log.Info("input script reloaded", zap.String("script", name))
	default:
		s.log.Debug("ignoring prefab change", zap.String("file", name))
	}
	return nil
}

// SwitchLevel unloads the current level and loads name in its place.
func (s *Simulation) SwitchLevel(name string) error {
	prev := s.level
	s.level = name
	if err := s.Load(); err != nil {
		s.level = prev
		return err
	}
	return nil
}
