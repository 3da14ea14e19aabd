// Package sim wires the level, the player and the per-tick systems into a
// single fixed-rate simulation that the viewer and the headless runner share.
package sim

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/slide/controller"
	"github.com/milk9111/slide/ecs"
	"github.com/milk9111/slide/ecs/component"
	"github.com/milk9111/slide/ecs/entity"
	"github.com/milk9111/slide/ecs/system"
	"github.com/milk9111/slide/prefabs"
	"go.uber.org/zap"
)

var ErrNoPlayer = errors.New("sim: no player")

type AppState int

const (
	StateLoading AppState = iota
	StateGame
)

func (s AppState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateGame:
		return "game"
	default:
		return fmt.Sprintf("AppState(%d)", int(s))
	}
}

type Options struct {
	Level    string
	TickRate float64
	MaxSteps int
	// Script names a tengo input script under prefabs/scripts. ScriptSource
	// takes precedence when set.
	Script       string
	ScriptSource []byte
	// PrefabDir overrides the embedded prefabs.
	PrefabDir string
	// HotReload watches PrefabDir for changes.
	HotReload bool
	Logger    *zap.Logger
}

// Simulation runs the controller systems at a fixed rate over one level.
type Simulation struct {
	world   *ecs.World
	params  *controller.Params
	fixed   *ecs.FixedStepper
	frame   *ecs.Scheduler
	script  *system.ScriptInput
	watcher *prefabs.Watcher
	log     *zap.Logger

	state  AppState
	level  string
	opts   Options
	events []ecs.AttachmentEvent
}

func New(opts Options) (*Simulation, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Level == "" {
		opts.Level = "flat"
	}
	if opts.PrefabDir != "" {
		prefabs.DiskRoot = opts.PrefabDir
	}

	params, err := prefabs.LoadControllerParams(prefabs.ControllerFile)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		world:  ecs.NewWorld(),
		params: &params,
		frame:  ecs.NewScheduler(system.NewCameraSystem()),
		log:    log,
		level:  opts.Level,
		opts:   opts,
	}

	if src, err := s.scriptSource(); err != nil {
		return nil, err
	} else if src != nil {
		s.script, err = system.NewScriptInput(src, log.Named("script"))
		if err != nil {
			return nil, err
		}
	}

	s.fixed = ecs.NewFixedStepper(s.tickScheduler(), opts.TickRate, opts.MaxSteps)

	if opts.HotReload {
		if err := s.watch(); err != nil {
			log.Warn("hot reload disabled", zap.Error(err))
		}
	}
	return s, nil
}

func (s *Simulation) scriptSource() ([]byte, error) {
	if s.opts.ScriptSource != nil {
		return s.opts.ScriptSource, nil
	}
	if s.opts.Script == "" {
		return nil, nil
	}
	src, err := prefabs.LoadScript(s.opts.Script)
	if err != nil {
		return nil, fmt.Errorf("sim: load script %s: %w", s.opts.Script, err)
	}
	return src, nil
}

// tickScheduler holds the per-tick order: input, gravity, inputs, move,
// ground query, markers, then respawn.
func (s *Simulation) tickScheduler() *ecs.Scheduler {
	sched := ecs.NewScheduler()
	if s.script != nil {
		sched.Add(s.script)
	}
	sched.Add(system.NewGravitySystem(s.params, s.log.Named("gravity")))
	sched.Add(system.NewInputSystem(s.params, s.log.Named("input")))
	sched.Add(system.NewMoveSystem(s.params, s.log.Named("move")))
	sched.Add(system.NewGroundQuerySystem(s.params, s.log.Named("ground")))
	sched.Add(system.NewMarkerSystem(s.params, s.log.Named("marker")))
	sched.Add(system.NewRespawnSystem(s.params, s.log.Named("respawn")))
	return sched
}

func (s *Simulation) watch() error {
	var dirs []string
	for _, dir := range []string{prefabs.DiskRoot, filepath.Join(prefabs.DiskRoot, "levels"), filepath.Join(prefabs.DiskRoot, "scripts")} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return fmt.Errorf("sim: no prefab directory at %s", prefabs.DiskRoot)
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		return err
	}
	s.watcher = w
	s.log.Info("watching prefabs", zap.Strings("dirs", dirs))
	return nil
}

// AddFrameSystem adds a system that runs once per Update, before the fixed steps.
func (s *Simulation) AddFrameSystem(sys ecs.System) {
	s.frame = ecs.NewScheduler(append([]ecs.System{sys}, s.frame.Systems()...)...)
}

// Load builds the level, the player and the camera and enters the game state.
func (s *Simulation) Load() error {
	spec, err := prefabs.LoadLevel(s.level)
	if err != nil {
		return err
	}
	if _, _, err := entity.NewLevel(s.world, spec); err != nil {
		return err
	}
	spawn := spec.Spawn.Vec()

	player, ok := s.world.First(component.PlayerTagComponent.Kind())
	if !ok {
		if player, err = entity.NewPlayerAt(s.world, spawn.X(), spawn.Y()); err != nil {
			return err
		}
	} else if err := s.teleport(player, spawn); err != nil {
		return err
	}
	if _, ok := s.world.First(component.CameraComponent.Kind()); !ok {
		if _, err := entity.NewCameraAt(s.world, spawn.X(), spawn.Y()); err != nil {
			return err
		}
	}

	s.state = StateGame
	s.log.Info("level loaded", zap.String("level", spec.Name), zap.Stringer("player", player))
	return nil
}

func (s *Simulation) teleport(player ecs.Entity, at mgl64.Vec2) error {
	if err := entity.SetEntityTransform(s.world, player, at.X(), at.Y()); err != nil {
		return err
	}
	if pc, ok := ecs.Get(s.world, player, component.PlayerControllerComponent.Kind()); ok {
		pc.Velocity = mgl64.Vec3{}
	}
	if hits, ok := ecs.Get(s.world, player, component.PlayerHitsComponent.Kind()); ok {
		hits.Ground = nil
	}
	if ecs.Remove(s.world, player, component.AttachmentComponent.Kind()) {
		s.world.Events().Push(ecs.Event{
			Type: ecs.EventTypeAttachment,
			Data: ecs.AttachmentEvent{Entity: player, Kind: ecs.AttachmentEventAirborne},
		})
	}
	return nil
}

// Update advances the simulation by one frame of frameDt seconds and
// returns how many fixed ticks ran.
func (s *Simulation) Update(frameDt float64) (int, error) {
	s.drainWatcher()

	if s.state == StateLoading {
		if err := s.Load(); err != nil {
			return 0, err
		}
	}

	s.frame.Update(s.world)
	steps := s.fixed.Advance(s.world, frameDt)
	s.collectEvents()
	return steps, nil
}

// Step runs exactly one fixed tick.
func (s *Simulation) Step() error {
	_, err := s.Update(s.fixed.Step)
	return err
}

func (s *Simulation) collectEvents() {
	s.events = s.events[:0]
	for _, evt := range s.world.Events().Drain() {
		ae, ok := evt.Data.(ecs.AttachmentEvent)
		if !ok {
			continue
		}
		s.events = append(s.events, ae)
		s.log.Debug("attachment", zap.String("kind", string(ae.Kind)), zap.Uint64("tick", s.fixed.Ticks()))
	}
}

func (s *Simulation) drainWatcher() {
	if s.watcher == nil {
		return
	}
	for {
		select {
		case file, ok := <-s.watcher.Events:
			if !ok {
				s.watcher = nil
				return
			}
			if err := s.Reload(prefabs.PrefabName(file)); err != nil {
				s.log.Error("reload failed", zap.String("file", file), zap.Error(err))
			}
		case err, ok := <-s.watcher.Errors:
			if ok {
				s.log.Warn("prefab watcher", zap.Error(err))
			}
		default:
			return
		}
	}
}

// Close stops the prefab watcher.
func (s *Simulation) Close() error {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Close()
}

func (s *Simulation) World() *ecs.World {
	return s.world
}

func (s *Simulation) State() AppState {
	return s.state
}

func (s *Simulation) Level() string {
	return s.level
}

func (s *Simulation) Ticks() uint64 {
	return s.fixed.Ticks()
}

// TickDuration is the length of one fixed tick in seconds.
func (s *Simulation) TickDuration() float64 {
	return s.fixed.Step
}

// Events returns the attachment changes of the latest Update.
func (s *Simulation) Events() []ecs.AttachmentEvent {
	return s.events
}

func (s *Simulation) Params() controller.Params {
	return *s.params
}

// SetParams validates p and applies it from the next tick on.
func (s *Simulation) SetParams(p controller.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	*s.params = p
	return nil
}
