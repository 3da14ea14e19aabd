package entity

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/slide/controller"
	"github.com/milk9111/slide/ecs"
	"github.com/milk9111/slide/ecs/component"
	"github.com/milk9111/slide/prefabs"
)

type buildContext struct {
	PrefabPath string
	// Reserve hands out collider ids; nil until a level is loaded.
	Reserve func() controller.ColliderID
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":        addPlayerTag,
	"camera_tag":        addCameraTag,
	"transform":         addTransform,
	"player_controller": addPlayerController,
	"movement_state":    addMovementState,
	"player_hits":       addPlayerHits,
	"safe_respawn":      addSafeRespawn,
	"camera":            addCamera,
}

// Components that read other components go last.
var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"transform",
	"player_controller",
	"movement_state",
	"player_hits",
	"camera",
	"safe_respawn",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Reserve: colliderReserver(w)}
	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for components %v", prefabPath, names)
	}

	return e, nil
}

// SetEntityTransform moves e, keeping its rotation.
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		tr := component.NewTransform(mgl64.Vec3{})
		t = &tr
	}
	t.Position = mgl64.Vec3{x, y, 0}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), t); err != nil {
		return err
	}
	if safe, ok := ecs.Get(w, e, component.SafeRespawnComponent.Kind()); ok {
		safe.Position = t.Position
		safe.Initialized = true
	}
	return nil
}

type reserver interface {
	Reserve() controller.ColliderID
}

func colliderReserver(w *ecs.World) func() controller.ColliderID {
	e, ok := w.First(component.PhysicsComponent.Kind())
	if !ok {
		return nil
	}
	phys, ok := ecs.Get(w, e, component.PhysicsComponent.Kind())
	if !ok {
		return nil
	}
	if r, ok := phys.Caster.(reserver); ok {
		return r.Reserve
	}
	return nil
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	t := component.NewTransform(mgl64.Vec3{spec.X, spec.Y, 0})
	return ecs.Add(w, e, component.TransformComponent.Kind(), &t)
}

type playerControllerSpec = prefabs.PlayerControllerComponentSpec

func addPlayerController(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerControllerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player controller spec: %w", err)
	}
	collider := controller.DefaultCollider()
	if spec.Radius != 0 {
		collider.Radius = spec.Radius
	}
	if spec.Height != 0 {
		collider.Height = spec.Height
	}
	if collider.Radius <= 0 || collider.Height < 2*collider.Radius {
		return fmt.Errorf("collider radius %v height %v is not a capsule", collider.Radius, collider.Height)
	}
	pc := &component.PlayerController{Collider: collider}
	if ctx.Reserve != nil {
		pc.ColliderID = ctx.Reserve()
	}
	return ecs.Add(w, e, component.PlayerControllerComponent.Kind(), pc)
}

func addMovementState(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.MovementStateComponent.Kind(), &component.MovementState{})
}

func addPlayerHits(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerHitsComponent.Kind(), &component.PlayerHits{})
}

// The spawn point is the first safe position.
func addSafeRespawn(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	safe := &component.SafeRespawn{}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		safe.Position = t.Position
		safe.Initialized = true
	}
	return ecs.Add(w, e, component.SafeRespawnComponent.Kind(), safe)
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.Smoothness == 0 {
		spec.Smoothness = 0.15
	}
	if spec.Zoom == 0 {
		spec.Zoom = 48
	}
	cam := &component.Camera{Zoom: spec.Zoom, Smoothness: spec.Smoothness}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		cam.Position = t.Position.Vec2()
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), cam)
}
