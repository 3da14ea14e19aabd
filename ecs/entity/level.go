package entity

import (
	"fmt"

	"github.com/milk9111/slide/ecs"
	"github.com/milk9111/slide/ecs/component"
	"github.com/milk9111/slide/physics"
	"github.com/milk9111/slide/prefabs"
)

// LoadLevel replaces the loaded level with levels/<name>.yaml.
func LoadLevel(w *ecs.World, name string) (ecs.Entity, *physics.World, error) {
	spec, err := prefabs.LoadLevel(name)
	if err != nil {
		return 0, nil, err
	}
	return NewLevel(w, spec)
}

// NewLevel builds the static collision world of spec and stores it on a new
// level entity. Any previously loaded level is unloaded and existing
// characters get fresh collider ids from the new world.
func NewLevel(w *ecs.World, spec prefabs.LevelSpec) (ecs.Entity, *physics.World, error) {
	geometry, err := spec.Geometry()
	if err != nil {
		return 0, nil, err
	}
	pw, err := physics.NewWorldFromGeometry(geometry)
	if err != nil {
		return 0, nil, fmt.Errorf("level %q: %w", spec.Name, err)
	}

	UnloadLevel(w)

	min, max := spec.LevelBounds(geometry)
	level := ecs.CreateEntity(w)
	if err := ecs.Add(w, level, component.PhysicsComponent.Kind(), &component.Physics{Caster: pw, Space: pw.Space()}); err != nil {
		return 0, nil, fmt.Errorf("level: add physics: %w", err)
	}
	if err := ecs.Add(w, level, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Min: min, Max: max}); err != nil {
		return 0, nil, fmt.Errorf("level: add bounds: %w", err)
	}
	if err := ecs.Add(w, level, component.LevelLoadedComponent.Kind(), &component.LevelLoaded{Name: spec.Name}); err != nil {
		return 0, nil, fmt.Errorf("level: add loaded marker: %w", err)
	}

	ecs.ForEach(w, component.PlayerControllerComponent.Kind(), func(_ ecs.Entity, pc *component.PlayerController) {
		pc.ColliderID = pw.Reserve()
	})
	return level, pw, nil
}

// UnloadLevel destroys every level entity.
func UnloadLevel(w *ecs.World) {
	for _, e := range w.Query(component.PhysicsComponent.Kind()) {
		ecs.DestroyEntity(w, e)
	}
}
