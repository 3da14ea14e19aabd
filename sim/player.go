package sim

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/slide/controller"
	"github.com/milk9111/slide/ecs"
	"github.com/milk9111/slide/ecs/component"
)

// PlayerSnapshot is a copy of the controlled character's state.
type PlayerSnapshot struct {
	Entity   ecs.Entity
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Velocity mgl64.Vec3
	Collider controller.Collider
	// Attachment is nil while airborne.
	Attachment *controller.Attachment
	Ground     *controller.Hit
}

func (p PlayerSnapshot) Grounded() bool {
	return p.Attachment != nil
}

func (s *Simulation) Player() (PlayerSnapshot, error) {
	e, err := s.world.Single(
		component.PlayerTagComponent.Kind(),
		component.PlayerControllerComponent.Kind(),
		component.TransformComponent.Kind(),
	)
	if err != nil {
		return PlayerSnapshot{}, ErrNoPlayer
	}
	t, _ := ecs.Get(s.world, e, component.TransformComponent.Kind())
	pc, _ := ecs.Get(s.world, e, component.PlayerControllerComponent.Kind())
	snap := PlayerSnapshot{
		Entity:   e,
		Position: t.Position,
		Rotation: t.Rotation,
		Velocity: pc.Velocity,
		Collider: pc.Collider,
	}
	if a, ok := ecs.Get(s.world, e, component.AttachmentComponent.Kind()); ok {
		copied := *a
		snap.Attachment = &copied
	}
	if hits, ok := ecs.Get(s.world, e, component.PlayerHitsComponent.Kind()); ok && hits.Ground != nil {
		copied := *hits.Ground
		snap.Ground = &copied
	}
	return snap, nil
}
