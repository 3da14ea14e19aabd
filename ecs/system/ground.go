package system

import (
	"github.com/milk9111/slide/controller"
	"github.com/milk9111/slide/ecs"
	"github.com/milk9111/slide/ecs/component"
	"go.uber.org/zap"
)

// GroundQuerySystem probes below the player after it moved and keeps grounded
// players flush with the surface, moving along it rather than into it.
type GroundQuerySystem struct {
	params *controller.Params
	log    *zap.Logger
}

func NewGroundQuerySystem(params *controller.Params, log *zap.Logger) *GroundQuerySystem {
	return &GroundQuerySystem{params: params, log: orNop(log)}
}

func (s *GroundQuerySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	e, ok := controlledPlayer(w, s.log, "ground")
	if !ok {
		return
	}
	caster, ok := levelCaster(w, s.log, "ground")
	if !ok {
		return
	}
	pc, _ := ecs.Get(w, e, component.PlayerControllerComponent.Kind())
	t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	grounded := ecs.Has(w, e, component.AttachmentComponent.Kind())

	probe := controller.ProbeGround(caster, s.params, pc.Collider, pc.ColliderID, t.Position, pc.Velocity, grounded)
	t.Position = t.Position.Add(probe.Snap)
	pc.Velocity = probe.Velocity
	hitsOf(w, e).Ground = probe.Ground
}
