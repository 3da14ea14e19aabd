package system

import (
	"github.com/milk9111/slide/controller"
	"github.com/milk9111/slide/ecs"
	"github.com/milk9111/slide/ecs/component"
	"go.uber.org/zap"
)

// MoveSystem resolves the player's velocity against the level with collide-and-slide.
type MoveSystem struct {
	params *controller.Params
	log    *zap.Logger
}

func NewMoveSystem(params *controller.Params, log *zap.Logger) *MoveSystem {
	return &MoveSystem{params: params, log: orNop(log)}
}

func (s *MoveSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	e, ok := controlledPlayer(w, s.log, "move")
	if !ok {
		return
	}
	caster, ok := levelCaster(w, s.log, "move")
	if !ok {
		return
	}
	pc, _ := ecs.Get(w, e, component.PlayerControllerComponent.Kind())
	t, _ := ecs.Get(w, e, component.TransformComponent.Kind())

	position, velocity, res := controller.Move(caster, s.params, pc.Collider, pc.ColliderID, t.Position, pc.Velocity, w.DeltaTime())
	if res.Interpenetrations > 0 {
		s.log.Warn("shape cast started inside geometry",
			zap.Stringer("entity", e),
			zap.Int("casts", res.Interpenetrations),
			zap.Float64("x", t.Position.X()),
			zap.Float64("y", t.Position.Y()),
		)
	}
	t.Position = position
	pc.Velocity = velocity
	hitsOf(w, e).LastMove = res
}
