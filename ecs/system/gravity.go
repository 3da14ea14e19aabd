package system

import (
	"github.com/milk9111/slide/controller"
	"github.com/milk9111/slide/ecs"
	"github.com/milk9111/slide/ecs/component"
	"go.uber.org/zap"
)

type GravitySystem struct {
	params *controller.Params
	log    *zap.Logger
}

func NewGravitySystem(params *controller.Params, log *zap.Logger) *GravitySystem {
	return &GravitySystem{params: params, log: orNop(log)}
}

func (s *GravitySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	e, ok := controlledPlayer(w, s.log, "gravity")
	if !ok {
		return
	}
	pc, _ := ecs.Get(w, e, component.PlayerControllerComponent.Kind())
	pc.Velocity = controller.ApplyGravity(pc.Velocity, attachmentOf(w, e), s.params, w.DeltaTime())
}
