package system

import (
	"errors"

	"github.com/milk9111/slide/controller"
	"github.com/milk9111/slide/ecs"
	"github.com/milk9111/slide/ecs/component"
	"go.uber.org/zap"
)

func orNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// controlledPlayer returns the one controlled character. A missing or
// duplicated player is expected while a level loads or unloads, so it is
// logged and the caller skips the tick.
func controlledPlayer(w *ecs.World, log *zap.Logger, system string) (ecs.Entity, bool) {
	e, err := w.Single(
		component.PlayerTagComponent.Kind(),
		component.PlayerControllerComponent.Kind(),
		component.TransformComponent.Kind(),
	)
	switch {
	case err == nil:
		return e, true
	case errors.Is(err, ecs.ErrMultipleEntities):
		log.Warn("skipping tick", zap.String("system", system), zap.Error(err))
	default:
		log.Debug("skipping tick", zap.String("system", system), zap.Error(err))
	}
	return 0, false
}

// levelCaster returns the shape caster of the loaded level.
func levelCaster(w *ecs.World, log *zap.Logger, system string) (controller.ShapeCaster, bool) {
	e, err := w.Single(component.PhysicsComponent.Kind())
	if err != nil {
		log.Debug("skipping tick", zap.String("system", system), zap.Error(err))
		return nil, false
	}
	phys, ok := ecs.Get(w, e, component.PhysicsComponent.Kind())
	if !ok || phys.Caster == nil {
		log.Debug("skipping tick", zap.String("system", system), zap.String("reason", "no caster"))
		return nil, false
	}
	return phys.Caster, true
}

// attachmentOf returns nil while e is airborne.
func attachmentOf(w *ecs.World, e ecs.Entity) *controller.Attachment {
	a, ok := ecs.Get(w, e, component.AttachmentComponent.Kind())
	if !ok {
		return nil
	}
	return a
}

func hitsOf(w *ecs.World, e ecs.Entity) *component.PlayerHits {
	if hits, ok := ecs.Get(w, e, component.PlayerHitsComponent.Kind()); ok {
		return hits
	}
	hits := &component.PlayerHits{}
	_ = ecs.Add(w, e, component.PlayerHitsComponent.Kind(), hits)
	return hits
}
