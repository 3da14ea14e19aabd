package system

import (
	"github.com/milk9111/slide/controller"
	"github.com/milk9111/slide/ecs"
	"github.com/milk9111/slide/ecs/component"
	"go.uber.org/zap"
)

// MarkerSystem adds, refreshes or removes the player's attachment from the
// latest ground probe.
type MarkerSystem struct {
	params *controller.Params
	log    *zap.Logger
}

func NewMarkerSystem(params *controller.Params, log *zap.Logger) *MarkerSystem {
	return &MarkerSystem{params: params, log: orNop(log)}
}

func (s *MarkerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	e, ok := controlledPlayer(w, s.log, "marker")
	if !ok {
		return
	}
	var ground *controller.Hit
	if hits, ok := ecs.Get(w, e, component.PlayerHitsComponent.Kind()); ok {
		ground = hits.Ground
	}

	next, transition := controller.NextAttachment(attachmentOf(w, e), ground, s.params)
	switch transition {
	case controller.TransitionAttached:
		_ = ecs.Add(w, e, component.AttachmentComponent.Kind(), next)
		s.emit(w, e, ecs.AttachmentEventGrounded)
		s.log.Debug("grounded",
			zap.Stringer("entity", e),
			zap.Float64("slope", ground.NormalAngle),
		)
	case controller.TransitionRefreshed:
		_ = ecs.Add(w, e, component.AttachmentComponent.Kind(), next)
	case controller.TransitionDetached:
		ecs.Remove(w, e, component.AttachmentComponent.Kind())
		s.emit(w, e, ecs.AttachmentEventAirborne)
		s.log.Debug("airborne", zap.Stringer("entity", e))
	}
}

func (s *MarkerSystem) emit(w *ecs.World, e ecs.Entity, kind ecs.AttachmentEventKind) {
	w.Events().Push(ecs.Event{
		Type: ecs.EventTypeAttachment,
		Data: ecs.AttachmentEvent{Entity: e, Kind: kind},
	})
}
