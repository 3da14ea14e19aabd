package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/slide/controller"
	"github.com/milk9111/slide/ecs"
	"github.com/milk9111/slide/ecs/component"
	"go.uber.org/zap"
)

// DefaultFallMargin is how far below the level bounds a player may fall before respawning.
const DefaultFallMargin = 10.0

// RespawnSystem remembers where the player last stood on walkable ground and
// teleports it back there after it falls out of the level.
type RespawnSystem struct {
	params     *controller.Params
	log        *zap.Logger
	FallMargin float64
}

func NewRespawnSystem(params *controller.Params, log *zap.Logger) *RespawnSystem {
	return &RespawnSystem{params: params, log: orNop(log), FallMargin: DefaultFallMargin}
}

func (s *RespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var bounds *component.LevelBounds
	if e, ok := w.First(component.LevelBoundsComponent.Kind()); ok {
		bounds, _ = ecs.Get(w, e, component.LevelBoundsComponent.Kind())
	}

	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag, t *component.Transform) {
		safe, ok := ecs.Get(w, e, component.SafeRespawnComponent.Kind())
		if !ok {
			safe = &component.SafeRespawn{}
			_ = ecs.Add(w, e, component.SafeRespawnComponent.Kind(), safe)
		}
		fell := bounds != nil && bounds.Below(t.Position.Y(), s.FallMargin)
		if !fell && attachmentOf(w, e).Walkable(s.params) {
			safe.Position = t.Position
			safe.Initialized = true
		}
		if fell {
			_ = ecs.Add(w, e, component.RespawnRequestComponent.Kind(), &component.RespawnRequest{})
		}
		if !ecs.Has(w, e, component.RespawnRequestComponent.Kind()) {
			return
		}
		ecs.Remove(w, e, component.RespawnRequestComponent.Kind())

		if !safe.Initialized {
			s.log.Warn("respawn requested without a safe position", zap.Stringer("entity", e))
			return
		}
		s.respawn(w, e, t, safe.Position)
	})
}

func (s *RespawnSystem) respawn(w *ecs.World, e ecs.Entity, t *component.Transform, at mgl64.Vec3) {
	from := t.Position
	t.Position = at
	if pc, ok := ecs.Get(w, e, component.PlayerControllerComponent.Kind()); ok {
		pc.Velocity = mgl64.Vec3{}
	}
	if hits, ok := ecs.Get(w, e, component.PlayerHitsComponent.Kind()); ok {
		hits.Ground = nil
	}
	if ecs.Remove(w, e, component.AttachmentComponent.Kind()) {
		w.Events().Push(ecs.Event{
			Type: ecs.EventTypeAttachment,
			Data: ecs.AttachmentEvent{Entity: e, Kind: ecs.AttachmentEventAirborne},
		})
	}
	s.log.Info("respawned",
		zap.Stringer("entity", e),
		zap.Float64("from_y", from.Y()),
		zap.Float64("x", at.X()),
		zap.Float64("y", at.Y()),
	)
}
