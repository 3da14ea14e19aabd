package system

import (
	"github.com/milk9111/slide/controller"
	"github.com/milk9111/slide/ecs"
	"github.com/milk9111/slide/ecs/component"
	"go.uber.org/zap"
)

// InputSystem turns the movement state into acceleration and jumps.
type InputSystem struct {
	params *controller.Params
	log    *zap.Logger
}

func NewInputSystem(params *controller.Params, log *zap.Logger) *InputSystem {
	return &InputSystem{params: params, log: orNop(log)}
}

func (s *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	e, ok := controlledPlayer(w, s.log, "input")
	if !ok {
		return
	}
	pc, _ := ecs.Get(w, e, component.PlayerControllerComponent.Kind())

	var in controller.Input
	state, hasState := ecs.Get(w, e, component.MovementStateComponent.Kind())
	if hasState {
		in = controller.Input{
			HorizontalAxis:  state.HorizontalAxis,
			JumpJustPressed: state.JumpJustPressed,
		}
		// A press is consumed by the first tick that sees it.
		state.JumpJustPressed = false
	}

	velocity, jumped := controller.ApplyInputs(pc.Velocity, attachmentOf(w, e), in, s.params, w.DeltaTime())
	pc.Velocity = velocity
	if !jumped {
		return
	}

	ecs.Remove(w, e, component.AttachmentComponent.Kind())
	w.Events().Push(ecs.Event{
		Type: ecs.EventTypeAttachment,
		Data: ecs.AttachmentEvent{Entity: e, Kind: ecs.AttachmentEventJumped},
	})
	s.log.Debug("jump", zap.Stringer("entity", e), zap.Float64("vy", velocity.Y()))
}
