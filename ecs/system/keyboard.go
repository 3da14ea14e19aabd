package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/slide/ecs"
	"github.com/milk9111/slide/ecs/component"
)

const stickDeadzone = 0.2

// KeyboardInput samples keyboard and gamepad into the player's movement
// state. It runs once per frame, outside the fixed step.
type KeyboardInput struct{}

func NewKeyboardInput() *KeyboardInput {
	return &KeyboardInput{}
}

func (k *KeyboardInput) Update(w *ecs.World) {
	if w == nil {
		return
	}

	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	jump := ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyL)

	axis := 0.0
	if left {
		axis -= 1
	}
	if right {
		axis += 1
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			axis = leftX
		}
		jump = jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}

	ecs.ForEach(w, component.MovementStateComponent.Kind(), func(e ecs.Entity, state *component.MovementState) {
		state.Press(axis, jump)
	})
}
