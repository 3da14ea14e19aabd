package component

// MovementState stores movement intent for an entity.
type MovementState struct {
	// HorizontalAxis is in [-1, 1].
	HorizontalAxis float64
	PressingJump   bool
	// JumpJustPressed latches a press until a tick consumes it.
	JumpJustPressed bool
}

// Press samples the controls. A jump press is registered on the sample where
// the button goes down.
func (m *MovementState) Press(axis float64, jump bool) {
	m.HorizontalAxis = axis
	if jump && !m.PressingJump {
		m.JumpJustPressed = true
	}
	m.PressingJump = jump
}

var MovementStateComponent = NewComponent[MovementState]()
