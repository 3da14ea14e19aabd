package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/slide/controller"
)

// PlayerController is the kinematic state of the controlled character.
// Velocity is carried between ticks instead of being derived from transforms.
type PlayerController struct {
	Velocity   mgl64.Vec3
	Collider   controller.Collider
	ColliderID controller.ColliderID
}

var PlayerControllerComponent = NewComponent[PlayerController]()

// Attachment is present while the character is grounded; absence means airborne.
var AttachmentComponent = NewComponent[controller.Attachment]()
