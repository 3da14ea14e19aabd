package component

import "github.com/go-gl/mathgl/mgl64"

// Camera follows the player in the viewer.
type Camera struct {
	Position mgl64.Vec2
	// Zoom is pixels per world unit.
	Zoom       float64
	Smoothness float64
}

var CameraComponent = NewComponent[Camera]()
