package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/slide/ecs"
	"github.com/milk9111/slide/ecs/component"
)

func NewCamera(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, "camera.yaml")
}

func NewCameraAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	camera, err := NewCamera(w)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, camera, x, y); err != nil {
		return 0, fmt.Errorf("camera: override transform: %w", err)
	}
	if cam, ok := ecs.Get(w, camera, component.CameraComponent.Kind()); ok {
		cam.Position = mgl64.Vec2{x, y}
	}
	return camera, nil
}
