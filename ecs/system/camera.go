package system

import (
	"github.com/milk9111/slide/common"
	"github.com/milk9111/slide/ecs"
	"github.com/milk9111/slide/ecs/component"
)

type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update eases every camera towards the player. Smoothness is the fraction of
// the remaining distance covered per update; zero snaps.
func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	player, ok := w.First(component.PlayerTagComponent.Kind(), component.TransformComponent.Kind())
	if !ok {
		return
	}
	target, _ := ecs.Get(w, player, component.TransformComponent.Kind())

	ecs.ForEach(w, component.CameraComponent.Kind(), func(e ecs.Entity, cam *component.Camera) {
		t := 1.0
		if cam.Smoothness > 0 && cam.Smoothness < 1 {
			t = cam.Smoothness
		}
		cam.Position[0] = common.Lerp(cam.Position.X(), target.Position.X(), t)
		cam.Position[1] = common.Lerp(cam.Position.Y(), target.Position.Y(), t)
	})
}
