package system

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/slide/ecs"
	"github.com/milk9111/slide/ecs/component"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

// view maps world units (Y up) to screen pixels (Y down) around the camera.
type view struct {
	camX, camY float64
	zoom       float64
	halfW      float64
	halfH      float64
}

func newView(w *ecs.World, screen *ebiten.Image) view {
	v := view{zoom: 1}
	if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
		if cam, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok {
			v.camX, v.camY = cam.Position.X(), cam.Position.Y()
			if cam.Zoom > 0 {
				v.zoom = cam.Zoom
			}
		}
	}
	b := screen.Bounds()
	v.halfW = float64(b.Dx()) / 2
	v.halfH = float64(b.Dy()) / 2
	return v
}

func (v view) toScreen(x, y float64) (float64, float64) {
	return (x-v.camX)*v.zoom + v.halfW, v.halfH - (y-v.camY)*v.zoom
}

// DrawPhysicsDebug outlines every shape in the level's chipmunk space.
func DrawPhysicsDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	e, ok := w.First(component.PhysicsComponent.Kind())
	if !ok {
		return
	}
	phys, ok := ecs.Get(w, e, component.PhysicsComponent.Kind())
	if !ok || phys.Space == nil {
		return
	}
	cp.DrawSpace(phys.Space, &physicsDebugDrawer{screen: screen, view: newView(w, screen)})
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	view   view
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, toNRGBA(outline))
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, toNRGBA(outline))
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, toNRGBA(fill))
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, toNRGBA(outline))
	if radius > 0 {
		d.drawCircle(a, radius, toNRGBA(outline))
		d.drawCircle(b, radius, toNRGBA(outline))
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], toNRGBA(outline))
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	x, y := d.view.toScreen(pos.X, pos.Y)
	half := size / 2
	c := toNRGBA(fill)
	ebitenutil.DrawLine(d.screen, x-half, y, x+half, y, c)
	ebitenutil.DrawLine(d.screen, x, y-half, x, y+half, c)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c color.Color) {
	x1, y1 := d.view.toScreen(a.X, a.Y)
	x2, y2 := d.view.toScreen(b.X, b.Y)
	ebitenutil.DrawLine(d.screen, x1, y1, x2, y2, c)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, c color.Color) {
	for i := 0; i < len(verts); i++ {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, c color.Color) {
	drawWorldCircle(d.screen, d.view, center.X, center.Y, radius, c)
}

func drawWorldCircle(screen *ebiten.Image, v view, cx, cy, radius float64, c color.Color) {
	if radius <= 0 {
		return
	}
	px, py := v.toScreen(cx+radius, cy)
	for i := 1; i <= debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		x, y := v.toScreen(cx+math.Cos(t)*radius, cy+math.Sin(t)*radius)
		ebitenutil.DrawLine(screen, px, py, x, y, c)
		px, py = x, y
	}
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
