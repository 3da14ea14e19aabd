package system

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/slide/controller"
	"github.com/milk9111/slide/ecs"
	"github.com/milk9111/slide/ecs/component"
	"golang.org/x/image/colornames"
)

// velocityScale turns world units per second into a drawn line length.
const velocityScale = 0.25

type RenderSystem struct {
	ShowHUD     bool
	DrawPhysics bool
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{ShowHUD: true, DrawPhysics: true}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	screen.Fill(colornames.Midnightblue)
	if r.DrawPhysics {
		DrawPhysicsDebug(w, screen)
	}

	player, ok := w.First(component.PlayerTagComponent.Kind(), component.PlayerControllerComponent.Kind(), component.TransformComponent.Kind())
	if !ok {
		ebitenutil.DebugPrintAt(screen, "loading", 10, 10)
		return
	}
	v := newView(w, screen)
	pc, _ := ecs.Get(w, player, component.PlayerControllerComponent.Kind())
	t, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	attachment := attachmentOf(w, player)

	body := colornames.Tomato
	if attachment != nil {
		body = colornames.Gold
	}
	x, y := t.Position.X(), t.Position.Y()
	half := pc.Collider.HalfSpine()
	radius := pc.Collider.Radius
	drawWorldCircle(screen, v, x, y-half, radius, body)
	drawWorldCircle(screen, v, x, y+half, radius, body)
	for _, side := range []float64{-radius, radius} {
		x1, y1 := v.toScreen(x+side, y-half)
		x2, y2 := v.toScreen(x+side, y+half)
		ebitenutil.DrawLine(screen, x1, y1, x2, y2, body)
	}

	cx, cy := v.toScreen(x, y)
	vx, vy := v.toScreen(x+pc.Velocity.X()*velocityScale, y+pc.Velocity.Y()*velocityScale)
	ebitenutil.DrawLine(screen, cx, cy, vx, vy, colornames.Skyblue)

	if hits, ok := ecs.Get(w, player, component.PlayerHitsComponent.Kind()); ok && hits.Ground != nil {
		foot := y - pc.Collider.HalfHeight()
		fx, fy := v.toScreen(x, foot)
		nx, ny := v.toScreen(x+hits.Ground.Normal.X(), foot+hits.Ground.Normal.Y())
		ebitenutil.DrawLine(screen, fx, fy, nx, ny, colornames.Lightgreen)
	}

	if !r.ShowHUD {
		return
	}
	state := "airborne"
	if attachment != nil {
		state = fmt.Sprintf("grounded, slope %.1f deg", mgl64.RadToDeg(controller.AngleToUp(attachment.Normal)))
	}
	text := fmt.Sprintf("pos   %.2f, %.2f\nvel   %.2f, %.2f\nstate %s\nTPS   %.0f",
		x, y, pc.Velocity.X(), pc.Velocity.Y(), state, ebiten.ActualTPS())
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}
