package controller

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Displacements shorter than this have no usable cast direction.
const minDisplacement = 1e-12

// SlideRequest describes one collide-and-slide resolution.
type SlideRequest struct {
	// Shape is the skin-shrunk collider.
	Shape        Collider
	Self         ColliderID
	Position     mgl64.Vec3
	Displacement mgl64.Vec3
}

// MoveResult is the outcome of CollideAndSlide.
type MoveResult struct {
	Position mgl64.Vec3
	// Velocity overrides the travel-derived velocity when set.
	Velocity *mgl64.Vec3

	Casts int
	Hits  int
	// Interpenetrations counts casts that reported a zero distance hit,
	// meaning the collider already overlaps geometry.
	Interpenetrations int
}

// CollideAndSlide moves a shape along a displacement, stopping at obstacles and
// redirecting the remainder along their surfaces for up to MaxCollisionBounces casts.
func CollideAndSlide(caster ShapeCaster, p *Params, req SlideRequest) MoveResult {
	res := MoveResult{}
	res.Position = collideAndSlide(caster, p, &req, req.Position, req.Displacement, 0, &res)
	return res
}

func collideAndSlide(caster ShapeCaster, p *Params, req *SlideRequest, position, attempted mgl64.Vec3, bounce int, res *MoveResult) mgl64.Vec3 {
	length := attempted.Len()
	if length < minDisplacement {
		return position.Add(attempted)
	}
	direction := attempted.Mul(1 / length)

	res.Casts++
	hit, ok := caster.CastShape(CastQuery{
		Shape:       req.Shape,
		Origin:      position,
		Rotation:    mgl64.QuatIdent(),
		Direction:   direction,
		MaxDistance: length + p.SkinThickness,
		Exclude:     []ColliderID{req.Self},
	})
	if !ok {
		return position.Add(attempted)
	}
	res.Hits++
	if hit.Distance == 0 {
		res.Interpenetrations++
	}

	travel := direction.Mul(math.Max(hit.Distance-p.SkinThickness, 0))
	remaining := attempted.Sub(travel)
	slide := remaining.Sub(projectOnto(remaining, hit.Normal))
	position = position.Add(travel)

	if bounce+1 < p.MaxCollisionBounces {
		return collideAndSlide(caster, p, req, position, slide, bounce+1, res)
	}
	return position
}

// Move resolves velocity*dt from position and returns the corrected position and
// the effective velocity, (end - start) / dt unless the resolver overrides it.
func Move(caster ShapeCaster, p *Params, shape Collider, self ColliderID, position, velocity mgl64.Vec3, dt float64) (mgl64.Vec3, mgl64.Vec3, MoveResult) {
	res := CollideAndSlide(caster, p, SlideRequest{
		Shape:        shape.Shrunk(p.SkinThickness),
		Self:         self,
		Position:     position,
		Displacement: velocity.Mul(dt),
	})
	if res.Velocity != nil {
		return res.Position, *res.Velocity, res
	}
	if dt <= 0 {
		return res.Position, velocity, res
	}
	return res.Position, res.Position.Sub(position).Mul(1 / dt), res
}

func projectOnto(v, onto mgl64.Vec3) mgl64.Vec3 {
	l := onto.LenSqr()
	if l == 0 {
		return mgl64.Vec3{}
	}
	return onto.Mul(v.Dot(onto) / l)
}
