package controller

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// escapeMinSpeed is the speed below which a character is never considered to be
// leaving a surface, since the direction of a near-zero velocity is noise.
const escapeMinSpeed = 1e-3

var Down = mgl64.Vec3{0, -1, 0}

// Escaping reports whether velocity points away from the surface with normal
// within EscapeIncidence, i.e. cos(angle(normal, velocity)) > cos(EscapeIncidence).
func Escaping(normal, velocity mgl64.Vec3, p *Params) bool {
	speed := velocity.Len()
	nl := normal.Len()
	if speed < escapeMinSpeed || nl == 0 {
		return false
	}
	incidence := normal.Dot(velocity) / (nl * speed)
	return incidence > math.Cos(p.EscapeIncidence)
}

// SelectGroundHit returns the first hit the character is not escaping from.
func SelectGroundHit(hits []Hit, velocity mgl64.Vec3, p *Params) (Hit, bool) {
	for _, hit := range hits {
		if !Escaping(hit.Normal, velocity, p) {
			return hit, true
		}
	}
	return Hit{}, false
}

// GroundProbe is the result of ProbeGround.
type GroundProbe struct {
	Ground *Hit
	// Snap is the correction to apply to the position; zero unless the
	// character was already grounded and ground is still below it.
	Snap mgl64.Vec3
	// Velocity is the input velocity with any component into the snapped
	// ground removed.
	Velocity mgl64.Vec3
}

// ProbeGround casts shape, shrunk by the skin thickness, straight down from
// position and picks the ground hit for this step.
func ProbeGround(caster ShapeCaster, p *Params, shape Collider, self ColliderID, position, velocity mgl64.Vec3, grounded bool) GroundProbe {
	hits := caster.CastShapeAll(CastQuery{
		Shape:       shape.Shrunk(p.SkinThickness),
		Origin:      position,
		Rotation:    mgl64.QuatIdent(),
		Direction:   Down,
		MaxDistance: p.GroundingProximity,
		Exclude:     []ColliderID{self},
	}, p.GroundCastMaxHits)

	hit, ok := SelectGroundHit(hits, velocity, p)
	if !ok {
		return GroundProbe{Velocity: velocity}
	}
	probe := GroundProbe{Ground: &hit, Velocity: velocity}
	if grounded {
		probe.Snap = Down.Mul(hit.Distance - p.SkinThickness)
		if into := velocity.Dot(hit.Normal); into < 0 {
			probe.Velocity = velocity.Sub(hit.Normal.Mul(into))
		}
	}
	return probe
}
