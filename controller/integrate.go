package controller

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/slide/common"
)

// inputEpsilon is the dead zone for the horizontal axis and velocity alignment checks.
const inputEpsilon = 1e-6

// Input is the movement intent for one step.
type Input struct {
	// HorizontalAxis is in [-1, 1].
	HorizontalAxis  float64
	JumpJustPressed bool
}

type manoeuvreMode int

const (
	horizontalInput manoeuvreMode = iota
	planarInput
)

// ApplyGravity integrates the vertical velocity for one step.
// Walkable ground suppresses gravity; the terminal clamp still runs.
func ApplyGravity(velocity mgl64.Vec3, attachment *Attachment, p *Params, dt float64) mgl64.Vec3 {
	gravity := p.Gravity
	if attachment.Walkable(p) {
		gravity = mgl64.Vec3{}
	}
	velocity[1] = common.ApproachVelocity(velocity.Y(), gravity.Y(), dt, p.terminalFor(p.Gravity))
	return velocity
}

// ApplyInputs integrates horizontal acceleration and the jump impulse for one step.
// It reports whether a jump happened; the caller must then drop the attachment.
func ApplyInputs(velocity mgl64.Vec3, attachment *Attachment, in Input, p *Params, dt float64) (mgl64.Vec3, bool) {
	factors := &p.AerialMovement
	mode := horizontalInput
	canJump := false
	var normal mgl64.Vec3

	if attachment != nil && attachment.Kind == AttachmentGrounded {
		factors = &p.GroundMovement
		canJump = true
		if attachment.Walkable(p) {
			mode = planarInput
			normal = attachment.Normal.Normalize()
		}
	}

	switch mode {
	case planarInput:
		velocity = planarManoeuvre(velocity, normal, in.HorizontalAxis, factors, p, dt)
	default:
		velocity[0] = horizontalManoeuvre(velocity.X(), in.HorizontalAxis, factors, p, dt)
	}

	jumped := false
	if in.JumpJustPressed && canJump {
		velocity[1] += factors.JumpFactor * p.BaseMovement.JumpFactor
		jumped = true
	}
	velocity[2] = 0
	return velocity, jumped
}

func horizontalManoeuvre(vx, axis float64, factors *Manoeuvrability, p *Params, dt float64) float64 {
	if math.Abs(axis) < inputEpsilon {
		return common.ApproachZero(
			vx,
			dt,
			factors.SpeedFactor*p.BaseMovement.SpeedFactor,
			factors.StopFactor*p.BaseMovement.StopFactor,
		)
	}
	accel := inputAcceleration(vx*axis, factors, p)
	return common.ApproachVelocity(
		vx,
		accel*axis,
		dt,
		factors.SpeedFactor*p.BaseMovement.SpeedFactor*axis,
	)
}

// planarManoeuvre accelerates only within the ground plane; the component of
// velocity along the normal is left for gravity and ground snapping.
func planarManoeuvre(v, normal mgl64.Vec3, axis float64, factors *Manoeuvrability, p *Params, dt float64) mgl64.Vec3 {
	normalVelocity := normal.Mul(v.Dot(normal))
	planar := v.Sub(normalVelocity)

	if math.Abs(axis) < inputEpsilon {
		speed := planar.Len()
		if speed == 0 {
			return normalVelocity
		}
		next := common.ApproachZero(
			speed,
			dt,
			factors.SpeedFactor*p.BaseMovement.SpeedFactor,
			factors.StopFactor*p.BaseMovement.StopFactor,
		)
		return normalVelocity.Add(planar.Mul(next / speed))
	}

	input := mgl64.Vec3{common.Sign(axis), 0, 0}
	tangent := input.Sub(normal.Mul(input.Dot(normal)))
	if tangent.Len() < inputEpsilon {
		// Vertical normal on a walkable attachment cannot happen; fall back to horizontal.
		v[0] = horizontalManoeuvre(v.X(), axis, factors, p, dt)
		return v
	}
	tangent = tangent.Normalize()

	along := planar.Dot(tangent)
	across := planar.Sub(tangent.Mul(along))
	magnitude := math.Abs(axis)
	accel := inputAcceleration(along, factors, p)
	next := common.ApproachVelocity(
		along,
		accel*magnitude,
		dt,
		factors.SpeedFactor*p.BaseMovement.SpeedFactor*magnitude,
	)
	return normalVelocity.Add(across).Add(tangent.Mul(next))
}

// inputAcceleration uses the forward factor when velocity is aligned with the
// input (or at rest) and the reverse factor when it opposes it.
func inputAcceleration(alignment float64, factors *Manoeuvrability, p *Params) float64 {
	if math.Abs(alignment) < inputEpsilon || alignment > 0 {
		return factors.InputFactor * p.BaseMovement.InputFactor
	}
	return factors.ReverseInputFactor * p.BaseMovement.ReverseInputFactor
}
