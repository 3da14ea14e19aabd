package controller

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrInvalidParams = errors.New("controller: invalid params")

// Manoeuvrability is a set of movement multipliers for one context (base, ground, air).
// Context values are multiplied with the base values at use time.
type Manoeuvrability struct {
	// Horizontal acceleration caused by input
	InputFactor float64
	// Horizontal deceleration caused by input against the current velocity
	ReverseInputFactor float64
	// Vertical impulse of jumping
	JumpFactor float64
	// Maximum horizontal speed
	SpeedFactor float64
	// Time it takes to stop horizontally once inputs are released
	StopFactor float64
}

// Params holds the tunables read by every controller step.
type Params struct {
	BaseMovement   Manoeuvrability
	GroundMovement Manoeuvrability
	AerialMovement Manoeuvrability

	// Gravity while falling
	Gravity mgl64.Vec3

	// Amount to shrink the collider during shape casts
	SkinThickness float64

	// Number of surfaces collide-and-slide can slide along in a single step
	MaxCollisionBounces int

	// Angle in radians between velocity and a ground normal below which the
	// character is considered to be leaving that surface.
	EscapeIncidence float64

	// Terminal velocity while falling (negative)
	TerminalVelocity float64

	// Terminal velocity while floating upwards (positive)
	BuoyantTerminalVelocity float64

	// Maximum slope angle that permits walking
	MaxWalkingSlopeAngle float64

	// Maximum slope angle that is considered ground at all
	MaxSlidingSlopeAngle float64

	// Length of the downward ground probe
	GroundingProximity float64

	// Number of candidate hits collected by the ground probe
	GroundCastMaxHits int
}

func DefaultParams() Params {
	return Params{
		BaseMovement: Manoeuvrability{
			InputFactor:        5.0,
			ReverseInputFactor: 10.0,
			JumpFactor:         12.0,
			SpeedFactor:        3.0,
			StopFactor:         0.5,
		},
		GroundMovement: Manoeuvrability{
			InputFactor:        1.0,
			ReverseInputFactor: 3.0,
			JumpFactor:         1.0,
			SpeedFactor:        1.0,
			StopFactor:         1.0,
		},
		AerialMovement: Manoeuvrability{
			InputFactor:        0.25,
			ReverseInputFactor: 1.0,
			JumpFactor:         0.0,
			SpeedFactor:        1.0,
			StopFactor:         10.0,
		},
		Gravity:                 mgl64.Vec3{0, -9.81 * 2.0, 0},
		SkinThickness:           0.01,
		MaxCollisionBounces:     3,
		EscapeIncidence:         math.Pi / 4,
		TerminalVelocity:        -20.0,
		BuoyantTerminalVelocity: 4.0,
		MaxWalkingSlopeAngle:    math.Pi * 0.17,
		MaxSlidingSlopeAngle:    math.Pi * 0.33,
		GroundingProximity:      0.4,
		GroundCastMaxHits:       3,
	}
}

// Validate reports the first inconsistent value.
func (p *Params) Validate() error {
	switch {
	case p.MaxWalkingSlopeAngle < 0 || p.MaxWalkingSlopeAngle > p.MaxSlidingSlopeAngle:
		return fmt.Errorf("%w: walking slope %.3f must be within [0, sliding slope %.3f]", ErrInvalidParams, p.MaxWalkingSlopeAngle, p.MaxSlidingSlopeAngle)
	case p.MaxSlidingSlopeAngle >= math.Pi/2:
		return fmt.Errorf("%w: sliding slope %.3f must be below vertical", ErrInvalidParams, p.MaxSlidingSlopeAngle)
	case p.SkinThickness < 0:
		return fmt.Errorf("%w: skin thickness %.3f is negative", ErrInvalidParams, p.SkinThickness)
	case p.MaxCollisionBounces < 1:
		return fmt.Errorf("%w: max collision bounces %d must be at least 1", ErrInvalidParams, p.MaxCollisionBounces)
	case p.GroundCastMaxHits < 1:
		return fmt.Errorf("%w: ground cast max hits %d must be at least 1", ErrInvalidParams, p.GroundCastMaxHits)
	case p.TerminalVelocity >= 0:
		return fmt.Errorf("%w: terminal velocity %.3f must be negative", ErrInvalidParams, p.TerminalVelocity)
	case p.BuoyantTerminalVelocity <= 0:
		return fmt.Errorf("%w: buoyant terminal velocity %.3f must be positive", ErrInvalidParams, p.BuoyantTerminalVelocity)
	case p.GroundingProximity <= p.SkinThickness:
		return fmt.Errorf("%w: grounding proximity %.3f must exceed skin thickness %.3f", ErrInvalidParams, p.GroundingProximity, p.SkinThickness)
	case p.BaseMovement.StopFactor <= 0 || p.GroundMovement.StopFactor <= 0 || p.AerialMovement.StopFactor <= 0:
		return fmt.Errorf("%w: stop factors must be positive", ErrInvalidParams)
	}
	return nil
}

// terminalFor picks the falling or buoyant cap depending on which way gravity pulls.
func (p *Params) terminalFor(gravity mgl64.Vec3) float64 {
	if gravity.Y() > 0 {
		return p.BuoyantTerminalVelocity
	}
	return p.TerminalVelocity
}
