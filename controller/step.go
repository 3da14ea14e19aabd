package controller

import "github.com/go-gl/mathgl/mgl64"

// State is everything the controller carries between steps.
type State struct {
	Position   mgl64.Vec3
	Velocity   mgl64.Vec3
	Attachment *Attachment
	Ground     *Hit
}

// StepReport describes what happened during Step.
type StepReport struct {
	Jumped     bool
	Move       MoveResult
	Transition Transition
}

// Step advances state by one tick: gravity, inputs, move, ground probe and attachment update.
func Step(caster ShapeCaster, p *Params, shape Collider, self ColliderID, s *State, in Input, dt float64) StepReport {
	var report StepReport

	s.Velocity = ApplyGravity(s.Velocity, s.Attachment, p, dt)
	s.Velocity, report.Jumped = ApplyInputs(s.Velocity, s.Attachment, in, p, dt)
	if report.Jumped {
		s.Attachment = nil
	}

	s.Position, s.Velocity, report.Move = Move(caster, p, shape, self, s.Position, s.Velocity, dt)

	probe := ProbeGround(caster, p, shape, self, s.Position, s.Velocity, s.Attachment != nil)
	s.Position = s.Position.Add(probe.Snap)
	s.Velocity = probe.Velocity
	s.Ground = probe.Ground

	s.Attachment, report.Transition = NextAttachment(s.Attachment, s.Ground, p)
	return report
}
