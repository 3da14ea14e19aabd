package controller

import "github.com/go-gl/mathgl/mgl64"

type AttachmentKind int

const (
	AttachmentGrounded AttachmentKind = iota + 1
)

func (k AttachmentKind) String() string {
	switch k {
	case AttachmentGrounded:
		return "grounded"
	default:
		return "unknown"
	}
}

// Attachment is the ground state of a character. A nil *Attachment means airborne.
type Attachment struct {
	Kind   AttachmentKind
	Normal mgl64.Vec3
}

func Grounded(normal mgl64.Vec3) Attachment {
	return Attachment{Kind: AttachmentGrounded, Normal: normal}
}

// Walkable reports whether a grounded attachment is shallow enough for full control.
func (a *Attachment) Walkable(p *Params) bool {
	if a == nil || a.Kind != AttachmentGrounded {
		return false
	}
	return AngleToUp(a.Normal) <= p.MaxWalkingSlopeAngle
}

type Transition int

const (
	TransitionNone Transition = iota
	TransitionAttached
	TransitionDetached
	TransitionRefreshed
)

func (t Transition) String() string {
	switch t {
	case TransitionAttached:
		return "attached"
	case TransitionDetached:
		return "detached"
	case TransitionRefreshed:
		return "refreshed"
	default:
		return "none"
	}
}

// NextAttachment decides the next attachment from the previous one and the latest ground probe.
//
// Falling characters only catch walkable ground. Grounded characters stay attached
// to anything up to the sliding threshold, with the normal taken from the new hit.
func NextAttachment(prev *Attachment, ground *Hit, p *Params) (*Attachment, Transition) {
	grounding := ground != nil && ground.NormalAngle <= p.MaxSlidingSlopeAngle
	walkable := ground != nil && ground.NormalAngle <= p.MaxWalkingSlopeAngle

	if prev == nil {
		if grounding && walkable {
			next := Grounded(ground.Normal)
			return &next, TransitionAttached
		}
		return nil, TransitionNone
	}

	if !grounding {
		return nil, TransitionDetached
	}
	next := Grounded(ground.Normal)
	return &next, TransitionRefreshed
}
