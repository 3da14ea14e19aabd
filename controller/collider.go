package controller

const (
	PlayerRadius = 0.4
	PlayerHeight = 1.74
)

// Collider is an upright capsule centred on the character position.
type Collider struct {
	Radius float64
	Height float64
}

func DefaultCollider() Collider {
	return Collider{Radius: PlayerRadius, Height: PlayerHeight}
}

// Shrunk returns the collider reduced by skin on every side.
func (c Collider) Shrunk(skin float64) Collider {
	return Collider{Radius: c.Radius - skin, Height: c.Height - 2*skin}
}

// HalfSpine is the distance from the centre to either cap centre.
func (c Collider) HalfSpine() float64 {
	h := c.Height/2 - c.Radius
	if h < 0 {
		return 0
	}
	return h
}

// HalfHeight is the distance from the centre to the bottom of the capsule.
func (c Collider) HalfHeight() float64 {
	return c.HalfSpine() + c.Radius
}
