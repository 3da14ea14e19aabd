package controller

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var Up = mgl64.Vec3{0, 1, 0}

// Hit is the result of a single shape cast.
type Hit struct {
	Normal      mgl64.Vec3
	Distance    float64
	NormalAngle float64
}

func NewHit(normal mgl64.Vec3, distance float64) Hit {
	return Hit{Normal: normal, Distance: distance, NormalAngle: AngleToUp(normal)}
}

// AngleToUp returns the angle between v and world up in radians.
func AngleToUp(v mgl64.Vec3) float64 {
	return angleBetween(v, Up)
}

func angleBetween(a, b mgl64.Vec3) float64 {
	la, lb := a.Len(), b.Len()
	if la == 0 || lb == 0 {
		return 0
	}
	return math.Acos(mgl64.Clamp(a.Dot(b)/(la*lb), -1, 1))
}
