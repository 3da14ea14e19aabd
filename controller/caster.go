package controller

import "github.com/go-gl/mathgl/mgl64"

// ColliderID identifies a collision body so a cast can skip it.
type ColliderID uint64

// CastQuery sweeps Shape from Origin along unit Direction for at most MaxDistance.
type CastQuery struct {
	Shape       Collider
	Origin      mgl64.Vec3
	Rotation    mgl64.Quat
	Direction   mgl64.Vec3
	MaxDistance float64
	Exclude     []ColliderID
}

// Excludes reports whether id is filtered out of the query.
func (q *CastQuery) Excludes(id ColliderID) bool {
	for _, ex := range q.Exclude {
		if ex == id {
			return true
		}
	}
	return false
}

// ShapeCaster is the collision primitive the controller runs against.
//
// Hit normals point away from the surface, towards the caster. Distance is
// measured along Direction from Origin.
type ShapeCaster interface {
	CastShape(q CastQuery) (Hit, bool)
	// CastShapeAll returns up to maxHits hits ordered by distance.
	CastShapeAll(q CastQuery, maxHits int) []Hit
}
