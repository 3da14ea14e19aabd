package controller

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// plane is the solid half-space {x : Normal·x < Offset}; Normal must be unit length.
type plane struct {
	ID     ColliderID
	Normal mgl64.Vec3
	Offset float64
}

// planeCaster sweeps an upright capsule against infinite planes analytically.
type planeCaster struct {
	planes  []plane
	queries []CastQuery
}

func (c *planeCaster) castPlane(q CastQuery, pl plane) (Hit, bool) {
	if q.Excludes(pl.ID) {
		return Hit{}, false
	}
	approach := pl.Normal.Dot(q.Direction)
	gap := pl.Normal.Dot(q.Origin) - q.Shape.HalfSpine()*math.Abs(pl.Normal.Y()) - pl.Offset - q.Shape.Radius
	if gap <= 0 {
		return NewHit(pl.Normal, 0), true
	}
	if approach >= 0 {
		return Hit{}, false
	}
	distance := gap / -approach
	if distance > q.MaxDistance {
		return Hit{}, false
	}
	return NewHit(pl.Normal, distance), true
}

func (c *planeCaster) CastShape(q CastQuery) (Hit, bool) {
	c.queries = append(c.queries, q)
	hits := c.all(q)
	if len(hits) == 0 {
		return Hit{}, false
	}
	return hits[0], true
}

func (c *planeCaster) CastShapeAll(q CastQuery, maxHits int) []Hit {
	c.queries = append(c.queries, q)
	hits := c.all(q)
	if len(hits) > maxHits {
		hits = hits[:maxHits]
	}
	return hits
}

func (c *planeCaster) all(q CastQuery) []Hit {
	var hits []Hit
	for _, pl := range c.planes {
		if hit, ok := c.castPlane(q, pl); ok {
			hits = append(hits, hit)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

func floorAt(y float64) plane {
	return plane{ID: 100, Normal: Up, Offset: y}
}

// slopeNormal returns the unit normal of ground rising towards +X at angle.
func slopeNormal(angle float64) mgl64.Vec3 {
	return mgl64.Vec3{-math.Sin(angle), math.Cos(angle), 0}
}

func approx(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func approxVec(a, b mgl64.Vec3, eps float64) bool {
	return a.ApproxEqualThreshold(b, eps)
}
