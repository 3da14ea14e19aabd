package physics

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/slide/controller"
)

const collisionTypeSolid cp.CollisionType = 1

var (
	ErrDegenerateShape = errors.New("physics: degenerate shape")
	ErrConcavePolygon  = errors.New("physics: polygon is not convex")
)

// Segment is a capsule-ended line; Radius may be zero.
type Segment struct {
	A, B   mgl64.Vec2
	Radius float64
}

type Box struct {
	Min, Max mgl64.Vec2
}

// Polygon must be convex; either winding is accepted.
type Polygon struct {
	Points []mgl64.Vec2
}

// Geometry is the static collision set of a level.
type Geometry struct {
	Segments []Segment
	Boxes    []Box
	Polygons []Polygon
}

// World holds static level geometry in a chipmunk space and answers shape
// casts for the character controller. Everything lives in the X/Y plane; Z is
// ignored.
type World struct {
	space  *cp.Space
	owners map[*cp.Shape]controller.ColliderID
	nextID controller.ColliderID
}

func NewWorld() *World {
	return &World{
		space:  cp.NewSpace(),
		owners: make(map[*cp.Shape]controller.ColliderID),
		nextID: 1,
	}
}

// NewWorldFromGeometry builds a world holding every shape in g.
func NewWorldFromGeometry(g Geometry) (*World, error) {
	w := NewWorld()
	if err := w.AddGeometry(g); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *World) AddGeometry(g Geometry) error {
	for i, s := range g.Segments {
		if _, err := w.AddSegment(s); err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
	}
	for i, b := range g.Boxes {
		if _, err := w.AddBox(b); err != nil {
			return fmt.Errorf("box %d: %w", i, err)
		}
	}
	for i, p := range g.Polygons {
		if _, err := w.AddPolygon(p); err != nil {
			return fmt.Errorf("polygon %d: %w", i, err)
		}
	}
	return nil
}

// Reserve hands out a collider id that owns no shape, for bodies that cast
// against the world but are not part of it.
func (w *World) Reserve() controller.ColliderID {
	id := w.nextID
	w.nextID++
	return id
}

func (w *World) AddSegment(s Segment) (controller.ColliderID, error) {
	if s.A == s.B && s.Radius <= 0 {
		return 0, fmt.Errorf("%w: zero length segment at %v", ErrDegenerateShape, s.A)
	}
	shape := cp.NewSegment(w.space.StaticBody, vec(s.A), vec(s.B), math.Max(s.Radius, 0))
	return w.add(shape), nil
}

func (w *World) AddBox(b Box) (controller.ColliderID, error) {
	if b.Max.X() <= b.Min.X() || b.Max.Y() <= b.Min.Y() {
		return 0, fmt.Errorf("%w: box %v..%v", ErrDegenerateShape, b.Min, b.Max)
	}
	bb := cp.BB{L: b.Min.X(), B: b.Min.Y(), R: b.Max.X(), T: b.Max.Y()}
	return w.add(cp.NewBox2(w.space.StaticBody, bb, 0)), nil
}

func (w *World) AddPolygon(p Polygon) (controller.ColliderID, error) {
	points, err := counterClockwise(p.Points)
	if err != nil {
		return 0, err
	}
	verts := make([]cp.Vector, len(points))
	for i, pt := range points {
		verts[i] = vec(pt)
	}
	return w.add(cp.NewPolyShapeRaw(w.space.StaticBody, len(verts), verts, 0)), nil
}

func (w *World) add(shape *cp.Shape) controller.ColliderID {
	shape.SetCollisionType(collisionTypeSolid)
	w.space.AddShape(shape)
	id := w.Reserve()
	w.owners[shape] = id
	return id
}

// Shapes returns the number of static shapes.
func (w *World) Shapes() int {
	return len(w.owners)
}

func (w *World) CastShape(q controller.CastQuery) (controller.Hit, bool) {
	hits := w.cast(q)
	if len(hits) == 0 {
		return controller.Hit{}, false
	}
	return hits[0], true
}

func (w *World) CastShapeAll(q controller.CastQuery, maxHits int) []controller.Hit {
	hits := w.cast(q)
	if maxHits >= 0 && len(hits) > maxHits {
		hits = hits[:maxHits]
	}
	return hits
}

type shapeHit struct {
	distance float64
	normal   cp.Vector
}

// cast sweeps the capsule as circles spaced along its spine. Overlaps at the
// origin are found with a bounding box query plus per-shape point queries
// since swept queries ignore shapes the circle starts inside.
func (w *World) cast(q controller.CastQuery) []controller.Hit {
	radius := q.Shape.Radius
	if radius <= 0 || q.MaxDistance < 0 {
		return nil
	}

	nearest := make(map[*cp.Shape]shapeHit)
	record := func(shape *cp.Shape, distance float64, normal cp.Vector) {
		id, ok := w.owners[shape]
		if !ok || q.Excludes(id) {
			return
		}
		if prev, seen := nearest[shape]; seen && prev.distance <= distance {
			return
		}
		nearest[shape] = shapeHit{distance: distance, normal: normal}
	}

	away := cp.Vector{X: -q.Direction.X(), Y: -q.Direction.Y()}
	for _, start := range spineSamples(q) {
		w.space.BBQuery(cp.NewBBForCircle(start, radius), cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, data interface{}) {
			info := shape.PointQuery(start)
			if info.Distance >= radius {
				return
			}
			normal := info.Gradient
			if normal.X == 0 && normal.Y == 0 {
				normal = away
			}
			record(shape, 0, normal)
		}, nil)

		if q.MaxDistance == 0 {
			continue
		}
		end := cp.Vector{
			X: start.X + q.Direction.X()*q.MaxDistance,
			Y: start.Y + q.Direction.Y()*q.MaxDistance,
		}
		w.space.SegmentQuery(start, end, radius, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, point, normal cp.Vector, alpha float64, data interface{}) {
			record(shape, alpha*q.MaxDistance, normal)
		}, nil)
	}

	hits := make([]controller.Hit, 0, len(nearest))
	for _, h := range nearest {
		n := mgl64.Vec3{h.normal.X, h.normal.Y, 0}
		if l := n.Len(); l > 0 {
			n = n.Mul(1 / l)
		}
		hits = append(hits, controller.NewHit(n, h.distance))
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

// spineSamples places circle centres from the bottom cap to the top cap no
// more than one radius apart.
func spineSamples(q controller.CastQuery) []cp.Vector {
	half := q.Shape.HalfSpine()
	origin := cp.Vector{X: q.Origin.X(), Y: q.Origin.Y()}
	if half == 0 {
		return []cp.Vector{origin}
	}
	n := int(math.Ceil(2*half/q.Shape.Radius)) + 1
	samples := make([]cp.Vector, n)
	for i := range samples {
		offset := -half + 2*half*float64(i)/float64(n-1)
		samples[i] = cp.Vector{X: origin.X, Y: origin.Y + offset}
	}
	return samples
}

func vec(v mgl64.Vec2) cp.Vector {
	return cp.Vector{X: v.X(), Y: v.Y()}
}

// counterClockwise validates a convex polygon and returns it wound counter-clockwise.
func counterClockwise(points []mgl64.Vec2) ([]mgl64.Vec2, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("%w: polygon needs at least 3 points, got %d", ErrDegenerateShape, len(points))
	}
	area := 0.0
	sign := 0.0
	for i := range points {
		a, b, c := points[i], points[(i+1)%len(points)], points[(i+2)%len(points)]
		area += a.X()*b.Y() - b.X()*a.Y()
		turn := cross(b.Sub(a), c.Sub(b))
		if turn == 0 {
			continue
		}
		if sign == 0 {
			sign = math.Copysign(1, turn)
		} else if math.Copysign(1, turn) != sign {
			return nil, ErrConcavePolygon
		}
	}
	if area == 0 {
		return nil, fmt.Errorf("%w: polygon has no area", ErrDegenerateShape)
	}
	out := append([]mgl64.Vec2(nil), points...)
	if area < 0 {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

func cross(a, b mgl64.Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// Space exposes the chipmunk space for debug drawing.
func (w *World) Space() *cp.Space {
	return w.space
}
