package prefabs

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/slide/controller"
	"github.com/milk9111/slide/physics"
	"gopkg.in/yaml.v3"
)

var ErrEmptyLevel = errors.New("prefabs: level has no geometry")

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type PlayerControllerComponentSpec struct {
	Radius float64 `yaml:"radius"`
	Height float64 `yaml:"height"`
}

type CameraComponentSpec struct {
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

func (v Vec2Spec) Vec() mgl64.Vec2 {
	return mgl64.Vec2{v.X, v.Y}
}

func (v Vec3Spec) Vec() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func manoeuvrabilitySpec(m controller.Manoeuvrability) ManoeuvrabilitySpec {
	return ManoeuvrabilitySpec{
		Input:        m.InputFactor,
		ReverseInput: m.ReverseInputFactor,
		Jump:         m.JumpFactor,
		Speed:        m.SpeedFactor,
		Stop:         m.StopFactor,
	}
}

func (m ManoeuvrabilitySpec) build() controller.Manoeuvrability {
	return controller.Manoeuvrability{
		InputFactor:        m.Input,
		ReverseInputFactor: m.ReverseInput,
		JumpFactor:         m.Jump,
		SpeedFactor:        m.Speed,
		StopFactor:         m.Stop,
	}
}

// ControllerSpecFromParams is the inverse of BuildControllerParams.
func ControllerSpecFromParams(p controller.Params) ControllerSpec {
	return ControllerSpec{
		Base:                    manoeuvrabilitySpec(p.BaseMovement),
		Ground:                  manoeuvrabilitySpec(p.GroundMovement),
		Aerial:                  manoeuvrabilitySpec(p.AerialMovement),
		Gravity:                 Vec3Spec{X: p.Gravity.X(), Y: p.Gravity.Y(), Z: p.Gravity.Z()},
		SkinThickness:           p.SkinThickness,
		MaxCollisionBounces:     p.MaxCollisionBounces,
		EscapeIncidenceDeg:      mgl64.RadToDeg(p.EscapeIncidence),
		TerminalVelocity:        p.TerminalVelocity,
		BuoyantTerminalVelocity: p.BuoyantTerminalVelocity,
		MaxWalkingSlopeDeg:      mgl64.RadToDeg(p.MaxWalkingSlopeAngle),
		MaxSlidingSlopeDeg:      mgl64.RadToDeg(p.MaxSlidingSlopeAngle),
		GroundingProximity:      p.GroundingProximity,
		GroundCastMaxHits:       p.GroundCastMaxHits,
	}
}

func DefaultControllerSpec() ControllerSpec {
	return ControllerSpecFromParams(controller.DefaultParams())
}

// BuildControllerParams converts a spec and validates the result.
func BuildControllerParams(spec ControllerSpec) (controller.Params, error) {
	p := controller.Params{
		BaseMovement:            spec.Base.build(),
		GroundMovement:          spec.Ground.build(),
		AerialMovement:          spec.Aerial.build(),
		Gravity:                 spec.Gravity.Vec(),
		SkinThickness:           spec.SkinThickness,
		MaxCollisionBounces:     spec.MaxCollisionBounces,
		EscapeIncidence:         mgl64.DegToRad(spec.EscapeIncidenceDeg),
		TerminalVelocity:        spec.TerminalVelocity,
		BuoyantTerminalVelocity: spec.BuoyantTerminalVelocity,
		MaxWalkingSlopeAngle:    mgl64.DegToRad(spec.MaxWalkingSlopeDeg),
		MaxSlidingSlopeAngle:    mgl64.DegToRad(spec.MaxSlidingSlopeDeg),
		GroundingProximity:      spec.GroundingProximity,
		GroundCastMaxHits:       spec.GroundCastMaxHits,
	}
	if err := p.Validate(); err != nil {
		return controller.Params{}, fmt.Errorf("prefabs: controller: %w", err)
	}
	return p, nil
}

// LoadControllerParams loads and validates the controller tuning.
func LoadControllerParams(name string) (controller.Params, error) {
	spec, err := LoadControllerSpec(name)
	if err != nil {
		return controller.Params{}, err
	}
	return BuildControllerParams(spec)
}

// Geometry converts the level into static collision shapes. Tile rows are
// merged into boxes.
func (l LevelSpec) Geometry() (physics.Geometry, error) {
	var g physics.Geometry
	for _, s := range l.Segments {
		g.Segments = append(g.Segments, physics.Segment{A: s.A.Vec(), B: s.B.Vec(), Radius: s.Radius})
	}
	for _, b := range l.Boxes {
		g.Boxes = append(g.Boxes, physics.Box{Min: b.Min.Vec(), Max: b.Max.Vec()})
	}
	for _, p := range l.Polygons {
		poly := physics.Polygon{Points: make([]mgl64.Vec2, len(p.Points))}
		for i, pt := range p.Points {
			poly.Points[i] = pt.Vec()
		}
		g.Polygons = append(g.Polygons, poly)
	}
	if l.Tiles != nil {
		grid, err := l.Tiles.grid()
		if err != nil {
			return physics.Geometry{}, fmt.Errorf("prefabs: level %q: %w", l.Name, err)
		}
		g.Boxes = append(g.Boxes, physics.MergeTiles(grid)...)
	}
	if len(g.Segments)+len(g.Boxes)+len(g.Polygons) == 0 {
		return physics.Geometry{}, fmt.Errorf("%w: %q", ErrEmptyLevel, l.Name)
	}
	return g, nil
}

func (t *TilesSpec) grid() (physics.TileGrid, error) {
	if t.Size <= 0 {
		return physics.TileGrid{}, fmt.Errorf("tile size %v must be positive", t.Size)
	}
	g := physics.TileGrid{Height: len(t.Rows), Size: t.Size, Origin: t.Origin.Vec()}
	for i, row := range t.Rows {
		if i == 0 {
			g.Width = len(row)
		} else if len(row) != g.Width {
			return physics.TileGrid{}, fmt.Errorf("tile row %d has %d columns, expected %d", i, len(row), g.Width)
		}
		for _, c := range row {
			g.Solid = append(g.Solid, c == '#')
		}
	}
	return g, nil
}

// LevelBounds returns the declared bounds, or the box around every shape.
func (l LevelSpec) LevelBounds(g physics.Geometry) (mgl64.Vec2, mgl64.Vec2) {
	if l.Bounds != nil {
		return l.Bounds.Min.Vec(), l.Bounds.Max.Vec()
	}
	min := mgl64.Vec2{math.Inf(1), math.Inf(1)}
	max := mgl64.Vec2{math.Inf(-1), math.Inf(-1)}
	grow := func(p mgl64.Vec2, r float64) {
		min = mgl64.Vec2{math.Min(min.X(), p.X()-r), math.Min(min.Y(), p.Y()-r)}
		max = mgl64.Vec2{math.Max(max.X(), p.X()+r), math.Max(max.Y(), p.Y()+r)}
	}
	for _, s := range g.Segments {
		grow(s.A, s.Radius)
		grow(s.B, s.Radius)
	}
	for _, b := range g.Boxes {
		grow(b.Min, 0)
		grow(b.Max, 0)
	}
	for _, p := range g.Polygons {
		for _, pt := range p.Points {
			grow(pt, 0)
		}
	}
	if math.IsInf(min.X(), 1) {
		return mgl64.Vec2{}, mgl64.Vec2{}
	}
	return min, max
}
