package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type Vec2Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type ManoeuvrabilitySpec struct {
	Input        float64 `yaml:"input"`
	ReverseInput float64 `yaml:"reverse_input"`
	Jump         float64 `yaml:"jump"`
	Speed        float64 `yaml:"speed"`
	Stop         float64 `yaml:"stop"`
}

// ControllerSpec mirrors controller.Params with angles in degrees. Keys left
// out of the file keep their default value.
type ControllerSpec struct {
	Base   ManoeuvrabilitySpec `yaml:"base"`
	Ground ManoeuvrabilitySpec `yaml:"ground"`
	Aerial ManoeuvrabilitySpec `yaml:"aerial"`

	Gravity                 Vec3Spec `yaml:"gravity"`
	SkinThickness           float64  `yaml:"skin_thickness"`
	MaxCollisionBounces     int      `yaml:"max_collision_bounces"`
	EscapeIncidenceDeg      float64  `yaml:"escape_incidence_deg"`
	TerminalVelocity        float64  `yaml:"terminal_velocity"`
	BuoyantTerminalVelocity float64  `yaml:"buoyant_terminal_velocity"`
	MaxWalkingSlopeDeg      float64  `yaml:"max_walking_slope_deg"`
	MaxSlidingSlopeDeg      float64  `yaml:"max_sliding_slope_deg"`
	GroundingProximity      float64  `yaml:"grounding_proximity"`
	GroundCastMaxHits       int      `yaml:"ground_cast_max_hits"`
}

const ControllerFile = "controller.yaml"

// LoadControllerSpec reads name on top of the default tuning.
func LoadControllerSpec(name string) (ControllerSpec, error) {
	spec := DefaultControllerSpec()
	data, err := Load(name)
	if err != nil {
		return spec, fmt.Errorf("prefabs: load %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return spec, fmt.Errorf("prefabs: unmarshal %s: %w", name, err)
	}
	return spec, nil
}

type SegmentSpec struct {
	A      Vec2Spec `yaml:"a"`
	B      Vec2Spec `yaml:"b"`
	Radius float64  `yaml:"radius"`
}

type BoxSpec struct {
	Min Vec2Spec `yaml:"min"`
	Max Vec2Spec `yaml:"max"`
}

type PolygonSpec struct {
	Points []Vec2Spec `yaml:"points"`
}

// TilesSpec is an ASCII grid, '#' marks a solid tile. The first row is the top.
type TilesSpec struct {
	Size   float64  `yaml:"size"`
	Origin Vec2Spec `yaml:"origin"`
	Rows   []string `yaml:"rows"`
}

type BoundsSpec struct {
	Min Vec2Spec `yaml:"min"`
	Max Vec2Spec `yaml:"max"`
}

type LevelSpec struct {
	Name     string        `yaml:"name"`
	Spawn    Vec2Spec      `yaml:"spawn"`
	Bounds   *BoundsSpec   `yaml:"bounds"`
	Segments []SegmentSpec `yaml:"segments"`
	Boxes    []BoxSpec     `yaml:"boxes"`
	Polygons []PolygonSpec `yaml:"polygons"`
	Tiles    *TilesSpec    `yaml:"tiles"`
}

// LoadLevel reads levels/<name>.yaml.
func LoadLevel(name string) (LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec](LevelPath(name))
	if err != nil {
		return spec, err
	}
	if spec.Name == "" {
		spec.Name = name
	}
	return spec, nil
}
