package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/slide/ecs"
	"github.com/milk9111/slide/ecs/component"
	"go.uber.org/zap"
)

// Scripts define `input := func(tick, player) { ... }` returning a map with an
// `axis` number and a `jump` bool. player carries x, y, vx, vy and grounded.
const inputDispatchScript = `
__result := input(__tick, __player)
`

// ScriptInput drives the player's movement state from a tengo script, one call per tick.
type ScriptInput struct {
	compiled *tengo.Compiled
	log      *zap.Logger
	tick     int
}

func NewScriptInput(src []byte, log *zap.Logger) (*ScriptInput, error) {
	script := tengo.NewScript(append(append([]byte{}, src...), inputDispatchScript...))
	_ = script.Add("__tick", 0)
	_ = script.Add("__player", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("input script: %w", err)
	}
	return &ScriptInput{compiled: compiled, log: orNop(log)}, nil
}

func (s *ScriptInput) Update(w *ecs.World) {
	if w == nil || s == nil {
		return
	}
	tick := s.tick
	s.tick++

	e, ok := controlledPlayer(w, s.log, "script_input")
	if !ok {
		return
	}
	state, ok := ecs.Get(w, e, component.MovementStateComponent.Kind())
	if !ok {
		state = &component.MovementState{}
		_ = ecs.Add(w, e, component.MovementStateComponent.Kind(), state)
	}

	axis, jump, err := s.run(tick, s.playerView(w, e))
	if err != nil {
		s.log.Error("input script failed", zap.Int("tick", tick), zap.Error(err))
		state.Press(0, false)
		return
	}
	state.Press(axis, jump)
}

// Ticks returns how many ticks the script has been asked for.
func (s *ScriptInput) Ticks() int {
	return s.tick
}

func (s *ScriptInput) playerView(w *ecs.World, e ecs.Entity) map[string]any {
	var position, velocity mgl64.Vec3
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		position = t.Position
	}
	if pc, ok := ecs.Get(w, e, component.PlayerControllerComponent.Kind()); ok {
		velocity = pc.Velocity
	}
	return map[string]any{
		"x":        position.X(),
		"y":        position.Y(),
		"vx":       velocity.X(),
		"vy":       velocity.Y(),
		"grounded": ecs.Has(w, e, component.AttachmentComponent.Kind()),
	}
}

func (s *ScriptInput) run(tick int, player map[string]any) (float64, bool, error) {
	if err := s.compiled.Set("__tick", tick); err != nil {
		return 0, false, err
	}
	if err := s.compiled.Set("__player", player); err != nil {
		return 0, false, err
	}
	if err := s.compiled.Run(); err != nil {
		return 0, false, err
	}

	result, ok := objectToAny(s.compiled.Get("__result").Object()).(map[string]any)
	if !ok {
		return 0, false, fmt.Errorf("input must return a map, got %s", s.compiled.Get("__result").ValueType())
	}

	axis := 0.0
	switch v := result["axis"].(type) {
	case float64:
		axis = v
	case int:
		axis = float64(v)
	case nil:
	default:
		return 0, false, fmt.Errorf("axis must be a number, got %T", v)
	}
	axis = mgl64.Clamp(axis, -1, 1)

	jump := false
	switch v := result["jump"].(type) {
	case bool:
		jump = v
	case nil:
	default:
		return 0, false, fmt.Errorf("jump must be a bool, got %T", v)
	}
	return axis, jump, nil
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.ImmutableMap:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
