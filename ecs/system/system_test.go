package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/slide/controller"
	"github.com/milk9111/slide/ecs"
	"github.com/milk9111/slide/ecs/component"
	"github.com/milk9111/slide/physics"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const testDt = 1.0 / 96

func observed(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

func floorLevel(t *testing.T, w *ecs.World) *physics.World {
	t.Helper()
	pw, err := physics.NewWorldFromGeometry(physics.Geometry{
		Boxes: []physics.Box{{Min: mgl64.Vec2{-20, -1}, Max: mgl64.Vec2{20, 0}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	level := ecs.CreateEntity(w)
	if err := ecs.Add(w, level, component.PhysicsComponent.Kind(), &component.Physics{Caster: pw, Space: pw.Space()}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, level, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Min: mgl64.Vec2{-20, -1}, Max: mgl64.Vec2{20, 10}}); err != nil {
		t.Fatal(err)
	}
	return pw
}

func addPlayer(t *testing.T, w *ecs.World, pw *physics.World, at mgl64.Vec3) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	tr := component.NewTransform(at)
	pc := &component.PlayerController{Collider: controller.DefaultCollider()}
	if pw != nil {
		pc.ColliderID = pw.Reserve()
	}
	for _, err := range []error{
		ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}),
		ecs.Add(w, e, component.TransformComponent.Kind(), &tr),
		ecs.Add(w, e, component.PlayerControllerComponent.Kind(), pc),
		ecs.Add(w, e, component.MovementStateComponent.Kind(), &component.MovementState{}),
		ecs.Add(w, e, component.PlayerHitsComponent.Kind(), &component.PlayerHits{}),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}
	return e
}

func tickScheduler(params *controller.Params, log *zap.Logger) *ecs.Scheduler {
	return ecs.NewScheduler(
		NewGravitySystem(params, log),
		NewInputSystem(params, log),
		NewMoveSystem(params, log),
		NewGroundQuerySystem(params, log),
		NewMarkerSystem(params, log),
	)
}

func run(w *ecs.World, s *ecs.Scheduler, ticks int) {
	w.SetDeltaTime(testDt)
	for i := 0; i < ticks; i++ {
		s.Update(w)
	}
}

func attachmentEvents(w *ecs.World) []ecs.AttachmentEventKind {
	var kinds []ecs.AttachmentEventKind
	for _, evt := range w.Events().Drain() {
		if evt.Type != ecs.EventTypeAttachment {
			continue
		}
		kinds = append(kinds, evt.Data.(ecs.AttachmentEvent).Kind)
	}
	return kinds
}

func settled(t *testing.T) (*ecs.World, ecs.Entity, *ecs.Scheduler, *controller.Params) {
	t.Helper()
	params := controller.DefaultParams()
	w := ecs.NewWorld()
	pw := floorLevel(t, w)
	e := addPlayer(t, w, pw, mgl64.Vec3{0, 3, 0})
	s := tickScheduler(&params, nil)
	run(w, s, 300)
	return w, e, s, &params
}

func TestTickSettlesOnFloor(t *testing.T) {
	w, e, _, _ := settled(t)

	if !ecs.Has(w, e, component.AttachmentComponent.Kind()) {
		t.Fatal("expected the player to be grounded")
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	rest := controller.DefaultCollider().HalfHeight()
	if math.Abs(tr.Position.Y()-rest) > 1e-3 {
		t.Fatalf("expected rest height %v, got %v", rest, tr.Position.Y())
	}
	pc, _ := ecs.Get(w, e, component.PlayerControllerComponent.Kind())
	if math.Abs(pc.Velocity.Y()) > 1e-6 {
		t.Fatalf("expected no vertical velocity at rest, got %v", pc.Velocity)
	}
	hits, _ := ecs.Get(w, e, component.PlayerHitsComponent.Kind())
	if hits.Ground == nil || hits.Ground.NormalAngle > 1e-6 {
		t.Fatalf("expected a flat ground hit, got %+v", hits.Ground)
	}

	kinds := attachmentEvents(w)
	if len(kinds) == 0 || kinds[0] != ecs.AttachmentEventGrounded {
		t.Fatalf("expected a grounded event first, got %v", kinds)
	}
}

func TestJumpDetachesInSameTick(t *testing.T) {
	w, e, s, _ := settled(t)
	attachmentEvents(w)

	state, _ := ecs.Get(w, e, component.MovementStateComponent.Kind())
	state.Press(0, true)
	run(w, s, 1)

	if ecs.Has(w, e, component.AttachmentComponent.Kind()) {
		t.Fatal("expected the jump to detach the player")
	}
	if state.JumpJustPressed {
		t.Fatal("expected the press to be consumed")
	}
	pc, _ := ecs.Get(w, e, component.PlayerControllerComponent.Kind())
	if pc.Velocity.Y() <= 0 {
		t.Fatalf("expected upward velocity, got %v", pc.Velocity)
	}
	kinds := attachmentEvents(w)
	if len(kinds) != 1 || kinds[0] != ecs.AttachmentEventJumped {
		t.Fatalf("expected a single jumped event, got %v", kinds)
	}

	// Holding the button does not jump again.
	state.Press(0, true)
	run(w, s, 1)
	if state.JumpJustPressed {
		t.Fatal("a held button must not latch a new press")
	}
}

func TestWalkRightOnFloor(t *testing.T) {
	w, e, s, params := settled(t)
	state, _ := ecs.Get(w, e, component.MovementStateComponent.Kind())
	state.Press(1, false)
	run(w, s, 192)

	pc, _ := ecs.Get(w, e, component.PlayerControllerComponent.Kind())
	top := params.BaseMovement.SpeedFactor * params.GroundMovement.SpeedFactor
	if math.Abs(pc.Velocity.X()-top) > 1e-3 {
		t.Fatalf("expected top speed %v, got %v", top, pc.Velocity.X())
	}
	if !ecs.Has(w, e, component.AttachmentComponent.Kind()) {
		t.Fatal("expected to stay grounded while walking")
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.Position.X() <= 0 {
		t.Fatalf("expected to move right, got %v", tr.Position)
	}
}

func TestMissingPlayerSkipsTick(t *testing.T) {
	params := controller.DefaultParams()
	log, logs := observed(zapcore.DebugLevel)
	w := ecs.NewWorld()
	w.SetDeltaTime(testDt)

	NewGravitySystem(&params, log).Update(w)
	entries := logs.FilterMessage("skipping tick").All()
	if len(entries) != 1 || entries[0].Level != zapcore.DebugLevel {
		t.Fatalf("expected one debug entry, got %+v", entries)
	}
	if got := entries[0].ContextMap()["system"]; got != "gravity" {
		t.Fatalf("expected the gravity system to be named, got %v", got)
	}

	pw := floorLevel(t, w)
	a := addPlayer(t, w, pw, mgl64.Vec3{0, 3, 0})
	addPlayer(t, w, pw, mgl64.Vec3{2, 3, 0})
	NewGravitySystem(&params, log).Update(w)
	if n := logs.FilterMessage("skipping tick").FilterLevelExact(zapcore.WarnLevel).Len(); n != 1 {
		t.Fatalf("expected a warning for two players, got %d", n)
	}
	pc, _ := ecs.Get(w, a, component.PlayerControllerComponent.Kind())
	if pc.Velocity != (mgl64.Vec3{}) {
		t.Fatalf("skipped tick must not integrate, got %v", pc.Velocity)
	}
}

func TestMoveWithoutLevelSkips(t *testing.T) {
	params := controller.DefaultParams()
	log, logs := observed(zapcore.DebugLevel)
	w := ecs.NewWorld()
	w.SetDeltaTime(testDt)
	e := addPlayer(t, w, nil, mgl64.Vec3{0, 3, 0})
	pc, _ := ecs.Get(w, e, component.PlayerControllerComponent.Kind())
	pc.Velocity = mgl64.Vec3{1, 0, 0}

	NewMoveSystem(&params, log).Update(w)
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.Position != (mgl64.Vec3{0, 3, 0}) {
		t.Fatalf("expected no movement without a level, got %v", tr.Position)
	}
	if logs.FilterMessage("skipping tick").Len() != 1 {
		t.Fatalf("expected a skip entry, got %v", logs.All())
	}
}

func TestMoveWarnsOnInterpenetration(t *testing.T) {
	params := controller.DefaultParams()
	log, logs := observed(zapcore.WarnLevel)
	w := ecs.NewWorld()
	w.SetDeltaTime(testDt)
	pw := floorLevel(t, w)
	e := addPlayer(t, w, pw, mgl64.Vec3{0, 0.3, 0})
	pc, _ := ecs.Get(w, e, component.PlayerControllerComponent.Kind())
	pc.Velocity = mgl64.Vec3{3, 0, 0}

	NewMoveSystem(&params, log).Update(w)
	if logs.FilterMessage("shape cast started inside geometry").Len() != 1 {
		t.Fatalf("expected an interpenetration warning, got %v", logs.All())
	}
	hits, _ := ecs.Get(w, e, component.PlayerHitsComponent.Kind())
	if hits.LastMove.Interpenetrations == 0 {
		t.Fatalf("expected the move result to be stored, got %+v", hits.LastMove)
	}
}

func TestRespawnAfterFall(t *testing.T) {
	params := controller.DefaultParams()
	log, logs := observed(zapcore.InfoLevel)
	w := ecs.NewWorld()
	pw := floorLevel(t, w)
	e := addPlayer(t, w, pw, mgl64.Vec3{0, 0.87, 0})
	up := controller.Grounded(controller.Up)
	if err := ecs.Add(w, e, component.AttachmentComponent.Kind(), &up); err != nil {
		t.Fatal(err)
	}

	respawn := NewRespawnSystem(&params, log)
	respawn.Update(w)
	safe, ok := ecs.Get(w, e, component.SafeRespawnComponent.Kind())
	if !ok || !safe.Initialized || safe.Position != (mgl64.Vec3{0, 0.87, 0}) {
		t.Fatalf("expected walkable ground to be remembered, got %+v", safe)
	}

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	pc, _ := ecs.Get(w, e, component.PlayerControllerComponent.Kind())
	tr.Position = mgl64.Vec3{30, -1 - respawn.FallMargin - 1, 0}
	pc.Velocity = mgl64.Vec3{2, -20, 0}
	respawn.Update(w)

	if tr.Position != safe.Position {
		t.Fatalf("expected to respawn at %v, got %v", safe.Position, tr.Position)
	}
	if pc.Velocity != (mgl64.Vec3{}) {
		t.Fatalf("expected velocity reset, got %v", pc.Velocity)
	}
	if ecs.Has(w, e, component.AttachmentComponent.Kind()) {
		t.Fatal("expected the attachment to be cleared")
	}
	if logs.FilterMessage("respawned").Len() != 1 {
		t.Fatalf("expected a respawn entry, got %v", logs.All())
	}
}

func TestRespawnIgnoresSteepGround(t *testing.T) {
	params := controller.DefaultParams()
	w := ecs.NewWorld()
	pw := floorLevel(t, w)
	e := addPlayer(t, w, pw, mgl64.Vec3{4, 2, 0})
	steep := controller.Grounded(mgl64.Vec3{math.Sin(1), math.Cos(1), 0})
	if err := ecs.Add(w, e, component.AttachmentComponent.Kind(), &steep); err != nil {
		t.Fatal(err)
	}
	NewRespawnSystem(&params, nil).Update(w)
	safe, _ := ecs.Get(w, e, component.SafeRespawnComponent.Kind())
	if safe.Initialized {
		t.Fatalf("steep ground must not be a safe position, got %+v", safe)
	}
}

func TestCameraEasesTowardsPlayer(t *testing.T) {
	w := ecs.NewWorld()
	addPlayer(t, w, nil, mgl64.Vec3{10, 4, 0})
	cam := ecs.CreateEntity(w)
	if err := ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{Zoom: 48, Smoothness: 0.5}); err != nil {
		t.Fatal(err)
	}
	NewCameraSystem().Update(w)
	c, _ := ecs.Get(w, cam, component.CameraComponent.Kind())
	if c.Position != (mgl64.Vec2{5, 2}) {
		t.Fatalf("expected half way, got %v", c.Position)
	}
}
