package controller

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const testDt = 1.0 / 96

func groundedOn(normal mgl64.Vec3) *Attachment {
	a := Grounded(normal)
	return &a
}

func TestApplyGravity(t *testing.T) {
	p := DefaultParams()
	steep := slopeNormal((p.MaxWalkingSlopeAngle + p.MaxSlidingSlopeAngle) / 2)
	cases := []struct {
		name       string
		attachment *Attachment
		start      mgl64.Vec3
		wantY      float64
	}{
		{"airborne", nil, mgl64.Vec3{1, 0, 0}, p.Gravity.Y() * testDt},
		{"walkable", groundedOn(Up), mgl64.Vec3{1, -0.5, 0}, -0.5},
		{"unwalkable", groundedOn(steep), mgl64.Vec3{0, -1, 0}, -1 + p.Gravity.Y()*testDt},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ApplyGravity(c.start, c.attachment, &p, testDt)
			if !approx(got.Y(), c.wantY, 1e-12) {
				t.Fatalf("expected vy %v, got %v", c.wantY, got.Y())
			}
			if got.X() != c.start.X() {
				t.Fatalf("gravity changed horizontal velocity: %v", got)
			}
		})
	}
}

func TestApplyGravityBuoyant(t *testing.T) {
	p := DefaultParams()
	p.Gravity = mgl64.Vec3{0, 30, 0}
	v := mgl64.Vec3{}
	for i := 0; i < 2000; i++ {
		v = ApplyGravity(v, nil, &p, testDt)
		if v.Y() > p.BuoyantTerminalVelocity {
			t.Fatalf("step %d: vy %v exceeds buoyant terminal", i, v.Y())
		}
	}
}

func TestApplyInputsHorizontal(t *testing.T) {
	p := DefaultParams()
	steep := groundedOn(slopeNormal((p.MaxWalkingSlopeAngle + p.MaxSlidingSlopeAngle) / 2))
	cases := []struct {
		name       string
		attachment *Attachment
		start      float64
		axis       float64
		wantX      float64
	}{
		{
			name:  "airborne_accelerates",
			start: 0, axis: 1,
			wantX: p.AerialMovement.InputFactor * p.BaseMovement.InputFactor * testDt,
		},
		{
			name:  "airborne_reverse",
			start: 1, axis: -1,
			wantX: 1 - p.AerialMovement.ReverseInputFactor*p.BaseMovement.ReverseInputFactor*testDt,
		},
		{
			name:  "airborne_release",
			start: 1.5, axis: 0,
			wantX: 1.5 - p.AerialMovement.SpeedFactor*p.BaseMovement.SpeedFactor/(p.AerialMovement.StopFactor*p.BaseMovement.StopFactor)*testDt,
		},
		{
			name:       "steep_ground_reverse",
			attachment: steep,
			start:      2, axis: -1,
			wantX: 2 - p.GroundMovement.ReverseInputFactor*p.BaseMovement.ReverseInputFactor*testDt,
		},
		{
			name:       "steep_ground_half_axis",
			attachment: steep,
			start:      0, axis: 0.5,
			wantX: p.GroundMovement.InputFactor * p.BaseMovement.InputFactor * 0.5 * testDt,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, jumped := ApplyInputs(mgl64.Vec3{c.start, 0, 0}, c.attachment, Input{HorizontalAxis: c.axis}, &p, testDt)
			if jumped {
				t.Fatal("unexpected jump")
			}
			if !approx(got.X(), c.wantX, 1e-12) {
				t.Fatalf("expected vx %v, got %v", c.wantX, got.X())
			}
		})
	}
}

func TestApplyInputsSpeedCap(t *testing.T) {
	p := DefaultParams()
	steep := groundedOn(slopeNormal((p.MaxWalkingSlopeAngle + p.MaxSlidingSlopeAngle) / 2))
	limit := p.GroundMovement.SpeedFactor * p.BaseMovement.SpeedFactor
	v := mgl64.Vec3{}
	for i := 0; i < 1000; i++ {
		v, _ = ApplyInputs(v, steep, Input{HorizontalAxis: -1}, &p, testDt)
		if v.X() < -limit {
			t.Fatalf("step %d: vx %v exceeds cap %v", i, v.X(), limit)
		}
	}
	if v.X() > -0.9*limit {
		t.Fatalf("expected to approach the cap, got %v", v.X())
	}
}

func TestApplyInputsJump(t *testing.T) {
	p := DefaultParams()
	steep := groundedOn(slopeNormal((p.MaxWalkingSlopeAngle + p.MaxSlidingSlopeAngle) / 2))
	cases := []struct {
		name       string
		attachment *Attachment
		wantJump   bool
		impulse    float64
	}{
		{"airborne", nil, false, 0},
		{"flat", groundedOn(Up), true, p.GroundMovement.JumpFactor * p.BaseMovement.JumpFactor},
		{"steep", steep, true, p.GroundMovement.JumpFactor * p.BaseMovement.JumpFactor},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			start := mgl64.Vec3{0, -0.25, 0}
			got, jumped := ApplyInputs(start, c.attachment, Input{JumpJustPressed: true}, &p, testDt)
			if jumped != c.wantJump {
				t.Fatalf("expected jumped=%v, got %v", c.wantJump, jumped)
			}
			if got.Y() != start.Y()+c.impulse {
				t.Fatalf("expected vy %v, got %v", start.Y()+c.impulse, got.Y())
			}
		})
	}
}

func TestApplyInputsPlanarFollowsSlope(t *testing.T) {
	p := DefaultParams()
	angle := p.MaxWalkingSlopeAngle - 0.01
	normal := slopeNormal(angle)
	v := mgl64.Vec3{}
	for i := 0; i < 10; i++ {
		v, _ = ApplyInputs(v, groundedOn(normal), Input{HorizontalAxis: 1}, &p, testDt)
	}
	if !approx(v.Dot(normal), 0, 1e-12) {
		t.Fatalf("expected velocity in the slope plane, got normal component %v", v.Dot(normal))
	}
	upSlope := mgl64.Vec3{math.Cos(angle), math.Sin(angle), 0}
	if v.Dot(upSlope) <= 0 || v.Y() <= 0 {
		t.Fatalf("expected up-slope velocity, got %v", v)
	}
}

func TestApplyInputsPlanarPreservesNormalVelocity(t *testing.T) {
	p := DefaultParams()
	normal := slopeNormal(0.3)
	tangent := mgl64.Vec3{math.Cos(0.3), math.Sin(0.3), 0}
	start := normal.Mul(-2).Add(tangent.Mul(1))

	for _, axis := range []float64{0, 1, -1} {
		got, _ := ApplyInputs(start, groundedOn(normal), Input{HorizontalAxis: axis}, &p, testDt)
		if !approx(got.Dot(normal), -2, 1e-12) {
			t.Fatalf("axis %v: expected normal velocity -2, got %v", axis, got.Dot(normal))
		}
	}
}

func TestApplyInputsPinsZ(t *testing.T) {
	p := DefaultParams()
	got, _ := ApplyInputs(mgl64.Vec3{1, 2, 3}, nil, Input{HorizontalAxis: 1}, &p, testDt)
	if got.Z() != 0 {
		t.Fatalf("expected z pinned to 0, got %v", got.Z())
	}
}
