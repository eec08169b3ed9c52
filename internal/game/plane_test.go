package game

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestIntegrateImpulse(t *testing.T) {
	tests := []struct {
		name     string
		up, down bool
		velocity float64
		expected float64
	}{
		{"climb from rest", true, false, 0, -MoveSpeed * ImpulseFactor},
		{"dive from rest", false, true, 0, MoveSpeed * ImpulseFactor},
		{"up wins when both held", true, true, 0, -MoveSpeed * ImpulseFactor},
		{"friction with no intent", false, false, 2, 2 * Friction},
		{"climb clamps at limit", true, false, -MoveSpeed, -MoveSpeed},
		{"dive clamps at limit", false, true, MoveSpeed - 0.1, MoveSpeed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPlane(ControlImpulse)
			p.Up, p.Down = tc.up, tc.down
			p.Velocity = tc.velocity
			y0 := p.Y

			next := Integrate(p)

			if math.Abs(next.Velocity-tc.expected) > eps {
				t.Errorf("Velocity = %f, expected %f", next.Velocity, tc.expected)
			}
			if math.Abs(next.Y-(y0+tc.expected)) > eps {
				t.Errorf("Y = %f, expected %f", next.Y, y0+tc.expected)
			}
			if next.EngineOn != (tc.up || tc.down) {
				t.Errorf("EngineOn = %v with up=%v down=%v", next.EngineOn, tc.up, tc.down)
			}
		})
	}
}

func TestIntegrateFrictionDecaysTowardZero(t *testing.T) {
	p := NewPlane(ControlImpulse)
	p.Velocity = MoveSpeed

	for i := 0; i < 200; i++ {
		p = Integrate(p)
	}

	if math.Abs(p.Velocity) > 1e-6 {
		t.Errorf("velocity should decay toward zero, got %f", p.Velocity)
	}
}

func TestIntegrateTracking(t *testing.T) {
	tests := []struct {
		name     string
		targetY  int
		expected float64
		engine   bool
	}{
		{"small offset is proportional", PlaneStartY + 10, 10 * TrackingGain, true},
		{"far below clamps", PlaneStartY + 200, MoveSpeed, true},
		{"far above clamps", PlaneStartY - 200, -MoveSpeed, true},
		{"inside deadband idles engine", PlaneStartY + 2, 2 * TrackingGain, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPlane(ControlTracking)
			p.TargetY = tc.targetY

			next := Integrate(p)

			if math.Abs(next.Velocity-tc.expected) > eps {
				t.Errorf("Velocity = %f, expected %f", next.Velocity, tc.expected)
			}
			if next.EngineOn != tc.engine {
				t.Errorf("EngineOn = %v, expected %v", next.EngineOn, tc.engine)
			}
		})
	}
}

func TestIntegrateTrackingIgnoresIntents(t *testing.T) {
	p := NewPlane(ControlTracking)
	p.Up = true

	next := Integrate(p)

	if next.Velocity != 0 || next.Y != p.Y {
		t.Errorf("tracking plane on target should not move, got Y=%f v=%f", next.Y, next.Velocity)
	}
}

func TestIntegrateTrackingConverges(t *testing.T) {
	p := NewPlane(ControlTracking)
	p.TargetY = 150

	for i := 0; i < 300; i++ {
		p = Integrate(p)
	}

	if math.Abs(p.Y-150) > 0.5 {
		t.Errorf("plane should settle on target, Y = %f", p.Y)
	}
}

func TestRotationStaysClamped(t *testing.T) {
	p := NewPlane(ControlImpulse)
	p.Down = true

	for i := 0; i < 100; i++ {
		p = Integrate(p)
		if p.Rotation > MaxRotation || p.Rotation < -MaxRotation {
			t.Fatalf("rotation %f outside ±%v", p.Rotation, MaxRotation)
		}
	}
	if p.Rotation <= 0 {
		t.Errorf("diving plane should pitch nose down, rotation = %f", p.Rotation)
	}
}

func TestTrackingTargetCentersSprite(t *testing.T) {
	if got := TrackingTarget(300); got != 300-PlaneHeight/2 {
		t.Errorf("TrackingTarget(300) = %d, expected %d", got, 300-PlaneHeight/2)
	}
}

func TestBodyHitboxInset(t *testing.T) {
	b := NewPlane(ControlImpulse).Body()
	hb := b.Hitbox()

	if hb.X != PlaneX+HitboxInsetX || hb.Y != PlaneStartY+HitboxInsetY {
		t.Errorf("hitbox origin = (%d, %d)", hb.X, hb.Y)
	}
	if hb.W != PlaneWidth-2*HitboxInsetX || hb.H != PlaneHeight-2*HitboxInsetY {
		t.Errorf("hitbox size = %dx%d", hb.W, hb.H)
	}
}
