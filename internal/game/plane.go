package game

import (
	"math"

	"github.com/vovakirdan/flappyplane/internal/core"
)

// ControlMode selects how the player steers the plane.
type ControlMode int

const (
	// ControlImpulse steers with held up/down intents (keyboard).
	ControlImpulse ControlMode = iota
	// ControlTracking follows a pointer's vertical position (mouse).
	ControlTracking
)

// String returns a short label for the control mode.
func (m ControlMode) String() string {
	switch m {
	case ControlImpulse:
		return "keyboard"
	case ControlTracking:
		return "mouse"
	default:
		return "unknown"
	}
}

// Plane is the kinematic state of the player's aircraft.
// X is fixed; only the vertical axis is simulated.
type Plane struct {
	Y        float64 // Top of the sprite
	Velocity float64 // Vertical velocity per tick (negative = up)
	Rotation float64 // Cosmetic nose angle in degrees
	Mode     ControlMode
	TargetY  int  // Pointer target, used in ControlTracking
	Up, Down bool // Held intents, used in ControlImpulse
	EngineOn bool // Presentation only
}

// NewPlane returns a plane at the starting altitude with no motion.
func NewPlane(mode ControlMode) Plane {
	return Plane{
		Y:       PlaneStartY,
		Mode:    mode,
		TargetY: PlaneStartY,
	}
}

// Body returns the drawn sprite box of the plane.
func (p Plane) Body() Body {
	return Body{X: PlaneX, Y: p.Y, W: PlaneWidth, H: PlaneHeight}
}

// Integrate advances the plane by one tick under its control mode and
// returns the new state.
func Integrate(p Plane) Plane {
	switch p.Mode {
	case ControlTracking:
		diff := float64(p.TargetY) - p.Y
		p.Velocity = core.ClampF(diff*TrackingGain, -MoveSpeed, MoveSpeed)
		p.Y += p.Velocity
		p.EngineOn = math.Abs(diff) > EngineDeadband
	default:
		switch {
		case p.Up:
			p.Velocity -= MoveSpeed * ImpulseFactor
		case p.Down:
			p.Velocity += MoveSpeed * ImpulseFactor
		default:
			p.Velocity *= Friction
		}
		p.Velocity = core.ClampF(p.Velocity, -MoveSpeed, MoveSpeed)
		p.Y += p.Velocity
		p.EngineOn = p.Up || p.Down
	}

	target := p.Velocity * 4
	p.Rotation += (target - p.Rotation) * RotationFollow
	p.Rotation = core.ClampF(p.Rotation, -MaxRotation, MaxRotation)

	return p
}

// TrackingTarget converts a pointer's field Y into the plane's target so the
// sprite centers on the pointer.
func TrackingTarget(pointerY int) int {
	return pointerY - PlaneHeight/2
}

// Body is an axis-aligned box in field units with a fractional origin.
type Body struct {
	X, Y, W, H float64
}

// Rect truncates the body to integer field units.
func (b Body) Rect() core.Rect {
	return core.NewRect(int(b.X), int(b.Y), int(b.W), int(b.H))
}

// Hitbox returns the forgiving collision box inside the sprite.
func (b Body) Hitbox() core.Rect {
	return b.Rect().Inset(HitboxInsetX, HitboxInsetY, HitboxInsetX, HitboxInsetY)
}
