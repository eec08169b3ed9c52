// Package game implements the flight simulation: a plane steered through
// scrolling pairs of towers. All positions are in field units (a 500x600
// playfield with the origin at the top-left); the platform scales the field
// onto whatever surface it draws to.
package game

import "time"

// Playfield geometry.
const (
	FieldWidth   = 500
	FieldHeight  = 600
	GroundHeight = 60
	GroundY      = FieldHeight - GroundHeight // Ground line (top of the ground band)
	CeilingY     = 0
)

// Plane geometry and handling.
const (
	PlaneX      = 80
	PlaneWidth  = 50
	PlaneHeight = 25
	PlaneStartY = FieldHeight/2 - PlaneHeight/2

	MoveSpeed      = 4.5  // Velocity limit, both directions
	ImpulseFactor  = 0.3  // Fraction of MoveSpeed added per tick while an intent is held
	Friction       = 0.85 // Velocity decay with no intent held
	TrackingGain   = 0.12 // Proportional gain toward the pointer target
	EngineDeadband = 3.0  // Tracking distance below which the engine idles
	MaxRotation    = 25.0 // Degrees
	RotationFollow = 0.15 // Smoothing factor for the cosmetic rotation
)

// Hitbox insets: the collision box is smaller than the drawn sprite.
const (
	HitboxInsetX = 6
	HitboxInsetY = 4
)

// Obstacle geometry and spawning.
const (
	ObstacleWidth = 55
	GapHeight     = 160
	BoundsMargin  = 1 // Tower boxes reach one unit past the drawn width on each side

	GapMinY = 70                               // Lowest allowed gap start (top margin)
	GapMaxY = FieldHeight - GroundHeight - 230 // Exclusive upper bound for the gap start
)

// Difficulty ramp.
const (
	BaseSpeed         = 3
	MaxSpeed          = 15
	SpeedStep         = 2
	ScorePerLevel     = 10
	BaseSpawnInterval = 95
	MinSpawnInterval  = 55
	SpawnIntervalStep = 5
)

// GameOverCooldown is how long confirm is ignored after a crash.
const GameOverCooldown = 500 * time.Millisecond
