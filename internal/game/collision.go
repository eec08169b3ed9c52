package game

// CollisionDetector decides whether the plane's current position ends the run.
type CollisionDetector struct {
	CeilingY int
	GroundY  int
}

// NewCollisionDetector returns a detector for the standard playfield.
func NewCollisionDetector() CollisionDetector {
	return CollisionDetector{CeilingY: CeilingY, GroundY: GroundY}
}

// OutOfBounds reports whether the sprite touched the ground or left through
// the ceiling.
func (d CollisionDetector) OutOfBounds(body Body) bool {
	return body.Y < float64(d.CeilingY) || body.Y+body.H >= float64(d.GroundY)
}

// Check returns true if the plane crashed: out of vertical bounds, or its
// hitbox overlaps either tower of any obstacle.
func (d CollisionDetector) Check(body Body, obstacles []Obstacle) bool {
	if d.OutOfBounds(body) {
		return true
	}

	hitbox := body.Hitbox()
	for _, o := range obstacles {
		if hitbox.Intersects(o.TopRect()) || hitbox.Intersects(o.BottomRect()) {
			return true
		}
	}
	return false
}
