package game

import (
	"math/rand"

	"github.com/vovakirdan/flappyplane/internal/core"
)

// ObstacleID identifies an obstacle for the lifetime of a pipeline.
type ObstacleID uint64

// Obstacle is a pair of towers with a passable gap between them.
type Obstacle struct {
	ID     ObstacleID
	X      int  // Left edge
	GapY   int  // Top of the gap
	Width  int  // Fixed at spawn
	Gap    int  // Gap height, fixed at spawn
	Scored bool // Set once when the plane has passed the trailing edge
}

// Right returns the x-coordinate of the trailing edge.
func (o Obstacle) Right() int {
	return o.X + o.Width
}

// TopRect returns the collision box of the upper tower (ceiling to gap).
func (o Obstacle) TopRect() core.Rect {
	return core.NewRect(o.X-BoundsMargin, 0, o.Width+2*BoundsMargin, o.GapY)
}

// BottomRect returns the collision box of the lower tower (gap to field bottom).
func (o Obstacle) BottomRect() core.Rect {
	bottomY := o.GapY + o.Gap
	return core.NewRect(o.X-BoundsMargin, bottomY, o.Width+2*BoundsMargin, FieldHeight-bottomY)
}

// OffScreen reports whether the obstacle has fully left the field.
func (o Obstacle) OffScreen() bool {
	return o.Right() < 0
}

// TickReport lists what happened to the obstacles during one tick.
type TickReport struct {
	Spawned *Obstacle
	Scored  []ObstacleID
	Removed []ObstacleID
}

// ObstaclePipeline handles spawning, movement, scoring and removal of obstacles.
type ObstaclePipeline struct {
	obstacles  []Obstacle
	rng        *rand.Rand
	spawnTimer int
	interval   int
	nextID     ObstacleID
}

// NewObstaclePipeline creates an empty pipeline seeded for deterministic gaps.
func NewObstaclePipeline(seed int64) *ObstaclePipeline {
	op := &ObstaclePipeline{
		obstacles: make([]Obstacle, 0, 8),
	}
	op.Reset(seed)
	return op
}

// Reset clears all obstacles, the spawn timer and reseeds the RNG.
func (op *ObstaclePipeline) Reset(seed int64) {
	op.obstacles = op.obstacles[:0]
	op.rng = rand.New(rand.NewSource(seed))
	op.spawnTimer = 0
	op.interval = BaseSpawnInterval
}

// Clear removes all obstacles and restarts the spawn timer at the base
// interval. The RNG keeps its sequence.
func (op *ObstaclePipeline) Clear() {
	op.obstacles = op.obstacles[:0]
	op.spawnTimer = 0
	op.interval = BaseSpawnInterval
}

// SetSpawnInterval changes the number of ticks between spawns.
func (op *ObstaclePipeline) SetSpawnInterval(ticks int) {
	op.interval = ticks
}

// Tick advances every obstacle by speed, scores the ones whose trailing edge
// is behind planeX, retires the ones that left the field and finally spawns a
// new obstacle when the spawn timer expires.
func (op *ObstaclePipeline) Tick(speed, planeX int) TickReport {
	var report TickReport

	live := op.obstacles[:0]
	for _, o := range op.obstacles {
		o.X -= speed

		if !o.Scored && o.Right() < planeX {
			o.Scored = true
			report.Scored = append(report.Scored, o.ID)
		}

		if o.OffScreen() {
			report.Removed = append(report.Removed, o.ID)
			continue
		}
		live = append(live, o)
	}
	op.obstacles = live

	op.spawnTimer++
	if op.spawnTimer >= op.interval {
		spawned := op.spawn()
		report.Spawned = &spawned
		op.spawnTimer = 0
	}

	return report
}

// spawn creates a new obstacle at the right edge of the field.
func (op *ObstaclePipeline) spawn() Obstacle {
	op.nextID++
	o := Obstacle{
		ID:    op.nextID,
		X:     FieldWidth,
		GapY:  GapMinY + op.rng.Intn(GapMaxY-GapMinY),
		Width: ObstacleWidth,
		Gap:   GapHeight,
	}
	op.obstacles = append(op.obstacles, o)
	return o
}

// Obstacles returns a copy of the live obstacles, oldest first.
func (op *ObstaclePipeline) Obstacles() []Obstacle {
	out := make([]Obstacle, len(op.obstacles))
	copy(out, op.obstacles)
	return out
}

// Len returns the number of live obstacles.
func (op *ObstaclePipeline) Len() int {
	return len(op.obstacles)
}

// live exposes the backing slice for read-only use inside the package.
func (op *ObstaclePipeline) live() []Obstacle {
	return op.obstacles
}
