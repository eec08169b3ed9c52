package game

import "testing"

func TestPipelineSpawnsOnInterval(t *testing.T) {
	op := NewObstaclePipeline(1)

	for i := 1; i < BaseSpawnInterval; i++ {
		if r := op.Tick(BaseSpeed, PlaneX); r.Spawned != nil {
			t.Fatalf("unexpected spawn at tick %d", i)
		}
	}

	r := op.Tick(BaseSpeed, PlaneX)
	if r.Spawned == nil {
		t.Fatalf("expected spawn at tick %d", BaseSpawnInterval)
	}
	if r.Spawned.X != FieldWidth {
		t.Errorf("spawn X = %d, expected %d", r.Spawned.X, FieldWidth)
	}
	if op.Len() != 1 {
		t.Errorf("Len = %d, expected 1", op.Len())
	}
}

func TestPipelineSpawnedObstacleNotAdvancedOnSpawnTick(t *testing.T) {
	op := NewObstaclePipeline(1)
	op.SetSpawnInterval(1)

	op.Tick(BaseSpeed, PlaneX)
	obs := op.Obstacles()
	if len(obs) != 1 || obs[0].X != FieldWidth {
		t.Fatalf("expected one obstacle at the right edge, got %+v", obs)
	}
}

func TestPipelineGapRange(t *testing.T) {
	op := NewObstaclePipeline(42)
	op.SetSpawnInterval(1)

	for i := 0; i < 500; i++ {
		r := op.Tick(FieldWidth, PlaneX)
		if r.Spawned == nil {
			t.Fatal("expected spawn every tick")
		}
		o := r.Spawned
		if o.GapY < GapMinY || o.GapY >= GapMaxY {
			t.Fatalf("GapY %d outside [%d, %d)", o.GapY, GapMinY, GapMaxY)
		}
		if o.Width != ObstacleWidth || o.Gap != GapHeight {
			t.Fatalf("unexpected geometry %+v", o)
		}
	}
}

func TestPipelineDeterministicForSeed(t *testing.T) {
	a := NewObstaclePipeline(7)
	b := NewObstaclePipeline(7)
	a.SetSpawnInterval(1)
	b.SetSpawnInterval(1)

	for i := 0; i < 20; i++ {
		ra := a.Tick(BaseSpeed, PlaneX)
		rb := b.Tick(BaseSpeed, PlaneX)
		if ra.Spawned.GapY != rb.Spawned.GapY {
			t.Fatalf("spawn %d differs: %d vs %d", i, ra.Spawned.GapY, rb.Spawned.GapY)
		}
	}
}

func TestPipelineScoresOnce(t *testing.T) {
	op := NewObstaclePipeline(1)
	op.obstacles = append(op.obstacles, Obstacle{ID: 1, X: PlaneX - ObstacleWidth + 2, GapY: 100, Width: ObstacleWidth, Gap: GapHeight})

	// Right edge = PlaneX+2, reaches PlaneX-1 after one tick at speed 3.
	r := op.Tick(BaseSpeed, PlaneX)
	if len(r.Scored) != 1 || r.Scored[0] != 1 {
		t.Fatalf("expected obstacle 1 scored, got %v", r.Scored)
	}

	for i := 0; i < 10; i++ {
		if r := op.Tick(BaseSpeed, PlaneX); len(r.Scored) != 0 {
			t.Fatalf("obstacle scored again on tick %d", i)
		}
	}
}

func TestPipelineNotScoredAtExactEdge(t *testing.T) {
	op := NewObstaclePipeline(1)
	op.obstacles = append(op.obstacles, Obstacle{ID: 1, X: PlaneX - ObstacleWidth + BaseSpeed, GapY: 100, Width: ObstacleWidth, Gap: GapHeight})

	// Right edge lands exactly on PlaneX, which is not behind it yet.
	if r := op.Tick(BaseSpeed, PlaneX); len(r.Scored) != 0 {
		t.Errorf("obstacle at the plane's x should not score yet")
	}
	if r := op.Tick(BaseSpeed, PlaneX); len(r.Scored) != 1 {
		t.Errorf("obstacle behind the plane should score")
	}
}

func TestPipelineRemovesOffScreen(t *testing.T) {
	op := NewObstaclePipeline(1)
	op.obstacles = append(op.obstacles,
		Obstacle{ID: 1, X: -ObstacleWidth + 2, GapY: 100, Width: ObstacleWidth, Gap: GapHeight, Scored: true},
		Obstacle{ID: 2, X: 200, GapY: 100, Width: ObstacleWidth, Gap: GapHeight},
	)

	r := op.Tick(BaseSpeed, PlaneX)

	if len(r.Removed) != 1 || r.Removed[0] != 1 {
		t.Fatalf("expected obstacle 1 removed, got %v", r.Removed)
	}
	obs := op.Obstacles()
	if len(obs) != 1 || obs[0].ID != 2 {
		t.Fatalf("remaining = %+v", obs)
	}
	if obs[0].X != 200-BaseSpeed {
		t.Errorf("obstacle 2 X = %d, expected %d", obs[0].X, 200-BaseSpeed)
	}
}

func TestPipelineScoreAndRemoveSameTick(t *testing.T) {
	op := NewObstaclePipeline(1)
	op.obstacles = append(op.obstacles, Obstacle{ID: 9, X: -ObstacleWidth + 1, GapY: 100, Width: ObstacleWidth, Gap: GapHeight})

	r := op.Tick(BaseSpeed, PlaneX)

	if len(r.Scored) != 1 || len(r.Removed) != 1 {
		t.Errorf("expected score and removal in one tick, got scored=%v removed=%v", r.Scored, r.Removed)
	}
}

func TestPipelineObstaclesReturnsCopy(t *testing.T) {
	op := NewObstaclePipeline(1)
	op.SetSpawnInterval(1)
	op.Tick(BaseSpeed, PlaneX)

	obs := op.Obstacles()
	obs[0].X = -1000

	if op.Obstacles()[0].X == -1000 {
		t.Error("Obstacles should return a copy")
	}
}

func TestPipelineClearKeepsSequence(t *testing.T) {
	op := NewObstaclePipeline(3)
	op.SetSpawnInterval(1)
	first := op.Tick(BaseSpeed, PlaneX).Spawned.GapY

	op.Clear()
	if op.Len() != 0 {
		t.Fatalf("Clear left %d obstacles", op.Len())
	}

	fresh := NewObstaclePipeline(3)
	fresh.SetSpawnInterval(1)
	fresh.Tick(BaseSpeed, PlaneX)
	want := fresh.Tick(BaseSpeed, PlaneX).Spawned.GapY

	op.SetSpawnInterval(1)
	if got := op.Tick(BaseSpeed, PlaneX).Spawned.GapY; got != want {
		t.Errorf("after Clear gap = %d, expected the second value %d (first was %d)", got, want, first)
	}
}

func TestObstacleRects(t *testing.T) {
	o := Obstacle{X: 200, GapY: 100, Width: ObstacleWidth, Gap: GapHeight}

	top := o.TopRect()
	if top.X != 199 || top.Y != 0 || top.W != ObstacleWidth+2 || top.H != 100 {
		t.Errorf("TopRect = %+v", top)
	}

	bottom := o.BottomRect()
	if bottom.X != 199 || bottom.Y != 260 || bottom.W != ObstacleWidth+2 || bottom.H != FieldHeight-260 {
		t.Errorf("BottomRect = %+v", bottom)
	}
}
