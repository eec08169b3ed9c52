package game

// Difficulty derives the scroll speed and spawn interval from the score.
// Speed climbs by SpeedStep every ScorePerLevel points up to MaxSpeed; the
// spawn interval ratchets down by SpawnIntervalStep at the same thresholds
// until it reaches MinSpawnInterval.
type Difficulty struct{}

// Recompute returns the speed and spawn interval after a scoring event that
// brought the run to score. It never lowers speed or raises the interval.
func (Difficulty) Recompute(score, speed, interval int) (int, int) {
	expected := BaseSpeed + (score/ScorePerLevel)*SpeedStep
	if expected != speed && expected <= MaxSpeed {
		speed = expected
	}

	if score > 0 && score%ScorePerLevel == 0 && interval > MinSpawnInterval {
		interval -= SpawnIntervalStep
	}

	return speed, interval
}

// PointsToNextLevel returns how many more points trigger the next speed-up.
func (Difficulty) PointsToNextLevel(score int) int {
	next := (score/ScorePerLevel + 1) * ScorePerLevel
	return next - score
}
