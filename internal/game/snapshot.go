package game

// Snapshot is a read-only copy of everything the renderer needs for a frame.
type Snapshot struct {
	Tick           uint64
	Phase          Phase
	Selected       ControlMode // Highlighted option during control selection
	Mode           ControlMode // Control mode of the current or last run
	Plane          Plane
	Obstacles      []Obstacle
	Run            RunState
	PointerY       int
	AudioOn        bool
	AudioAvailable bool
}

// Snapshot returns the current state for rendering. The returned value shares
// nothing with the machine.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		Tick:           m.tick,
		Phase:          m.phase,
		Selected:       m.selected,
		Mode:           m.mode,
		Plane:          m.plane,
		Obstacles:      m.pipeline.Obstacles(),
		Run:            m.run,
		PointerY:       m.pointerY,
		AudioOn:        m.audioOn,
		AudioAvailable: m.track != nil,
	}
}

// Altitude returns the plane's height above the ground in meters, as shown
// on the HUD.
func (s Snapshot) Altitude() int {
	alt := int((GroundY - s.Plane.Y) / 5)
	if alt < 0 {
		return 0
	}
	return alt
}

// Rank is the pilot rank awarded for a final score.
type Rank struct {
	Title    string
	MinScore int
}

// ranks are ordered from highest to lowest threshold.
var ranks = []Rank{
	{Title: "ACE", MinScore: 40},
	{Title: "CAPTAIN", MinScore: 25},
	{Title: "LIEUTENANT", MinScore: 15},
	{Title: "CADET", MinScore: 5},
	{Title: "ROOKIE", MinScore: 0},
}

// RankFor returns the pilot rank for the given score.
func RankFor(score int) Rank {
	for _, r := range ranks {
		if score >= r.MinScore {
			return r
		}
	}
	return ranks[len(ranks)-1]
}
