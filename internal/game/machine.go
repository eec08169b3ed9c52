package game

import (
	"time"

	"github.com/vovakirdan/flappyplane/internal/core"
)

// Phase is the top-level mode of the game.
type Phase int

const (
	PhaseMenu Phase = iota
	PhaseControlSelect
	PhasePlaying
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhaseControlSelect:
		return "control_select"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Clickable option regions on the control selection panel (field units,
// edges inclusive).
var (
	SelectPanel          = core.NewRect(60, 110, 380, 340)
	ImpulseOptionRegion  = core.NewRect(85, 205, 330, 100)
	TrackingOptionRegion = core.NewRect(85, 320, 330, 100)
)

// Track is a looping background track. Start and Stop must not block.
type Track interface {
	Start()
	Stop()
}

// RunState is the scoring and pacing state of the current run.
// BestScore survives across runs for the lifetime of the Machine.
type RunState struct {
	Score         int
	Speed         int
	SpawnInterval int
	Ticks         int // Ticks spent in PhasePlaying this run
	BestScore     int
	NewBest       bool // The last finished run raised BestScore
}

// RunResult summarizes a finished run.
type RunResult struct {
	Mode     ControlMode
	Score    int
	TopSpeed int
	Ticks    int
	Duration time.Duration
	NewBest  bool
}

// StepResult is returned by Update after each tick.
type StepResult struct {
	Phase   Phase
	Scored  int        // Scoring events this tick
	Spawned bool       // An obstacle entered the field this tick
	Run     *RunResult // Set on the tick the plane crashed
}

// Machine is the game state machine. It is driven by a single caller: Update
// once per tick, input handlers between ticks. It is not safe for concurrent
// use.
type Machine struct {
	phase    Phase
	selected ControlMode // Highlighted option in PhaseControlSelect
	mode     ControlMode // Committed control mode of the current run

	plane      Plane
	pipeline   *ObstaclePipeline
	difficulty Difficulty
	detector   CollisionDetector
	run        RunState

	pointerY   int
	tick       uint64
	startedAt  time.Time
	gameOverAt time.Time
	now        func() time.Time

	track   Track
	audioOn bool
}

// NewMachine creates a machine in PhaseMenu. A nil track means audio is
// unavailable; otherwise the track is started immediately when audioOn is set.
func NewMachine(seed int64, track Track, audioOn bool) *Machine {
	m := &Machine{
		phase:    PhaseMenu,
		selected: ControlImpulse,
		mode:     ControlImpulse,
		pipeline: NewObstaclePipeline(seed),
		detector: NewCollisionDetector(),
		pointerY: FieldHeight / 2,
		now:      time.Now,
		track:    track,
	}
	m.resetRun()

	if track != nil && audioOn {
		track.Start()
		m.audioOn = true
	}
	return m
}

// SetClock replaces the wall clock used for the game over cooldown and run
// durations.
func (m *Machine) SetClock(now func() time.Time) {
	m.now = now
}

// Update advances the simulation by one tick.
func (m *Machine) Update() StepResult {
	m.tick++

	if m.phase != PhasePlaying {
		return StepResult{Phase: m.phase}
	}

	if m.mode == ControlTracking {
		m.plane.TargetY = TrackingTarget(m.pointerY)
	}
	m.plane = Integrate(m.plane)
	m.run.Ticks++

	report := m.pipeline.Tick(m.run.Speed, PlaneX)
	for range report.Scored {
		m.run.Score++
		m.run.Speed, m.run.SpawnInterval = m.difficulty.Recompute(m.run.Score, m.run.Speed, m.run.SpawnInterval)
	}
	if len(report.Scored) > 0 {
		m.pipeline.SetSpawnInterval(m.run.SpawnInterval)
	}

	result := StepResult{
		Phase:   m.phase,
		Scored:  len(report.Scored),
		Spawned: report.Spawned != nil,
	}

	if m.detector.Check(m.plane.Body(), m.pipeline.live()) {
		run := m.crash()
		result.Phase = m.phase
		result.Run = &run
	}

	return result
}

// crash ends the current run.
func (m *Machine) crash() RunResult {
	m.phase = PhaseGameOver
	m.gameOverAt = m.now()
	m.plane.Up, m.plane.Down = false, false

	m.run.NewBest = m.run.Score > m.run.BestScore
	if m.run.NewBest {
		m.run.BestScore = m.run.Score
	}

	return RunResult{
		Mode:     m.mode,
		Score:    m.run.Score,
		TopSpeed: m.run.Speed,
		Ticks:    m.run.Ticks,
		Duration: m.gameOverAt.Sub(m.startedAt),
		NewBest:  m.run.NewBest,
	}
}

// resetRun clears the per-run state, keeping the best score.
func (m *Machine) resetRun() {
	m.run = RunState{
		Speed:         BaseSpeed,
		SpawnInterval: BaseSpawnInterval,
		BestScore:     m.run.BestScore,
	}
	m.pipeline.Clear()
	m.plane = NewPlane(m.mode)
}

// startRun commits a control mode and begins playing.
func (m *Machine) startRun(mode ControlMode) {
	m.selected = mode
	m.mode = mode
	m.resetRun()
	m.startedAt = m.now()
	m.phase = PhasePlaying
}

// Confirm handles the confirm input: advance from the title menu, commit the
// highlighted control option, or leave the game over screen once the
// cooldown has passed.
func (m *Machine) Confirm() {
	switch m.phase {
	case PhaseMenu:
		m.phase = PhaseControlSelect
		m.selected = ControlImpulse
	case PhaseControlSelect:
		m.startRun(m.selected)
	case PhaseGameOver:
		if m.now().Sub(m.gameOverAt) < GameOverCooldown {
			return
		}
		m.resetRun()
		m.phase = PhaseMenu
	}
}

// Cancel returns from control selection to the title menu.
func (m *Machine) Cancel() {
	if m.phase == PhaseControlSelect {
		m.phase = PhaseMenu
	}
}

// SelectUp highlights the keyboard option during control selection.
func (m *Machine) SelectUp() {
	if m.phase == PhaseControlSelect {
		m.selected = ControlImpulse
	}
}

// SelectDown highlights the mouse option during control selection.
func (m *Machine) SelectDown() {
	if m.phase == PhaseControlSelect {
		m.selected = ControlTracking
	}
}

// PressUp starts the climb intent of a keyboard-controlled run.
func (m *Machine) PressUp() {
	if m.phase == PhasePlaying && m.mode == ControlImpulse {
		m.plane.Up = true
	}
}

// ReleaseUp ends the climb intent.
func (m *Machine) ReleaseUp() {
	m.plane.Up = false
}

// PressDown starts the dive intent of a keyboard-controlled run.
func (m *Machine) PressDown() {
	if m.phase == PhasePlaying && m.mode == ControlImpulse {
		m.plane.Down = true
	}
}

// ReleaseDown ends the dive intent.
func (m *Machine) ReleaseDown() {
	m.plane.Down = false
}

// PointerMove records the pointer's vertical field position. It steers the
// plane on the next tick of a mouse-controlled run.
func (m *Machine) PointerMove(y int) {
	m.pointerY = y
}

// PointerClick commits the control option under the pointer. Clicks are only
// interpreted during control selection.
func (m *Machine) PointerClick(x, y int) {
	if m.phase != PhaseControlSelect {
		return
	}
	switch {
	case ImpulseOptionRegion.ContainsClosed(x, y):
		m.startRun(ControlImpulse)
	case TrackingOptionRegion.ContainsClosed(x, y):
		m.startRun(ControlTracking)
	}
}

// ToggleAudio switches the background track on or off in any phase. It does
// nothing when no track is available.
func (m *Machine) ToggleAudio() {
	if m.track == nil {
		return
	}
	if m.audioOn {
		m.track.Stop()
		m.audioOn = false
		return
	}
	m.track.Start()
	m.audioOn = true
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Run returns the current run state.
func (m *Machine) Run() RunState {
	return m.run
}

// Plane returns the current plane state.
func (m *Machine) Plane() Plane {
	return m.plane
}

// Obstacles returns a copy of the live obstacles.
func (m *Machine) Obstacles() []Obstacle {
	return m.pipeline.Obstacles()
}

// AudioOn reports whether the background track is playing.
func (m *Machine) AudioOn() bool {
	return m.audioOn
}
