package game

import (
	"math"
	"math/rand"
)

// Decorative motion. None of it affects the simulation.
const (
	cloudCount    = 5
	groundPeriod  = 30
	crashFlash    = 200
	flashFade     = 10
	menuBobStep   = 0.04
	menuBobHeight = 20
)

type cloud struct {
	x     float64
	y     int
	speed float64
}

// Scenery holds the background animation state: clouds, parallax layers,
// ground stripes, the idle bob of the title plane and the crash flash. The
// platform advances it once per tick from the post-tick snapshot.
type Scenery struct {
	rng            *rand.Rand
	clouds         []cloud
	groundOffset   int
	mountainOffset float64
	cityOffset     float64
	bob            float64
	flash          int
	lastPhase      Phase
}

// NewScenery scatters the clouds using the given seed.
func NewScenery(seed int64) *Scenery {
	s := &Scenery{
		rng:    rand.New(rand.NewSource(seed)),
		clouds: make([]cloud, cloudCount),
	}
	for i := range s.clouds {
		s.clouds[i] = cloud{
			x:     float64(s.rng.Intn(FieldWidth + 100)),
			y:     s.rng.Intn(200) + 20,
			speed: 0.3 + s.rng.Float64()*0.5,
		}
	}
	return s
}

// Advance moves the scenery one tick forward.
func (s *Scenery) Advance(snap Snapshot) {
	for i := range s.clouds {
		c := &s.clouds[i]
		c.x -= c.speed
		if c.x < -100 {
			c.x = float64(FieldWidth + s.rng.Intn(50))
			c.y = s.rng.Intn(180) + 20
		}
	}

	switch snap.Phase {
	case PhaseMenu, PhaseControlSelect:
		s.bob += menuBobStep
		s.scroll(2, 0.3, 0.8)
	case PhasePlaying:
		speed := float64(snap.Run.Speed)
		s.scroll(snap.Run.Speed, speed*0.2, speed*0.5)
	case PhaseGameOver:
		if s.lastPhase != PhaseGameOver {
			s.flash = crashFlash
		} else if s.flash > 0 {
			s.flash -= flashFade
		}
	}
	s.lastPhase = snap.Phase
}

func (s *Scenery) scroll(ground int, mountain, city float64) {
	s.groundOffset = (s.groundOffset + ground) % groundPeriod
	s.mountainOffset = math.Mod(s.mountainOffset+mountain, FieldWidth)
	s.cityOffset = math.Mod(s.cityOffset+city, FieldWidth)
}

// IdleY returns the bobbing altitude of the plane on the title screens.
func (s *Scenery) IdleY() float64 {
	return PlaneStartY + math.Sin(s.bob)*menuBobHeight
}

// Flash returns the remaining crash flash intensity (0 when none).
func (s *Scenery) Flash() int {
	if s.flash < 0 {
		return 0
	}
	return s.flash
}
