package game

import (
	"math"

	"liquiddig/level"
	"liquiddig/physics"
)

// Station is the mutable state of a treatment station. It absorbs toxic
// particles until full, processes for a fixed delay, then releases the same
// volume as clean water below its outlet.
type Station struct {
	// Centre and full size in world units
	X, Y          float64
	Width, Height float64

	Capacity int

	// QueueCount is the number of particles absorbed since the last release
	QueueCount int

	Processing bool

	// ReleaseTimer counts down frames while processing
	ReleaseTimer int
}

// NewStation creates station state from level data. Non-positive capacities
// become 1.
func NewStation(def level.Station) *Station {
	return &Station{
		X:        def.X,
		Y:        def.Y,
		Width:    def.Width,
		Height:   def.Height,
		Capacity: max(def.Capacity, 1),
	}
}

// CanAbsorb reports whether the intake accepts a particle this frame
func (s *Station) CanAbsorb() bool {
	return !s.Processing && s.QueueCount < s.Capacity
}

// Absorb queues one particle. Returns false when the intake is closed.
func (s *Station) Absorb() bool {
	if !s.CanAbsorb() {
		return false
	}
	s.QueueCount++
	return true
}

// Tick advances the station by one frame and reports whether clean water
// should be released this frame.
func (s *Station) Tick(delay int) bool {
	if !s.Processing && s.QueueCount >= s.Capacity {
		s.Processing = true
		s.ReleaseTimer = delay
	}
	if !s.Processing {
		return false
	}

	s.ReleaseTimer--
	if s.ReleaseTimer > 0 {
		return false
	}

	s.QueueCount = 0
	s.Processing = false
	s.ReleaseTimer = 0
	return true
}

// Progress returns the fill level in [0,1] for display
func (s *Station) Progress() float64 {
	if s.Processing {
		return 1
	}
	return float64(s.QueueCount) / float64(s.Capacity)
}

// releaseGroup describes the clean water spawned under the outlet: a square
// lattice just large enough for Capacity particles.
func (s *Station) releaseGroup(stride float64) physics.ParticleGroupDef {
	side := math.Ceil(math.Sqrt(float64(s.Capacity)))
	half := side * stride / 2
	return physics.ParticleGroupDef{
		Position: physics.Vec2{
			X: s.X,
			Y: s.Y + s.Height/2 + half + stride/2,
		},
		HalfWidth:  half,
		HalfHeight: half,
		Color:      Water.Color(),
		UserData:   int(Water),
		MaxCount:   s.Capacity,
	}
}
