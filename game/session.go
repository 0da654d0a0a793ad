package game

import "math"

// Session holds the counters for the level being played
type Session struct {
	LevelIndex int

	// InitialParticles is the water count after the level was built
	InitialParticles int

	// Collected is the water that left through the bottom
	Collected int

	Drained  int
	Absorbed int
	Released int

	// LevelWon latches once the goal is reached
	LevelWon bool

	// Frames simulated on this level
	Frames int
}

// record adds one frame's classifier results to the counters
func (s *Session) record(r FrameReport) {
	s.Collected += r.Collected
	s.Drained += r.Drained
	s.Absorbed += r.Absorbed
	s.Released += r.Released
	s.Frames++
}

// reached reports whether the goal is met. Levels that start without water
// can never be won.
func (s *Session) reached(goal int) bool {
	return s.InitialParticles > 0 && s.Collected >= goal
}

// goalAmount is the number of water particles that must be collected
func goalAmount(initial int, fraction float64) int {
	return int(math.Floor(float64(initial) * fraction))
}

// Feedback carries the cues the host turns into sound or HUD effects
type Feedback struct {
	// Sizzling stays on for a few frames after the last contamination
	Sizzling bool

	Rushing Rushing

	sizzleFrames int
}

func (f *Feedback) update(r FrameReport, hold int) {
	if r.Contaminated {
		f.Sizzling = true
		f.sizzleFrames = hold
	} else {
		f.sizzleFrames--
		if f.sizzleFrames <= 0 {
			f.sizzleFrames = 0
			f.Sizzling = false
		}
	}
	f.Rushing = r.Rushing
}
