package game

import (
	"strings"

	"liquiddig/level"
	"liquiddig/physics"
)

// scriptedWorld is a real physics world whose Step and contact lists are
// driven by the test. With simulate unset nothing moves and destroyed
// particles stay flagged in place.
type scriptedWorld struct {
	*physics.World

	simulate bool
	steps    int
	onStep   func(w *scriptedWorld)

	particleContacts []physics.ParticleContact
	bodyContacts     []physics.BodyContact
}

func newScriptedWorld(cfg Config) *scriptedWorld {
	return &scriptedWorld{World: physics.NewWorld(cfg.WorldDef())}
}

func (w *scriptedWorld) Step(dt float64, velocityIterations, positionIterations int) {
	w.steps++
	if w.simulate {
		w.World.Step(dt, velocityIterations, positionIterations)
	}
	if w.onStep != nil {
		w.onStep(w)
	}
}

func (w *scriptedWorld) ParticleContacts() []physics.ParticleContact {
	return w.particleContacts
}

func (w *scriptedWorld) BodyContacts() []physics.BodyContact {
	return w.bodyContacts
}

// bodiesOfKind counts live bodies with the given tag
func bodiesOfKind(world PhysicsWorld, kind physics.Kind) int {
	n := 0
	for _, b := range world.Bodies() {
		if b.Kind() == kind {
			n++
		}
	}
	return n
}

// openLayout is a terrain layout with no solid cells
func openLayout() []string {
	return repeatRows(strings.Repeat(".", 20), 12)
}

// solidLayout is a terrain layout where every cell is solid
func solidLayout() []string {
	return repeatRows(strings.Repeat("x", 20), 12)
}

func repeatRows(row string, n int) []string {
	rows := make([]string, n)
	for i := range rows {
		rows[i] = row
	}
	return rows
}

// hundredWater is a box that holds a 10x10 lattice at the default radius
func hundredWater(x, y float64) level.Shape {
	return level.Shape{
		Type:             level.ShapeBox,
		X:                x,
		Y:                y,
		HalfWidth:        0.375,
		HalfHeight:       0.375,
		CanGoThroughDirt: true,
	}
}

// recordingListener counts level flow notifications
type recordingListener struct {
	loaded  []int
	won     []int
	final   []bool
	paused  []PauseMode
	resumed []PauseMode
}

func (l *recordingListener) LevelLoaded(index int, _ level.Level) {
	l.loaded = append(l.loaded, index)
}

func (l *recordingListener) LevelWon(index int, final bool) {
	l.won = append(l.won, index)
	l.final = append(l.final, final)
}

func (l *recordingListener) Paused(mode PauseMode) {
	l.paused = append(l.paused, mode)
}

func (l *recordingListener) Resumed(mode PauseMode) {
	l.resumed = append(l.resumed, mode)
}

// sinkBelow moves n live particles starting at index from below the
// collection depth and returns the next index to use
func sinkBelow(w PhysicsWorld, from, n int) int {
	positions := w.ParticlePositions()
	for i := from; i < from+n && i < len(positions); i++ {
		positions[i].Y = 7
	}
	return from + n
}
