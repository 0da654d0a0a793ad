package physics

// WorldDef configures a World
type WorldDef struct {
	Gravity Vec2

	// ParticleRadius is the radius shared by every particle
	ParticleRadius float64

	// Width and Height bound the broadphase grid; particles may leave it
	Width  float64
	Height float64

	// Damping scales velocities each step, 1 means none
	Damping float64
}

// DefaultWorldDef returns the settings the liquid levels are tuned for
func DefaultWorldDef() WorldDef {
	return WorldDef{
		Gravity:        Vec2{0, 10},
		ParticleRadius: 0.05,
		Width:          10,
		Height:         6,
		Damping:        0.995,
	}
}

// World owns static bodies and the particle system
type World struct {
	*ParticleSystem

	def    WorldDef
	bodies []*Body
	grid   *spatialGrid

	// Cached solid/sensor fixture lists, rebuilt when bodies change
	solids        []*Fixture
	sensors       []*Fixture
	fixturesDirty bool
}

// NewWorld creates an empty world
func NewWorld(def WorldDef) *World {
	if def.Damping <= 0 {
		def.Damping = 1
	}
	return &World{
		ParticleSystem: newParticleSystem(def.ParticleRadius),
		def:            def,
		bodies:         make([]*Body, 0, 256),
		grid:           newSpatialGrid(def.Width, def.Height, 2*def.ParticleRadius),
	}
}

// Gravity returns the world gravity
func (w *World) Gravity() Vec2 {
	return w.def.Gravity
}

// CreateBody adds a static body
func (w *World) CreateBody(def BodyDef) *Body {
	b := &Body{
		position: def.Position,
		kind:     def.Kind,
		userData: def.UserData,
		world:    w,
	}
	w.bodies = append(w.bodies, b)
	w.fixturesDirty = true
	return b
}

// DestroyBody removes a body and its fixtures. Unknown bodies are ignored.
func (w *World) DestroyBody(b *Body) {
	if b == nil || b.world != w {
		return
	}
	for i, other := range w.bodies {
		if other == b {
			copy(w.bodies[i:], w.bodies[i+1:])
			w.bodies[len(w.bodies)-1] = nil
			w.bodies = w.bodies[:len(w.bodies)-1]
			break
		}
	}
	b.world = nil
	w.fixturesDirty = true
	w.dropBodyContacts(b)
}

// ClearBodies removes every body
func (w *World) ClearBodies() {
	for _, b := range w.bodies {
		b.world = nil
	}
	for i := range w.bodies {
		w.bodies[i] = nil
	}
	w.bodies = w.bodies[:0]
	w.fixturesDirty = true
	w.bodyContacts = w.bodyContacts[:0]
}

// Bodies returns the live bodies in creation order
func (w *World) Bodies() []*Body {
	return w.bodies
}

// dropBodyContacts forgets contacts with fixtures of a destroyed body
func (w *World) dropBodyContacts(b *Body) {
	kept := w.bodyContacts[:0]
	for _, c := range w.bodyContacts {
		if c.Fixture.body != b {
			kept = append(kept, c)
		}
	}
	w.bodyContacts = kept
}

func (w *World) refreshFixtures() {
	if !w.fixturesDirty {
		return
	}
	w.solids = w.solids[:0]
	w.sensors = w.sensors[:0]
	for _, b := range w.bodies {
		for _, f := range b.fixtures {
			if f.sensor {
				w.sensors = append(w.sensors, f)
			} else {
				w.solids = append(w.solids, f)
			}
		}
	}
	w.fixturesDirty = false
}

// Step advances the simulation by dt.
//
// Particles flagged for destruction are removed first. Velocities then get
// gravity, pair pressure is solved velocityIterations times, positions are
// integrated and overlaps resolved positionIterations times. Contact lists
// are rebuilt from the final positions.
func (w *World) Step(dt float64, velocityIterations, positionIterations int) {
	w.compact()
	w.refreshFixtures()

	n := len(w.positions)
	if n == 0 {
		w.contacts = w.contacts[:0]
		w.bodyContacts = w.bodyContacts[:0]
		return
	}

	g := w.def.Gravity.Scale(dt)
	for i := range w.velocities {
		w.velocities[i] = w.velocities[i].Add(g).Scale(w.def.Damping)
	}

	w.findContacts()
	velocityIterations = max(velocityIterations, 1)
	for it := 0; it < velocityIterations; it++ {
		for _, c := range w.contacts {
			solvePairVelocity(w.positions[c.A], w.positions[c.B], &w.velocities[c.A], &w.velocities[c.B])
		}
	}

	for i := range w.positions {
		w.positions[i] = w.positions[i].Add(w.velocities[i].Scale(dt))
	}

	diameter := 2 * w.radius
	positionIterations = max(positionIterations, 1)
	for it := 0; it < positionIterations; it++ {
		for _, c := range w.contacts {
			solvePair(&w.positions[c.A], &w.velocities[c.A], &w.positions[c.B], &w.velocities[c.B], diameter, 0.5)
		}
		for i := range w.positions {
			for _, f := range w.solids {
				lo, hi := f.AABB()
				pushOut(&w.positions[i], &w.velocities[i], w.radius, lo, hi)
			}
		}
	}

	w.findContacts()
	w.findBodyContacts()
}

// solvePairVelocity cancels the closing velocity of a contact pair
func solvePairVelocity(pa, pb Vec2, va, vb *Vec2) {
	n := pb.Sub(pa)
	d := n.Len()
	if d < 1e-12 {
		return
	}
	n = n.Scale(1 / d)
	closing := vb.Sub(*va).Dot(n)
	if closing >= 0 {
		return
	}
	half := n.Scale(closing * 0.5)
	*va = va.Add(half)
	*vb = vb.Sub(half)
}

// findContacts rebuilds the particle pair list using the broadphase grid
func (w *World) findContacts() {
	w.contacts = w.contacts[:0]
	w.grid.reset()
	for i, p := range w.positions {
		w.grid.insert(i, p)
	}

	diameterSq := 4 * w.radius * w.radius
	for i, p := range w.positions {
		w.grid.neighbours(p, func(j int) {
			if j <= i {
				return
			}
			if w.positions[j].Sub(p).LenSq() < diameterSq {
				w.contacts = append(w.contacts, ParticleContact{A: i, B: j})
			}
		})
	}
}

// contactSlop widens body contact detection so particles resting exactly on
// a surface after push-out still report the contact
const contactSlop = 0.005

// findBodyContacts lists every particle touching a fixture, sensors included
func (w *World) findBodyContacts() {
	w.bodyContacts = w.bodyContacts[:0]
	reach := w.radius + contactSlop
	for i, p := range w.positions {
		for _, f := range w.sensors {
			if f.Overlaps(p, reach) {
				w.bodyContacts = append(w.bodyContacts, BodyContact{Index: i, Fixture: f})
			}
		}
		for _, f := range w.solids {
			if f.Overlaps(p, reach) {
				w.bodyContacts = append(w.bodyContacts, BodyContact{Index: i, Fixture: f})
			}
		}
	}
}
