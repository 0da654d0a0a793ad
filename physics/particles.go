package physics

import "image/color"

// ParticleGroupDef describes a box of particles laid out on a lattice
type ParticleGroupDef struct {
	// Position is the centre of the box
	Position Vec2

	HalfWidth  float64
	HalfHeight float64

	// Velocity is given to every particle in the group
	Velocity Vec2

	Color    color.RGBA
	UserData int

	// MaxCount caps the number of particles created; zero means no cap
	MaxCount int
}

// ParticleSystem owns the per-index particle buffers.
//
// Destroying a particle only flags it; the buffers are compacted at the start
// of the next Step, preserving the order of the survivors. Indices at the
// tail are then free and get reused by the next group created.
type ParticleSystem struct {
	radius float64

	positions  []Vec2
	velocities []Vec2
	colors     []color.RGBA
	userData   []int
	zombie     []bool
	zombies    int

	contacts     []ParticleContact
	bodyContacts []BodyContact
}

func newParticleSystem(radius float64) *ParticleSystem {
	return &ParticleSystem{
		radius:       radius,
		positions:    make([]Vec2, 0, 1024),
		velocities:   make([]Vec2, 0, 1024),
		colors:       make([]color.RGBA, 0, 1024),
		userData:     make([]int, 0, 1024),
		zombie:       make([]bool, 0, 1024),
		contacts:     make([]ParticleContact, 0, 4096),
		bodyContacts: make([]BodyContact, 0, 256),
	}
}

// Radius returns the particle radius
func (ps *ParticleSystem) Radius() float64 {
	return ps.radius
}

// Stride returns the lattice spacing used when creating groups
func (ps *ParticleSystem) Stride() float64 {
	return 0.75 * 2 * ps.radius
}

// ParticleCount returns the buffer length, including particles flagged for
// destruction that have not been compacted yet
func (ps *ParticleSystem) ParticleCount() int {
	return len(ps.positions)
}

// LiveParticleCount returns the number of particles not flagged for destruction
func (ps *ParticleSystem) LiveParticleCount() int {
	return len(ps.positions) - ps.zombies
}

// ParticlePositions returns the position buffer
func (ps *ParticleSystem) ParticlePositions() []Vec2 {
	return ps.positions
}

// ParticleVelocities returns the velocity buffer
func (ps *ParticleSystem) ParticleVelocities() []Vec2 {
	return ps.velocities
}

// ParticleColors returns the color buffer
func (ps *ParticleSystem) ParticleColors() []color.RGBA {
	return ps.colors
}

// ParticleUserData returns the user data buffer
func (ps *ParticleSystem) ParticleUserData() []int {
	return ps.userData
}

// ParticleContacts returns particle pairs found by the last Step
func (ps *ParticleSystem) ParticleContacts() []ParticleContact {
	return ps.contacts
}

// BodyContacts returns particle-fixture overlaps found by the last Step
func (ps *ParticleSystem) BodyContacts() []BodyContact {
	return ps.bodyContacts
}

// CreateParticleGroup fills the box with particles and returns the index of
// the first one and how many were created. Indices are contiguous.
func (ps *ParticleSystem) CreateParticleGroup(def ParticleGroupDef) (int, int) {
	first := len(ps.positions)
	stride := ps.Stride()
	if stride <= 0 || def.HalfWidth <= 0 || def.HalfHeight <= 0 {
		return first, 0
	}

	cols := int(2*def.HalfWidth/stride + 1e-9)
	rows := int(2*def.HalfHeight/stride + 1e-9)
	cols = max(cols, 1)
	rows = max(rows, 1)

	left := def.Position.X - float64(cols)*stride/2
	top := def.Position.Y - float64(rows)*stride/2

	count := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if def.MaxCount > 0 && count >= def.MaxCount {
				return first, count
			}
			p := Vec2{
				X: left + (float64(c)+0.5)*stride,
				Y: top + (float64(r)+0.5)*stride,
			}
			ps.positions = append(ps.positions, p)
			ps.velocities = append(ps.velocities, def.Velocity)
			ps.colors = append(ps.colors, def.Color)
			ps.userData = append(ps.userData, def.UserData)
			ps.zombie = append(ps.zombie, false)
			count++
		}
	}
	return first, count
}

// DestroyParticle flags a particle for removal on the next Step.
// Out-of-range indices and repeated calls are ignored.
func (ps *ParticleSystem) DestroyParticle(i int) {
	if i < 0 || i >= len(ps.zombie) || ps.zombie[i] {
		return
	}
	ps.zombie[i] = true
	ps.zombies++
}

// ParticleDestroyed reports whether a particle is flagged for removal
func (ps *ParticleSystem) ParticleDestroyed(i int) bool {
	if i < 0 || i >= len(ps.zombie) {
		return true
	}
	return ps.zombie[i]
}

// DestroyAllParticles empties the system immediately
func (ps *ParticleSystem) DestroyAllParticles() {
	ps.positions = ps.positions[:0]
	ps.velocities = ps.velocities[:0]
	ps.colors = ps.colors[:0]
	ps.userData = ps.userData[:0]
	ps.zombie = ps.zombie[:0]
	ps.zombies = 0
	ps.contacts = ps.contacts[:0]
	ps.bodyContacts = ps.bodyContacts[:0]
}

// compact removes flagged particles, keeping survivors in order. Contact
// lists refer to old indices and are dropped.
func (ps *ParticleSystem) compact() {
	if ps.zombies == 0 {
		return
	}

	w := 0
	for i := range ps.positions {
		if ps.zombie[i] {
			continue
		}
		ps.positions[w] = ps.positions[i]
		ps.velocities[w] = ps.velocities[i]
		ps.colors[w] = ps.colors[i]
		ps.userData[w] = ps.userData[i]
		ps.zombie[w] = false
		w++
	}

	ps.positions = ps.positions[:w]
	ps.velocities = ps.velocities[:w]
	ps.colors = ps.colors[:w]
	ps.userData = ps.userData[:w]
	ps.zombie = ps.zombie[:w]
	ps.zombies = 0
	ps.contacts = ps.contacts[:0]
	ps.bodyContacts = ps.bodyContacts[:0]
}
