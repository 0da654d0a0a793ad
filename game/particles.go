package game

import (
	"image/color"

	"liquiddig/terrain"
)

// Rushing flags which liquids are moving fast through open space
type Rushing struct {
	Water bool
	Toxic bool
}

// FrameReport summarises what the classifier did in one frame
type FrameReport struct {
	// Contaminated is set when any water particle turned toxic
	Contaminated bool

	Rushing Rushing

	// Collected is the number of water particles that left the level
	Collected int

	// Drained is the number of toxic particles that left the level
	Drained int

	// Absorbed is the number of toxic particles taken in by stations
	Absorbed int

	// Released is the number of clean water particles stations spawned
	Released int
}

// ParticleManager classifies liquid particles once per simulation step.
// Particle tags live in the engine's user data buffer as Liquid values.
type ParticleManager struct {
	world    PhysicsWorld
	grid     *terrain.Grid
	geometry terrain.Geometry
	config   Config
	stations []*Station
}

// NewParticleManager creates a classifier for world
func NewParticleManager(world PhysicsWorld, config Config) *ParticleManager {
	return &ParticleManager{
		world:    world,
		geometry: config.Geometry(),
		config:   config,
	}
}

// Reset points the classifier at a freshly loaded level
func (m *ParticleManager) Reset(grid *terrain.Grid, stations []*Station) {
	m.grid = grid
	m.stations = stations
}

// Update runs every classification pass in order and reports the results.
// Particles already flagged for destruction are ignored by every pass.
func (m *ParticleManager) Update() FrameReport {
	var report FrameReport

	report.Absorbed = m.absorb()
	report.Released = m.tickStations()
	report.Contaminated = m.contaminate()
	report.Collected, report.Drained = m.collectOffScreen()
	report.Rushing = m.rushing()

	return report
}

// absorb lets station intakes take in toxic particles. Water touching an
// intake is left alone.
func (m *ParticleManager) absorb() int {
	tags := m.world.ParticleUserData()
	absorbed := 0
	for _, c := range m.world.BodyContacts() {
		if c.Fixture == nil || c.Fixture.Kind() != KindStationIntake {
			continue
		}
		st, ok := c.Fixture.UserData().(*Station)
		if !ok {
			continue
		}
		if c.Index >= len(tags) || m.world.ParticleDestroyed(c.Index) {
			continue
		}
		if Liquid(tags[c.Index]) != Toxic {
			continue
		}
		if st.Absorb() {
			m.world.DestroyParticle(c.Index)
			absorbed++
		}
	}
	return absorbed
}

// tickStations advances station timers and spawns clean water for every
// station that finished processing.
func (m *ParticleManager) tickStations() int {
	released := 0
	stride := 1.5 * m.config.ParticleRadius
	for _, st := range m.stations {
		if !st.Tick(m.config.StationReleaseDelay) {
			continue
		}
		first, count := m.world.CreateParticleGroup(st.releaseGroup(stride))
		if m.grid != nil {
			count -= carve(m.world, m.grid, m.geometry, first, count)
		}
		released += count
	}
	return released
}

// contaminate turns water touching toxic liquid into toxic liquid. Contacts
// are checked in both orderings; toxic never turns back.
func (m *ParticleManager) contaminate() bool {
	tags := m.world.ParticleUserData()
	colors := m.world.ParticleColors()
	happened := false

	for _, c := range m.world.ParticleContacts() {
		if c.A >= len(tags) || c.B >= len(tags) {
			continue
		}
		if m.world.ParticleDestroyed(c.A) || m.world.ParticleDestroyed(c.B) {
			continue
		}

		a, b := Liquid(tags[c.A]), Liquid(tags[c.B])
		switch {
		case a == Water && b == Toxic:
			setLiquid(tags, colors, c.A, Toxic)
			happened = true
		case a == Toxic && b == Water:
			setLiquid(tags, colors, c.B, Toxic)
			happened = true
		}
	}
	return happened
}

// setLiquid retags a particle and updates its display color
func setLiquid(tags []int, colors []color.RGBA, i int, l Liquid) {
	tags[i] = int(l)
	if i < len(colors) {
		colors[i] = l.Color()
	}
}

// collectOffScreen destroys particles below the collection depth and
// returns how many were water and how many were toxic.
func (m *ParticleManager) collectOffScreen() (water, toxic int) {
	positions := m.world.ParticlePositions()
	tags := m.world.ParticleUserData()

	for i := len(positions) - 1; i >= 0; i-- {
		if m.world.ParticleDestroyed(i) || positions[i].Y <= m.config.CollectionDepth {
			continue
		}
		if i < len(tags) {
			switch Liquid(tags[i]) {
			case Water:
				water++
			case Toxic:
				toxic++
			}
		}
		m.world.DestroyParticle(i)
	}
	return water, toxic
}

// rushing reports which liquids have a fast particle with no terrain in
// its neighbourhood. Stops as soon as both are found.
func (m *ParticleManager) rushing() Rushing {
	var r Rushing
	if m.grid == nil {
		return r
	}

	positions := m.world.ParticlePositions()
	velocities := m.world.ParticleVelocities()
	tags := m.world.ParticleUserData()
	thresholdSq := m.config.RushingSpeed * m.config.RushingSpeed

	for i := range positions {
		if r.Water && r.Toxic {
			break
		}
		if i >= len(velocities) || i >= len(tags) || m.world.ParticleDestroyed(i) {
			continue
		}

		liquid := Liquid(tags[i])
		if (liquid == Water && r.Water) || (liquid == Toxic && r.Toxic) || liquid == LiquidNone {
			continue
		}
		if velocities[i].LenSq() <= thresholdSq {
			continue
		}

		col, row := m.geometry.WorldToCell(positions[i].X, positions[i].Y)
		if m.grid.SolidNear(col, row, m.config.RushingCheckRadius) {
			continue
		}

		switch liquid {
		case Water:
			r.Water = true
		case Toxic:
			r.Toxic = true
		}
	}
	return r
}
