package game

import (
	"testing"

	"liquiddig/level"
	"liquiddig/physics"
	"liquiddig/terrain"
)

// spawnOne creates a single tagged particle at (x, y) and returns its index
func spawnOne(w PhysicsWorld, x, y float64, l Liquid) int {
	first, _ := w.CreateParticleGroup(physics.ParticleGroupDef{
		Position:   physics.Vec2{X: x, Y: y},
		HalfWidth:  0.0375,
		HalfHeight: 0.0375,
		Color:      l.Color(),
		UserData:   int(l),
	})
	return first
}

func newTestManager(cfg Config, layout []string) (*ParticleManager, *scriptedWorld) {
	world := newScriptedWorld(cfg)
	grid := terrain.NewGrid(cfg.GridWidth(), cfg.GridHeight())
	grid.Initialize(layout)
	m := NewParticleManager(world, cfg)
	m.Reset(grid, nil)
	return m, world
}

func TestContaminationIsOneWayAndTransitive(t *testing.T) {
	m, world := newTestManager(DefaultConfig(), openLayout())

	w0 := spawnOne(world, 1, 1, Water)
	t1 := spawnOne(world, 2, 1, Toxic)
	w2 := spawnOne(world, 3, 1, Water)
	t3 := spawnOne(world, 4, 1, Toxic)
	w4 := spawnOne(world, 5, 1, Water)

	world.particleContacts = []physics.ParticleContact{
		{A: t1, B: w0}, // toxic first
		{A: w2, B: w0}, // w0 turned toxic above, so w2 follows
		{A: t1, B: t3}, // toxic pair stays toxic
	}

	report := m.Update()
	if !report.Contaminated {
		t.Error("expected contamination to be reported")
	}

	tags := world.ParticleUserData()
	want := map[int]Liquid{w0: Toxic, t1: Toxic, w2: Toxic, t3: Toxic, w4: Water}
	for i, l := range want {
		if Liquid(tags[i]) != l {
			t.Errorf("particle %d is %v, want %v", i, Liquid(tags[i]), l)
		}
		if world.ParticleColors()[i] != l.Color() {
			t.Errorf("particle %d color %v, want %v", i, world.ParticleColors()[i], l.Color())
		}
	}

	world.particleContacts = []physics.ParticleContact{{A: w4, B: w4}}
	if m.Update().Contaminated {
		t.Error("water touching water must not contaminate")
	}
}

func TestContaminationSkipsDestroyedParticles(t *testing.T) {
	m, world := newTestManager(DefaultConfig(), openLayout())
	w := spawnOne(world, 1, 1, Water)
	tox := spawnOne(world, 2, 1, Toxic)
	world.DestroyParticle(tox)

	world.particleContacts = []physics.ParticleContact{{A: w, B: tox}}
	if m.Update().Contaminated || Liquid(world.ParticleUserData()[w]) != Water {
		t.Error("a particle pending destruction must not contaminate")
	}
}

func TestCollectionCountsOnlyWater(t *testing.T) {
	m, world := newTestManager(DefaultConfig(), openLayout())

	const n, mTox = 5, 3
	for i := 0; i < n; i++ {
		spawnOne(world, 8+0.1*float64(i), 6.5, Water)
	}
	for i := 0; i < mTox; i++ {
		spawnOne(world, 8+0.1*float64(i), 6.8, Toxic)
	}
	stay := spawnOne(world, 5, 3, Water)

	gone := spawnOne(world, 8, 7, Water)
	world.DestroyParticle(gone)

	report := m.Update()
	if report.Collected != n {
		t.Errorf("Collected = %d, want %d", report.Collected, n)
	}
	if report.Drained != mTox {
		t.Errorf("Drained = %d, want %d", report.Drained, mTox)
	}
	if world.ParticleDestroyed(stay) {
		t.Error("particle above the collection depth was destroyed")
	}
	if world.LiveParticleCount() != 1 {
		t.Errorf("live particles = %d, want 1", world.LiveParticleCount())
	}

	// Flagged particles are not collected twice
	if again := m.Update(); again.Collected != 0 || again.Drained != 0 {
		t.Errorf("second update collected %d/%d", again.Collected, again.Drained)
	}
}

func TestStationCapacityAndRelease(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StationReleaseDelay = 3
	m, world := newTestManager(cfg, openLayout())

	b := NewLevelBuilder(world, m.grid, cfg)
	stations := b.CreateTreatmentStations([]level.Station{{X: 5, Y: 2, Width: 1, Height: 0.2, Capacity: 3}})
	m.Reset(m.grid, stations)
	st := stations[0]
	intake := world.Bodies()[0].Fixtures()[1]

	toxic := make([]int, 5)
	for i := range toxic {
		toxic[i] = spawnOne(world, 4.6+0.1*float64(i), 2, Toxic)
	}
	water := spawnOne(world, 5.2, 2, Water)

	touching := func(indices ...int) []physics.BodyContact {
		contacts := make([]physics.BodyContact, 0, len(indices))
		for _, i := range indices {
			contacts = append(contacts, physics.BodyContact{Index: i, Fixture: intake})
		}
		return contacts
	}

	world.bodyContacts = touching(append([]int{water}, toxic...)...)
	report := m.Update()

	if report.Absorbed != 3 || st.QueueCount != 3 {
		t.Fatalf("absorbed %d, queue %d, want 3 and 3", report.Absorbed, st.QueueCount)
	}
	if world.ParticleDestroyed(water) {
		t.Error("water passing the intake must not be absorbed")
	}
	if world.ParticleDestroyed(toxic[3]) || world.ParticleDestroyed(toxic[4]) {
		t.Error("particles beyond capacity were absorbed")
	}
	if !st.Processing {
		t.Fatal("a full station should start processing the same frame")
	}

	// Intake stays closed while processing
	world.bodyContacts = touching(toxic[3], toxic[4])
	report = m.Update()
	if report.Absorbed != 0 || st.QueueCount > st.Capacity {
		t.Errorf("absorbed %d while processing, queue %d", report.Absorbed, st.QueueCount)
	}

	before := world.ParticleCount()
	report = m.Update()
	if report.Released != 3 {
		t.Fatalf("released %d particles on the delay frame, want 3", report.Released)
	}
	if st.Processing || st.QueueCount != 0 {
		t.Errorf("station after release: processing %v, queue %d", st.Processing, st.QueueCount)
	}
	for i := before; i < world.ParticleCount(); i++ {
		if Liquid(world.ParticleUserData()[i]) != Water {
			t.Errorf("released particle %d is not water", i)
		}
		if world.ParticlePositions()[i].Y <= st.Y+st.Height/2 {
			t.Errorf("released particle %d at %+v is not below the outlet", i, world.ParticlePositions()[i])
		}
	}

	// Intake reopens after the release
	report = m.Update()
	if report.Absorbed != 2 || st.QueueCount != 2 {
		t.Errorf("after release absorbed %d, queue %d, want 2 and 2", report.Absorbed, st.QueueCount)
	}
}

func TestStationReleaseIsCarved(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StationReleaseDelay = 1
	m, world := newTestManager(cfg, solidLayout())

	st := NewStation(level.Station{X: 5, Y: 2, Width: 1, Height: 0.2, Capacity: 4})
	st.QueueCount = 4
	m.Reset(m.grid, []*Station{st})

	report := m.Update()
	if report.Released != 0 {
		t.Errorf("released %d particles into solid ground, want 0", report.Released)
	}
	if world.LiveParticleCount() != 0 {
		t.Errorf("live particles = %d, want 0", world.LiveParticleCount())
	}
}

func TestRushingDetection(t *testing.T) {
	layout := repeatRows("xxxxxxxxxx..........", 12)

	cases := []struct {
		name      string
		x, y      float64
		vx        float64
		liquid    Liquid
		wantWater bool
		wantToxic bool
	}{
		{"fast water in the open", 8, 3, 3, Water, true, false},
		{"fast toxic in the open", 8, 3, 3, Toxic, false, true},
		{"slow water in the open", 8, 3, 1, Water, false, false},
		{"fast water against dirt", 5.1, 3, 3, Water, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, world := newTestManager(DefaultConfig(), layout)
			i := spawnOne(world, tc.x, tc.y, tc.liquid)
			world.ParticleVelocities()[i] = physics.Vec2{X: tc.vx}

			r := m.Update().Rushing
			if r.Water != tc.wantWater || r.Toxic != tc.wantToxic {
				t.Errorf("rushing = %+v, want water %v toxic %v", r, tc.wantWater, tc.wantToxic)
			}
		})
	}
}

func TestTagsFollowParticlesAcrossIndexReuse(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gravity = physics.Vec2{}
	m, world := newTestManager(cfg, openLayout())
	world.simulate = true
	world.particleContacts = nil

	tox := spawnOne(world, 1, 3, Toxic)
	water := spawnOne(world, 8, 3, Water)
	if tox != 0 || water != 1 {
		t.Fatalf("setup indices %d, %d", tox, water)
	}

	// Toxic particle leaves, then the step compacts the buffers
	world.ParticlePositions()[tox].Y = 7
	if r := m.Update(); r.Drained != 1 {
		t.Fatalf("drained %d, want 1", r.Drained)
	}
	world.Step(cfg.TimeStep, 1, 1)

	if world.ParticleCount() != 1 || Liquid(world.ParticleUserData()[0]) != Water {
		t.Fatalf("after compaction: count %d, slot 0 is %v", world.ParticleCount(), Liquid(world.ParticleUserData()[0]))
	}

	// New toxic group reuses the freed tail slot
	reused := spawnOne(world, 4, 3, Toxic)
	if reused != 1 || Liquid(world.ParticleUserData()[reused]) != Toxic {
		t.Fatalf("reused slot %d is %v", reused, Liquid(world.ParticleUserData()[reused]))
	}

	// The water that moved down to slot 0 still counts as water
	world.ParticlePositions()[0].Y = 7
	r := m.Update()
	if r.Collected != 1 || r.Drained != 0 {
		t.Errorf("collected %d drained %d, want 1 and 0", r.Collected, r.Drained)
	}
}
