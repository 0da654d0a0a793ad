package game

import (
	"liquiddig/level"
	"liquiddig/physics"
	"liquiddig/terrain"
)

type wallDef struct {
	x, y, width, height float64
}

// Enclosure walls with a gap in the floor for the exit pipe
var boundaryWalls = []wallDef{
	{5, 0, 10, 0.2},
	{0, 3, 0.2, 6},
	{10, 3, 0.2, 6},
	{3.7, 6, 7.4, 0.2},
	{9.3, 6, 1.4, 0.2},
}

// BuildResult is what a level build leaves for the game to track
type BuildResult struct {
	// InitialWater is the water particle count after carving
	InitialWater int

	Stations []*Station
}

// LevelBuilder populates a cleared physics world from a level description
type LevelBuilder struct {
	world    PhysicsWorld
	grid     *terrain.Grid
	geometry terrain.Geometry
	config   Config
}

// NewLevelBuilder creates a builder that carves against grid
func NewLevelBuilder(world PhysicsWorld, grid *terrain.Grid, config Config) *LevelBuilder {
	return &LevelBuilder{
		world:    world,
		grid:     grid,
		geometry: config.Geometry(),
		config:   config,
	}
}

// Build runs every builder step for l in order
func (b *LevelBuilder) Build(l level.Level) BuildResult {
	b.CreateWorldBoundaries()
	b.CreatePipe(l.PipePosition)
	b.CreateWater(l.WaterShapes)
	b.CreateObstacles(l.Obstacles)
	stations := b.CreateTreatmentStations(l.TreatmentStations)

	// Counted last so that every carve has already happened
	return BuildResult{
		InitialWater: b.countLiquid(Water),
		Stations:     stations,
	}
}

// CreateWorldBoundaries adds the five enclosure walls
func (b *LevelBuilder) CreateWorldBoundaries() {
	for _, w := range boundaryWalls {
		b.staticBox(w.x, w.y, w.width/2, w.height/2, KindWall)
	}
}

// CreatePipe adds the two walls of the exit channel. A nil position is a no-op.
func (b *LevelBuilder) CreatePipe(pos *level.Point) {
	if pos == nil {
		return
	}
	halfT := b.config.PipeThickness / 2
	halfH := b.config.PipeHeight / 2
	b.staticBox(pos.X, pos.Y, halfT, halfH, KindPipe)
	b.staticBox(pos.X+b.config.PipeWidth, pos.Y, halfT, halfH, KindPipe)
}

// CreateWater spawns one water group per box shape and returns the number
// of water particles that survived carving.
func (b *LevelBuilder) CreateWater(shapes []level.Shape) int {
	survivors := 0
	for _, s := range shapes {
		if s.Type != level.ShapeBox {
			continue
		}
		first, count := b.spawn(s, Water)
		if !s.CanGoThroughDirt {
			count -= b.Carve(first, count)
		}
		survivors += count
	}
	return survivors
}

// CreateObstacles adds static blocks and toxic liquid pools
func (b *LevelBuilder) CreateObstacles(obstacles []level.Obstacle) {
	for _, o := range obstacles {
		switch o.Type {
		case level.ObstacleBlock:
			b.staticBox(o.X, o.Y, o.HalfWidth, o.HalfHeight, KindBlock)

		case level.ObstacleToxicLiquid:
			shape := o.LiquidShape()
			if shape.Type != "" && shape.Type != level.ShapeBox {
				continue
			}
			first, count := b.spawn(shape, Toxic)
			if o.CarveAgainstTerrain() {
				b.Carve(first, count)
			}
		}
	}
}

// CreateTreatmentStations adds one body per station with a solid fixture and
// a sensor intake over the same rectangle, both pointing at the station state.
func (b *LevelBuilder) CreateTreatmentStations(defs []level.Station) []*Station {
	stations := make([]*Station, 0, len(defs))
	for _, def := range defs {
		st := NewStation(def)
		body := b.world.CreateBody(physics.BodyDef{
			Position: physics.Vec2{X: st.X, Y: st.Y},
			Kind:     KindStationBody,
			UserData: st,
		})
		body.CreateFixture(physics.FixtureDef{
			HalfWidth:  st.Width / 2,
			HalfHeight: st.Height / 2,
			Kind:       KindStationBody,
			UserData:   st,
		})
		body.CreateFixture(physics.FixtureDef{
			HalfWidth:  st.Width / 2,
			HalfHeight: st.Height / 2,
			Sensor:     true,
			Kind:       KindStationIntake,
			UserData:   st,
		})
		stations = append(stations, st)
	}
	return stations
}

// Carve destroys particles in [first, first+count) that sit in solid
// terrain and returns how many were destroyed. Positions outside the grid
// are left alone.
func (b *LevelBuilder) Carve(first, count int) int {
	return carve(b.world, b.grid, b.geometry, first, count)
}

func carve(world PhysicsWorld, grid *terrain.Grid, geo terrain.Geometry, first, count int) int {
	positions := world.ParticlePositions()
	end := min(first+count, len(positions))
	carved := 0
	for i := max(first, 0); i < end; i++ {
		if world.ParticleDestroyed(i) {
			continue
		}
		col, row := geo.WorldToCell(positions[i].X, positions[i].Y)
		if grid.Solid(col, row) {
			world.DestroyParticle(i)
			carved++
		}
	}
	return carved
}

func (b *LevelBuilder) spawn(s level.Shape, liquid Liquid) (int, int) {
	return b.world.CreateParticleGroup(physics.ParticleGroupDef{
		Position:   physics.Vec2{X: s.X, Y: s.Y},
		HalfWidth:  s.HalfWidth,
		HalfHeight: s.HalfHeight,
		Color:      liquid.Color(),
		UserData:   int(liquid),
	})
}

func (b *LevelBuilder) staticBox(x, y, halfW, halfH float64, kind physics.Kind) *physics.Body {
	body := b.world.CreateBody(physics.BodyDef{
		Position: physics.Vec2{X: x, Y: y},
		Kind:     kind,
	})
	body.CreateFixture(physics.FixtureDef{
		HalfWidth:  halfW,
		HalfHeight: halfH,
		Kind:       kind,
	})
	return body
}

// countLiquid counts live particles carrying the given tag
func (b *LevelBuilder) countLiquid(liquid Liquid) int {
	return countLiquid(b.world, liquid)
}

func countLiquid(world PhysicsWorld, liquid Liquid) int {
	n := 0
	for i, tag := range world.ParticleUserData() {
		if Liquid(tag) == liquid && !world.ParticleDestroyed(i) {
			n++
		}
	}
	return n
}
