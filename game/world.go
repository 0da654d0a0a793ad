package game

import (
	"image/color"

	"liquiddig/physics"
	"liquiddig/terrain"
)

// PhysicsWorld is the slice of the physics engine the game drives.
// *physics.World satisfies it; tests wrap it to inject contacts.
type PhysicsWorld interface {
	CreateBody(def physics.BodyDef) *physics.Body
	DestroyBody(b *physics.Body)
	Bodies() []*physics.Body
	ClearBodies()

	Step(dt float64, velocityIterations, positionIterations int)

	// Particle buffers, indexed by particle. Slices are owned by the engine
	// and valid until the next Step or group creation. Colors and user data
	// may be written in place.
	ParticleCount() int
	ParticlePositions() []physics.Vec2
	ParticleVelocities() []physics.Vec2
	ParticleColors() []color.RGBA
	ParticleUserData() []int

	CreateParticleGroup(def physics.ParticleGroupDef) (first, count int)
	DestroyParticle(i int)
	ParticleDestroyed(i int) bool
	DestroyAllParticles()

	ParticleContacts() []physics.ParticleContact
	BodyContacts() []physics.BodyContact
}

var _ PhysicsWorld = (*physics.World)(nil)

// Body and fixture tags
const (
	KindWall          physics.Kind = "wall"
	KindPipe          physics.Kind = "pipe"
	KindBlock         physics.Kind = "block"
	KindTerrain       physics.Kind = "terrain"
	KindStationBody   physics.Kind = "treatment_station_body"
	KindStationIntake physics.Kind = "treatment_station_intake"
)

// Liquid is the tag stored in a particle's user data slot
type Liquid int

const (
	// LiquidNone marks slots the game did not tag
	LiquidNone Liquid = iota
	Water
	Toxic
)

var (
	waterColor = color.RGBA{0, 100, 255, 255}
	toxicColor = color.RGBA{128, 0, 128, 255}
)

// Color returns the display color for the liquid
func (l Liquid) Color() color.RGBA {
	switch l {
	case Water:
		return waterColor
	case Toxic:
		return toxicColor
	default:
		return color.RGBA{255, 255, 255, 255}
	}
}

func (l Liquid) String() string {
	switch l {
	case Water:
		return "water"
	case Toxic:
		return "toxic"
	default:
		return "none"
	}
}

// terrainBodies creates and destroys the static bodies for terrain regions
type terrainBodies struct {
	world  PhysicsWorld
	bodies []*physics.Body
}

var _ terrain.BodySink = (*terrainBodies)(nil)

func newTerrainBodies(world PhysicsWorld) *terrainBodies {
	return &terrainBodies{world: world}
}

// ClearTerrain destroys every terrain body from the previous rebuild
func (t *terrainBodies) ClearTerrain() {
	for _, b := range t.bodies {
		t.world.DestroyBody(b)
	}
	t.forget()
}

// CreateTerrainBox adds one static body for a merged region
func (t *terrainBodies) CreateTerrainBox(r terrain.Region) {
	b := t.world.CreateBody(physics.BodyDef{
		Position: physics.Vec2{X: r.X, Y: r.Y},
		Kind:     KindTerrain,
	})
	b.CreateFixture(physics.FixtureDef{
		HalfWidth:  r.Width / 2,
		HalfHeight: r.Height / 2,
		Kind:       KindTerrain,
	})
	t.bodies = append(t.bodies, b)
}

// forget drops references after the world cleared its bodies itself
func (t *terrainBodies) forget() {
	for i := range t.bodies {
		t.bodies[i] = nil
	}
	t.bodies = t.bodies[:0]
}
