package game

import (
	"liquiddig/physics"
	"liquiddig/terrain"
)

// Config holds game configuration constants
type Config struct {
	// FieldWidth is the play surface width in pixels
	FieldWidth int

	// FieldHeight is the play surface height in pixels
	FieldHeight int

	// Resolution is the size of one terrain cell in pixels
	Resolution float64

	// WorldWidth is the play surface width in physics units
	WorldWidth float64

	// WorldHeight is the play surface height in physics units
	WorldHeight float64

	// Gravity applied by the physics world
	Gravity physics.Vec2

	// ParticleRadius is the radius of every liquid particle
	ParticleRadius float64

	// TimeStep is the fixed simulation step in seconds
	TimeStep float64

	VelocityIterations int
	PositionIterations int

	// DigRadius is the dig footprint radius in cells
	DigRadius int

	// CollectionDepth is the y below which particles leave the level
	CollectionDepth float64

	// RushingSpeed is the speed above which a particle may count as rushing
	RushingSpeed float64

	// RushingCheckRadius is the terrain neighbourhood radius in cells
	RushingCheckRadius int

	// StationReleaseDelay is how many frames a full station processes
	StationReleaseDelay int

	// SizzleHold keeps the contamination cue on for this many frames
	SizzleHold int

	// Pipe geometry in physics units
	PipeThickness float64
	PipeHeight    float64
	PipeWidth     float64
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		FieldWidth:          1000,
		FieldHeight:         600,
		Resolution:          12,
		WorldWidth:          10,
		WorldHeight:         6,
		Gravity:             physics.Vec2{X: 0, Y: 10},
		ParticleRadius:      0.05,
		TimeStep:            1.0 / 60.0,
		VelocityIterations:  10,
		PositionIterations:  10,
		DigRadius:           2,
		CollectionDepth:     6.2,
		RushingSpeed:        1.2,
		RushingCheckRadius:  1,
		StationReleaseDelay: 120,
		SizzleHold:          10,
		PipeThickness:       0.2,
		PipeHeight:          1.5,
		PipeWidth:           1.0,
	}
}

// GridWidth returns the number of terrain cells in the X direction
func (c Config) GridWidth() int {
	return int(float64(c.FieldWidth) / c.Resolution)
}

// GridHeight returns the number of terrain cells in the Y direction
func (c Config) GridHeight() int {
	return int(float64(c.FieldHeight) / c.Resolution)
}

// Geometry returns the cell mapping shared by the mesher and the classifier
func (c Config) Geometry() terrain.Geometry {
	return terrain.Geometry{
		GridWidth:   c.GridWidth(),
		GridHeight:  c.GridHeight(),
		WorldWidth:  c.WorldWidth,
		WorldHeight: c.WorldHeight,
		Resolution:  c.Resolution,
	}
}

// WorldDef returns physics settings matching this configuration
func (c Config) WorldDef() physics.WorldDef {
	def := physics.DefaultWorldDef()
	def.Gravity = c.Gravity
	def.ParticleRadius = c.ParticleRadius
	def.Width = c.WorldWidth
	def.Height = c.WorldHeight
	return def
}
