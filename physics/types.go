// Package physics is a small 2D engine with static box bodies and a liquid
// particle system. It exposes the buffers and contact lists a LiquidFun-style
// engine would: per-index position, velocity, color and user data, deferred
// particle destruction, particle-particle and particle-fixture contacts.
package physics

import "math"

// Vec2 is a 2D vector in world units
type Vec2 struct {
	X, Y float64
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v * s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// LenSq returns the squared length
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len returns the length
func (v Vec2) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// Kind tags bodies and fixtures so renderers and game logic can tell them apart
type Kind string

// ParticleContact is a pair of particles closer than one diameter
type ParticleContact struct {
	A, B int
}

// BodyContact is a particle overlapping a fixture, sensors included
type BodyContact struct {
	Index   int
	Fixture *Fixture
}
