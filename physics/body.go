package physics

// BodyDef describes a static body
type BodyDef struct {
	Position Vec2
	Kind     Kind
	UserData any
}

// FixtureDef describes an axis-aligned box fixture centred on its body
type FixtureDef struct {
	HalfWidth  float64
	HalfHeight float64

	// Sensor fixtures report contacts but never push particles
	Sensor bool

	Kind     Kind
	UserData any
}

// Body is a static body owning one or more box fixtures
type Body struct {
	position Vec2
	kind     Kind
	userData any
	fixtures []*Fixture
	world    *World
}

// Position returns the body centre
func (b *Body) Position() Vec2 {
	return b.position
}

// Kind returns the body tag
func (b *Body) Kind() Kind {
	return b.kind
}

// UserData returns the value attached at creation
func (b *Body) UserData() any {
	return b.userData
}

// Fixtures returns the body's fixtures
func (b *Body) Fixtures() []*Fixture {
	return b.fixtures
}

// Destroyed reports whether the body has been removed from its world
func (b *Body) Destroyed() bool {
	return b.world == nil
}

// CreateFixture attaches a box fixture to the body
func (b *Body) CreateFixture(def FixtureDef) *Fixture {
	f := &Fixture{
		body:       b,
		halfWidth:  def.HalfWidth,
		halfHeight: def.HalfHeight,
		sensor:     def.Sensor,
		kind:       def.Kind,
		userData:   def.UserData,
	}
	b.fixtures = append(b.fixtures, f)
	if b.world != nil {
		b.world.fixturesDirty = true
	}
	return f
}

// Fixture is a box shape attached to a body
type Fixture struct {
	body       *Body
	halfWidth  float64
	halfHeight float64
	sensor     bool
	kind       Kind
	userData   any
}

// Body returns the owning body
func (f *Fixture) Body() *Body {
	return f.body
}

// Kind returns the fixture tag
func (f *Fixture) Kind() Kind {
	return f.kind
}

// UserData returns the value attached at creation
func (f *Fixture) UserData() any {
	return f.userData
}

// IsSensor reports whether the fixture only detects overlap
func (f *Fixture) IsSensor() bool {
	return f.sensor
}

// HalfExtents returns the box half width and half height
func (f *Fixture) HalfExtents() (float64, float64) {
	return f.halfWidth, f.halfHeight
}

// AABB returns the min and max corners in world space
func (f *Fixture) AABB() (Vec2, Vec2) {
	c := f.body.position
	return Vec2{c.X - f.halfWidth, c.Y - f.halfHeight}, Vec2{c.X + f.halfWidth, c.Y + f.halfHeight}
}

// Overlaps reports whether a circle at p with radius r touches the box
func (f *Fixture) Overlaps(p Vec2, r float64) bool {
	lo, hi := f.AABB()
	cx := clamp(p.X, lo.X, hi.X)
	cy := clamp(p.Y, lo.Y, hi.Y)
	dx := p.X - cx
	dy := p.Y - cy
	return dx*dx+dy*dy <= r*r
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
