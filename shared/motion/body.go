package motion

// Vec2 is a 2D vector in physics space. Y points up, so a negative Y
// velocity means the body is falling.
type Vec2 struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Mask selects which collision layers a query considers.
type Mask uint32

// Has reports whether any bit of layer is set in m.
func (m Mask) Has(layer Mask) bool {
	return m&layer != 0
}

// BodyID identifies the rigid body owning a collider.
type BodyID uint64

// Body is the rigid-body handle driven by a Controller.
type Body interface {
	ID() BodyID
	Position() Vec2
	Velocity() Vec2
	SetVelocity(v Vec2)
	// SetGravityScale sets the multiplier applied to the world's base gravity.
	SetGravityScale(scale float64)
	// MirrorX negates the body's local horizontal scale.
	MirrorX()
}

// Overlap is a single collider found by a shape query.
type Overlap struct {
	Collider any
	Owner    BodyID
}

// Physics answers shape-overlap queries against the collision world.
type Physics interface {
	OverlapCircle(center Vec2, radius float64, mask Mask) []Overlap
}

// Toggle is a collider that can be switched off, such as the upper half of a
// character that should not collide while crouching.
type Toggle interface {
	SetEnabled(enabled bool)
}
