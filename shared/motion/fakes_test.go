package motion

type fakeBody struct {
	id           BodyID
	pos          Vec2
	vel          Vec2
	gravityScale float64
	mirrors      int
}

func (b *fakeBody) ID() BodyID                    { return b.id }
func (b *fakeBody) Position() Vec2                { return b.pos }
func (b *fakeBody) Velocity() Vec2                { return b.vel }
func (b *fakeBody) SetVelocity(v Vec2)            { b.vel = v }
func (b *fakeBody) SetGravityScale(scale float64) { b.gravityScale = scale }
func (b *fakeBody) MirrorX()                      { b.mirrors++ }

// fakePhysics answers ground queries (below the body) and ceiling queries
// (above the body) from fixed hit lists.
type fakePhysics struct {
	body    *fakeBody
	ground  []Overlap
	ceiling []Overlap
	queries int
}

func (p *fakePhysics) OverlapCircle(center Vec2, radius float64, mask Mask) []Overlap {
	p.queries++
	if center.Y < p.body.pos.Y {
		return p.ground
	}
	return p.ceiling
}

type fakeToggle struct {
	enabled bool
	calls   int
}

func (t *fakeToggle) SetEnabled(enabled bool) {
	t.enabled = enabled
	t.calls++
}

var floor = []Overlap{{Collider: "floor", Owner: StaticBody}}

type recorder struct {
	jumps, landings int
	crouches        []bool
}

func (r *recorder) attach(c *Controller) {
	c.OnJump(func() { r.jumps++ })
	c.OnLanding(func() { r.landings++ })
	c.OnCrouch(func(entering bool) { r.crouches = append(r.crouches, entering) })
}

func newHarness(cfg Config, opts ...Option) (*Controller, *fakeBody, *fakePhysics, *recorder) {
	body := &fakeBody{id: 7}
	phys := &fakePhysics{body: body}
	c, err := New(body, phys, cfg, opts...)
	if err != nil {
		panic(err)
	}
	rec := &recorder{}
	rec.attach(c)
	return c, body, phys, rec
}
