// Package motion implements a physics-driven 2D platformer character
// controller: smoothed horizontal movement, crouching under ceilings, jumps
// with input and ground leniency windows, and gravity scaling for a snappy
// jump arc. It talks to the physics engine only through the Body and Physics
// interfaces, so the same controller runs against resolv on the client and in
// headless tests.
package motion

import (
	"errors"
	"fmt"
	"math"

	"github.com/automoto/partyroom/shared/gamemath"
)

// StaticBody is the owner reported for level geometry. Controlled bodies must
// use a different ID.
const StaticBody BodyID = 0

// targetVelocityScale converts scaled input into a target velocity.
const targetVelocityScale = 10.0

var (
	ErrNilBody    = errors.New("motion: body is nil")
	ErrStaticBody = errors.New("motion: body uses the static body ID")
)

// Controller owns the MotionState of one character. It is not safe for
// concurrent use; a simulation loop calls SampleGround on its fixed physics
// step and Move once per logic tick, in that order within a frame.
type Controller struct {
	body           Body
	physics        Physics
	cfg            Config
	crouchCollider Toggle

	facingRight            bool
	grounded               bool
	wasCrouching           bool
	smoothing              Vec2
	jumpPressedRemaining   float64
	groundedGraceRemaining float64
	defaultGravity         float64
	gravityScale           float64

	onJump    []func()
	onLanding []func()
	onCrouch  []func(entering bool)
}

// Option customises a Controller at construction.
type Option func(*Controller)

// WithCrouchCollider sets the collider disabled while crouching.
func WithCrouchCollider(t Toggle) Option {
	return func(c *Controller) {
		c.crouchCollider = t
	}
}

// WithFacingLeft starts the controller facing left. The body is assumed to
// already be mirrored to match.
func WithFacingLeft() Option {
	return func(c *Controller) {
		c.facingRight = false
	}
}

// New validates cfg and binds a controller to body. physics may be nil, in
// which case the character never finds ground or ceilings.
func New(body Body, physics Physics, cfg Config, opts ...Option) (*Controller, error) {
	if body == nil {
		return nil, ErrNilBody
	}
	if body.ID() == StaticBody {
		return nil, ErrStaticBody
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new controller: %w", err)
	}

	c := &Controller{
		body:           body,
		physics:        physics,
		cfg:            cfg,
		facingRight:    true,
		defaultGravity: cfg.DefaultGravity(),
		gravityScale:   1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetConfig swaps the tuning at runtime. MotionState is kept as is.
func (c *Controller) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("set config: %w", err)
	}
	c.cfg = cfg
	return nil
}

// Config returns the active tuning.
func (c *Controller) Config() Config {
	return c.cfg
}

// OnJump registers a handler called when a jump executes.
func (c *Controller) OnJump(fn func()) {
	c.onJump = append(c.onJump, fn)
}

// OnLanding registers a handler called when the character touches ground
// after being airborne.
func (c *Controller) OnLanding(fn func()) {
	c.onLanding = append(c.onLanding, fn)
}

// OnCrouch registers a handler called with true when a crouch begins and
// false when it ends.
func (c *Controller) OnCrouch(fn func(entering bool)) {
	c.onCrouch = append(c.onCrouch, fn)
}

// Move advances the controller by one logic tick of dt seconds.
// horizontal is the input axis in [-1,1]; crouch and jump are held states.
func (c *Controller) Move(horizontal float64, crouch, jump bool, dt float64) {
	if !c.cfg.CanCrouch {
		crouch = false
	}
	if !c.cfg.CanJump {
		jump = false
	}

	if jump {
		c.jumpPressedRemaining = c.cfg.EarlyJumpLeniency
	}

	// Standing up under an obstruction is vetoed, not queued.
	if c.wasCrouching && !crouch && c.blockedAbove() {
		crouch = true
	}

	if c.grounded || c.cfg.AirControl {
		c.steer(horizontal, crouch, dt)
	}

	if c.jumpPressedRemaining > 0 && c.groundedGraceRemaining > 0 {
		c.jumpPressedRemaining = 0
		c.groundedGraceRemaining = 0
		c.grounded = false

		v := c.body.Velocity()
		c.body.SetVelocity(Vec2{X: v.X, Y: c.cfg.JumpVelocity()})
		for _, fn := range c.onJump {
			fn()
		}
	}

	c.applyGravityScale(jump)

	c.jumpPressedRemaining = gamemath.ClampMin(c.jumpPressedRemaining-dt, 0)
	c.groundedGraceRemaining = gamemath.ClampMin(c.groundedGraceRemaining-dt, 0)
}

func (c *Controller) steer(horizontal float64, crouch bool, dt float64) {
	horizontal *= c.cfg.Speed

	if crouch {
		if !c.wasCrouching {
			c.wasCrouching = true
			c.setCrouchCollider(false)
			c.emitCrouch(true)
		}
		horizontal *= c.cfg.CrouchSpeedPenalty
	} else if c.wasCrouching {
		c.wasCrouching = false
		c.setCrouchCollider(true)
		c.emitCrouch(false)
	}

	if !c.grounded {
		horizontal *= c.cfg.AirborneSpeedPenalty
	}

	v := c.body.Velocity()
	x, y := gamemath.SmoothDamp2(
		v.X, v.Y,
		horizontal*targetVelocityScale, v.Y,
		&c.smoothing.X, &c.smoothing.Y,
		c.cfg.MovementSmoothing, math.Inf(1), dt,
	)
	c.body.SetVelocity(Vec2{X: x, Y: y})

	if (horizontal > 0 && !c.facingRight) || (horizontal < 0 && c.facingRight) {
		c.flip()
	}
}

// applyGravityScale picks the multiplier for this tick: heavier when falling,
// heavier again when the jump button is released early.
func (c *Controller) applyGravityScale(jumpHeld bool) {
	c.defaultGravity = c.cfg.DefaultGravity()

	switch {
	case c.body.Velocity().Y < 0:
		c.gravityScale = c.defaultGravity * c.cfg.FallMultiplier
	case !jumpHeld:
		c.gravityScale = c.defaultGravity * c.cfg.LowJumpMultiplier
	default:
		c.gravityScale = c.defaultGravity
	}
	c.body.SetGravityScale(c.gravityScale)
}

// SampleGround refreshes the grounded flag from a fresh overlap query. It runs
// on the fixed physics step.
func (c *Controller) SampleGround() {
	wasGrounded := c.grounded
	c.grounded = false

	if c.physics != nil {
		hits := c.physics.OverlapCircle(c.checkPoint(c.cfg.GroundCheck), GroundedRadius, c.cfg.GroundMask)
		for _, hit := range hits {
			if hit.Owner == c.body.ID() {
				continue
			}
			c.grounded = true
			c.groundedGraceRemaining = c.cfg.LeaveGroundLeniency
			break
		}
	}

	if c.grounded && !wasGrounded {
		for _, fn := range c.onLanding {
			fn()
		}
	}
}

func (c *Controller) blockedAbove() bool {
	if c.physics == nil {
		return false
	}
	for _, hit := range c.physics.OverlapCircle(c.checkPoint(c.cfg.CeilingCheck), CeilingRadius, c.cfg.GroundMask) {
		if hit.Owner != c.body.ID() {
			return true
		}
	}
	return false
}

// checkPoint places a body-relative offset in world space, mirrored with the
// character's facing.
func (c *Controller) checkPoint(offset Vec2) Vec2 {
	if !c.facingRight {
		offset.X = -offset.X
	}
	return c.body.Position().Add(offset)
}

func (c *Controller) flip() {
	c.facingRight = !c.facingRight
	c.body.MirrorX()
}

func (c *Controller) setCrouchCollider(enabled bool) {
	if c.crouchCollider != nil {
		c.crouchCollider.SetEnabled(enabled)
	}
}

func (c *Controller) emitCrouch(entering bool) {
	for _, fn := range c.onCrouch {
		fn(entering)
	}
}
