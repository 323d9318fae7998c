package motion

// State is a read-only snapshot of a controller's MotionState.
type State struct {
	FacingRight            bool
	Grounded               bool
	WasCrouching           bool
	SmoothingVelocity      Vec2
	JumpPressedRemaining   float64
	GroundedGraceRemaining float64
	DefaultGravity         float64
	EffectiveGravityScale  float64
}

// State returns the current MotionState.
func (c *Controller) State() State {
	return State{
		FacingRight:            c.facingRight,
		Grounded:               c.grounded,
		WasCrouching:           c.wasCrouching,
		SmoothingVelocity:      c.smoothing,
		JumpPressedRemaining:   c.jumpPressedRemaining,
		GroundedGraceRemaining: c.groundedGraceRemaining,
		DefaultGravity:         c.defaultGravity,
		EffectiveGravityScale:  c.gravityScale,
	}
}

// FacingRight reports the current horizontal orientation.
func (c *Controller) FacingRight() bool { return c.facingRight }

// Grounded reports whether the last ground sample found contact.
func (c *Controller) Grounded() bool { return c.grounded }

// Crouching reports whether the character is currently crouched.
func (c *Controller) Crouching() bool { return c.wasCrouching }

// Body returns the rigid body this controller drives.
func (c *Controller) Body() Body { return c.body }
