package motion

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a Config fails validation.
var ErrInvalidConfig = errors.New("invalid motion config")

const (
	// GroundedRadius is the radius of the overlap circle used to detect ground.
	GroundedRadius = 0.2
	// CeilingRadius is the radius of the overlap circle used to detect a
	// ceiling above a crouching character.
	CeilingRadius = 0.2

	maxPenalty   = 2.0
	maxSmoothing = 0.3
)

// Config is the controller tuning. All values are fixed at construction or
// replaced as a whole through SetConfig.
type Config struct {
	// Jumping
	CanJump              bool
	JumpHeight           float64 // apex height in units
	JumpDuration         float64 // seconds to reach the apex
	FallMultiplier       float64 // gravity multiplier while falling
	LowJumpMultiplier    float64 // gravity multiplier when jump is released early
	AirControl           bool
	AirborneSpeedPenalty float64 // fraction of speed applied while airborne, [0,2]
	GroundMask           Mask
	GroundCheck          Vec2 // offset from the body position
	LeaveGroundLeniency  float64
	EarlyJumpLeniency    float64

	// Crouching
	CanCrouch          bool
	CrouchSpeedPenalty float64 // fraction of speed applied while crouching, [0,2]
	CeilingCheck       Vec2    // offset from the body position

	// Speed
	Speed             float64
	MovementSmoothing float64 // smoothing time in seconds, [0,0.3]
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		CanJump:              true,
		JumpHeight:           10,
		JumpDuration:         1,
		FallMultiplier:       2.5,
		LowJumpMultiplier:    2,
		AirControl:           false,
		AirborneSpeedPenalty: .36,
		GroundMask:           1,
		GroundCheck:          Vec2{X: 0, Y: -1},
		LeaveGroundLeniency:  0.05,
		EarlyJumpLeniency:    0.05,

		CanCrouch:          true,
		CrouchSpeedPenalty: .36,
		CeilingCheck:       Vec2{X: 0, Y: 1},

		Speed:             1,
		MovementSmoothing: .05,
	}
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	nonNegative := []struct {
		name  string
		value float64
	}{
		{"jump height", c.JumpHeight},
		{"jump duration", c.JumpDuration},
		{"fall multiplier", c.FallMultiplier},
		{"low jump multiplier", c.LowJumpMultiplier},
		{"leave ground leniency", c.LeaveGroundLeniency},
		{"early jump leniency", c.EarlyJumpLeniency},
		{"speed", c.Speed},
	}
	for _, f := range nonNegative {
		if f.value < 0 {
			return fmt.Errorf("%w: %s must be >= 0, got %v", ErrInvalidConfig, f.name, f.value)
		}
	}

	if c.AirborneSpeedPenalty < 0 || c.AirborneSpeedPenalty > maxPenalty {
		return fmt.Errorf("%w: airborne speed penalty must be in [0,%v], got %v", ErrInvalidConfig, maxPenalty, c.AirborneSpeedPenalty)
	}
	if c.CrouchSpeedPenalty < 0 || c.CrouchSpeedPenalty > maxPenalty {
		return fmt.Errorf("%w: crouch speed penalty must be in [0,%v], got %v", ErrInvalidConfig, maxPenalty, c.CrouchSpeedPenalty)
	}
	if c.MovementSmoothing < 0 || c.MovementSmoothing > maxSmoothing {
		return fmt.Errorf("%w: movement smoothing must be in [0,%v], got %v", ErrInvalidConfig, maxSmoothing, c.MovementSmoothing)
	}
	// Gravity is derived from the jump arc even when jumping is disabled.
	if c.JumpDuration == 0 {
		return fmt.Errorf("%w: jump duration must be > 0", ErrInvalidConfig)
	}
	return nil
}

// JumpVelocity is the launch speed that reaches JumpHeight after JumpDuration
// under constant deceleration.
func (c Config) JumpVelocity() float64 {
	return 2 * c.JumpHeight / c.JumpDuration
}

// DefaultGravity is the deceleration matching JumpVelocity.
func (c Config) DefaultGravity() float64 {
	return 2 * c.JumpHeight / (c.JumpDuration * c.JumpDuration)
}
