package systems

import (
	"math"

	"github.com/automoto/partyroom/components"
	cfg "github.com/automoto/partyroom/config"
)

// runThreshold is the horizontal speed, in units/s, above which a character
// counts as moving.
const runThreshold = 0.1

// DeriveState picks the animation state for a character from its motion.
func DeriveState(grounded, crouching bool, velX, velY float64) cfg.StateID {
	moving := math.Abs(velX) > runThreshold
	switch {
	case crouching && moving:
		return cfg.CrouchWalk
	case crouching:
		return cfg.Crouch
	case velY > runThreshold:
		return cfg.Jump
	case !grounded:
		return cfg.Fall
	case moving:
		return cfg.Running
	default:
		return cfg.Idle
	}
}

// setState records a state change. StateTimer counts frames spent in the
// current state.
func setState(state *components.StateData, id cfg.StateID) {
	if state.CurrentState == id {
		state.StateTimer++
		return
	}
	state.PreviousState = state.CurrentState
	state.CurrentState = id
	state.StateTimer = 0
}
