package config

import "github.com/automoto/partyroom/shared/netconfig"

// StateID aliases the shared type so client code can say config.StateID.
type StateID = netconfig.StateID

// Re-export character state constants.
const (
	StateNone  = netconfig.StateNone
	Idle       = netconfig.Idle
	Running    = netconfig.Running
	Jump       = netconfig.Jump
	Fall       = netconfig.Fall
	Crouch     = netconfig.Crouch
	CrouchWalk = netconfig.CrouchWalk
)
