package messages

import "github.com/automoto/partyroom/shared/netconfig"

// PlayerStateUpdate is sent by the owning client every frame. The server
// copies it onto the client's entity, which replicates it to the room.
type PlayerStateUpdate struct {
	X, Y      float64
	VelX      float64
	VelY      float64
	Facing    int
	StateID   netconfig.StateID
	Grounded  bool
	Crouching bool
	Name      string
}
