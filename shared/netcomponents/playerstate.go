package netcomponents

import (
	"github.com/automoto/partyroom/shared/netconfig"
	"github.com/yohamta/donburi"
)

type NetPlayerStateData struct {
	Room      string
	StateID   netconfig.StateID
	Facing    int // -1 left, 1 right
	Grounded  bool
	Crouching bool
	IsLocal   bool // Client-side only, not synced
}

var NetPlayerState = donburi.NewComponentType[NetPlayerStateData]()
