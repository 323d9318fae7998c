package netcomponents

import "github.com/yohamta/donburi"

// NetNameData is the nickname a player chose on the launcher. The owning
// client writes it; every other client only reads it.
type NetNameData struct {
	Name string
}

var NetName = donburi.NewComponentType[NetNameData]()
