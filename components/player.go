package components

import (
	"github.com/yohamta/donburi"
)

type PlayerData struct {
	Name  string
	Local bool // controlled by this client
}

var Player = donburi.NewComponentType[PlayerData]()
