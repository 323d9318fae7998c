package components

import "github.com/yohamta/donburi"

// RoomData mirrors the room the local client is in.
type RoomData struct {
	Name       string
	Players    int
	MaxPlayers int
}

var Room = donburi.NewComponentType[RoomData]()
