package factory

import (
	"github.com/automoto/partyroom/archetypes"
	"github.com/automoto/partyroom/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateRoom records the room this client joined.
func CreateRoom(ecs *ecs.ECS, name string, players, maxPlayers int) *donburi.Entry {
	room := archetypes.Room.Spawn(ecs)
	components.Room.SetValue(room, components.RoomData{
		Name:       name,
		Players:    players,
		MaxPlayers: maxPlayers,
	})
	return room
}
