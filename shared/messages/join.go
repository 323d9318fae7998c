package messages

import "github.com/leap-fish/necs/esync"

// JoinRoomRequest asks the server to join the named room, creating it with
// MaxPlayers slots if it does not exist yet.
type JoinRoomRequest struct {
	Version    string
	PlayerName string
	Room       string
	MaxPlayers int
}

// JoinAccepted is sent by the server when a client has entered a room.
type JoinAccepted struct {
	NetworkID  esync.NetworkId
	Room       string
	MaxPlayers int
	Players    int
	SpawnX     float64
	SpawnY     float64
	ServerName string
	TickRate   int
}

// JoinRejected is sent by the server when a client could not enter a room.
type JoinRejected struct {
	Room   string
	Reason string
}

// LeaveRoom is sent by a client leaving its current room. The connection
// stays open.
type LeaveRoom struct{}

// RoomLeft confirms a LeaveRoom.
type RoomLeft struct {
	Room string
}
