package messages

import "github.com/leap-fish/necs/esync"

// PlayerJoined is sent to the members of a room when another player enters.
type PlayerJoined struct {
	Room      string
	NetworkID esync.NetworkId
	Name      string
	Players   int
}

// PlayerLeft is sent to the members of a room when another player leaves or
// disconnects.
type PlayerLeft struct {
	Room      string
	NetworkID esync.NetworkId
	Name      string
	Players   int
}
