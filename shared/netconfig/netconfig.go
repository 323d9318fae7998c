// Package netconfig defines lightweight types shared between client and server
// for network serialization. It must have zero dependencies on ebiten or any
// graphics library so the dedicated server binary stays headless.
package netconfig

// Version is the protocol version a client presents when joining. Servers
// started without -version accept any value.
const Version = "1"

// Room defaults used by the launcher.
const (
	PvpRoom           = "room"
	CoinFlipRoom      = "coinflip"
	DefaultMaxPlayers = 4
)

// DefaultTickRate is the server snapshot rate assumed before JoinAccepted
// reports the real one.
const DefaultTickRate = 20

// StateID identifies a character state for animation and replication.
type StateID int

const StateNone StateID = -1

const (
	Idle StateID = iota
	Running
	Jump
	Fall
	Crouch
	CrouchWalk
)

var stateNames = map[StateID]string{
	StateNone:  "none",
	Idle:       "idle",
	Running:    "running",
	Jump:       "jump",
	Fall:       "fall",
	Crouch:     "crouch",
	CrouchWalk: "crouchwalk",
}

func (s StateID) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Facing values carried in replicated player state.
const (
	FacingLeft  = -1
	FacingRight = 1
)
