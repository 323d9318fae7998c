package network

import (
	"errors"
	"testing"

	"github.com/automoto/partyroom/shared/messages"
)

func joinedClient(room string) *Client {
	c := NewClient()
	c.handleJoinAccepted(messages.JoinAccepted{
		NetworkID:  5,
		Room:       room,
		MaxPlayers: 4,
		Players:    1,
		SpawnX:     48,
		SpawnY:     304,
		TickRate:   20,
	})
	return c
}

func TestJoinOrCreateRoomRequiresConnection(t *testing.T) {
	c := NewClient()
	if err := c.JoinOrCreateRoom("room", 4); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("want ErrNotConnected, got %v", err)
	}
}

func TestJoinWhileConnectingIsQueued(t *testing.T) {
	c := NewClient()
	c.state = StateConnecting

	if err := c.JoinOrCreateRoom("coinflip", 4); err != nil {
		t.Fatalf("queued join returned %v", err)
	}
	if c.pending == nil || c.pending.room != "coinflip" || c.pending.maxPlayers != 4 {
		t.Fatalf("pending %+v", c.pending)
	}

	// No socket is open, so flushing the queued join fails loudly.
	c.handleConnected()
	if c.pending != nil {
		t.Fatal("pending join not consumed")
	}
	if c.State() != StateError || c.LastError() == nil {
		t.Fatalf("state %v, err %v", c.State(), c.LastError())
	}
}

func TestJoinAcceptedEntersRoom(t *testing.T) {
	c := joinedClient("room")

	if c.State() != StateJoinedRoom {
		t.Fatalf("state %v", c.State())
	}
	want := RoomInfo{Name: "room", Players: 1, MaxPlayers: 4, SpawnX: 48, SpawnY: 304}
	if got := c.Room(); got != want {
		t.Fatalf("room %+v, want %+v", got, want)
	}
	if c.NetworkID() != 5 || c.TickRate() != 20 {
		t.Fatalf("id %d tick %d", c.NetworkID(), c.TickRate())
	}
}

func TestRoomEventsFollowCurrentRoom(t *testing.T) {
	c := joinedClient("room")

	c.handlePlayerJoined(messages.PlayerJoined{Room: "room", NetworkID: 6, Name: "Ada", Players: 2})
	c.handlePlayerJoined(messages.PlayerJoined{Room: "coinflip", NetworkID: 9, Name: "Bob", Players: 3})
	c.handlePlayerLeft(messages.PlayerLeft{Room: "room", NetworkID: 6, Name: "Ada", Players: 1})

	events := c.DrainRoomEvents()
	if len(events) != 2 {
		t.Fatalf("want 2 events, got %+v", events)
	}
	if !events[0].Joined || events[0].Name != "Ada" || events[0].Players != 2 {
		t.Fatalf("join event %+v", events[0])
	}
	if events[1].Joined || events[1].NetworkID != 6 {
		t.Fatalf("leave event %+v", events[1])
	}
	if c.Room().Players != 1 {
		t.Fatalf("players %d", c.Room().Players)
	}
	if rest := c.DrainRoomEvents(); len(rest) != 0 {
		t.Fatalf("events not drained: %+v", rest)
	}
}

func TestLeaveRoom(t *testing.T) {
	c := NewClient()
	if err := c.LeaveRoom(); !errors.Is(err, ErrNotInRoom) {
		t.Fatalf("want ErrNotInRoom, got %v", err)
	}

	c = joinedClient("room")
	c.handlePlayerJoined(messages.PlayerJoined{Room: "room", Name: "Ada", Players: 2})

	// The send fails without a socket but the room is left locally.
	if err := c.LeaveRoom(); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("want ErrNotConnected, got %v", err)
	}
	if c.State() != StateConnected || c.Room() != (RoomInfo{}) {
		t.Fatalf("state %v room %+v", c.State(), c.Room())
	}
	if events := c.DrainRoomEvents(); len(events) != 0 {
		t.Fatalf("stale events kept: %+v", events)
	}
}

func TestSendStateOutsideRoom(t *testing.T) {
	c := NewClient()
	if err := c.SendState(messages.PlayerStateUpdate{}); !errors.Is(err, ErrNotInRoom) {
		t.Fatalf("want ErrNotInRoom, got %v", err)
	}
}

func TestRoomLeftForOtherRoomIsIgnored(t *testing.T) {
	c := joinedClient("room")
	c.handleRoomLeft(messages.RoomLeft{Room: "coinflip"})
	if c.State() != StateJoinedRoom {
		t.Fatalf("state %v", c.State())
	}
	c.handleRoomLeft(messages.RoomLeft{Room: "room"})
	if c.State() != StateConnected {
		t.Fatalf("state %v", c.State())
	}
}
