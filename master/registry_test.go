package main

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestRegistry(ttl time.Duration) (*Registry, *time.Time) {
	reg := NewRegistry(ttl)
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return clock }
	return reg, &clock
}

func TestRegisterAssignsUUID(t *testing.T) {
	reg, _ := newTestRegistry(time.Minute)
	id := reg.Register(ServerInfo{Name: "a", Address: "ws://a"})
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected a uuid, got %q: %v", id, err)
	}
	if other := reg.Register(ServerInfo{Name: "b", Address: "ws://b"}); other == id {
		t.Fatalf("expected distinct ids")
	}
}

func TestHeartbeatUpdatesOccupancy(t *testing.T) {
	reg, _ := newTestRegistry(time.Minute)
	id := reg.Register(ServerInfo{Name: "a", Address: "ws://a", MaxPlayers: 8})

	if reg.Heartbeat("missing", 1, nil) {
		t.Fatalf("heartbeat for unknown id must fail")
	}
	if !reg.Heartbeat(id, 3, []RoomInfo{{Name: "room", Players: 3, MaxPlayers: 4}}) {
		t.Fatalf("heartbeat failed")
	}
	if !reg.Heartbeat(id, 4, nil) {
		t.Fatalf("heartbeat failed")
	}

	got := reg.List("")
	if len(got) != 1 || got[0].Players != 4 || len(got[0].Rooms) != 1 {
		t.Fatalf("unexpected listing %+v", got)
	}
}

func TestListFiltersByRoom(t *testing.T) {
	reg, _ := newTestRegistry(time.Minute)
	reg.Register(ServerInfo{Name: "full-room", Address: "ws://1", Players: 4, MaxPlayers: 16,
		Rooms: []RoomInfo{{Name: "room", Players: 4, MaxPlayers: 4}}})
	reg.Register(ServerInfo{Name: "open-room", Address: "ws://2", Players: 2, MaxPlayers: 16,
		Rooms: []RoomInfo{{Name: "room", Players: 2, MaxPlayers: 4}}})
	reg.Register(ServerInfo{Name: "empty", Address: "ws://3", MaxPlayers: 16})
	reg.Register(ServerInfo{Name: "packed", Address: "ws://4", Players: 16, MaxPlayers: 16,
		Rooms: []RoomInfo{{Name: "coinflip", Players: 4, MaxPlayers: 4}}})

	cases := []struct {
		room string
		want []string
	}{
		{"", []string{"empty", "full-room", "open-room", "packed"}},
		{"room", []string{"empty", "open-room"}},
		{"coinflip", []string{"empty", "full-room", "open-room"}},
	}

	for _, c := range cases {
		t.Run("room="+c.room, func(t *testing.T) {
			got := reg.List(c.room)
			if len(got) != len(c.want) {
				t.Fatalf("want %v, got %+v", c.want, got)
			}
			for i, name := range c.want {
				if got[i].Name != name {
					t.Fatalf("position %d: want %q, got %q", i, name, got[i].Name)
				}
			}
		})
	}
}

func TestExpireDropsStaleServers(t *testing.T) {
	reg, clock := newTestRegistry(90 * time.Second)
	stale := reg.Register(ServerInfo{Name: "stale", Address: "ws://s"})
	*clock = clock.Add(60 * time.Second)
	fresh := reg.Register(ServerInfo{Name: "fresh", Address: "ws://f"})
	*clock = clock.Add(40 * time.Second)

	if n := reg.Expire(); n != 1 {
		t.Fatalf("expected one expiry, got %d", n)
	}
	if reg.Heartbeat(stale, 0, nil) {
		t.Fatalf("stale server should be gone")
	}
	if !reg.Heartbeat(fresh, 0, nil) {
		t.Fatalf("fresh server should survive")
	}
}
