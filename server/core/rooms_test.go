package core

import (
	"errors"
	"testing"
)

func TestJoinOrCreate(t *testing.T) {
	cases := []struct {
		name     string
		version  string
		seed     []Member
		max      int
		joiner   Member
		wantErr  error
		wantSize int
	}{
		{
			name:     "creates room",
			max:      4,
			joiner:   Member{ID: "a", Name: "Ann"},
			wantSize: 1,
		},
		{
			name:     "joins existing",
			max:      4,
			seed:     []Member{{ID: "a"}},
			joiner:   Member{ID: "b"},
			wantSize: 2,
		},
		{
			name:    "room full",
			max:     2,
			seed:    []Member{{ID: "a"}, {ID: "b"}},
			joiner:  Member{ID: "c"},
			wantErr: ErrRoomFull,
		},
		{
			name:    "version mismatch",
			version: "2",
			max:     4,
			joiner:  Member{ID: "a", Version: "1"},
			wantErr: ErrVersionMismatch,
		},
		{
			name:     "matching version",
			version:  "2",
			max:      4,
			joiner:   Member{ID: "a", Version: "2"},
			wantSize: 1,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rm := NewRoomManager(c.version, 8)
			for _, m := range c.seed {
				m.Version = c.version
				if _, err := rm.JoinOrCreate("room", c.max, m); err != nil {
					t.Fatalf("seed %s: %v", m.ID, err)
				}
			}

			res, err := rm.JoinOrCreate("room", c.max, c.joiner)
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("err = %v, want %v", err, c.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Players != c.wantSize {
				t.Errorf("players = %d, want %d", res.Players, c.wantSize)
			}
			if res.Created != (len(c.seed) == 0) {
				t.Errorf("created = %v with %d seeded members", res.Created, len(c.seed))
			}
		})
	}
}

func TestCreatorSetsCapacity(t *testing.T) {
	rm := NewRoomManager("", 8)
	if _, err := rm.JoinOrCreate("room", 2, Member{ID: "a"}); err != nil {
		t.Fatal(err)
	}
	// Later joiners cannot resize the room.
	res, err := rm.JoinOrCreate("room", 10, Member{ID: "b"})
	if err != nil {
		t.Fatal(err)
	}
	if res.MaxPlayers != 2 {
		t.Errorf("max players = %d, want 2", res.MaxPlayers)
	}

	res, err = rm.JoinOrCreate("other", 0, Member{ID: "c"})
	if err != nil {
		t.Fatal(err)
	}
	if res.MaxPlayers != 8 {
		t.Errorf("default max players = %d, want 8", res.MaxPlayers)
	}
}

func TestEmptyRoomName(t *testing.T) {
	rm := NewRoomManager("", 4)
	if _, err := rm.JoinOrCreate("  ", 4, Member{ID: "a"}); !errors.Is(err, ErrNoRoomName) {
		t.Fatalf("err = %v, want ErrNoRoomName", err)
	}
}

func TestLeaveDeletesEmptyRoom(t *testing.T) {
	rm := NewRoomManager("", 4)
	for _, id := range []string{"a", "b"} {
		if _, err := rm.JoinOrCreate("room", 4, Member{ID: id}); err != nil {
			t.Fatal(err)
		}
	}

	left, ok := rm.Leave("a")
	if !ok || left.Name != "room" || left.Players != 1 {
		t.Fatalf("Leave(a) = %+v, %v", left, ok)
	}
	if got := rm.Players("room"); len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("players after leave = %+v", got)
	}

	if _, ok := rm.Leave("b"); !ok {
		t.Fatal("Leave(b) reported no room")
	}
	if rooms := rm.Rooms(); len(rooms) != 0 {
		t.Errorf("rooms = %+v, want none", rooms)
	}
	if _, ok := rm.Leave("b"); ok {
		t.Error("second Leave(b) should report no room")
	}
}

func TestPlayersInJoinOrder(t *testing.T) {
	rm := NewRoomManager("", 4)
	for _, id := range []string{"c", "a", "b"} {
		if _, err := rm.JoinOrCreate("room", 4, Member{ID: id}); err != nil {
			t.Fatal(err)
		}
	}

	got := rm.Players("room")
	want := []string{"c", "a", "b"}
	for i, m := range got {
		if m.ID != want[i] {
			t.Fatalf("players = %+v, want order %v", got, want)
		}
	}
	if rm.Players("missing") != nil {
		t.Error("unknown room should have no players")
	}
}

func TestSwitchRooms(t *testing.T) {
	rm := NewRoomManager("", 4)
	if _, err := rm.JoinOrCreate("room", 4, Member{ID: "a"}); err != nil {
		t.Fatal(err)
	}
	if _, err := rm.JoinOrCreate("coinflip", 4, Member{ID: "a"}); err != nil {
		t.Fatal(err)
	}

	if name, _ := rm.RoomOf("a"); name != "coinflip" {
		t.Errorf("room of a = %q, want coinflip", name)
	}
	if rm.PlayerCount() != 1 {
		t.Errorf("player count = %d, want 1", rm.PlayerCount())
	}
	rooms := rm.Rooms()
	if len(rooms) != 1 || rooms[0].Name != "coinflip" {
		t.Errorf("rooms = %+v, want only coinflip", rooms)
	}
}

func TestArrivalsKeepCounting(t *testing.T) {
	rm := NewRoomManager("", 4)
	var arrivals []int
	for _, id := range []string{"a", "b"} {
		res, err := rm.JoinOrCreate("room", 4, Member{ID: id})
		if err != nil {
			t.Fatal(err)
		}
		arrivals = append(arrivals, res.Arrival)
	}
	rm.Leave("a")
	res, err := rm.JoinOrCreate("room", 4, Member{ID: "c"})
	if err != nil {
		t.Fatal(err)
	}
	arrivals = append(arrivals, res.Arrival)

	for i, want := range []int{0, 1, 2} {
		if arrivals[i] != want {
			t.Fatalf("arrivals = %v, want [0 1 2]", arrivals)
		}
	}
}
