package core

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type fakeOccupancy struct {
	rooms []RoomStatus
}

func (f fakeOccupancy) PlayerCount() int {
	n := 0
	for _, r := range f.rooms {
		n += r.Players
	}
	return n
}

func (f fakeOccupancy) Rooms() []RoomStatus { return f.rooms }

type fakeMaster struct {
	mu         sync.Mutex
	registered []regRequest
	beats      []heartbeatRequest
	known      bool
}

func (m *fakeMaster) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /servers/register", func(w http.ResponseWriter, r *http.Request) {
		var req regRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		m.mu.Lock()
		m.registered = append(m.registered, req)
		m.known = true
		m.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(regResponse{ID: "srv-1"})
	})
	mux.HandleFunc("POST /servers/heartbeat", func(w http.ResponseWriter, r *http.Request) {
		var req heartbeatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		m.mu.Lock()
		defer m.mu.Unlock()
		if !m.known {
			http.Error(w, "unknown server", http.StatusNotFound)
			return
		}
		m.beats = append(m.beats, req)
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func TestRegistrationPublishesRooms(t *testing.T) {
	master := &fakeMaster{}
	ts := httptest.NewServer(master.handler())
	defer ts.Close()

	occ := fakeOccupancy{rooms: []RoomStatus{
		{Name: "coinflip", Players: 1, MaxPlayers: 4},
		{Name: "room", Players: 3, MaxPlayers: 4},
	}}
	reg := NewRegistration(ts.URL, "test", "localhost:7373", "1", "eu", 16, occ)

	if err := reg.register(); err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.serverID != "srv-1" {
		t.Errorf("server id = %q, want srv-1", reg.serverID)
	}
	if err := reg.sendHeartbeat(); err != nil {
		t.Fatalf("heartbeat: %v", err)
	}

	master.mu.Lock()
	defer master.mu.Unlock()
	if len(master.registered) != 1 {
		t.Fatalf("registrations = %d, want 1", len(master.registered))
	}
	got := master.registered[0]
	if got.Players != 4 || len(got.Rooms) != 2 || got.Rooms[1].Name != "room" {
		t.Errorf("registration = %+v", got)
	}
	if len(master.beats) != 1 || master.beats[0].ID != "srv-1" || len(master.beats[0].Rooms) != 2 {
		t.Errorf("heartbeats = %+v", master.beats)
	}
}

func TestHeartbeatReregistersWhenForgotten(t *testing.T) {
	master := &fakeMaster{}
	ts := httptest.NewServer(master.handler())
	defer ts.Close()

	reg := NewRegistration(ts.URL, "test", "localhost:7373", "1", "", 16, fakeOccupancy{})
	reg.serverID = "stale"

	if err := reg.sendHeartbeat(); err != nil {
		t.Fatalf("heartbeat: %v", err)
	}

	master.mu.Lock()
	defer master.mu.Unlock()
	if len(master.registered) != 1 {
		t.Errorf("registrations = %d, want 1 after 404", len(master.registered))
	}
	if reg.serverID != "srv-1" {
		t.Errorf("server id = %q, want srv-1", reg.serverID)
	}
}
