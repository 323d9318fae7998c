package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	ErrRoomFull        = errors.New("room is full")
	ErrVersionMismatch = errors.New("client version mismatch")
	ErrNoRoomName      = errors.New("room name is empty")
)

// Member is one client seated in a room.
type Member struct {
	ID      string
	Name    string
	Version string
}

// RoomStatus is a point-in-time view of a room.
type RoomStatus struct {
	Name       string
	Players    int
	MaxPlayers int
}

// JoinResult describes the room a member just entered. Arrival counts every
// join the room has seen and picks the spawn point.
type JoinResult struct {
	RoomStatus
	Arrival int
	Created bool
}

type room struct {
	name       string
	maxPlayers int
	members    []Member
	arrivals   int
}

// RoomManager tracks named rooms and who sits in them. Rooms are created on
// first join and dropped when the last member leaves.
type RoomManager struct {
	mu         sync.Mutex
	version    string
	defaultMax int
	rooms      map[string]*room
	memberRoom map[string]string
}

// NewRoomManager accepts any client version when version is empty.
// defaultMax seats rooms whose creator did not ask for a size.
func NewRoomManager(version string, defaultMax int) *RoomManager {
	return &RoomManager{
		version:    version,
		defaultMax: defaultMax,
		rooms:      make(map[string]*room),
		memberRoom: make(map[string]string),
	}
}

// JoinOrCreate seats m in the named room, creating it with maxPlayers slots
// when it does not exist. A member already in another room leaves it first.
func (rm *RoomManager) JoinOrCreate(name string, maxPlayers int, m Member) (JoinResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return JoinResult{}, ErrNoRoomName
	}
	if rm.version != "" && m.Version != rm.version {
		return JoinResult{}, fmt.Errorf("%w: server %q, client %q", ErrVersionMismatch, rm.version, m.Version)
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()

	if current, ok := rm.memberRoom[m.ID]; ok {
		if current == name {
			r := rm.rooms[name]
			return JoinResult{RoomStatus: r.status(), Arrival: r.arrivals - 1}, nil
		}
		rm.leaveLocked(m.ID)
	}

	r, exists := rm.rooms[name]
	if !exists {
		if maxPlayers <= 0 {
			maxPlayers = rm.defaultMax
		}
		r = &room{name: name, maxPlayers: maxPlayers}
	}
	if r.maxPlayers > 0 && len(r.members) >= r.maxPlayers {
		return JoinResult{}, fmt.Errorf("%w: %s (%d/%d)", ErrRoomFull, name, len(r.members), r.maxPlayers)
	}

	rm.rooms[name] = r
	r.members = append(r.members, m)
	r.arrivals++
	rm.memberRoom[m.ID] = name

	return JoinResult{RoomStatus: r.status(), Arrival: r.arrivals - 1, Created: !exists}, nil
}

// Leave removes the member from its room and reports the room it left and
// who is still there. ok is false when the member was in no room.
func (rm *RoomManager) Leave(memberID string) (left RoomStatus, ok bool) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return rm.leaveLocked(memberID)
}

func (rm *RoomManager) leaveLocked(memberID string) (RoomStatus, bool) {
	name, ok := rm.memberRoom[memberID]
	if !ok {
		return RoomStatus{}, false
	}
	delete(rm.memberRoom, memberID)

	r := rm.rooms[name]
	for i, m := range r.members {
		if m.ID == memberID {
			r.members = append(r.members[:i], r.members[i+1:]...)
			break
		}
	}
	status := r.status()
	if len(r.members) == 0 {
		delete(rm.rooms, name)
	}
	return status, true
}

// Players lists the members of room in join order.
func (rm *RoomManager) Players(name string) []Member {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	r, ok := rm.rooms[name]
	if !ok {
		return nil
	}
	return append([]Member(nil), r.members...)
}

// RoomOf returns the room the member sits in.
func (rm *RoomManager) RoomOf(memberID string) (string, bool) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	name, ok := rm.memberRoom[memberID]
	return name, ok
}

// Rooms returns every open room sorted by name.
func (rm *RoomManager) Rooms() []RoomStatus {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	result := make([]RoomStatus, 0, len(rm.rooms))
	for _, r := range rm.rooms {
		result = append(result, r.status())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// PlayerCount is the number of seated members across all rooms.
func (rm *RoomManager) PlayerCount() int {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return len(rm.memberRoom)
}

func (r *room) status() RoomStatus {
	return RoomStatus{Name: r.name, Players: len(r.members), MaxPlayers: r.maxPlayers}
}
