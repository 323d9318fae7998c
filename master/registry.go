package main

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RoomInfo is the occupancy of one room hosted by a server.
type RoomInfo struct {
	Name       string `json:"name"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
}

// Full reports whether the room cannot take another player.
func (r RoomInfo) Full() bool {
	return r.MaxPlayers > 0 && r.Players >= r.MaxPlayers
}

// ServerInfo describes a room server visible to clients.
type ServerInfo struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Address    string     `json:"address"`
	Players    int        `json:"players"`
	MaxPlayers int        `json:"maxPlayers"`
	Version    string     `json:"version"`
	Region     string     `json:"region"`
	Rooms      []RoomInfo `json:"rooms"`
}

// CanHost reports whether a player asking for room could land on this server:
// either the room exists and has a free slot, or the server has capacity to
// create it.
func (s ServerInfo) CanHost(room string) bool {
	for _, r := range s.Rooms {
		if r.Name == room {
			return !r.Full()
		}
	}
	return s.MaxPlayers <= 0 || s.Players < s.MaxPlayers
}

type serverRecord struct {
	ServerInfo
	LastSeen time.Time
}

// Registry is an in-memory store of active room servers with TTL-based expiry.
type Registry struct {
	mu      sync.RWMutex
	servers map[string]*serverRecord
	ttl     time.Duration
	now     func() time.Time
	stopCh  chan struct{}
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		servers: make(map[string]*serverRecord),
		ttl:     ttl,
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}
}

// Start runs the expiry loop until Stop is called.
func (r *Registry) Start(interval time.Duration) {
	go r.cleanupLoop(interval)
}

func (r *Registry) Stop() {
	close(r.stopCh)
}

func (r *Registry) Register(info ServerInfo) string {
	info.ID = uuid.NewString()

	r.mu.Lock()
	r.servers[info.ID] = &serverRecord{
		ServerInfo: info,
		LastSeen:   r.now(),
	}
	r.mu.Unlock()

	return info.ID
}

// Heartbeat refreshes a server's TTL and occupancy. rooms replaces the
// previous room list; a nil slice keeps it.
func (r *Registry) Heartbeat(id string, players int, rooms []RoomInfo) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.servers[id]
	if !ok {
		return false
	}
	rec.LastSeen = r.now()
	rec.Players = players
	if rooms != nil {
		rec.Rooms = rooms
	}
	return true
}

// List returns live servers ordered by name. A non-empty room restricts the
// result to servers that can still accept a player for that room.
func (r *Registry) List(room string) []ServerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]ServerInfo, 0, len(r.servers))
	for _, rec := range r.servers {
		if room != "" && !rec.CanHost(room) {
			continue
		}
		result = append(result, rec.ServerInfo)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// Expire drops every server not seen within the TTL and returns how many
// were removed.
func (r *Registry) Expire() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, rec := range r.servers {
		if now.Sub(rec.LastSeen) >= r.ttl {
			log.Printf("[master] expired server %q (id=%s, last seen %s ago)",
				rec.Name, id, now.Sub(rec.LastSeen).Round(time.Second))
			delete(r.servers, id)
			removed++
		}
	}
	return removed
}

func (r *Registry) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.Expire()
		}
	}
}
