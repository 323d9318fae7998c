package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrNoServer = errors.New("no server available")

// ServerEntry is one row of the master server's /servers listing.
type ServerEntry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	Version    string `json:"version"`
}

// Matchmaker picks the server to connect to for a room.
type Matchmaker struct {
	MasterURL string
	Fallback  string // direct address used when the master has nothing
	Version   string

	httpClient *http.Client
}

func NewMatchmaker(masterURL, fallback, version string) *Matchmaker {
	return &Matchmaker{
		MasterURL:  strings.TrimRight(masterURL, "/"),
		Fallback:   fallback,
		Version:    version,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// FindServer returns the address of a server that can seat a player in
// room. Without a master, or when the master lists nothing usable, it
// returns the fallback address.
func (m *Matchmaker) FindServer(ctx context.Context, room string) (string, error) {
	if m.MasterURL == "" {
		return m.fallback()
	}

	servers, err := m.listServers(ctx, room)
	if err != nil {
		log.Printf("[client] Warning: master server query failed: %v", err)
		return m.fallback()
	}

	for _, s := range servers {
		if m.Version != "" && s.Version != "" && s.Version != m.Version {
			continue
		}
		log.Printf("[client] matched room %q to server %q at %s", room, s.Name, s.Address)
		return s.Address, nil
	}
	return m.fallback()
}

func (m *Matchmaker) fallback() (string, error) {
	if m.Fallback == "" {
		return "", ErrNoServer
	}
	return m.Fallback, nil
}

func (m *Matchmaker) listServers(ctx context.Context, room string) ([]ServerEntry, error) {
	endpoint := m.MasterURL + "/servers?room=" + url.QueryEscape(room)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("master server returned status %d", resp.StatusCode)
	}

	var servers []ServerEntry
	if err := json.NewDecoder(resp.Body).Decode(&servers); err != nil {
		return nil, fmt.Errorf("decode server list: %w", err)
	}
	return servers, nil
}
