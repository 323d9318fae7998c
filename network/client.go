package network

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/automoto/partyroom/shared/messages"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedRoom
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateJoinedRoom:
		return "joined room"
	case StateError:
		return "error"
	default:
		return "disconnected"
	}
}

var (
	ErrNotConnected = errors.New("not connected")
	ErrNotInRoom    = errors.New("not in a room")
)

// RoomInfo describes the room the client is in.
type RoomInfo struct {
	Name       string
	Players    int
	MaxPlayers int
	SpawnX     float64
	SpawnY     float64
}

// RoomEvent reports another player entering or leaving the current room.
type RoomEvent struct {
	Joined    bool
	NetworkID esync.NetworkId
	Name      string
	Players   int
}

type pendingJoin struct {
	room       string
	maxPlayers int
}

// Client manages a WebSocket connection to the game server.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu sync.RWMutex

	state      ClientState
	lastError  error
	networkID  esync.NetworkId
	serverName string
	tickRate   int
	version    string
	playerName string
	room       RoomInfo
	pending    *pendingJoin
	conn       *websocket.Conn

	snapshotCh chan esync.WorldSnapshot // size-1 buffered; latest wins
	roomCh     chan RoomEvent
}

func NewClient() *Client {
	return &Client{
		state:      StateDisconnected,
		snapshotCh: make(chan esync.WorldSnapshot, 1),
		roomCh:     make(chan RoomEvent, 16),
	}
}

// Connect dials the server in a background goroutine. A room requested
// with JoinOrCreateRoom while connecting is joined once the link is up.
func (c *Client) Connect(address, version, playerName string) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.version = version
	c.playerName = playerName
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		log.Println("[client] connected to server")
		c.handleConnected()
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		log.Printf("[client] joined room %q: networkID=%d players=%d/%d server=%s",
			msg.Room, msg.NetworkID, msg.Players, msg.MaxPlayers, msg.ServerName)
		c.handleJoinAccepted(msg)
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		log.Printf("[client] join of room %q rejected: %s", msg.Room, msg.Reason)
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, msg messages.RoomLeft) {
		log.Printf("[client] left room %q", msg.Room)
		c.handleRoomLeft(msg)
	})

	router.On(func(_ *router.NetworkClient, msg messages.PlayerJoined) {
		log.Printf("[client] player connected: %s", msg.Name)
		c.handlePlayerJoined(msg)
	})

	router.On(func(_ *router.NetworkClient, msg messages.PlayerLeft) {
		log.Printf("[client] player disconnected: %s", msg.Name)
		c.handlePlayerLeft(msg)
	})

	router.On(func(_ *router.NetworkClient, snapshot esync.WorldSnapshot) {
		select { // drain stale, push latest
		case <-c.snapshotCh:
		default:
		}
		c.snapshotCh <- snapshot
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] disconnected: %v", err)
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.room = RoomInfo{}
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

// JoinOrCreateRoom enters the named room, creating it with maxPlayers slots
// if needed. While still connecting the request is queued.
func (c *Client) JoinOrCreateRoom(room string, maxPlayers int) error {
	c.mu.Lock()
	switch c.state {
	case StateConnecting:
		c.pending = &pendingJoin{room: room, maxPlayers: maxPlayers}
		c.mu.Unlock()
		return nil
	case StateConnected, StateJoinedRoom:
	default:
		c.mu.Unlock()
		return ErrNotConnected
	}
	req := c.joinRequest(room, maxPlayers)
	c.mu.Unlock()

	log.Printf("[client] joining or creating room %q", room)
	return c.SendMessage(req)
}

// joinRequest must be called with mu held.
func (c *Client) joinRequest(room string, maxPlayers int) messages.JoinRoomRequest {
	return messages.JoinRoomRequest{
		Version:    c.version,
		PlayerName: c.playerName,
		Room:       room,
		MaxPlayers: maxPlayers,
	}
}

// LeaveRoom leaves the current room and keeps the connection open.
func (c *Client) LeaveRoom() error {
	c.mu.Lock()
	if c.state != StateJoinedRoom {
		c.mu.Unlock()
		return ErrNotInRoom
	}
	c.state = StateConnected
	c.room = RoomInfo{}
	c.mu.Unlock()

	drainChan(c.roomCh)
	return c.SendMessage(messages.LeaveRoom{})
}

func (c *Client) handleConnected() {
	c.mu.Lock()
	c.state = StateConnected
	pending := c.pending
	c.pending = nil
	var req messages.JoinRoomRequest
	if pending != nil {
		req = c.joinRequest(pending.room, pending.maxPlayers)
	}
	c.mu.Unlock()

	if pending == nil {
		return
	}
	log.Printf("[client] joining or creating room %q", pending.room)
	if err := c.SendMessage(req); err != nil {
		c.setError(fmt.Errorf("failed to send join request: %w", err))
	}
}

func (c *Client) handleJoinAccepted(msg messages.JoinAccepted) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.networkID = msg.NetworkID
	c.serverName = msg.ServerName
	c.tickRate = msg.TickRate
	c.room = RoomInfo{
		Name:       msg.Room,
		Players:    msg.Players,
		MaxPlayers: msg.MaxPlayers,
		SpawnX:     msg.SpawnX,
		SpawnY:     msg.SpawnY,
	}
	c.state = StateJoinedRoom
}

func (c *Client) handleRoomLeft(msg messages.RoomLeft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.room.Name == msg.Room {
		c.room = RoomInfo{}
		c.state = StateConnected
	}
}

func (c *Client) handlePlayerJoined(msg messages.PlayerJoined) {
	if !c.updatePlayers(msg.Room, msg.Players) {
		return
	}
	c.pushRoomEvent(RoomEvent{Joined: true, NetworkID: msg.NetworkID, Name: msg.Name, Players: msg.Players})
}

func (c *Client) handlePlayerLeft(msg messages.PlayerLeft) {
	if !c.updatePlayers(msg.Room, msg.Players) {
		return
	}
	c.pushRoomEvent(RoomEvent{NetworkID: msg.NetworkID, Name: msg.Name, Players: msg.Players})
}

// updatePlayers reports false for events of a room the client is not in.
func (c *Client) updatePlayers(room string, players int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateJoinedRoom || c.room.Name != room {
		return false
	}
	c.room.Players = players
	return true
}

func (c *Client) pushRoomEvent(evt RoomEvent) {
	select {
	case c.roomCh <- evt:
	default:
		log.Printf("[client] Warning: dropped room event for %s", evt.Name)
	}
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.room = RoomInfo{}
	c.pending = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) NetworkID() esync.NetworkId {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.networkID
}

// Room returns the current room, or a zero RoomInfo outside a room.
func (c *Client) Room() RoomInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.room
}

func (c *Client) TickRate() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tickRate
}

func (c *Client) ServerName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverName
}

// LatestSnapshot returns the most recent WorldSnapshot, or nil. Non-blocking.
func (c *Client) LatestSnapshot() *esync.WorldSnapshot {
	select {
	case snap := <-c.snapshotCh:
		return &snap
	default:
		return nil
	}
}

// DrainRoomEvents returns all pending room events, non-blocking.
func (c *Client) DrainRoomEvents() []RoomEvent {
	return drainChan(c.roomCh)
}

// SendState publishes the local player's state to the room.
func (c *Client) SendState(msg messages.PlayerStateUpdate) error {
	if c.State() != StateJoinedRoom {
		return ErrNotInRoom
	}
	return c.SendMessage(msg)
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return ErrNotConnected
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
