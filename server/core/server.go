package core

import (
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/automoto/partyroom/shared/messages"
	"github.com/automoto/partyroom/shared/netcomponents"
	"github.com/automoto/partyroom/shared/netconfig"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
)

const defaultPlayerName = "Player"

// commandQueueSize bounds router callbacks waiting for the next tick.
const commandQueueSize = 256

// peer is the per-connection state. entity is valid only while seated.
type peer struct {
	client *router.NetworkClient
	name   string
	room   string
	entity donburi.Entity
	seated bool
}

// Server owns the replicated world and the rooms clients sit in. Router
// callbacks only enqueue commands; the game loop applies them, so the world
// is touched from one goroutine.
type Server struct {
	world     donburi.World
	loop      *GameLoop
	transport *transports.WsServerTransport
	rooms     *RoomManager
	level     *ServerLevel
	name      string

	commands chan func()

	peers map[*router.NetworkClient]*peer
	mu    sync.RWMutex
}

// NewServer creates a new room server
func NewServer(tickRate int, name string, rooms *RoomManager, level *ServerLevel) *Server {
	world := donburi.NewWorld()

	s := &Server{
		world:    world,
		rooms:    rooms,
		level:    level,
		name:     name,
		commands: make(chan func(), commandQueueSize),
		peers:    make(map[*router.NetworkClient]*peer),
	}
	s.loop = NewGameLoop(s, tickRate)

	// Set up the world for esync
	srvsync.UseEsync(world)

	s.setupRouterCallbacks()

	return s
}

// Start begins the server on the given port
func (s *Server) Start(port uint) error {
	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	s.loop.Stop()
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		s.onConnect(client)
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		s.enqueue(func() { s.onDisconnect(client, err) })
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRoomRequest) {
		s.enqueue(func() { s.onJoin(client, req) })
	})

	router.On(func(client *router.NetworkClient, _ messages.LeaveRoom) {
		s.enqueue(func() { s.onLeave(client) })
	})

	router.On(func(client *router.NetworkClient, msg messages.PlayerStateUpdate) {
		s.enqueue(func() { s.onPlayerState(client, msg) })
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[server] client error: %v", err)
	})
}

func (s *Server) enqueue(cmd func()) {
	select {
	case s.commands <- cmd:
	default:
		log.Println("[server] Warning: command queue full, dropping message")
	}
}

// ProcessCommands applies every queued router command. Called by the game
// loop before each sync.
func (s *Server) ProcessCommands() {
	for {
		select {
		case cmd := <-s.commands:
			cmd()
		default:
			return
		}
	}
}

func (s *Server) onConnect(client *router.NetworkClient) {
	log.Printf("[server] client connected: %s", client.Id())

	s.mu.Lock()
	s.peers[client] = &peer{client: client}
	s.mu.Unlock()
}

func (s *Server) onDisconnect(client *router.NetworkClient, err error) {
	if err != nil {
		log.Printf("[server] client %s disconnected with error: %v", client.Id(), err)
	} else {
		log.Printf("[server] client %s disconnected", client.Id())
	}

	s.leaveRoom(client)

	s.mu.Lock()
	delete(s.peers, client)
	s.mu.Unlock()
}

func (s *Server) peerFor(client *router.NetworkClient) *peer {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.peers[client]
	if !ok {
		p = &peer{client: client}
		s.peers[client] = p
	}
	return p
}

func (s *Server) onJoin(client *router.NetworkClient, req messages.JoinRoomRequest) {
	p := s.peerFor(client)
	name := strings.TrimSpace(req.PlayerName)
	if name == "" {
		name = defaultPlayerName
	}

	if p.seated && p.room != req.Room {
		s.leaveRoom(client)
	}

	res, err := s.rooms.JoinOrCreate(req.Room, req.MaxPlayers, Member{
		ID:      client.Id(),
		Name:    name,
		Version: req.Version,
	})
	if err != nil {
		log.Printf("[server] %s could not join %q: %v", name, req.Room, err)
		reason := err.Error()
		if errors.Is(err, ErrVersionMismatch) {
			reason = "version mismatch, please update your client"
		}
		s.send(client, messages.JoinRejected{Room: req.Room, Reason: reason})
		return
	}

	if !p.seated {
		spawn := s.level.SpawnFor(res.Arrival)
		entity, err := s.spawnPlayer(req.Room, name, spawn.X, spawn.Y)
		if err != nil {
			log.Printf("[server] failed to set up network sync for %s: %v", name, err)
			s.rooms.Leave(client.Id())
			s.send(client, messages.JoinRejected{Room: req.Room, Reason: "server error"})
			return
		}
		p.entity, p.seated = entity, true
	}
	p.name, p.room = name, res.Name

	entry := s.world.Entry(p.entity)
	netID := *esync.NetworkIdComponent.Get(entry)
	pos := netcomponents.NetPosition.Get(entry)

	if res.Created {
		log.Printf("[server] created room %q (max %d)", res.Name, res.MaxPlayers)
	}
	log.Printf("[server] %s joined %q (%d/%d)", name, res.Name, res.Players, res.MaxPlayers)

	s.send(client, messages.JoinAccepted{
		NetworkID:  netID,
		Room:       res.Name,
		MaxPlayers: res.MaxPlayers,
		Players:    res.Players,
		SpawnX:     pos.X,
		SpawnY:     pos.Y,
		ServerName: s.name,
		TickRate:   s.loop.tickRate,
	})

	s.broadcast(res.Name, client, messages.PlayerJoined{
		Room:      res.Name,
		NetworkID: netID,
		Name:      name,
		Players:   res.Players,
	})
}

// spawnPlayer creates the replicated entity for a seated player, feet at
// (x, y).
func (s *Server) spawnPlayer(room, name string, x, y float64) (donburi.Entity, error) {
	entity := s.world.Create(
		netcomponents.NetPosition,
		netcomponents.NetVelocity,
		netcomponents.NetPlayerState,
		netcomponents.NetName,
	)
	entry := s.world.Entry(entity)

	netcomponents.NetPosition.SetValue(entry, netcomponents.NetPositionData{X: x, Y: y})
	netcomponents.NetVelocity.SetValue(entry, netcomponents.NetVelocityData{})
	netcomponents.NetPlayerState.SetValue(entry, netcomponents.NetPlayerStateData{
		Room:     room,
		StateID:  netconfig.Idle,
		Facing:   netconfig.FacingRight,
		Grounded: true,
	})
	netcomponents.NetName.SetValue(entry, netcomponents.NetNameData{Name: name})

	err := srvsync.NetworkSync(s.world, &entity,
		srvsync.WithInterp(netcomponents.NetPosition, netcomponents.NetVelocity),
		netcomponents.NetPlayerState,
		netcomponents.NetName,
	)
	if err != nil {
		s.world.Remove(entity)
		return entity, err
	}
	return entity, nil
}

func (s *Server) onLeave(client *router.NetworkClient) {
	room, ok := s.leaveRoom(client)
	if !ok {
		return
	}
	s.send(client, messages.RoomLeft{Room: room})
}

// leaveRoom unseats the client, removes its entity and tells the rest of
// the room.
func (s *Server) leaveRoom(client *router.NetworkClient) (string, bool) {
	s.mu.RLock()
	p, ok := s.peers[client]
	s.mu.RUnlock()
	if !ok || !p.seated {
		return "", false
	}

	var netID esync.NetworkId
	if s.world.Valid(p.entity) {
		netID = *esync.NetworkIdComponent.Get(s.world.Entry(p.entity))
		s.world.Remove(p.entity)
	}
	p.seated = false

	left, ok := s.rooms.Leave(client.Id())
	if !ok {
		return "", false
	}
	log.Printf("[server] %s left %q (%d/%d)", p.name, left.Name, left.Players, left.MaxPlayers)

	s.broadcast(left.Name, client, messages.PlayerLeft{
		Room:      left.Name,
		NetworkID: netID,
		Name:      p.name,
		Players:   left.Players,
	})
	return left.Name, true
}

// onPlayerState copies the owner's state onto its entity. Positions are
// trusted; each client is authoritative over its own body.
func (s *Server) onPlayerState(client *router.NetworkClient, msg messages.PlayerStateUpdate) {
	s.mu.RLock()
	p, ok := s.peers[client]
	s.mu.RUnlock()
	if !ok || !p.seated || !s.world.Valid(p.entity) {
		return
	}

	applyStateUpdate(s.world.Entry(p.entity), p.room, msg)

	name := strings.TrimSpace(msg.Name)
	if name != "" && name != p.name {
		log.Printf("[server] %s is now known as %s", p.name, name)
		p.name = name
	}
}

func applyStateUpdate(entry *donburi.Entry, room string, msg messages.PlayerStateUpdate) {
	netcomponents.NetPosition.SetValue(entry, netcomponents.NetPositionData{X: msg.X, Y: msg.Y})
	netcomponents.NetVelocity.SetValue(entry, netcomponents.NetVelocityData{SpeedX: msg.VelX, SpeedY: msg.VelY})

	facing := netconfig.FacingRight
	if msg.Facing < 0 {
		facing = netconfig.FacingLeft
	}
	netcomponents.NetPlayerState.SetValue(entry, netcomponents.NetPlayerStateData{
		Room:      room,
		StateID:   msg.StateID,
		Facing:    facing,
		Grounded:  msg.Grounded,
		Crouching: msg.Crouching,
	})

	if name := strings.TrimSpace(msg.Name); name != "" {
		netcomponents.NetName.SetValue(entry, netcomponents.NetNameData{Name: name})
	}
}

func (s *Server) send(client *router.NetworkClient, msg any) {
	if err := client.SendMessage(msg); err != nil {
		log.Printf("[server] Warning: send to %s failed: %v", client.Id(), err)
	}
}

// broadcast sends msg to every member of room except skip.
func (s *Server) broadcast(room string, skip *router.NetworkClient, msg any) {
	s.mu.RLock()
	var targets []*router.NetworkClient
	for c, p := range s.peers {
		if c != skip && p.seated && p.room == room {
			targets = append(targets, c)
		}
	}
	s.mu.RUnlock()

	for _, c := range targets {
		s.send(c, msg)
	}
}

// World returns the ECS world
func (s *Server) World() donburi.World {
	return s.world
}

// PlayerCount returns the number of players seated in a room
func (s *Server) PlayerCount() int {
	return s.rooms.PlayerCount()
}

// Rooms returns the occupancy of every open room.
func (s *Server) Rooms() []RoomStatus {
	return s.rooms.Rooms()
}
