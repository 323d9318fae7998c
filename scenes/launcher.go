package scenes

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	cfg "github.com/automoto/partyroom/config"
	"github.com/automoto/partyroom/network"
	"github.com/automoto/partyroom/systems"
	"github.com/automoto/partyroom/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const findServerTimeout = 6 * time.Second

// LauncherScene asks for a nickname and a room, then connects.
type LauncherScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	session      *Session
	launcherUI   *ui.LauncherUI
	once         sync.Once

	isConnecting bool
	finding      bool
	room         string
	lastState    network.ClientState

	// Matchmaker results, written by the lookup goroutine.
	mu        sync.Mutex
	found     string
	findErr   error
	findReady bool
}

func NewLauncherScene(sc SceneChanger, session *Session) *LauncherScene {
	return &LauncherScene{sceneChanger: sc, session: session}
}

// roomForMode maps a launcher mode button to its room name.
func roomForMode(mode int) string {
	if mode == 1 {
		return cfg.Network.CoinFlipRoom
	}
	return cfg.Network.PvpRoom
}

func (s *LauncherScene) Update() {
	s.once.Do(s.configure)

	s.ecs.Update()
	s.launcherUI.Update()

	s.applyFindResult()

	if !s.isConnecting || s.finding {
		return
	}

	client := s.session.Client
	state := client.State()
	changed := state != s.lastState
	s.lastState = state

	switch state {
	case network.StateConnected:
		if changed {
			s.launcherUI.AppendLog("Joining/Creating room...\n")
		}

	case network.StateJoinedRoom:
		s.isConnecting = false
		room := client.Room()
		log.Printf("[room] entered %q (%d/%d)", room.Name, room.Players, room.MaxPlayers)
		if room.Name == cfg.Network.CoinFlipRoom {
			s.sceneChanger.ChangeScene(NewCoinFlipScene(s.sceneChanger, s.session))
		} else {
			s.sceneChanger.ChangeScene(NewPvpScene(s.sceneChanger, s.session))
		}

	case network.StateError:
		msg := "Connection failed"
		if err := client.LastError(); err != nil {
			msg = err.Error()
		}
		s.launcherUI.AppendLog(msg + "\n")
		client.Disconnect()
		s.reset()

	case network.StateDisconnected:
		if changed {
			s.launcherUI.AppendLog("Disconnected\n")
			s.reset()
		}
	}
}

func (s *LauncherScene) Draw(screen *ebiten.Image) {
	screen.Fill(cfg.Launcher.BackgroundColor)

	if s.ecs == nil {
		return
	}
	s.launcherUI.UI.Draw(screen)
}

func (s *LauncherScene) configure() {
	s.ecs = ecs.NewECS(donburi.NewWorld())
	s.ecs.AddSystem(systems.UpdateInput)
	s.ecs.AddSystem(func(e *ecs.ECS) {
		if systems.ActionJustPressed(e, cfg.ActionMenuSelect) {
			s.onConnect(s.launcherUI.Mode())
		}
	})

	address := systems.LoadLastAddress()
	if address == "" {
		address = cfg.Network.DefaultAddress
	}

	s.launcherUI = ui.NewLauncherUI(
		systems.LoadPlayerName(),
		address,
		s.onNameChanged,
		s.onConnect,
	)
}

func (s *LauncherScene) onNameChanged(name string) {
	if err := systems.SavePlayerName(name); err != nil {
		log.Printf("Warning: could not save player name: %v", err)
	}
}

// onConnect joins the chosen room, connecting first when needed.
func (s *LauncherScene) onConnect(mode int) {
	if s.isConnecting {
		return
	}

	name := systems.NormalizePlayerName(s.launcherUI.Name())
	if err := systems.SavePlayerName(name); err != nil {
		log.Printf("Warning: could not save player name: %v", err)
	}
	address := s.launcherUI.Address()
	if address != "" {
		if err := systems.SaveLastAddress(address); err != nil {
			log.Printf("Warning: could not save address: %v", err)
		}
	}

	s.room = roomForMode(mode)
	s.isConnecting = true
	s.launcherUI.SetConnecting(true)

	client := s.session.Client
	if st := client.State(); st == network.StateConnected || st == network.StateJoinedRoom {
		s.lastState = st
		s.launcherUI.AppendLog("Joining/Creating room...\n")
		if err := client.JoinOrCreateRoom(s.room, cfg.Network.MaxPlayers); err != nil {
			s.launcherUI.AppendLog(err.Error() + "\n")
			s.reset()
		}
		return
	}

	s.launcherUI.AppendLog("Connecting...\n")
	s.finding = true
	go s.findServer(address, s.room)
}

func (s *LauncherScene) findServer(address, room string) {
	ctx, cancel := context.WithTimeout(context.Background(), findServerTimeout)
	defer cancel()

	mm := s.session.Matchmaker
	if address != "" {
		mm = network.NewMatchmaker(cfg.Network.MasterURL, address, cfg.Network.Version)
	}
	found, err := mm.FindServer(ctx, room)

	s.mu.Lock()
	s.found, s.findErr, s.findReady = found, err, true
	s.mu.Unlock()
}

// applyFindResult dials the server the matchmaker picked. Runs on the game
// goroutine.
func (s *LauncherScene) applyFindResult() {
	s.mu.Lock()
	if !s.findReady {
		s.mu.Unlock()
		return
	}
	found, err := s.found, s.findErr
	s.findReady = false
	s.mu.Unlock()

	s.finding = false
	if err != nil {
		s.launcherUI.AppendLog(fmt.Sprintf("No server: %v\n", err))
		s.reset()
		return
	}

	log.Printf("[client] connecting to %s", found)
	client := s.session.Client
	client.Connect(found, cfg.Network.Version, systems.NormalizePlayerName(s.launcherUI.Name()))
	s.lastState = network.StateConnecting
	if err := client.JoinOrCreateRoom(s.room, cfg.Network.MaxPlayers); err != nil {
		s.launcherUI.AppendLog(err.Error() + "\n")
		client.Disconnect()
		s.reset()
	}
}

func (s *LauncherScene) reset() {
	s.isConnecting = false
	s.finding = false
	s.lastState = network.StateDisconnected
	s.launcherUI.SetConnecting(false)
}
