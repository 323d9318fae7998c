package scenes

import (
	"log"
	"sync"

	"github.com/automoto/partyroom/assets"
	"github.com/automoto/partyroom/components"
	cfg "github.com/automoto/partyroom/config"
	"github.com/automoto/partyroom/network"
	"github.com/automoto/partyroom/shared/messages"
	"github.com/automoto/partyroom/systems"
	"github.com/automoto/partyroom/systems/factory"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// PvpScene is the shared arena: the local character runs on its own physics
// and every other member of the room is drawn from snapshots.
type PvpScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	session      *Session
	applier      *systems.SnapshotApplier
	once         sync.Once
}

func NewPvpScene(sc SceneChanger, session *Session) *PvpScene {
	return &PvpScene{sceneChanger: sc, session: session}
}

func (ps *PvpScene) Update() {
	ps.once.Do(ps.configure)

	client := ps.session.Client
	if state := client.State(); state == network.StateDisconnected || state == network.StateError {
		log.Println("[room] connection lost, returning to launcher")
		client.Disconnect()
		ps.sceneChanger.ChangeScene(NewLauncherScene(ps.sceneChanger, ps.session))
		return
	}

	if snap := client.LatestSnapshot(); snap != nil {
		ps.applier.Apply(ps.ecs.World, *snap)
	}
	applyRoomEvents(ps.ecs, client)

	ps.ecs.Update()

	if systems.ActionJustPressed(ps.ecs, cfg.ActionLeave) {
		leaveRoom(ps.sceneChanger, ps.session)
	}
}

func (ps *PvpScene) Draw(screen *ebiten.Image) {
	screen.Fill(cfg.Arena.BackgroundColor)

	if ps.ecs == nil {
		return
	}
	ps.ecs.Draw(screen)
}

func (ps *PvpScene) configure() {
	ps.ecs = ecs.NewECS(donburi.NewWorld())
	client := ps.session.Client
	room := client.Room()

	level, err := assets.LoadLevel(assets.DefaultLevel)
	if err != nil {
		log.Fatalf("[room] %v", err)
	}
	factory.CreateLevel(ps.ecs, assets.DefaultLevel, level)
	factory.CreateRoom(ps.ecs, room.Name, room.Players, room.MaxPlayers)

	name := systems.NormalizePlayerName(systems.LoadPlayerName())
	player := factory.CreatePlayer(ps.ecs, room.SpawnX, room.SpawnY, name)
	if err := systems.AttachController(player, ps.session.Tuning); err != nil {
		log.Fatalf("[room] %v", err)
	}

	ps.applier = systems.NewSnapshotApplier(room.Name, client.NetworkID)

	sendState := func(msg any) error {
		return client.SendState(msg.(messages.PlayerStateUpdate))
	}

	ps.ecs.AddSystem(systems.UpdateInput)
	ps.ecs.AddSystem(systems.UpdateMotion)
	ps.ecs.AddSystem(systems.UpdateEffects)
	ps.ecs.AddSystem(systems.NewStateSender(sendState))
	ps.ecs.AddSystem(systems.NewNetInterpSystem(client.TickRate))

	ps.ecs.AddRenderer(cfg.Default, systems.DrawLevel)
	ps.ecs.AddRenderer(cfg.Default, systems.DrawPlayers)
	ps.ecs.AddRenderer(cfg.Default, systems.DrawNames)
	ps.ecs.AddRenderer(cfg.Default, systems.DrawColliders)
	ps.ecs.AddRenderer(cfg.Default, systems.DrawProbes)
	ps.ecs.AddRenderer(cfg.HUD, systems.DrawHUD)
}

// applyRoomEvents logs joins and leaves and keeps the Room head count
// current.
func applyRoomEvents(e *ecs.ECS, client *network.Client) {
	events := client.DrainRoomEvents()
	if len(events) == 0 {
		return
	}

	roomEntry, ok := components.Room.First(e.World)
	for _, evt := range events {
		if evt.Joined {
			log.Printf("[room] %s joined (%d players)", evt.Name, evt.Players)
		} else {
			log.Printf("[room] %s left (%d players)", evt.Name, evt.Players)
		}
		if ok {
			components.Room.Get(roomEntry).Players = evt.Players
		}
	}
}

// leaveRoom drops the room but keeps the connection for the next join.
func leaveRoom(sc SceneChanger, session *Session) {
	if err := session.Client.LeaveRoom(); err != nil {
		log.Printf("[room] Warning: leave failed: %v", err)
	}
	sc.ChangeScene(NewLauncherScene(sc, session))
}
