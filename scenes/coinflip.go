package scenes

import (
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/automoto/partyroom/components"
	cfg "github.com/automoto/partyroom/config"
	"github.com/automoto/partyroom/network"
	"github.com/automoto/partyroom/systems"
	"github.com/automoto/partyroom/systems/factory"
	"github.com/automoto/partyroom/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CoinFlipScene flips a local coin while showing how many people share the
// room.
type CoinFlipScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	session      *Session
	coinUI       *ui.CoinFlipUI
	coin         *donburi.Entry
	rng          *rand.Rand
	once         sync.Once

	flipRequested  bool
	leaveRequested bool
}

func NewCoinFlipScene(sc SceneChanger, session *Session) *CoinFlipScene {
	return &CoinFlipScene{sceneChanger: sc, session: session}
}

func (cs *CoinFlipScene) Update() {
	cs.once.Do(cs.configure)

	client := cs.session.Client
	if state := client.State(); state == network.StateDisconnected || state == network.StateError {
		log.Println("[room] connection lost, returning to launcher")
		client.Disconnect()
		cs.sceneChanger.ChangeScene(NewLauncherScene(cs.sceneChanger, cs.session))
		return
	}

	// Snapshots carry no coin state; drop them so the buffer stays fresh.
	client.LatestSnapshot()
	applyRoomEvents(cs.ecs, client)

	cs.ecs.Update()
	cs.coinUI.Update()

	coin := components.Coin.Get(cs.coin)
	if (cs.flipRequested || systems.ActionJustPressed(cs.ecs, cfg.ActionFlip)) && !coin.Flipping {
		face := systems.StartFlipping(coin, cs.rng)
		cs.coinUI.SetState(face.String())
	}
	cs.flipRequested = false
	cs.coinUI.SetFlipping(coin.Flipping)
	cs.coinUI.SetPlayers(client.Room().Players)

	if cs.leaveRequested || systems.ActionJustPressed(cs.ecs, cfg.ActionLeave) {
		leaveRoom(cs.sceneChanger, cs.session)
	}
}

func (cs *CoinFlipScene) Draw(screen *ebiten.Image) {
	screen.Fill(cfg.Coin.BackgroundColor)

	if cs.ecs == nil {
		return
	}
	cs.ecs.Draw(screen)
	cs.coinUI.UI.Draw(screen)
}

func (cs *CoinFlipScene) configure() {
	seed := uint64(time.Now().UnixNano())
	cs.rng = rand.New(rand.NewPCG(seed, seed>>1))

	cs.ecs = ecs.NewECS(donburi.NewWorld())
	room := cs.session.Client.Room()
	factory.CreateRoom(cs.ecs, room.Name, room.Players, room.MaxPlayers)
	cs.coin = factory.CreateCoin(cs.ecs)

	cs.coinUI = ui.NewCoinFlipUI(
		func() { cs.flipRequested = true },
		func() { cs.leaveRequested = true },
	)

	cs.ecs.AddSystem(systems.UpdateInput)
	cs.ecs.AddSystem(systems.UpdateCoin)
	cs.ecs.AddRenderer(cfg.Default, systems.DrawCoin)
}
