package main

import (
	"flag"
	"image"
	"log"

	"github.com/automoto/partyroom/config"
	"github.com/automoto/partyroom/fonts"
	"github.com/automoto/partyroom/network"
	"github.com/automoto/partyroom/scenes"
	"github.com/automoto/partyroom/shared/protocol"
	"github.com/automoto/partyroom/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func NewGame(session *scenes.Session) *Game {
	g := &Game{
		bounds: image.Rectangle{},
	}
	g.scene = scenes.NewLauncherScene(g, session)
	return g
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	addr := flag.String("addr", config.Network.DefaultAddress, "Direct server address used when no master is reachable")
	master := flag.String("master", "", "Master server URL for room matchmaking")
	tuning := flag.String("tuning", "", "YAML file overriding the motion tuning; reloaded on change")
	debug := flag.Bool("debug", false, "Draw ground and ceiling probes")
	flag.Parse()

	config.Network.DefaultAddress = *addr
	config.Network.MasterURL = *master
	config.Debug.ShowColliders = *debug
	config.Debug.TuningFile = *tuning

	if err := fonts.LoadDefaults(); err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	// Register network components for client-side deserialization
	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register network components: %v", err)
	}

	if err := systems.InitPersistence(); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}

	motionConfig, err := config.LoadTuning(config.Debug.TuningFile)
	if err != nil {
		log.Fatalf("Failed to load motion tuning: %v", err)
	}
	if config.Debug.TuningFile != "" {
		watcher, err := config.WatchTuning(config.Debug.TuningFile)
		if err != nil {
			log.Printf("Warning: tuning hot reload disabled: %v", err)
		} else {
			defer watcher.Close()
			systems.SetTuningWatcher(watcher)
			go func() {
				for err := range watcher.Errors {
					log.Printf("[tuning] Warning: %v", err)
				}
			}()
		}
	}

	matchmaker := network.NewMatchmaker(config.Network.MasterURL, config.Network.DefaultAddress, config.Network.Version)
	session := scenes.NewSession(matchmaker, motionConfig)

	ebiten.SetWindowSize(config.C.Width*2, config.C.Height*2)
	ebiten.SetWindowTitle(config.Launcher.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)

	if err := ebiten.RunGame(NewGame(session)); err != nil {
		log.Fatal(err)
	}
}
