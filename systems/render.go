package systems

import (
	"image/color"

	"github.com/automoto/partyroom/components"
	cfg "github.com/automoto/partyroom/config"
	"github.com/automoto/partyroom/fonts"
	"github.com/automoto/partyroom/shared/netcomponents"
	"github.com/automoto/partyroom/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/font"
)

// DrawLevel fills the background and every level collider.
func DrawLevel(ecs *ecs.ECS, screen *ebiten.Image) {
	screen.Fill(cfg.Arena.BackgroundColor)

	tags.Wall.Each(ecs.World, func(e *donburi.Entry) {
		drawObject(screen, components.Object.Get(e), cfg.Arena.SolidColor)
	})
	tags.Platform.Each(ecs.World, func(e *donburi.Entry) {
		drawObject(screen, components.Object.Get(e), cfg.Arena.PlatformColor)
	})
}

func drawObject(screen *ebiten.Image, o *components.ObjectData, clr color.Color) {
	vector.DrawFilledRect(screen, float32(o.X), float32(o.Y), float32(o.W), float32(o.H), clr, false)
}

// DrawPlayers renders the local body and every replicated remote player.
func DrawPlayers(ecs *ecs.ECS, screen *ebiten.Image) {
	tags.Player.Each(ecs.World, func(e *donburi.Entry) {
		body := components.Body.Get(e)
		sx, sy := squashScale(e)
		feetX := body.Legs.X + body.Legs.W/2
		feetY := body.Legs.Y + body.Legs.H
		drawCharacter(screen, feetX, feetY, body.Legs.W*sx, body.Height()*sy, body.ScaleX, cfg.Arena.LocalColor)
	})

	esync.NetworkEntityQuery.Each(ecs.World, func(e *donburi.Entry) {
		if !e.HasComponent(netcomponents.NetPosition) {
			return
		}
		pos := netcomponents.NetPosition.Get(e)
		w, h, facing := remoteSize(e)
		drawCharacter(screen, pos.X, pos.Y, w, h, facing, cfg.Arena.RemoteColor)
	})
}

// remoteSize returns the drawn size and facing of a replicated player.
func remoteSize(e *donburi.Entry) (w, h, facing float64) {
	w = cfg.Motion.BodyWidth
	h = cfg.Motion.LegsHeight + cfg.Motion.TorsoHeight
	facing = 1
	if e.HasComponent(netcomponents.NetPlayerState) {
		state := netcomponents.NetPlayerState.Get(e)
		if state.Crouching {
			h = cfg.Motion.LegsHeight
		}
		if state.Facing < 0 {
			facing = -1
		}
	}
	return w, h, facing
}

// drawCharacter draws a body anchored at its feet with an eye marking the
// facing direction.
func drawCharacter(screen *ebiten.Image, feetX, feetY, w, h, facing float64, clr color.Color) {
	x := float32(feetX - w/2)
	y := float32(feetY - h)
	vector.DrawFilledRect(screen, x, y, float32(w), float32(h), clr, false)

	eyeX := float32(feetX + facing*w/4)
	eyeY := y + 4
	vector.DrawFilledRect(screen, eyeX-1.5, eyeY, 3, 3, cfg.White, false)
}

// DrawNames writes each player's name centred above its head.
func DrawNames(ecs *ecs.ECS, screen *ebiten.Image) {
	face := fonts.Small.Get()

	tags.Player.Each(ecs.World, func(e *donburi.Entry) {
		body := components.Body.Get(e)
		name := components.Player.Get(e).Name
		drawLabel(screen, face, name, body.Legs.X+body.Legs.W/2, body.Top())
	})

	esync.NetworkEntityQuery.Each(ecs.World, func(e *donburi.Entry) {
		if !e.HasComponent(netcomponents.NetPosition) || !e.HasComponent(netcomponents.NetName) {
			return
		}
		pos := netcomponents.NetPosition.Get(e)
		_, h, _ := remoteSize(e)
		drawLabel(screen, face, netcomponents.NetName.Get(e).Name, pos.X, pos.Y-h)
	})
}

func drawLabel(screen *ebiten.Image, face font.Face, label string, centerX, top float64) {
	if label == "" {
		return
	}
	width := font.MeasureString(face, label).Round()
	x := int(centerX) - width/2
	y := int(top - cfg.Arena.NameOffsetY)
	text.Draw(screen, label, face, x, y, cfg.Arena.NameColor)
}
