package systems

import (
	"image/color"

	"github.com/automoto/partyroom/components"
	cfg "github.com/automoto/partyroom/config"
	"github.com/automoto/partyroom/shared/motion"
	"github.com/automoto/partyroom/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// DrawColliders outlines every object in the collision space when collider
// debugging is on.
func DrawColliders(ecs *ecs.ECS, screen *ebiten.Image) {
	if !cfg.Debug.ShowColliders {
		return
	}
	spaceEntry, ok := components.Space.First(ecs.World)
	if !ok {
		return
	}
	space := components.Space.Get(spaceEntry)

	for _, obj := range space.Objects() {
		if obj.HasTags(tags.ResolvProbe) {
			continue
		}

		c := color.RGBA{0, 255, 255, 255} // Cyan default
		if obj.HasTags(tags.ResolvSolid) {
			c = color.RGBA{100, 100, 100, 255} // Grey
		} else if obj.HasTags(tags.ResolvPlatform) {
			c = color.RGBA{0, 255, 0, 255} // Green
		} else if obj.HasTags(tags.ResolvPlayer) {
			c = color.RGBA{0, 0, 255, 255} // Blue
		} else if obj.HasTags(tags.ResolvTorso) {
			c = color.RGBA{255, 0, 255, 255} // Magenta
		}

		x, y := float32(obj.X), float32(obj.Y)
		w, h := float32(obj.W), float32(obj.H)
		vector.FillRect(screen, x, y, w, 1, c, false)     // Top
		vector.FillRect(screen, x, y+h-1, w, 1, c, false) // Bottom
		vector.FillRect(screen, x, y, 1, h, c, false)     // Left
		vector.FillRect(screen, x+w-1, y, 1, h, c, false) // Right
	}
}

// DrawProbes outlines the ground and ceiling check circles of every
// controller when collider debugging is on.
func DrawProbes(ecs *ecs.ECS, screen *ebiten.Image) {
	if !cfg.Debug.ShowColliders {
		return
	}
	components.Motion.Each(ecs.World, func(e *donburi.Entry) {
		ctrl := components.Motion.Get(e).Controller
		if ctrl == nil {
			return
		}
		c := ctrl.Config()
		groundClr := cfg.Yellow
		if ctrl.Grounded() {
			groundClr = cfg.LightGreen
		}
		drawProbe(screen, ctrl, c.GroundCheck, motion.GroundedRadius, groundClr)
		drawProbe(screen, ctrl, c.CeilingCheck, motion.CeilingRadius, cfg.Orange)
	})
}

func drawProbe(screen *ebiten.Image, ctrl *motion.Controller, offset motion.Vec2, radius float64, clr color.Color) {
	if !ctrl.FacingRight() {
		offset.X = -offset.X
	}
	p := ctrl.Body().Position().Add(offset)
	ppu := cfg.Motion.PixelsPerUnit
	vector.StrokeCircle(screen, float32(p.X*ppu), float32(-p.Y*ppu), float32(radius*ppu), 1, clr, false)
}
