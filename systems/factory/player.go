package factory

import (
	"sync/atomic"

	"github.com/automoto/partyroom/archetypes"
	"github.com/automoto/partyroom/components"
	cfg "github.com/automoto/partyroom/config"
	"github.com/automoto/partyroom/shared/motion"
	"github.com/automoto/partyroom/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var lastBodyID atomic.Uint64

// nextBodyID never returns motion.StaticBody.
func nextBodyID() motion.BodyID {
	return motion.BodyID(lastBodyID.Add(1))
}

// CreatePlayer spawns the locally controlled character standing with its
// feet at (x, y). The motion controller is attached by the motion system.
func CreatePlayer(ecs *ecs.ECS, x, y float64, name string) *donburi.Entry {
	player := archetypes.Player.Spawn(ecs)

	w := cfg.Motion.BodyWidth
	legsH := cfg.Motion.LegsHeight
	torsoH := cfg.Motion.TorsoHeight

	legs := resolv.NewObject(x-w/2, y-legsH, w, legsH, tags.ResolvPlayer)
	legs.SetShape(resolv.NewRectangle(0, 0, w, legsH))
	legs.Data = player

	torso := resolv.NewObject(x-w/2, y-legsH-torsoH, w, torsoH, tags.ResolvTorso)
	torso.SetShape(resolv.NewRectangle(0, 0, w, torsoH))
	torso.Data = player

	components.Body.SetValue(player, components.BodyData{
		ID:           nextBodyID(),
		Legs:         legs,
		Torso:        torso,
		TorsoEnabled: true,
		GravityScale: 1,
		ScaleX:       1,
	})
	components.Player.SetValue(player, components.PlayerData{Name: name, Local: true})
	components.State.SetValue(player, components.StateData{
		CurrentState:  cfg.Idle,
		PreviousState: cfg.StateNone,
	})

	addToSpace(ecs, legs, torso)

	return player
}
