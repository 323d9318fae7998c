package components

import (
	"github.com/automoto/partyroom/shared/motion"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// BodyData is a character's rigid body. Velocity is in physics units per
// second with Y pointing up; the colliders live in pixel space.
type BodyData struct {
	ID           motion.BodyID
	Legs         *resolv.Object
	Torso        *resolv.Object
	TorsoEnabled bool
	VelX, VelY   float64
	GravityScale float64
	ScaleX       float64 // -1 when mirrored
}

var Body = donburi.NewComponentType[BodyData]()

// Top returns the pixel Y of the highest active collider.
func (b *BodyData) Top() float64 {
	if b.TorsoEnabled && b.Torso != nil {
		return b.Torso.Y
	}
	return b.Legs.Y
}

// Height returns the pixel height of the active colliders.
func (b *BodyData) Height() float64 {
	return b.Legs.Y + b.Legs.H - b.Top()
}

// MotionData binds a motion controller to the entity's body.
type MotionData struct {
	Controller  *motion.Controller
	Accumulator float64
}

var Motion = donburi.NewComponentType[MotionData]()
