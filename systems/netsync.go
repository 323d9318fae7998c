package systems

import (
	"log"
	"time"

	"github.com/automoto/partyroom/components"
	cfg "github.com/automoto/partyroom/config"
	"github.com/automoto/partyroom/shared/messages"
	"github.com/automoto/partyroom/shared/netcomponents"
	"github.com/automoto/partyroom/shared/netconfig"
	"github.com/automoto/partyroom/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const resendInterval = 50 * time.Millisecond

// LocalStateUpdate describes the local player for the server. Positions are
// the pixel coordinates of the feet; velocities are pixels per second with
// Y pointing down.
func LocalStateUpdate(entry *donburi.Entry) messages.PlayerStateUpdate {
	body := components.Body.Get(entry)
	ppu := cfg.Motion.PixelsPerUnit

	msg := messages.PlayerStateUpdate{
		X:       body.Legs.X + body.Legs.W/2,
		Y:       body.Legs.Y + body.Legs.H,
		VelX:    body.VelX * ppu,
		VelY:    -body.VelY * ppu,
		Facing:  netconfig.FacingRight,
		StateID: components.State.Get(entry).CurrentState,
		Name:    components.Player.Get(entry).Name,
	}
	if m := components.Motion.Get(entry); m.Controller != nil {
		if !m.Controller.FacingRight() {
			msg.Facing = netconfig.FacingLeft
		}
		msg.Grounded = m.Controller.Grounded()
		msg.Crouching = m.Controller.Crouching()
	}
	return msg
}

// NewStateSender returns a system that publishes the local player's state
// whenever it changes, and at least every resendInterval.
func NewStateSender(sendFn func(any) error) func(*ecs.ECS) {
	var last messages.PlayerStateUpdate
	var lastSend time.Time
	failing := false

	return func(e *ecs.ECS) {
		entry, ok := tags.Player.First(e.World)
		if !ok {
			return
		}

		msg := LocalStateUpdate(entry)
		if msg == last && time.Since(lastSend) < resendInterval {
			return
		}

		if err := sendFn(msg); err != nil {
			if !failing {
				log.Printf("[client] Warning: failed to send state: %v", err)
			}
			failing = true
			return
		}
		failing = false
		last = msg
		lastSend = time.Now()
	}
}

// SnapshotApplier mirrors the server's world snapshot into the local ECS
// world. Entities of other rooms and the local player's own entity are
// skipped; the local body is the source of truth for its owner.
type SnapshotApplier struct {
	Room    string
	LocalID func() esync.NetworkId

	present map[esync.NetworkId]bool
}

func NewSnapshotApplier(room string, localID func() esync.NetworkId) *SnapshotApplier {
	return &SnapshotApplier{
		Room:    room,
		LocalID: localID,
		present: make(map[esync.NetworkId]bool),
	}
}

func (a *SnapshotApplier) Apply(world donburi.World, snapshot esync.WorldSnapshot) {
	var myNetID esync.NetworkId
	if a.LocalID != nil {
		myNetID = a.LocalID()
	}

	clear(a.present)

	for _, ent := range snapshot {
		if ent.Id == myNetID {
			continue
		}

		var compData []any
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			compData = append(compData, instance)
		}

		if !inRoom(compData, a.Room) {
			continue
		}
		a.present[ent.Id] = true

		entity := esync.FindByNetworkId(world, ent.Id)
		if !world.Valid(entity) {
			entity = world.Create(componentTypesFromInstances(compData)...)

			entry := world.Entry(entity)
			entry.AddComponent(esync.NetworkIdComponent)
			esync.NetworkIdComponent.SetValue(entry, ent.Id)
			entry.AddComponent(components.NetInterp)
		}

		applyRemote(world.Entry(entity), compData)
	}

	var stale []*donburi.Entry
	esync.NetworkEntityQuery.Each(world, func(entry *donburi.Entry) {
		id := esync.GetNetworkId(entry)
		if id == nil {
			return
		}
		if !a.present[*id] {
			stale = append(stale, entry)
		}
	})
	for _, entry := range stale {
		entry.Remove()
	}
}

func inRoom(compData []any, room string) bool {
	for _, data := range compData {
		if s, ok := data.(netcomponents.NetPlayerStateData); ok {
			return s.Room == room
		}
	}
	return false
}

// applyRemote interpolates position and applies the rest directly.
func applyRemote(entry *donburi.Entry, compData []any) {
	var remoteVel *netcomponents.NetVelocityData
	for _, data := range compData {
		if v, ok := data.(netcomponents.NetVelocityData); ok {
			remoteVel = &v
			break
		}
	}

	for _, data := range compData {
		v, ok := data.(netcomponents.NetPositionData)
		if !ok || !entry.HasComponent(components.NetInterp) {
			applyComponentToEntry(entry, data)
			continue
		}

		interp := components.NetInterp.Get(entry)
		if !interp.Initialized {
			// First snapshot, no interpolation
			applyComponentToEntry(entry, data)
			interp.PrevX, interp.PrevY = v.X, v.Y
			interp.T = 1.0
			interp.Initialized = true
		} else {
			pos := netcomponents.NetPosition.Get(entry)
			interp.PrevX, interp.PrevY = pos.X, pos.Y
			interp.T = 0
		}
		interp.TargetX, interp.TargetY = v.X, v.Y
		if remoteVel != nil {
			interp.VelX = remoteVel.SpeedX
			interp.VelY = remoteVel.SpeedY
		}
	}
}

func componentTypesFromInstances(instances []any) []donburi.IComponentType {
	var ctypes []donburi.IComponentType
	for _, data := range instances {
		switch data.(type) {
		case netcomponents.NetPositionData:
			ctypes = append(ctypes, netcomponents.NetPosition)
		case netcomponents.NetVelocityData:
			ctypes = append(ctypes, netcomponents.NetVelocity)
		case netcomponents.NetPlayerStateData:
			ctypes = append(ctypes, netcomponents.NetPlayerState)
		case netcomponents.NetNameData:
			ctypes = append(ctypes, netcomponents.NetName)
		}
	}
	return ctypes
}

func applyComponentToEntry(entry *donburi.Entry, data any) {
	switch v := data.(type) {
	case netcomponents.NetPositionData:
		if !entry.HasComponent(netcomponents.NetPosition) {
			entry.AddComponent(netcomponents.NetPosition)
		}
		netcomponents.NetPosition.SetValue(entry, v)
	case netcomponents.NetVelocityData:
		if !entry.HasComponent(netcomponents.NetVelocity) {
			entry.AddComponent(netcomponents.NetVelocity)
		}
		netcomponents.NetVelocity.SetValue(entry, v)
	case netcomponents.NetPlayerStateData:
		if !entry.HasComponent(netcomponents.NetPlayerState) {
			entry.AddComponent(netcomponents.NetPlayerState)
		}
		netcomponents.NetPlayerState.SetValue(entry, v)
	case netcomponents.NetNameData:
		if !entry.HasComponent(netcomponents.NetName) {
			entry.AddComponent(netcomponents.NetName)
		}
		netcomponents.NetName.SetValue(entry, v)
	}
}

// NewNetInterpSystem moves remote players from their previous snapshot
// position toward the latest one over one server tick, then extrapolates
// briefly along the last known velocity.
func NewNetInterpSystem(tickRate func() int) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		rate := tickRate()
		if rate <= 0 {
			rate = netconfig.DefaultTickRate
		}
		step := float64(rate) / float64(ebiten.TPS())

		components.NetInterp.Each(e.World, func(entry *donburi.Entry) {
			if !entry.HasComponent(netcomponents.NetPosition) {
				return
			}
			interp := components.NetInterp.Get(entry)
			if !interp.Initialized {
				return
			}
			interp.T = min(interp.T+step, maxInterpT)

			pos := netcomponents.NetPosition.Get(entry)
			if interp.T <= 1 {
				*pos = *netcomponents.LerpNetPosition(
					netcomponents.NetPositionData{X: interp.PrevX, Y: interp.PrevY},
					netcomponents.NetPositionData{X: interp.TargetX, Y: interp.TargetY},
					interp.T,
				)
				return
			}
			ahead := (interp.T - 1) / float64(rate)
			pos.X = interp.TargetX + interp.VelX*ahead
			pos.Y = interp.TargetY + interp.VelY*ahead
		})
	}
}

// maxInterpT caps extrapolation at half a server tick past the last snapshot.
const maxInterpT = 1.5
