package core

import (
	"testing"

	"github.com/automoto/partyroom/shared/messages"
	"github.com/automoto/partyroom/shared/netcomponents"
	"github.com/automoto/partyroom/shared/netconfig"
	"github.com/yohamta/donburi"
)

func newPlayerEntry() *donburi.Entry {
	world := donburi.NewWorld()
	e := world.Create(
		netcomponents.NetPosition,
		netcomponents.NetVelocity,
		netcomponents.NetPlayerState,
		netcomponents.NetName,
	)
	entry := world.Entry(e)
	netcomponents.NetName.SetValue(entry, netcomponents.NetNameData{Name: "Ann"})
	return entry
}

func TestApplyStateUpdate(t *testing.T) {
	cases := []struct {
		name       string
		msg        messages.PlayerStateUpdate
		wantFacing int
		wantName   string
	}{
		{
			name:       "moving left",
			msg:        messages.PlayerStateUpdate{X: 10, Y: 20, VelX: -3, Facing: -1, StateID: netconfig.Running, Grounded: true, Name: "Ann"},
			wantFacing: netconfig.FacingLeft,
			wantName:   "Ann",
		},
		{
			name:       "facing zero counts as right",
			msg:        messages.PlayerStateUpdate{X: 1, Y: 2, StateID: netconfig.Idle},
			wantFacing: netconfig.FacingRight,
			wantName:   "Ann",
		},
		{
			name:       "rename",
			msg:        messages.PlayerStateUpdate{Facing: 1, StateID: netconfig.Crouch, Crouching: true, Name: " Bob "},
			wantFacing: netconfig.FacingRight,
			wantName:   "Bob",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			entry := newPlayerEntry()
			applyStateUpdate(entry, "room", c.msg)

			pos := netcomponents.NetPosition.Get(entry)
			if pos.X != c.msg.X || pos.Y != c.msg.Y {
				t.Errorf("position = %+v, want (%v,%v)", pos, c.msg.X, c.msg.Y)
			}
			if vel := netcomponents.NetVelocity.Get(entry); vel.SpeedX != c.msg.VelX {
				t.Errorf("velocity x = %v, want %v", vel.SpeedX, c.msg.VelX)
			}
			state := netcomponents.NetPlayerState.Get(entry)
			if state.Room != "room" || state.Facing != c.wantFacing || state.StateID != c.msg.StateID {
				t.Errorf("state = %+v", state)
			}
			if state.Crouching != c.msg.Crouching || state.Grounded != c.msg.Grounded {
				t.Errorf("flags = %+v, want crouching=%v grounded=%v", state, c.msg.Crouching, c.msg.Grounded)
			}
			if got := netcomponents.NetName.Get(entry).Name; got != c.wantName {
				t.Errorf("name = %q, want %q", got, c.wantName)
			}
		})
	}
}

func TestProcessCommandsRunsQueued(t *testing.T) {
	s := &Server{commands: make(chan func(), 4)}
	var ran []int
	for i := range 3 {
		s.enqueue(func() { ran = append(ran, i) })
	}
	s.ProcessCommands()

	if len(ran) != 3 || ran[0] != 0 || ran[2] != 2 {
		t.Errorf("ran = %v, want [0 1 2]", ran)
	}
	s.ProcessCommands()
	if len(ran) != 3 {
		t.Error("commands ran twice")
	}
}
