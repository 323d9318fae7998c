package systems

import (
	"testing"

	"github.com/automoto/partyroom/components"
	cfg "github.com/automoto/partyroom/config"
)

func TestMotionIntent(t *testing.T) {
	cases := []struct {
		name       string
		pressed    []cfg.ActionID
		analog     float64
		wantH      float64
		wantCrouch bool
		wantJump   bool
	}{
		{"idle", nil, 0, 0, false, false},
		{"left", []cfg.ActionID{cfg.ActionMoveLeft}, 0, -1, false, false},
		{"right", []cfg.ActionID{cfg.ActionMoveRight}, 0, 1, false, false},
		{"both cancel", []cfg.ActionID{cfg.ActionMoveLeft, cfg.ActionMoveRight}, 0, 0, false, false},
		{"analog wins", []cfg.ActionID{cfg.ActionMoveLeft}, 0.4, 0.4, false, false},
		{"crouch and jump", []cfg.ActionID{cfg.ActionCrouch, cfg.ActionJump}, 0, 0, true, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			input := &components.InputData{Horizontal: c.analog}
			for _, a := range c.pressed {
				input.Current[a] = true
			}
			h, crouch, jump := MotionIntent(input)
			if h != c.wantH || crouch != c.wantCrouch || jump != c.wantJump {
				t.Fatalf("got (%v, %v, %v), want (%v, %v, %v)", h, crouch, jump, c.wantH, c.wantCrouch, c.wantJump)
			}
		})
	}
}

func TestApplyDeadzone(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{0.2, 0},
		{-0.25, 0},
		{1, 1},
		{-1, -1},
		{0.625, 0.5},
		{-0.625, -0.5},
	}
	for _, c := range cases {
		if got := applyDeadzone(c.in, 0.25); got != c.want {
			t.Fatalf("applyDeadzone(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestGetActionEdges(t *testing.T) {
	input := &components.InputData{}
	input.Current[cfg.ActionJump] = true
	if a := GetAction(input, cfg.ActionJump); !a.Pressed || !a.JustPressed || a.JustReleased {
		t.Fatalf("press edge: %+v", a)
	}

	input.Previous = input.Current
	input.Current = [cfg.ActionCount]bool{}
	if a := GetAction(input, cfg.ActionJump); a.Pressed || a.JustPressed || !a.JustReleased {
		t.Fatalf("release edge: %+v", a)
	}
}
