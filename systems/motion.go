package systems

import (
	"fmt"
	"log"

	"github.com/automoto/partyroom/components"
	cfg "github.com/automoto/partyroom/config"
	"github.com/automoto/partyroom/shared/motion"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// maxPhysicsSteps bounds catch-up after a long frame.
const maxPhysicsSteps = 5

// tuningSource delivers hot-reloaded controller tuning. Nil when the
// embedded tuning is used.
var tuningSource interface {
	Poll() (motion.Config, bool)
}

// SetTuningWatcher makes UpdateMotion apply configs reloaded by w.
func SetTuningWatcher(w *cfg.TuningWatcher) {
	if w == nil {
		tuningSource = nil
		return
	}
	tuningSource = w
}

// AttachController builds the motion controller for a player entity and
// wires its notifications to the state and squash/stretch glue.
func AttachController(entry *donburi.Entry, tuning motion.Config) error {
	spaceEntry, ok := components.Space.First(entry.World)
	if !ok {
		return fmt.Errorf("attach controller: no collision space")
	}
	space := components.Space.Get(spaceEntry)
	body := components.Body.Get(entry)

	ctrl, err := motion.New(
		NewResolvBody(body),
		NewResolvPhysics(space),
		tuning,
		motion.WithCrouchCollider(NewCrouchCollider(body)),
	)
	if err != nil {
		return fmt.Errorf("attach controller: %w", err)
	}

	state := components.State.Get(entry)
	ctrl.OnJump(func() {
		TriggerSquashStretch(entry, cfg.SquashStretch.JumpScaleX, cfg.SquashStretch.JumpScaleY)
		setState(state, cfg.Jump)
	})
	ctrl.OnLanding(func() {
		TriggerSquashStretch(entry, cfg.SquashStretch.LandScaleX, cfg.SquashStretch.LandScaleY)
		setState(state, DeriveState(true, ctrl.Crouching(), body.VelX, 0))
	})
	ctrl.OnCrouch(func(entering bool) {
		if entering {
			setState(state, cfg.Crouch)
		} else {
			setState(state, cfg.Idle)
		}
	})

	components.Motion.SetValue(entry, components.MotionData{Controller: ctrl})
	return nil
}

// UpdateMotion runs the fixed physics steps owed for this frame followed by
// one controller Move with the polled intent.
func UpdateMotion(ecs *ecs.ECS) {
	input := getOrCreateInput(ecs)
	horizontal, crouch, jump := MotionIntent(input)

	var reloaded *motion.Config
	if tuningSource != nil {
		if c, ok := tuningSource.Poll(); ok {
			reloaded = &c
		}
	}

	frameDt := 1.0 / float64(ebiten.TPS())

	components.Motion.Each(ecs.World, func(e *donburi.Entry) {
		m := components.Motion.Get(e)
		if m.Controller == nil {
			return
		}
		if reloaded != nil {
			if err := m.Controller.SetConfig(*reloaded); err != nil {
				log.Printf("[tuning] Warning: rejected reload: %v", err)
			} else {
				log.Println("[tuning] reloaded motion tuning")
			}
		}

		StepMotion(m, components.Body.Get(e), frameDt, horizontal, crouch, jump)

		body := components.Body.Get(e)
		setState(components.State.Get(e),
			DeriveState(m.Controller.Grounded(), m.Controller.Crouching(), body.VelX, body.VelY))
	})
}

// StepMotion advances one frame of dt seconds.
func StepMotion(m *components.MotionData, body *components.BodyData, dt, horizontal float64, crouch, jump bool) {
	step := 1.0 / float64(cfg.Motion.FixedHz)

	m.Accumulator += dt
	steps := 0
	for m.Accumulator >= step {
		if steps == maxPhysicsSteps {
			m.Accumulator = 0
			break
		}
		StepBody(body, step)
		m.Controller.SampleGround()
		m.Accumulator -= step
		steps++
	}

	m.Controller.Move(horizontal, crouch, jump, dt)
}
