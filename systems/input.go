package systems

import (
	"strings"

	"github.com/automoto/partyroom/components"
	cfg "github.com/automoto/partyroom/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// Reusable slice for gamepad IDs to avoid allocations
var gamepadIDs []ebiten.GamepadID

// Cache controller types to avoid string allocation every frame
var controllerTypeCache = make(map[ebiten.GamepadID]components.InputMethod)

// UpdateInput polls raw input and updates the InputComponent.
// Must run BEFORE UpdateMotion in the system order.
func UpdateInput(ecs *ecs.ECS) {
	input := getOrCreateInput(ecs)

	// Swap buffers: current becomes previous, then zero out current
	input.Previous = input.Current
	input.Current = [cfg.ActionCount]bool{}
	input.Horizontal = 0

	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])

	var keyboardUsed, gamepadUsed bool
	var activeGamepadID ebiten.GamepadID

	for actionID, binding := range cfg.Input.Bindings {
		for _, key := range binding.Keys {
			if ebiten.IsKeyPressed(key) {
				input.Current[actionID] = true
				keyboardUsed = true
			}
		}

		for _, gpID := range gamepadIDs {
			if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
				continue
			}
			for _, btn := range binding.StandardGamepadButtons {
				if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
					input.Current[actionID] = true
					gamepadUsed = true
					activeGamepadID = gpID
				}
			}
		}
	}

	if h, down, gpID, ok := getAnalogStickState(gamepadIDs); ok {
		input.Horizontal = h
		if down {
			input.Current[cfg.ActionCrouch] = true
		}
		gamepadUsed = true
		activeGamepadID = gpID
	}

	// Gamepad takes priority if both were used
	if gamepadUsed {
		input.LastInputMethod = getControllerType(activeGamepadID)
	} else if keyboardUsed {
		input.LastInputMethod = components.InputKeyboard
	}
}

// getControllerType returns cached controller type, detecting on first access
func getControllerType(gpID ebiten.GamepadID) components.InputMethod {
	if method, ok := controllerTypeCache[gpID]; ok {
		return method
	}

	name := strings.ToLower(ebiten.GamepadName(gpID))
	var method components.InputMethod
	if strings.Contains(name, "ps4") || strings.Contains(name, "ps5") ||
		strings.Contains(name, "playstation") || strings.Contains(name, "dualshock") ||
		strings.Contains(name, "dualsense") {
		method = components.InputPlayStation
	} else {
		method = components.InputXbox
	}

	controllerTypeCache[gpID] = method
	return method
}

// getAnalogStickState reads the left stick of the first gamepad pushed past
// the deadzone. ok is false when no stick is pushed.
func getAnalogStickState(gamepads []ebiten.GamepadID) (horizontal float64, down bool, gpID ebiten.GamepadID, ok bool) {
	for _, id := range gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}

		h := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		v := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		h = applyDeadzone(h, cfg.Input.AnalogDeadzone)
		if h == 0 && v <= cfg.Input.AnalogDeadzone {
			continue
		}
		return h, v > cfg.Input.AnalogDeadzone, id, true
	}
	return 0, false, 0, false
}

// applyDeadzone zeroes small deflections and rescales the rest to [-1,1].
func applyDeadzone(v, deadzone float64) float64 {
	switch {
	case v > deadzone:
		return min((v-deadzone)/(1-deadzone), 1)
	case v < -deadzone:
		return max((v+deadzone)/(1-deadzone), -1)
	default:
		return 0
	}
}

// getOrCreateInput returns the singleton Input component, creating if needed
func getOrCreateInput(ecs *ecs.ECS) *components.InputData {
	entry, ok := components.Input.First(ecs.World)
	if !ok {
		entry = ecs.World.Entry(ecs.World.Create(components.Input))
	}
	return components.Input.Get(entry)
}

// GetAction returns the full ActionState for an action ID.
// JustPressed/JustReleased are derived from current vs previous frame.
func GetAction(input *components.InputData, id cfg.ActionID) components.ActionState {
	curr := input.Current[id]
	prev := input.Previous[id]
	return components.ActionState{
		Pressed:      curr,
		JustPressed:  curr && !prev,
		JustReleased: !curr && prev,
	}
}

// MotionIntent converts the polled actions into controller input. An analog
// stick overrides the digital directions.
func MotionIntent(input *components.InputData) (horizontal float64, crouch, jump bool) {
	horizontal = input.Horizontal
	if horizontal == 0 {
		if input.Current[cfg.ActionMoveLeft] {
			horizontal--
		}
		if input.Current[cfg.ActionMoveRight] {
			horizontal++
		}
	}
	return horizontal, input.Current[cfg.ActionCrouch], input.Current[cfg.ActionJump]
}

// ActionJustPressed reports whether id went down this frame. It is false
// before the first UpdateInput.
func ActionJustPressed(ecs *ecs.ECS, id cfg.ActionID) bool {
	entry, ok := components.Input.First(ecs.World)
	if !ok {
		return false
	}
	return GetAction(components.Input.Get(entry), id).JustPressed
}
