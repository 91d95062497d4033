package systems

import (
	"github.com/automoto/physsound/components"
	cfg "github.com/automoto/physsound/config"
	"github.com/automoto/physsound/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateControls lets the player shove every dynamic body around: pushing
// drags bodies along whatever they rest on, jumping throws grounded bodies
// up so they land again.
func UpdateControls(ecs *ecs.ECS) {
	entry, ok := components.Input.First(ecs.World)
	if !ok {
		return
	}
	input := components.Input.Get(entry)

	if GetAction(input, cfg.ActionDebug).JustPressed {
		cfg.Debug.Overlay = !cfg.Debug.Overlay
	}

	push := 0.0
	if GetAction(input, cfg.ActionPushLeft).Pressed {
		push -= cfg.Sim.PushAccel
	}
	if GetAction(input, cfg.ActionPushRight).Pressed {
		push += cfg.Sim.PushAccel
	}
	jump := GetAction(input, cfg.ActionJump).JustPressed

	if push == 0 && !jump {
		return
	}
	tags.Body.Each(ecs.World, func(e *donburi.Entry) {
		physics := components.Physics.Get(e)
		if physics.Kinematic {
			return
		}
		physics.SpeedX += push
		if jump && physics.OnGround != nil {
			physics.SpeedY = -cfg.Sim.JumpSpeed
		}
	})
}
