package systems

import (
	"github.com/automoto/physsound/components"
	"github.com/automoto/physsound/shared/gamemath"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func UpdatePhysics(ecs *ecs.ECS) {
	components.Physics.Each(ecs.World, func(e *donburi.Entry) {
		physics := components.Physics.Get(e)
		if physics.Kinematic {
			return
		}

		// Bodies only lose speed while dragging along something.
		if physics.OnGround != nil {
			physics.SpeedX = gamemath.ApplyFriction(physics.SpeedX, physics.Friction)
		}
		physics.SpeedX = gamemath.ClampSpeed(physics.SpeedX, physics.MaxSpeed)

		physics.SpeedY += physics.Gravity
	})
}
