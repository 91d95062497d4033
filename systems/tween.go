package systems

import (
	"github.com/automoto/physsound/components"
	cfg "github.com/automoto/physsound/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateTweens moves kinematic bodies along their tween and stores the
// per-frame displacement as their speed, so contacts see how fast they move.
func UpdateTweens(ecs *ecs.ECS) {
	dt := float32(1 / float64(cfg.Sim.TickRate))

	components.Tween.Each(ecs.World, func(e *donburi.Entry) {
		seq := components.Tween.Get(e)
		obj := components.Object.Get(e)
		physics := components.Physics.Get(e)

		x, _, done := seq.Update(dt)
		if done {
			seq.Reset()
		}

		physics.SpeedX = float64(x) - obj.X
		physics.SpeedY = 0
		obj.X = float64(x)
	})
}
