package factory

import (
	"github.com/automoto/physsound/archetypes"
	"github.com/automoto/physsound/components"
	cfg "github.com/automoto/physsound/config"
	"github.com/automoto/physsound/materials"
	"github.com/automoto/physsound/playback"
	"github.com/automoto/physsound/shared/leveldata"
	"github.com/automoto/physsound/surface"
	"github.com/automoto/physsound/systems"
	"github.com/automoto/physsound/tags"
	"github.com/solarlune/resolv"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateBody spawns a rigid body with a sound object for m. Kinematic spawns
// with a move path become lifts that tween back and forth.
func CreateBody(ecs *ecs.ECS, spawn leveldata.BodySpawn, m *materials.Material, backend playback.Backend, opts systems.SoundOptions) *donburi.Entry {
	lift := spawn.Kinematic && spawn.MoveSeconds > 0

	var body *donburi.Entry
	if lift {
		body = archetypes.Lift.Spawn(ecs)
	} else {
		body = archetypes.Body.Spawn(ecs)
	}

	obj := resolv.NewObject(spawn.X, spawn.Y, spawn.W, spawn.H, tags.ResolvBody)
	obj.SetShape(resolv.NewRectangle(0, 0, spawn.W, spawn.H))
	obj.Data = body
	components.Object.SetValue(body, components.ObjectData{Object: obj})
	addToSpace(ecs, obj)

	components.Physics.SetValue(body, components.PhysicsData{
		SpeedX:    spawn.VX,
		SpeedY:    spawn.VY,
		Gravity:   cfg.Sim.Gravity,
		Friction:  cfg.Sim.Friction,
		MaxSpeed:  cfg.Sim.MaxSpeed,
		Kinematic: spawn.Kinematic,
	})
	components.Surface.SetValue(body, components.SurfaceData{Provider: surface.Body{Material: m}})

	if lift {
		// Lifts move back and forth using a sequence of tweens.
		tw := gween.NewSequence()
		seconds := float32(spawn.MoveSeconds)
		tw.Add(
			gween.New(float32(spawn.X), float32(spawn.X+spawn.MoveX), seconds, ease.InOutQuad),
			gween.New(float32(spawn.X+spawn.MoveX), float32(spawn.X), seconds, ease.InOutQuad),
		)
		components.Tween.Set(body, tw)
	}

	systems.AttachSoundObject(body, m, backend, opts)
	return body
}
