package archetypes

import (
	"github.com/automoto/physsound/components"
	cfg "github.com/automoto/physsound/config"
	"github.com/automoto/physsound/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Space = newArchetype(
		components.Space,
	)
	Audio = newArchetype(
		components.Audio,
	)
	Terrain = newArchetype(
		tags.Terrain,
		components.Surface,
	)
	Body = newArchetype(
		tags.Body,
		components.Object,
		components.Physics,
		components.Surface,
		components.SoundObject,
		components.Contacts,
	)
	Lift = newArchetype(
		tags.Body,
		components.Object,
		components.Physics,
		components.Surface,
		components.SoundObject,
		components.Contacts,
		components.Tween,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
