package scenes

import (
	"errors"

	cfg "github.com/automoto/physsound/config"
	"github.com/automoto/physsound/materials"
	"github.com/automoto/physsound/playback"
	"github.com/automoto/physsound/shared/leveldata"
	"github.com/automoto/physsound/systems"
	"github.com/automoto/physsound/systems/factory"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

var (
	ErrNoLevel   = errors.New("no level to load")
	ErrNoLibrary = errors.New("no material library")
)

// WorldOptions describes a sandbox world.
type WorldOptions struct {
	Level     *leveldata.Level
	Library   *materials.Library
	Backend   playback.Backend
	Durations playback.Durations
	Seed      uint64
	Sound     systems.SoundOptions
	Muted     bool
	// Interactive polls keyboard and gamepad each frame.
	Interactive bool
	Log         *zap.Logger
}

// NewWorld assembles the ECS world for a level: systems in frame order,
// renderers, the collision space, the audio singleton, terrain and bodies.
func NewWorld(opts WorldOptions) (*ecs.ECS, error) {
	if opts.Level == nil {
		return nil, ErrNoLevel
	}
	if opts.Library == nil {
		return nil, ErrNoLibrary
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	ecs := ecs.NewECS(donburi.NewWorld())

	if opts.Interactive {
		ecs.AddSystem(systems.UpdateInput)
		ecs.AddSystem(systems.UpdateControls)
	}
	// Contact events must be emitted before the slide containers tick.
	ecs.AddSystem(systems.UpdateTweens)
	ecs.AddSystem(systems.UpdatePhysics)
	ecs.AddSystem(systems.UpdateCollisions)
	ecs.AddSystem(systems.UpdateObjects)
	ecs.AddSystem(systems.UpdateContacts)
	ecs.AddSystem(systems.UpdateSounds)

	ecs.AddRenderer(cfg.Default, systems.DrawTerrain)
	ecs.AddRenderer(cfg.Default, systems.DrawBodies)
	ecs.AddRenderer(cfg.Default, systems.DrawDebug)

	level := opts.Level
	factory.CreateSpace(ecs, level.Width(), level.Height(), cfg.Sim.SpaceCellSize, cfg.Sim.SpaceCellSize)
	factory.CreateAudio(ecs, opts.Backend, opts.Durations, opts.Seed, log)
	factory.CreateTerrain(ecs, level, opts.Library, log)

	for _, spawn := range level.Bodies {
		m, ok := opts.Library.Get(spawn.Material)
		if !ok {
			log.Warn("body has no known material, it will stay silent",
				zap.String("body", spawn.Name),
				zap.String("material", spawn.Material))
		}
		factory.CreateBody(ecs, spawn, m, opts.Backend, opts.Sound)
	}

	systems.ApplySavedSettings(ecs.World, &systems.SavedSettings{Muted: opts.Muted})

	log.Info("world ready",
		zap.String("level", level.Name),
		zap.Int("cells", len(level.Cells)),
		zap.Int("bodies", len(level.Bodies)))
	return ecs, nil
}
