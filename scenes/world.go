package scenes

import (
	"image/color"
	"sync"

	"github.com/automoto/physsound/components"
	cfg "github.com/automoto/physsound/config"
	"github.com/automoto/physsound/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// SandboxScene shows a level in a window and plays its collision sounds.
// Arrow keys push the bodies, space throws them up, M toggles mute, R
// restarts the level and F1 toggles the debug overlay.
type SandboxScene struct {
	ecs      *ecs.ECS
	opts     WorldOptions
	settings systems.SavedSettings
	once     sync.Once
}

// NewSandboxScene creates the scene. settings are the saved settings the
// scene started with and may be nil; mute changes are written back.
func NewSandboxScene(opts WorldOptions, settings *systems.SavedSettings) *SandboxScene {
	s := &SandboxScene{opts: opts}
	if settings != nil {
		s.settings = *settings
	}
	s.settings.Muted = s.settings.Muted || opts.Muted
	if opts.Level != nil {
		s.settings.Level = opts.Level.Name
	}
	return s
}

func (s *SandboxScene) Update() {
	s.once.Do(s.configure)
	s.ecs.Update()

	if systems.Action(s.ecs, cfg.ActionMute).JustPressed {
		s.settings.Muted = !s.settings.Muted
		systems.ApplySavedSettings(s.ecs.World, &s.settings)
		s.saveSettings()
	}
	if systems.Action(s.ecs, cfg.ActionRestart).JustPressed {
		s.restart()
	}
}

func (s *SandboxScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if s.ecs == nil {
		return
	}
	s.ecs.Draw(screen)
}

func (s *SandboxScene) configure() {
	opts := s.opts
	opts.Muted = s.settings.Muted
	opts.Interactive = true
	ecs, err := NewWorld(opts)
	if err != nil {
		panic("failed to build world: " + err.Error())
	}
	s.ecs = ecs
}

// restart releases every voice of the current world and builds a fresh one.
func (s *SandboxScene) restart() {
	if s.ecs != nil {
		components.SoundObject.Each(s.ecs.World, func(e *donburi.Entry) {
			systems.DetachSoundObject(e)
		})
	}
	s.configure()
}

func (s *SandboxScene) saveSettings() {
	if err := systems.SaveSettings(&s.settings); err != nil && s.opts.Log != nil {
		s.opts.Log.Warn("could not save settings", zap.Error(err))
	}
}
