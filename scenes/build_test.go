package scenes_test

import (
	"context"
	"errors"
	"testing"

	"github.com/automoto/physsound/assets"
	"github.com/automoto/physsound/components"
	"github.com/automoto/physsound/materials"
	"github.com/automoto/physsound/playback/playbacktest"
	"github.com/automoto/physsound/scenes"
	"github.com/automoto/physsound/shared/leveldata"
	"github.com/automoto/physsound/systems"
	"github.com/automoto/physsound/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func sandbox(t *testing.T) (*leveldata.Level, *materials.Library) {
	t.Helper()
	fsys := assets.FS()
	levels, _, err := leveldata.LoadAll(fsys, assets.LevelsDir)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	level, ok := levels["sandbox"]
	if !ok {
		t.Fatal("sandbox level missing")
	}
	lib, err := assets.LoadLibrary(fsys, assets.LibraryPath, nil)
	if err != nil {
		t.Fatalf("LoadLibrary: %v", err)
	}
	return level, lib
}

func stats(t *testing.T, e *ecs.ECS) components.AudioStats {
	t.Helper()
	entry, ok := components.Audio.First(e.World)
	if !ok {
		t.Fatal("no audio singleton")
	}
	return components.Audio.Get(entry).Stats
}

func TestSandboxMakesSound(t *testing.T) {
	level, lib := sandbox(t)
	rec := playbacktest.NewRecorder()

	world, err := scenes.NewWorld(scenes.WorldOptions{
		Level:   level,
		Library: lib,
		Backend: rec,
		Seed:    7,
	})
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}

	bodies := 0
	tags.Body.Each(world.World, func(*donburi.Entry) { bodies++ })
	if bodies != len(level.Bodies) {
		t.Fatalf("bodies = %d, want %d", bodies, len(level.Bodies))
	}

	scenes.NewLoop(world, 60, nil).Step(300)

	s := stats(t, world)
	if s.Impacts == 0 {
		t.Errorf("no impacts after 5s of falling bodies: %+v", s)
	}
	if len(rec.Calls("play")) == 0 {
		t.Error("backend never asked to play")
	}
	if s.IgnoredEvents != 0 {
		t.Errorf("IgnoredEvents = %d, want 0", s.IgnoredEvents)
	}
}

func TestSandboxMuted(t *testing.T) {
	level, lib := sandbox(t)
	rec := playbacktest.NewRecorder()

	world, err := scenes.NewWorld(scenes.WorldOptions{
		Level:   level,
		Library: lib,
		Backend: rec,
		Muted:   true,
	})
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	scenes.NewLoop(world, 60, nil).Step(300)

	if plays := rec.Calls("play"); len(plays) != 0 {
		t.Errorf("muted world played %d clips", len(plays))
	}
	if stats(t, world).IgnoredEvents == 0 {
		t.Error("muted world saw no contact events")
	}
}

func TestSavedSettingsUnmuteWorld(t *testing.T) {
	level, lib := sandbox(t)
	rec := playbacktest.NewRecorder()

	world, err := scenes.NewWorld(scenes.WorldOptions{
		Level:   level,
		Library: lib,
		Backend: rec,
		Muted:   true,
	})
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	systems.ApplySavedSettings(world.World, &systems.SavedSettings{Muted: false})
	scenes.NewLoop(world, 60, nil).Step(300)

	if plays := rec.Calls("play"); len(plays) == 0 {
		t.Error("world unmuted by saved settings played nothing")
	}
}

func TestNewWorldErrors(t *testing.T) {
	level, lib := sandbox(t)

	if _, err := scenes.NewWorld(scenes.WorldOptions{Library: lib}); !errors.Is(err, scenes.ErrNoLevel) {
		t.Errorf("err = %v, want ErrNoLevel", err)
	}
	if _, err := scenes.NewWorld(scenes.WorldOptions{Level: level}); !errors.Is(err, scenes.ErrNoLibrary) {
		t.Errorf("err = %v, want ErrNoLibrary", err)
	}
}

func TestNewWorldUnknownBodyMaterial(t *testing.T) {
	_, lib := sandbox(t)
	core, logs := observer.New(zapcore.WarnLevel)

	level := &leveldata.Level{
		Name: "tiny", Cols: 2, Rows: 2, TileWidth: 16, TileHeight: 16,
		Bodies: []leveldata.BodySpawn{{Name: "ghost", Material: "ectoplasm", W: 8, H: 8}},
	}
	world, err := scenes.NewWorld(scenes.WorldOptions{
		Level:   level,
		Library: lib,
		Backend: playbacktest.NewRecorder(),
		Log:     zap.New(core),
	})
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}

	if n := logs.FilterMessageSnippet("no known material").Len(); n != 1 {
		t.Errorf("warnings = %d, want 1", n)
	}
	body, ok := tags.Body.First(world.World)
	if !ok {
		t.Fatal("body not spawned")
	}
	if components.SoundObject.Get(body).Material != nil {
		t.Error("unknown material resolved to something")
	}
}

func TestLoopRun(t *testing.T) {
	level, lib := sandbox(t)
	world, err := scenes.NewWorld(scenes.WorldOptions{Level: level, Library: lib, Backend: playbacktest.NewRecorder()})
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}

	loop := scenes.NewLoop(world, 1000, nil)
	loop.Run(context.Background(), 3)
	if loop.Ticks() != 3 {
		t.Errorf("Ticks = %d, want 3", loop.Ticks())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	loop.Run(ctx, 0)
}
