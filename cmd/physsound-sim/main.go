// Command physsound-sim runs a level without a window and reports the sound
// events its collisions produced.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"os/signal"
	"slices"

	"github.com/automoto/physsound/components"
	cfg "github.com/automoto/physsound/config"
	"github.com/automoto/physsound/playback"
	"github.com/automoto/physsound/playback/beepout"
	"github.com/automoto/physsound/playback/playbacktest"
	"github.com/automoto/physsound/scenes"
	"github.com/automoto/physsound/systems"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

type options struct {
	level    string
	ticks    int
	realtime bool
	backend  string
	seed     uint64
	point    bool
	persist  bool
}

// speaker is a playback backend bound to an audio device.
type speaker interface {
	playback.Backend
	Close()
}

var openSpeaker = func(clips beepout.Clips, log *zap.Logger) (speaker, error) {
	out, err := beepout.Open(clips, log)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func main() {
	var opts options
	flag.StringVar(&opts.level, "level", "", "level to run (default: first level)")
	flag.IntVar(&opts.ticks, "ticks", 600, "frames to simulate")
	flag.BoolVar(&opts.realtime, "realtime", false, "run at the tick rate instead of as fast as possible")
	flag.StringVar(&opts.backend, "backend", "record", "playback backend: record or beep")
	flag.Uint64Var(&opts.seed, "seed", 1, "seed for pitch jitter and random clip picks")
	flag.BoolVar(&opts.point, "point", false, "give every impact its own voice")
	flag.BoolVar(&opts.persist, "persist", false, "load and save the material library and settings")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(opts, logger, os.Stdout); err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}
}

// run returns instead of exiting so deferred cleanup always runs.
func run(opts options, logger *zap.Logger, w io.Writer) error {
	if opts.persist {
		if err := systems.InitPersistence("physsound", logger); err != nil {
			logger.Warn("running without persistence", zap.Error(err))
		}
	}

	content, err := scenes.LoadContent(logger)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	level, err := content.Level(opts.level)
	if err != nil {
		return fmt.Errorf("pick level: %w", err)
	}

	var backend playback.Backend
	recorder := playbacktest.NewRecorder()
	switch opts.backend {
	case "record":
		backend = recorder
	case "beep":
		out, err := openSpeaker(content.Catalog, logger)
		if err != nil {
			return fmt.Errorf("open audio device: %w", err)
		}
		defer out.Close()
		backend = out
		opts.realtime = true
	default:
		return fmt.Errorf("unknown backend %q", opts.backend)
	}

	world, err := scenes.NewWorld(scenes.WorldOptions{
		Level:     level,
		Library:   content.Library,
		Backend:   backend,
		Durations: content.Catalog,
		Seed:      opts.seed,
		Sound:     systems.SoundOptions{PlayClipAtPoint: opts.point},
		Log:       logger,
	})
	if err != nil {
		return fmt.Errorf("build world: %w", err)
	}

	loop := scenes.NewLoop(world, cfg.Sim.TickRate, logger)
	if opts.realtime {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		loop.Run(ctx, opts.ticks)
		stop()
	} else {
		loop.Step(opts.ticks)
	}

	if opts.persist {
		if err := systems.SaveSettings(&systems.SavedSettings{Level: level.Name, Backend: opts.backend}); err != nil {
			logger.Warn("could not save settings", zap.Error(err))
		}
	}

	report(w, world.World, loop.Ticks(), recorder, opts.backend == "record")
	return nil
}

func report(out io.Writer, w donburi.World, ticks int, recorder *playbacktest.Recorder, recorded bool) {
	entry, ok := components.Audio.First(w)
	if !ok {
		return
	}
	s := components.Audio.Get(entry).Stats
	fmt.Fprintf(out, "frames:          %d\n", ticks)
	fmt.Fprintf(out, "impacts:         %d\n", s.Impacts)
	fmt.Fprintf(out, "silent impacts:  %d\n", s.SilentImpacts)
	fmt.Fprintf(out, "slide starts:    %d\n", s.SlideStarts)
	fmt.Fprintf(out, "ignored events:  %d\n", s.IgnoredEvents)

	if !recorded {
		return
	}
	counts := make(map[string]int)
	for _, c := range recorder.Calls("play") {
		counts[string(c.Clip)]++
	}
	fmt.Fprintln(out, "clips played:")
	for _, clip := range slices.Sorted(maps.Keys(counts)) {
		fmt.Fprintf(out, "  %-32s %d\n", clip, counts[clip])
	}
}
