package main

import (
	"flag"
	"log"

	cfg "github.com/automoto/physsound/config"
	"github.com/automoto/physsound/materials"
	"github.com/automoto/physsound/playback/ebitenout"
	"github.com/automoto/physsound/scenes"
	"github.com/automoto/physsound/shared/leveldata"
	"github.com/automoto/physsound/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	level *leveldata.Level
	scene Scene
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	return g.level.Width(), g.level.Height()
}

func main() {
	levelName := flag.String("level", "", "level to load (default: last played, then first)")
	seed := flag.Uint64("seed", 1, "seed for pitch jitter and random clip picks")
	muted := flag.Bool("muted", false, "start muted")
	debug := flag.Bool("debug", false, "show the debug overlay")
	pointPlayback := flag.Bool("point", false, "give every impact its own voice")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg.Debug.Overlay = *debug

	if err := systems.InitPersistence("physsound", logger); err != nil {
		logger.Warn("running without persistence", zap.Error(err))
	}

	content, err := scenes.LoadContent(logger)
	if err != nil {
		logger.Fatal("failed to load content", zap.Error(err))
	}
	level, err := content.Level(*levelName)
	if err != nil {
		logger.Fatal("failed to pick level", zap.Error(err))
	}

	backend := ebitenout.New(content.Catalog, cfg.Audio.SampleRate, logger)
	for _, m := range content.Library.Materials() {
		preload(backend.Loader(), m, logger)
	}

	scene := scenes.NewSandboxScene(scenes.WorldOptions{
		Level:     level,
		Library:   content.Library,
		Backend:   backend,
		Durations: content.Catalog,
		Seed:      *seed,
		Sound:     systems.SoundOptions{PlayClipAtPoint: *pointPlayback},
		Muted:     *muted,
		Log:       logger,
	}, content.Settings)

	ebiten.SetWindowTitle("physsound - " + level.Name)
	ebiten.SetWindowSize(level.Width()*2, level.Height()*2)
	ebiten.SetTPS(cfg.Sim.TickRate)

	if err := ebiten.RunGame(&Game{level: level, scene: scene}); err != nil {
		logger.Fatal("game exited", zap.Error(err))
	}
}

// preload decodes every clip of m so the first collision does not stall.
func preload(loader *ebitenout.Loader, m *materials.Material, logger *zap.Logger) {
	for _, set := range m.AudioSets {
		clips := append([]materials.ClipRef(nil), set.Impacts...)
		if set.HasSlide() {
			clips = append(clips, set.Slide)
		}
		for _, clip := range clips {
			if err := loader.Preload(clip); err != nil {
				logger.Warn("failed to preload clip", zap.String("clip", string(clip)), zap.Error(err))
			}
		}
	}
}
