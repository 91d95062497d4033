package systems

import (
	"fmt"
	"image/color"

	"github.com/automoto/physsound/components"
	cfg "github.com/automoto/physsound/config"
	"github.com/automoto/physsound/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

func DrawDebug(ecs *ecs.ECS, screen *ebiten.Image) {
	if !cfg.Debug.Overlay {
		return
	}

	// Draw all collision objects in the space
	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		space := components.Space.Get(spaceEntry)
		for _, obj := range space.Objects() {
			c := color.RGBA{0, 255, 255, 255} // Cyan default
			if obj.HasTags(tags.ResolvSolid) {
				c = color.RGBA{100, 100, 100, 255} // Grey
			}
			vector.StrokeRect(screen, float32(obj.X), float32(obj.Y), float32(obj.W), float32(obj.H), 1, c, false)
		}
	}

	if entry, ok := components.Audio.First(ecs.World); ok {
		s := components.Audio.Get(entry).Stats
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"impacts %d  silent %d  slides %d  ignored %d  tps %0.0f",
			s.Impacts, s.SilentImpacts, s.SlideStarts, s.IgnoredEvents, ebiten.ActualTPS()))
	}
}
