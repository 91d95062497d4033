package systems

import (
	"image/color"

	"github.com/automoto/physsound/components"
	"github.com/automoto/physsound/materials"
	"github.com/automoto/physsound/slide"
	"github.com/automoto/physsound/surface"
	"github.com/automoto/physsound/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	unknownColor = color.RGBA{200, 0, 200, 255}
	slideColor   = color.RGBA{255, 255, 255, 255}

	// Indexed by material type key.
	typeColors = []color.RGBA{
		{128, 128, 128, 255}, // Default
		{160, 110, 60, 255},  // Wood
		{120, 150, 170, 255}, // Metal
		{90, 90, 100, 255},   // Stone
		{70, 150, 60, 255},   // Grass
	}
)

func colorOf(m *materials.Material) color.RGBA {
	if m == nil || m.TypeKey < 0 || int(m.TypeKey) >= len(typeColors) {
		return unknownColor
	}
	return typeColors[m.TypeKey]
}

// DrawTerrain fills every terrain cell with the color of its material.
func DrawTerrain(ecs *ecs.ECS, screen *ebiten.Image) {
	tags.Terrain.Each(ecs.World, func(e *donburi.Entry) {
		grid, ok := components.Surface.Get(e).Provider.(*surface.Terrain)
		if !ok {
			return
		}
		size := float32(grid.CellSize())
		ox, oy := grid.Origin()
		cols, rows := grid.Size()
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				m := grid.At(col, row)
				if m == nil {
					continue
				}
				x := float32(ox) + float32(col)*size
				y := float32(oy) + float32(row)*size
				vector.FillRect(screen, x, y, size, size, colorOf(m), false)
			}
		}
	})
}

// DrawBodies draws every body in its material color, outlined while one of
// its slide loops is playing.
func DrawBodies(ecs *ecs.ECS, screen *ebiten.Image) {
	tags.Body.Each(ecs.World, func(e *donburi.Entry) {
		o := components.Object.Get(e)
		so := components.SoundObject.Get(e)

		x, y, w, h := float32(o.X), float32(o.Y), float32(o.W), float32(o.H)
		vector.FillRect(screen, x, y, w, h, colorOf(so.Material), false)

		for _, c := range so.Containers {
			if c.State() == slide.Playing && c.Volume() > 0 {
				vector.StrokeRect(screen, x, y, w, h, 1, slideColor, false)
				break
			}
		}
	})
}
