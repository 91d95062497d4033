package factory

import (
	"github.com/automoto/physsound/archetypes"
	"github.com/automoto/physsound/components"
	cfg "github.com/automoto/physsound/config"
	"github.com/automoto/physsound/materials"
	"github.com/automoto/physsound/shared/leveldata"
	"github.com/automoto/physsound/surface"
	"github.com/automoto/physsound/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// CreateTerrain spawns one entity for the level's solid tiles. Every tile is
// a solid box in the space pointing back at the entity, and the entity's
// surface is the blended material grid.
func CreateTerrain(ecs *ecs.ECS, level *leveldata.Level, lib *materials.Library, log *zap.Logger) *donburi.Entry {
	if log == nil {
		log = zap.NewNop()
	}
	terrain := archetypes.Terrain.Spawn(ecs)

	grid := surface.NewTerrain(0, 0, float64(level.TileWidth), level.Cols, level.Rows, cfg.Terrain.BlendRadius)
	for _, cell := range level.Cells {
		obj := resolv.NewObject(cell.X, cell.Y, cell.W, cell.H, tags.ResolvSolid)
		obj.SetShape(resolv.NewRectangle(0, 0, cell.W, cell.H))
		obj.Data = terrain
		addToSpace(ecs, obj)

		m, ok := lib.Get(cell.Material)
		if !ok {
			log.Warn("terrain tile has no known material",
				zap.String("material", cell.Material),
				zap.Int("col", cell.Col),
				zap.Int("row", cell.Row))
			continue
		}
		grid.Set(cell.Col, cell.Row, m)
	}

	components.Surface.SetValue(terrain, components.SurfaceData{Provider: grid})
	return terrain
}
