package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

const (
	TerrainLayer = "terrain"
	BodiesGroup  = "Bodies"
)

// Load parses a TMX file. It takes an fs.FS so callers can pass embed.FS or
// os.DirFS.
func Load(fsys fs.FS, tmxPath string) (*Level, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	level := &Level{
		Name:       strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		Cols:       levelMap.Width,
		Rows:       levelMap.Height,
		TileWidth:  levelMap.TileWidth,
		TileHeight: levelMap.TileHeight,
	}

	tileW := float64(levelMap.TileWidth)
	tileH := float64(levelMap.TileHeight)
	for _, layer := range levelMap.Layers {
		if layer.Name != TerrainLayer {
			continue
		}
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[y*levelMap.Width+x]
				if tile.IsNil() {
					continue
				}

				var material string
				if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
					material = tilesetTile.Properties.GetString("material")
				}

				level.Cells = append(level.Cells, Cell{
					Col:      x,
					Row:      y,
					X:        float64(x) * tileW,
					Y:        float64(y) * tileH,
					W:        tileW,
					H:        tileH,
					Material: material,
				})
			}
		}
		break
	}

	for _, og := range levelMap.ObjectGroups {
		if og.Name != BodiesGroup {
			continue
		}
		for _, o := range og.Objects {
			level.Bodies = append(level.Bodies, BodySpawn{
				Name:        o.Name,
				Material:    o.Properties.GetString("material"),
				X:           o.X,
				Y:           o.Y,
				W:           o.Width,
				H:           o.Height,
				VX:          o.Properties.GetFloat("vx"),
				VY:          o.Properties.GetFloat("vy"),
				Kinematic:   o.Properties.GetBool("kinematic"),
				MoveX:       o.Properties.GetFloat("moveX"),
				MoveSeconds: o.Properties.GetFloat("moveSeconds"),
			})
		}
	}

	// Spawn left to right, independent of object ids.
	sort.SliceStable(level.Bodies, func(i, j int) bool {
		return level.Bodies[i].X < level.Bodies[j].X
	})

	return level, nil
}

// LoadAll discovers all .tmx files in levelsDir within fsys and returns them
// keyed by stem name plus a sorted list of names.
func LoadAll(fsys fs.FS, levelsDir string) (map[string]*Level, []string, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", levelsDir)
	}

	levels := make(map[string]*Level, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		level, err := Load(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		levels[level.Name] = level
		names = append(names, level.Name)
	}

	sort.Strings(names)
	return levels, names, nil
}
