package scenes

import (
	"fmt"

	"github.com/automoto/physsound/assets"
	"github.com/automoto/physsound/materials"
	"github.com/automoto/physsound/shared/leveldata"
	"github.com/automoto/physsound/systems"
	"go.uber.org/zap"
)

// Content is everything a sandbox world is built from.
type Content struct {
	Library  *materials.Library
	Levels   map[string]*leveldata.Level
	Order    []string
	Catalog  *assets.Catalog
	Settings *systems.SavedSettings
}

// LoadContent loads the material library, levels, clip catalog and saved
// settings. A library saved by an earlier run takes precedence over the
// bundled one; on first run the bundled library is saved.
func LoadContent(log *zap.Logger) (*Content, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fsys := assets.FS()

	lib, err := systems.LoadLibrary()
	if err != nil {
		log.Warn("ignoring saved material library", zap.Error(err))
		lib = nil
	}
	if lib == nil {
		lib, err = assets.LoadLibrary(fsys, assets.LibraryPath, log)
		if err != nil {
			return nil, err
		}
		materials.SetTypes(lib.Types)
		if err := systems.SaveLibrary(lib); err != nil {
			log.Warn("could not save material library", zap.Error(err))
		}
	}

	levels, order, err := leveldata.LoadAll(fsys, assets.LevelsDir)
	if err != nil {
		return nil, err
	}

	catalog := assets.NewCatalog(fsys, log)
	for _, m := range lib.Materials() {
		// Unusable clips stay silent at runtime; the warning is enough.
		_ = catalog.Validate(m)
	}

	settings, err := systems.LoadSettings()
	if err != nil {
		log.Warn("ignoring saved settings", zap.Error(err))
		settings = nil
	}

	return &Content{
		Library:  lib,
		Levels:   levels,
		Order:    order,
		Catalog:  catalog,
		Settings: settings,
	}, nil
}

// Level returns the named level. An empty name picks the level from the
// saved settings, then the first level.
func (c *Content) Level(name string) (*leveldata.Level, error) {
	if name == "" && c.Settings != nil {
		name = c.Settings.Level
	}
	if name == "" {
		if len(c.Order) == 0 {
			return nil, ErrNoLevel
		}
		name = c.Order[0]
	}
	level, ok := c.Levels[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoLevel, name)
	}
	return level, nil
}
