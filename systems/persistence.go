package systems

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/automoto/physsound/materials"
	"github.com/quasilyte/gdata"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

const (
	libraryItem  = "library"
	settingsItem = "settings"
)

// Store is the item storage the persistence helpers use. *gdata.Manager
// satisfies it.
type Store interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

// SavedSettings represents the settings data stored on disk
type SavedSettings struct {
	Muted   bool   `json:"muted"`
	Level   string `json:"level"`
	Backend string `json:"backend"`
}

var (
	store      Store
	persistLog = zap.NewNop()
)

// InitPersistence opens the gdata store for appName.
func InitPersistence(appName string, log *zap.Logger) error {
	if log != nil {
		persistLog = log
	}
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		persistLog.Warn("could not initialize persistence", zap.Error(err))
		return fmt.Errorf("open gdata store: %w", err)
	}
	store = m
	return nil
}

// UseStore replaces the store, e.g. with an in-memory one. A nil store turns
// persistence off.
func UseStore(s Store, log *zap.Logger) {
	store = s
	if log != nil {
		persistLog = log
	}
}

// LoadLibrary returns the saved material library, or nil when nothing has
// been saved yet. Saved types are installed as the process-wide registry.
func LoadLibrary() (*materials.Library, error) {
	if store == nil {
		return nil, nil
	}

	data, err := store.LoadItem(libraryItem)
	if err != nil {
		persistLog.Warn("could not load material library", zap.Error(err))
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}

	lib, err := materials.Decode(bytes.NewReader(data), persistLog)
	if err != nil {
		persistLog.Warn("could not parse saved material library", zap.Error(err))
		return nil, err
	}
	materials.SetTypes(lib.Types)
	return lib, nil
}

// SaveLibrary writes lib to the store.
func SaveLibrary(lib *materials.Library) error {
	if store == nil {
		return nil
	}

	var buf bytes.Buffer
	if err := lib.Encode(&buf); err != nil {
		persistLog.Warn("could not serialize material library", zap.Error(err))
		return err
	}
	if err := store.SaveItem(libraryItem, buf.Bytes()); err != nil {
		persistLog.Warn("could not save material library", zap.Error(err))
		return fmt.Errorf("save material library: %w", err)
	}
	return nil
}

// LoadSettings loads settings from the store. Nil means defaults.
func LoadSettings() (*SavedSettings, error) {
	if store == nil {
		return nil, nil
	}

	data, err := store.LoadItem(settingsItem)
	if err != nil {
		persistLog.Warn("could not load settings", zap.Error(err))
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}

	var settings SavedSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		persistLog.Warn("could not parse saved settings", zap.Error(err))
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	return &settings, nil
}

// SaveSettings saves settings to the store.
func SaveSettings(s *SavedSettings) error {
	if store == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("serialize settings: %w", err)
	}
	if err := store.SaveItem(settingsItem, data); err != nil {
		persistLog.Warn("could not save settings", zap.Error(err))
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// ApplySavedSettings applies loaded settings to a running world.
func ApplySavedSettings(w donburi.World, saved *SavedSettings) {
	if saved == nil {
		return
	}
	SetWorldSoundEnabled(w, !saved.Muted)
}
