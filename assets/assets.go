// Package assets holds the demo material library, level and clips, and the
// Catalog that resolves clip references to audio files.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"

	"github.com/automoto/physsound/materials"
	"go.uber.org/zap"
)

//go:embed all:data
var dataFS embed.FS

const (
	LibraryPath = "materials.json"
	LevelsDir   = "levels"
)

// FS returns the embedded data directory. Clip references in the bundled
// library are relative to its root.
func FS() fs.FS {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		panic(fmt.Sprintf("Failed to open embedded data: %v", err))
	}
	return sub
}

// LoadLibrary decodes the material library at path in fsys.
func LoadLibrary(fsys fs.FS, path string, log *zap.Logger) (*materials.Library, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read material library %s: %w", path, err)
	}
	lib, err := materials.Decode(bytes.NewReader(data), log)
	if err != nil {
		return nil, fmt.Errorf("failed to load material library %s: %w", path, err)
	}
	return lib, nil
}

// MustLoadLibrary loads the bundled library and installs its types as the
// process-wide registry.
func MustLoadLibrary(log *zap.Logger) *materials.Library {
	lib, err := LoadLibrary(FS(), LibraryPath, log)
	if err != nil {
		panic(err)
	}
	materials.SetTypes(lib.Types)
	return lib
}
