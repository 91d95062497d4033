package materials

import (
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Library is a loaded set of materials together with the type registry their
// keys index into.
type Library struct {
	Types     *Registry
	materials []*Material
	byName    map[string]*Material
}

type libraryDoc struct {
	Types     []string    `json:"types"`
	Materials []*Material `json:"materials"`
}

// NewLibrary validates and activates materials against reg.
func NewLibrary(reg *Registry, mats []*Material, log *zap.Logger) (*Library, error) {
	if log == nil {
		log = zap.NewNop()
	}
	lib := &Library{
		Types:  reg,
		byName: make(map[string]*Material, len(mats)),
	}
	for _, m := range mats {
		if m == nil {
			continue
		}
		if m.Name == "" {
			return nil, ErrUnnamedMaterial
		}
		if _, ok := lib.byName[m.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, m.Name)
		}
		if !reg.Has(m.TypeKey) {
			return nil, fmt.Errorf("material %q: %w %d", m.Name, ErrUnknownType, m.TypeKey)
		}
		for _, set := range m.AudioSets {
			if !reg.Has(set.Key) {
				log.Warn("audio set references an unknown material type",
					zap.String("material", m.Name),
					zap.Int("key", int(set.Key)))
			}
		}
		m.Activate(log)
		lib.materials = append(lib.materials, m)
		lib.byName[m.Name] = m
	}
	return lib, nil
}

// Decode reads a library document.
func Decode(r io.Reader, log *zap.Logger) (*Library, error) {
	var doc libraryDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode material library: %w", err)
	}
	return NewLibrary(NewRegistry(doc.Types), doc.Materials, log)
}

// Encode writes the library in the format Decode reads. Duplicate audio sets
// are written as authored.
func (l *Library) Encode(w io.Writer) error {
	doc := libraryDoc{
		Types:     l.Types.Names(),
		Materials: l.materials,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode material library: %w", err)
	}
	return nil
}

// Get returns the material with the given name.
func (l *Library) Get(name string) (*Material, bool) {
	m, ok := l.byName[name]
	return m, ok
}

// Materials returns the materials in authored order.
func (l *Library) Materials() []*Material {
	return append([]*Material(nil), l.materials...)
}

// ByType returns the first material whose own type is key.
func (l *Library) ByType(key Type) (*Material, bool) {
	for _, m := range l.materials {
		if m.TypeKey == key {
			return m, true
		}
	}
	return nil, false
}
